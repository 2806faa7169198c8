package worker

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"seatbooking/internal/database"
	"seatbooking/internal/events"
	"seatbooking/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

func TestProcessTaskSuccess(t *testing.T) {
	db := newTestDB(t)
	sheets := &fakeSheets{}
	worker := NewSheetsWorker(db, sheets, nil, RetryPolicy{}, nil)

	r := testReservation(1)

	ctx := context.Background()
	if err := worker.EnqueueTask(ctx, TaskUpsert, r.ID, r, ""); err != nil {
		t.Fatalf("enqueue: %v", err)
	}

	task, ok := worker.tryLocalQueue()
	if !ok {
		t.Fatalf("expected task in local queue")
	}
	worker.processTask(ctx, &task)

	status, retryCount, nextRetry := loadTaskStatus(t, db, task.ID)
	if status != "completed" {
		t.Fatalf("expected status=completed, got %s", status)
	}
	if retryCount != 0 {
		t.Fatalf("expected retry_count=0, got %d", retryCount)
	}
	if nextRetry.Valid {
		t.Fatalf("expected next_retry_at NULL on success")
	}
	if sheets.upsertCalls != 1 {
		t.Fatalf("expected upsert call, got %d", sheets.upsertCalls)
	}
	if sheets.lastReservation.SeatName != "A1" {
		t.Fatalf("payload not carried through, got %+v", sheets.lastReservation)
	}
}

func TestProcessTaskRetry(t *testing.T) {
	db := newTestDB(t)
	sheets := &fakeSheets{err: errors.New("boom")}
	worker := NewSheetsWorker(db, sheets, nil, RetryPolicy{MaxRetries: 3, InitialDelay: time.Second}, nil)

	r := testReservation(2)

	ctx := context.Background()
	if err := worker.EnqueueTask(ctx, TaskUpsert, r.ID, r, ""); err != nil {
		t.Fatalf("enqueue: %v", err)
	}

	task, ok := worker.tryLocalQueue()
	if !ok {
		t.Fatalf("expected task in local queue")
	}
	worker.processTask(ctx, &task)

	status, retryCount, nextRetry := loadTaskStatus(t, db, task.ID)
	if status != "retry" {
		t.Fatalf("expected status=retry, got %s", status)
	}
	if retryCount != 1 {
		t.Fatalf("expected retry_count=1, got %d", retryCount)
	}
	if !nextRetry.Valid || nextRetry.Time.Before(time.Now().Add(-time.Second)) {
		t.Fatalf("expected next_retry_at in future, got %v", nextRetry)
	}
}

func TestProcessTaskFailToDeadLetter(t *testing.T) {
	db := newTestDB(t)
	rdb := newTestRedis(t)
	sheets := &fakeSheets{err: errors.New("fatal")}
	worker := NewSheetsWorker(db, sheets, rdb, RetryPolicy{MaxRetries: 1}, nil)

	r := testReservation(3)

	ctx := context.Background()
	if err := worker.EnqueueTask(ctx, TaskUpdateStatus, r.ID, r, models.StatusCancelled); err != nil {
		t.Fatalf("enqueue: %v", err)
	}
	task, ok := worker.tryRedis(ctx)
	if !ok {
		t.Fatalf("expected task in redis queue")
	}
	worker.processTask(ctx, &task)

	status, _, _ := loadTaskStatus(t, db, task.ID)
	if status != "failed" {
		t.Fatalf("expected status=failed, got %s", status)
	}
	if n := rdb.LLen(ctx, "sheets:deadletter").Val(); n != 1 {
		t.Fatalf("expected 1 dead letter, got %d", n)
	}
	if sheets.statusCalls != 1 {
		t.Fatalf("expected 1 status call, got %d", sheets.statusCalls)
	}
}

func TestProcessTaskBadPayload(t *testing.T) {
	db := newTestDB(t)
	worker := NewSheetsWorker(db, &fakeSheets{}, nil, RetryPolicy{}, nil)
	ctx := context.Background()

	task := models.SyncTask{TaskType: TaskUpsert, ReservationID: 9, Payload: "{"}
	if err := db.CreateSyncTask(ctx, &task); err != nil {
		t.Fatalf("create: %v", err)
	}
	worker.processTask(ctx, &task)

	status, _, _ := loadTaskStatus(t, db, task.ID)
	if status != "failed" {
		t.Fatalf("expected status=failed, got %s", status)
	}
}

func TestSheetsWorker_HandleSheetTask(t *testing.T) {
	sheets := &fakeSheets{}
	worker := NewSheetsWorker(nil, sheets, nil, RetryPolicy{MaxRetries: 3}, nil)

	ctx := context.Background()

	t.Run("Upsert", func(t *testing.T) {
		err := worker.handleSheetTask(ctx, TaskUpsert, sheetTaskPayload{Reservation: testReservation(1)})
		if err != nil {
			t.Fatalf("handle: %v", err)
		}
		if sheets.upsertCalls != 1 {
			t.Fatalf("expected 1 upsert call, got %d", sheets.upsertCalls)
		}
	})

	t.Run("UpdateStatus", func(t *testing.T) {
		err := worker.handleSheetTask(ctx, TaskUpdateStatus, sheetTaskPayload{ReservationID: 123, Status: models.StatusCancelled})
		if err != nil {
			t.Fatalf("handle: %v", err)
		}
		if sheets.statusCalls != 1 {
			t.Fatalf("expected 1 status call, got %d", sheets.statusCalls)
		}
	})

	t.Run("AppendReport", func(t *testing.T) {
		err := worker.handleSheetTask(ctx, TaskAppendReport, sheetTaskPayload{Report: &models.Report{ID: 5, Reason: "noise"}})
		if err != nil {
			t.Fatalf("handle: %v", err)
		}
		if sheets.reportCalls != 1 {
			t.Fatalf("expected 1 report call, got %d", sheets.reportCalls)
		}
	})

	t.Run("MissingPayload", func(t *testing.T) {
		if err := worker.handleSheetTask(ctx, TaskUpsert, sheetTaskPayload{}); err == nil {
			t.Fatalf("expected error for missing reservation")
		}
		if err := worker.handleSheetTask(ctx, TaskUpdateStatus, sheetTaskPayload{ReservationID: 1}); err == nil {
			t.Fatalf("expected error for missing status")
		}
		if err := worker.handleSheetTask(ctx, "delete", sheetTaskPayload{ReservationID: 1}); err == nil {
			t.Fatalf("expected error for unknown task type")
		}
	})
}

func TestRetryPolicyNextDelay(t *testing.T) {
	policy := RetryPolicy{InitialDelay: time.Second, BackoffFactor: 2, MaxDelay: 5 * time.Second}
	d1 := policy.NextDelay(1)
	d2 := policy.NextDelay(2)
	d3 := policy.NextDelay(5)

	if d1 != time.Second {
		t.Fatalf("attempt1 expected 1s, got %s", d1)
	}
	if d2 != 2*time.Second {
		t.Fatalf("attempt2 expected 2s, got %s", d2)
	}
	if d3 != 5*time.Second {
		t.Fatalf("attempt5 expected capped 5s, got %s", d3)
	}
	if d := policy.NextDelay(0); d != time.Second {
		t.Fatalf("attempt0 expected 1s, got %s", d)
	}
	if d := (RetryPolicy{MaxDelay: time.Minute}).NextDelay(500); d != time.Minute {
		t.Fatalf("overflow expected cap, got %s", d)
	}
	if policy.Exhausted(100) {
		t.Fatalf("policy without MaxRetries should never be exhausted")
	}
	if !(RetryPolicy{MaxRetries: 2}).Exhausted(2) {
		t.Fatalf("expected exhausted at attempt 2")
	}
}

func TestSheetsWorker_EnqueueTask(t *testing.T) {
	db := newTestDB(t)
	worker := NewSheetsWorker(db, &fakeSheets{}, nil, RetryPolicy{}, nil)

	ctx := context.Background()
	r := testReservation(1)

	t.Run("ValidTask", func(t *testing.T) {
		if err := worker.EnqueueTask(ctx, TaskUpsert, 0, r, ""); err != nil {
			t.Fatalf("enqueue: %v", err)
		}
		task, ok := worker.tryLocalQueue()
		if !ok || task.ReservationID != r.ID {
			t.Fatalf("expected queued task for reservation %d, got %+v", r.ID, task)
		}
	})

	t.Run("InvalidTaskType", func(t *testing.T) {
		if err := worker.EnqueueTask(ctx, "", 1, r, ""); err == nil {
			t.Fatalf("expected error for empty task type")
		}
	})

	t.Run("InvalidReservationID", func(t *testing.T) {
		if err := worker.EnqueueTask(ctx, TaskUpsert, 0, nil, ""); err == nil {
			t.Fatalf("expected error for missing reservation id")
		}
	})
}

func TestSheetsWorker_ReportEvents(t *testing.T) {
	db := newTestDB(t)
	worker := NewSheetsWorker(db, &fakeSheets{}, nil, RetryPolicy{}, nil)
	bus := events.NewEventBus(nil)
	worker.Subscribe(bus)

	resID := int64(4)
	if err := bus.PublishJSON(events.EventReportFiled, events.ReportEventPayload{ReportID: 8, ReportedReservationID: &resID, Reason: "noise"}); err != nil {
		t.Fatalf("publish: %v", err)
	}

	task, ok := worker.tryLocalQueue()
	if !ok {
		t.Fatalf("expected report task")
	}
	if task.TaskType != TaskAppendReport || task.ReservationID != 4 {
		t.Fatalf("unexpected task %+v", task)
	}
	var payload sheetTaskPayload
	if err := json.Unmarshal([]byte(task.Payload), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.Report == nil || payload.Report.ID != 8 {
		t.Fatalf("unexpected payload %+v", payload)
	}
}

func TestSheetsWorker_StartDrainsPolling(t *testing.T) {
	db := newTestDB(t)
	sheets := &fakeSheets{}
	worker := NewSheetsWorker(db, sheets, nil, RetryPolicy{}, nil)
	worker.pollInterval = 10 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	task := models.SyncTask{TaskType: TaskUpdateStatus, ReservationID: 7, Payload: `{"reservation_id":7,"status":"cancelled"}`}
	if err := db.CreateSyncTask(ctx, &task); err != nil {
		t.Fatalf("create: %v", err)
	}

	done := make(chan struct{})
	go func() {
		worker.Start(ctx)
		close(done)
	}()

	deadline := time.Now().Add(2 * time.Second)
	for sheets.calls() == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	cancel()
	<-done

	if sheets.calls() != 1 {
		t.Fatalf("expected polled task to be processed once, got %d", sheets.calls())
	}
}

func TestSheetsWorker_DecodePayload(t *testing.T) {
	worker := NewSheetsWorker(nil, nil, nil, RetryPolicy{}, nil)

	t.Run("ValidPayload", func(t *testing.T) {
		decoded, err := worker.decodePayload(`{"reservation_id":123,"status":"cancelled"}`)
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if decoded.ReservationID != 123 || decoded.Status != "cancelled" {
			t.Fatalf("unexpected decoded payload: %+v", decoded)
		}
	})

	t.Run("InvalidPayload", func(t *testing.T) {
		if _, err := worker.decodePayload(`invalid json`); err == nil {
			t.Fatalf("expected error for invalid json")
		}
	})
}

// Helpers

type fakeSheets struct {
	mu              sync.Mutex
	err             error
	upsertCalls     int
	statusCalls     int
	reportCalls     int
	lastReservation *models.Reservation
}

func (f *fakeSheets) UpsertReservation(_ context.Context, r *models.Reservation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.upsertCalls++
	f.lastReservation = r
	return f.err
}

func (f *fakeSheets) UpdateReservationStatus(_ context.Context, _ int64, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statusCalls++
	return f.err
}

func (f *fakeSheets) AppendReport(_ context.Context, _ *models.Report) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reportCalls++
	return f.err
}

func (f *fakeSheets) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.upsertCalls + f.statusCalls + f.reportCalls
}

func testReservation(id int64) *models.Reservation {
	start := time.Date(2030, 3, 4, 10, 0, 0, 0, time.UTC)
	return &models.Reservation{
		ID:        id,
		SeatID:    1,
		SeatName:  "A1",
		UserID:    1,
		UserName:  "tester",
		StartTime: start,
		EndTime:   start.Add(time.Hour),
		Status:    models.StatusReserved,
		CreatedAt: time.Now(),
	}
}

func newTestDB(t *testing.T) *database.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "worker.db")
	logger := zerolog.New(io.Discard)
	db, err := database.NewDB(path, &logger)
	if err != nil {
		t.Fatalf("new db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func newTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return client
}

func loadTaskStatus(t *testing.T, db *database.DB, id int64) (status string, retryCount int, nextRetry sql.NullTime) {
	t.Helper()
	row := db.QueryRowContext(context.Background(), `SELECT status, retry_count, next_retry_at FROM sync_queue WHERE id = ?`, id)
	if err := row.Scan(&status, &retryCount, &nextRetry); err != nil {
		t.Fatalf("scan task: %v", err)
	}
	return status, retryCount, nextRetry
}
