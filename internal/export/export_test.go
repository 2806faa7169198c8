package export

import (
	"context"
	"io"
	"testing"
	"time"

	"seatbooking/internal/clock"
	"seatbooking/internal/database"
	"seatbooking/internal/domain"
	"seatbooking/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func setup(t *testing.T) (*database.DB, *Exporter, *clock.Fixed) {
	t.Helper()
	logger := zerolog.New(io.Discard)
	db, err := database.NewDB(":memory:", &logger)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	clk := clock.NewFixed(time.Date(2030, 3, 4, 12, 0, 0, 0, time.UTC))
	return db, NewExporter(db, clk, t.TempDir(), &logger), clk
}

func TestExportReservations(t *testing.T) {
	db, exp, _ := setup(t)
	ctx := context.Background()

	require.NoError(t, db.SyncSeats(ctx, []*models.Seat{{Name: "B2"}, {Name: "A1"}}))
	a1, err := db.GetSeatByName(ctx, "A1")
	require.NoError(t, err)
	u := &models.User{Username: "alice", Email: "alice@example.com", PasswordHash: "x"}
	require.NoError(t, db.CreateUser(ctx, u))

	day := time.Date(2030, 3, 4, 0, 0, 0, 0, time.UTC)
	past := &models.Reservation{SeatID: a1.ID, UserID: u.ID, StartTime: day.Add(9 * time.Hour), EndTime: day.Add(10 * time.Hour)}
	require.NoError(t, db.InsertReservation(ctx, past))
	next := &models.Reservation{SeatID: a1.ID, UserID: u.ID, StartTime: day.Add(33 * time.Hour), EndTime: day.Add(34 * time.Hour)}
	require.NoError(t, db.InsertReservation(ctx, next))

	path, err := exp.ExportReservations(ctx, day, day.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Contains(t, path, "reservations_2030-03-04_to_2030-03-05.xlsx")

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{listSheet, scheduleSheet}, f.GetSheetList())

	rows, err := f.GetRows(listSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "A1", rows[1][1])
	assert.Equal(t, "alice", rows[1][2])
	assert.Equal(t, models.StatusCompleted, rows[1][6])
	assert.Equal(t, models.StatusReserved, rows[2][6])

	seat, err := f.GetCellValue(scheduleSheet, "A3")
	require.NoError(t, err)
	assert.Equal(t, "A1", seat, "seats sorted by name")
	cell, err := f.GetCellValue(scheduleSheet, "B3")
	require.NoError(t, err)
	assert.Contains(t, cell, "09:00-10:00 alice (completed)")
	cell, err = f.GetCellValue(scheduleSheet, "C3")
	require.NoError(t, err)
	assert.Contains(t, cell, "09:00-10:00 alice (reserved)")
}

func TestExportReservations_InvalidRange(t *testing.T) {
	_, exp, _ := setup(t)
	day := time.Date(2030, 3, 4, 0, 0, 0, 0, time.UTC)
	_, err := exp.ExportReservations(context.Background(), day, day.AddDate(0, 0, -1))
	assert.ErrorIs(t, err, domain.ErrInvalidInterval)
}

func TestExportReports(t *testing.T) {
	db, exp, _ := setup(t)
	ctx := context.Background()

	require.NoError(t, db.SyncSeats(ctx, []*models.Seat{{Name: "C3"}}))
	seat, err := db.GetSeatByName(ctx, "C3")
	require.NoError(t, err)
	u := &models.User{Username: "bob", Email: "bob@example.com", PasswordHash: "x"}
	require.NoError(t, db.CreateUser(ctx, u))

	rep := &models.Report{SeatID: &seat.ID, ReporterID: u.ID, ReportedDate: "2030-03-04", ReportedTime: "10:00",
		Reason: "noise", Status: models.ReportStatusPending, SubmittedAt: time.Now()}
	require.NoError(t, db.CreateReport(ctx, rep))

	path, err := exp.ExportReports(ctx)
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(reportsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "ID", rows[0][0])
	assert.Equal(t, "C3", rows[1][1])
	assert.Equal(t, "noise", rows[1][7])
}
