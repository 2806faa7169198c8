package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"seatbooking/internal/domain"
	"seatbooking/internal/models"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
)

const (
	listSheet     = "Reservations"
	scheduleSheet = "Schedule"
	reportsSheet  = "Reports"
)

var statusFill = map[string]string{
	models.StatusReserved:  "#C6EFCE",
	models.StatusCompleted: "#DDEBF7",
	models.StatusCancelled: "#FFC7CE",
}

type Store interface {
	domain.SeatStore
	GetReservationsByDateRange(ctx context.Context, start, end time.Time) ([]*models.Reservation, error)
	ListReports(ctx context.Context) ([]*models.Report, error)
}

// Exporter writes XLSX snapshots into one directory.
type Exporter struct {
	store  Store
	clock  domain.Clock
	dir    string
	logger *zerolog.Logger
}

func NewExporter(store Store, clk domain.Clock, dir string, logger *zerolog.Logger) *Exporter {
	return &Exporter{store: store, clock: clk, dir: dir, logger: logger}
}

// ExportReservations writes every reservation touching the local days
// [from, to] and returns the file path.
func (e *Exporter) ExportReservations(ctx context.Context, from, to time.Time) (string, error) {
	loc := e.clock.Location()
	from = dayStart(from.In(loc))
	to = dayStart(to.In(loc))
	if to.Before(from) {
		return "", domain.ErrInvalidInterval
	}

	rs, err := e.store.GetReservationsByDateRange(ctx, from, to.AddDate(0, 0, 1))
	if err != nil {
		return "", fmt.Errorf("load reservations: %w", err)
	}
	seats, err := e.store.ListSeats(ctx)
	if err != nil {
		return "", fmt.Errorf("load seats: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(listSheet)
	if err != nil {
		return "", fmt.Errorf("error creating sheet: %w", err)
	}
	f.SetActiveSheet(index)

	now := e.clock.Now()
	if err := e.writeReservationList(f, rs, now); err != nil {
		return "", err
	}
	if err := e.writeSchedule(f, seats, rs, from, to, now); err != nil {
		return "", err
	}
	_ = f.DeleteSheet("Sheet1")

	name := fmt.Sprintf("reservations_%s_to_%s.xlsx", from.Format(models.DateLayout), to.Format(models.DateLayout))
	return e.save(f, name)
}

// ExportReports writes all reports, newest first.
func (e *Exporter) ExportReports(ctx context.Context) (string, error) {
	reps, err := e.store.ListReports(ctx)
	if err != nil {
		return "", fmt.Errorf("load reports: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(reportsSheet)
	if err != nil {
		return "", fmt.Errorf("error creating sheet: %w", err)
	}
	f.SetActiveSheet(index)

	headers := []interface{}{"ID", "Seat", "Date", "Time", "Reporter ID", "Reported user", "Reservation ID", "Reason", "Status", "Submitted", "Admin notes"}
	if err := f.SetSheetRow(reportsSheet, "A1", &headers); err != nil {
		return "", err
	}
	loc := e.clock.Location()
	for i, rep := range reps {
		row := []interface{}{
			rep.ID, rep.SeatName, rep.ReportedDate, rep.ReportedTime, rep.ReporterID,
			rep.ReportedUserName, optID(rep.ReportedReservationID), rep.Reason, rep.Status,
			rep.SubmittedAt.In(loc).Format("2006-01-02 15:04"), rep.AdminNotes,
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(reportsSheet, cell, &row); err != nil {
			return "", err
		}
	}
	e.styleHeader(f, reportsSheet, len(headers))
	_ = f.SetColWidth(reportsSheet, "H", "H", 40)
	_ = f.DeleteSheet("Sheet1")

	name := fmt.Sprintf("reports_%s.xlsx", e.clock.Now().Format("2006-01-02_150405"))
	return e.save(f, name)
}

func (e *Exporter) writeReservationList(f *excelize.File, rs []*models.Reservation, now time.Time) error {
	headers := []interface{}{"ID", "Seat", "User", "Date", "Start", "End", "Status", "Created"}
	if err := f.SetSheetRow(listSheet, "A1", &headers); err != nil {
		return err
	}

	loc := e.clock.Location()
	for i, r := range rs {
		start, end := r.StartTime.In(loc), r.EndTime.In(loc)
		row := []interface{}{
			r.ID, r.SeatName, r.UserName,
			start.Format(models.DateLayout), start.Format(models.TimeLayout), end.Format(models.TimeLayout),
			r.EffectiveStatus(now), r.CreatedAt.In(loc).Format("2006-01-02 15:04"),
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(listSheet, cell, &row); err != nil {
			return err
		}
	}
	e.styleHeader(f, listSheet, len(headers))
	_ = f.SetColWidth(listSheet, "B", "C", 18)
	return nil
}

// writeSchedule lays seats out as rows and days as columns.
func (e *Exporter) writeSchedule(f *excelize.File, seats []*models.Seat, rs []*models.Reservation, from, to, now time.Time) error {
	if _, err := f.NewSheet(scheduleSheet); err != nil {
		return fmt.Errorf("error creating sheet: %w", err)
	}

	_ = f.SetCellValue(scheduleSheet, "A1", fmt.Sprintf("Period: %s - %s", from.Format(models.DateLayout), to.Format(models.DateLayout)))

	cols := make(map[string]int)
	col := 2
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		cell, _ := excelize.CoordinatesToCellName(col, 2)
		_ = f.SetCellValue(scheduleSheet, cell, d.Format("02.01 Mon"))
		cols[d.Format(models.DateLayout)] = col
		col++
	}
	lastCol, _ := excelize.ColumnNumberToName(col - 1)
	_ = f.MergeCell(scheduleSheet, "A1", lastCol+"1")

	rows := make(map[int64]int, len(seats))
	sort.Slice(seats, func(i, j int) bool { return seats[i].Name < seats[j].Name })
	for i, s := range seats {
		cell, _ := excelize.CoordinatesToCellName(1, i+3)
		_ = f.SetCellValue(scheduleSheet, cell, s.Name)
		rows[s.ID] = i + 3
	}

	type key struct{ row, col int }
	cells := make(map[key][]*models.Reservation)
	loc := e.clock.Location()
	for _, r := range rs {
		row, ok := rows[r.SeatID]
		if !ok {
			continue
		}
		c, ok := cols[r.StartTime.In(loc).Format(models.DateLayout)]
		if !ok {
			continue
		}
		cells[key{row, c}] = append(cells[key{row, c}], r)
	}

	styles := make(map[string]int)
	for k, list := range cells {
		var text, status string
		for _, r := range list {
			st := r.EffectiveStatus(now)
			text += fmt.Sprintf("%s-%s %s (%s)\n", r.StartTime.In(loc).Format(models.TimeLayout), r.EndTime.In(loc).Format(models.TimeLayout), r.UserName, st)
			if status == "" || st == models.StatusReserved {
				status = st
			}
		}
		cell, _ := excelize.CoordinatesToCellName(k.col, k.row)
		_ = f.SetCellValue(scheduleSheet, cell, text)

		styleID, ok := styles[status]
		if !ok {
			var err error
			styleID, err = f.NewStyle(&excelize.Style{
				Fill:      excelize.Fill{Type: "pattern", Color: []string{statusFill[status]}, Pattern: 1},
				Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
			})
			if err != nil {
				continue
			}
			styles[status] = styleID
		}
		_ = f.SetCellStyle(scheduleSheet, cell, cell, styleID)
	}

	_ = f.SetColWidth(scheduleSheet, "A", "A", 15)
	_ = f.SetColWidth(scheduleSheet, "B", lastCol, 28)
	return nil
}

func (e *Exporter) styleHeader(f *excelize.File, sheet string, n int) {
	style, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return
	}
	last, _ := excelize.CoordinatesToCellName(n, 1)
	_ = f.SetCellStyle(sheet, "A1", last, style)
}

func (e *Exporter) save(f *excelize.File, name string) (string, error) {
	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return "", fmt.Errorf("error creating export directory: %w", err)
	}
	path := filepath.Join(e.dir, name)
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("error saving file: %w", err)
	}
	e.logger.Info().Str("file_path", path).Msg("Excel file created")
	return path, nil
}

func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func optID(id *int64) interface{} {
	if id == nil {
		return ""
	}
	return *id
}
