package google

import (
	"context"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"sync"
	"time"

	"seatbooking/internal/domain"
	"seatbooking/internal/models"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

const (
	reservationsSheet = "Reservations"
	reportsSheet      = "Reports"
	stampLayout       = "2006-01-02 15:04:05"
)

var errRowNotFound = errors.New("reservation row not found")

// SheetsService mirrors reservations and reports into one spreadsheet.
// Reservation rows are keyed by the ID in column A.
type SheetsService struct {
	service       *sheets.Service
	spreadsheetID string
	loc           *time.Location
	rowCache      map[int64]int
	cacheMu       sync.RWMutex
}

var _ domain.SheetsWriter = (*SheetsService)(nil)

func NewSheetsService(ctx context.Context, credentialsFile, spreadsheetID string, loc *time.Location) (*SheetsService, error) {
	credentialsJSON, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("unable to read credentials file: %w", err)
	}

	config, err := google.JWTConfigFromJSON(credentialsJSON, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("unable to parse credentials: %w", err)
	}

	srv, err := sheets.NewService(ctx, option.WithHTTPClient(config.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("unable to create Sheets service: %w", err)
	}
	return newWithService(srv, spreadsheetID, loc), nil
}

func newWithService(srv *sheets.Service, spreadsheetID string, loc *time.Location) *SheetsService {
	if loc == nil {
		loc = time.UTC
	}
	return &SheetsService{
		service:       srv,
		spreadsheetID: spreadsheetID,
		loc:           loc,
		rowCache:      make(map[int64]int),
	}
}

// TestConnection reads the header cell of the reservations sheet.
func (s *SheetsService) TestConnection(ctx context.Context) error {
	_, err := s.service.Spreadsheets.Values.Get(s.spreadsheetID, reservationsSheet+"!A1").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("connection test failed: %w", err)
	}
	return nil
}

// WarmUpCache loads the ID column into the row cache.
func (s *SheetsService) WarmUpCache(ctx context.Context) error {
	resp, err := s.service.Spreadsheets.Values.Get(s.spreadsheetID, reservationsSheet+"!A:A").Context(ctx).Do()
	if err != nil {
		return err
	}

	cache := make(map[int64]int, len(resp.Values))
	for i, row := range resp.Values {
		if id, ok := cellID(row); ok {
			cache[id] = i + 1
		}
	}

	s.cacheMu.Lock()
	s.rowCache = cache
	s.cacheMu.Unlock()
	return nil
}

// UpsertReservation rewrites the reservation's row or appends a new one.
func (s *SheetsService) UpsertReservation(ctx context.Context, r *models.Reservation) error {
	if r == nil {
		return errors.New("reservation is nil")
	}

	rowIdx, err := s.FindReservationRow(ctx, r.ID)
	if errors.Is(err, errRowNotFound) {
		return s.appendReservation(ctx, r)
	}
	if err != nil {
		return err
	}

	rangeData := fmt.Sprintf("%s!A%d:J%d", reservationsSheet, rowIdx, rowIdx)
	_, err = s.service.Spreadsheets.Values.Update(s.spreadsheetID, rangeData, &sheets.ValueRange{
		Values: [][]interface{}{s.reservationRow(r)},
	}).ValueInputOption("RAW").Context(ctx).Do()
	return err
}

func (s *SheetsService) appendReservation(ctx context.Context, r *models.Reservation) error {
	resp, err := s.service.Spreadsheets.Values.Append(s.spreadsheetID, reservationsSheet+"!A:A", &sheets.ValueRange{
		Values: [][]interface{}{s.reservationRow(r)},
	}).ValueInputOption("RAW").InsertDataOption("INSERT_ROWS").Context(ctx).Do()
	if err != nil {
		return err
	}
	if resp.Updates != nil {
		if row, ok := firstRow(resp.Updates.UpdatedRange); ok {
			s.setCachedRow(r.ID, row)
		}
	}
	return nil
}

// UpdateReservationStatus rewrites column I of the reservation's row.
func (s *SheetsService) UpdateReservationStatus(ctx context.Context, reservationID int64, status string) error {
	rowIdx, err := s.FindReservationRow(ctx, reservationID)
	if err != nil {
		return err
	}

	statusRange := fmt.Sprintf("%s!I%d:I%d", reservationsSheet, rowIdx, rowIdx)
	_, err = s.service.Spreadsheets.Values.Update(s.spreadsheetID, statusRange, &sheets.ValueRange{
		Values: [][]interface{}{{status}},
	}).ValueInputOption("RAW").Context(ctx).Do()
	return err
}

// AppendReport adds one row to the reports sheet.
func (s *SheetsService) AppendReport(ctx context.Context, rep *models.Report) error {
	if rep == nil {
		return errors.New("report is nil")
	}
	_, err := s.service.Spreadsheets.Values.Append(s.spreadsheetID, reportsSheet+"!A:A", &sheets.ValueRange{
		Values: [][]interface{}{reportRow(rep, s.loc)},
	}).ValueInputOption("RAW").InsertDataOption("INSERT_ROWS").Context(ctx).Do()
	return err
}

// ReplaceReservationsSheet rewrites every data row below the header and
// rebuilds the row cache.
func (s *SheetsService) ReplaceReservationsSheet(ctx context.Context, rs []*models.Reservation) error {
	_, err := s.service.Spreadsheets.Values.Clear(s.spreadsheetID, reservationsSheet+"!A2:Z", &sheets.ClearValuesRequest{}).
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("clear reservations: %w", err)
	}

	values := make([][]interface{}, 0, len(rs))
	cache := make(map[int64]int, len(rs))
	for i, r := range rs {
		values = append(values, s.reservationRow(r))
		cache[r.ID] = i + 2
	}
	if len(values) > 0 {
		_, err = s.service.Spreadsheets.Values.Update(s.spreadsheetID, reservationsSheet+"!A2", &sheets.ValueRange{Values: values}).
			ValueInputOption("RAW").Context(ctx).Do()
		if err != nil {
			return fmt.Errorf("write reservations: %w", err)
		}
	}

	s.cacheMu.Lock()
	s.rowCache = cache
	s.cacheMu.Unlock()
	return nil
}

// FindReservationRow returns the 1-based row of reservationID.
func (s *SheetsService) FindReservationRow(ctx context.Context, reservationID int64) (int, error) {
	if reservationID == 0 {
		return 0, errors.New("reservation id is required")
	}
	if row, ok := s.getCachedRow(reservationID); ok {
		return row, nil
	}

	resp, err := s.service.Spreadsheets.Values.Get(s.spreadsheetID, reservationsSheet+"!A:A").Context(ctx).Do()
	if err != nil {
		return 0, err
	}
	for i, row := range resp.Values {
		if id, ok := cellID(row); ok && id == reservationID {
			s.setCachedRow(reservationID, i+1)
			return i + 1, nil
		}
	}
	return 0, errRowNotFound
}

func (s *SheetsService) reservationRow(r *models.Reservation) []interface{} {
	start, end := r.StartTime.In(s.loc), r.EndTime.In(s.loc)
	return []interface{}{
		r.ID,
		r.SeatID,
		r.SeatName,
		r.UserID,
		r.UserName,
		start.Format(models.DateLayout),
		start.Format(models.TimeLayout),
		end.Format(models.TimeLayout),
		r.Status,
		r.CreatedAt.In(s.loc).Format(stampLayout),
	}
}

func reportRow(rep *models.Report, loc *time.Location) []interface{} {
	return []interface{}{
		rep.ID,
		optID(rep.SeatID),
		rep.SeatName,
		rep.ReporterID,
		optID(rep.ReportedUserID),
		rep.ReportedUserName,
		optID(rep.ReportedReservationID),
		rep.ReportedDate,
		rep.ReportedTime,
		rep.Reason,
		rep.Status,
		rep.SubmittedAt.In(loc).Format(stampLayout),
	}
}

func optID(id *int64) interface{} {
	if id == nil {
		return ""
	}
	return *id
}

func cellID(row []interface{}) (int64, bool) {
	if len(row) == 0 {
		return 0, false
	}
	switch v := row[0].(type) {
	case float64:
		return int64(v), v > 0
	case string:
		id, err := strconv.ParseInt(v, 10, 64)
		return id, err == nil && id > 0
	}
	return 0, false
}

var rangeRowRe = regexp.MustCompile(`![A-Z]+(\d+)`)

// firstRow extracts 10 from "Reservations!A10:J10".
func firstRow(a1 string) (int, bool) {
	m := rangeRowRe.FindStringSubmatch(a1)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	return n, err == nil
}

func (s *SheetsService) getCachedRow(id int64) (int, bool) {
	s.cacheMu.RLock()
	defer s.cacheMu.RUnlock()
	row, ok := s.rowCache[id]
	return row, ok
}

func (s *SheetsService) setCachedRow(id int64, row int) {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()
	s.rowCache[id] = row
}
