package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/isisteel/yard-turnaround/internal/auth"
	"github.com/isisteel/yard-turnaround/internal/engine"
	"github.com/isisteel/yard-turnaround/internal/model"
	"github.com/isisteel/yard-turnaround/internal/processor"
)

type fakeSource struct {
	tables model.RawTables
	err    error
}

func (f *fakeSource) Tables(ctx context.Context) (model.RawTables, error) {
	if f.err != nil {
		return model.RawTables{}, f.err
	}
	return f.tables, nil
}

type fakeGenerator struct {
	content []byte
	err     error
	last    *model.TurnaroundReport
}

func (f *fakeGenerator) Generate(report model.TurnaroundReport) ([]byte, error) {
	f.last = &report
	return f.content, f.err
}

func statusTable(rows ...[]string) model.RawTable {
	return model.RawTable{
		Header: []string{"Timestamp", "Truck_Plate_Number", "Product_Group", "Status"},
		Rows:   rows,
	}
}

func newService(t *testing.T, source TableSource, excel, pdf *fakeGenerator) *TurnaroundService {
	t.Helper()
	if excel == nil {
		excel = &fakeGenerator{content: []byte("xlsx")}
	}
	if pdf == nil {
		pdf = &fakeGenerator{content: []byte("pdf")}
	}
	return NewTurnaroundService(
		source,
		processor.New(time.UTC),
		engine.New(time.UTC),
		excel,
		pdf,
		[]string{"Pipe", "Coil", "Trading", "Roofing", "PU", "Other"},
		zerolog.Nop(),
	)
}

func datePtr(y int, m time.Month, d int) *model.Date {
	v := model.Date{Year: y, Month: m, Day: d}
	return &v
}

func TestVisitsDefaultsToLatestDate(t *testing.T) {
	source := &fakeSource{tables: model.RawTables{
		Status: statusTable(
			[]string{"2025-03-09 08:00:00", "3A-1111", "Pipe", "Arrival"},
			[]string{"2025-03-10 08:00:00", "4B-2222", "Coil", "Arrival"},
		),
	}}

	s := newService(t, source, nil, nil)
	visits, err := s.Visits(context.Background(), VisitQuery{})
	require.NoError(t, err)
	require.Len(t, visits, 1)
	assert.Equal(t, "4B-2222", visits[0].Plate)
}

func TestVisitsExplicitDate(t *testing.T) {
	source := &fakeSource{tables: model.RawTables{
		Status: statusTable(
			[]string{"2025-03-09 08:00:00", "3A-1111", "Pipe", "Arrival"},
			[]string{"2025-03-10 08:00:00", "4B-2222", "Coil", "Arrival"},
		),
	}}

	s := newService(t, source, nil, nil)
	visits, err := s.Visits(context.Background(), VisitQuery{Date: datePtr(2025, time.March, 9)})
	require.NoError(t, err)
	require.Len(t, visits, 1)
	assert.Equal(t, "3A-1111", visits[0].Plate)
}

func TestVisitsRejectsDateAndRangeTogether(t *testing.T) {
	s := newService(t, &fakeSource{}, nil, nil)
	_, err := s.Visits(context.Background(), VisitQuery{
		Date:      datePtr(2025, time.March, 9),
		StartDate: datePtr(2025, time.March, 1),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestVisitsRejectsInvertedRange(t *testing.T) {
	s := newService(t, &fakeSource{}, nil, nil)
	_, err := s.Visits(context.Background(), VisitQuery{
		StartDate: datePtr(2025, time.March, 10),
		EndDate:   datePtr(2025, time.March, 9),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestVisitsRejectsProductOutsideCatalog(t *testing.T) {
	s := newService(t, &fakeSource{}, nil, nil)
	_, err := s.Visits(context.Background(), VisitQuery{Products: []string{"Cement"}})
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Contains(t, err.Error(), "Cement")
}

func TestVisitsAcceptsCatalogProducts(t *testing.T) {
	source := &fakeSource{tables: model.RawTables{
		Status: statusTable(
			[]string{"2025-03-10 08:00:00", "3A-1111", "Pipe", "Arrival"},
		),
	}}

	s := newService(t, source, nil, nil)
	visits, err := s.Visits(context.Background(), VisitQuery{
		Date:     datePtr(2025, time.March, 10),
		Products: []string{"Pipe", "Coil"},
	})
	require.NoError(t, err)
	assert.Len(t, visits, 1)
}

func TestVisitsEmptyCatalogDisablesCheck(t *testing.T) {
	source := &fakeSource{tables: model.RawTables{
		Status: statusTable(
			[]string{"2025-03-10 08:00:00", "3A-1111", "Cement", "Arrival"},
		),
	}}

	s := NewTurnaroundService(
		source,
		processor.New(time.UTC),
		engine.New(time.UTC),
		&fakeGenerator{},
		&fakeGenerator{},
		nil,
		zerolog.Nop(),
	)
	visits, err := s.Visits(context.Background(), VisitQuery{
		Date:     datePtr(2025, time.March, 10),
		Products: []string{"Cement"},
	})
	require.NoError(t, err)
	assert.Len(t, visits, 1)
}

func TestVisitsWrapsSourceFailure(t *testing.T) {
	s := newService(t, &fakeSource{err: errors.New("connection refused")}, nil, nil)
	_, err := s.Visits(context.Background(), VisitQuery{})
	assert.ErrorIs(t, err, ErrSourceUnavailable)
}

func TestCurrentWaitingNeedsSingleDate(t *testing.T) {
	source := &fakeSource{tables: model.RawTables{
		Status: statusTable(
			[]string{"2025-03-10 08:00:00", "3A-1111", "Pipe", "Arrival"},
		),
	}}

	s := newService(t, source, nil, nil)

	_, err := s.CurrentWaiting(context.Background(), VisitQuery{
		StartDate: datePtr(2025, time.March, 1),
		EndDate:   datePtr(2025, time.March, 10),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	// Default window is the latest single day, which qualifies.
	waiting, err := s.CurrentWaiting(context.Background(), VisitQuery{})
	require.NoError(t, err)
	assert.Len(t, waiting, 1)
}

func TestExportWorkbookRequiresPrincipal(t *testing.T) {
	s := newService(t, &fakeSource{}, nil, nil)
	_, err := s.ExportWorkbook(context.Background(), ExportInput{})
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestExportWorkbookBuildsReport(t *testing.T) {
	source := &fakeSource{tables: model.RawTables{
		Status: statusTable(
			[]string{"2025-03-10 08:00:00", "3A-1111", "Pipe", "Arrival"},
			[]string{"2025-03-10 08:30:00", "3A-1111", "Pipe", "Start Loading"},
		),
	}}
	excel := &fakeGenerator{content: []byte("workbook-bytes")}

	s := newService(t, source, excel, nil)
	result, err := s.ExportWorkbook(context.Background(), ExportInput{
		Query:     VisitQuery{Date: datePtr(2025, time.March, 10)},
		Principal: auth.Principal{Subject: "user-42"},
	})
	require.NoError(t, err)

	assert.Equal(t, "turnaround-2025-03-10-2025-03-10.xlsx", result.FileName)
	assert.Equal(t, []byte("workbook-bytes"), result.Content)
	require.NotNil(t, excel.last)
	assert.Equal(t, model.Date{Year: 2025, Month: time.March, Day: 10}, excel.last.PeriodStart)
	assert.Len(t, excel.last.Visits, 1)
}

func TestExportPDFUsesRange(t *testing.T) {
	source := &fakeSource{tables: model.RawTables{
		Status: statusTable(
			[]string{"2025-03-09 08:00:00", "3A-1111", "Pipe", "Arrival"},
			[]string{"2025-03-10 08:00:00", "4B-2222", "Coil", "Arrival"},
		),
	}}
	pdf := &fakeGenerator{content: []byte("pdf-bytes")}

	s := newService(t, source, nil, pdf)
	result, err := s.ExportPDF(context.Background(), ExportInput{
		Query: VisitQuery{
			StartDate: datePtr(2025, time.March, 9),
			EndDate:   datePtr(2025, time.March, 10),
		},
		Principal: auth.Principal{Subject: "user-42"},
	})
	require.NoError(t, err)

	assert.Equal(t, "turnaround-2025-03-09-2025-03-10.pdf", result.FileName)
	require.NotNil(t, pdf.last)
	assert.Len(t, pdf.last.Visits, 2)
}

func TestExportPropagatesGeneratorError(t *testing.T) {
	source := &fakeSource{tables: model.RawTables{
		Status: statusTable(
			[]string{"2025-03-10 08:00:00", "3A-1111", "Pipe", "Arrival"},
		),
	}}
	excel := &fakeGenerator{err: errors.New("render failed")}

	s := newService(t, source, excel, nil)
	_, err := s.ExportWorkbook(context.Background(), ExportInput{
		Query:     VisitQuery{Date: datePtr(2025, time.March, 10)},
		Principal: auth.Principal{Subject: "user-42"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rendering workbook")
}
