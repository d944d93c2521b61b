package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/isisteel/yard-turnaround/internal/auth"
	"github.com/isisteel/yard-turnaround/internal/engine"
	"github.com/isisteel/yard-turnaround/internal/model"
	"github.com/isisteel/yard-turnaround/internal/processor"
)

// TableSource supplies one self-consistent capture of the four sheets.
type TableSource interface {
	Tables(ctx context.Context) (model.RawTables, error)
}

type ExcelGenerator interface {
	Generate(report model.TurnaroundReport) ([]byte, error)
}

type PDFGenerator interface {
	Generate(report model.TurnaroundReport) ([]byte, error)
}

type TurnaroundService struct {
	source   TableSource
	proc     *processor.Processor
	engine   *engine.Engine
	excel    ExcelGenerator
	pdf      PDFGenerator
	products map[string]struct{}
	log      zerolog.Logger
}

// NewTurnaroundService wires the pipeline. products is the configured product
// group catalog; filter values outside it are rejected as invalid input. An
// empty catalog disables the check.
func NewTurnaroundService(
	source TableSource,
	proc *processor.Processor,
	eng *engine.Engine,
	excel ExcelGenerator,
	pdf PDFGenerator,
	products []string,
	log zerolog.Logger,
) *TurnaroundService {
	catalog := make(map[string]struct{}, len(products))
	for _, p := range products {
		catalog[p] = struct{}{}
	}
	return &TurnaroundService{
		source:   source,
		proc:     proc,
		engine:   eng,
		excel:    excel,
		pdf:      pdf,
		products: catalog,
		log:      log,
	}
}

// VisitQuery carries the caller's filters. Date and StartDate/EndDate are
// mutually exclusive; with neither, the snapshot's newest observed date is
// used, so the default view is always the latest day with data.
type VisitQuery struct {
	Date      *model.Date
	StartDate *model.Date
	EndDate   *model.Date

	Products              []string
	Direction             *model.Direction
	TruckCondition        *string
	UseFallbackCompletion bool
}

type ExportInput struct {
	Query     VisitQuery
	Principal auth.Principal
}

type ExportResult struct {
	FileName string
	Content  []byte
}

func (s *TurnaroundService) Visits(ctx context.Context, q VisitQuery) ([]model.Visit, error) {
	snap, eq, err := s.prepare(ctx, q)
	if err != nil {
		return nil, err
	}
	return s.engine.ComputeVisits(snap, eq), nil
}

func (s *TurnaroundService) ProductSummaries(ctx context.Context, q VisitQuery) ([]model.ProductSummary, error) {
	snap, eq, err := s.prepare(ctx, q)
	if err != nil {
		return nil, err
	}
	return engine.ProductSummaries(s.engine.ComputeVisits(snap, eq)), nil
}

func (s *TurnaroundService) TruckTurnarounds(ctx context.Context, q VisitQuery) ([]model.TruckTurnaround, error) {
	snap, eq, err := s.prepare(ctx, q)
	if err != nil {
		return nil, err
	}
	return s.engine.TruckTurnarounds(snap, eq), nil
}

func (s *TurnaroundService) CurrentWaiting(ctx context.Context, q VisitQuery) ([]model.WaitingTruck, error) {
	snap, eq, err := s.prepare(ctx, q)
	if err != nil {
		return nil, err
	}
	date, ok := singleDate(eq.Window)
	if !ok {
		return nil, fmt.Errorf("%w: current waiting needs a single date", ErrInvalidInput)
	}
	return s.engine.CurrentWaiting(snap, date, eq), nil
}

func (s *TurnaroundService) StatusSummary(ctx context.Context, q VisitQuery) (model.StatusCounts, error) {
	snap, eq, err := s.prepare(ctx, q)
	if err != nil {
		return model.StatusCounts{}, err
	}
	date, ok := singleDate(eq.Window)
	if !ok {
		return model.StatusCounts{}, fmt.Errorf("%w: status summary needs a single date", ErrInvalidInput)
	}
	return s.engine.StatusSummary(snap, date, eq), nil
}

func (s *TurnaroundService) ExportWorkbook(ctx context.Context, input ExportInput) (*ExportResult, error) {
	report, err := s.buildReport(ctx, input)
	if err != nil {
		return nil, err
	}
	content, err := s.excel.Generate(*report)
	if err != nil {
		return nil, fmt.Errorf("rendering workbook: %w", err)
	}
	return &ExportResult{
		FileName: buildFileName("turnaround", "xlsx", report.PeriodStart, report.PeriodEnd),
		Content:  content,
	}, nil
}

func (s *TurnaroundService) ExportPDF(ctx context.Context, input ExportInput) (*ExportResult, error) {
	report, err := s.buildReport(ctx, input)
	if err != nil {
		return nil, err
	}
	content, err := s.pdf.Generate(*report)
	if err != nil {
		return nil, fmt.Errorf("rendering pdf: %w", err)
	}
	return &ExportResult{
		FileName: buildFileName("turnaround", "pdf", report.PeriodStart, report.PeriodEnd),
		Content:  content,
	}, nil
}

func (s *TurnaroundService) buildReport(ctx context.Context, input ExportInput) (*model.TurnaroundReport, error) {
	if input.Principal.Subject == "" {
		return nil, ErrPermissionDenied
	}

	snap, eq, err := s.prepare(ctx, input.Query)
	if err != nil {
		return nil, err
	}
	start, end, ok := windowBounds(eq.Window)
	if !ok {
		return nil, fmt.Errorf("%w: export needs a date or date range", ErrInvalidInput)
	}

	visits := s.engine.ComputeVisits(snap, eq)
	report := &model.TurnaroundReport{
		PeriodStart: start,
		PeriodEnd:   end,
		GeneratedAt: time.Now(),
		Visits:      visits,
		Products:    engine.ProductSummaries(visits),
		Trucks:      s.engine.TruckTurnarounds(snap, eq),
	}

	s.log.Info().
		Str("requested_by", input.Principal.Subject).
		Str("period_start", start.String()).
		Str("period_end", end.String()).
		Int("visits", len(report.Visits)).
		Msg("built turnaround report")
	return report, nil
}

// prepare fetches the snapshot, cleans it, and resolves the query window.
func (s *TurnaroundService) prepare(ctx context.Context, q VisitQuery) (model.Snapshot, engine.Query, error) {
	if q.Date != nil && (q.StartDate != nil || q.EndDate != nil) {
		return model.Snapshot{}, engine.Query{}, fmt.Errorf("%w: date and date range are mutually exclusive", ErrInvalidInput)
	}
	if q.StartDate != nil && q.EndDate != nil && q.StartDate.After(*q.EndDate) {
		return model.Snapshot{}, engine.Query{}, fmt.Errorf("%w: start date after end date", ErrInvalidInput)
	}
	if len(s.products) > 0 {
		for _, p := range q.Products {
			if _, ok := s.products[p]; !ok {
				return model.Snapshot{}, engine.Query{}, fmt.Errorf("%w: unknown product %q", ErrInvalidInput, p)
			}
		}
	}

	raw, err := s.source.Tables(ctx)
	if err != nil {
		return model.Snapshot{}, engine.Query{}, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	snap := s.proc.Clean(raw)

	eq := engine.Query{
		Products:              q.Products,
		Direction:             q.Direction,
		TruckCondition:        q.TruckCondition,
		UseFallbackCompletion: q.UseFallbackCompletion,
	}
	switch {
	case q.Date != nil:
		eq.Window = engine.SingleDay(*q.Date)
	case q.StartDate != nil || q.EndDate != nil:
		eq.Window = engine.Window{Start: q.StartDate, End: q.EndDate}
	default:
		if latest := s.engine.LatestDate(snap); latest != nil {
			eq.Window = engine.SingleDay(*latest)
		}
	}
	return snap, eq, nil
}

func singleDate(w engine.Window) (model.Date, bool) {
	if w.Single != nil {
		return *w.Single, true
	}
	if w.Start != nil && w.End != nil && *w.Start == *w.End {
		return *w.Start, true
	}
	return model.Date{}, false
}

func windowBounds(w engine.Window) (start, end model.Date, ok bool) {
	switch {
	case w.Single != nil:
		return *w.Single, *w.Single, true
	case w.Start != nil && w.End != nil:
		return *w.Start, *w.End, true
	default:
		return model.Date{}, model.Date{}, false
	}
}

func buildFileName(kind, ext string, start, end model.Date) string {
	return fmt.Sprintf("%s-%s-%s.%s", kind, start.String(), end.String(), ext)
}
