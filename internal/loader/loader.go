// Package loader fetches the four yard sheets as CSV exports and serves them
// as one self-consistent snapshot. A short TTL cache keeps dashboard refresh
// traffic from hammering the spreadsheet export endpoint.
package loader

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/isisteel/yard-turnaround/internal/config"
	"github.com/isisteel/yard-turnaround/internal/model"
)

const exportURLFormat = "https://docs.google.com/spreadsheets/d/%s/export?format=csv&gid=%s"

type Client struct {
	cfg  config.SheetsConfig
	http *http.Client
	log  zerolog.Logger

	mu        sync.Mutex
	cached    *model.RawTables
	fetchedAt time.Time
}

func New(cfg config.SheetsConfig, log zerolog.Logger) *Client {
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.FetchTimeout},
		log:  log,
	}
}

// Tables returns the current snapshot of all four sheets, refetching when the
// cached one is older than the TTL. All four sheets are fetched together so
// one computation pass never mixes captures.
func (c *Client) Tables(ctx context.Context) (model.RawTables, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cached != nil && time.Since(c.fetchedAt) < c.cfg.CacheTTL {
		return *c.cached, nil
	}

	tables, err := c.fetchAll(ctx)
	if err != nil {
		if c.cached != nil {
			c.log.Warn().Err(err).Msg("sheet fetch failed, serving stale snapshot")
			return *c.cached, nil
		}
		return model.RawTables{}, err
	}

	c.cached = &tables
	c.fetchedAt = time.Now()
	return tables, nil
}

func (c *Client) fetchAll(ctx context.Context) (model.RawTables, error) {
	var tables model.RawTables
	var err error

	if tables.Security, err = c.fetchSheet(ctx, c.cfg.SecurityGID); err != nil {
		return model.RawTables{}, fmt.Errorf("security sheet: %w", err)
	}
	if tables.Driver, err = c.fetchSheet(ctx, c.cfg.DriverGID); err != nil {
		return model.RawTables{}, fmt.Errorf("driver sheet: %w", err)
	}
	if tables.Status, err = c.fetchSheet(ctx, c.cfg.StatusGID); err != nil {
		return model.RawTables{}, fmt.Errorf("status sheet: %w", err)
	}
	if tables.Logistic, err = c.fetchSheet(ctx, c.cfg.LogisticGID); err != nil {
		return model.RawTables{}, fmt.Errorf("logistic sheet: %w", err)
	}

	c.log.Debug().
		Int("security_rows", len(tables.Security.Rows)).
		Int("driver_rows", len(tables.Driver.Rows)).
		Int("status_rows", len(tables.Status.Rows)).
		Int("logistic_rows", len(tables.Logistic.Rows)).
		Msg("fetched sheet snapshot")
	return tables, nil
}

func (c *Client) fetchSheet(ctx context.Context, gid string) (model.RawTable, error) {
	url := fmt.Sprintf(exportURLFormat, c.cfg.SpreadsheetID, gid)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return model.RawTable{}, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return model.RawTable{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return model.RawTable{}, fmt.Errorf("export returned status %d", resp.StatusCode)
	}
	return ParseCSV(resp.Body)
}

// ParseCSV reads one sheet export. All cells stay strings; typing is the
// processor's job. Ragged rows are tolerated, the processor pads by column
// lookup.
func ParseCSV(r io.Reader) (model.RawTable, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return model.RawTable{}, nil
	}
	if err != nil {
		return model.RawTable{}, fmt.Errorf("reading header: %w", err)
	}

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return model.RawTable{}, fmt.Errorf("reading row %d: %w", len(rows)+2, err)
		}
		rows = append(rows, record)
	}
	return model.RawTable{Header: header, Rows: rows}, nil
}
