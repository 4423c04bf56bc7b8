// Package csvremote reads the activity table from a CSV document served
// over HTTP. Columns the document lacks are synthesized so the dashboard
// has something to chart; the result is demo data, not production data.
package csvremote

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"activity-dashboard-service/internal/activity/core/domain"
	"activity-dashboard-service/internal/activity/core/ports"
)

type Config struct {
	URL            string
	Name           string
	SyntheticStart time.Time
	SyntheticDays  int
	SyntheticUsers int
}

type Source struct {
	client  *http.Client
	cfg     Config
	mapping domain.ColumnMapping
}

var _ ports.ActivitySourcePort = (*Source)(nil)

func NewSource(client *http.Client, cfg Config, mapping domain.ColumnMapping) *Source {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	if cfg.SyntheticDays <= 0 {
		cfg.SyntheticDays = 30
	}
	if cfg.SyntheticUsers <= 0 {
		cfg.SyntheticUsers = 50
	}
	if cfg.Name == "" {
		cfg.Name = "activity"
	}
	return &Source{client: client, cfg: cfg, mapping: mapping}
}

func (s *Source) Name() string { return "csv:" + s.cfg.Name }

func (s *Source) LoadActivity(ctx context.Context) (*domain.Table, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.cfg.URL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "text/csv")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, &FetchError{Status: resp.StatusCode}
	}

	cols, records, err := readCSV(resp.Body)
	if err != nil {
		return nil, err
	}

	cols, records = s.synthesize(cols, records)
	return domain.NewTable(s.cfg.Name, cols, s.mapping, records), nil
}

// FetchError represents a non-successful response for the CSV document.
type FetchError struct {
	Status int
}

func (e *FetchError) Error() string {
	return "csv fetch failed with status " + http.StatusText(e.Status)
}

func readCSV(r io.Reader) ([]string, [][]any, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil, fmt.Errorf("csv document is empty")
	}
	if err != nil {
		return nil, nil, fmt.Errorf("read csv header: %w", err)
	}
	header[0] = strings.TrimPrefix(header[0], "\ufeff")
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var records [][]any
	for {
		line, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("read csv: %w", err)
		}
		rec := make([]any, len(line))
		for i, v := range line {
			if v != "" {
				rec[i] = v
			}
		}
		records = append(records, rec)
	}
	return header, records, nil
}

// synthesize appends the date, user and total columns missing from the document.
func (s *Source) synthesize(cols []string, records [][]any) ([]string, [][]any) {
	add := func(f domain.Field, value func(i int, rec []any) any) {
		name := s.mapping[f]
		if name == "" {
			return
		}
		if _, ok := s.mapping.Resolve(cols)[f]; ok {
			return
		}
		for i, rec := range records {
			records[i] = append(rec, value(i, rec))
		}
		cols = append(cols, name)
	}

	start := s.cfg.SyntheticStart
	if start.IsZero() {
		start = time.Now().UTC().AddDate(0, 0, -s.cfg.SyntheticDays)
	}
	add(domain.FieldDate, func(i int, _ []any) any {
		return start.AddDate(0, 0, i%s.cfg.SyntheticDays).Format("2006-01-02")
	})
	add(domain.FieldUserID, func(i int, _ []any) any {
		return fmt.Sprintf("user-%d", i%s.cfg.SyntheticUsers)
	})

	totals := []struct{ total, key domain.Field }{
		{domain.FieldTotalDay, domain.FieldDate},
		{domain.FieldTotalApp, domain.FieldOrigin},
		{domain.FieldTotalByConcept, domain.FieldConcept},
		{domain.FieldTotalTag, domain.FieldTag},
	}
	for _, tt := range totals {
		keyIdx, ok := s.mapping.Resolve(cols)[tt.key]
		if !ok {
			continue
		}
		counts := make(map[any]int64)
		for _, rec := range records {
			if rec[keyIdx] != nil {
				counts[rec[keyIdx]]++
			}
		}
		add(tt.total, func(_ int, rec []any) any {
			if rec[keyIdx] == nil {
				return nil
			}
			return counts[rec[keyIdx]]
		})
	}
	return cols, records
}
