package sqlstore

import (
	"context"
	"fmt"
	"regexp"

	"activity-dashboard-service/internal/activity/core/domain"
	"activity-dashboard-service/internal/activity/core/ports"
)

type RowScanner interface {
	Next() bool
	Columns() ([]string, error)
	SliceScan() ([]any, error)
	Err() error
	Close() error
}

type DB interface {
	QueryContext(ctx context.Context, query string, args ...any) (RowScanner, error)
}

var tableNameRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

type ActivityRepository struct {
	db      DB
	driver  string
	table   string
	mapping domain.ColumnMapping
}

var _ ports.ActivitySourcePort = (*ActivityRepository)(nil)

// NewActivityRepository reads table through db. The table name is spliced
// into the query, so only plain (optionally schema-qualified) identifiers
// are accepted.
func NewActivityRepository(db DB, driver, table string, mapping domain.ColumnMapping) (*ActivityRepository, error) {
	if !tableNameRe.MatchString(table) {
		return nil, fmt.Errorf("invalid activity table name %q", table)
	}
	return &ActivityRepository{db: db, driver: driver, table: table, mapping: mapping}, nil
}

func (r *ActivityRepository) Name() string {
	return r.driver + ":" + r.table
}

func (r *ActivityRepository) LoadActivity(ctx context.Context) (*domain.Table, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT * FROM "+r.table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var records [][]any
	for rows.Next() {
		rec, err := rows.SliceScan()
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return domain.NewTable(r.table, cols, r.mapping, records), nil
}
