package dataset

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jack-barr3tt/gbr-priority/src/common/types"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// LoadPostgres imports every row of table as a dataset. Column names come
// from the result set; values are converted to the scalar kinds the CSV
// reader produces.
func LoadPostgres(ctx context.Context, pool *pgxpool.Pool, table string) (types.Dataset, error) {
	ident, err := tableIdent(table)
	if err != nil {
		return types.Dataset{}, err
	}

	rows, err := pool.Query(ctx, "SELECT * FROM "+ident.Sanitize())
	if err != nil {
		return types.Dataset{}, fmt.Errorf("query %s: %w", ident.Sanitize(), err)
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	ds := types.Dataset{Columns: make([]string, len(fields))}
	for i, f := range fields {
		ds.Columns[i] = f.Name
	}

	for rows.Next() {
		vals, err := rows.Values()
		if err != nil {
			return types.Dataset{}, err
		}
		row := make(types.Record, len(fields))
		for i, col := range ds.Columns {
			row[col] = pgCell(vals[i])
		}
		ds.Rows = append(ds.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return types.Dataset{}, err
	}

	return ds, nil
}

var ErrNoTable = errors.New("table name is required")

func tableIdent(table string) (pgx.Identifier, error) {
	ident := pgx.Identifier(strings.Split(strings.TrimSpace(table), "."))
	for _, part := range ident {
		if part == "" {
			return nil, ErrNoTable
		}
	}
	return ident, nil
}

// StorePostgres replaces the contents of table with ds, creating the table
// when it does not exist. Column types are inferred from the cell values.
func StorePostgres(ctx context.Context, pool *pgxpool.Pool, table string, ds types.Dataset) (int64, error) {
	ident, err := tableIdent(table)
	if err != nil {
		return 0, err
	}
	if len(ds.Columns) == 0 {
		return 0, ErrNoHeader
	}

	colTypes := make([]string, len(ds.Columns))
	defs := make([]string, len(ds.Columns))
	for i, col := range ds.Columns {
		colTypes[i] = ColumnType(ds, col)
		defs[i] = pgx.Identifier{col}.Sanitize() + " " + colTypes[i]
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	create := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", ident.Sanitize(), strings.Join(defs, ", "))
	if _, err := tx.Exec(ctx, create); err != nil {
		return 0, fmt.Errorf("create %s: %w", ident.Sanitize(), err)
	}
	if _, err := tx.Exec(ctx, "TRUNCATE "+ident.Sanitize()); err != nil {
		return 0, fmt.Errorf("truncate %s: %w", ident.Sanitize(), err)
	}

	copied, err := tx.CopyFrom(ctx, ident, ds.Columns, pgx.CopyFromSlice(ds.Len(), func(i int) ([]any, error) {
		vals := make([]any, len(ds.Columns))
		for j, col := range ds.Columns {
			vals[j] = copyValue(ds.Rows[i], col, colTypes[j])
		}
		return vals, nil
	}))
	if err != nil {
		return 0, fmt.Errorf("copy into %s: %w", ident.Sanitize(), err)
	}

	return copied, tx.Commit(ctx)
}

const (
	pgBigint  = "BIGINT"
	pgDouble  = "DOUBLE PRECISION"
	pgBoolean = "BOOLEAN"
	pgText    = "TEXT"
)

// ColumnType picks the narrowest Postgres type that holds every present
// value of col.
func ColumnType(ds types.Dataset, col string) string {
	allInt, allNum, allBool, seen := true, true, true, false
	for _, row := range ds.Rows {
		v := row[col]
		if v == nil {
			continue
		}
		seen = true
		switch v.(type) {
		case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
			allBool = false
		case float32, float64:
			allInt, allBool = false, false
		case bool:
			allInt, allNum = false, false
		default:
			return pgText
		}
	}
	switch {
	case !seen:
		return pgText
	case allBool:
		return pgBoolean
	case allInt:
		return pgBigint
	case allNum:
		return pgDouble
	}
	return pgText
}

func copyValue(row types.Record, col, colType string) any {
	v := row[col]
	if v == nil {
		return nil
	}
	switch colType {
	case pgBigint:
		if i, ok := v.(int64); ok {
			return i
		}
		f, _ := row.Number(col)
		return int64(f)
	case pgDouble:
		f, _ := row.Number(col)
		return f
	case pgBoolean:
		return v
	}
	return row.Text(col)
}

func pgCell(v any) any {
	switch t := v.(type) {
	case nil:
		return nil
	case int16:
		return int64(t)
	case int32:
		return int64(t)
	case int64:
		return t
	case float32:
		return finite(float64(t))
	case float64:
		return finite(t)
	case string:
		return t
	case bool:
		return t
	case pgtype.Numeric:
		f, err := t.Float64Value()
		if err != nil || !f.Valid {
			return nil
		}
		return finite(f.Float64)
	case time.Time:
		return t.Format(time.RFC3339)
	case []byte:
		return string(t)
	}
	return fmt.Sprint(v)
}
