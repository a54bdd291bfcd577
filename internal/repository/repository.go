package repository

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
)

// DBTX is an interface abstracting *sqlx.DB and *sqlx.Tx for repository use.
type DBTX interface {
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowxContext(ctx context.Context, query string, args ...interface{}) *sqlx.Row
	Rebind(query string) string
	DriverName() string
}

// insertReturningID runs an INSERT written with '?' placeholders and returns the generated id.
func insertReturningID(ctx context.Context, exec DBTX, query string, args ...any) (int64, error) {
	query = exec.Rebind(query)

	var id int64
	if exec.DriverName() == "oracle" {
		args = append(args, sql.Out{Dest: &id})
		if _, err := exec.ExecContext(ctx, query+" RETURNING id INTO :id_out", args...); err != nil {
			return 0, err
		}
		return id, nil
	}

	if err := exec.QueryRowxContext(ctx, query+" RETURNING id", args...).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

// execAffecting runs a statement and reports how many rows it touched.
func execAffecting(ctx context.Context, exec DBTX, query string, args ...any) (int64, error) {
	res, err := exec.ExecContext(ctx, exec.Rebind(query), args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// inClause expands a '?' list for an IN predicate.
func inClause(query string, ids []int64) (string, []interface{}, error) {
	return sqlx.In(query, ids)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
