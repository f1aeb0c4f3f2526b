package main

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/praetor-admin/praetor-admin/internal/shared"
)

type stubRow struct {
	scan func(dest ...any) error
}

func (r stubRow) Scan(dest ...any) error { return r.scan(dest...) }

type stubDB struct {
	queries []string
	execs   []string
}

func (d *stubDB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	d.queries = append(d.queries, sql)
	return stubRow{scan: func(dest ...any) error {
		if id, ok := dest[0].(*int64); ok {
			*id = 42
		}
		return nil
	}}
}

func (d *stubDB) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	d.execs = append(d.execs, sql)
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func TestSeedAdminRoleWritesFullRowShape(t *testing.T) {
	db := &stubDB{}
	require.NoError(t, seedAdminRole(context.Background(), db))

	// The repository always writes and scans updated_at as non-null, so the
	// seeded row must carry it too.
	require.Len(t, db.queries, 1)
	assert.Contains(t, db.queries[0], "created_at, updated_at")
	assert.Contains(t, db.queries[0], "updated_at = NOW()")

	require.Len(t, db.execs, 1)
	assert.Contains(t, db.execs[0], "role_permissions")
}

func TestSeedPermissionsCoversCatalog(t *testing.T) {
	db := &stubDB{}
	require.NoError(t, seedPermissions(context.Background(), db))
	assert.Len(t, db.execs, len(shared.AllPermissions()))
}
