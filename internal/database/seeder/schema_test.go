package seeder

import (
	"context"
	"errors"
	"testing"

	"skill-exchange/internal/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type columnsDB struct {
	database.DB
	columns []string
	err     error
}

func (d columnsDB) Query(context.Context, string, ...any) (database.Rows, error) {
	if d.err != nil {
		return nil, d.err
	}
	return &columnRows{cols: d.columns, i: -1}, nil
}

type columnRows struct {
	cols []string
	i    int
}

func (r *columnRows) Close()     {}
func (r *columnRows) Err() error { return nil }

func (r *columnRows) Next() bool {
	r.i++
	return r.i < len(r.cols)
}

func (r *columnRows) Scan(dest ...any) error {
	*(dest[0].(*string)) = r.cols[r.i]
	return nil
}

func TestEnsureTableColumns(t *testing.T) {
	ctx := context.Background()
	db := columnsDB{columns: []string{"id", "name", "email"}}

	require.NoError(t, EnsureTableColumns(ctx, db, "users", "id", "email"))

	err := EnsureTableColumns(ctx, db, "users", "id", "bio", "skills_to_offer")
	require.ErrorIs(t, err, ErrSchemaMismatch)
	assert.Contains(t, err.Error(), "users.bio, users.skills_to_offer")

	err = EnsureTableColumns(ctx, columnsDB{}, "users", "id")
	require.ErrorIs(t, err, ErrSchemaMismatch)
	assert.Contains(t, err.Error(), "does not exist")

	boom := errors.New("boom")
	err = EnsureTableColumns(ctx, columnsDB{err: boom}, "users", "id")
	assert.ErrorIs(t, err, boom)

	assert.Error(t, EnsureTableColumns(ctx, db, "users"))
	assert.Error(t, EnsureTableColumns(ctx, nil, "users", "id"))
}
