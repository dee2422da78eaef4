package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestStore(t *testing.T) *TableStore {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	st := NewTableStore(db)
	if err := st.Migrate(); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	return st
}

func TestFetchAllEmptyRange(t *testing.T) {
	st := setupTestStore(t)

	rows, err := st.FetchAll(context.Background(), "orders")
	assert.NoError(t, err)
	assert.Empty(t, rows)
}

func TestAppendAndFetchAllPreservesStorageOrder(t *testing.T) {
	st := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, st.Append(ctx, "orders", []string{"OS-1", "first"}))
	require.NoError(t, st.Append(ctx, "orders", []string{"OS-2", "second"}))
	require.NoError(t, st.Append(ctx, "orders", []string{"OS-3", "third"}))

	rows, err := st.FetchAll(ctx, "orders")
	require.NoError(t, err)
	require.Len(t, rows, 3)

	for i, code := range []string{"OS-1", "OS-2", "OS-3"} {
		assert.Equal(t, i, rows[i].Position)
		assert.Equal(t, int64(1), rows[i].Version)
		assert.Equal(t, code, rows[i].Cells[0])
	}
}

func TestAppendDoesNotCheckUniqueness(t *testing.T) {
	st := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, st.Append(ctx, "orders", []string{"OS-1"}))
	require.NoError(t, st.Append(ctx, "orders", []string{"OS-1"}))

	rows, err := st.FetchAll(ctx, "orders")
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestRangesAreIndependent(t *testing.T) {
	st := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, st.Append(ctx, "orders", []string{"OS-1"}))
	require.NoError(t, st.Append(ctx, "users", []string{"admin", "secret", "superadmin"}))

	orders, err := st.FetchAll(ctx, "orders")
	require.NoError(t, err)
	users, err := st.FetchAll(ctx, "users")
	require.NoError(t, err)

	assert.Len(t, orders, 1)
	assert.Len(t, users, 1)
	assert.Equal(t, 0, users[0].Position)
}

func TestOverwriteRowReplacesEntireRow(t *testing.T) {
	st := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, st.Append(ctx, "orders", []string{"OS-1", "old", "kept-only-if-carried"}))

	rows, err := st.FetchAll(ctx, "orders")
	require.NoError(t, err)

	// The caller carries forward only two cells; the third is lost.
	err = st.OverwriteRow(ctx, "orders", rows[0].Position, rows[0].Version, []string{"OS-1", "new"})
	require.NoError(t, err)

	rows, err = st.FetchAll(ctx, "orders")
	require.NoError(t, err)
	assert.Equal(t, []string{"OS-1", "new"}, rows[0].Cells)
	assert.Equal(t, int64(2), rows[0].Version)
}

func TestOverwriteRowUnknownPosition(t *testing.T) {
	st := setupTestStore(t)

	err := st.OverwriteRow(context.Background(), "orders", 7, 1, []string{"x"})
	assert.ErrorIs(t, err, ErrRowNotFound)
}

func TestOverwriteRowStaleVersionConflicts(t *testing.T) {
	st := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, st.Append(ctx, "orders", []string{"OS-1", "original"}))

	// Two writers read the same pre-mutation row.
	readA, err := st.FetchAll(ctx, "orders")
	require.NoError(t, err)
	readB, err := st.FetchAll(ctx, "orders")
	require.NoError(t, err)

	// Writer A lands first, in full.
	err = st.OverwriteRow(ctx, "orders", readA[0].Position, readA[0].Version, []string{"OS-1", "A"})
	require.NoError(t, err)

	// Writer B is rejected rather than silently clobbering A.
	err = st.OverwriteRow(ctx, "orders", readB[0].Position, readB[0].Version, []string{"OS-1", "B"})
	assert.ErrorIs(t, err, ErrVersionConflict)

	rows, err := st.FetchAll(ctx, "orders")
	require.NoError(t, err)
	assert.Equal(t, []string{"OS-1", "A"}, rows[0].Cells)
}

func TestBlankedRowKeepsPosition(t *testing.T) {
	st := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, st.Append(ctx, "users", []string{"alice", "pw", "admin"}))
	require.NoError(t, st.Append(ctx, "users", []string{"bob", "pw", "technician"}))

	rows, err := st.FetchAll(ctx, "users")
	require.NoError(t, err)

	require.NoError(t, st.OverwriteRow(ctx, "users", rows[0].Position, rows[0].Version, []string{"", "", ""}))

	rows, err = st.FetchAll(ctx, "users")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"", "", ""}, rows[0].Cells)
	assert.Equal(t, "bob", rows[1].Cells[0])
	assert.Equal(t, 1, rows[1].Position)
}
