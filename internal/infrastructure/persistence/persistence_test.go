package persistence

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *Database {
	t.Helper()
	db, err := NewTestDatabase()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}
