package migrations

import (
	"testing"

	"github.com/stretchr/testify/require"

	"pharmanear/m/internal/database"
)

func TestRunIsIdempotent(t *testing.T) {
	db, err := database.Connect(":memory:")
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, Run(db))
	require.NoError(t, Run(db))

	var tables []string
	require.NoError(t, db.Select(&tables, `SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name`))
	require.Equal(t, []string{"medicines", "notify_requests", "orders", "pharmacies", "stock"}, tables)
}
