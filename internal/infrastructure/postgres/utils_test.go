package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsUniqueViolation(t *testing.T) {
	assert.False(t, isUniqueViolation(nil))
	assert.True(t, isUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.True(t, isUniqueViolation(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("timeout")))
}

func TestMigracionesEmbebidas(t *testing.T) {
	names, err := pendingCandidates()
	require.NoError(t, err)
	require.NotEmpty(t, names)
	assert.Equal(t, "001_create_users.up.sql", names[0])

	b, err := migrationsFS.ReadFile("migrations/" + names[0])
	require.NoError(t, err)
	assert.Contains(t, string(b), "UNIQUE (email)")
}
