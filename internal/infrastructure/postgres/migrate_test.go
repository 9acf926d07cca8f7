package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPendingCandidates_OrdenYSoloUp(t *testing.T) {
	names, err := pendingCandidates()
	require.NoError(t, err)
	require.NotEmpty(t, names)
	assert.Equal(t, "001_create_users.up.sql", names[0])
	assert.IsIncreasing(t, names)
	for _, n := range names {
		assert.Contains(t, n, ".up.sql")
	}
}
