package testutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDSNWithSearchPath(t *testing.T) {
	got, err := DSNWithSearchPath("postgres://u:p@localhost:5432/inv?sslmode=disable", "tenant_a")
	require.NoError(t, err)
	assert.Contains(t, got, "search_path=tenant_a")
	assert.Contains(t, got, "sslmode=disable")

	got, err = DSNWithSearchPath("host=localhost dbname=inv sslmode=disable", "tenant_b")
	require.NoError(t, err)
	assert.Equal(t, "host=localhost dbname=inv sslmode=disable search_path=tenant_b", got)

	got, err = DSNWithSearchPath("host=localhost search_path=public sslmode=disable", "tenant_c")
	require.NoError(t, err)
	assert.Equal(t, "host=localhost search_path=tenant_c sslmode=disable", got)
}

func TestNewSchemaName(t *testing.T) {
	name := newSchemaName("Affectation-Close")
	assert.True(t, strings.HasPrefix(name, "t_affectation_close_"), name)
	assert.LessOrEqual(t, len(name), 63)

	long := newSchemaName(strings.Repeat("x", 100))
	assert.LessOrEqual(t, len(long), 63)
}

func TestPostgresDSN(t *testing.T) {
	env := func(vars map[string]string) func(string) string {
		return func(k string) string { return vars[k] }
	}

	dsn, required := postgresDSN(env(map[string]string{}))
	assert.Empty(t, dsn)
	assert.False(t, required)

	dsn, required = postgresDSN(env(map[string]string{"TEST_DATABASE_URL": " postgres://x "}))
	assert.Equal(t, "postgres://x", dsn)
	assert.False(t, required)

	_, required = postgresDSN(env(map[string]string{RequireDatabaseEnv: "1"}))
	assert.True(t, required)

	_, required = postgresDSN(env(map[string]string{"CI": "true"}))
	assert.True(t, required)
}
