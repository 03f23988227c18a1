// Package testutil opens isolated PostgreSQL schemas for store tests.
package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"regexp"
	"strings"
	"testing"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var nonIdentChars = regexp.MustCompile(`[^a-z0-9_]+`)

// RequireDatabaseEnv makes store tests fail instead of skip when no database is configured.
// CI sets it (or CI itself) so the store suite cannot pass by skipping.
const RequireDatabaseEnv = "TEST_REQUIRE_DATABASE"

// postgresDSN reads TEST_DATABASE_URL and whether its absence is fatal.
func postgresDSN(getenv func(string) string) (dsn string, required bool) {
	dsn = strings.TrimSpace(getenv("TEST_DATABASE_URL"))
	required = getenv(RequireDatabaseEnv) != "" || getenv("CI") != ""
	return dsn, required
}

// OpenPostgres returns a gorm handle whose search_path is a fresh schema dropped at cleanup.
// Without TEST_DATABASE_URL the test fails under CI or TEST_REQUIRE_DATABASE and is skipped otherwise.
func OpenPostgres(t *testing.T, prefix string) *gorm.DB {
	t.Helper()

	dsn, required := postgresDSN(os.Getenv)
	if dsn == "" {
		if required {
			t.Fatalf("TEST_DATABASE_URL not set but %s or CI is; store tests cannot run", RequireDatabaseEnv)
		}
		t.Logf("WARNING: TEST_DATABASE_URL not set, skipping PostgreSQL store test %s", t.Name())
		t.Skip("TEST_DATABASE_URL not set")
	}

	schema := newSchemaName(prefix)

	adminDB, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Fatalf("open postgres admin connection: %v", err)
	}
	t.Cleanup(func() { _ = adminDB.Close() })

	if err := adminDB.PingContext(context.Background()); err != nil {
		t.Fatalf("ping postgres: %v", err)
	}
	if _, err := adminDB.ExecContext(context.Background(), fmt.Sprintf(`CREATE SCHEMA "%s"`, schema)); err != nil {
		t.Fatalf("create test schema %q: %v", schema, err)
	}
	t.Cleanup(func() {
		_, _ = adminDB.ExecContext(context.Background(), fmt.Sprintf(`DROP SCHEMA IF EXISTS "%s" CASCADE`, schema))
	})

	schemaDSN, err := DSNWithSearchPath(dsn, schema)
	if err != nil {
		t.Fatalf("build postgres DSN with search_path: %v", err)
	}

	gdb, err := gorm.Open(postgres.Open(schemaDSN), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open gorm: %v", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("gorm sql handle: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })
	return gdb
}

// DSNWithSearchPath sets search_path on a URL or key=value DSN.
func DSNWithSearchPath(dsn, schema string) (string, error) {
	if strings.Contains(dsn, "://") {
		u, err := url.Parse(dsn)
		if err != nil {
			return "", fmt.Errorf("parse DSN: %w", err)
		}
		q := u.Query()
		q.Set("search_path", schema)
		u.RawQuery = q.Encode()
		return u.String(), nil
	}

	if strings.Contains(dsn, "search_path=") {
		re := regexp.MustCompile(`search_path=\S+`)
		return re.ReplaceAllString(dsn, "search_path="+schema), nil
	}
	return dsn + " search_path=" + schema, nil
}

func newSchemaName(prefix string) string {
	base := strings.ToLower(prefix)
	base = nonIdentChars.ReplaceAllString(base, "_")
	base = strings.Trim(base, "_")
	if base == "" {
		base = "test"
	}

	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")
	const maxIdentLen = 63
	if maxBase := maxIdentLen - len("t__") - len(suffix); len(base) > maxBase {
		base = base[:maxBase]
	}
	return fmt.Sprintf("t_%s_%s", base, suffix)
}
