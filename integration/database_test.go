//go:build database

package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestReportboardWithMySQL tests the reportboard CLI with a MySQL backend.
func TestReportboardWithMySQL(t *testing.T) {
	ctx := context.Background()

	// Start MySQL container
	req := testcontainers.ContainerRequest{
		Image:        "mysql:8",
		ExposedPorts: []string{"3306/tcp"},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": "secret123",
			"MYSQL_DATABASE":      "reportboard",
		},
		WaitingFor: wait.ForLog("port: 3306  MySQL Community Server").WithStartupTimeout(60 * time.Second),
	}
	mysqlC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = mysqlC.Terminate(ctx) }()

	// Get connection details
	host, err := mysqlC.Host(ctx)
	require.NoError(t, err)
	port, err := mysqlC.MappedPort(ctx, "3306")
	require.NoError(t, err)

	connStr := fmt.Sprintf("root:secret123@tcp(%s:%s)/reportboard?parseTime=true", host, port.Port())
	exerciseStore(t, []string{"REPORTBOARD_BACKEND=mysql", "REPORTBOARD_DB_CONNECT=" + connStr})
}

// TestReportboardWithPostgres tests the reportboard CLI with a PostgreSQL backend.
func TestReportboardWithPostgres(t *testing.T) {
	ctx := context.Background()

	// Start Postgres container
	req := testcontainers.ContainerRequest{
		Image:        "postgres:18-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_HOST_AUTH_METHOD": "trust",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).WithStartupTimeout(60 * time.Second),
	}
	pgC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = pgC.Terminate(ctx) }()

	// Get connection details
	host, err := pgC.Host(ctx)
	require.NoError(t, err)
	port, err := pgC.MappedPort(ctx, "5432")
	require.NoError(t, err)

	connStr := fmt.Sprintf("host=%s port=%s user=postgres dbname=postgres sslmode=disable", host, port.Port())
	exerciseStore(t, []string{"REPORTBOARD_BACKEND=postgresql", "REPORTBOARD_DB_CONNECT=" + connStr})
}

// TestReportboardWithSQLite runs the same flow against a throwaway SQLite file.
func TestReportboardWithSQLite(t *testing.T) {
	dbPath := t.TempDir() + "/logs.db"
	exerciseStore(t, []string{"REPORTBOARD_BACKEND=sqlite", "REPORTBOARD_DB_CONNECT=" + dbPath})
}

// exerciseStore migrates, seeds and reports on a store, then clears it.
func exerciseStore(t *testing.T, env []string) {
	dir := t.TempDir()
	env = append(env, "HOME="+dir)

	runCommand(t, dir, env, "db", "migrate")
	runCommand(t, dir, env, "db", "seed", "--records", "50", "--days", "10", "--seed", "7")

	status := runCommand(t, dir, env, "db", "status")
	assert.Contains(t, status, "Total Rows: 50")

	report := runReport(t, dir, env)
	assert.Equal(t, 50, report.TotalMatched)
	assert.Equal(t, 50, report.Metrics.TotalRequests)
	assert.Equal(t, report.Metrics.TotalRequests-report.Metrics.SuccessfulRequests, report.Metrics.FailedRequests)

	filtered := runReport(t, dir, env, "--start", "5 days ago", "--end", "today")
	assert.LessOrEqual(t, filtered.TotalMatched, 50)
	require.NotNil(t, filtered.Window)

	runCommand(t, dir, env, "db", "clear")
}
