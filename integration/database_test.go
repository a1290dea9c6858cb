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

// TestReadinessWithMySQL records assessment history in a MySQL backend.
func TestReadinessWithMySQL(t *testing.T) {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "mysql:8",
		ExposedPorts: []string{"3306/tcp"},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": "secret123",
			"MYSQL_DATABASE":      "readiness",
		},
		WaitingFor: wait.ForLog("port: 3306  MySQL Community Server").WithStartupTimeout(60 * time.Second),
	}
	mysqlC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = mysqlC.Terminate(ctx) }()

	host, err := mysqlC.Host(ctx)
	require.NoError(t, err)
	port, err := mysqlC.MappedPort(ctx, "3306")
	require.NoError(t, err)

	connStr := fmt.Sprintf("root:secret123@tcp(%s:%s)/readiness?parseTime=true", host, port.Port())
	runHistoryLifecycle(t, "mysql", connStr)
}

// TestReadinessWithPostgres records assessment history in a PostgreSQL backend.
func TestReadinessWithPostgres(t *testing.T) {
	ctx := context.Background()

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

	host, err := pgC.Host(ctx)
	require.NoError(t, err)
	port, err := pgC.MappedPort(ctx, "5432")
	require.NoError(t, err)

	connStr := fmt.Sprintf("host=%s port=%s user=postgres dbname=postgres sslmode=disable", host, port.Port())
	runHistoryLifecycle(t, "postgresql", connStr)
}

// runHistoryLifecycle migrates, clears, records and inspects history on one backend.
func runHistoryLifecycle(t *testing.T, backend, connStr string) {
	t.Helper()
	env := []string{
		"READINESS_HISTORY_BACKEND=" + backend,
		"READINESS_HISTORY_DB_CONNECT=" + connStr,
	}

	_, err := runReadiness(t, env, "history", "migrate")
	require.NoError(t, err)

	_, err = runReadiness(t, env, "history", "clear")
	require.NoError(t, err)

	_, err = runReadiness(t, env, "assess", sampleSheet, "--output", "json")
	require.NoError(t, err)

	_, err = runReadiness(t, env, "check", sampleSheet, "--min-overall", "10")
	require.NoError(t, err)

	out, err := runReadiness(t, env, "history", "status")
	require.NoError(t, err)
	assert.Contains(t, out, backend)
}
