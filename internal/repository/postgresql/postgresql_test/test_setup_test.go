package postgresql_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/payrollpro/payroll-backend-go/internal/pkg/database"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// TestDatabaseSetup wraps a migrated connection to the integration database.
type TestDatabaseSetup struct {
	DB *database.DB
}

// NewTestDatabase connects to TEST_DATABASE_URL and applies migrations.
// The test is skipped when the variable is not set.
func NewTestDatabase(t *testing.T) *TestDatabaseSetup {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	db, err := database.NewPostgreSQLDB(context.Background(), dsn, database.PoolConfig{MaxConns: 4, MinConns: 1})
	require.NoError(t, err, "failed to connect to test database")

	require.NoError(t, database.RunMigrations(db, slog.New(slog.NewTextHandler(io.Discard, nil))))

	setup := &TestDatabaseSetup{DB: db}
	require.NoError(t, setup.TruncateAllTables(context.Background()))
	t.Cleanup(setup.Close)
	return setup
}

// TruncateAllTables removes all data from the application tables.
func (s *TestDatabaseSetup) TruncateAllTables(ctx context.Context) error {
	tx, err := s.DB.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tables := []string{
		"payroll_records",
		"timesheet_entries",
		"employees",
		"companies",
	}

	for _, table := range tables {
		if _, err := tx.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)); err != nil {
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	return tx.Commit(ctx)
}

func (s *TestDatabaseSetup) Close() {
	s.DB.Close()
}

func (s *TestDatabaseSetup) createCompany(t *testing.T, ctx context.Context) string {
	t.Helper()

	id := uuid.Must(uuid.NewV7()).String()
	_, err := s.DB.Exec(ctx,
		`INSERT INTO companies (id, name, username) VALUES ($1, $2, $3)`,
		id, "Acme Corp", "acme-"+id[len(id)-8:],
	)
	require.NoError(t, err)
	return id
}

func (s *TestDatabaseSetup) createEmployee(t *testing.T, ctx context.Context, companyID, code string, hourlyRate string) string {
	t.Helper()

	id := uuid.Must(uuid.NewV7()).String()
	_, err := s.DB.Exec(ctx,
		`INSERT INTO employees (id, company_id, employee_code, full_name, hourly_rate) VALUES ($1, $2, $3, $4, $5)`,
		id, companyID, code, "Employee "+code, decimal.RequireFromString(hourlyRate),
	)
	require.NoError(t, err)
	return id
}
