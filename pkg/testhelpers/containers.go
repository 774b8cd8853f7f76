package testhelpers

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver for database/sql (migrations)
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"

	"github.com/xemob/coopnet/pkg/database"
)

// PostgresImage is the PostgreSQL image started for integration tests.
const PostgresImage = "postgres:16-alpine"

// TestDB holds the shared test database container and a migrated connection pool.
type TestDB struct {
	Container testcontainers.Container
	DB        *database.DB
	ConnStr   string
}

// Pool exposes the underlying pgx pool for raw-SQL assertions.
func (t *TestDB) Pool() *pgxpool.Pool {
	return t.DB.Pool
}

var (
	sharedTestDB     *TestDB
	sharedTestDBOnce sync.Once
	sharedTestDBErr  error
)

// GetTestDB returns a shared PostgreSQL container for integration tests.
// The container is created once per test binary, with all migrations applied.
func GetTestDB(t *testing.T) *TestDB {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping integration test in short mode (requires Docker)")
	}

	sharedTestDBOnce.Do(func() {
		sharedTestDB, sharedTestDBErr = setupTestDB()
	})

	if sharedTestDBErr != nil {
		t.Fatalf("Failed to setup test database: %v", sharedTestDBErr)
	}

	return sharedTestDB
}

func setupTestDB() (*TestDB, error) {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        PostgresImage,
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_DB":       "coopnet_test",
			"POSTGRES_USER":     "coopnet",
			"POSTGRES_PASSWORD": "test_password",
		},
		// The official image logs readiness twice: once for the init server, once for the real one.
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start test container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get container host: %w", err)
	}

	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		return nil, fmt.Errorf("failed to get container port: %w", err)
	}

	connStr := fmt.Sprintf("postgres://coopnet:test_password@%s:%s/coopnet_test?sslmode=disable",
		host, port.Port())

	var db *database.DB
	for i := 0; i < 10; i++ {
		db, err = database.NewConnection(ctx, &database.Config{
			URL:            connStr,
			MaxConnections: 5,
		}, zap.NewNop())
		if err == nil {
			break
		}
		time.Sleep(500 * time.Millisecond)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to test database: %w", err)
	}

	// golang-migrate needs a database/sql handle
	sqlDB, err := sql.Open("pgx", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open sql connection: %w", err)
	}
	defer sqlDB.Close()

	if err := database.RunMigrations(sqlDB, zap.NewNop()); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &TestDB{
		Container: container,
		DB:        db,
		ConnStr:   connStr,
	}, nil
}

// ScopedContext returns a context carrying a connection acquired from the test pool,
// the same way the HTTP scope middleware does for requests.
func (t *TestDB) ScopedContext(tb testing.TB) (context.Context, func()) {
	tb.Helper()

	ctx, cleanup, err := database.NewScopeProvider(t.DB).WithScope(context.Background())
	if err != nil {
		tb.Fatalf("Failed to acquire connection: %v", err)
	}
	return ctx, cleanup
}

// Truncate empties every domain table and resets id sequences.
func (t *TestDB) Truncate(tb testing.TB) {
	tb.Helper()

	_, err := t.DB.Pool.Exec(context.Background(), `
		TRUNCATE messages, reviews, cooperations, projects, portfolio_items,
			cooperator_profiles, organizations, users
		RESTART IDENTITY CASCADE`)
	if err != nil {
		tb.Fatalf("Failed to truncate tables: %v", err)
	}
}

// InsertUser creates an active user row with an unusable password hash and returns its id.
func (t *TestDB) InsertUser(tb testing.TB, email string) int64 {
	tb.Helper()

	var id int64
	err := t.DB.Pool.QueryRow(context.Background(), `
		INSERT INTO users (email, name, password_hash)
		VALUES ($1, $1, '!')
		RETURNING id`, email).Scan(&id)
	if err != nil {
		tb.Fatalf("Failed to insert user %s: %v", email, err)
	}
	return id
}
