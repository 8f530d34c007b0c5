package storage

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/magabrotheeeer/loyalty-platform/internal/migrations"
)

// TestDataFactory содержит методы для создания тестовых данных
type TestDataFactory struct {
	storage *Storage
}

// NewTestDataFactory создает новую фабрику тестовых данных
func NewTestDataFactory(storage *Storage) *TestDataFactory {
	return &TestDataFactory{storage: storage}
}

// CreateUser создает тестового пользователя и возвращает его id
func (f *TestDataFactory) CreateUser(t *testing.T, email string, professional, admin bool) (id, authID string) {
	authID = uuid.New().String()
	err := f.storage.DB.QueryRow(`INSERT INTO users (first_name, last_name, email, is_professional, is_admin, auth_id)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		"Ivan", "Petrov", email, professional, admin, authID).Scan(&id)
	require.NoError(t, err)
	return id, authID
}

// VerifyProfessional проверяет значение флага is_professional
func (f *TestDataFactory) VerifyProfessional(t *testing.T, id string, expected bool) {
	var got bool
	err := f.storage.DB.QueryRow("SELECT is_professional FROM users WHERE id = $1", id).Scan(&got)
	require.NoError(t, err)
	require.Equal(t, expected, got)
}

// setupTestDatabase поднимает PostgreSQL в контейнере и применяет миграции
func setupTestDatabase(t *testing.T) (*Storage, func()) {
	if testing.Short() {
		t.Skip("integration test")
	}
	ctx := context.Background()
	port := nat.Port("5432/tcp")

	req := testcontainers.ContainerRequest{
		Image:        "postgres:15-alpine",
		ExposedPorts: []string{string(port)},
		Env: map[string]string{
			"POSTGRES_DB":       "testdb",
			"POSTGRES_USER":     "testuser",
			"POSTGRES_PASSWORD": "testpass",
		},
		WaitingFor: wait.ForAll(
			wait.ForListeningPort(port),
			wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
		).WithDeadline(3 * time.Minute),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err, "failed to start container")

	host, err := container.Host(ctx)
	require.NoError(t, err)
	mapped, err := container.MappedPort(ctx, port)
	require.NoError(t, err, "failed to get port")

	connStr := fmt.Sprintf("postgres://testuser:testpass@%s:%s/testdb?sslmode=disable", host, mapped.Port())

	var storage *Storage
	for range 10 {
		storage, err = New(connStr)
		if err == nil {
			break
		}
		time.Sleep(time.Second)
	}
	require.NoError(t, err, "failed to create storage after retries")

	migrationsPath, err := filepath.Abs("../../migrations")
	require.NoError(t, err)
	require.NoError(t, migrations.Run(storage.DB, migrationsPath))

	cleanup := func() {
		_ = storage.Close()
		_ = container.Terminate(ctx)
	}
	return storage, cleanup
}
