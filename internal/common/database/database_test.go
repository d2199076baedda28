package database

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"assessment-workers/internal/common/config"
)

func TestPostgresClient_Migrate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	client := NewPostgresFromDB(db)
	defer client.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS assessments").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, client.Migrate(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresClient_MigrateError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	client := NewPostgresFromDB(db)
	defer client.Close()

	mock.ExpectExec("CREATE TABLE").WillReturnError(errors.New("permission denied"))

	err = client.Migrate(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "permission denied")
}

func TestPostgresClient_Ping(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	client := NewPostgresFromDB(db)
	defer client.Close()

	mock.ExpectPing()
	assert.NoError(t, client.Ping(context.Background()))
}

func TestRedisClient_Ping(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := NewRedis(config.RedisConfig{Address: mr.Addr(), KeyPrefix: "assessment"})
	require.NoError(t, err)
	defer client.Close()

	assert.NoError(t, client.Ping(context.Background()))
	assert.Equal(t, "assessment", client.KeyPrefix())

	mr.Close()
	assert.Error(t, client.Ping(context.Background()))
}

func TestKey(t *testing.T) {
	assert.Equal(t, "assessment:health:u1:history", Key("assessment", "health", "u1", "history"))
	assert.Equal(t, "health:u1", Key("", "health", "u1"))
}
