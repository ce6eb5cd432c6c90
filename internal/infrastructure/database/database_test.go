package database

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/you/blogsvc/domain"
	"gorm.io/gorm/logger"
)

func TestOpenSQL_SQLiteAndMigrate(t *testing.T) {
	db, err := OpenSQL(DriverSQLite, ":memory:", logger.Silent)
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	defer CloseSQL(db)

	require.NoError(t, AutoMigrate(db))
	assert.True(t, db.Migrator().HasTable(&domain.Account{}))
	assert.True(t, db.Migrator().HasTable(&domain.Post{}))
}

func TestOpenSQL_UnknownDriver(t *testing.T) {
	_, err := OpenSQL("oracle", "whatever", logger.Silent)
	assert.ErrorIs(t, err, domain.ErrUnknownDriver)
}

func TestOpenRedis(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client, err := OpenRedis(context.Background(), mr.Addr(), "", 0)
	require.NoError(t, err)
	require.NotNil(t, client)
	defer client.Close()
}

func TestOpenRedis_NotConfigured(t *testing.T) {
	client, err := OpenRedis(context.Background(), "", "", 0)
	assert.NoError(t, err)
	assert.Nil(t, client)
}

func TestOpenRedis_Unreachable(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	addr := mr.Addr()
	mr.Close()

	_, err = OpenRedis(context.Background(), addr, "", 0)
	assert.Error(t, err)
}
