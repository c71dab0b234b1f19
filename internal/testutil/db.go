// Package testutil содержит общие хелперы тестов: БД в памяти, фикстуры и фейки внешних сервисов.
package testutil

import (
	"fmt"
	"testing"

	"hiremind_backend/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// NewTestDB открывает отдельную sqlite базу в памяти и мигрирует все модели.
// Пул ограничен одним соединением: база в памяти живет, пока открыто соединение.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&_pragma=foreign_keys(1)", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err, "Не удалось открыть тестовую БД")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)

	require.NoError(t, db.AutoMigrate(models.AllModels()...), "AutoMigrate не должен падать")

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	return db
}
