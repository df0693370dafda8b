package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestPersistentModels_Migrate(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	defer func() {
		sqlDB, _ := db.DB()
		_ = sqlDB.Close()
	}()

	require.NoError(t, db.AutoMigrate(PersistentModels()...))

	for _, table := range []string{
		"users", "posts", "post_images", "post_tags",
		"comments", "likes", "comment_likes",
		"works", "work_images", "work_tags", "reviews",
	} {
		assert.True(t, db.Migrator().HasTable(table), "missing table %s", table)
	}
}
