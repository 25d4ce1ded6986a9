package repositories

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/kathyn262/Waddle/models"
)

// newTestDB opens a private in-memory sqlite database and migrates the
// schema. cache=shared keeps the database alive across the pool's
// connections for the duration of the test.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Message{},
		&models.Follow{},
		&models.Like{},
	))
	return db
}

func signupTestUser(t *testing.T, users UserRepository, username string) *models.User {
	t.Helper()
	user, err := users.Signup(username, username+"@example.com", "password123", "")
	require.NoError(t, err)
	return user
}

// setTimestamp pins a message's timestamp so ordering tests are deterministic.
func setTimestamp(t *testing.T, db *gorm.DB, messageID uint, ts time.Time) {
	t.Helper()
	err := db.Model(&models.Message{}).Where("id = ?", messageID).Update("timestamp", ts).Error
	require.NoError(t, err)
}
