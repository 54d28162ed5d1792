package postgres

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/hairwhere/hairwhere/internal/domain"
)

// newTestDB opens a private in-memory database with the gorm models migrated.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// every new connection to :memory: is a new database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&domain.User{},
		&domain.Photo{},
		&domain.PhotoImage{},
		&domain.Comment{},
		&domain.Like{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, kakaoID int64, nick string) *domain.User {
	t.Helper()
	u := &domain.User{KakaoID: kakaoID, NickName: nick, ProfileImageURL: "http://img/" + nick}
	require.NoError(t, db.Create(u).Error)
	return u
}

func seedPhoto(t *testing.T, db *gorm.DB, owner *domain.User, mutate func(*domain.Photo)) *domain.Photo {
	t.Helper()
	p := &domain.Photo{
		UserID:   owner.ID,
		KakaoID:  owner.KakaoID,
		Nickname: owner.NickName,
		HairName: "layered",
		Gender:   "female",
		Created:  time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		Images:   []domain.PhotoImage{{Path: "http://blob/a.jpg"}},
	}
	if mutate != nil {
		mutate(p)
	}
	require.NoError(t, db.Omit("User", "Likes").Create(p).Error)
	return p
}
