package database

import (
	"fmt"

	"github.com/coderhafiz/Murajiah-sub001/internal/config"
	"github.com/coderhafiz/Murajiah-sub001/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Connect(cfg *config.Config) *gorm.DB {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		logrus.Fatalf("failed to connect to database: %v", err)
	}

	logrus.Info("database connected")
	return db
}

func AutoMigrate(db *gorm.DB) {
	// Backfill role for users created before the role column existed.
	db.Exec(`DO $$
	BEGIN
		IF EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name = 'users')
		   AND NOT EXISTS (SELECT 1 FROM information_schema.columns WHERE table_name = 'users' AND column_name = 'role')
		THEN
			ALTER TABLE users ADD COLUMN role varchar(20) NOT NULL DEFAULT 'user';
		END IF;
	END $$;`)

	// Sessions created before preview support count as real games.
	db.Exec(`DO $$
	BEGIN
		IF EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name = 'game_sessions')
		   AND NOT EXISTS (SELECT 1 FROM information_schema.columns WHERE table_name = 'game_sessions' AND column_name = 'is_preview')
		THEN
			ALTER TABLE game_sessions ADD COLUMN is_preview boolean NOT NULL DEFAULT false;
		END IF;
	END $$;`)

	err := db.AutoMigrate(
		&models.User{},
		&models.Quiz{},
		&models.Question{},
		&models.Option{},
		&models.GameSession{},
		&models.Participant{},
		&models.Notification{},
		&models.Comment{},
		&models.Announcement{},
	)
	if err != nil {
		logrus.Fatalf("failed to auto-migrate: %v", err)
	}
	logrus.Info("database migrated")
}

// SeedOwner promotes the configured bootstrap account to the owner role so
// the privilege hierarchy is reachable on a fresh install. No-op when the
// username is unset or the account does not exist yet.
func SeedOwner(db *gorm.DB, username string) {
	if username == "" {
		return
	}

	res := db.Model(&models.User{}).
		Where("username = ? AND role != ?", username, models.RoleOwner).
		Update("role", models.RoleOwner)
	if res.Error != nil {
		logrus.Warnf("owner seed failed: %v", res.Error)
		return
	}
	if res.RowsAffected > 0 {
		logrus.WithField("username", username).Info("owner role seeded")
	}
}
