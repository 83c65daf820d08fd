package db

import (
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/wfs/skijoring/internal/models"
)

var conn *gorm.DB

// Init opens (or creates) the sqlite database at path and migrates the schema.
func Init(path string) error {
	var err error
	conn, err = gorm.Open(sqlite.Open(path+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on"), &gorm.Config{})
	if err != nil {
		return err
	}

	// SQLite works best with a single writer; cap the pool accordingly. This
	// also serializes the transactions the cart engine relies on.
	sqlDB, err := conn.DB()
	if err != nil {
		return err
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)

	if err := conn.AutoMigrate(
		&models.User{},
		&models.RegistrationCart{},
		&models.Team{},
		&models.WaitlistEntry{},
		&models.SystemSettings{},
	); err != nil {
		log.Fatalf("auto-migrate failed: %v", err)
	}

	// Composite and expression indexes that GORM doesn't auto-create from
	// struct tags. The horse index backs the case-insensitive run-cap check.
	conn.Exec("CREATE INDEX IF NOT EXISTS idx_team_cart_status ON teams(cart_id, status)")
	conn.Exec("CREATE INDEX IF NOT EXISTS idx_team_rider       ON teams(rider_id)")
	conn.Exec("CREATE INDEX IF NOT EXISTS idx_team_skier       ON teams(skier_id)")
	conn.Exec("CREATE INDEX IF NOT EXISTS idx_team_horse       ON teams(LOWER(TRIM(horse_name)), LOWER(TRIM(horse_owner)))")

	log.Println("database ready (sqlite)")
	return nil
}

func Conn() *gorm.DB {
	return conn
}
