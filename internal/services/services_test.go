package services

import (
	"fmt"
	"path/filepath"
	"testing"

	"gorm.io/gorm"

	"github.com/wfs/skijoring/internal/db"
	"github.com/wfs/skijoring/internal/models"
)

// openTestDB points the shared connection at a fresh sqlite file in a temp
// directory.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	if err := db.Init(filepath.Join(t.TempDir(), "test.db")); err != nil {
		t.Fatalf("db init: %v", err)
	}
	return db.Conn()
}

func createUser(t *testing.T, name, email, ctype string) models.User {
	t.Helper()
	u := models.User{FullName: name, Email: email, Role: models.RoleUser, CompetitorType: ctype}
	if err := db.Conn().Create(&u).Error; err != nil {
		t.Fatalf("create user %s: %v", name, err)
	}
	return u
}

func createAdmin(t *testing.T, name, email string) models.User {
	t.Helper()
	u := models.User{FullName: name, Email: email, Role: models.RoleAdmin, CompetitorType: models.TypeRider}
	if err := db.Conn().Create(&u).Error; err != nil {
		t.Fatalf("create admin %s: %v", name, err)
	}
	return u
}

func openRegistration(t *testing.T) {
	t.Helper()
	if err := db.Conn().Create(&models.SystemSettings{RegistrationOpen: true}).Error; err != nil {
		t.Fatalf("open registration: %v", err)
	}
}

var seedSeq int

// seedCart inserts a cart directly, bypassing the engine, for history setup.
func seedCart(t *testing.T, ownerID uint, status string) models.RegistrationCart {
	t.Helper()
	seedSeq++
	c := models.RegistrationCart{UserID: ownerID, Status: status, Code: fmt.Sprintf("SEED-%04d", seedSeq)}
	if err := db.Conn().Create(&c).Error; err != nil {
		t.Fatalf("seed cart: %v", err)
	}
	return c
}

func seedTeam(t *testing.T, cartID, riderID, skierID uint, horse, horseOwner, status string) models.Team {
	t.Helper()
	tm := models.Team{
		CartID:     cartID,
		RiderID:    riderID,
		SkierID:    skierID,
		HorseName:  horse,
		HorseOwner: horseOwner,
		Division:   models.DivisionOpen,
		Status:     status,
	}
	if err := db.Conn().Create(&tm).Error; err != nil {
		t.Fatalf("seed team: %v", err)
	}
	return tm
}

func countRows(t *testing.T, model any, query string, args ...any) int64 {
	t.Helper()
	q := db.Conn().Model(model)
	if query != "" {
		q = q.Where(query, args...)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}
