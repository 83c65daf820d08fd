package handlers

import (
	"net/http"

	"github.com/wfs/skijoring/internal/db"
	"github.com/wfs/skijoring/internal/models"
)

type statusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

type divisionCount struct {
	Division string `json:"division"`
	Count    int64  `json:"count"`
}

// GET /api/admin/overview — dashboard counts in three round-trips: total
// users, carts grouped by status, live (non-rejected) teams per division.
func AdminOverview(w http.ResponseWriter, r *http.Request) {
	var users int64
	if err := db.Conn().Model(&models.User{}).Count(&users).Error; err != nil {
		fail(w, err)
		return
	}

	var carts []statusCount
	if err := db.Conn().Model(&models.RegistrationCart{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&carts).Error; err != nil {
		fail(w, err)
		return
	}

	var divisions []divisionCount
	if err := db.Conn().Model(&models.Team{}).
		Select("division, COUNT(*) AS count").
		Where("status <> ?", models.StatusRejected).
		Group("division").
		Scan(&divisions).Error; err != nil {
		fail(w, err)
		return
	}

	ok(w, map[string]any{
		"totalUsers":      users,
		"cartsByStatus":   carts,
		"teamsByDivision": divisions,
	})
}
