package services

import (
	"strings"

	"github.com/wfs/skijoring/internal/db"
	"github.com/wfs/skijoring/internal/models"
)

// CompetitorSummary is what partner search exposes. Never the password hash.
type CompetitorSummary struct {
	ID             uint   `json:"id"`
	FullName       string `json:"fullName"`
	Email          string `json:"email"`
	CompetitorType string `json:"competitorType"`
}

// SearchCompetitors finds up to 10 partner candidates by name substring,
// excluding the caller. When the target role is RIDER only riders (including
// the dual rider type) match; otherwise anyone who is not a pure rider does,
// since skiers, snowboarders and duals can all fill the non-rider slot.
func SearchCompetitors(query, targetRole string, selfID uint) ([]CompetitorSummary, error) {
	q := strings.TrimSpace(query)
	if len(q) < 2 {
		return []CompetitorSummary{}, nil
	}

	tx := db.Conn().Model(&models.User{}).
		Select("id, full_name, email, competitor_type").
		Where("id <> ?", selfID).
		Where("LOWER(full_name) LIKE ?", "%"+strings.ToLower(q)+"%")
	if targetRole == models.TypeRider {
		tx = tx.Where("competitor_type IN ?", []string{models.TypeRider, models.TypeRiderAndSkier})
	} else {
		tx = tx.Where("competitor_type <> ?", models.TypeRider)
	}

	var out []CompetitorSummary
	if err := tx.Order("full_name ASC").Limit(10).Scan(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
