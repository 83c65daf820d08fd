package services

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/wfs/skijoring/internal/db"
	"github.com/wfs/skijoring/internal/models"
)

// Run caps across all non-rejected teams, per association rules.
const (
	MaxHorseRuns      = 2
	MaxCompetitorRuns = 7
	MaxTeamsPerCart   = 7
)

// TeamInput is one team row as assembled in the cart builder.
type TeamInput struct {
	RiderID    uint   `json:"riderId"`
	SkierID    uint   `json:"skierId"`
	HorseName  string `json:"horseName"`
	HorseOwner string `json:"horseOwner"`
	Division   string `json:"division"`
}

// AdditionalInfo rides along with a submission: the waiver signature and
// guardian contact for minors.
type AdditionalInfo struct {
	WaiverAgreed  bool   `json:"waiverAgreed"`
	GuardianName  string `json:"guardianName"`
	GuardianPhone string `json:"guardianPhone"`
}

type SubmitResult struct {
	CartID uint   `json:"cartId"`
	Code   string `json:"code"`
}

// SubmitCart replaces the caller's draft with a fresh cart built from teams.
// Everything runs inside one transaction: with the single-writer sqlite pool
// this serializes competing submissions, so two competitors cannot both sneak
// past a run-cap check, and a failed submission leaves no partial writes.
func SubmitCart(actorID, userID uint, teams []TeamInput, info *AdditionalInfo) (*SubmitResult, error) {
	if actorID == 0 || actorID != userID {
		return nil, ErrUnauthorized
	}
	if len(teams) == 0 {
		return nil, validationf("at least one team is required")
	}
	if len(teams) > MaxTeamsPerCart {
		return nil, validationf("a cart may hold at most %d teams", MaxTeamsPerCart)
	}
	for i, t := range teams {
		if t.RiderID == 0 || t.SkierID == 0 {
			return nil, validationf("team %d is missing a rider or partner", i+1)
		}
		if t.RiderID == t.SkierID {
			return nil, validationf("team %d lists the same competitor as rider and partner", i+1)
		}
		switch t.Division {
		case models.DivisionNovice, models.DivisionSport, models.DivisionOpen, models.DivisionSnowboard:
		default:
			return nil, validationf("team %d has an invalid division", i+1)
		}
	}

	var res SubmitResult
	err := db.Conn().Transaction(func(tx *gorm.DB) error {
		open, err := registrationOpen(tx)
		if err != nil {
			return err
		}
		if !open {
			return ErrRegistrationClosed
		}

		// Drop any stale draft first so abandoned carts never hold run quota.
		if err := deletePendingCarts(tx, userID); err != nil {
			return err
		}
		if err := checkHorseCaps(tx, teams); err != nil {
			return err
		}
		if err := checkCompetitorCaps(tx, teams); err != nil {
			return err
		}
		if info != nil {
			if err := applyAdditionalInfo(tx, userID, info); err != nil {
				return err
			}
		}

		code, err := generateCartCode(tx)
		if err != nil {
			return err
		}
		cart := models.RegistrationCart{UserID: userID, Status: models.StatusPending, Code: code}
		if err := tx.Create(&cart).Error; err != nil {
			return err
		}

		// Teams start SUBMITTED even though the cart is still an editable
		// PENDING draft: admins work the team review queue independent of
		// cart state.
		for _, in := range teams {
			team := models.Team{
				CartID:     cart.ID,
				RiderID:    in.RiderID,
				SkierID:    in.SkierID,
				HorseName:  strings.TrimSpace(in.HorseName),
				HorseOwner: strings.TrimSpace(in.HorseOwner),
				Division:   in.Division,
				Status:     models.StatusSubmitted,
			}
			if err := tx.Create(&team).Error; err != nil {
				return err
			}
		}

		res = SubmitResult{CartID: cart.ID, Code: cart.Code}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// FinalizeRegistration moves the caller's PENDING cart to SUBMITTED. No-op
// when there is no draft.
func FinalizeRegistration(actorID, userID uint) error {
	return moveCart(actorID, userID, models.StatusPending, models.StatusSubmitted)
}

// ReopenRegistration moves the caller's SUBMITTED cart back to PENDING so the
// teams can be edited and resubmitted.
func ReopenRegistration(actorID, userID uint) error {
	return moveCart(actorID, userID, models.StatusSubmitted, models.StatusPending)
}

func moveCart(actorID, userID uint, from, to string) error {
	if actorID == 0 || actorID != userID {
		return ErrUnauthorized
	}
	return db.Conn().Transaction(func(tx *gorm.DB) error {
		var cart models.RegistrationCart
		err := tx.Where("user_id = ? AND status = ?", userID, from).First(&cart).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		cart.Status = to
		return tx.Save(&cart).Error
	})
}

// TeamRegistration is one team row joined with cart state and both members'
// display names. CreatorID is the owning cart's user, which lets the caller
// tell "teams I created" from "teams someone added me to".
type TeamRegistration struct {
	TeamID     uint      `json:"teamId"`
	CartID     uint      `json:"cartId"`
	CartStatus string    `json:"cartStatus"`
	CreatorID  uint      `json:"creatorId"`
	RiderID    uint      `json:"riderId"`
	RiderName  string    `json:"riderName"`
	SkierID    uint      `json:"skierId"`
	SkierName  string    `json:"skierName"`
	HorseName  string    `json:"horseName"`
	HorseOwner string    `json:"horseOwner"`
	Division   string    `json:"division"`
	Status     string    `json:"status"`
	TeamNumber int       `json:"teamNumber"`
	CreatedAt  time.Time `json:"createdAt"`
}

const teamSelect = `teams.id AS team_id, teams.cart_id,
	carts.status AS cart_status, carts.user_id AS creator_id,
	teams.rider_id, COALESCE(riders.full_name, '') AS rider_name,
	teams.skier_id, COALESCE(skiers.full_name, '') AS skier_name,
	teams.horse_name, teams.horse_owner, teams.division, teams.status,
	teams.team_number, teams.created_at`

// teamQuery joins members with LEFT JOINs so teams survive a partner's
// account being deleted.
func teamQuery(tx *gorm.DB) *gorm.DB {
	return tx.Table("teams").
		Select(teamSelect).
		Joins("JOIN registration_carts carts ON carts.id = teams.cart_id").
		Joins("LEFT JOIN users riders ON riders.id = teams.rider_id").
		Joins("LEFT JOIN users skiers ON skiers.id = teams.skier_id")
}

// GetUserTeamRegistrations returns every team where the caller is rider or
// skier, newest first.
func GetUserTeamRegistrations(actorID, userID uint) ([]TeamRegistration, error) {
	if actorID == 0 || actorID != userID {
		return nil, ErrUnauthorized
	}
	var rows []TeamRegistration
	err := teamQuery(db.Conn()).
		Where("teams.rider_id = ? OR teams.skier_id = ?", userID, userID).
		Order("teams.created_at DESC, teams.id DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// CartView is the caller's open cart with its teams, used by the cart builder
// to resume a draft.
type CartView struct {
	CartID    uint               `json:"cartId"`
	Status    string             `json:"status"`
	Code      string             `json:"code"`
	CreatedAt time.Time          `json:"createdAt"`
	Teams     []TeamRegistration `json:"teams"`
}

// CurrentCart returns the caller's most recent PENDING or SUBMITTED cart, or
// nil when none exists.
func CurrentCart(actorID, userID uint) (*CartView, error) {
	if actorID == 0 || actorID != userID {
		return nil, ErrUnauthorized
	}
	var cart models.RegistrationCart
	err := db.Conn().
		Where("user_id = ? AND status IN ?", userID, []string{models.StatusPending, models.StatusSubmitted}).
		Order("created_at DESC, id DESC").
		First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var teams []TeamRegistration
	if err := teamQuery(db.Conn()).
		Where("teams.cart_id = ?", cart.ID).
		Order("teams.id ASC").
		Scan(&teams).Error; err != nil {
		return nil, err
	}
	return &CartView{CartID: cart.ID, Status: cart.Status, Code: cart.Code, CreatedAt: cart.CreatedAt, Teams: teams}, nil
}

// ScratchTeam hard-deletes a team. Any of the three stakeholders may scratch:
// the rider, the skier, or the owner of the cart.
func ScratchTeam(actorID, teamID uint) error {
	if actorID == 0 {
		return ErrUnauthorized
	}
	return db.Conn().Transaction(func(tx *gorm.DB) error {
		var team models.Team
		if err := tx.First(&team, teamID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTeamNotFound
			}
			return err
		}
		var cart models.RegistrationCart
		if err := tx.First(&cart, team.CartID).Error; err != nil {
			return err
		}
		if !team.CanScratch(actorID, cart.UserID) {
			return ErrUnauthorized
		}
		return tx.Delete(&team).Error
	})
}

func registrationOpen(tx *gorm.DB) (bool, error) {
	var s models.SystemSettings
	err := tx.First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// Closed until an admin opens it.
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return s.RegistrationOpen, nil
}

func deletePendingCarts(tx *gorm.DB, userID uint) error {
	var carts []models.RegistrationCart
	if err := tx.Where("user_id = ? AND status = ?", userID, models.StatusPending).Find(&carts).Error; err != nil {
		return err
	}
	for _, c := range carts {
		if err := tx.Where("cart_id = ?", c.ID).Delete(&models.Team{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.RegistrationCart{}, c.ID).Error; err != nil {
			return err
		}
	}
	return nil
}

// checkHorseCaps enforces the 2-run horse limit: batch occurrences plus
// existing non-rejected teams for the same (name, owner) pair, compared
// case-insensitively.
func checkHorseCaps(tx *gorm.DB, teams []TeamInput) error {
	type horse struct{ name, owner string }
	batch := map[horse]int{}
	display := map[horse]horse{}
	for _, t := range teams {
		name := strings.TrimSpace(t.HorseName)
		if name == "" {
			continue
		}
		owner := strings.TrimSpace(t.HorseOwner)
		key := horse{strings.ToLower(name), strings.ToLower(owner)}
		batch[key]++
		if _, seen := display[key]; !seen {
			display[key] = horse{name, owner}
		}
	}
	for key, n := range batch {
		var existing int64
		if err := tx.Model(&models.Team{}).
			Where("LOWER(TRIM(horse_name)) = ? AND LOWER(TRIM(horse_owner)) = ? AND status <> ?",
				key.name, key.owner, models.StatusRejected).
			Count(&existing).Error; err != nil {
			return err
		}
		if total := n + int(existing); total > MaxHorseRuns {
			d := display[key]
			return validationf("horse %q (owner %q) would have %d runs; the limit is %d runs per horse",
				d.name, d.owner, total, MaxHorseRuns)
		}
	}
	return nil
}

// checkCompetitorCaps enforces the 7-run competitor limit across both team
// roles, batch plus existing non-rejected teams.
func checkCompetitorCaps(tx *gorm.DB, teams []TeamInput) error {
	batch := map[uint]int{}
	for _, t := range teams {
		batch[t.RiderID]++
		batch[t.SkierID]++
	}
	for uid, n := range batch {
		var existing int64
		if err := tx.Model(&models.Team{}).
			Where("(rider_id = ? OR skier_id = ?) AND status <> ?", uid, uid, models.StatusRejected).
			Count(&existing).Error; err != nil {
			return err
		}
		if total := n + int(existing); total > MaxCompetitorRuns {
			return validationf("competitor %s would have %d runs; the limit is %d runs per competitor",
				competitorName(tx, uid), total, MaxCompetitorRuns)
		}
	}
	return nil
}

func competitorName(tx *gorm.DB, id uint) string {
	var u models.User
	if err := tx.First(&u, id).Error; err != nil || u.FullName == "" {
		return fmt.Sprintf("#%d", id)
	}
	return u.FullName
}

func applyAdditionalInfo(tx *gorm.DB, userID uint, info *AdditionalInfo) error {
	var u models.User
	if err := tx.First(&u, userID).Error; err != nil {
		return err
	}
	u.WaiverSigned = info.WaiverAgreed
	if info.WaiverAgreed {
		now := time.Now()
		u.WaiverSignedAt = &now
	}
	u.GuardianName = strings.TrimSpace(info.GuardianName)
	u.GuardianPhone = NormPhone(info.GuardianPhone)
	return tx.Save(&u).Error
}

// generateCartCode creates a unique WFS-XXXXXXXX pickup code.
func generateCartCode(tx *gorm.DB) (string, error) {
	for i := 0; i < 20; i++ {
		code := fmt.Sprintf("WFS-%08X", rand.Uint32())
		var exists int64
		if err := tx.Model(&models.RegistrationCart{}).Where("code = ?", code).Count(&exists).Error; err != nil {
			return "", err
		}
		if exists == 0 {
			return code, nil
		}
	}
	return "", errors.New("could not allocate a cart code")
}
