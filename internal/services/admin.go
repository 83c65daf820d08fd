package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/wfs/skijoring/internal/db"
	"github.com/wfs/skijoring/internal/models"
)

// requireAdmin is the single role guard every admin mutation passes through.
func requireAdmin(tx *gorm.DB, actorID uint) error {
	if actorID == 0 {
		return ErrUnauthorized
	}
	var u models.User
	if err := tx.First(&u, actorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUnauthorized
		}
		return err
	}
	if u.Role != models.RoleAdmin {
		return ErrUnauthorized
	}
	return nil
}

// UpdateTeamStatus progresses a team through admin review.
func UpdateTeamStatus(actorID, teamID uint, status string) error {
	switch status {
	case models.StatusApproved, models.StatusPending, models.StatusRejected:
	default:
		return validationf("invalid team status %q", status)
	}
	return db.Conn().Transaction(func(tx *gorm.DB) error {
		if err := requireAdmin(tx, actorID); err != nil {
			return err
		}
		var team models.Team
		if err := tx.First(&team, teamID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTeamNotFound
			}
			return err
		}
		team.Status = status
		return tx.Save(&team).Error
	})
}

// DeleteTeam is the admin-side removal: it rejects the team instead of
// deleting the row, so the horse and competitor run history stays on record.
// Only non-rejected rows count toward the run caps. Competitor-initiated
// scratching hard-deletes (see ScratchTeam).
func DeleteTeam(actorID, teamID uint) error {
	return UpdateTeamStatus(actorID, teamID, models.StatusRejected)
}

// AssignTeamNumber gives a team the next sequential start number. Idempotent:
// an already-numbered team keeps its number.
func AssignTeamNumber(actorID, teamID uint) (int, error) {
	var number int
	err := db.Conn().Transaction(func(tx *gorm.DB) error {
		if err := requireAdmin(tx, actorID); err != nil {
			return err
		}
		var team models.Team
		if err := tx.First(&team, teamID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTeamNotFound
			}
			return err
		}
		if team.TeamNumber != 0 {
			number = team.TeamNumber
			return nil
		}
		var max int
		if err := tx.Model(&models.Team{}).Select("COALESCE(MAX(team_number), 0)").Scan(&max).Error; err != nil {
			return err
		}
		team.TeamNumber = max + 1
		number = team.TeamNumber
		return tx.Save(&team).Error
	})
	return number, err
}

// ToggleRegistration flips the global registration-open flag, creating the
// settings row (open) on first use. Returns the new state.
func ToggleRegistration(actorID uint) (bool, error) {
	var open bool
	err := db.Conn().Transaction(func(tx *gorm.DB) error {
		if err := requireAdmin(tx, actorID); err != nil {
			return err
		}
		var s models.SystemSettings
		err := tx.First(&s).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			open = true
			return tx.Create(&models.SystemSettings{RegistrationOpen: true}).Error
		}
		if err != nil {
			return err
		}
		s.RegistrationOpen = !s.RegistrationOpen
		open = s.RegistrationOpen
		return tx.Save(&s).Error
	})
	return open, err
}

// UpdateUserRole changes an account's role.
func UpdateUserRole(actorID, userID uint, role string) error {
	switch role {
	case models.RoleUser, models.RoleAdmin, models.RoleInvitee:
	default:
		return validationf("invalid role %q", role)
	}
	return db.Conn().Transaction(func(tx *gorm.DB) error {
		if err := requireAdmin(tx, actorID); err != nil {
			return err
		}
		var u models.User
		if err := tx.First(&u, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}
		u.Role = role
		return tx.Save(&u).Error
	})
}

// DeleteUser hard-deletes an account and everything it owns: its carts, the
// teams under them, and its waitlist entries. Teams the user joined on
// someone else's cart are left for that cart's owner to manage.
func DeleteUser(actorID, userID uint) error {
	return db.Conn().Transaction(func(tx *gorm.DB) error {
		if err := requireAdmin(tx, actorID); err != nil {
			return err
		}
		var u models.User
		if err := tx.First(&u, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}
		var carts []models.RegistrationCart
		if err := tx.Where("user_id = ?", userID).Find(&carts).Error; err != nil {
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
		if err := tx.Where("user_id = ?", userID).Delete(&models.WaitlistEntry{}).Error; err != nil {
			return err
		}
		return tx.Delete(&u).Error
	})
}

// UpdateWaitlistStatus progresses a waitlist entry (PENDING -> NOTIFIED ->
// EXPIRED/COMPLETED).
func UpdateWaitlistStatus(actorID, entryID uint, status string) error {
	switch status {
	case models.WaitlistPending, models.WaitlistNotified, models.WaitlistExpired, models.WaitlistCompleted:
	default:
		return validationf("invalid waitlist status %q", status)
	}
	return db.Conn().Transaction(func(tx *gorm.DB) error {
		if err := requireAdmin(tx, actorID); err != nil {
			return err
		}
		var e models.WaitlistEntry
		if err := tx.First(&e, entryID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEntryNotFound
			}
			return err
		}
		e.Status = status
		return tx.Save(&e).Error
	})
}
