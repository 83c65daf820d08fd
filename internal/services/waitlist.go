package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/wfs/skijoring/internal/db"
	"github.com/wfs/skijoring/internal/models"
)

// JoinWaitlist records interest while registration is closed to the caller.
// Idempotent: a second call while a PENDING entry exists changes nothing.
func JoinWaitlist(userID uint) (string, error) {
	if userID == 0 {
		return "", ErrUnauthorized
	}
	var msg string
	err := db.Conn().Transaction(func(tx *gorm.DB) error {
		var existing models.WaitlistEntry
		err := tx.Where("user_id = ? AND status = ?", userID, models.WaitlistPending).First(&existing).Error
		if err == nil {
			msg = "Already on waitlist"
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		msg = "Joined waitlist"
		return tx.Create(&models.WaitlistEntry{UserID: userID, Status: models.WaitlistPending}).Error
	})
	return msg, err
}
