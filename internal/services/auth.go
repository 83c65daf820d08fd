package services

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/wfs/skijoring/internal/db"
	"github.com/wfs/skijoring/internal/models"
)

type SignUpParams struct {
	FullName       string
	Email          string
	Password       string
	Phone          string
	Address        string
	Bio            string
	CompetitorType string
}

// SignUp creates a competitor account. Duplicate email is detected from the
// store's unique-constraint violation rather than a racy pre-check.
func SignUp(p SignUpParams) (*models.User, error) {
	name := strings.TrimSpace(p.FullName)
	if len(name) < 3 {
		return nil, validationf("full name must be at least 3 characters")
	}
	email, ok := NormEmail(p.Email)
	if !ok {
		return nil, validationf("a valid email is required")
	}
	if len(p.Password) < 8 {
		return nil, validationf("password must be at least 8 characters")
	}
	ctype := p.CompetitorType
	if ctype == "" {
		ctype = models.TypeRider
	}
	if !validCompetitorType(ctype) {
		return nil, validationf("invalid competitor type %q", p.CompetitorType)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(p.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := models.User{
		FullName:       name,
		Email:          email,
		Phone:          NormPhone(p.Phone),
		Address:        strings.TrimSpace(p.Address),
		Bio:            strings.TrimSpace(p.Bio),
		PasswordHash:   string(hash),
		Role:           models.RoleUser,
		CompetitorType: ctype,
	}
	if err := db.Conn().Create(&u).Error; err != nil {
		if isUniqueEmailErr(err) {
			return nil, validationf("User with this email already exists")
		}
		return nil, err
	}
	return &u, nil
}

// Authenticate resolves email + password to a user.
func Authenticate(email, password string) (*models.User, error) {
	e, ok := NormEmail(email)
	if !ok {
		return nil, ErrInvalidCredentials
	}
	var u models.User
	if err := db.Conn().Where("email = ?", e).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return &u, nil
}

type AccountDetails struct {
	FullName       string `json:"fullName"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Address        string `json:"address"`
	Bio            string `json:"bio"`
	CompetitorType string `json:"competitorType"`
}

// UpdateAccountDetails is the self-service profile mutation.
func UpdateAccountDetails(actorID, userID uint, d AccountDetails) error {
	if actorID == 0 || actorID != userID {
		return ErrUnauthorized
	}
	name := strings.TrimSpace(d.FullName)
	if len(name) < 3 {
		return validationf("full name must be at least 3 characters")
	}
	email, ok := NormEmail(d.Email)
	if !ok {
		return validationf("a valid email is required")
	}
	if !validCompetitorType(d.CompetitorType) {
		return validationf("invalid competitor type %q", d.CompetitorType)
	}

	return db.Conn().Transaction(func(tx *gorm.DB) error {
		var u models.User
		if err := tx.First(&u, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}
		u.FullName = name
		u.Email = email
		u.Phone = NormPhone(d.Phone)
		u.Address = strings.TrimSpace(d.Address)
		u.Bio = strings.TrimSpace(d.Bio)
		u.CompetitorType = d.CompetitorType
		if err := tx.Save(&u).Error; err != nil {
			if isUniqueEmailErr(err) {
				return validationf("User with this email already exists")
			}
			return err
		}
		return nil
	})
}

// EnsureAdmin creates (or promotes) the bootstrap admin account. Called at
// startup when ADMIN_EMAIL/ADMIN_PASSWORD are configured.
func EnsureAdmin(email, password string) error {
	e, ok := NormEmail(email)
	if !ok {
		return validationf("a valid admin email is required")
	}
	var u models.User
	err := db.Conn().Where("email = ?", e).First(&u).Error
	if err == nil {
		if u.Role == models.RoleAdmin {
			return nil
		}
		u.Role = models.RoleAdmin
		return db.Conn().Save(&u).Error
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if len(password) < 8 {
		return validationf("admin password must be at least 8 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u = models.User{
		FullName:       "Administrator",
		Email:          e,
		PasswordHash:   string(hash),
		Role:           models.RoleAdmin,
		CompetitorType: models.TypeRider,
	}
	return db.Conn().Create(&u).Error
}

func validCompetitorType(t string) bool {
	switch t {
	case models.TypeRider, models.TypeSkier, models.TypeSnowboarder,
		models.TypeSkierAndSnowboarder, models.TypeRiderAndSkier:
		return true
	}
	return false
}

func isUniqueEmailErr(err error) bool {
	le := strings.ToLower(err.Error())
	return strings.Contains(le, "unique") && strings.Contains(le, "email")
}
