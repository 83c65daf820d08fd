package models

import "time"

// Account roles. INVITEE is a competitor account created by being added to a
// team before ever signing in.
const (
	RoleUser    = "USER"
	RoleAdmin   = "ADMIN"
	RoleInvitee = "INVITEE"
)

// Competitor types. The dual type covers people who ride some runs and
// ski/board others.
const (
	TypeRider               = "RIDER"
	TypeSkier               = "SKIER"
	TypeSnowboarder         = "SNOWBOARDER"
	TypeSkierAndSnowboarder = "SKIER_AND_SNOWBOARDER"
	TypeRiderAndSkier       = "RIDER_AND_SKIER_SNOWBOARDER"
)

// Review statuses shared by carts and teams.
const (
	StatusPending   = "PENDING"
	StatusSubmitted = "SUBMITTED"
	StatusApproved  = "APPROVED"
	StatusRejected  = "REJECTED"
)

// Competition divisions.
const (
	DivisionNovice    = "NOVICE"
	DivisionSport     = "SPORT"
	DivisionOpen      = "OPEN"
	DivisionSnowboard = "SNOWBOARD"
)

// Waitlist entry statuses.
const (
	WaitlistPending   = "PENDING"
	WaitlistNotified  = "NOTIFIED"
	WaitlistExpired   = "EXPIRED"
	WaitlistCompleted = "COMPLETED"
)

type User struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	FullName       string
	Email          string `gorm:"uniqueIndex;not null"` // stored lowercased
	Phone          string
	Address        string
	Bio            string
	PasswordHash   string
	Role           string // USER | ADMIN | INVITEE
	CompetitorType string
	WaiverSigned   bool
	WaiverSignedAt *time.Time
	GuardianName   string
	GuardianPhone  string
}

// RegistrationCart is one competitor's batch of team submissions. A user has
// at most one PENDING and one SUBMITTED cart at a time.
type RegistrationCart struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	UserID uint
	Status string // PENDING | SUBMITTED | APPROVED | REJECTED
	Code   string `gorm:"uniqueIndex"` // e.g. WFS-1A2B3C4D, shown at bib pickup
}

// Team is one rider + one skier/snowboarder + a horse in a division.
type Team struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	CartID     uint
	RiderID    uint
	SkierID    uint
	HorseName  string
	HorseOwner string
	Division   string // NOVICE | SPORT | OPEN | SNOWBOARD
	Status     string // PENDING | SUBMITTED | APPROVED | REJECTED
	TeamNumber int    // 0 until an admin assigns one
}

// CanScratch reports whether actorID may delete this team: the rider, the
// skier, or the owner of the cart the team belongs to.
func (t *Team) CanScratch(actorID, cartOwnerID uint) bool {
	return actorID == t.RiderID || actorID == t.SkierID || actorID == cartOwnerID
}

// WaitlistEntry records interest from a competitor while registration is
// closed to them. At most one PENDING entry per user.
type WaitlistEntry struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time

	UserID uint
	Status string // PENDING | NOTIFIED | EXPIRED | COMPLETED
}

// SystemSettings is a singleton row; admins flip RegistrationOpen.
type SystemSettings struct {
	ID        uint `gorm:"primaryKey"`
	UpdatedAt time.Time

	RegistrationOpen bool
}
