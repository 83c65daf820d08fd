package handlers

import (
	"net/http"
	"time"

	"github.com/wfs/skijoring/internal/db"
	"github.com/wfs/skijoring/internal/models"
	svc "github.com/wfs/skijoring/internal/services"
)

// Admin routes sit behind the RequireUser + RequireAdmin middleware; the
// mutating service calls re-check the role so no in-process caller can skip
// the guard either.

type adminTeamRow struct {
	TeamID     uint      `json:"teamId"`
	CartID     uint      `json:"cartId"`
	CartCode   string    `json:"cartCode"`
	CartStatus string    `json:"cartStatus"`
	OwnerName  string    `json:"ownerName"`
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

// GET /api/admin/teams?status=SUBMITTED&division=OPEN — the review queue.
func AdminTeams(w http.ResponseWriter, r *http.Request) {
	q := db.Conn().Table("teams").
		Select(`teams.id AS team_id, teams.cart_id,
			carts.code AS cart_code, carts.status AS cart_status,
			COALESCE(owners.full_name, '') AS owner_name,
			teams.rider_id, COALESCE(riders.full_name, '') AS rider_name,
			teams.skier_id, COALESCE(skiers.full_name, '') AS skier_name,
			teams.horse_name, teams.horse_owner, teams.division, teams.status,
			teams.team_number, teams.created_at`).
		Joins("JOIN registration_carts carts ON carts.id = teams.cart_id").
		Joins("LEFT JOIN users owners ON owners.id = carts.user_id").
		Joins("LEFT JOIN users riders ON riders.id = teams.rider_id").
		Joins("LEFT JOIN users skiers ON skiers.id = teams.skier_id").
		Order("teams.created_at DESC, teams.id DESC")
	if s := r.URL.Query().Get("status"); s != "" {
		q = q.Where("teams.status = ?", s)
	}
	if d := r.URL.Query().Get("division"); d != "" {
		q = q.Where("teams.division = ?", d)
	}

	var rows []adminTeamRow
	if err := q.Scan(&rows).Error; err != nil {
		fail(w, err)
		return
	}
	ok(w, rows)
}

// POST /api/admin/teams/{id}/status
func AdminTeamStatus(w http.ResponseWriter, r *http.Request) {
	teamID, valid := idParam(r, "id")
	if !valid {
		writeJSON(w, http.StatusBadRequest, result{Success: false, Error: "invalid team id"})
		return
	}
	var req struct {
		Status string `json:"status"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := svc.UpdateTeamStatus(CurrentUser(r).ID, teamID, req.Status); err != nil {
		fail(w, err)
		return
	}
	okMessage(w, "Team status updated")
}

// POST /api/admin/teams/{id}/delete — soft removal, keeps the row as run
// history with status REJECTED.
func AdminTeamDelete(w http.ResponseWriter, r *http.Request) {
	teamID, valid := idParam(r, "id")
	if !valid {
		writeJSON(w, http.StatusBadRequest, result{Success: false, Error: "invalid team id"})
		return
	}
	if err := svc.DeleteTeam(CurrentUser(r).ID, teamID); err != nil {
		fail(w, err)
		return
	}
	okMessage(w, "Team removed")
}

// POST /api/admin/teams/{id}/number
func AdminTeamNumber(w http.ResponseWriter, r *http.Request) {
	teamID, valid := idParam(r, "id")
	if !valid {
		writeJSON(w, http.StatusBadRequest, result{Success: false, Error: "invalid team id"})
		return
	}
	n, err := svc.AssignTeamNumber(CurrentUser(r).ID, teamID)
	if err != nil {
		fail(w, err)
		return
	}
	ok(w, map[string]int{"teamNumber": n})
}

// POST /api/admin/registration/toggle
func AdminToggleRegistration(w http.ResponseWriter, r *http.Request) {
	open, err := svc.ToggleRegistration(CurrentUser(r).ID)
	if err != nil {
		fail(w, err)
		return
	}
	ok(w, map[string]bool{"registrationOpen": open})
}

type adminUserRow struct {
	ID             uint      `json:"id"`
	FullName       string    `json:"fullName"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	Role           string    `json:"role"`
	CompetitorType string    `json:"competitorType"`
	WaiverSigned   bool      `json:"waiverSigned"`
	CreatedAt      time.Time `json:"createdAt"`
}

// GET /api/admin/users — newest first, password hashes never leave the store.
func AdminUsers(w http.ResponseWriter, r *http.Request) {
	var rows []adminUserRow
	err := db.Conn().Model(&models.User{}).
		Select("id, full_name, email, phone, role, competitor_type, waiver_signed, created_at").
		Order("created_at DESC, id DESC").
		Scan(&rows).Error
	if err != nil {
		fail(w, err)
		return
	}
	ok(w, rows)
}

// POST /api/admin/users/{id}/role
func AdminUserRole(w http.ResponseWriter, r *http.Request) {
	userID, valid := idParam(r, "id")
	if !valid {
		writeJSON(w, http.StatusBadRequest, result{Success: false, Error: "invalid user id"})
		return
	}
	var req struct {
		Role string `json:"role"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := svc.UpdateUserRole(CurrentUser(r).ID, userID, req.Role); err != nil {
		fail(w, err)
		return
	}
	okMessage(w, "Role updated")
}

// POST /api/admin/users/{id}/delete — cascades to the user's carts and their
// teams.
func AdminUserDelete(w http.ResponseWriter, r *http.Request) {
	userID, valid := idParam(r, "id")
	if !valid {
		writeJSON(w, http.StatusBadRequest, result{Success: false, Error: "invalid user id"})
		return
	}
	if err := svc.DeleteUser(CurrentUser(r).ID, userID); err != nil {
		fail(w, err)
		return
	}
	okMessage(w, "User deleted")
}

type waitlistRow struct {
	ID        uint      `json:"id"`
	UserID    uint      `json:"userId"`
	UserName  string    `json:"userName"`
	Email     string    `json:"email"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// GET /api/admin/waitlist — oldest first (FIFO notification order).
func AdminWaitlist(w http.ResponseWriter, r *http.Request) {
	var rows []waitlistRow
	err := db.Conn().Table("waitlist_entries").
		Select(`waitlist_entries.id, waitlist_entries.user_id,
			COALESCE(users.full_name, '') AS user_name,
			COALESCE(users.email, '') AS email,
			waitlist_entries.status, waitlist_entries.created_at`).
		Joins("LEFT JOIN users ON users.id = waitlist_entries.user_id").
		Order("waitlist_entries.created_at ASC, waitlist_entries.id ASC").
		Scan(&rows).Error
	if err != nil {
		fail(w, err)
		return
	}
	ok(w, rows)
}

// POST /api/admin/waitlist/{id}/status
func AdminWaitlistStatus(w http.ResponseWriter, r *http.Request) {
	entryID, valid := idParam(r, "id")
	if !valid {
		writeJSON(w, http.StatusBadRequest, result{Success: false, Error: "invalid entry id"})
		return
	}
	var req struct {
		Status string `json:"status"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := svc.UpdateWaitlistStatus(CurrentUser(r).ID, entryID, req.Status); err != nil {
		fail(w, err)
		return
	}
	okMessage(w, "Waitlist entry updated")
}
