package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	svc "github.com/wfs/skijoring/internal/services"
)

func idParam(r *http.Request, name string) (uint, bool) {
	n, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil || n <= 0 {
		return 0, false
	}
	return uint(n), true
}

// GET /api/cart — the caller's open cart, for resuming a draft.
func CurrentCart(w http.ResponseWriter, r *http.Request) {
	u := CurrentUser(r)
	view, err := svc.CurrentCart(u.ID, u.ID)
	if err != nil {
		fail(w, err)
		return
	}
	ok(w, view) // null when no open cart
}

// POST /api/cart — submit a batch of teams.
func SubmitCart(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID         uint                `json:"userId"`
		Teams          []svc.TeamInput     `json:"teams"`
		AdditionalInfo *svc.AdditionalInfo `json:"additionalInfo"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	u := CurrentUser(r)
	if req.UserID == 0 {
		req.UserID = u.ID
	}
	res, err := svc.SubmitCart(u.ID, req.UserID, req.Teams, req.AdditionalInfo)
	if err != nil {
		fail(w, err)
		return
	}
	ok(w, res)
}

// POST /api/cart/finalize
func FinalizeCart(w http.ResponseWriter, r *http.Request) {
	u := CurrentUser(r)
	if err := svc.FinalizeRegistration(u.ID, u.ID); err != nil {
		fail(w, err)
		return
	}
	okMessage(w, "Registration submitted for approval")
}

// POST /api/cart/reopen
func ReopenCart(w http.ResponseWriter, r *http.Request) {
	u := CurrentUser(r)
	if err := svc.ReopenRegistration(u.ID, u.ID); err != nil {
		fail(w, err)
		return
	}
	okMessage(w, "Registration reopened for editing")
}

// GET /api/my/teams — every team the caller is on, newest first.
func MyTeams(w http.ResponseWriter, r *http.Request) {
	u := CurrentUser(r)
	rows, err := svc.GetUserTeamRegistrations(u.ID, u.ID)
	if err != nil {
		fail(w, err)
		return
	}
	ok(w, rows)
}

// POST /api/teams/{id}/scratch
func ScratchTeam(w http.ResponseWriter, r *http.Request) {
	teamID, valid := idParam(r, "id")
	if !valid {
		writeJSON(w, http.StatusBadRequest, result{Success: false, Error: "invalid team id"})
		return
	}
	u := CurrentUser(r)
	if err := svc.ScratchTeam(u.ID, teamID); err != nil {
		fail(w, err)
		return
	}
	okMessage(w, "Team scratched")
}
