package handlers

import (
	"net/http"

	svc "github.com/wfs/skijoring/internal/services"
)

// GET /api/account
func AccountShow(w http.ResponseWriter, r *http.Request) {
	ok(w, toUserView(CurrentUser(r)))
}

// POST /api/account — self-service profile update.
func AccountUpdate(w http.ResponseWriter, r *http.Request) {
	var req svc.AccountDetails
	if !decodeJSON(w, r, &req) {
		return
	}
	u := CurrentUser(r)
	if err := svc.UpdateAccountDetails(u.ID, u.ID, req); err != nil {
		fail(w, err)
		return
	}
	okMessage(w, "Account updated")
}
