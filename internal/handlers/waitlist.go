package handlers

import (
	"net/http"

	svc "github.com/wfs/skijoring/internal/services"
)

// POST /api/waitlist
func JoinWaitlist(w http.ResponseWriter, r *http.Request) {
	u := CurrentUser(r)
	msg, err := svc.JoinWaitlist(u.ID)
	if err != nil {
		fail(w, err)
		return
	}
	okMessage(w, msg)
}
