package handlers

import (
	"net/http"

	svc "github.com/wfs/skijoring/internal/services"
)

// GET /api/competitors?q=...&target=RIDER — partner search for the cart
// builder. Riders look for non-riders and vice versa; the client passes the
// role it wants to fill.
func SearchCompetitors(w http.ResponseWriter, r *http.Request) {
	u := CurrentUser(r)
	q := r.URL.Query().Get("q")
	target := r.URL.Query().Get("target")
	results, err := svc.SearchCompetitors(q, target, u.ID)
	if err != nil {
		fail(w, err)
		return
	}
	ok(w, results)
}
