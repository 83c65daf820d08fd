package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/wfs/skijoring/internal/db"
	"github.com/wfs/skijoring/internal/models"
)

// GET /qr/{code}.png — the cart pickup code as a scannable image, shown at
// bib pickup. The code itself is the secret; the desk tool looks it up.
func QR(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	if code == "" {
		http.NotFound(w, r)
		return
	}
	var cart models.RegistrationCart
	if err := db.Conn().Where("code = ?", code).First(&cart).Error; err != nil {
		http.NotFound(w, r)
		return
	}

	png, err := qrcode.Encode(cart.Code, qrcode.Medium, 256)
	if err != nil {
		http.Error(w, "failed to generate qr", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}
