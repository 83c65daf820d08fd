package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"gorm.io/gorm"

	svc "github.com/wfs/skijoring/internal/services"
)

// result is the envelope every API endpoint answers with.
type result struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func ok(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, result{Success: true, Data: data})
}

func okMessage(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusOK, result{Success: true, Message: msg})
}

// fail maps service errors onto HTTP statuses. The body always carries the
// user-facing message; internal errors are logged and masked.
func fail(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	var verr *svc.ValidationError
	switch {
	case errors.Is(err, svc.ErrUnauthorized):
		code = http.StatusForbidden
	case errors.Is(err, svc.ErrInvalidCredentials):
		code = http.StatusUnauthorized
	case errors.Is(err, svc.ErrTeamNotFound),
		errors.Is(err, svc.ErrUserNotFound),
		errors.Is(err, svc.ErrEntryNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		code = http.StatusNotFound
	case errors.Is(err, svc.ErrRegistrationClosed):
		code = http.StatusConflict
	case errors.As(err, &verr):
		code = http.StatusUnprocessableEntity
	}

	msg := err.Error()
	if code == http.StatusInternalServerError {
		log.Printf("internal error: %v", err)
		msg = "Something went wrong"
	}
	writeJSON(w, code, result{Success: false, Error: msg})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, result{Success: false, Error: "invalid request body"})
		return false
	}
	return true
}

// GET /healthz
func Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
