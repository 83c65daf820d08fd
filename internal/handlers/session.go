package handlers

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/wfs/skijoring/internal/db"
	"github.com/wfs/skijoring/internal/models"
)

const sessionCookie = "wfs_session"

var sessionSecret []byte

// SetSessionSecret installs the HMAC key used to sign session cookies. Must
// be called before the router serves traffic.
func SetSessionSecret(secret string) {
	sessionSecret = []byte(secret)
}

// Cookie value is "<userID>.<hex hmac-sha256 of userID>".
func signUserID(id uint) string {
	payload := strconv.FormatUint(uint64(id), 10)
	mac := hmac.New(sha256.New, sessionSecret)
	mac.Write([]byte(payload))
	return payload + "." + hex.EncodeToString(mac.Sum(nil))
}

func parseSession(value string) (uint, bool) {
	payload, sig, found := strings.Cut(value, ".")
	if !found {
		return 0, false
	}
	mac := hmac.New(sha256.New, sessionSecret)
	mac.Write([]byte(payload))
	want := hex.EncodeToString(mac.Sum(nil))
	if !hmac.Equal([]byte(sig), []byte(want)) {
		return 0, false
	}
	id, err := strconv.ParseUint(payload, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func setSessionCookie(w http.ResponseWriter, userID uint) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    signUserID(userID),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(30 * 24 * time.Hour),
	})
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
	})
}

type ctxKey int

const userKey ctxKey = iota

// CurrentUser returns the authenticated user stashed by RequireUser, or nil.
func CurrentUser(r *http.Request) *models.User {
	u, _ := r.Context().Value(userKey).(*models.User)
	return u
}

// RequireUser is middleware: rejects anonymous requests and loads the
// session user for the handlers downstream.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := r.Cookie(sessionCookie)
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, result{Success: false, Error: "Unauthorized"})
			return
		}
		id, valid := parseSession(c.Value)
		if !valid {
			clearSessionCookie(w)
			writeJSON(w, http.StatusUnauthorized, result{Success: false, Error: "Unauthorized"})
			return
		}
		var u models.User
		if err := db.Conn().First(&u, id).Error; err != nil {
			// Stale cookie for a deleted account.
			clearSessionCookie(w)
			writeJSON(w, http.StatusUnauthorized, result{Success: false, Error: "Unauthorized"})
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userKey, &u)))
	})
}

// RequireAdmin is middleware stacked after RequireUser; it additionally
// checks the ADMIN role.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u := CurrentUser(r)
		if u == nil || u.Role != models.RoleAdmin {
			writeJSON(w, http.StatusForbidden, result{Success: false, Error: "Unauthorized"})
			return
		}
		next.ServeHTTP(w, r)
	})
}
