package handlers

import (
	"net/http"

	"github.com/wfs/skijoring/internal/models"
	svc "github.com/wfs/skijoring/internal/services"
)

type userView struct {
	ID             uint   `json:"id"`
	FullName       string `json:"fullName"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Address        string `json:"address"`
	Bio            string `json:"bio"`
	Role           string `json:"role"`
	CompetitorType string `json:"competitorType"`
	WaiverSigned   bool   `json:"waiverSigned"`
}

func toUserView(u *models.User) userView {
	return userView{
		ID:             u.ID,
		FullName:       u.FullName,
		Email:          u.Email,
		Phone:          u.Phone,
		Address:        u.Address,
		Bio:            u.Bio,
		Role:           u.Role,
		CompetitorType: u.CompetitorType,
		WaiverSigned:   u.WaiverSigned,
	}
}

// POST /api/auth/signup
func SignUp(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FullName       string `json:"fullName"`
		Email          string `json:"email"`
		Password       string `json:"password"`
		Phone          string `json:"phone"`
		Address        string `json:"address"`
		Bio            string `json:"bio"`
		CompetitorType string `json:"competitorType"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	u, err := svc.SignUp(svc.SignUpParams{
		FullName:       req.FullName,
		Email:          req.Email,
		Password:       req.Password,
		Phone:          req.Phone,
		Address:        req.Address,
		Bio:            req.Bio,
		CompetitorType: req.CompetitorType,
	})
	if err != nil {
		fail(w, err)
		return
	}
	// Sign-up doubles as sign-in.
	setSessionCookie(w, u.ID)
	ok(w, toUserView(u))
}

// POST /api/auth/signin
func SignIn(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	u, err := svc.Authenticate(req.Email, req.Password)
	if err != nil {
		fail(w, err)
		return
	}
	setSessionCookie(w, u.ID)
	ok(w, toUserView(u))
}

// POST /api/auth/signout
func SignOut(w http.ResponseWriter, r *http.Request) {
	clearSessionCookie(w)
	okMessage(w, "Signed out")
}
