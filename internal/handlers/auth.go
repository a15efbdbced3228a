package handlers

import (
	"encoding/base64"
	"log/slog"
	"net/http"

	"github.com/pquerna/otp/totp"
	qrcode "github.com/skip2/go-qrcode"

	"multilingua/internal/middleware"
	"multilingua/internal/models"
	"multilingua/internal/session"
	"multilingua/internal/store"
)

// Auth groups all authentication-related HTTP handlers. The flow is
// session-based: login issues a cookie, and admin sessions additionally
// complete a TOTP challenge before mutations are allowed.
type Auth struct {
	sessions  *session.Store
	userStore *store.UserStore
}

// NewAuth creates a new Auth handler group.
func NewAuth(sessions *session.Store, userStore *store.UserStore) *Auth {
	return &Auth{
		sessions:  sessions,
		userStore: userStore,
	}
}

type credentialsPayload struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"displayName,omitempty"`
}

type codePayload struct {
	Code string `json:"code"`
}

// Register creates a reader account. Accounts are always created with the
// user role; admins are promoted out of band.
func (a *Auth) Register(w http.ResponseWriter, r *http.Request) {
	var payload credentialsPayload
	if err := decodeJSON(r, &payload); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}

	if msg := validateCredentials(payload.Email, payload.Password, payload.DisplayName); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	user, err := a.userStore.Create(payload.Email, payload.Password, payload.DisplayName, models.RoleUser)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, user)
}

// Login validates credentials and issues a session cookie. For users with
// 2FA pending the response flags what the client should do next.
func (a *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var payload credentialsPayload
	if err := decodeJSON(r, &payload); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}

	user, err := a.userStore.FindByEmail(payload.Email)
	if err != nil {
		slog.Error("login lookup failed", "error", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	// Identical response for unknown email and wrong password.
	if user == nil || !a.userStore.CheckPassword(user, payload.Password) {
		respondError(w, http.StatusUnauthorized, "invalid email or password")
		return
	}

	// TwoFADone starts false; admins must verify a TOTP code before the
	// session may touch mutations. Ordinary readers never need it.
	_, err = a.sessions.Create(r.Context(), w, &session.Data{
		UserID:      user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		Role:        string(user.Role),
		TwoFADone:   !user.IsAdmin(),
	})
	if err != nil {
		slog.Error("session create failed", "error", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	next := "done"
	if user.IsAdmin() {
		if user.Needs2FASetup() {
			next = "2fa_setup"
		} else {
			next = "2fa_verify"
		}
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"user": user,
		"next": next,
	})
}

// Logout destroys the session.
func (a *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	a.sessions.Destroy(r.Context(), w, r)
	respondJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}

// TwoFASetup generates a fresh TOTP secret for the authenticated user and
// returns the provisioning QR code as base64 PNG alongside the secret for
// manual entry.
func (a *Auth) TwoFASetup(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      "Multilingua",
		AccountName: sess.Email,
	})
	if err != nil {
		slog.Error("totp generate failed", "error", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	if err := a.userStore.SetTOTPSecret(sess.UserID, key.Secret()); err != nil {
		slog.Error("save totp secret failed", "error", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	qrPNG, err := qrcode.Encode(key.URL(), qrcode.Medium, 256)
	if err != nil {
		slog.Error("qr code generation failed", "error", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"secret": key.Secret(),
		"qrcode": base64.StdEncoding.EncodeToString(qrPNG),
	})
}

// TwoFAVerify validates the submitted TOTP code and marks the session as
// fully authenticated. On first-time setup it also enables TOTP for the
// account.
func (a *Auth) TwoFAVerify(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	var payload codePayload
	if err := decodeJSON(r, &payload); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}

	user, err := a.userStore.FindByID(sess.UserID)
	if err != nil || user == nil {
		slog.Error("user lookup for 2fa failed", "error", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	if user.TOTPSecret == nil {
		respondError(w, http.StatusBadRequest, "2FA has not been set up")
		return
	}

	if !totp.Validate(payload.Code, *user.TOTPSecret) {
		respondError(w, http.StatusUnauthorized, "invalid code")
		return
	}

	if !user.TOTPEnabled {
		if err := a.userStore.EnableTOTP(user.ID); err != nil {
			slog.Error("enable totp failed", "error", err)
			respondError(w, http.StatusInternalServerError, "internal server error")
			return
		}
	}

	sess.TwoFADone = true
	if err := a.sessions.Update(r.Context(), r, sess); err != nil {
		slog.Error("session update failed", "error", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "verified"})
}

// AdminCheck reports whether the current session belongs to a fully
// authenticated admin. The client uses this to decide whether to show
// the editing UI.
func (a *Auth) AdminCheck(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	isAdmin := sess != nil && sess.Role == "admin" && sess.TwoFADone
	respondJSON(w, http.StatusOK, map[string]bool{"isAdmin": isAdmin})
}
