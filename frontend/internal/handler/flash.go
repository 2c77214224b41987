package handler

import (
	"encoding/base64"
	"net/http"
)

const (
	flashCookieError   = "flash_error"
	flashCookieSuccess = "flash_success"
	emailPrefillCookie = "email_prefill"
	flashMaxAge        = 300 // long enough to survive the redirect
)

// setFlash stores a one-shot message. Values are base64 encoded so any text survives the cookie.
func (h *Handler) setFlash(w http.ResponseWriter, name, value string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    base64.StdEncoding.EncodeToString([]byte(value)),
		Path:     "/",
		MaxAge:   flashMaxAge,
		HttpOnly: true,
		Secure:   h.Public.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) redirectWithFlash(w http.ResponseWriter, r *http.Request, target, name, value string) {
	h.setFlash(w, name, value)
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// popFlash reads a flash cookie and expires it.
func (h *Handler) popFlash(w http.ResponseWriter, r *http.Request, name string) string {
	cookie, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.Public.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	decoded, err := base64.StdEncoding.DecodeString(cookie.Value)
	if err != nil {
		return ""
	}
	return string(decoded)
}
