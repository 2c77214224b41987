package handler

import (
	"html/template"
	"io"
	"net/http"

	"github.com/devbook-dev/devbook/shared/logger"
)

const loginURL = "/login"

func (h *Handler) LoginGetHandler(w http.ResponseWriter, r *http.Request) {
	h.renderTemplate(w, r, "login.html", nil)
}

func (h *Handler) LoginPostHandler(w http.ResponseWriter, r *http.Request) {
	email := r.FormValue("email")
	password := r.FormValue("password")

	resp, err := h.APIClient.Login(r.Context(), email, password)
	if err != nil {
		logger.Log.Error("during login API call", "error", err)
		h.setFlash(w, flashCookieError, "Internal error: backend unavailable.")
		h.setFlash(w, emailPrefillCookie, email)
		http.Redirect(w, r, loginURL, http.StatusSeeOther)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		h.setFlash(w, flashCookieError, template.HTMLEscapeString(string(bodyBytes)))
		h.setFlash(w, emailPrefillCookie, email)
		http.Redirect(w, r, loginURL, http.StatusSeeOther)
		return
	}

	// Success: forward cookies from the backend response to the user's browser
	for _, cookie := range resp.Cookies() {
		http.SetCookie(w, cookie)
	}

	h.redirectWithFlash(w, r, loginURL, flashCookieSuccess, "You are logged in.")
}

func (h *Handler) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Path:     "/",
		Name:     "accessToken",
		Value:    "",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.Public.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, loginURL, http.StatusSeeOther)
}
