package handler

import (
	"net/http"

	frontend_domain "github.com/devbook-dev/devbook/frontend/internal/domain"
)

func (h *Handler) TermsGetHandler(w http.ResponseWriter, r *http.Request) {
	h.renderTemplate(w, r, "terms.html", frontend_domain.TermsPageData{Content: h.Terms})
}
