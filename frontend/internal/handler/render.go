package handler

import (
	"bytes"
	"fmt"
	"net/http"

	frontend_domain "github.com/devbook-dev/devbook/frontend/internal/domain"
	"github.com/devbook-dev/devbook/frontend/internal/middleware"
	"github.com/devbook-dev/devbook/shared/logger"
)

// TemplateData wraps page-specific data with common template data.
// Templates access page data via .Data and common data via .Common.
type TemplateData struct {
	Data   any
	Common frontend_domain.CommonTemplateData
}

func (h *Handler) initCommonTemplateData(w http.ResponseWriter, r *http.Request) frontend_domain.CommonTemplateData {
	return frontend_domain.CommonTemplateData{
		Error:            h.popFlash(w, r, flashCookieError),
		Success:          h.popFlash(w, r, flashCookieSuccess),
		EmailPlaceholder: h.popFlash(w, r, emailPrefillCookie),
		CSRFToken:        middleware.GetCSRFTokenFromContext(r),
		Validation: frontend_domain.ValidationData{
			NameMaxLen: h.Public.NameMaxLen,
			NickMaxLen: h.Public.NickMaxLen,
		},
	}
}

func (h *Handler) renderTemplate(w http.ResponseWriter, r *http.Request, name string, data any) {
	tmpl, ok := h.getTemplate(name)
	if !ok {
		http.Error(w, fmt.Sprintf("Template %s not found", name), http.StatusInternalServerError)
		return
	}

	wrapped := TemplateData{
		Data:   data,
		Common: h.initCommonTemplateData(w, r),
	}

	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, wrapped); err != nil {
		logger.Log.Error("error executing template", "template", name, "error", err)
		http.Error(w, "Internal Server Error rendering template", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}
