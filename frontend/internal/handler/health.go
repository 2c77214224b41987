package handler

import (
	"net/http"

	"github.com/devbook-dev/devbook/shared/utils"
)

func (h *Handler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
