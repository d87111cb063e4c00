package handler

import (
	"net/http"

	"jot/internal/auth"
)

type MeHandler struct{}

func (h *MeHandler) Me(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.PrincipalFromContext(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{
		"id":       u.ID,
		"uid":      u.UID,
		"nickname": u.Nickname,
		"role":     u.Role,
	})
}
