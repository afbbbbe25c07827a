package http

import (
	"net/http"

	"github.com/MarcusVRdoN/portal-de-cotacoes/services/api/internal/domain"
)

// HandleMenu returns the dashboard sections visible to the caller's role.
func HandleMenu() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}
		entries := domain.MenuFor(SessionFromContext(r.Context()).Role)
		resp := make([]menuEntryResponse, 0, len(entries))
		for _, e := range entries {
			resp = append(resp, menuEntryResponse{ID: e.ID, Label: e.Label})
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

type menuEntryResponse struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}
