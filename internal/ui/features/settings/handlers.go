package settings

import (
	"net/http"

	"github.com/pgddui/pgddui/internal/ui/features/common"
	"github.com/pgddui/pgddui/internal/visibility"
	"github.com/starfederation/datastar-go/datastar"
)

// Handlers provides HTTP handlers for the settings feature.
type Handlers struct {
	deps *common.Deps
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(deps *common.Deps) *Handlers {
	return &Handlers{deps: deps}
}

// ToggleSystemObjects stores the requested flag in the session. A missing or
// unparsable value hides system objects. Datastar clients get a reload
// script, everyone else a JSON acknowledgement.
func (h *Handlers) ToggleSystemObjects(w http.ResponseWriter, r *http.Request) {
	show := visibility.ParseFlag(r.URL.Query().Get(flagParam))

	if err := h.deps.Visibility.Set(w, r, show); err != nil {
		h.deps.Log().Error("failed to save session", "error", err)
		common.WriteJSON(w, http.StatusInternalServerError, toggleResponse{Status: "error"})
		return
	}
	h.deps.Log().Debug("system objects toggled", "show", show)

	if r.Header.Get(datastarHeader) != "" {
		sse := datastar.NewSSE(w, r)
		_ = sse.ExecuteScript("window.location.reload()")
		return
	}
	common.WriteJSON(w, http.StatusOK, toggleResponse{Status: "success"})
}
