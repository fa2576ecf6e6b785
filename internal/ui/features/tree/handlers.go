package tree

import (
	"net/http"

	"github.com/pgddui/pgddui/internal/dictionary"
	"github.com/pgddui/pgddui/internal/ui/features/common"
	"github.com/pgddui/pgddui/internal/ui/pages"
	"github.com/pgddui/pgddui/internal/visibility"
)

// Handlers provides HTTP handlers for the tree feature.
type Handlers struct {
	deps *common.Deps
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(deps *common.Deps) *Handlers {
	return &Handlers{deps: deps}
}

// TreePage renders both trees as collapsible lists.
func (h *Handlers) TreePage(w http.ResponseWriter, r *http.Request) {
	tables, views, err := common.LoadTrees(r.Context(), h.deps.Reader, visibility.FromContext(r.Context()))
	if err != nil {
		h.deps.RenderError(w, r, err)
		return
	}

	data := h.deps.PageData(r, treeTitle, "tree")
	data.Tree = tables
	data.ViewTree = views
	h.deps.Render(w, r, http.StatusOK, pages.PageTree, data)
}

// TablesPayload writes the table tree.
func (h *Handlers) TablesPayload(w http.ResponseWriter, r *http.Request) {
	h.payload(w, r, func(tables, _ dictionary.Tree) dictionary.Tree { return tables })
}

// ViewsPayload writes the view tree.
func (h *Handlers) ViewsPayload(w http.ResponseWriter, r *http.Request) {
	h.payload(w, r, func(_, views dictionary.Tree) dictionary.Tree { return views })
}

func (h *Handlers) payload(w http.ResponseWriter, r *http.Request, pick func(tables, views dictionary.Tree) dictionary.Tree) {
	tables, views, err := common.LoadTrees(r.Context(), h.deps.Reader, visibility.FromContext(r.Context()))
	if err != nil {
		status := common.StatusFor(err)
		h.deps.Log().Error("failed to build tree payload", "path", r.URL.Path, "status", status, "error", err)
		common.WriteJSON(w, status, errorResponse{Error: err.Error()})
		return
	}

	tree := pick(tables, views)
	if tree == nil {
		tree = dictionary.Tree{}
	}
	common.WriteJSON(w, http.StatusOK, tree)
}
