// Package tree serves the schema > table > column tree page and its JSON
// payloads.
package tree

const (
	treeTitle = "Tree"

	// TablesPayloadPath serves the table tree as JSON.
	TablesPayloadPath = "/dd.json"
	// ViewsPayloadPath serves the view tree as JSON.
	ViewsPayloadPath = "/dd_views.json"
)

// errorResponse is the body of a failed payload request.
type errorResponse struct {
	Error string `json:"error"`
}
