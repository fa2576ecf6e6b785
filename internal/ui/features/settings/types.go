// Package settings handles the per-session system-objects toggle.
package settings

const (
	// TogglePath flips system-object visibility for the session.
	TogglePath = "/_toggle_system_objects"

	flagParam = "system_objects"

	// datastarHeader marks requests issued by the datastar runtime.
	datastarHeader = "Datastar-Request"
)

type toggleResponse struct {
	Status string `json:"status"`
}
