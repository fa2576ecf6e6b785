package core

// DatabaseStats is the database-level summary shown in every page footer.
// It is computed once per process and is not refreshed.
type DatabaseStats struct {
	PgDDVersion    string `json:"pgdd_version"`
	PgVersionFull  string `json:"pg_version_full"`
	PgVersionShort string `json:"pg_version_short"`
	Host           string `json:"pg_host"`
	Port           int    `json:"pg_port"`
	Database       string `json:"pg_db"`
	GeneratedAt    string `json:"generated_at"`
	BuildID        string `json:"build_id,omitempty"`
}

// StatsTimeLayout is the display layout for DatabaseStats.GeneratedAt.
const StatsTimeLayout = "01/02/2006 15:04:05"
