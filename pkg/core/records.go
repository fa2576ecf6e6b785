package core

// SchemaRecord describes a schema as reported by get_schemas().
type SchemaRecord struct {
	Name                 string `json:"s_name" mapstructure:"s_name"`
	Description          string `json:"description" mapstructure:"description"`
	DataSource           string `json:"data_source" mapstructure:"data_source"`
	Sensitive            bool   `json:"sensitive" mapstructure:"sensitive"`
	SystemObject         bool   `json:"system_object" mapstructure:"system_object"`
	TableCount           int64  `json:"table_count" mapstructure:"table_count"`
	ViewCount            int64  `json:"view_count" mapstructure:"view_count"`
	FunctionCount        int64  `json:"function_count" mapstructure:"function_count"`
	SizePretty           string `json:"size_pretty" mapstructure:"size_pretty"`
	SizePlusIndexes      string `json:"size_plus_indexes" mapstructure:"size_plus_indexes"`
	SizePlusIndexesBytes int64  `json:"size_plus_indexes_bytes" mapstructure:"size_plus_indexes_bytes"`
}

// TableRecord describes a table as reported by get_tables().
type TableRecord struct {
	Schema          string `json:"s_name" mapstructure:"s_name"`
	Name            string `json:"t_name" mapstructure:"t_name"`
	Description     string `json:"description" mapstructure:"description"`
	DataSource      string `json:"data_source" mapstructure:"data_source"`
	Sensitive       bool   `json:"sensitive" mapstructure:"sensitive"`
	SystemObject    bool   `json:"system_object" mapstructure:"system_object"`
	SizePretty      string `json:"size_pretty" mapstructure:"size_pretty"`
	SizePlusIndexes string `json:"size_plus_indexes" mapstructure:"size_plus_indexes"`
	SizeBytes       int64  `json:"size_bytes" mapstructure:"size_bytes"`
	Rows            int64  `json:"rows" mapstructure:"rows"`
	BytesPerRow     int64  `json:"bytes_per_row" mapstructure:"bytes_per_row"`
}

// ViewRecord describes a view as reported by get_views().
// Size and row count are only populated for materialized views.
type ViewRecord struct {
	Schema          string `json:"s_name" mapstructure:"s_name"`
	Name            string `json:"v_name" mapstructure:"v_name"`
	ViewType        string `json:"view_type" mapstructure:"view_type"`
	Description     string `json:"description" mapstructure:"description"`
	SystemObject    bool   `json:"system_object" mapstructure:"system_object"`
	SizePlusIndexes string `json:"size_plus_indexes" mapstructure:"size_plus_indexes"`
	Rows            int64  `json:"rows" mapstructure:"rows"`
}

// ColumnRecord describes a table or view column as reported by get_columns().
type ColumnRecord struct {
	Schema       string `json:"s_name" mapstructure:"s_name"`
	SourceType   string `json:"source_type" mapstructure:"source_type"`
	Table        string `json:"t_name" mapstructure:"t_name"`
	Name         string `json:"column_name" mapstructure:"column_name"`
	Position     int64  `json:"position" mapstructure:"position"`
	DataType     string `json:"data_type" mapstructure:"data_type"`
	Description  string `json:"description" mapstructure:"description"`
	DataSource   string `json:"data_source" mapstructure:"data_source"`
	Sensitive    bool   `json:"sensitive" mapstructure:"sensitive"`
	SystemObject bool   `json:"system_object" mapstructure:"system_object"`
}

// FunctionRecord describes a function as reported by get_functions().
type FunctionRecord struct {
	Schema            string `json:"s_name" mapstructure:"s_name"`
	Name              string `json:"f_name" mapstructure:"f_name"`
	ResultDataTypes   string `json:"result_data_types" mapstructure:"result_data_types"`
	ArgumentDataTypes string `json:"argument_data_types" mapstructure:"argument_data_types"`
	Description       string `json:"description" mapstructure:"description"`
	SystemObject      bool   `json:"system_object" mapstructure:"system_object"`
}

// Snapshot holds the row sets fetched for one build, all under the same
// visibility setting. Kinds that were not requested are left nil.
type Snapshot struct {
	ShowSystem bool             `json:"show_system"`
	Schemas    []SchemaRecord   `json:"schemas,omitempty"`
	Tables     []TableRecord    `json:"tables,omitempty"`
	Views      []ViewRecord     `json:"views,omitempty"`
	Columns    []ColumnRecord   `json:"columns,omitempty"`
	Functions  []FunctionRecord `json:"functions,omitempty"`
}
