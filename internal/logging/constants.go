package logging

// Standardized field names for structured logging.
const (
	FieldComponent   = "component"
	FieldUserID      = "user_id"
	FieldFile        = "file_name"
	FieldSource      = "source"
	FieldContentType = "content_type"
	FieldCategory    = "category"
	FieldStatus      = "status"
	FieldCount       = "count"
	FieldLines       = "lines"
	FieldRowErrors   = "row_errors"
	FieldDuration    = "duration_ms"
	FieldMethod      = "method"
	FieldPath        = "path"
	FieldModel       = "model"
)
