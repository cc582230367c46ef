package logging

// Standardized field names for structured logging.
// These constants ensure consistency across the application's log output,
// making logs easier to parse, filter, and analyze.
const (
	FieldFile       = "file_path"
	FieldParser     = "parser"
	FieldDialect    = "dialect"
	FieldRecordID   = "record_id"
	FieldCategory   = "category"
	FieldReason     = "reason"
	FieldOperation  = "operation"
	FieldStatus     = "status"
	FieldError      = "error"
	FieldDuration   = "duration_ms"
	FieldCount      = "count"
	FieldLine       = "line"
	FieldRow        = "row"
	FieldRunID      = "run_id"
	FieldFamily     = "family"
	FieldInputFile  = "input_file"
	FieldOutputFile = "output_file"
)
