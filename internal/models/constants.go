package models

// Category defaults
const (
	// DefaultCategory is assigned when neither a rule nor the statement supplies one.
	DefaultCategory = "未分類"
)

// Placeholders used when a source omits a field
const (
	// DefaultTime stamps deposit entries from layouts that print no time column.
	DefaultTime = "00:00:00"
	// UnknownDate stands in for an empty spreadsheet date cell.
	UnknownDate = "0000/00/00"
)

// DuplicateIDSuffix separates a batch-duplicate's base ID from its ordinal.
const DuplicateIDSuffix = "-dup-"

// File permissions
const (
	PermissionConfigFile = 0600
	PermissionDirectory  = 0750
	PermissionReportFile = 0644
)
