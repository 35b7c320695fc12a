package apperrors

import "errors"

var (
	ErrTableNotFound   = errors.New("table not found")
	ErrColumnNotFound  = errors.New("column not found")
	ErrNotEnoughTables = errors.New("relationship detection requires at least two tables")
	ErrUnsupported     = errors.New("operation not supported by this store")
	ErrPathNotAllowed  = errors.New("file path is outside allowed data directories")
	ErrAINotConfigured = errors.New("no AI provider configured")
)
