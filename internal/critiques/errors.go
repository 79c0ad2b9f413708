package critiques

import "errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrEmptyResume     = errors.New("resume text is empty")
	ErrSchemaViolation = errors.New("critique schema violation")
)

const (
	ErrorCodeValidation     = "validation_error"
	ErrorCodeLLM            = "llm_error"
	ErrorCodeSchemaMismatch = "llm_schema_mismatch"
	ErrorCodeNotFound       = "not_found"
	ErrorCodeInternal       = "internal_error"
)
