package claims

import "errors"

// Validation failures. Returned before any mutation.
var (
	ErrInvalidAmount = errors.New("claim amount must be a finite value between 0 and 999999")
	ErrCodesRequired = errors.New("at least one procedure or diagnosis code is required")
	ErrTooManyCodes  = errors.New("a claim may carry at most 25 codes")
)

// Not-found failures.
var (
	ErrClaimNotFound    = errors.New("claim not found")
	ErrPatientNotFound  = errors.New("patient not found")
	ErrProviderNotFound = errors.New("provider not found")
)
