package models

import "errors"

// Rejection taxonomy. Every rejection surfaces one of these; there is no
// partial result and nothing is retried.
var (
	// ErrSchema indicates the inputs or market section is absent.
	ErrSchema = errors.New("request must include 'inputs' and 'market' sections")

	// ErrValidation indicates one or more required fields are missing,
	// non-numeric or out of bound. The validator contract is a single
	// pass/fail signal and does not name the offending field.
	ErrValidation = errors.New("validation failed")

	// ErrComputation indicates an arithmetic fault inside the model. Not
	// expected for a validator-passed payload, but always caught.
	ErrComputation = errors.New("model execution failed")
)
