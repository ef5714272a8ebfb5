package domain

import "errors"

// ─── Sentinel Errors ────────────────────────────────────────────────────────
// Domain errors are pure — no infrastructure dependency. Each maps to a
// kind in the error taxonomy: parser (InvalidInput), validator
// (InvalidSchedule), constructors (CycleOrIncomplete), GA (DegenerateConfig).

var (
	// Parser errors (InvalidInput)
	ErrInvalidInput = errors.New("invalid input file")

	// Validator errors (InvalidSchedule)
	ErrInvalidSchedule     = errors.New("invalid schedule")
	ErrScheduleWrongLength = errors.New("schedule length does not match graph size")
	ErrOpIDOutOfRange      = errors.New("operator id out of range")
	ErrCardIDOutOfRange    = errors.New("card id out of range")
	ErrDuplicateOpID       = errors.New("operator id scheduled more than once")
	ErrProducerNotReady    = errors.New("producer not yet executed")
	ErrInvalidCardCount    = errors.New("card count must be positive")

	// Constructor errors (CycleOrIncomplete)
	ErrCycleOrIncomplete = errors.New("topological emission did not cover the graph")

	// GA errors (DegenerateConfig)
	ErrDegenerateConfig = errors.New("degenerate configuration: empty graph or non-positive card count")
)
