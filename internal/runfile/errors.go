package runfile

import "errors"

var (
	// ErrRunFileNotFound is returned when the configured run definition path
	// does not exist on disk.
	ErrRunFileNotFound = errors.New("trubric run file not found")

	// ErrEntryPointMissing is returned when the run file parses but declares
	// no run_context block, the required entry point carrying the run's
	// model and dataset identifiers.
	ErrEntryPointMissing = errors.New("run file must contain a 'run_context' block")

	// ErrEntryPointType is returned when a run_context block is present but
	// does not decode into the expected shape.
	ErrEntryPointType = errors.New("'run_context' block does not match the expected type")
)
