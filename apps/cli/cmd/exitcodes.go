package cmd

// Exit codes for the marlea CLI
const (
	// ExitSuccess indicates every file parsed
	ExitSuccess = 0

	// ExitFailure indicates an I/O, database or query failure
	ExitFailure = 1

	// ExitParseError indicates at least one file failed to parse
	ExitParseError = 2

	// ExitConfigError indicates a configuration error
	ExitConfigError = 3

	// ExitUsageError indicates invalid CLI usage
	ExitUsageError = 64
)

type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func withExitCode(code int, err error) error {
	if err == nil {
		return nil
	}
	return &exitError{code: code, err: err}
}
