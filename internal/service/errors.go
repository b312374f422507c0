package service

// ValidationError reports a missing or malformed request field. It is
// detected before any mutation and surfaced to clients as a 400 with its
// message.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

func validationError(msg string) error {
	return &ValidationError{msg: msg}
}
