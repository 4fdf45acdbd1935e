package measure

// ValidationError reports rejected user input, such as a non-positive
// reference distance or a zero-length reference line.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid input: " + e.Reason
}

// PreconditionError reports an operation attempted before its prerequisites
// exist, such as measuring without an active calibration.
type PreconditionError struct {
	Reason string
}

func (e *PreconditionError) Error() string {
	return "precondition not met: " + e.Reason
}

// InvalidStateError reports an operation on session state that has not been
// established yet, such as a coordinate transform before an image is loaded.
type InvalidStateError struct {
	Reason string
}

func (e *InvalidStateError) Error() string {
	return "invalid state: " + e.Reason
}
