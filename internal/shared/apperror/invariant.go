package apperror

// InvariantViolation describes a broken accounting invariant that must be
// reported to the caller without failing the operation that produced it.
type InvariantViolation struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

func NewInvariantViolation(message string, details map[string]any) *InvariantViolation {
	return &InvariantViolation{
		Code:    CodeInvariantViolation,
		Message: message,
		Details: details,
	}
}
