package result

import "fmt"

// Kind classifies a Reason
type Kind int

const (
	// KindSuccess marks a reason that explains a successful step
	KindSuccess Kind = iota
	// KindFailure marks a reason that explains a failed step
	KindFailure
)

// String returns the lowercase name of the kind
func (k Kind) String() string {
	switch k {
	case KindSuccess:
		return "success"
	case KindFailure:
		return "failure"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Reason is an immutable explanation of why an outcome was reached.
type Reason struct {
	Kind    Kind
	Message string
	Cause   error
}

// Success creates a success reason
func Success(message string) Reason {
	return Reason{Kind: KindSuccess, Message: message}
}

// Failure creates a failure reason with an optional underlying cause
func Failure(message string, cause error) Reason {
	return Reason{Kind: KindFailure, Message: message, Cause: cause}
}

// IsSuccess reports whether the reason is of kind KindSuccess
func (r Reason) IsSuccess() bool {
	return r.Kind == KindSuccess
}

func (r Reason) String() string {
	if r.Cause != nil {
		return fmt.Sprintf("%s: %s (%v)", r.Kind, r.Message, r.Cause)
	}
	return fmt.Sprintf("%s: %s", r.Kind, r.Message)
}
