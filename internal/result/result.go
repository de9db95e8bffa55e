// Package result provides the outcome tree returned by every repository
// operation.
//
// A Result records an explicitly declared outcome, the ordered reasons that
// led to it, and the results of the sub-operations it invoked. Children are
// attached for audit only: a parent's outcome is never derived from them.
package result

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Outcome is the declared state of a Result
type Outcome int

const (
	// OutcomeUndeclared is the state of a result before the owning
	// operation declares success or failure
	OutcomeUndeclared Outcome = iota
	// OutcomeSuccess indicates the operation reached its goal
	OutcomeSuccess
	// OutcomeFailure indicates the operation did not reach its goal
	OutcomeFailure
)

func (o Outcome) String() string {
	switch o {
	case OutcomeUndeclared:
		return "undeclared"
	case OutcomeSuccess:
		return "success"
	case OutcomeFailure:
		return "failure"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// None is the payload type of results that carry no value.
type None struct{}

// Entry is one metadata key/value pair.
type Entry struct {
	Key   string
	Value any
}

// Node is the type-erased view of a Result, used for children of differing
// payload types and for rendering.
type Node interface {
	Title() string
	Outcome() Outcome
	IsSuccess() bool
	Reasons() []Reason
	Children() []Node
	Metadata() []Entry
	Failures() []error
	AnyValue() (any, bool)
}

// Result is the outcome of one operation and, through its children, of every
// sub-operation it invoked.
type Result[T any] struct {
	title    string
	value    T
	hasValue bool
	outcome  Outcome
	reasons  []Reason
	children []Node
	metadata []Entry
	failures []error
}

// New creates an empty result without a payload
func New(title string) *Result[None] {
	return &Result[None]{title: title}
}

// NewOf creates an empty result with a payload slot of type T
func NewOf[T any](title string) *Result[T] {
	return &Result[T]{title: title}
}

// Title returns the human-readable operation name
func (r *Result[T]) Title() string {
	return r.title
}

// WithTitle replaces the title
func (r *Result[T]) WithTitle(title string) *Result[T] {
	r.title = title
	return r
}

// WithValue sets the payload
func (r *Result[T]) WithValue(v T) *Result[T] {
	r.value = v
	r.hasValue = true
	return r
}

// Value returns the payload, or the zero value of T when none was set
func (r *Result[T]) Value() T {
	return r.value
}

// HasValue reports whether a payload was set
func (r *Result[T]) HasValue() bool {
	return r.hasValue
}

// AnyValue returns the payload as an interface value
func (r *Result[T]) AnyValue() (any, bool) {
	if !r.hasValue {
		return nil, false
	}
	return r.value, true
}

// WithMetadata records a diagnostic key/value pair. Re-using a key replaces
// the value but keeps its original position.
func (r *Result[T]) WithMetadata(key string, value any) *Result[T] {
	for i := range r.metadata {
		if r.metadata[i].Key == key {
			r.metadata[i].Value = value
			return r
		}
	}
	r.metadata = append(r.metadata, Entry{Key: key, Value: value})
	return r
}

// MetadataValue looks up a metadata value by key
func (r *Result[T]) MetadataValue(key string) (any, bool) {
	for _, e := range r.metadata {
		if e.Key == key {
			return e.Value, true
		}
	}
	return nil, false
}

// WithChild attaches the result of a sub-operation
func (r *Result[T]) WithChild(child Node) *Result[T] {
	if child != nil {
		r.children = append(r.children, child)
	}
	return r
}

// WithChildren attaches several sub-operation results in order
func (r *Result[T]) WithChildren(children ...Node) *Result[T] {
	for _, c := range children {
		r.WithChild(c)
	}
	return r
}

// WithReason appends a reason without changing the outcome. Causes are
// only captured by DeclareFailure, so a narrated failure is not counted twice.
func (r *Result[T]) WithReason(reason Reason) *Result[T] {
	r.reasons = append(r.reasons, reason)
	return r
}

// WithReasons appends several reasons in order
func (r *Result[T]) WithReasons(reasons ...Reason) *Result[T] {
	for _, reason := range reasons {
		r.WithReason(reason)
	}
	return r
}

// DeclareSuccess sets the outcome to success and records why.
// A later declaration overwrites the outcome.
func (r *Result[T]) DeclareSuccess(message string) *Result[T] {
	r.outcome = OutcomeSuccess
	r.reasons = append(r.reasons, Success(message))
	return r
}

// DeclareFailure sets the outcome to failure and records why, capturing any
// underlying causes. A later declaration overwrites the outcome.
func (r *Result[T]) DeclareFailure(message string, causes ...error) *Result[T] {
	r.outcome = OutcomeFailure
	var kept []error
	for _, c := range causes {
		if c != nil {
			kept = append(kept, c)
		}
	}
	r.failures = append(r.failures, kept...)
	r.reasons = append(r.reasons, Failure(message, errors.Join(kept...)))
	return r
}

// DeclareOutcome declares success or failure depending on ok
func (r *Result[T]) DeclareOutcome(ok bool, successMessage, failureMessage string) *Result[T] {
	if ok {
		return r.DeclareSuccess(successMessage)
	}
	return r.DeclareFailure(failureMessage)
}

// DeclareOutcomeOf declares success if every node succeeded, and otherwise
// failure carrying the causes captured by the failed nodes
func (r *Result[T]) DeclareOutcomeOf(successMessage, failureMessage string, nodes ...Node) *Result[T] {
	if AllSucceeded(nodes...) {
		return r.DeclareSuccess(successMessage)
	}
	var causes []error
	for _, n := range nodes {
		if n != nil && !n.IsSuccess() {
			causes = append(causes, n.Failures()...)
		}
	}
	return r.DeclareFailure(failureMessage, causes...)
}

// Outcome returns the declared outcome
func (r *Result[T]) Outcome() Outcome {
	return r.outcome
}

// IsSuccess reports whether success was declared
func (r *Result[T]) IsSuccess() bool {
	return r.outcome == OutcomeSuccess
}

// ToReason narrates this result's outcome for a parent
func (r *Result[T]) ToReason(successMessage, failureMessage string) Reason {
	if r.IsSuccess() {
		return Success(successMessage)
	}
	return Failure(failureMessage, r.Err())
}

// Reasons returns a copy of the reasons in the order they were recorded
func (r *Result[T]) Reasons() []Reason {
	return slices.Clone(r.reasons)
}

// Children returns a copy of the attached sub-operation results
func (r *Result[T]) Children() []Node {
	return slices.Clone(r.children)
}

// Metadata returns a copy of the metadata in insertion order
func (r *Result[T]) Metadata() []Entry {
	return slices.Clone(r.metadata)
}

// Failures returns a copy of the captured causes
func (r *Result[T]) Failures() []error {
	return slices.Clone(r.failures)
}

// Err returns nil unless failure was declared. For a failed result it joins
// the captured causes, falling back to the failure messages.
func (r *Result[T]) Err() error {
	if r.outcome != OutcomeFailure {
		return nil
	}
	if len(r.failures) > 0 {
		return errors.Join(r.failures...)
	}
	var msgs []string
	for _, reason := range r.reasons {
		if reason.Kind == KindFailure {
			msgs = append(msgs, reason.Message)
		}
	}
	if len(msgs) == 0 {
		return fmt.Errorf("%s failed", r.title)
	}
	return errors.New(strings.Join(msgs, "; "))
}

// AllSucceeded reports whether every given node declared success
func AllSucceeded(nodes ...Node) bool {
	for _, n := range nodes {
		if n == nil || !n.IsSuccess() {
			return false
		}
	}
	return true
}

// Walk visits n and its descendants depth first in invocation order.
// Returning false from fn skips the node's children.
func Walk(n Node, fn func(depth int, n Node) bool) {
	walk(n, 0, fn)
}

func walk(n Node, depth int, fn func(int, Node) bool) {
	if n == nil {
		return
	}
	if !fn(depth, n) {
		return
	}
	for _, c := range n.Children() {
		walk(c, depth+1, fn)
	}
}

// FindByTitle returns the first descendant of n (n included) with the
// given title
func FindByTitle(n Node, title string) Node {
	var found Node
	Walk(n, func(_ int, node Node) bool {
		if found != nil {
			return false
		}
		if node.Title() == title {
			found = node
			return false
		}
		return true
	})
	return found
}
