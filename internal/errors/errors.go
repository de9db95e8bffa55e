// Package errors provides sentinel errors and custom error types for reposmith.
// Use errors.Is() and errors.As() to check for specific error types.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for the failure taxonomy
var (
	// ErrIO indicates a filesystem operation faulted
	ErrIO = errors.New("filesystem failure")

	// ErrVCS indicates a local git operation faulted
	ErrVCS = errors.New("version control failure")

	// ErrRemote indicates the hosted repository service faulted
	ErrRemote = errors.New("remote service failure")

	// ErrPrecondition indicates an existence or absence expectation was violated
	ErrPrecondition = errors.New("precondition failed")

	// ErrAlreadyExists indicates a repository exists where absence was required
	ErrAlreadyExists = errors.New("already exists")

	// ErrNotFound indicates a repository does not exist where it was required
	ErrNotFound = errors.New("not found")

	// ErrAuthentication indicates credentials were missing or rejected
	ErrAuthentication = errors.New("authentication failed")
)

// IOError represents a failed filesystem operation
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// Is returns true if the target error is ErrIO
func (e *IOError) Is(target error) bool {
	return target == ErrIO
}

// NewIOError creates a new IOError
func NewIOError(op, path string, err error) *IOError {
	return &IOError{Op: op, Path: path, Err: err}
}

// VCSError represents a failed git operation on a working copy
type VCSError struct {
	Op   string
	Path string
	Err  error
}

func (e *VCSError) Error() string {
	return fmt.Sprintf("git %s in %s: %v", e.Op, e.Path, e.Err)
}

func (e *VCSError) Unwrap() error {
	return e.Err
}

// Is returns true if the target error is ErrVCS
func (e *VCSError) Is(target error) bool {
	return target == ErrVCS
}

// NewVCSError creates a new VCSError
func NewVCSError(op, path string, err error) *VCSError {
	return &VCSError{Op: op, Path: path, Err: err}
}

// RemoteError represents a failed call to the hosted repository service
type RemoteError struct {
	Op    string
	Owner string
	Name  string
	Err   error
}

func (e *RemoteError) Error() string {
	if e.Owner == "" && e.Name == "" {
		return fmt.Sprintf("remote %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("remote %s %s/%s: %v", e.Op, e.Owner, e.Name, e.Err)
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

// Is returns true if the target error is ErrRemote
func (e *RemoteError) Is(target error) bool {
	return target == ErrRemote
}

// NewRemoteError creates a new RemoteError
func NewRemoteError(op, owner, name string, err error) *RemoteError {
	return &RemoteError{Op: op, Owner: owner, Name: name, Err: err}
}

// PreconditionError represents a violated existence or absence expectation
type PreconditionError struct {
	What   string
	Detail string
	Err    error
}

func (e *PreconditionError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("precondition failed for %s: %s", e.What, e.Detail)
	}
	return fmt.Sprintf("precondition failed for %s", e.What)
}

func (e *PreconditionError) Unwrap() error {
	return e.Err
}

// Is returns true if the target error is ErrPrecondition
func (e *PreconditionError) Is(target error) bool {
	return target == ErrPrecondition
}

// NewPreconditionError reports an unusable input such as an invalid name
func NewPreconditionError(what string, err error) *PreconditionError {
	return &PreconditionError{What: what, Detail: err.Error(), Err: err}
}

// NewAlreadyExistsError reports that what exists although absence was expected
func NewAlreadyExistsError(what string) *PreconditionError {
	return &PreconditionError{What: what, Detail: "already exists", Err: ErrAlreadyExists}
}

// NewNotFoundError reports that what is missing although it was expected
func NewNotFoundError(what string) *PreconditionError {
	return &PreconditionError{What: what, Detail: "does not exist", Err: ErrNotFound}
}

// CommandError represents an error from an external command execution
type CommandError struct {
	Command string
	Args    []string
	Stderr  string
	Err     error
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("command failed: %s", e.Command)
	if len(e.Args) > 0 {
		msg += fmt.Sprintf(" %v", e.Args)
	}
	if e.Stderr != "" {
		msg += fmt.Sprintf("\nstderr: %s", e.Stderr)
	}
	if e.Err != nil {
		msg += fmt.Sprintf("\n%v", e.Err)
	}
	return msg
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// NewCommandError creates a new CommandError
func NewCommandError(command string, args []string, stderr string, err error) *CommandError {
	return &CommandError{
		Command: command,
		Args:    args,
		Stderr:  stderr,
		Err:     err,
	}
}
