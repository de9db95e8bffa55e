package filesystem

import (
	"context"
	"fmt"

	"reposmith.dev/reposmith/internal/guard"
	"reposmith.dev/reposmith/internal/result"
)

// Operator runs filesystem operations and reports each one as a result.
// It never returns errors; faults become failure reasons.
type Operator struct {
	store Store
}

// NewOperator creates an operator on the given store
func NewOperator(store Store) *Operator {
	return &Operator{store: store}
}

// Store returns the underlying store
func (o *Operator) Store() Store {
	return o.store
}

// CopyFile copies source to destination
func (o *Operator) CopyFile(source, destination string) *result.Result[result.None] {
	r := result.New("Copy File").
		WithMetadata("Source file path", source).
		WithMetadata("Destination file path", destination)

	if err := o.store.CopyFile(source, destination); err != nil {
		return r.DeclareFailure("Failed to copy file.", err)
	}
	return r.DeclareSuccess("Successfully copied file.")
}

// CreateDirectory creates path and any missing parents
func (o *Operator) CreateDirectory(path string) *result.Result[result.None] {
	r := result.New("Create Directory").WithMetadata("Directory path", path)

	if err := o.store.CreateDirectory(path); err != nil {
		return r.DeclareFailure("Unable to create directory.", err)
	}
	return r.DeclareSuccess("Created directory.")
}

// DeleteDirectory removes path and everything below it
func (o *Operator) DeleteDirectory(path string) *result.Result[result.None] {
	r := result.New("Delete Directory").WithMetadata("Directory path", path)

	if err := o.store.DeleteDirectory(path); err != nil {
		return r.DeclareFailure(fmt.Sprintf("Unable to delete directory: %s", path), err)
	}
	return r.DeclareSuccess(fmt.Sprintf("Deleted directory: %s", path))
}

// DirectoryExists reports whether path is a directory. The check always
// succeeds: an inaccessible directory is reported as absent.
func (o *Operator) DirectoryExists(path string) *result.Result[bool] {
	r := result.NewOf[bool]("Check Directory Exists").WithMetadata("Directory path", path)

	exists, err := o.store.DirectoryExists(path)
	if err != nil {
		r.WithMetadata("Error", err.Error())
	}
	r.WithValue(exists)
	if exists {
		return r.DeclareSuccess("Directory exists.")
	}
	return r.DeclareSuccess("Directory does not exist, or there was an error (perhaps permissions?) accessing it.")
}

// FileExists reports whether path is a regular file
func (o *Operator) FileExists(path string) *result.Result[bool] {
	r := result.NewOf[bool]("Check File Exists").WithMetadata("File path", path)

	exists, err := o.store.FileExists(path)
	if err != nil {
		return r.DeclareFailure(fmt.Sprintf("Unable to check file: %s", path), err)
	}
	r.WithValue(exists)
	if exists {
		return r.DeclareSuccess(fmt.Sprintf("File exists: %s", path))
	}
	return r.DeclareSuccess(fmt.Sprintf("File does not exist: %s", path))
}

// DeleteDirectoryIdempotent removes path if it exists. The value is true
// when a directory was removed.
func (o *Operator) DeleteDirectoryIdempotent(ctx context.Context, path string) *result.Result[bool] {
	return guard.Remove(ctx, guard.Spec{
		Title:  "Delete Directory Idempotent",
		Target: path,
		Exists: func(context.Context) *result.Result[bool] {
			return o.DirectoryExists(path)
		},
		Act: func(context.Context) result.Node {
			return o.DeleteDirectory(path)
		},
		OnCheckFailure: guard.TreatAsAbsent,
		Messages: guard.Messages{
			AlreadyDone: fmt.Sprintf("Directory already did not exist; no need to delete: %s", path),
			Done:        fmt.Sprintf("Deleted directory: %s", path),
			Failed:      fmt.Sprintf("Failed to delete directory: %s", path),
		},
	})
}

// EnsureDirectory creates path unless it already exists. The value is true
// when the directory was created.
func (o *Operator) EnsureDirectory(ctx context.Context, path string) *result.Result[bool] {
	return guard.Ensure(ctx, guard.Spec{
		Title:  "Ensure Directory",
		Target: path,
		Exists: func(context.Context) *result.Result[bool] {
			return o.DirectoryExists(path)
		},
		Act: func(context.Context) result.Node {
			return o.CreateDirectory(path)
		},
		OnCheckFailure: guard.TreatAsAbsent,
		Messages: guard.Messages{
			AlreadyDone: fmt.Sprintf("Directory already exists, no need to create: %s", path),
			Done:        fmt.Sprintf("Created directory: %s", path),
			Failed:      fmt.Sprintf("Failed to create directory: %s", path),
		},
	})
}

// EnsureFile runs create unless path already is a file. The value is true
// when create ran.
func (o *Operator) EnsureFile(ctx context.Context, path string, create func() result.Node) *result.Result[bool] {
	return guard.Ensure(ctx, guard.Spec{
		Title:  "Ensure File",
		Target: path,
		Exists: func(context.Context) *result.Result[bool] {
			return o.FileExists(path)
		},
		Act: func(context.Context) result.Node {
			return create()
		},
		OnCheckFailure: guard.TreatAsAbsent,
		Messages: guard.Messages{
			AlreadyDone: fmt.Sprintf("File already exists, no need to create: %s", path),
			Done:        fmt.Sprintf("Created file: %s", path),
			Failed:      fmt.Sprintf("Failed to create file: %s", path),
		},
	})
}
