// Package filesystem provides the local filesystem collaborator and the
// operator that reports its effects as results.
package filesystem

import (
	"fmt"
	"io"
	"os"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"

	rserrors "reposmith.dev/reposmith/internal/errors"
)

// Store is the set of filesystem capabilities repository operations need.
// Implementations return errors for faults and never report results.
type Store interface {
	CopyFile(source, destination string) error
	CreateDirectory(path string) error
	DirectoryExists(path string) (bool, error)
	DeleteDirectory(path string) error
	FileExists(path string) (bool, error)
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte) error
}

// BillyStore implements Store on a go-billy filesystem
type BillyStore struct {
	fs billy.Filesystem
}

var _ Store = (*BillyStore)(nil)

// NewBillyStore creates a store on the given filesystem
func NewBillyStore(fs billy.Filesystem) *BillyStore {
	return &BillyStore{fs: fs}
}

// NewOSStore creates a store on the native filesystem. Paths are absolute.
func NewOSStore() *BillyStore {
	return NewBillyStore(osfs.New("/"))
}

// NewMemoryStore creates an in-memory store
func NewMemoryStore() *BillyStore {
	return NewBillyStore(memfs.New())
}

// Raw returns the underlying filesystem
func (s *BillyStore) Raw() billy.Filesystem {
	return s.fs
}

func (s *BillyStore) stat(path string) (os.FileInfo, bool, error) {
	info, err := s.fs.Stat(path)
	switch {
	case err == nil:
		return info, true, nil
	case os.IsNotExist(err):
		return nil, false, nil
	default:
		return nil, false, rserrors.NewIOError("stat", path, err)
	}
}

// DirectoryExists reports whether path exists and is a directory
func (s *BillyStore) DirectoryExists(path string) (bool, error) {
	info, ok, err := s.stat(path)
	if err != nil || !ok {
		return false, err
	}
	return info.IsDir(), nil
}

// FileExists reports whether path exists and is a regular file
func (s *BillyStore) FileExists(path string) (bool, error) {
	info, ok, err := s.stat(path)
	if err != nil || !ok {
		return false, err
	}
	return !info.IsDir(), nil
}

// CreateDirectory creates path and any missing parents
func (s *BillyStore) CreateDirectory(path string) error {
	if err := s.fs.MkdirAll(path, 0o755); err != nil {
		return rserrors.NewIOError("mkdir", path, err)
	}
	return nil
}

// DeleteDirectory removes path and everything below it. A missing path is
// not an error.
func (s *BillyStore) DeleteDirectory(path string) error {
	if err := util.RemoveAll(s.fs, path); err != nil {
		return rserrors.NewIOError("remove", path, err)
	}
	return nil
}

// ReadFile returns the contents of path
func (s *BillyStore) ReadFile(path string) ([]byte, error) {
	data, err := util.ReadFile(s.fs, path)
	if err != nil {
		return nil, rserrors.NewIOError("read", path, err)
	}
	return data, nil
}

// WriteFile writes data to path, replacing any existing content
func (s *BillyStore) WriteFile(path string, data []byte) error {
	if err := util.WriteFile(s.fs, path, data, 0o644); err != nil {
		return rserrors.NewIOError("write", path, err)
	}
	return nil
}

// CopyFile copies source to destination, replacing any existing content
func (s *BillyStore) CopyFile(source, destination string) (err error) {
	in, err := s.fs.Open(source)
	if err != nil {
		return rserrors.NewIOError("open", source, err)
	}
	defer func() { _ = in.Close() }()

	out, err := s.fs.Create(destination)
	if err != nil {
		return rserrors.NewIOError("create", destination, err)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = rserrors.NewIOError("close", destination, cerr)
		}
	}()

	if _, err := io.Copy(out, in); err != nil {
		return rserrors.NewIOError("copy", destination, fmt.Errorf("from %s: %w", source, err))
	}
	return nil
}
