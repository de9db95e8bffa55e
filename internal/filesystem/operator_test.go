package filesystem

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"reposmith.dev/reposmith/internal/result"
)

// countingStore counts calls and can inject faults
type countingStore struct {
	Store
	copies   int
	writes   int
	deletes  int
	creates  int
	statErr  error
	writeErr error
}

func (s *countingStore) CopyFile(src, dst string) error {
	s.copies++
	return s.Store.CopyFile(src, dst)
}

func (s *countingStore) WriteFile(path string, data []byte) error {
	s.writes++
	if s.writeErr != nil {
		return s.writeErr
	}
	return s.Store.WriteFile(path, data)
}

func (s *countingStore) DeleteDirectory(path string) error {
	s.deletes++
	return s.Store.DeleteDirectory(path)
}

func (s *countingStore) CreateDirectory(path string) error {
	s.creates++
	return s.Store.CreateDirectory(path)
}

func (s *countingStore) DirectoryExists(path string) (bool, error) {
	if s.statErr != nil {
		return false, s.statErr
	}
	return s.Store.DirectoryExists(path)
}

func (s *countingStore) FileExists(path string) (bool, error) {
	if s.statErr != nil {
		return false, s.statErr
	}
	return s.Store.FileExists(path)
}

func newCountingOperator() (*Operator, *countingStore) {
	store := &countingStore{Store: NewMemoryStore()}
	return NewOperator(store), store
}

func TestDirectoryExistsAlwaysSucceeds(t *testing.T) {
	op, store := newCountingOperator()
	store.statErr = errors.New("permission denied")

	r := op.DirectoryExists("/repos/acme")

	require.True(t, r.IsSuccess())
	require.False(t, r.Value())
	errText, ok := r.MetadataValue("Error")
	require.True(t, ok)
	require.Equal(t, "permission denied", errText)
}

func TestDeleteDirectoryIdempotent(t *testing.T) {
	ctx := context.Background()
	op, store := newCountingOperator()
	require.NoError(t, store.Store.CreateDirectory("/repos/acme/widgets/source"))

	first := op.DeleteDirectoryIdempotent(ctx, "/repos/acme/widgets")
	require.True(t, first.IsSuccess())
	require.True(t, first.Value())
	require.Equal(t, 1, store.deletes)

	second := op.DeleteDirectoryIdempotent(ctx, "/repos/acme/widgets")
	require.True(t, second.IsSuccess())
	require.False(t, second.Value())
	require.Equal(t, 1, store.deletes, "second call must not delete again")

	last := second.Reasons()[len(second.Reasons())-1]
	require.Equal(t, "Directory already did not exist; no need to delete: /repos/acme/widgets", last.Message)
}

func TestDeleteDirectoryIdempotentTreatsCheckFailureAsAbsent(t *testing.T) {
	op, store := newCountingOperator()
	store.statErr = errors.New("permission denied")

	r := op.DeleteDirectoryIdempotent(context.Background(), "/repos/acme/widgets")

	require.True(t, r.IsSuccess())
	require.False(t, r.Value())
	require.Zero(t, store.deletes)
}

func TestEnsureDirectory(t *testing.T) {
	ctx := context.Background()
	op, store := newCountingOperator()

	first := op.EnsureDirectory(ctx, "/repos/acme/widgets/source")
	require.True(t, first.IsSuccess())
	require.True(t, first.Value())

	second := op.EnsureDirectory(ctx, "/repos/acme/widgets/source")
	require.True(t, second.IsSuccess())
	require.False(t, second.Value())
	require.Equal(t, 1, store.creates)
}

func TestEnsureFile(t *testing.T) {
	ctx := context.Background()
	op, store := newCountingOperator()
	require.NoError(t, store.Store.WriteFile("/templates/gitignore", []byte("bin/\n")))

	materialize := func() result.Node {
		return op.MaterializeTemplate("/templates/gitignore", "/repos/acme/widgets/.gitignore", nil)
	}

	first := op.EnsureFile(ctx, "/repos/acme/widgets/.gitignore", materialize)
	require.True(t, first.IsSuccess())
	require.True(t, first.Value())
	require.Equal(t, 1, store.copies)

	second := op.EnsureFile(ctx, "/repos/acme/widgets/.gitignore", materialize)
	require.True(t, second.IsSuccess())
	require.False(t, second.Value())
	require.Equal(t, 1, store.copies, "existing file must not be copied again")
}

func TestOperatorReportsFailures(t *testing.T) {
	op, store := newCountingOperator()
	store.writeErr = errors.New("disk full")

	r := op.MaterializeContent("gitignore", []byte("{{ .Name }}\n"), "/repos/x/.gitignore", TemplateData{Name: "x"})
	require.False(t, r.IsSuccess())
	require.ErrorContains(t, r.Err(), "disk full")

	copied := op.CopyFile("/missing", "/dst")
	require.False(t, copied.IsSuccess())
	require.Equal(t, "Failed to copy file.", copied.Reasons()[0].Message)
}
