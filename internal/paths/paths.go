// Package paths derives the local layout of managed repositories.
//
// Every repository lives at <root>/<owner-directory>/<repository-directory>;
// that path is the join key between the filesystem, the working copy and the
// remote repository.
package paths

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

const (
	// GitIgnoreFileName is the name of the version-control ignore file
	GitIgnoreFileName = ".gitignore"

	// SourceDirectoryName is the name of the source subdirectory
	SourceDirectoryName = "source"
)

var validName = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

// Layout computes repository paths under a repositories root
type Layout struct {
	Root string
}

// NewLayout creates a Layout for the given repositories root
func NewLayout(root string) Layout {
	return Layout{Root: filepath.Clean(root)}
}

// OwnerDirectory returns the directory holding all repositories of owner
func (l Layout) OwnerDirectory(owner string) string {
	return filepath.Join(l.Root, DirectoryName(owner))
}

// RepositoryDirectory returns the local directory of owner/name
func (l Layout) RepositoryDirectory(owner, name string) string {
	return filepath.Join(l.OwnerDirectory(owner), DirectoryName(name))
}

// GitIgnoreFile returns the ignore file path inside a repository directory
func GitIgnoreFile(repositoryDirectory string) string {
	return filepath.Join(repositoryDirectory, GitIgnoreFileName)
}

// SourceDirectory returns the source directory inside a repository directory
func SourceDirectory(repositoryDirectory string) string {
	return filepath.Join(repositoryDirectory, SourceDirectoryName)
}

// OwnedName returns the owner/name display identifier
func OwnedName(owner, name string) string {
	return owner + "/" + name
}

// DirectoryName converts an owner or repository name to a single safe path
// segment
func DirectoryName(name string) string {
	name = strings.TrimSpace(name)
	name = strings.NewReplacer("/", "_", `\`, "_").Replace(name)
	name = strings.TrimLeft(name, ".")
	if name == "" {
		return "_"
	}
	return name
}

// ValidateName checks that name is usable as an owner or repository name
func ValidateName(kind, name string) error {
	if name == "" {
		return fmt.Errorf("%s name cannot be empty", kind)
	}
	if name == "." || name == ".." {
		return fmt.Errorf("%s name %q is reserved", kind, name)
	}
	if !validName.MatchString(name) {
		return fmt.Errorf("%s name %q may only contain letters, digits, '-', '_' and '.'", kind, name)
	}
	return nil
}
