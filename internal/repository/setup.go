package repository

import (
	"context"
	"fmt"
	"path/filepath"

	"reposmith.dev/reposmith/internal/filesystem"
	"reposmith.dev/reposmith/internal/paths"
	"reposmith.dev/reposmith/internal/result"
)

// SetupPaths are the artifacts SetupRepository guarantees
type SetupPaths struct {
	GitIgnoreFile   string
	SourceDirectory string
}

// SetupRepository ensures the ignore file and the source directory exist in
// a repository directory. Repeating it changes nothing.
func (o *Orchestrator) SetupRepository(ctx context.Context, dir string) *result.Result[SetupPaths] {
	r := result.NewOf[SetupPaths]("Setup Repository").WithMetadata("Repository directory path", dir)

	var gitIgnore, source *result.Result[string]
	o.splog.InLogContext(
		fmt.Sprintf("Setting up repository...\n\t%s", dir),
		fmt.Sprintf("Finished setting up repository.\n\t%s", dir),
		func() {
			gitIgnore = o.createGitIgnoreFile(ctx, dir)
			source = o.createSourceDirectory(ctx, dir)
		})

	r.WithReason(gitIgnore.ToReason(
		"Created GitIgnore file.",
		"Failed to create GitIgnore file.")).WithChild(gitIgnore)
	r.WithReason(source.ToReason(
		"Created source directory.",
		"Failed to create source directory.")).WithChild(source)

	r.WithValue(SetupPaths{GitIgnoreFile: gitIgnore.Value(), SourceDirectory: source.Value()})

	return r.DeclareOutcomeOf(
		fmt.Sprintf("Repository set up: %s", dir),
		fmt.Sprintf("Repository setup incomplete: %s", dir),
		gitIgnore, source)
}

func templateData(dir string) filesystem.TemplateData {
	name := filepath.Base(dir)
	owner := filepath.Base(filepath.Dir(dir))
	return filesystem.TemplateData{
		Owner:     owner,
		Name:      name,
		Directory: dir,
		OwnedName: paths.OwnedName(owner, name),
	}
}

// createGitIgnoreFile materialises the ignore file template unless the file
// already exists. The value is the file path.
func (o *Orchestrator) createGitIgnoreFile(ctx context.Context, dir string) *result.Result[string] {
	path := paths.GitIgnoreFile(dir)
	r := result.NewOf[string]("Create GitIgnore File").WithValue(path)

	o.splog.Info("Checking if gitignore file exists...\n\t%s", path)
	ensured := o.fs.EnsureFile(ctx, path, func() result.Node {
		o.splog.Info("Gitignore file does not exist. Writing template file...\n\t%s", path)
		if o.gitIgnoreTemplate != "" {
			return o.fs.MaterializeTemplate(o.gitIgnoreTemplate, path, templateData(dir))
		}
		return o.fs.MaterializeContent("gitignore", defaultGitIgnoreTemplate, path, templateData(dir))
	})
	r.WithChild(ensured)

	if !ensured.IsSuccess() {
		o.splog.Error("Failed to create gitignore file:\n\t%s", path)
		return r.DeclareFailure(fmt.Sprintf("Failed to create gitignore file: %s", path), ensured.Failures()...)
	}
	if ensured.Value() {
		o.splog.Info("Created gitignore file:\n\t%s", path)
		return r.DeclareSuccess(fmt.Sprintf("Created gitignore file: %s", path))
	}
	o.splog.Info("Gitignore file exists:\n\t%s", path)
	return r.DeclareSuccess("GitIgnore file already exists, no need to create it.")
}

// createSourceDirectory creates the source directory unless it already
// exists. The value is the directory path.
func (o *Orchestrator) createSourceDirectory(ctx context.Context, dir string) *result.Result[string] {
	path := paths.SourceDirectory(dir)
	r := result.NewOf[string]("Create Source Directory").
		WithValue(path).
		WithMetadata("Repository directory path", dir)

	o.splog.Info("Checking if repository source directory exists...\n\t%s", path)
	ensured := o.fs.EnsureDirectory(ctx, path)
	r.WithChild(ensured)

	if !ensured.IsSuccess() {
		o.splog.Error("Failed to create repository source directory:\n\t%s", path)
		return r.DeclareFailure("Failed to create source directory.", ensured.Failures()...)
	}
	if ensured.Value() {
		o.splog.Info("Created repository source directory:\n\t%s", path)
		return r.DeclareSuccess("Created source directory.")
	}
	o.splog.Info("Repository source directory exists:\n\t%s", path)
	return r.DeclareSuccess("Source directory already exists, no need to create it.")
}
