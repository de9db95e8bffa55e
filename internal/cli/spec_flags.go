package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"reposmith.dev/reposmith/internal/github"
	"reposmith.dev/reposmith/internal/runtime"
	"reposmith.dev/reposmith/internal/tui"
)

// specFlags are the repository settings shared by create and new
type specFlags struct {
	description string
	private     bool
	readme      bool
	license     string
}

func (f *specFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.description, "description", "d", "", "Repository description. Prompted for when omitted in an interactive session.")
	cmd.Flags().BoolVar(&f.private, "private", false, "Create a private repository.")
	cmd.Flags().BoolVar(&f.readme, "readme", false, "Initialize the repository with a README.")
	cmd.Flags().StringVar(&f.license, "license", "", "License template, such as mit or apache-2.0.")
}

// specification builds the repository specification, asking for a
// description when none was given and a prompt is possible
func (f *specFlags) specification(cmd *cobra.Command, rc *runtime.Context, owner, name string) github.RepositorySpecification {
	spec := github.RepositorySpecification{
		Organization:         owner,
		Name:                 name,
		Description:          f.description,
		InitializeWithReadMe: f.readme,
		License:              github.ParseLicense(f.license),
	}
	if f.private {
		spec.Visibility = github.Private
	}

	if !cmd.Flags().Changed("description") {
		description, err := tui.PromptRepositoryDescription(spec.OwnedName())
		switch {
		case err == nil:
			spec.Description = description
		case !errors.Is(err, tui.ErrInteractiveDisabled):
			rc.Splog.Debug("Description prompt skipped: %v", err)
		}
	}
	return spec
}
