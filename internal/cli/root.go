package cli

import (
	"github.com/spf13/cobra"

	"reposmith.dev/reposmith/internal/cli/helpers"
	"reposmith.dev/reposmith/internal/runtime"
)

// ErrWorkflowFailed is returned when a command reported a failed result
var ErrWorkflowFailed = helpers.ErrWorkflowFailed

// BuildInfo identifies the binary
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// app is shared by the commands of one root command
type app struct {
	factory helpers.ContextFactory
	opts    helpers.GlobalOptions
	build   BuildInfo
}

// NewRootCmd creates the root cobra command
func NewRootCmd(version, commit, date string) *cobra.Command {
	return NewRootCmdWithFactory(BuildInfo{Version: version, Commit: commit, Date: date}, runtime.NewContext)
}

// NewRootCmdWithFactory creates the root command with a custom runtime
// context factory
func NewRootCmdWithFactory(build BuildInfo, factory helpers.ContextFactory) *cobra.Command {
	a := &app{factory: factory, build: build}

	rootCmd := &cobra.Command{
		Use:   "reposmith",
		Short: "Reposmith creates, sets up and removes GitHub repositories together with their local working copies",
		Long: `Reposmith creates, sets up and removes GitHub repositories together with their local working copies.

Every repository lives at <repositories_root>/<owner>/<name>. Each command
prints a tree describing every step it took and exits non-zero if any step
failed.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.opts.ConfigPath, "config", "", "Path to the configuration file (default $REPOSMITH_CONFIG or ~/.config/reposmith/config.yaml)")
	flags.BoolVar(&a.opts.JSON, "json", false, "Print the result tree as JSON.")
	flags.BoolVarP(&a.opts.Quiet, "quiet", "q", false, "Suppress progress output.")
	flags.BoolVar(&a.opts.NoColor, "no-color", false, "Disable colored output.")

	rootCmd.AddCommand(
		newVerifyCmd(a),
		newCreateCmd(a),
		newSetupCmd(a),
		newPushCmd(a),
		newDeleteCmd(a),
		newNewCmd(a),
		newConfigCmd(a),
		newVersionCmd(a),
	)

	return rootCmd
}
