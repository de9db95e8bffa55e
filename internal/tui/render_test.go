package tui

import (
	"errors"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"

	"reposmith.dev/reposmith/internal/result"
)

func sampleTree() result.Node {
	check := result.NewOf[bool]("Check existence").WithValue(false).DeclareSuccess("Checked")
	act := result.New("Delete directory").DeclareFailure("Could not delete", errors.New("permission\ndenied"))
	return result.NewOf[bool]("Delete idempotent").
		WithMetadata("Target", "/repos/acme/widgets").
		WithChildren(check, act).
		DeclareFailure("Failed to remove")
}

func TestRenderResult(t *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)

	t.Run("renders titles, marks and reasons", func(t *testing.T) {
		out := RenderResult(sampleTree(), DefaultRenderOptions)

		require.Contains(t, out, "✗ Delete idempotent")
		require.Contains(t, out, "✓ Check existence (false)")
		require.Contains(t, out, "! Could not delete: permission; denied")
		require.NotContains(t, out, "Target:")
	})

	t.Run("metadata is opt-in", func(t *testing.T) {
		out := RenderResult(sampleTree(), RenderOptions{Metadata: true})

		require.Contains(t, out, "Target: /repos/acme/widgets")
		require.NotContains(t, out, "Could not delete")
	})

	t.Run("max depth hides children", func(t *testing.T) {
		out := RenderResult(sampleTree(), RenderOptions{MaxDepth: 1})

		require.Contains(t, out, "Delete idempotent")
		require.NotContains(t, out, "Check existence")
	})

	t.Run("nil renders nothing", func(t *testing.T) {
		require.Empty(t, RenderResult(nil, DefaultRenderOptions))
	})
}

func TestRenderSummary(t *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)

	out := RenderSummary(sampleTree())

	require.Contains(t, out, "Check existence")
	require.Contains(t, out, "Delete directory")
	require.Contains(t, out, "failure")
	require.Contains(t, out, "Failed to remove")
}
