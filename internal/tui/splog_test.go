package tui

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplog(t *testing.T) {
	t.Run("writes plain messages to the console", func(t *testing.T) {
		var buf bytes.Buffer
		s := NewSplogWithWriter(&buf)

		s.Info("Creating %s", "acme/widgets")
		s.Warn("slow")

		require.Equal(t, "Creating acme/widgets\n⚠️  slow\n", buf.String())
	})

	t.Run("quiet suppresses console output", func(t *testing.T) {
		var buf bytes.Buffer
		s := NewSplogWithWriter(&buf)
		s.SetQuiet(true)

		s.Info("hidden")
		s.Newline()
		s.Tip("hidden too")

		require.True(t, s.IsQuiet())
		require.Empty(t, buf.String())
	})

	t.Run("file log receives records with run id", func(t *testing.T) {
		var buf bytes.Buffer
		logPath := filepath.Join(t.TempDir(), "logs", "reposmith.log")
		s, err := NewSplogWithConfig(&buf, logPath, "run-123")
		require.NoError(t, err)
		s.SetQuiet(true)

		s.Info("into the file")
		require.NoError(t, s.Close())

		data, err := os.ReadFile(logPath)
		require.NoError(t, err)
		require.Contains(t, string(data), "into the file")
		require.Contains(t, string(data), "run=run-123")
		require.Empty(t, buf.String())
	})
}

func TestLogContexts(t *testing.T) {
	var buf bytes.Buffer
	s := NewSplogWithWriter(&buf)

	ran := false
	s.InLogContext("start", "done", func() { ran = true })
	require.True(t, ran)

	v := InLogContextValue(s, "computing", "computed", func() int { return 7 })
	require.Equal(t, 7, v)

	ok := s.InSuccessFailureLogContext("trying", "worked", "broke", func() bool { return false })
	require.False(t, ok)

	require.Equal(t, "start\ndone\ncomputing\ncomputed\ntrying\n⚠️  broke\n", buf.String())
}
