package tui

import (
	"os"
	"path/filepath"
)

// GetLogFilePath returns the path to the log file.
// If REPOSMITH_LOG_FILE is set, uses that path.
// Otherwise, uses ~/.reposmith/logs/reposmith.log
func GetLogFilePath() string {
	if customPath := os.Getenv("REPOSMITH_LOG_FILE"); customPath != "" {
		return customPath
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "reposmith.log"
	}

	return filepath.Join(homeDir, ".reposmith", "logs", "reposmith.log")
}
