// Package tui provides the terminal output of reposmith.
//
// It handles:
//   - Progress logging with start/success/failure log contexts (Splog)
//   - Rendering result trees as coloured lists (using go-pretty and lipgloss)
//   - Confirmation prompts (using survey)
package tui
