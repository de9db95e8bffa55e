package tui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/list"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/muesli/termenv"

	"reposmith.dev/reposmith/internal/result"
)

// ConfigureColor disables colours when output is not a terminal, when
// NO_COLOR is set or when noColor is requested
func ConfigureColor(noColor bool) {
	if noColor || os.Getenv("NO_COLOR") != "" || !IsOutputTTY() {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}

// RenderOptions control how much of a result tree is shown
type RenderOptions struct {
	// Reasons includes every reason under its result
	Reasons bool
	// Metadata includes the metadata of each result
	Metadata bool
	// MaxDepth limits the rendered depth, 0 means unlimited
	MaxDepth int
}

// DefaultRenderOptions shows reasons but not metadata
var DefaultRenderOptions = RenderOptions{Reasons: true}

func outcomeMark(o result.Outcome) string {
	switch o {
	case result.OutcomeSuccess:
		return ColorGreen("✓")
	case result.OutcomeFailure:
		return ColorRed("✗")
	default:
		return ColorYellow("?")
	}
}

func reasonMark(r result.Reason) string {
	if r.IsSuccess() {
		return ColorDim("-")
	}
	return ColorRed("!")
}

// RenderResult renders a result tree as an indented list
func RenderResult(n result.Node, opts RenderOptions) string {
	if n == nil {
		return ""
	}
	w := list.NewWriter()
	w.SetStyle(list.StyleConnectedRounded)
	appendNode(w, n, opts, 0)
	return w.Render()
}

func appendNode(w list.Writer, n result.Node, opts RenderOptions, depth int) {
	title := n.Title()
	if v, ok := n.AnyValue(); ok {
		title = fmt.Sprintf("%s %s", title, ColorDim(fmt.Sprintf("(%v)", v)))
	}
	w.AppendItem(fmt.Sprintf("%s %s", outcomeMark(n.Outcome()), Bold(title)))

	var details []string
	if opts.Metadata {
		for _, e := range n.Metadata() {
			details = append(details, ColorDim(fmt.Sprintf("%s: %v", e.Key, e.Value)))
		}
	}
	if opts.Reasons {
		for _, r := range n.Reasons() {
			line := fmt.Sprintf("%s %s", reasonMark(r), r.Message)
			if r.Cause != nil {
				line += ColorDim(": " + strings.ReplaceAll(r.Cause.Error(), "\n", "; "))
			}
			details = append(details, line)
		}
	}

	children := n.Children()
	descend := opts.MaxDepth == 0 || depth+1 < opts.MaxDepth
	if len(details) == 0 && (len(children) == 0 || !descend) {
		return
	}

	w.Indent()
	for _, d := range details {
		w.AppendItem(d)
	}
	if descend {
		for _, c := range children {
			appendNode(w, c, opts, depth+1)
		}
	}
	w.UnIndent()
}

// RenderSummary renders the direct children of a result as a table with one
// row per step
func RenderSummary(n result.Node) string {
	if n == nil {
		return ""
	}
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"#", "Step", "Outcome", "Reason"})
	for i, c := range n.Children() {
		t.AppendRow(table.Row{i + 1, c.Title(), c.Outcome().String(), lastReason(c)})
	}
	t.AppendFooter(table.Row{"", n.Title(), n.Outcome().String(), lastReason(n)})
	return t.Render()
}

func lastReason(n result.Node) string {
	reasons := n.Reasons()
	if len(reasons) == 0 {
		return ""
	}
	return reasons[len(reasons)-1].Message
}
