// Package ui renders the run summary table for the CLI.
package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"reactc/internal/driver"
)

const pathWidth = 40

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	cacheStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
)

// Summary renders a per-file table with totals.
func Summary(results []driver.Result, elapsed time.Duration) string {
	var sb strings.Builder

	sb.WriteString(headerStyle.Render(fmt.Sprintf("%-*s %5s %5s %7s %9s  %s",
		pathWidth, "file", "fns", "kept", "pruned", "memoized", "status")))
	sb.WriteString("\n")

	var totals driver.Stats
	failed := 0
	for i := range results {
		r := &results[i]
		status := okStyle.Render("ok")
		switch {
		case !r.Ok():
			status = errStyle.Render("error")
			failed++
		case r.FromCache:
			status = cacheStyle.Render("cached")
		}
		sb.WriteString(fmt.Sprintf("%-*s %5d %5d %7d %9d  %s\n",
			pathWidth, truncate(r.Path, pathWidth),
			r.Stats.Functions, r.Stats.ScopesKept, r.Stats.ScopesPruned,
			r.Stats.MemoizedIdents, status))
		totals.Functions += r.Stats.Functions
		totals.ScopesKept += r.Stats.ScopesKept
		totals.ScopesPruned += r.Stats.ScopesPruned
		totals.MemoizedIdents += r.Stats.MemoizedIdents
	}

	sb.WriteString(fmt.Sprintf("%-*s %5d %5d %7d %9d  %s\n",
		pathWidth, "total", totals.Functions, totals.ScopesKept,
		totals.ScopesPruned, totals.MemoizedIdents, elapsed.Round(time.Millisecond)))
	if failed > 0 {
		sb.WriteString(errStyle.Render(fmt.Sprintf("%d file(s) failed", failed)))
		sb.WriteString("\n")
	}
	return sb.String()
}

func truncate(value string, width int) string {
	if width <= 0 {
		return value
	}
	if runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width-3, "...")
}
