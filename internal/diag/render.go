package diag

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fatih/color"

	"reactc/internal/source"
)

var (
	errColor  = color.New(color.FgRed, color.Bold)
	warnColor = color.New(color.FgYellow, color.Bold)
	infoColor = color.New(color.FgCyan)
	posColor  = color.New(color.Faint)
)

func severityLabel(sev Severity) string {
	switch sev {
	case SevError:
		return errColor.Sprint("error")
	case SevWarning:
		return warnColor.Sprint("warning")
	default:
		return infoColor.Sprint("info")
	}
}

// FormatShort renders diagnostics one line per entry:
//
//	path:line:col: severity[CODE]: message
//
// Entries are sorted deterministically. Notes are indented beneath their
// diagnostic when includeNotes is set.
func FormatShort(diags []Diagnostic, fs *source.FileSet, includeNotes bool) string {
	if fs == nil || len(diags) == 0 {
		return ""
	}

	type line struct {
		path string
		pos  source.LineCol
		text string
	}
	rendered := make([]line, 0, len(diags))
	for _, d := range diags {
		path, pos := fs.Position(d.Primary)
		var sb strings.Builder
		fmt.Fprintf(&sb, "%s %s %s",
			posColor.Sprintf("%s:%d:%d:", path, pos.Line, pos.Col),
			severityLabel(d.Severity)+"["+d.Code.String()+"]:",
			d.Message)
		if includeNotes {
			for _, n := range d.Notes {
				npath, npos := fs.Position(n.Span)
				fmt.Fprintf(&sb, "\n  note: %s (%s:%d:%d)", n.Msg, npath, npos.Line, npos.Col)
			}
		}
		rendered = append(rendered, line{path: path, pos: pos, text: sb.String()})
	}

	sort.SliceStable(rendered, func(i, j int) bool {
		if rendered[i].path != rendered[j].path {
			return rendered[i].path < rendered[j].path
		}
		if rendered[i].pos.Line != rendered[j].pos.Line {
			return rendered[i].pos.Line < rendered[j].pos.Line
		}
		return rendered[i].pos.Col < rendered[j].pos.Col
	})

	out := make([]string, len(rendered))
	for i, l := range rendered {
		out[i] = l.text
	}
	return strings.Join(out, "\n")
}
