package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/ardnew/cmortab/log"
	"github.com/ardnew/cmortab/table"
)

// Find fuzzy-searches table entries by name and long name.
type Find struct {
	Limit int  `default:"10" help:"Maximum number of matches to print" short:"n"`
	Plain bool `help:"Disable match highlighting"`

	Query  string `arg:"" help:"Search pattern" name:"query"`
	Source string `arg:"" default:"-" help:"Table file or '-' for stdin." name:"source"`
}

// Run executes the find command.
func (f *Find) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	tbl, err := parseSource(ctx, f.Source)
	if err != nil {
		return err
	}

	entries := tbl.Entries()

	candidates := make([]string, len(entries))
	for i, e := range entries {
		candidates[i] = e.EntryName()
	}

	matches := fuzzy.Find(f.Query, candidates)

	log.DebugContext(ctx, "fuzzy search",
		slog.String("query", f.Query),
		slog.Int("candidates", len(candidates)),
		slog.Int("matches", len(matches)),
	)

	if len(matches) == 0 {
		return ErrNoEntries.With(slog.String("query", f.Query))
	}

	if f.Limit > 0 && len(matches) > f.Limit {
		matches = matches[:f.Limit]
	}

	for _, m := range matches {
		e := entries[m.Index]

		name := m.Str
		if !f.Plain {
			name = renderMatch(m)
		}

		fmt.Fprintf(os.Stdout, "%-8s %s%s\n",
			e.EntryKind(), name, matchDetail(e))
	}

	return nil
}

// renderMatch renders one match with its matched characters highlighted.
func renderMatch(match fuzzy.Match) string {
	highlightStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("4")).
		Bold(true)

	matchSet := make(map[int]bool, len(match.MatchedIndexes))
	for _, idx := range match.MatchedIndexes {
		matchSet[idx] = true
	}

	var b strings.Builder

	for i, r := range match.Str {
		ch := string(r)
		if matchSet[i] {
			b.WriteString(highlightStyle.Render(ch))
		} else {
			b.WriteString(ch)
		}
	}

	return b.String()
}

// matchDetail returns the long name of an entry for display after its
// name, or an empty string if the entry has none.
func matchDetail(e table.Entry) string {
	var long string

	switch entry := e.(type) {
	case *table.AxisEntry:
		long = entry.LongName
	case *table.VariableEntry:
		long = entry.LongName
	}

	if long == "" {
		return ""
	}

	return "  (" + long + ")"
}
