// Package browse implements the interactive table browser.
//
// The browser presents every axis and variable entry of a table in a
// filterable list. Selecting an entry opens a detail pane rendering all
// of its fields.
package browse

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ardnew/cmortab/table"
)

var (
	docStyle = lipgloss.NewStyle().Margin(1, 2)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("4")).
			Padding(0, 1)

	fieldKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8")).
			Width(18)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8")).
			MarginTop(1)
)

// Run opens the browser over the given table and blocks until the user
// quits.
func Run(tbl *table.Table) error {
	_, err := tea.NewProgram(newModel(tbl), tea.WithAltScreen()).Run()

	return err
}

// item adapts one table entry to the bubbles list interface.
type item struct {
	entry table.Entry
}

// Title implements the default delegate's item interface.
func (i item) Title() string {
	return fmt.Sprintf("%s  [%s]", i.entry.EntryName(), i.entry.EntryKind())
}

// Description implements the default delegate's item interface.
func (i item) Description() string {
	switch e := i.entry.(type) {
	case *table.AxisEntry:
		return e.LongName
	case *table.VariableEntry:
		return e.LongName
	default:
		return ""
	}
}

// FilterValue implements [list.Item]. Filtering matches the entry name
// and standard name.
func (i item) FilterValue() string {
	switch e := i.entry.(type) {
	case *table.AxisEntry:
		return e.Name + " " + e.StandardName
	case *table.VariableEntry:
		return e.Name + " " + e.StandardName
	default:
		return i.entry.EntryName()
	}
}

type model struct {
	tbl    *table.Table
	list   list.Model
	detail table.Entry // non-nil when the detail pane is open
	width  int
	height int
}

func newModel(tbl *table.Table) model {
	entries := tbl.Entries()

	items := make([]list.Item, len(entries))
	for i, e := range entries {
		items[i] = item{entry: e}
	}

	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = tbl.Name()

	return model{tbl: tbl, list: l}
}

// Init implements [tea.Model].
func (m model) Init() tea.Cmd { return nil }

// Update implements [tea.Model].
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height

		h, v := docStyle.GetFrameSize()
		m.list.SetSize(msg.Width-h, msg.Height-v)

	case tea.KeyMsg:
		// Keys pass through to the list while its filter input is open.
		if m.list.FilterState() == list.Filtering {
			break
		}

		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit

		case "enter":
			if m.detail == nil {
				if sel, ok := m.list.SelectedItem().(item); ok {
					m.detail = sel.entry
				}

				return m, nil
			}

		case "esc":
			if m.detail != nil {
				m.detail = nil

				return m, nil
			}
		}
	}

	var cmd tea.Cmd

	if m.detail == nil {
		m.list, cmd = m.list.Update(msg)
	}

	return m, cmd
}

// View implements [tea.Model].
func (m model) View() string {
	if m.detail != nil {
		return docStyle.Render(m.detailView())
	}

	return docStyle.Render(m.list.View())
}

// detailView renders every populated field of the selected entry.
func (m model) detailView() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(
		fmt.Sprintf("%s %s", m.detail.EntryKind(), m.detail.EntryName())))
	b.WriteString("\n\n")

	for _, f := range entryFields(m.detail) {
		if f.Value == "" {
			continue
		}

		b.WriteString(fieldKeyStyle.Render(f.Key))
		b.WriteString(f.Value)
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("esc back  q quit"))

	return b.String()
}

// entryFields flattens an entry into ordered key-value pairs for display.
func entryFields(e table.Entry) []table.Field {
	switch entry := e.(type) {
	case *table.AxisEntry:
		fields := []table.Field{
			{Key: "standard_name", Value: entry.StandardName},
			{Key: "long_name", Value: entry.LongName},
			{Key: "units", Value: entry.Units},
			{Key: "axis", Value: entry.Axis},
			{Key: "positive", Value: entry.Positive},
			{Key: "out_name", Value: entry.OutName},
			{Key: "type", Value: entry.Type},
			{Key: "stored_direction", Value: entry.StoredDirection},
			{Key: "must_have_bounds", Value: entry.MustHaveBounds},
			{Key: "tolerance", Value: entry.Tolerance},
			{Key: "valid_min", Value: entry.ValidMin},
			{Key: "valid_max", Value: entry.ValidMax},
			{Key: "value", Value: entry.Value},
			{Key: "bounds_values", Value: entry.BoundsValues},
			{Key: "requested", Value: strings.Join(entry.Requested, " ")},
			{Key: "comment", Value: entry.Comment},
		}

		return append(fields, entry.Extra...)

	case *table.VariableEntry:
		fields := []table.Field{
			{Key: "standard_name", Value: entry.StandardName},
			{Key: "long_name", Value: entry.LongName},
			{Key: "units", Value: entry.Units},
			{Key: "modeling_realm", Value: entry.ModelingRealm},
			{Key: "cell_methods", Value: entry.CellMethods},
			{Key: "cell_measures", Value: entry.CellMeasures},
			{Key: "dimensions", Value: strings.Join(entry.Dimensions, " ")},
			{Key: "out_name", Value: entry.OutName},
			{Key: "type", Value: entry.Type},
			{Key: "positive", Value: entry.Positive},
			{Key: "valid_min", Value: entry.ValidMin},
			{Key: "valid_max", Value: entry.ValidMax},
			{Key: "comment", Value: entry.Comment},
		}

		return append(fields, entry.Extra...)

	default:
		return nil
	}
}
