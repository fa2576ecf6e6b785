// Package browse is the interactive terminal browser over the dictionary
// trees: schemas, then their tables or views, then columns.
package browse

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pgddui/pgddui/internal/dictionary"
)

// Level is the depth currently displayed.
type Level int

// Browser levels, outermost first.
const (
	LevelSchemas Level = iota
	LevelTables
	LevelColumns
)

type item struct {
	title string
	desc  string
	index int
}

func (i item) Title() string       { return i.title }
func (i item) Description() string { return i.desc }
func (i item) FilterValue() string { return i.title }

var (
	appStyle   = lipgloss.NewStyle().Padding(1, 2)
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFDF5")).
			Background(lipgloss.Color("#336791")).
			Padding(0, 1)
)

// Model is the bubbletea model of the browser.
type Model struct {
	tables dictionary.Tree
	views  dictionary.Tree

	showViews bool
	level     Level
	schema    int
	table     int

	list list.Model
}

// New creates a browser positioned on the schema list of the table tree.
func New(tables, views dictionary.Tree) Model {
	l := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	l.Styles.Title = titleStyle
	l.KeyMap.Quit = key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit"))
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
			key.NewBinding(key.WithKeys("backspace"), key.WithHelp("backspace", "back")),
			key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "tables/views")),
		}
	}

	m := Model{tables: tables, views: views, list: l}
	m.refresh()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		h, v := appStyle.GetFrameSize()
		m.list.SetSize(msg.Width-h, msg.Height-v)

	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "enter", "right":
			return m, m.descend()
		case "backspace", "left":
			return m, m.ascend()
		case "esc":
			if m.list.FilterState() != list.FilterApplied {
				return m, m.ascend()
			}
		case "tab":
			m.showViews = !m.showViews
			m.level = LevelSchemas
			m.schema, m.table = 0, 0
			return m, m.refresh()
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	return appStyle.Render(m.list.View())
}

// Level returns the depth currently displayed.
func (m Model) Level() Level {
	return m.level
}

// ShowingViews reports whether the view tree is displayed.
func (m Model) ShowingViews() bool {
	return m.showViews
}

// Path returns the names of the schema and table being browsed.
func (m Model) Path() []string {
	tree := m.tree()
	switch m.level {
	case LevelTables:
		return []string{tree[m.schema].Name}
	case LevelColumns:
		s := tree[m.schema]
		return []string{s.Name, s.Tables[m.table].Name}
	}
	return nil
}

// Titles returns the titles of the listed items, in display order.
func (m Model) Titles() []string {
	items := m.list.VisibleItems()
	titles := make([]string, 0, len(items))
	for _, it := range items {
		titles = append(titles, it.(item).title)
	}
	return titles
}

func (m Model) tree() dictionary.Tree {
	if m.showViews {
		return m.views
	}
	return m.tables
}

func (m *Model) descend() tea.Cmd {
	selected, ok := m.list.SelectedItem().(item)
	if !ok {
		return nil
	}
	switch m.level {
	case LevelSchemas:
		m.schema = selected.index
		m.level = LevelTables
	case LevelTables:
		m.table = selected.index
		m.level = LevelColumns
	default:
		return nil
	}
	return m.refresh()
}

func (m *Model) ascend() tea.Cmd {
	if m.level == LevelSchemas {
		return nil
	}
	m.level--
	cmd := m.refresh()
	// Put the cursor back on the node we came from.
	if m.level == LevelSchemas {
		m.list.Select(m.schema)
	} else {
		m.list.Select(m.table)
	}
	return cmd
}

// refresh replaces the list items with the current level.
func (m *Model) refresh() tea.Cmd {
	tree := m.tree()
	noun := "Tables"
	if m.showViews {
		noun = "Views"
	}

	var items []list.Item
	switch m.level {
	case LevelSchemas:
		m.list.Title = noun
		for i, s := range tree {
			items = append(items, item{
				title: s.Name,
				desc:  fmt.Sprintf("%s · %d %s", s.Label, len(s.Tables), plural(len(s.Tables), noun)),
				index: i,
			})
		}
	case LevelTables:
		s := tree[m.schema]
		m.list.Title = fmt.Sprintf("%s · %s", s.Name, noun)
		for i, t := range s.Tables {
			items = append(items, item{
				title: t.Name,
				desc:  fmt.Sprintf("%s · %d %s", t.Label, len(t.Columns), plural(len(t.Columns), "Columns")),
				index: i,
			})
		}
	case LevelColumns:
		s := tree[m.schema]
		t := s.Tables[m.table]
		m.list.Title = fmt.Sprintf("%s.%s · Columns", s.Name, t.Name)
		for i, c := range t.Columns {
			items = append(items, item{title: c, index: i})
		}
	}

	m.list.ResetFilter()
	cmd := m.list.SetItems(items)
	m.list.ResetSelected()
	return cmd
}

// plural lower-cases noun and drops its trailing s for a count of one.
func plural(n int, noun string) string {
	s := strings.ToLower(noun)
	if n == 1 {
		return strings.TrimSuffix(s, "s")
	}
	return s
}

// Run starts the browser on the terminal and blocks until the user quits.
func Run(m Model, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)
	if _, err := tea.NewProgram(m, opts...).Run(); err != nil {
		return fmt.Errorf("failed to run browser: %w", err)
	}
	return nil
}
