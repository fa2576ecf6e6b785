package browse

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pgddui/pgddui/internal/dictionary"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTrees() (dictionary.Tree, dictionary.Tree) {
	tables := dictionary.Tree{
		{Name: "app", Label: "app: Application data", Tables: []dictionary.TableNode{
			{Name: "orders", Label: "orders", Columns: []string{"id (bigint)"}},
			{Name: "users", Label: "users: user accounts", Columns: []string{"id (integer)", "email (text)"}},
		}},
		{Name: "audit", Label: "audit", Tables: []dictionary.TableNode{
			{Name: "users", Label: "users", Columns: []string{"changed_at (timestamptz)"}},
		}},
	}
	views := dictionary.Tree{
		{Name: "app", Label: "app", Tables: []dictionary.TableNode{
			{Name: "active_users", Label: "active_users", Columns: []string{"id (integer)"}},
		}},
	}
	return tables, views
}

func send(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok)
	}
	return m
}

var (
	size  = tea.WindowSizeMsg{Width: 100, Height: 40}
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	down  = tea.KeyMsg{Type: tea.KeyDown}
	back  = tea.KeyMsg{Type: tea.KeyBackspace}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
	tab   = tea.KeyMsg{Type: tea.KeyTab}
)

func TestBrowser_StartsOnSchemas(t *testing.T) {
	m := send(t, New(sampleTrees()), size)

	assert.Equal(t, LevelSchemas, m.Level())
	assert.Nil(t, m.Path())
	assert.Equal(t, []string{"app", "audit"}, m.Titles())
	assert.False(t, m.ShowingViews())
	assert.Contains(t, m.View(), "Tables")
}

func TestBrowser_DrillDownAndBack(t *testing.T) {
	m := send(t, New(sampleTrees()), size, enter)
	assert.Equal(t, LevelTables, m.Level())
	assert.Equal(t, []string{"app"}, m.Path())
	assert.Equal(t, []string{"orders", "users"}, m.Titles())

	m = send(t, m, down, enter)
	assert.Equal(t, LevelColumns, m.Level())
	assert.Equal(t, []string{"app", "users"}, m.Path())
	assert.Equal(t, []string{"id (integer)", "email (text)"}, m.Titles())

	// Columns are leaves.
	m = send(t, m, enter)
	assert.Equal(t, LevelColumns, m.Level())

	m = send(t, m, back)
	assert.Equal(t, LevelTables, m.Level())
	assert.Equal(t, []string{"app"}, m.Path())

	m = send(t, m, esc)
	assert.Equal(t, LevelSchemas, m.Level())

	// Already at the top.
	m = send(t, m, back)
	assert.Equal(t, LevelSchemas, m.Level())
}

func TestBrowser_SameTableNameInTwoSchemas(t *testing.T) {
	m := send(t, New(sampleTrees()), size, down, enter, enter)
	assert.Equal(t, []string{"audit", "users"}, m.Path())
	assert.Equal(t, []string{"changed_at (timestamptz)"}, m.Titles())
}

func TestBrowser_ToggleViews(t *testing.T) {
	m := send(t, New(sampleTrees()), size, enter, tab)
	assert.True(t, m.ShowingViews())
	assert.Equal(t, LevelSchemas, m.Level())
	assert.Equal(t, []string{"app"}, m.Titles())

	m = send(t, m, enter, enter)
	assert.Equal(t, []string{"app", "active_users"}, m.Path())

	m = send(t, m, tab)
	assert.False(t, m.ShowingViews())
	assert.Equal(t, []string{"app", "audit"}, m.Titles())
}

func TestBrowser_Quit(t *testing.T) {
	m := send(t, New(sampleTrees()), size)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestBrowser_EmptyTree(t *testing.T) {
	m := send(t, New(nil, nil), size, enter)
	assert.Equal(t, LevelSchemas, m.Level())
	assert.Empty(t, m.Titles())
}

func TestPlural(t *testing.T) {
	assert.Equal(t, "table", plural(1, "Tables"))
	assert.Equal(t, "tables", plural(2, "Tables"))
	assert.Equal(t, "columns", plural(0, "Columns"))
}
