package state

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/cristianoliveira/listkit/internal/config"
	"github.com/cristianoliveira/listkit/internal/domain"
	"github.com/cristianoliveira/listkit/internal/listview"
	"github.com/cristianoliveira/listkit/internal/settings"
	"github.com/cristianoliveira/listkit/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memorySettings struct {
	s     *settings.Settings
	saves int
}

func (m *memorySettings) LoadSettings() (*settings.Settings, error) {
	data, _ := json.Marshal(m.s)
	out := settings.DefaultSettings()
	_ = json.Unmarshal(data, out)
	return out, nil
}

func (m *memorySettings) SaveSettings(s *settings.Settings) error {
	m.saves++
	m.s = s
	return nil
}

func setupModel(t *testing.T, env map[string]string, products int) (*Model, *storage.Memory, *memorySettings) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(dir, "state"))
	t.Setenv("LISTKIT_CONFIG_PATH", "")
	t.Setenv("CI", "1")
	for k, v := range env {
		t.Setenv(k, v)
	}
	config.Load()

	old := messageClearDuration
	messageClearDuration = time.Millisecond
	t.Cleanup(func() { messageClearDuration = old })

	repo := storage.NewMemory()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 1; i <= products; i++ {
		_, err := repo.Add(context.Background(), domain.Record{
			ID:         fmt.Sprintf("p%02d", i),
			Collection: domain.CollectionProducts,
			Name:       fmt.Sprintf("Product %02d", i),
			Amount:     float64(i),
			CreatedAt:  base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}

	store := &memorySettings{s: settings.DefaultSettings()}
	m, err := NewModel(Options{Collection: domain.CollectionProducts, Repo: repo, Store: store})
	require.NoError(t, err)
	return m, repo, store
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// press sends a key and delivers every resulting message back to the
// model. Spinner ticks and message expiry are dropped.
func press(m *Model, msg tea.Msg) {
	_, cmd := m.Update(msg)
	drain(m, cmd)
}

func drain(m *Model, cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			drain(m, c)
		}
	case spinner.TickMsg, clearMessageMsg, tea.QuitMsg, nil:
	default:
		_, next := m.Update(msg)
		drain(m, next)
	}
}

func TestNewModelRequiresRepo(t *testing.T) {
	_, err := NewModel(Options{Collection: domain.CollectionProducts})
	assert.Error(t, err)
}

func TestNavigationAndPaging(t *testing.T) {
	m, _, _ := setupModel(t, nil, 45)

	assert.Len(t, m.view.PageRows(), 20)
	press(m, runes("j"))
	press(m, runes("j"))
	assert.Equal(t, 2, m.cursor)
	press(m, runes("k"))
	assert.Equal(t, 1, m.cursor)

	press(m, runes("l"))
	assert.Equal(t, 2, m.view.Pager().Page())
	assert.Equal(t, 0, m.cursor)
	press(m, runes("l"))
	press(m, runes("l"))
	assert.Equal(t, 3, m.view.Pager().Page())
	assert.Contains(t, m.View(), "showing 41-45 of 45")

	press(m, runes("h"))
	assert.Equal(t, 2, m.view.Pager().Page())
}

func TestSortByColumnNumber(t *testing.T) {
	m, _, _ := setupModel(t, nil, 5)

	press(m, runes("2"))
	assert.Equal(t, listview.SortConfig{Key: domain.ColumnName, Direction: listview.Asc}, m.view.SortConfig())
	assert.Equal(t, "Product 01", m.view.PageRows()[0].Name)

	press(m, runes("2"))
	assert.Equal(t, listview.Desc, m.view.SortConfig().Direction)
	assert.Equal(t, "Product 05", m.view.PageRows()[0].Name)

	press(m, runes("9"))
	assert.Equal(t, domain.ColumnName, m.view.SortConfig().Key, "out of range digits are ignored")
}

func TestSelectionKeys(t *testing.T) {
	m, _, _ := setupModel(t, nil, 25)
	first := m.view.PageRows()[0].ID

	press(m, tea.KeyMsg{Type: tea.KeySpace})
	assert.True(t, m.view.IsSelected(first))
	assert.True(t, m.view.IsIndeterminate())

	press(m, runes("a"))
	assert.Len(t, m.view.Selected(), 20)
	assert.True(t, m.view.IsAllSelected())
	assert.Contains(t, m.View(), "[x]")

	press(m, runes("x"))
	assert.Empty(t, m.view.Selected())
}

func TestSelectAllMatchingUsesBackend(t *testing.T) {
	m, _, _ := setupModel(t, map[string]string{"LISTKIT_SELECT_ALL_CAP": "30"}, 45)

	press(m, runes("A"))

	assert.Len(t, m.view.Selected(), 30)
	assert.True(t, m.hasMore)
	assert.Equal(t, listview.FilteredSelection, m.view.SelectionMode())
	latest, ok := m.errorHandler.GetLatest()
	require.True(t, ok)
	assert.Equal(t, "selected the first 30 matching products", latest.Text)
}

func TestSearchMode(t *testing.T) {
	m, _, _ := setupModel(t, nil, 25)

	press(m, runes("/"))
	require.Equal(t, modeSearch, m.mode)
	press(m, runes("2"))
	press(m, runes("1"))
	assert.Equal(t, "21", m.view.Query().Search)
	assert.Equal(t, 1, m.view.Count())

	press(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, modeBrowse, m.mode)
	assert.Equal(t, "21", m.view.Query().Search)

	press(m, runes("/"))
	press(m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, "", m.view.Query().Search)
	assert.Equal(t, 25, m.view.Count())
}

func TestStatusFilterCycles(t *testing.T) {
	m, _, _ := setupModel(t, nil, 3)

	press(m, runes("f"))
	assert.Equal(t, "draft", m.view.Query().Filter(domain.FilterStatus))
	press(m, runes("f"))
	assert.Equal(t, "active", m.view.Query().Filter(domain.FilterStatus))
	assert.Equal(t, 0, m.view.Count())
	press(m, runes("f"))
	press(m, runes("f"))
	assert.Equal(t, "", m.view.Query().Filter(domain.FilterStatus))
	assert.Equal(t, 3, m.view.Count())
}

func TestDeleteAsksForConfirmation(t *testing.T) {
	m, repo, _ := setupModel(t, nil, 5)

	press(m, runes("a"))
	press(m, runes("d"))
	require.Equal(t, modeConfirm, m.mode)
	assert.Contains(t, m.View(), "Delete 5 products? (y/N)")

	press(m, runes("n"))
	assert.Equal(t, modeBrowse, m.mode)
	n, err := repo.Count(context.Background(), domain.CollectionProducts)
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	press(m, runes("d"))
	press(m, runes("y"))
	n, err = repo.Count(context.Background(), domain.CollectionProducts)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Empty(t, m.view.Selected())
	assert.Equal(t, 0, m.view.Len())
	assert.Equal(t, "", m.busy)
	assert.Equal(t, listview.Idle, m.coordinator.Status())
}

func TestDeleteKeepsFailedSelected(t *testing.T) {
	m, repo, _ := setupModel(t, map[string]string{"LISTKIT_CONFIRM_BULK": "false"}, 3)
	_, err := repo.Add(context.Background(), domain.Record{
		ID:         "o1",
		Collection: domain.CollectionOrders,
		Name:       "Order 1",
		Ref:        "p02",
	})
	require.NoError(t, err)

	press(m, runes("a"))
	press(m, runes("d"))

	assert.Equal(t, []string{"p02"}, m.view.Selected())
	latest, ok := m.errorHandler.GetLatest()
	require.True(t, ok)
	assert.Equal(t, "warning", latest.Type.String())
	assert.Contains(t, latest.Text, "2 of 3")
}

func writeHook(t *testing.T, dir, point, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, point), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, point, "hook.sh"), []byte("#!/bin/sh\n"+body+"\n"), 0o755))
}

func TestDeleteAbortedByPreHook(t *testing.T) {
	hooksDir := filepath.Join(t.TempDir(), "hooks")
	m, repo, _ := setupModel(t, map[string]string{
		"LISTKIT_CONFIRM_BULK":       "false",
		"LISTKIT_HOOKS_DIR":          hooksDir,
		"LISTKIT_HOOKS_FAILURE_MODE": "abort",
	}, 3)
	writeHook(t, hooksDir, "pre-delete", "exit 1")

	press(m, runes("a"))
	press(m, runes("d"))

	count, err := repo.Count(context.Background(), domain.CollectionProducts)
	require.NoError(t, err)
	assert.Equal(t, 3, count, "nothing deleted")
	assert.Len(t, m.view.Selected(), 3, "selection kept for a retry")
	assert.Empty(t, m.busy)
	latest, ok := m.errorHandler.GetLatest()
	require.True(t, ok)
	assert.Equal(t, "error", latest.Type.String())
	assert.Equal(t, "delete aborted by hook", latest.Text)
}

func TestDeleteRunsPostHook(t *testing.T) {
	hooksDir := filepath.Join(t.TempDir(), "hooks")
	m, _, _ := setupModel(t, map[string]string{
		"LISTKIT_CONFIRM_BULK":       "false",
		"LISTKIT_HOOKS_DIR":          hooksDir,
		"LISTKIT_HOOKS_FAILURE_MODE": "warn",
	}, 3)
	out := filepath.Join(t.TempDir(), "post.txt")
	writeHook(t, hooksDir, "post-delete", `echo "$LISTKIT_ACTION $LISTKIT_SUCCEEDED $LISTKIT_RESULT" > `+out)

	press(m, runes("a"))
	press(m, runes("d"))

	assert.Empty(t, m.view.Selected())
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "delete 3 completed", strings.TrimSpace(string(data)))
}

func TestSetStatusPicker(t *testing.T) {
	m, repo, _ := setupModel(t, map[string]string{"LISTKIT_CONFIRM_BULK": "false"}, 3)

	press(m, runes("s"))
	assert.Equal(t, modeBrowse, m.mode, "nothing selected")

	id := m.view.PageRows()[0].ID
	press(m, tea.KeyMsg{Type: tea.KeySpace})
	press(m, runes("s"))
	require.Equal(t, modeStatusPick, m.mode)
	assert.Contains(t, m.View(), "archived")

	press(m, runes("3"))
	assert.Equal(t, modeBrowse, m.mode)
	r, err := repo.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusArchived, r.Status)
}

func TestFeatureGatesInTUI(t *testing.T) {
	m, repo, _ := setupModel(t, map[string]string{
		"LISTKIT_PRODUCTS_BULK_DELETE":   "false",
		"LISTKIT_PRODUCTS_COLUMN_TOGGLE": "false",
	}, 3)

	press(m, runes("a"))
	press(m, runes("d"))
	assert.Equal(t, modeBrowse, m.mode)
	n, _ := repo.Count(context.Background(), domain.CollectionProducts)
	assert.Equal(t, 3, n)

	press(m, runes("c"))
	assert.Equal(t, modeBrowse, m.mode)
	latest, _ := m.errorHandler.GetLatest()
	assert.Equal(t, "column toggling is disabled for products", latest.Text)
}

func TestColumnPickerSavesSettings(t *testing.T) {
	m, _, store := setupModel(t, nil, 3)

	press(m, runes("c"))
	require.Equal(t, modeColumns, m.mode)

	press(m, tea.KeyMsg{Type: tea.KeySpace})
	assert.True(t, m.view.Columns().IsVisible(domain.ColumnID), "required column stays visible")

	press(m, runes("j"))
	press(m, runes("j"))
	press(m, tea.KeyMsg{Type: tea.KeySpace})
	assert.False(t, m.view.Columns().IsVisible(domain.ColumnStatus))

	press(m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, modeBrowse, m.mode)
	assert.Equal(t, 1, store.saves)
	assert.NotContains(t, store.s.ForView("products").Columns, domain.ColumnStatus)
}

func TestModelContextFollowsParent(t *testing.T) {
	_, repo, store := setupModel(t, nil, 3)
	parent, cancel := context.WithCancel(context.Background())

	m, err := NewModel(Options{Context: parent, Collection: domain.CollectionProducts, Repo: repo, Store: store})
	require.NoError(t, err)
	require.NoError(t, m.ctx.Err())

	cancel()
	assert.ErrorIs(t, m.ctx.Err(), context.Canceled)
}

func TestQuitPersistsPreferences(t *testing.T) {
	m, repo, store := setupModel(t, nil, 3)
	press(m, runes("2"))
	press(m, runes("f"))

	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.ErrorIs(t, m.ctx.Err(), context.Canceled, "background work is canceled on quit")

	saved := store.s.ForView("products")
	assert.Equal(t, domain.ColumnName, saved.SortBy)
	assert.Equal(t, "draft", saved.Filters[domain.FilterStatus])
	assert.Nil(t, saved.Columns, "all columns visible is not stored")
	assert.Zero(t, saved.PageSize, "default page size is not stored")

	again, err := NewModel(Options{Collection: domain.CollectionProducts, Repo: repo, Store: store})
	require.NoError(t, err)
	assert.Equal(t, domain.ColumnName, again.view.SortConfig().Key)
	assert.Equal(t, "draft", again.view.Query().Filter(domain.FilterStatus))
}

func TestViewShowsEmptyState(t *testing.T) {
	m, _, _ := setupModel(t, nil, 0)
	press(m, tea.WindowSizeMsg{Width: 100, Height: 30})

	out := m.View()
	assert.Contains(t, out, "No records found")
	assert.Contains(t, out, "showing 0-0 of 0")
}
