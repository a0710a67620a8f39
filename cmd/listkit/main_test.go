package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/listkit/internal/config"
	"github.com/cristianoliveira/listkit/internal/domain"
	lkerrors "github.com/cristianoliveira/listkit/internal/errors"
	"github.com/cristianoliveira/listkit/internal/settings"
	"github.com/cristianoliveira/listkit/internal/storage"
	"github.com/cristianoliveira/listkit/internal/tui/state"
	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memorySettings struct {
	s *settings.Settings
}

func newMemorySettings() *memorySettings {
	return &memorySettings{s: settings.DefaultSettings()}
}

func (m *memorySettings) LoadSettings() (*settings.Settings, error) {
	data, _ := json.Marshal(m.s)
	out := settings.DefaultSettings()
	_ = json.Unmarshal(data, out)
	return out, nil
}

func (m *memorySettings) SaveSettings(s *settings.Settings) error {
	m.s = s
	return nil
}

// setupCLI isolates configuration and returns a store with n products.
func setupCLI(t *testing.T, n int) *storage.Memory {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(dir, "state"))
	t.Setenv("LISTKIT_CONFIG_PATH", "")
	t.Setenv("CI", "1")
	config.Load()

	repo := storage.NewMemory()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 1; i <= n; i++ {
		_, err := repo.Add(context.Background(), domain.Record{
			ID:         fmt.Sprintf("p%02d", i),
			Collection: domain.CollectionProducts,
			Name:       fmt.Sprintf("Product %02d", i),
			CreatedAt:  base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}
	return repo
}

func execute(t *testing.T, c *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	c.SetOut(&out)
	c.SetErr(&out)
	c.SetIn(strings.NewReader(""))
	c.SetArgs(args)
	err := c.Execute()
	return out.String(), err
}

func TestNewCmdsPanicWhenClientIsNil(t *testing.T) {
	store := newMemorySettings()
	repo := storage.NewMemory()
	tests := map[string]func(){
		"list":       func() { NewListCmd(nil, store) },
		"list store": func() { NewListCmd(repo, nil) },
		"add":        func() { NewAddCmd(nil) },
		"delete":     func() { NewDeleteCmd(nil) },
		"set-status": func() { NewSetStatusCmd(nil) },
		"columns":    func() { NewColumnsCmd(nil) },
		"settings":   func() { NewSettingsCmd(nil) },
		"import":     func() { NewImportCmd(nil) },
		"status":     func() { NewStatusCmd(nil) },
		"tui":        func() { NewTUICmd(nil, store) },
		"version":    func() { NewVersionCmd(nil) },
	}
	for name, fn := range tests {
		t.Run(name, func(t *testing.T) {
			assert.PanicsWithValue(t, panicMessage(name), fn)
		})
	}
}

func panicMessage(name string) string {
	ctor := map[string]string{
		"list":       "NewListCmd",
		"list store": "NewListCmd",
		"add":        "NewAddCmd",
		"delete":     "NewDeleteCmd",
		"set-status": "NewSetStatusCmd",
		"columns":    "NewColumnsCmd",
		"settings":   "NewSettingsCmd",
		"import":     "NewImportCmd",
		"status":     "NewStatusCmd",
		"tui":        "NewTUICmd",
		"version":    "NewVersionCmd",
	}[name]
	return ctor + ": client dependency cannot be nil"
}

func TestListCmdPrintsRequestedPage(t *testing.T) {
	repo := setupCLI(t, 5)

	out, err := execute(t, NewListCmd(repo, newMemorySettings()),
		"products", "--format", "ids", "--page-size", "2", "--page", "2", "--sort", "name", "--order", "desc")

	require.NoError(t, err)
	assert.Equal(t, "p03\np02\n", out)
}

func TestListCmdColumnsFlag(t *testing.T) {
	repo := setupCLI(t, 1)

	out, err := execute(t, NewListCmd(repo, newMemorySettings()), "products", "--columns", "id, name", "--format", "tsv")

	require.NoError(t, err)
	assert.Equal(t, "p01\tProduct 01\n", out)
}

func TestListCmdRejectsUnknownCollection(t *testing.T) {
	setupCLI(t, 0)

	_, err := execute(t, NewListCmd(storage.NewMemory(), newMemorySettings()), "invoices")

	require.Error(t, err)
	assert.Equal(t, `unknown collection "invoices"`, lkerrors.UserMessage(err, ""))
}

func TestAddCmd(t *testing.T) {
	repo := setupCLI(t, 0)

	_, err := execute(t, NewAddCmd(repo), "products", "Blue", "Shirt", "--amount", "9.5", "--status", "active")
	require.NoError(t, err)

	rows, err := repo.List(context.Background(), domain.CollectionProducts)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Blue Shirt", rows[0].Name)
	assert.Equal(t, 9.5, rows[0].Amount)
	assert.Equal(t, domain.StatusActive, rows[0].Status)

	out, err := execute(t, NewAddCmd(repo), "products")
	require.Error(t, err)
	assert.Contains(t, out, "add requires a collection and a name")
}

func TestDeleteCmd(t *testing.T) {
	repo := setupCLI(t, 4)

	_, err := execute(t, NewDeleteCmd(repo), "products", "p01", "p02", "--yes")
	require.NoError(t, err)

	n, _ := repo.Count(context.Background(), domain.CollectionProducts)
	assert.Equal(t, 2, n)

	_, err = execute(t, NewDeleteCmd(repo), "products", "p03", "--all-matching")
	require.Error(t, err)
	assert.Contains(t, lkerrors.UserMessage(err, ""), "cannot specify both --all-matching and ids")
}

func TestDeleteCmdConfirmation(t *testing.T) {
	repo := setupCLI(t, 2)
	t.Setenv("CI", "")

	c := NewDeleteCmd(repo)
	var out bytes.Buffer
	c.SetOut(&out)
	c.SetIn(strings.NewReader("n\n"))
	c.SetArgs([]string{"products", "p01"})
	require.NoError(t, c.Execute())

	assert.Contains(t, out.String(), "Are you sure you want to delete 1 products? (y/N): ")
	n, _ := repo.Count(context.Background(), domain.CollectionProducts)
	assert.Equal(t, 2, n)
}

func TestDeleteCmdReportsIncompleteRun(t *testing.T) {
	repo := setupCLI(t, 2)
	_, err := repo.Add(context.Background(), domain.Record{ID: "o1", Collection: domain.CollectionOrders, Name: "Order", Ref: "p01"})
	require.NoError(t, err)

	_, err = execute(t, NewDeleteCmd(repo), "products", "p01", "p02", "-y")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 failed")
}

func TestSetStatusCmdAllMatching(t *testing.T) {
	repo := setupCLI(t, 3)

	_, err := execute(t, NewSetStatusCmd(repo), "products", "archived", "--all-matching", "--status", "draft", "-y")
	require.NoError(t, err)

	rows, _ := repo.List(context.Background(), domain.CollectionProducts)
	for _, r := range rows {
		assert.Equal(t, domain.StatusArchived, r.Status)
	}

	_, err = execute(t, NewSetStatusCmd(repo), "products", "shipped", "p01", "-y")
	require.Error(t, err)
}

func TestColumnsCmd(t *testing.T) {
	setupCLI(t, 0)
	store := newMemorySettings()

	_, err := execute(t, NewColumnsCmd(store), "hide", "products", "created_at")
	require.NoError(t, err)
	want := []string{"id", "name", "status", "amount", "quantity", "ref"}
	if diff := cmp.Diff(want, store.s.ForView("products").Columns); diff != "" {
		t.Errorf("stored columns mismatch (-want +got):\n%s", diff)
	}

	out, err := execute(t, NewColumnsCmd(store), "show", "products")
	require.NoError(t, err)
	assert.Contains(t, out, "[x] id           ID (required)")
	assert.Contains(t, out, "[ ] created_at   Created")

	_, err = execute(t, NewColumnsCmd(store), "hide", "products", "id")
	require.Error(t, err)

	_, err = execute(t, NewColumnsCmd(store), "reset", "products")
	require.NoError(t, err)
	assert.Empty(t, store.s.ForView("products").Columns)
}

func TestSettingsCmd(t *testing.T) {
	setupCLI(t, 0)
	store := newMemorySettings()
	store.s.SetView("products", settings.ViewSettings{SortBy: "name", SortOrder: "desc"})

	out, err := execute(t, NewSettingsCmd(store), "show", "products")
	require.NoError(t, err)
	assert.JSONEq(t, `{"sortBy":"name","sortOrder":"desc"}`, out)

	_, err = execute(t, NewSettingsCmd(store), "reset", "products", "--force")
	require.NoError(t, err)
	assert.True(t, store.s.ForView("products").IsEmpty())
}

func TestImportCmdNeedsSQLite(t *testing.T) {
	setupCLI(t, 0)
	lazy := newLazyStore(func() (storage.Store, error) { return storage.NewMemory(), nil })

	_, err := execute(t, NewImportCmd(lazy), "-")

	require.ErrorIs(t, err, errImportUnsupported)
}

func TestImportCmdIntoSQLite(t *testing.T) {
	setupCLI(t, 0)
	dbPath := filepath.Join(t.TempDir(), "listkit.db")
	lazy := newLazyStore(func() (storage.Store, error) {
		return storage.NewForBackend(storage.BackendSQLite, dbPath)
	})
	t.Cleanup(func() { _ = lazy.Close() })

	c := NewImportCmd(lazy)
	c.SetIn(strings.NewReader("products\tMug\tactive\t7.5\t3\t\n# comment\norders\tOrder 1\t\t\t\t\n"))
	c.SetArgs([]string{"-"})
	require.NoError(t, c.Execute())

	n, err := lazy.Count(context.Background(), domain.CollectionProducts)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	n, err = lazy.Count(context.Background(), domain.CollectionOrders)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestStatusCmd(t *testing.T) {
	repo := setupCLI(t, 3)
	require.NoError(t, repo.SetStatus(context.Background(), "p01", domain.StatusActive))

	out, err := execute(t, NewStatusCmd(repo), "products", "orders")

	require.NoError(t, err)
	assert.Equal(t, "products 3: draft 2, active 1\norders 0\n", out)

	_, err = execute(t, NewStatusCmd(repo), "invoices")
	assert.Error(t, err)
}

func TestTUICmdStartsProgram(t *testing.T) {
	repo := setupCLI(t, 2)
	orig := runProgram
	defer func() { runProgram = orig }()

	var got tea.Model
	var gotCtx context.Context
	runProgram = func(ctx context.Context, m tea.Model) error {
		got, gotCtx = m, ctx
		return nil
	}

	_, err := execute(t, NewTUICmd(repo, newMemorySettings()), "products")
	require.NoError(t, err)
	model, ok := got.(*state.Model)
	require.True(t, ok)
	assert.Equal(t, 2, model.ListView().Len())
	require.NotNil(t, gotCtx)

	_, err = execute(t, NewTUICmd(repo, newMemorySettings()), "invoices")
	assert.Error(t, err)
}

type fixedVersion string

func (v fixedVersion) Version() string { return string(v) }

func TestVersionCmd(t *testing.T) {
	out, err := execute(t, NewVersionCmd(fixedVersion("1.2.3+abc")))
	require.NoError(t, err)
	assert.Equal(t, "listkit version 1.2.3+abc\n", out)
}

func TestRunExitCode(t *testing.T) {
	assert.Equal(t, 0, run(func() error { return nil }))
	assert.Equal(t, 1, run(func() error { return lkerrors.User("bad input", errors.New("boom")) }))
}

func TestLazyStoreOpensOnce(t *testing.T) {
	opened := 0
	lazy := newLazyStore(func() (storage.Store, error) {
		opened++
		return storage.NewMemory(), nil
	})
	assert.NoError(t, lazy.Close(), "closing an unopened store is a no-op")

	_, err := lazy.Count(context.Background(), domain.CollectionProducts)
	require.NoError(t, err)
	_, err = lazy.List(context.Background(), domain.CollectionProducts)
	require.NoError(t, err)
	assert.Equal(t, 1, opened)

	failing := newLazyStore(func() (storage.Store, error) { return nil, errors.New("no db") })
	_, err = failing.Get(context.Background(), "x")
	assert.EqualError(t, err, "no db")
}
