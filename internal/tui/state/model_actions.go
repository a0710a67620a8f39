package state

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/listkit/internal/app"
	"github.com/cristianoliveira/listkit/internal/errors"
	"github.com/cristianoliveira/listkit/internal/listview"
)

// loadRows fetches the collection in the background.
func (m *Model) loadRows() tea.Cmd {
	ctx, repo, c := m.ctx, m.repo, m.collection
	return func() tea.Msg {
		rows, err := repo.List(ctx, c)
		return rowsLoadedMsg{rows: rows, err: err}
	}
}

func (m *Model) handleRowsLoaded(msg rowsLoadedMsg) tea.Cmd {
	if msg.err != nil {
		m.logger.Error("failed to load rows", "error", msg.err)
		return m.notify(m.errorHandler.Error, "failed to load "+string(m.collection))
	}
	m.view.Load(msg.rows)
	m.clampCursor()
	return nil
}

// selectAllMatching asks the backend for every id matching the filters,
// including rows beyond the current page.
func (m *Model) selectAllMatching() tea.Cmd {
	if !m.view.Features().SelectAllMatching {
		return m.notify(m.errorHandler.Warning, "select all matching is disabled for "+string(m.collection))
	}
	list := app.MatchingIDs(m.repo, m.collection, m.view.Query())
	ctx, limit := m.ctx, m.selectAllCap
	return func() tea.Msg {
		ids, hasMore, err := list(ctx, limit)
		return matchingIDsMsg{ids: ids, hasMore: hasMore, err: err}
	}
}

func (m *Model) handleMatchingIDs(msg matchingIDsMsg) tea.Cmd {
	if msg.err != nil {
		m.logger.Error("select all matching failed", "error", msg.err)
		return m.notify(m.errorHandler.Error, errors.UserMessage(msg.err, "could not select all matching records"))
	}
	fetched := func(context.Context, int) ([]string, bool, error) {
		return msg.ids, msg.hasMore, nil
	}
	hasMore, err := m.view.SelectAllMatching(m.ctx, fetched, m.selectAllCap)
	if err != nil {
		return m.notify(m.errorHandler.Error, err.Error())
	}
	m.hasMore = hasMore
	count := len(m.view.Selected())
	if hasMore {
		return m.notify(m.errorHandler.Warning, fmt.Sprintf("selected the first %d matching %s", count, m.collection))
	}
	return m.notify(m.errorHandler.Info, fmt.Sprintf("selected all %d matching %s", count, m.collection))
}

// requestBulk checks the action is allowed, then confirms or runs it.
func (m *Model) requestBulk(action pendingAction) tea.Cmd {
	if m.busy != "" {
		return m.notify(m.errorHandler.Warning, listview.ErrBusy.Error())
	}
	features := m.view.Features()
	if action.kind == actionDelete && !features.BulkDelete {
		return m.notify(m.errorHandler.Warning, "delete is disabled for "+string(m.collection))
	}
	if action.kind == actionSetStatus && !features.BulkStatus {
		return m.notify(m.errorHandler.Warning, "status changes are disabled for "+string(m.collection))
	}
	action.count = len(m.view.Selected())
	if action.count == 0 {
		return m.notify(m.errorHandler.Info, "nothing selected")
	}
	m.pending = action
	if m.confirmBulk {
		m.mode = modeConfirm
		return nil
	}
	return m.runPending()
}

// runPending starts the pending bulk action in the background, between
// the pre and post hooks of the action.
func (m *Model) runPending() tea.Cmd {
	ba, op := app.DeleteAction(), app.DeleteOp(m.repo)
	if m.pending.kind == actionSetStatus {
		ba, op = app.SetStatusAction(m.pending.status), app.SetStatusOp(m.repo, m.pending.status)
	}
	ids := m.view.Selected()
	ctx, coordinator, c := m.ctx, m.coordinator, m.collection
	m.busy = fmt.Sprintf("%s %d %s", ba.Name, len(ids), c)
	m.logger.Info("bulk action started", "action", ba.Name, "count", len(ids))

	run := func() tea.Msg {
		var warnings []string
		res, err := ba.RunWithHooks(ctx, c, ids, func(ctx context.Context) (listview.Result[string], error) {
			return coordinator.Run(ctx, ids, op)
		}, func(msg string) {
			warnings = append(warnings, msg)
		})
		return bulkDoneMsg{action: ba.Name, result: res, err: err, warnings: warnings}
	}
	return tea.Batch(m.spinner.Tick, run)
}

func (m *Model) handleBulkDone(msg bulkDoneMsg) tea.Cmd {
	m.busy = ""
	if msg.err != nil {
		m.logger.Error("bulk action failed", "action", msg.action, "error", msg.err)
		return m.notify(m.errorHandler.Error, errors.UserMessage(msg.err, msg.err.Error()))
	}
	m.view.ApplyResult(msg.result)
	m.coordinator.Dismiss()
	m.logger.Info("bulk action finished", "action", msg.action,
		"succeeded", msg.result.Succeeded, "failed", msg.result.Failed)

	errors.ReportBulk(m.errorHandler, msg.result, msg.action, string(m.collection))
	for _, w := range msg.warnings {
		m.errorHandler.Warning(w)
	}
	latest, _ := m.errorHandler.GetLatest()
	stamp := latest.Timestamp
	clearCmd := tea.Tick(messageClearDuration, func(_ time.Time) tea.Msg {
		return clearMessageMsg{stamp: stamp}
	})
	return tea.Batch(m.loadRows(), clearCmd)
}
