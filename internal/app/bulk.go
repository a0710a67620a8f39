package app

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/cristianoliveira/listkit/internal/config"
	"github.com/cristianoliveira/listkit/internal/domain"
	lkerrors "github.com/cristianoliveira/listkit/internal/errors"
	"github.com/cristianoliveira/listkit/internal/hooks"
	"github.com/cristianoliveira/listkit/internal/listview"
	"github.com/cristianoliveira/listkit/internal/logging"
)

// ErrBulkIncomplete is returned when at least one item of a bulk action failed.
var ErrBulkIncomplete = stderrors.New("bulk action incomplete")

// BulkInput represents delete and set-status inputs after flag parsing.
type BulkInput struct {
	Collection string
	IDs        []string

	// AllMatching selects every record matching the filters below instead of IDs.
	AllMatching bool
	Search      string
	Status      string
	Ref         string

	// Confirm is asked before running; nil skips confirmation.
	Confirm       func(prompt string) bool
	IsCIOrTestEnv func() bool
	Handler       lkerrors.ErrorHandler
}

// BulkUseCase runs delete and set-status over many records.
type BulkUseCase struct {
	repo domain.Repository
}

// NewBulkUseCase creates a new bulk use-case.
func NewBulkUseCase(repo domain.Repository) *BulkUseCase {
	if repo == nil {
		panic("NewBulkUseCase: repository dependency cannot be nil")
	}
	return &BulkUseCase{repo: repo}
}

// Delete removes the selected records.
func (u *BulkUseCase) Delete(ctx context.Context, input BulkInput) (listview.Result[string], error) {
	return u.run(ctx, input, DeleteAction(), DeleteOp(u.repo))
}

// SetStatus moves the selected records to status.
func (u *BulkUseCase) SetStatus(ctx context.Context, input BulkInput, status string) (listview.Result[string], error) {
	c, err := domain.ParseCollection(input.Collection)
	if err != nil {
		return listview.Result[string]{}, lkerrors.User(domain.UnknownCollection(input.Collection), err)
	}
	target, err := domain.ParseStatus(c, status)
	if err != nil {
		return listview.Result[string]{}, lkerrors.User(fmt.Sprintf("%s cannot be %s", c, status), err)
	}
	return u.run(ctx, input, SetStatusAction(target), SetStatusOp(u.repo, target))
}

// BulkAction describes one bulk command for gating, messages and hooks.
type BulkAction struct {
	Feature string
	// Name is the verb shown to the user, e.g. "delete" or "mark archived".
	Name string
	// Hook is the suffix of the pre- and post- hook points.
	Hook string
	Env  map[string]string
}

// DeleteAction describes bulk deletion.
func DeleteAction() BulkAction {
	return BulkAction{Feature: listview.FeatureBulkDelete, Name: "delete", Hook: "delete"}
}

// SetStatusAction describes moving records to status.
func SetStatusAction(status domain.Status) BulkAction {
	return BulkAction{
		Feature: listview.FeatureBulkStatus,
		Name:    "mark " + status.String(),
		Hook:    "set-status",
		Env:     map[string]string{"LISTKIT_TARGET_STATUS": status.String()},
	}
}

// RunWithHooks runs the pre hooks of a, then run, then the post hooks with
// the outcome in their environment. A failing pre hook in abort mode stops
// the action before run is called and returns a user error. Post hook
// failures never fail the action; they are passed to warn.
func (a BulkAction) RunWithHooks(
	ctx context.Context,
	c domain.Collection,
	ids []string,
	run func(context.Context) (listview.Result[string], error),
	warn func(string),
) (listview.Result[string], error) {
	env := a.hookEnv(c, ids)
	if err := hooks.Run(ctx, hooks.Pre(a.Hook), env); err != nil {
		return listview.Result[string]{}, lkerrors.User(fmt.Sprintf("%s aborted by hook", a.Name), err)
	}

	res, err := run(ctx)
	if err != nil {
		return res, err
	}

	env["LISTKIT_RESULT"] = res.Status.String()
	env["LISTKIT_SUCCEEDED"] = strconv.Itoa(res.Succeeded)
	env["LISTKIT_FAILED"] = strconv.Itoa(res.Failed)
	env["LISTKIT_SUCCEEDED_IDS"] = strings.Join(res.SucceededIDs(), "\n")
	if err := hooks.Run(ctx, hooks.Post(a.Hook), env); err != nil && warn != nil {
		warn(err.Error())
	}
	return res, nil
}

// hookEnv returns the variables passed to the scripts of a bulk action.
func (a BulkAction) hookEnv(c domain.Collection, ids []string) map[string]string {
	env := map[string]string{
		"LISTKIT_COLLECTION": string(c),
		"LISTKIT_ACTION":     a.Hook,
		"LISTKIT_COUNT":      strconv.Itoa(len(ids)),
		"LISTKIT_IDS":        strings.Join(ids, "\n"),
	}
	for k, v := range a.Env {
		env[k] = v
	}
	return env
}

func (u *BulkUseCase) run(ctx context.Context, input BulkInput, ba BulkAction, op listview.Op[string]) (listview.Result[string], error) {
	var none listview.Result[string]
	feature, action := ba.Feature, ba.Name
	c, err := domain.ParseCollection(input.Collection)
	if err != nil {
		return none, lkerrors.User(domain.UnknownCollection(input.Collection), err)
	}
	if input.AllMatching && len(input.IDs) > 0 {
		return none, lkerrors.Userf("%s: cannot specify both --all-matching and ids", action)
	}
	if !input.AllMatching && len(input.IDs) == 0 {
		return none, lkerrors.Userf("%s: either specify ids or use --all-matching", action)
	}

	handler := input.Handler
	if handler == nil {
		handler = lkerrors.NewDefaultCLIHandler()
	}
	features := listview.FeaturesFrom(config.FeatureLookup(string(c)))
	if !features.Enabled(feature) {
		return none, lkerrors.User(fmt.Sprintf("%s is disabled for %s", action, c), listview.ErrFeatureDisabled)
	}

	selection := listview.NewSelection[string]()
	if input.AllMatching {
		if !features.SelectAllMatching {
			return none, lkerrors.User(fmt.Sprintf("selecting all matching %s is disabled", c), listview.ErrFeatureDisabled)
		}
		if input.Status != "" {
			if _, err := domain.ParseStatus(c, input.Status); err != nil {
				return none, lkerrors.User(fmt.Sprintf("%s cannot be filtered by status %q", c, input.Status), err)
			}
		}
		q := listview.Query{
			Search:  input.Search,
			Filters: map[string]string{domain.FilterStatus: input.Status, domain.FilterRef: input.Ref},
		}
		limit := config.GetInt("select_all_cap", listview.DefaultSelectAllCap)
		hasMore, err := selection.SelectFiltered(ctx, MatchingIDs(u.repo, c, q), limit)
		if err != nil {
			return none, err
		}
		if hasMore {
			handler.Warning(fmt.Sprintf("more than %d %s match; only the first %d are selected", limit, c, limit))
		}
	} else {
		for _, id := range input.IDs {
			if !selection.Contains(id) {
				selection.ToggleOne(id)
			}
		}
	}

	ids := selection.IDs()
	if len(ids) == 0 {
		handler.Info(fmt.Sprintf("nothing to %s", action))
		return none, nil
	}

	if config.GetBool("confirm_bulk", true) && !isCIOrTest(input.IsCIOrTestEnv) && input.Confirm != nil {
		if !input.Confirm(fmt.Sprintf("Are you sure you want to %s %d %s?", action, len(ids), c)) {
			handler.Info("Operation cancelled")
			return none, nil
		}
	} else {
		logging.Debug("skipping bulk confirmation", "action", action, "count", len(ids))
	}

	res, err := ba.RunWithHooks(ctx, c, ids, func(ctx context.Context) (listview.Result[string], error) {
		res, err := NewCoordinator().Run(ctx, ids, op)
		if err == nil {
			lkerrors.ReportBulk(handler, res, action, string(c))
		}
		return res, err
	}, handler.Warning)
	if err != nil {
		return res, err
	}
	if res.Failed > 0 {
		return res, fmt.Errorf("%s: %d of %d failed: %w", action, res.Failed, res.Failed+res.Succeeded, ErrBulkIncomplete)
	}
	return res, nil
}

func isCIOrTest(check func() bool) bool {
	if check != nil {
		return check()
	}
	return os.Getenv("CI") != "" || os.Getenv("BATS_TMPDIR") != ""
}
