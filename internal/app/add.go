package app

import (
	"context"
	"fmt"

	"github.com/cristianoliveira/listkit/internal/colors"
	"github.com/cristianoliveira/listkit/internal/domain"
	lkerrors "github.com/cristianoliveira/listkit/internal/errors"
)

// AddInput represents add command inputs after flag parsing.
type AddInput struct {
	Collection string
	Name       string
	Status     string
	Amount     float64
	Quantity   int
	Ref        string
}

// AddUseCase inserts one record.
type AddUseCase struct {
	repo domain.Repository
}

// NewAddUseCase creates a new add use-case.
func NewAddUseCase(repo domain.Repository) *AddUseCase {
	if repo == nil {
		panic("NewAddUseCase: repository dependency cannot be nil")
	}
	return &AddUseCase{repo: repo}
}

// Execute validates the input and stores the record.
func (u *AddUseCase) Execute(ctx context.Context, input AddInput) (domain.Record, error) {
	c, err := domain.ParseCollection(input.Collection)
	if err != nil {
		return domain.Record{}, lkerrors.User(domain.UnknownCollection(input.Collection), err)
	}
	r := domain.Record{
		Collection: c,
		Name:       input.Name,
		Amount:     input.Amount,
		Quantity:   input.Quantity,
		Ref:        input.Ref,
	}
	if input.Status != "" {
		status, err := domain.ParseStatus(c, input.Status)
		if err != nil {
			return domain.Record{}, lkerrors.User(fmt.Sprintf("%s cannot be %s", c, input.Status), err)
		}
		r.Status = status
	}
	if err := r.Validate(); err != nil {
		return domain.Record{}, lkerrors.User(err.Error(), err)
	}

	added, err := u.repo.Add(ctx, r)
	if err != nil {
		return domain.Record{}, fmt.Errorf("add: %w", err)
	}
	colors.Success(fmt.Sprintf("Added %s record %s", c, added.ID))
	return added, nil
}
