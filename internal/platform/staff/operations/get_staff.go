package operations

import (
	"context"
	"errors"

	"go.storegate.dev/internal/common/repository"
	"go.storegate.dev/internal/platform/pipeline"
	"go.storegate.dev/internal/platform/staff"
)

// GetStaffUseCase handles fetching a single staff member
type GetStaffUseCase struct {
	repo staff.Repository
}

// NewGetStaffUseCase creates a new GetStaffUseCase
func NewGetStaffUseCase(repo staff.Repository) *GetStaffUseCase {
	return &GetStaffUseCase{repo: repo}
}

// Action returns the descriptor for this operation. Query-only: no
// transaction is opened.
func (uc *GetStaffUseCase) Action() pipeline.Action {
	a := pipeline.NewAction(ActionGetStaff)
	a.RequiredFields = []string{"staffId"}
	a.CheckTenantScope = true
	return a
}

// Handle returns one staff member of the caller's store. Members of other
// stores are reported as not found.
func (uc *GetStaffUseCase) Handle(ctx context.Context, exec *pipeline.ExecContext, args pipeline.Args) (any, error) {
	staffID := stringField(args.Input(), "staffId")

	m, err := uc.repo.FindByID(ctx, staffID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, staffNotFound(staffID)
		}
		return nil, err
	}
	if !memberInScope(exec, args, m) {
		return nil, staffNotFound(staffID)
	}
	return m, nil
}
