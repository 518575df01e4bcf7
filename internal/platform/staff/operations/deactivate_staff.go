package operations

import (
	"context"
	"errors"

	"go.storegate.dev/internal/common/repository"
	"go.storegate.dev/internal/platform/envelope"
	"go.storegate.dev/internal/platform/pipeline"
	"go.storegate.dev/internal/platform/staff"
)

// DeactivateStaffUseCase handles deactivating a staff member
type DeactivateStaffUseCase struct {
	repo staff.Repository
}

// NewDeactivateStaffUseCase creates a new DeactivateStaffUseCase
func NewDeactivateStaffUseCase(repo staff.Repository) *DeactivateStaffUseCase {
	return &DeactivateStaffUseCase{repo: repo}
}

// Action returns the descriptor for this operation.
func (uc *DeactivateStaffUseCase) Action() pipeline.Action {
	a := pipeline.NewAction(ActionDeactivateStaff)
	a.Mutating = true
	a.RequiredFields = []string{"staffId"}
	a.CheckTenantScope = true
	return a
}

// Handle marks a staff member inactive. Deactivation is idempotent: an
// already inactive member is reported as deactivated again.
func (uc *DeactivateStaffUseCase) Handle(ctx context.Context, exec *pipeline.ExecContext, args pipeline.Args) (any, error) {
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

	if m.Active {
		m.Active = false
		if err := uc.repo.Update(ctx, m); err != nil {
			return nil, err
		}
	}

	return envelope.Marked{
		Code: envelope.CodeStaffDeactivated,
		Fields: map[string]any{
			"staffId": m.ID,
		},
	}, nil
}
