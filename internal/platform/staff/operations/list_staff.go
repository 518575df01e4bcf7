package operations

import (
	"context"

	"go.storegate.dev/internal/platform/pipeline"
	"go.storegate.dev/internal/platform/staff"
)

// ListStaffUseCase handles listing the staff of a store
type ListStaffUseCase struct {
	repo staff.Repository
}

// NewListStaffUseCase creates a new ListStaffUseCase
func NewListStaffUseCase(repo staff.Repository) *ListStaffUseCase {
	return &ListStaffUseCase{repo: repo}
}

// Action returns the descriptor for this operation. Query-only: no
// transaction is opened.
func (uc *ListStaffUseCase) Action() pipeline.Action {
	a := pipeline.NewAction(ActionListStaff)
	a.CheckTenantScope = true
	return a
}

// Handle returns the staff members of the caller's store, newest first.
// The slice passes through normalization unchanged.
func (uc *ListStaffUseCase) Handle(ctx context.Context, exec *pipeline.ExecContext, args pipeline.Args) (any, error) {
	storeID := args.StoreID()
	if storeID == "" {
		storeID = exec.Principal.StoreID
	}

	members, err := uc.repo.FindByStore(ctx, storeID)
	if err != nil {
		return nil, err
	}
	if members == nil {
		members = []*staff.StaffMember{}
	}
	return members, nil
}
