package operations

import (
	"context"
	"errors"

	"go.storegate.dev/internal/common/repository"
	"go.storegate.dev/internal/platform/envelope"
	"go.storegate.dev/internal/platform/pipeline"
	"go.storegate.dev/internal/platform/staff"
)

// UpdateProfileCommand contains the profile fields a staff member can change
// about themselves
type UpdateProfileCommand struct {
	Name  string `json:"name,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// UpdateProfileUseCase handles a staff member updating their own profile
type UpdateProfileUseCase struct {
	repo staff.Repository
}

// NewUpdateProfileUseCase creates a new UpdateProfileUseCase
func NewUpdateProfileUseCase(repo staff.Repository) *UpdateProfileUseCase {
	return &UpdateProfileUseCase{repo: repo}
}

// Action returns the descriptor for this operation. The ownership check
// guards it: the target account must be the caller themselves.
func (uc *UpdateProfileUseCase) Action() pipeline.Action {
	a := pipeline.NewAction(ActionUpdateProfile)
	a.Mutating = true
	a.CheckOwnership = true
	return a
}

// Handle updates the caller's own profile fields. Absent fields are left
// unchanged; email and role are not editable through this operation.
func (uc *UpdateProfileUseCase) Handle(ctx context.Context, exec *pipeline.ExecContext, args pipeline.Args) (any, error) {
	in := args.Input()
	cmd := UpdateProfileCommand{
		Name:  stringField(in, "name"),
		Phone: stringField(in, "phone"),
	}

	staffID := args.AccountID()
	m, err := uc.repo.FindByID(ctx, staffID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, staffNotFound(staffID)
		}
		return nil, err
	}

	if cmd.Name != "" {
		m.Name = cmd.Name
	}
	if cmd.Phone != "" {
		m.Phone = cmd.Phone
	}
	if err := uc.repo.Update(ctx, m); err != nil {
		return nil, err
	}

	return envelope.Marked{
		Code: envelope.CodeProfileUpdated,
		Fields: map[string]any{
			"staffId": m.ID,
		},
	}, nil
}
