package operations

import (
	"context"
	"errors"

	"go.storegate.dev/internal/common/repository"
	"go.storegate.dev/internal/platform/envelope"
	"go.storegate.dev/internal/platform/pipeline"
	"go.storegate.dev/internal/platform/principal"
	"go.storegate.dev/internal/platform/staff"
)

// AssignRoleCommand contains the data needed to change a staff member's role
type AssignRoleCommand struct {
	StaffID string         `json:"staffId"`
	Role    principal.Role `json:"role"`
}

// AssignRoleUseCase handles changing a staff member's role
type AssignRoleUseCase struct {
	repo staff.Repository
}

// NewAssignRoleUseCase creates a new AssignRoleUseCase
func NewAssignRoleUseCase(repo staff.Repository) *AssignRoleUseCase {
	return &AssignRoleUseCase{repo: repo}
}

// Action returns the descriptor for this operation.
func (uc *AssignRoleUseCase) Action() pipeline.Action {
	a := pipeline.NewAction(ActionAssignRole)
	a.Mutating = true
	a.RequiredFields = []string{"staffId", "role"}
	a.CheckTenantScope = true
	return a
}

// Handle assigns a new role to an existing staff member. A member belonging
// to a different store is reported as not found rather than revealing its
// existence.
func (uc *AssignRoleUseCase) Handle(ctx context.Context, exec *pipeline.ExecContext, args pipeline.Args) (any, error) {
	in := args.Input()
	cmd := AssignRoleCommand{
		StaffID: stringField(in, "staffId"),
		Role:    principal.Role(stringField(in, "role")),
	}

	if !cmd.Role.Valid() || cmd.Role.GrantsAll() {
		return nil, envelope.NewSentinelf(envelope.CodeValidationFailed,
			"role %s cannot be assigned to staff", cmd.Role).
			WithExt("field", "role")
	}

	m, err := uc.findInStore(ctx, exec, args, cmd.StaffID)
	if err != nil {
		return nil, err
	}

	m.Role = cmd.Role
	if err := uc.repo.Update(ctx, m); err != nil {
		return nil, err
	}

	return envelope.Marked{
		Code: envelope.CodeStaffRoleAssigned,
		Fields: map[string]any{
			"staffId": m.ID,
			"role":    string(m.Role),
		},
	}, nil
}

func (uc *AssignRoleUseCase) findInStore(ctx context.Context, exec *pipeline.ExecContext, args pipeline.Args, staffID string) (*staff.StaffMember, error) {
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
