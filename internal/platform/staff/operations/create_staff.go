package operations

import (
	"context"

	"github.com/google/uuid"

	"go.storegate.dev/internal/platform/envelope"
	"go.storegate.dev/internal/platform/pipeline"
	"go.storegate.dev/internal/platform/principal"
	"go.storegate.dev/internal/platform/staff"
)

// CreateStaffCommand contains the data needed to create a staff member
type CreateStaffCommand struct {
	Name  string         `json:"name"`
	Email string         `json:"email"`
	Phone string         `json:"phone,omitempty"`
	Role  principal.Role `json:"role,omitempty"`
}

// CreateStaffUseCase handles creating a new staff member
type CreateStaffUseCase struct {
	repo staff.Repository
}

// NewCreateStaffUseCase creates a new CreateStaffUseCase
func NewCreateStaffUseCase(repo staff.Repository) *CreateStaffUseCase {
	return &CreateStaffUseCase{repo: repo}
}

// Action returns the descriptor for this operation.
func (uc *CreateStaffUseCase) Action() pipeline.Action {
	a := pipeline.NewAction(ActionCreateStaff)
	a.Mutating = true
	a.RequiredFields = []string{"name", "email"}
	a.CheckTenantScope = true
	return a
}

// Handle creates a staff member in the caller's store. The new member
// defaults to CASHIER when no role is supplied. Duplicate emails within the
// store are rejected up front; the unique index is the backstop under
// concurrent inserts.
func (uc *CreateStaffUseCase) Handle(ctx context.Context, exec *pipeline.ExecContext, args pipeline.Args) (any, error) {
	in := args.Input()
	cmd := CreateStaffCommand{
		Name:  stringField(in, "name"),
		Email: stringField(in, "email"),
		Phone: stringField(in, "phone"),
		Role:  principal.Role(stringField(in, "role")),
	}

	storeID := args.StoreID()
	if storeID == "" {
		storeID = exec.Principal.StoreID
	}

	if cmd.Role == "" {
		cmd.Role = principal.RoleCashier
	}
	if !cmd.Role.Valid() || cmd.Role.GrantsAll() {
		return nil, envelope.NewSentinelf(envelope.CodeValidationFailed,
			"role %s cannot be assigned to staff", cmd.Role).
			WithExt("field", "role")
	}

	exists, err := uc.repo.ExistsInStore(ctx, storeID, cmd.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, envelope.NewSentinelf(envelope.CodeDuplicateStaffEmail,
			"%s is already registered in this store", cmd.Email).
			WithExt("field", "email")
	}

	m := &staff.StaffMember{
		ID:      uuid.NewString(),
		StoreID: storeID,
		Name:    cmd.Name,
		Email:   cmd.Email,
		Phone:   cmd.Phone,
		Role:    cmd.Role,
		Active:  true,
	}
	if err := uc.repo.Insert(ctx, m); err != nil {
		return nil, err
	}

	return envelope.Marked{
		Code: envelope.CodeStaffCreated,
		Fields: map[string]any{
			"staffId": m.ID,
			"email":   m.Email,
		},
	}, nil
}
