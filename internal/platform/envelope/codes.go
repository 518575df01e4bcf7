package envelope

// Taxonomy codes. The letter prefix identifies the subsystem: A = auth,
// V = validation, S = system, M = success markers. The code is the stable
// machine-readable classification; localized text lives in the message catalog.
const (
	// Auth
	CodeUnauthenticated        = "A0001"
	CodeTokenExpired           = "A0002"
	CodeUnauthorized           = "A0003"
	CodeInsufficientPermission = "A0004"
	CodeTenantAccessDenied     = "A0005"

	// Validation
	CodeMissingRequiredField = "V1001"
	CodeValidationFailed     = "V1002"
	CodeDuplicateRecord      = "V1003"
	CodeDuplicateStaffEmail  = "V1004"
	CodeStaffNotFound        = "V1005"

	// System
	CodeSystemError = "S9001"

	// Success markers
	CodeStaffCreated      = "M2001"
	CodeStaffRoleAssigned = "M2002"
	CodeStaffDeactivated  = "M2003"
	CodeProfileUpdated    = "M2004"
)
