package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Authentication ────────────────────────────────────────────────
	ErrInvalidCredentials ErrCode = "INVALID_CREDENTIALS"
	ErrEmailTaken         ErrCode = "EMAIL_TAKEN"
	ErrTokenRequired      ErrCode = "TOKEN_REQUIRED"
	ErrTokenInvalid       ErrCode = "TOKEN_INVALID"

	// ─── Authorization ─────────────────────────────────────────────────
	ErrForbidden         ErrCode = "FORBIDDEN"
	ErrNotOwner          ErrCode = "NOT_OWNER"
	ErrStudentAccessOnly ErrCode = "STUDENT_ACCESS_ONLY"
	ErrHodAccessOnly     ErrCode = "HOD_ACCESS_ONLY"
	ErrAdminAccessOnly   ErrCode = "ADMIN_ACCESS_ONLY"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidID      ErrCode = "INVALID_ID"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound ErrCode = "NOT_FOUND"
	ErrConflict ErrCode = "CONFLICT"

	// ─── Classrooms ────────────────────────────────────────────────────
	ErrInvalidJoinCode ErrCode = "INVALID_JOIN_CODE"
	ErrBatchMismatch   ErrCode = "BATCH_MISMATCH"
	ErrAlreadyMember   ErrCode = "ALREADY_MEMBER"
	ErrNotEnrolled     ErrCode = "NOT_ENROLLED"

	// ─── Test engine ───────────────────────────────────────────────────
	ErrInsufficientBank    ErrCode = "INSUFFICIENT_BANK"
	ErrTestNotOpenYet      ErrCode = "TEST_NOT_OPEN_YET"
	ErrTestWindowClosed    ErrCode = "TEST_WINDOW_CLOSED"
	ErrDuplicateSubmission ErrCode = "DUPLICATE_SUBMISSION"
	ErrBankIntegrity       ErrCode = "BANK_INTEGRITY_ERROR"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	// ─── Authentication ────────────────────────────────────────────────
	case ErrInvalidCredentials:
		return "Email or password is incorrect."
	case ErrEmailTaken:
		return "An account with this email already exists."
	case ErrTokenRequired:
		return "An authentication token is required."
	case ErrTokenInvalid:
		return "The authentication token is invalid or expired."

	// ─── Authorization ─────────────────────────────────────────────────
	case ErrForbidden:
		return "You do not have permission to access this resource."
	case ErrNotOwner:
		return "You do not own this resource."
	case ErrStudentAccessOnly:
		return "This resource is restricted to students."
	case ErrHodAccessOnly:
		return "This resource is restricted to department heads."
	case ErrAdminAccessOnly:
		return "This resource is restricted to administrators."

	// ─── Validation ────────────────────────────────────────────────────
	case ErrValidation:
		return "Validation failed. Please check your input."
	case ErrInvalidID:
		return "The ID format is invalid."
	case ErrInvalidPayload:
		return "The request payload is invalid."

	// ─── Resources ─────────────────────────────────────────────────────
	case ErrNotFound:
		return "The requested resource was not found."
	case ErrConflict:
		return "The resource already exists."

	// ─── Classrooms ────────────────────────────────────────────────────
	case ErrInvalidJoinCode:
		return "Classroom not found. Please check the join code."
	case ErrBatchMismatch:
		return "This join code is not valid for your batch."
	case ErrAlreadyMember:
		return "You are already a member of this classroom."
	case ErrNotEnrolled:
		return "You are not a member of this classroom."

	// ─── Test engine ───────────────────────────────────────────────────
	case ErrInsufficientBank:
		return "Not enough questions in the bank to generate a full test. Please contact an administrator."
	case ErrTestNotOpenYet:
		return "This test has not opened yet. Please try again when the window starts."
	case ErrTestWindowClosed:
		return "The window for this test has closed."
	case ErrDuplicateSubmission:
		return "This test session has already been submitted."
	case ErrBankIntegrity:
		return "The question bank no longer matches this session. Please contact an administrator."

	// ─── Rate Limiting ─────────────────────────────────────────────────
	case ErrRateLimitExceeded:
		return "Too many requests. Please try again later."

	// ─── Server ────────────────────────────────────────────────────────
	case ErrInternal:
		return "An internal server error occurred."
	default:
		return "An unexpected error occurred."
	}
}
