// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Common
	KeySuccess = "success"
	KeyError   = "error"

	// Authentication
	KeyAuthRequired           = "auth.required"
	KeyAuthInvalidToken       = "auth.invalid_token"
	KeyAuthTokenExpired       = "auth.token_expired"
	KeyAuthInvalidCredentials = "auth.invalid_credentials"
	KeyAuthUserExists         = "auth.user_exists"
	KeyAuthLoginSuccess       = "auth.login_success"
	KeyAuthRegisterSuccess    = "auth.register_success"

	// Applications
	KeyApplicationSubmitted    = "application.submitted"
	KeyApplicationResubmitted  = "application.resubmitted"
	KeyApplicationNotFound     = "application.not_found"
	KeyApplicationSubmitFailed = "application.submit_failed"

	// Lender submissions
	KeySubmissionUpdated  = "submission.updated"
	KeySubmissionNotFound = "submission.not_found"

	// Lenders
	KeyLenderCreated  = "lender.created"
	KeyLenderUpdated  = "lender.updated"
	KeyLenderDeleted  = "lender.deleted"
	KeyLenderNotFound = "lender.not_found"

	// Clients
	KeyClientCreated  = "client.created"
	KeyClientUpdated  = "client.updated"
	KeyClientDeleted  = "client.deleted"
	KeyClientNotFound = "client.not_found"

	// Documents
	KeyDocumentUploaded    = "document.uploaded"
	KeyDocumentNotFound    = "document.not_found"
	KeyDocumentStorageDown = "document.storage_unavailable"

	// Validation
	KeyValidationInvalid = "validation.invalid"

	// Admin
	KeyAdminAccessDenied = "admin.access_denied"
)
