package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound            = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists       = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput        = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrConcurrencyConflict = NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
	ErrUnauthorized        = NewDomainError("UNAUTHORIZED", "Not authorized to perform this action")
	ErrForbidden           = NewDomainError("FORBIDDEN", "Not permitted")
	ErrInvalidState        = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
)

// State errors raised by document lifecycles and the workflow engine
var (
	ErrNotApproved    = NewDomainError("NOT_APPROVED", "Quotation is not approved")
	ErrNotActive      = NewDomainError("NOT_ACTIVE", "Workflow is not active")
	ErrTerminal       = NewDomainError("TERMINAL", "Workflow has reached its terminal stage")
	ErrWorkflowExists = NewDomainError("WORKFLOW_EXISTS", "An active workflow already exists for this quotation")
	ErrNotYourTurn    = NewDomainError("NOT_YOUR_TURN", "It is not this approver's turn to decide")
	ErrAlreadyDecided = NewDomainError("ALREADY_DECIDED", "This approval slot has already been decided")
	ErrRequiredSlot   = NewDomainError("REQUIRED_SLOT", "A required approval slot cannot be skipped")
	ErrAlreadyGranted = NewDomainError("ALREADY_GRANTED", "An active grant already exists for this grantee")
)

// Conflict and lookup errors
var (
	ErrIDCollision = NewDomainError("ID_COLLISION", "Document number collision, retry with a fresh sequence")
	ErrNoRate      = NewDomainError("NO_RATE", "No reference rate recorded for this period")
)
