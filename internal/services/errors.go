package services

// Service errors
var (
	ErrEmptyPicks      = &ServiceError{Message: "pick at least one club"}
	ErrAutofixDisabled = &ServiceError{Message: "autofix is not enabled"}
)

// ServiceError represents a service-level error
type ServiceError struct {
	Message string
}

func (e *ServiceError) Error() string {
	return e.Message
}
