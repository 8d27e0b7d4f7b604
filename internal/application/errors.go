package application

import "errors"

var (
	// ErrDefaultProject is returned when a delete targets the user's
	// default project, which is not deletable through the normal path.
	ErrDefaultProject = errors.New("default project cannot be deleted")

	ErrNameRequired    = errors.New("name is required")
	ErrInvalidStatus   = errors.New("invalid job status")
	ErrInvalidProgress = errors.New("progress must be between 0 and 100")
	ErrInvalidAmount   = errors.New("valid credit amount is required")
	ErrInvalidType     = errors.New("payment method type must be card or bank")
	ErrAutoScaleBounds = errors.New("auto-scaling min instances cannot exceed max instances")
)
