package device

import "errors"

// Initialisation stages that can fail
var (
	ErrInstanceCreation = errors.New("failed to create Vulkan instance")
	ErrSurfaceCreation  = errors.New("failed to create window surface")
	ErrNoDevice         = errors.New("no Vulkan-compatible GPU found")
	ErrNoSuitableDevice = errors.New("no suitable physical device with graphics+present support found")
	ErrDeviceCreation   = errors.New("failed to create logical Vulkan device")
)

// InitError is returned by Initialize. Stage is one of the Err* values
// above, Cause is the driver error if there was one.
type InitError struct {
	Stage error
	Cause error
}

func (e *InitError) Error() string {
	if e.Cause == nil {
		return e.Stage.Error()
	}
	return e.Stage.Error() + ": " + e.Cause.Error()
}

// Is matches the stage, so errors.Is(err, ErrNoDevice) works.
func (e *InitError) Is(target error) bool {
	return target == e.Stage
}

// Unwrap returns the driver error.
func (e *InitError) Unwrap() error {
	return e.Cause
}

func stageError(stage, cause error) error {
	return &InitError{Stage: stage, Cause: cause}
}
