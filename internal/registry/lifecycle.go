package registry

import "errors"

// LifecycleStatus is where a registered tool is between registration and
// serving calls. A tool serves calls only while active.
type LifecycleStatus string

const (
	StatusUnknown    LifecycleStatus = "unknown"
	StatusRegistered LifecycleStatus = "registered"
	StatusLoaded     LifecycleStatus = "loaded"
	StatusActive     LifecycleStatus = "active"
	StatusError      LifecycleStatus = "error"
	StatusDisabled   LifecycleStatus = "disabled"
)

// StatusTransition represents a valid status transition
type StatusTransition struct {
	From LifecycleStatus
	To   LifecycleStatus
}

// ValidStatusTransitions defines the allowed status transitions
var ValidStatusTransitions = map[StatusTransition]bool{
	{StatusRegistered, StatusLoaded}:   true,
	{StatusRegistered, StatusError}:    true,
	{StatusRegistered, StatusDisabled}: true,

	{StatusLoaded, StatusActive}:   true,
	{StatusLoaded, StatusError}:    true,
	{StatusLoaded, StatusDisabled}: true,

	{StatusActive, StatusError}:    true,
	{StatusActive, StatusDisabled}: true,
	{StatusActive, StatusLoaded}:   true, // downgrade

	{StatusError, StatusRegistered}: true, // restart
	{StatusError, StatusDisabled}:   true,

	{StatusDisabled, StatusRegistered}: true, // enable
	{StatusDisabled, StatusError}:      true,
}

// IsValidTransition checks if a status transition is allowed
func IsValidTransition(from, to LifecycleStatus) bool {
	if from == to {
		return true
	}
	return ValidStatusTransitions[StatusTransition{From: from, To: to}]
}

// BaseFactory is the metadata a tool factory exposes before it is built.
type BaseFactory interface {
	Name() string
	Description() string
	Version() string
	Capabilities() []string
}

var (
	ErrEntityNotFound      = errors.New("tool not found")
	ErrEntityAlreadyExists = errors.New("tool already registered")
	ErrEntityValidation    = errors.New("tool validation failed")
	ErrRegistryNotRunning  = errors.New("tool registry not running")
	ErrEntityCreation      = errors.New("tool creation failed")
	ErrInvalidTransition   = errors.New("invalid status transition")
)
