package goACL

import "errors"

var (
	// ErrEngineNotReady is an exported constant or variable used by the ACL engine.
	ErrEngineNotReady = errors.New("engine not ready")
	// ErrStoreAttached is an exported constant or variable used by the ACL engine.
	ErrStoreAttached = errors.New("store already attached")
	// ErrStoreUnavailable is an exported constant or variable used by the ACL engine.
	ErrStoreUnavailable = errors.New("store unavailable")
	// ErrUnknownRole is an exported constant or variable used by the ACL engine.
	ErrUnknownRole = errors.New("unknown role")
	// ErrUnknownAction is an exported constant or variable used by the ACL engine.
	ErrUnknownAction = errors.New("unknown action")
	// ErrRoleExists is an exported constant or variable used by the ACL engine.
	ErrRoleExists = errors.New("role already exists")
	// ErrActionExists is an exported constant or variable used by the ACL engine.
	ErrActionExists = errors.New("action already exists")
	// ErrInvalidName is an exported constant or variable used by the ACL engine.
	ErrInvalidName = errors.New("invalid name")
)
