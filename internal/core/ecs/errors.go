package ecs

import "github.com/rotisserie/eris"

var (
	ErrInvalidLayout = eris.New("index bits out of range")

	// ErrCapacityExceeded means more component types were declared than the
	// layout can tag. Raise the index bits.
	ErrCapacityExceeded = eris.New("too many component types for layout")

	ErrDuplicateName      = eris.New("component name already declared")
	ErrUnknownComponent   = eris.New("component not declared")
	ErrInvalidKind        = eris.New("component kind has no constructor")
	ErrForeignRegistry    = eris.New("component kind belongs to another registry")
	ErrDuplicateComponent = eris.New("component listed more than once")
	ErrNotInstalled       = eris.New("component not on entity")
	ErrTypeMismatch       = eris.New("component stored under a different type")
	ErrEntityDoesNotExist = eris.New("entity does not exist")
	ErrAlreadyInstalled   = eris.New("entity already has components installed")
)
