package carousel

import "errors"

// Contract violations; callers get these wrapped with the offending value
var (
	ErrNoItems            = errors.New("carousel: no items")
	ErrIndexOutOfRange    = errors.New("carousel: item index out of range")
	ErrInvalidDirection   = errors.New("carousel: direction must be +1 or -1")
	ErrProgressOutOfRange = errors.New("carousel: scroll progress outside [0, 1]")
	ErrInvalidOption      = errors.New("carousel: invalid option")
	ErrMissingDependency  = errors.New("carousel: missing collaborator")
	ErrSurfaceTooSmall    = errors.New("carousel: surface has fewer slots than items")
)
