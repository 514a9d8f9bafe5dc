package follow

import "errors"

var (
	ErrAuthRequired         = errors.New("sign in required")
	ErrPhotographerNotFound = errors.New("photographer not found")
)
