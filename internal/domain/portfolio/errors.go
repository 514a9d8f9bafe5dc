package portfolio

import "errors"

var (
	ErrAuthRequired         = errors.New("sign in to manage your portfolio")
	ErrNotOwner             = errors.New("you can only manage your own portfolio")
	ErrPhotographerNotFound = errors.New("photographer not found")
	ErrPhotoNotFound        = errors.New("photo not found")
	ErrInvalidImage         = errors.New("file is not a supported image")
)
