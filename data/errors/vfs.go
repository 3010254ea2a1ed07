package errors

func Initialization(err error, name string) error {
	return newError(ErrInitialization, err, name)
}

func IndexUnavailable(err error, name string) error {
	return newError(ErrIndexUnavailable, err, name)
}

func IndexCorrupt(err error, name string) error {
	return newError(ErrIndexCorrupt, err, name)
}

func FileNotFound(err error, path string) error {
	return newError(ErrFileNotFound, err, path)
}

func FileAlreadyExists(err error, path string) error {
	return newError(ErrFileAlreadyExists, err, path)
}

func CannotOpenFile(err error, name string) error {
	return newError(ErrCannotOpenFile, err, name)
}

func InvalidPath(err error, path string) error {
	return newError(ErrInvalidPath, err, path)
}
