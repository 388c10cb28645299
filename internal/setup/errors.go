package setup

import "fmt"

type UnsupportedStorageBackendError struct {
	Backend string
}

func (e UnsupportedStorageBackendError) Error() string {
	return fmt.Sprintf("storage backend %q is not supported", e.Backend)
}

func NewUnsupportedStorageBackendError(backend string) *UnsupportedStorageBackendError {
	return &UnsupportedStorageBackendError{
		Backend: backend,
	}
}
