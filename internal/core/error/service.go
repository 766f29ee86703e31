package errx

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrService marks failures of the remote completion service: transport errors,
// provider errors and replies that cannot be interpreted.
var ErrService = errors.New("completion service error")

// WrapService tags err as a completion service failure.
func WrapService(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrService) {
		return err
	}
	return New(fmt.Errorf("%w: %w", ErrService, err), http.StatusBadGateway, ServiceErrorMessage)
}

// IsService reports whether err is a completion service failure.
func IsService(err error) bool {
	return errors.Is(err, ErrService)
}
