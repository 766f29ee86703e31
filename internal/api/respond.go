package api

import (
	"encoding/json"
	"errors"
	"net/http"

	errx "github.com/food-punch-karachi/server/internal/core/error"
	"github.com/food-punch-karachi/server/internal/shop/cart"
	logx "github.com/food-punch-karachi/server/pkg/logger"
)

// maxBodyBytes bounds request bodies; chat histories are the largest payload.
const maxBodyBytes = 1 << 20

var (
	errItemNotFound = errx.New(nil, http.StatusNotFound, "menu item not found")
	errLineNotFound = errx.New(cart.ErrLineNotFound, http.StatusNotFound, "item is not in the cart")
	errEmptyCart    = errx.New(cart.ErrEmptyCart, http.StatusBadRequest, "cart is empty")
)

type errorResponse struct {
	Error string `json:"error"`
}

// relayErrorResponse carries the apology as text so clients rendering the
// reply field show it unchanged.
type relayErrorResponse struct {
	Text  string `json:"text"`
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logx.Warn().Err(err).Msg("failed to encode response")
	}
}

// writeError maps err to its status and exposes only the safe message.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, cart.ErrLineNotFound):
		err = errLineNotFound
	case errors.Is(err, cart.ErrEmptyCart):
		err = errEmptyCart
	}

	status := errx.Status(err)
	if status >= http.StatusInternalServerError {
		logx.Error().Err(err).Int("status", status).Msg("request failed")
	}
	writeJSON(w, status, errorResponse{Error: errx.Message(err)})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errx.New(err, http.StatusBadRequest, "invalid JSON body")
	}
	return nil
}
