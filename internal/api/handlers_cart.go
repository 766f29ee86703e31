package api

import (
	"net/http"
	"strings"

	errx "github.com/food-punch-karachi/server/internal/core/error"
	"github.com/food-punch-karachi/server/internal/shop/catalog"
)

type addItemRequest struct {
	ItemID string `json:"itemId"`
}

type updateItemRequest struct {
	Delta int `json:"delta"`
}

type openRequest struct {
	Open bool `json:"open"`
}

type checkoutResponse struct {
	URL string `json:"url"`
}

func (s *Server) handleCartGet(w http.ResponseWriter, r *http.Request) {
	s.respondCart(w, r)
}

// handleCartAdd adds one unit and opens the cart view, as the menu's add button does.
func (s *Server) handleCartAdd(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	item, ok := s.catalog.Find(strings.TrimSpace(req.ItemID))
	if !ok {
		writeError(w, errItemNotFound)
		return
	}
	if err := s.carts.Add(r.Context(), sessionFrom(r.Context()), item, true); err != nil {
		writeError(w, err)
		return
	}
	s.respondCart(w, r)
}

func (s *Server) handleCartUpdate(w http.ResponseWriter, r *http.Request) {
	var req updateItemRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.Delta == 0 {
		writeError(w, errx.BadRequest("delta must not be zero"))
		return
	}
	if err := s.carts.UpdateQuantity(r.Context(), sessionFrom(r.Context()), r.PathValue("id"), req.Delta); err != nil {
		writeError(w, err)
		return
	}
	s.respondCart(w, r)
}

func (s *Server) handleCartRemove(w http.ResponseWriter, r *http.Request) {
	if err := s.carts.Remove(r.Context(), sessionFrom(r.Context()), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	s.respondCart(w, r)
}

func (s *Server) handleCartOpen(w http.ResponseWriter, r *http.Request) {
	var req openRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := s.carts.SetOpen(r.Context(), sessionFrom(r.Context()), req.Open); err != nil {
		writeError(w, err)
		return
	}
	s.respondCart(w, r)
}

func (s *Server) handleCheckout(w http.ResponseWriter, r *http.Request) {
	c, err := s.carts.Get(r.Context(), sessionFrom(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	link, err := c.CheckoutLink(catalog.Business())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, checkoutResponse{URL: link})
}

func (s *Server) respondCart(w http.ResponseWriter, r *http.Request) {
	c, err := s.carts.Get(r.Context(), sessionFrom(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c.Summary())
}
