package api

import "net/http"

// registerRoutes sets up all HTTP routes on the server mux.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", s.handleHealth)

	mux.HandleFunc("GET /api/site", s.handleSite)
	mux.HandleFunc("GET /api/menu", s.handleMenu)
	mux.HandleFunc("GET /api/menu/categories", s.handleCategories)
	mux.HandleFunc("GET /api/catering", s.handleCatering)

	mux.HandleFunc("GET /api/cart", s.handleCartGet)
	mux.HandleFunc("POST /api/cart/items", s.handleCartAdd)
	mux.HandleFunc("PATCH /api/cart/items/{id}", s.handleCartUpdate)
	mux.HandleFunc("DELETE /api/cart/items/{id}", s.handleCartRemove)
	mux.HandleFunc("PUT /api/cart/open", s.handleCartOpen)
	mux.HandleFunc("GET /api/cart/checkout", s.handleCheckout)

	mux.HandleFunc("GET /api/chat", s.handleChatGet)
	mux.HandleFunc("POST /api/chat", rateLimit(s.limiter, s.handleChatPost))
	mux.HandleFunc("DELETE /api/chat", s.handleChatDelete)
	mux.HandleFunc("POST /api/chat/completions", rateLimit(s.limiter, s.handleCompletions))

	mux.HandleFunc("/", handleNotFound)
}

func handleNotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
