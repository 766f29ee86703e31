package api

import (
	"net/http"

	"github.com/food-punch-karachi/server/internal/agent/model"
	errx "github.com/food-punch-karachi/server/internal/core/error"
	"github.com/food-punch-karachi/server/internal/shop/cart"
	logx "github.com/food-punch-karachi/server/pkg/logger"
)

// RelayApology is returned by the completions relay whenever the upstream call fails.
const RelayApology = "I'm having a little trouble connecting to the server right now. Please try again in a moment!"

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Reply    string                 `json:"reply,omitempty"`
	Messages []model.DisplayMessage `json:"messages"`
	Busy     bool                   `json:"busy"`
	Cart     *cart.Summary          `json:"cart,omitempty"`
}

type completionsRequest struct {
	History []model.Turn `json:"history"`
}

func (s *Server) handleChatGet(w http.ResponseWriter, r *http.Request) {
	sid := sessionFrom(r.Context())
	messages, err := s.chat.Transcript(r.Context(), sid)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, chatResponse{Messages: messages, Busy: s.chat.Busy(sid)})
}

func (s *Server) handleChatPost(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err)
		return
	}

	ctx := r.Context()
	sid := sessionFrom(ctx)
	reply, err := s.chat.Submit(ctx, sid, req.Message, cart.SessionCart{Store: s.carts, SessionID: sid})
	if err != nil {
		writeError(w, err)
		return
	}

	messages, err := s.chat.Transcript(ctx, sid)
	if err != nil {
		writeError(w, err)
		return
	}
	c, err := s.carts.Get(ctx, sid)
	if err != nil {
		writeError(w, err)
		return
	}
	summary := c.Summary()
	writeJSON(w, http.StatusOK, chatResponse{Reply: reply, Messages: messages, Cart: &summary})
}

func (s *Server) handleChatDelete(w http.ResponseWriter, r *http.Request) {
	sid := sessionFrom(r.Context())
	if err := s.chat.Reset(r.Context(), sid); err != nil {
		writeError(w, err)
		return
	}
	messages, err := s.chat.Transcript(r.Context(), sid)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, chatResponse{Messages: messages})
}

// handleCompletions relays a client-held history to the model and returns the
// raw completion without running any tool.
func (s *Server) handleCompletions(w http.ResponseWriter, r *http.Request) {
	var req completionsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	if len(req.History) == 0 {
		writeError(w, errx.BadRequest("history is empty"))
		return
	}
	if err := model.ValidateHistory(req.History); err != nil {
		writeError(w, errx.New(err, http.StatusBadRequest, "invalid history"))
		return
	}

	completion, err := s.relay.CompleteOnce(r.Context(), req.History)
	if err != nil {
		logx.Error().Err(err).Msg("completion relay failed")
		writeJSON(w, http.StatusInternalServerError, relayErrorResponse{Text: RelayApology, Error: RelayApology})
		return
	}
	writeJSON(w, http.StatusOK, completion)
}
