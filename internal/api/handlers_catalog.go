package api

import (
	"net/http"

	errx "github.com/food-punch-karachi/server/internal/core/error"
	"github.com/food-punch-karachi/server/internal/shop/catalog"
)

type siteResponse struct {
	Business   catalog.BusinessInfo `json:"business"`
	Signatures []catalog.Item       `json:"signatures"`
	Reviews    []catalog.Review     `json:"reviews"`
}

type menuResponse struct {
	Category catalog.Category `json:"category"`
	Query    string           `json:"query,omitempty"`
	Items    []catalog.Item   `json:"items"`
}

func (s *Server) handleSite(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, siteResponse{
		Business:   catalog.Business(),
		Signatures: s.catalog.Signatures(),
		Reviews:    catalog.Reviews(),
	})
}

func (s *Server) handleMenu(w http.ResponseWriter, r *http.Request) {
	category, ok := catalog.ParseCategory(r.URL.Query().Get("category"))
	if !ok {
		writeError(w, errx.BadRequest("unknown category"))
		return
	}
	query := r.URL.Query().Get("q")

	items := s.catalog.Filter(category, query)
	if items == nil {
		items = []catalog.Item{}
	}
	writeJSON(w, http.StatusOK, menuResponse{Category: category, Query: query, Items: items})
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]catalog.Category{"categories": catalog.Categories()})
}

func (s *Server) handleCatering(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]catalog.CateringService{"services": catalog.CateringServices()})
}
