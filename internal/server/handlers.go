// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/pdiddy/people-engine/internal/cache"
	"github.com/pdiddy/people-engine/internal/people"
	"github.com/pdiddy/people-engine/pkg/types"
)

// searchResponse is the wire envelope for a successful search.
type searchResponse struct {
	Success bool            `json:"success"`
	Count   int             `json:"count"`
	Results []types.Profile `json:"results"`
}

// errorResponse is the wire envelope for a failed request.
type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type healthResponse struct {
	Status             string `json:"status"`
	Version            string `json:"version"`
	PrimaryConfigured  bool   `json:"primary_configured"`
	FallbackConfigured bool   `json:"fallback_configured"`
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var q people.Query
	if err := json.NewDecoder(r.Body).Decode(&q); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	key := cache.Key(strings.TrimSpace(q.Name), q.Company, q.Limit, q.UseFallback)
	if s.cache != nil {
		if res, err := s.cache.Get(r.Context(), key); err == nil {
			writeJSON(w, http.StatusOK, searchResponse{
				Success: true,
				Count:   res.Count,
				Results: profiles(res),
			})
			return
		}
	}

	var warnings bytes.Buffer
	res, err := s.searcher.Search(r.Context(), q, &warnings)
	if warnings.Len() > 0 {
		log.Printf("search %q: %s", q.Name, strings.TrimSpace(warnings.String()))
	}
	if err != nil {
		switch {
		case errors.Is(err, people.ErrInvalidQuery):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, people.ErrProviderUnavailable):
			writeError(w, http.StatusBadGateway, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	if s.cache != nil {
		if err := s.cache.Put(r.Context(), key, res); err != nil {
			log.Printf("caching search %q: %v", q.Name, err)
		}
	}

	writeJSON(w, http.StatusOK, searchResponse{
		Success: true,
		Count:   res.Count,
		Results: profiles(res),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:             "ok",
		Version:            s.version,
		PrimaryConfigured:  s.cfg.ProviderAPIKey != "",
		FallbackConfigured: s.cfg.DiscoveryAPIKey != "",
	})
}

// profiles returns a non-nil slice so empty results encode as [] rather
// than null.
func profiles(res types.SearchResult) []types.Profile {
	if res.Profiles == nil {
		return []types.Profile{}
	}
	return res.Profiles
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Success: false, Error: msg})
}
