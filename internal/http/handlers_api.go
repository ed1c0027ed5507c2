package http

import (
	"net/http"

	"fintrack/internal/log"
)

func (s *Server) handleAPIExpenses(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	items, err := s.ledger.Expenses(ctx)
	if err != nil {
		log.FromContext(ctx).ErrorContext(ctx, "Failed to list expenses", log.FieldError, err)
		writeJSONError(w, http.StatusInternalServerError, "could not list expenses")
		return
	}
	out := make([]expenseJSON, 0, len(items))
	for _, e := range items {
		out = append(out, newExpenseJSON(e))
	}
	writeJSON(w, http.StatusOK, out)
}

// handleAPIInsights serves cached insights; any mutation clears the cache.
func (s *Server) handleAPIInsights(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if cached, ok := s.insightsCache.Get(insightsCacheKey); ok {
		log.FromContext(ctx).DebugContext(ctx, "Insights cache hit")
		writeJSON(w, http.StatusOK, cached)
		return
	}

	gen := s.insightsGeneration()
	in, err := s.ledger.Insights(ctx)
	if err != nil {
		log.FromContext(ctx).ErrorContext(ctx, "Failed to compute insights", log.FieldError, err)
		writeJSONError(w, http.StatusInternalServerError, "could not compute insights")
		return
	}
	out := newInsightsJSON(in)
	if !s.storeInsights(gen, out) {
		log.FromContext(ctx).DebugContext(ctx, "Insights changed while computing, not cached")
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleAPISavings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	savings, err := s.ledger.Savings(ctx)
	if err != nil {
		log.FromContext(ctx).ErrorContext(ctx, "Failed to load savings", log.FieldError, err)
		writeJSONError(w, http.StatusInternalServerError, "could not load savings")
		return
	}
	writeJSON(w, http.StatusOK, newSavingsJSON(savings))
}

// handleAPICategorize previews the category a description would get.
func (s *Server) handleAPICategorize(w http.ResponseWriter, r *http.Request) {
	desc := sanitizeInput(r.URL.Query().Get("description"))
	if desc == "" {
		writeJSONError(w, http.StatusBadRequest, "missing description")
		return
	}
	m := s.ledger.Categorize(desc)
	writeJSON(w, http.StatusOK, map[string]string{
		"description": desc,
		"category":    m.Category.String(),
		"keyword":     m.Keyword,
	})
}
