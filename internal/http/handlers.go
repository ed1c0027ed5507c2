package http

import (
	"bytes"
	"net/http"

	"fintrack/internal/core"
	"fintrack/internal/log"
)

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.renderDashboard(w, r, "index.html")
}

// handleDashboardPartial re-renders the dashboard body after htmx triggers.
func (s *Server) handleDashboardPartial(w http.ResponseWriter, r *http.Request) {
	s.renderDashboard(w, r, "dashboard")
}

func (s *Server) renderDashboard(w http.ResponseWriter, r *http.Request, name string) {
	ctx := r.Context()
	d, err := s.ledger.Dashboard(ctx)
	if err != nil {
		log.FromContext(ctx).ErrorContext(ctx, "Failed to load dashboard", log.FieldError, err)
		InternalServerError("Could not load your data").Write(w)
		return
	}

	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, newDashboardView(d)); err != nil {
		log.FromContext(ctx).ErrorContext(ctx, "Template execution failed", log.FieldError, err, "template", name)
		InternalServerError("Could not render the page").Write(w)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	p := NewRequestBodyParser(r)
	if err := p.Parse(); err != nil {
		s.fail(w, r, p, http.StatusBadRequest, "Invalid request format")
		return
	}

	e, err := s.ledger.RecordExpense(ctx, p.Get("description"), p.Get("amount"))
	if err != nil {
		if msg, ok := validationMessage(err, "Please enter a valid description and amount"); ok {
			s.fail(w, r, p, http.StatusUnprocessableEntity, msg)
			return
		}
		log.FromContext(ctx).ErrorContext(ctx, "Failed to record expense", log.FieldError, err)
		s.fail(w, r, p, http.StatusInternalServerError, "Error saving expense")
		return
	}
	s.invalidate()

	if wantsJSON(r, p) {
		writeJSON(w, http.StatusCreated, newExpenseJSON(e))
		return
	}
	SuccessResponse(e.Confirmation()).
		TriggerExpenseCreated(e.ID, e.Category.String()).
		TriggerFormReset().
		TriggerSuccessNotification(e.Confirmation()).
		Write(w)
}

func (s *Server) handleSetGoal(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	p := NewRequestBodyParser(r)
	if err := p.Parse(); err != nil {
		s.fail(w, r, p, http.StatusBadRequest, "Invalid request format")
		return
	}

	savings, err := s.ledger.SetGoal(ctx, p.Get("amount"))
	if err != nil {
		if msg, ok := validationMessage(err, "Please enter a valid savings goal amount"); ok {
			s.fail(w, r, p, http.StatusUnprocessableEntity, msg)
			return
		}
		log.FromContext(ctx).ErrorContext(ctx, "Failed to set savings goal", log.FieldError, err)
		s.fail(w, r, p, http.StatusInternalServerError, "Error saving goal")
		return
	}
	s.invalidate()

	s.savingsReply(w, r, p, savings, "Your new savings goal is "+savings.Goal.Display())
}

func (s *Server) handleDeposit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	p := NewRequestBodyParser(r)
	if err := p.Parse(); err != nil {
		s.fail(w, r, p, http.StatusBadRequest, "Invalid request format")
		return
	}

	raw := p.Get("amount")
	savings, err := s.ledger.AddSavings(ctx, raw)
	if err != nil {
		if msg, ok := validationMessage(err, "Please enter a valid savings amount"); ok {
			s.fail(w, r, p, http.StatusUnprocessableEntity, msg)
			return
		}
		log.FromContext(ctx).ErrorContext(ctx, "Failed to add savings", log.FieldError, err)
		s.fail(w, r, p, http.StatusInternalServerError, "Error saving deposit")
		return
	}
	s.invalidate()

	// raw already passed validation inside AddSavings
	deposit, _ := core.ParseNonNegativeAmount(raw)
	s.savingsReply(w, r, p, savings, "Added "+deposit.Display()+" to your savings")
}

func (s *Server) savingsReply(w http.ResponseWriter, r *http.Request, p *RequestBodyParser, savings core.Savings, message string) {
	if wantsJSON(r, p) {
		writeJSON(w, http.StatusOK, newSavingsJSON(savings))
		return
	}
	SuccessResponse(message).
		TriggerSavingsUpdated(savings.DisplayProgress().StringFixed(0)).
		TriggerFormReset().
		TriggerSuccessNotification(message).
		Write(w)
}

// fail replies with a JSON error or an HTML fragment depending on the caller.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, p *RequestBodyParser, status int, message string) {
	if wantsJSON(r, p) {
		writeJSONError(w, status, message)
		return
	}
	ErrorResponse(status, message).TriggerErrorNotification(message).Write(w)
}
