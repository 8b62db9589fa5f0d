package api

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	apperrors "github.com/socialchef/sous/internal/errors"
	"github.com/socialchef/sous/internal/formatter"
	"github.com/socialchef/sous/internal/ingredients"
	"github.com/socialchef/sous/internal/middleware"
)

// maxBodyBytes bounds form and JSON request bodies.
const maxBodyBytes = 16 << 10

// Asker answers a single food query.
type Asker interface {
	Ask(ctx context.Context, food string) (*ingredients.Result, error)
}

type Server struct {
	svc Asker
}

func NewServer(svc Asker) *Server {
	return &Server{svc: svc}
}

type IngredientsRequest struct {
	Food string `json:"food"`
}

type TableResponse struct {
	Columns []string        `json:"columns"`
	Rows    []formatter.Row `json:"rows"`
}

type IngredientsResponse struct {
	QueryID     string        `json:"query_id"`
	Food        string        `json:"food"`
	Recipe      string        `json:"recipe"`
	Ingredients TableResponse `json:"ingredients"`
}

// NewTableResponse converts a table for JSON output. Empty tables encode as
// empty arrays, not null.
func NewTableResponse(t formatter.Table) TableResponse {
	resp := TableResponse{Columns: t.Columns, Rows: t.Rows}
	if resp.Columns == nil {
		resp.Columns = []string{}
	}
	if resp.Rows == nil {
		resp.Rows = []formatter.Row{}
	}
	return resp
}

func requestIDFrom(r *http.Request) (string, bool) {
	return middleware.GetRequestID(r.Context())
}

// HandleIndex renders the empty form.
func (s *Server) HandleIndex(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, pageData{})
}

// HandleSubmit answers the form. Model failures render an error message on the
// page; an ingredient list that could not be parsed renders as an empty grid.
func (s *Server) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		s.renderError(w, r, "", apperrors.NewValidationError("invalid form submission", "INVALID_FORM", ""))
		return
	}

	food := r.PostFormValue("food")
	res, err := s.svc.Ask(r.Context(), food)
	if err != nil {
		s.renderError(w, r, food, err)
		return
	}

	s.render(w, r, http.StatusOK, pageData{
		Food:        res.Food,
		Recipe:      res.Recipe,
		Ingredients: res.Ingredients,
	})
}

// HandleIngredients is the JSON form of HandleSubmit.
func (s *Server) HandleIngredients(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var req IngredientsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, apperrors.NewValidationError("invalid request body", "INVALID_BODY",
			`Send a JSON object such as {"food": "Lasagna"}.`))
		return
	}

	res, err := s.svc.Ask(r.Context(), req.Food)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, IngredientsResponse{
		QueryID:     res.QueryID,
		Food:        res.Food,
		Recipe:      res.Recipe,
		Ingredients: NewTableResponse(res.Ingredients),
	})
}

func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func (s *Server) renderError(w http.ResponseWriter, r *http.Request, food string, err error) {
	appErr := toAppError(err)
	s.reportError(r, appErr)

	shown := appErr
	if appErr.Type == apperrors.ErrorTypeInternal {
		shown = &apperrors.AppError{Message: "Something went wrong. Please try again."}
	}
	s.render(w, r, appErr.StatusCode, pageData{Food: food, Error: shown})
}

// render buffers the page so a template failure can still produce a clean 500.
func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, data pageData) {
	var buf bytes.Buffer
	if err := renderPage(&buf, data); err != nil {
		slog.ErrorContext(r.Context(), "Failed to render page", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}
