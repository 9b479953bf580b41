package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"mvgen/internal/generator"
	"mvgen/internal/middleware"
)

// SessionStore is the session registry the handlers drive.
type SessionStore interface {
	Create() *generator.Controller
	Get(id string) (*generator.Controller, error)
	Delete(id string) error
}

type App struct {
	Sessions SessionStore
	Logger   zerolog.Logger
}

func NewApp(sessions SessionStore, logger zerolog.Logger) *App {
	return &App{Sessions: sessions, Logger: logger}
}

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// error writes an error body whose message is localized for the request.
func (a *App) error(w http.ResponseWriter, r *http.Request, status int, code string) {
	locale := middleware.LocaleFromContext(r.Context())
	a.json(w, status, errorBody{Error: errorDetail{Code: code, Message: localize(locale, code)}})
}
