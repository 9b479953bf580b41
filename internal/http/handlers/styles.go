package handlers

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"mvgen/internal/domain"
)

func (a *App) StylesList(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, map[string]any{"items": domain.Catalog()})
}

func (a *App) StyleGet(w http.ResponseWriter, r *http.Request) {
	name, err := url.PathUnescape(chi.URLParam(r, "name"))
	if err != nil {
		a.error(w, r, http.StatusBadRequest, codeBadRequest)
		return
	}
	style, ok := domain.StyleByName(name)
	if !ok {
		a.error(w, r, http.StatusNotFound, codeStyleNotFound)
		return
	}
	a.json(w, http.StatusOK, style)
}
