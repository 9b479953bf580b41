package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"mvgen/internal/domain"
	"mvgen/internal/generator"
)

// uploadFormField is the multipart field carrying the audio file.
const uploadFormField = "file"

// maxUploadBody bounds the request body: the audio limit plus room for the
// multipart envelope.
const maxUploadBody = domain.MaxAudioBytes + 1<<20

type sessionResponse struct {
	domain.SessionState
	CanGenerate bool `json:"can_generate"`
}

type selectStyleRequest struct {
	Name string `json:"name"`
}

type hoverRequest struct {
	Index *int `json:"index"`
}

func newSessionResponse(s domain.SessionState) sessionResponse {
	return sessionResponse{
		SessionState: s,
		CanGenerate:  s.UploadedAudio != nil && s.SelectedStyle != nil && s.Status != domain.StatusGenerating,
	}
}

func (a *App) SessionsCreate(w http.ResponseWriter, r *http.Request) {
	c := a.Sessions.Create()
	a.json(w, http.StatusCreated, newSessionResponse(c.Snapshot()))
}

func (a *App) SessionGet(w http.ResponseWriter, r *http.Request) {
	c, ok := a.session(w, r)
	if !ok {
		return
	}
	a.json(w, http.StatusOK, newSessionResponse(c.Snapshot()))
}

func (a *App) SessionDelete(w http.ResponseWriter, r *http.Request) {
	if err := a.Sessions.Delete(chi.URLParam(r, "id")); err != nil {
		a.error(w, r, http.StatusNotFound, codeSessionNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *App) SessionAudio(w http.ResponseWriter, r *http.Request) {
	c, ok := a.session(w, r)
	if !ok {
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBody)

	// An unreadable body yields a nil candidate, which is reported as no file.
	candidate, err := readAudioPart(r)
	if err != nil {
		zerolog.Ctx(r.Context()).Debug().Err(err).Msg("unreadable upload")
	}

	if _, err := c.SubmitAudio(candidate); err != nil {
		a.uploadError(w, r, err)
		return
	}
	a.json(w, http.StatusOK, newSessionResponse(c.Snapshot()))
}

func (a *App) SessionStyle(w http.ResponseWriter, r *http.Request) {
	c, ok := a.session(w, r)
	if !ok {
		return
	}
	var req selectStyleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, r, http.StatusBadRequest, codeBadRequest)
		return
	}
	style, found := domain.StyleByName(req.Name)
	if !found {
		a.error(w, r, http.StatusNotFound, codeStyleNotFound)
		return
	}
	c.SelectStyle(style)
	a.json(w, http.StatusOK, newSessionResponse(c.Snapshot()))
}

func (a *App) SessionHover(w http.ResponseWriter, r *http.Request) {
	c, ok := a.session(w, r)
	if !ok {
		return
	}
	var req hoverRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Index == nil {
		a.error(w, r, http.StatusBadRequest, codeBadRequest)
		return
	}
	c.SetHovered(*req.Index)
	a.json(w, http.StatusOK, newSessionResponse(c.Snapshot()))
}

func (a *App) SessionUnhover(w http.ResponseWriter, r *http.Request) {
	c, ok := a.session(w, r)
	if !ok {
		return
	}
	c.ClearHovered()
	a.json(w, http.StatusOK, newSessionResponse(c.Snapshot()))
}

func (a *App) SessionGenerate(w http.ResponseWriter, r *http.Request) {
	c, ok := a.session(w, r)
	if !ok {
		return
	}
	if err := c.RequestGeneration(); err != nil {
		var genErr *domain.GenerationError
		if !errors.As(err, &genErr) {
			a.Logger.Error().Err(err).Str("session_id", c.ID()).Msg("generation request failed")
			a.error(w, r, http.StatusInternalServerError, codeInternal)
			return
		}
		switch genErr.Kind {
		case domain.GenerationAlreadyInProgress:
			a.error(w, r, http.StatusConflict, codeAlreadyInProgress)
		default:
			a.error(w, r, http.StatusUnprocessableEntity, codeMissingInput)
		}
		return
	}
	a.json(w, http.StatusAccepted, newSessionResponse(c.Snapshot()))
}

func (a *App) session(w http.ResponseWriter, r *http.Request) (*generator.Controller, bool) {
	c, err := a.Sessions.Get(chi.URLParam(r, "id"))
	if err != nil {
		a.error(w, r, http.StatusNotFound, codeSessionNotFound)
		return nil, false
	}
	return c, true
}

func (a *App) uploadError(w http.ResponseWriter, r *http.Request, err error) {
	var upErr *domain.UploadError
	if !errors.As(err, &upErr) {
		a.Logger.Error().Err(err).Msg("audio submission failed")
		a.error(w, r, http.StatusInternalServerError, codeInternal)
		return
	}
	switch upErr.Kind {
	case domain.UploadInvalidType:
		a.error(w, r, http.StatusUnsupportedMediaType, codeInvalidType)
	case domain.UploadTooLarge:
		a.error(w, r, http.StatusRequestEntityTooLarge, codeTooLarge)
	default:
		a.error(w, r, http.StatusBadRequest, codeNoFile)
	}
}

// readAudioPart streams the multipart body to the audio field and measures it
// without keeping the bytes. It returns a nil descriptor when no file field
// is present. A body cut off by the size bound is reported as one byte over
// the limit so the size rule rejects it.
func readAudioPart(r *http.Request) (*domain.RawFile, error) {
	mr, err := r.MultipartReader()
	if err != nil {
		return nil, err
	}
	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		if part.FormName() != uploadFormField || part.FileName() == "" {
			_ = part.Close()
			continue
		}
		return measurePart(part)
	}
}

func measurePart(part *multipart.Part) (*domain.RawFile, error) {
	defer part.Close()
	raw := &domain.RawFile{
		Name: part.FileName(),
		Type: part.Header.Get("Content-Type"),
	}
	if raw.Type != domain.AudioMPEG {
		return raw, nil
	}
	n, err := io.Copy(io.Discard, part)
	var tooBig *http.MaxBytesError
	if errors.As(err, &tooBig) {
		raw.Size = domain.MaxAudioBytes + 1
		return raw, nil
	}
	if err != nil {
		return nil, err
	}
	raw.Size = n
	return raw, nil
}
