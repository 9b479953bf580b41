package domain

import "errors"

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrStyleNotFound   = errors.New("style not found")
)

// UploadErrorKind classifies rejected audio submissions.
type UploadErrorKind string

const (
	UploadNoFile      UploadErrorKind = "no_file"
	UploadInvalidType UploadErrorKind = "invalid_type"
	UploadTooLarge    UploadErrorKind = "too_large"
)

// UploadError is returned by audio submission when the candidate is rejected.
type UploadError struct {
	Kind UploadErrorKind
}

func (e *UploadError) Error() string {
	return "upload rejected: " + string(e.Kind)
}

// Is matches any UploadError of the same kind.
func (e *UploadError) Is(target error) bool {
	t, ok := target.(*UploadError)
	return ok && t.Kind == e.Kind
}

// GenerationErrorKind classifies rejected generation requests.
type GenerationErrorKind string

const (
	GenerationMissingInput      GenerationErrorKind = "missing_input"
	GenerationAlreadyInProgress GenerationErrorKind = "already_in_progress"
)

// GenerationError is returned when a generation request cannot start.
type GenerationError struct {
	Kind GenerationErrorKind
}

func (e *GenerationError) Error() string {
	return "generation rejected: " + string(e.Kind)
}

// Is matches any GenerationError of the same kind.
func (e *GenerationError) Is(target error) bool {
	t, ok := target.(*GenerationError)
	return ok && t.Kind == e.Kind
}

var (
	ErrNoFile            = &UploadError{Kind: UploadNoFile}
	ErrInvalidType       = &UploadError{Kind: UploadInvalidType}
	ErrTooLarge          = &UploadError{Kind: UploadTooLarge}
	ErrMissingInput      = &GenerationError{Kind: GenerationMissingInput}
	ErrAlreadyInProgress = &GenerationError{Kind: GenerationAlreadyInProgress}
)
