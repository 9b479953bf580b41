package domain

import "time"

const (
	// AudioMPEG is the only declared media type accepted for uploads.
	AudioMPEG = "audio/mpeg"
	// MaxAudioBytes is the inclusive upper bound on upload size (20 MiB).
	MaxAudioBytes int64 = 20 * 1024 * 1024
	// GenerationDelay is how long a simulated generation takes.
	GenerationDelay = 3000 * time.Millisecond
	// PlaceholderResult is the result reference exposed once generation completes.
	PlaceholderResult = "/mock/generated-video.mp4"
)

// GenerationStatus enumerates the generation lifecycle of a session.
type GenerationStatus string

const (
	StatusIdle       GenerationStatus = "idle"
	StatusGenerating GenerationStatus = "generating"
	StatusReady      GenerationStatus = "ready"
)

// RawFile describes a file chosen in the host environment. It is untrusted.
type RawFile struct {
	Name string
	Type string
	Size int64
}

// UploadedAudio is an accepted audio submission.
type UploadedAudio struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Size int64  `json:"size"`
}

// SessionState is the observable state of one generator session.
type SessionState struct {
	ID              string           `json:"id"`
	SelectedStyle   *StyleOption     `json:"selected_style"`
	HoveredIndex    *int             `json:"hovered_index"`
	UploadedAudio   *UploadedAudio   `json:"uploaded_audio"`
	Status          GenerationStatus `json:"status"`
	ResultReference *string          `json:"result_reference"`
}

// Clone returns a deep copy that shares no pointers with s.
func (s SessionState) Clone() SessionState {
	out := s
	if s.SelectedStyle != nil {
		v := *s.SelectedStyle
		out.SelectedStyle = &v
	}
	if s.HoveredIndex != nil {
		v := *s.HoveredIndex
		out.HoveredIndex = &v
	}
	if s.UploadedAudio != nil {
		v := *s.UploadedAudio
		out.UploadedAudio = &v
	}
	if s.ResultReference != nil {
		v := *s.ResultReference
		out.ResultReference = &v
	}
	return out
}
