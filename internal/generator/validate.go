package generator

import "mvgen/internal/domain"

// ValidateAudio applies the upload rules in order: presence, declared type,
// then size. Exactly domain.MaxAudioBytes is accepted.
func ValidateAudio(candidate *domain.RawFile) error {
	if candidate == nil {
		return domain.ErrNoFile
	}
	if candidate.Type != domain.AudioMPEG {
		return domain.ErrInvalidType
	}
	if candidate.Size > domain.MaxAudioBytes {
		return domain.ErrTooLarge
	}
	return nil
}
