package handlers

import "golang.org/x/text/language"

// Error codes returned in API error bodies.
const (
	codeBadRequest        = "bad_request"
	codeSessionNotFound   = "session_not_found"
	codeStyleNotFound     = "style_not_found"
	codeNoFile            = "no_file"
	codeInvalidType       = "invalid_type"
	codeTooLarge          = "too_large"
	codeMissingInput      = "missing_input"
	codeAlreadyInProgress = "already_in_progress"
	codeInternal          = "internal"
)

var messages = map[string]map[language.Tag]string{
	codeBadRequest: {
		language.English:    "Invalid request payload.",
		language.Indonesian: "Payload permintaan tidak valid.",
	},
	codeSessionNotFound: {
		language.English:    "Session not found.",
		language.Indonesian: "Sesi tidak ditemukan.",
	},
	codeStyleNotFound: {
		language.English:    "Unknown video style.",
		language.Indonesian: "Gaya video tidak dikenal.",
	},
	codeNoFile: {
		language.English:    "Please choose an MP3 file to upload.",
		language.Indonesian: "Silakan pilih file MP3 untuk diunggah.",
	},
	codeInvalidType: {
		language.English:    "Please upload a valid MP3 file.",
		language.Indonesian: "Silakan unggah file MP3 yang valid.",
	},
	codeTooLarge: {
		language.English:    "File must be under 20MB.",
		language.Indonesian: "Ukuran file harus di bawah 20MB.",
	},
	codeMissingInput: {
		language.English:    "Upload an MP3 and choose a video style first.",
		language.Indonesian: "Unggah MP3 dan pilih gaya video terlebih dahulu.",
	},
	codeAlreadyInProgress: {
		language.English:    "Hold tight... your video is already being generated.",
		language.Indonesian: "Tunggu sebentar... video Anda sedang dibuat.",
	},
	codeInternal: {
		language.English:    "Something went wrong.",
		language.Indonesian: "Terjadi kesalahan.",
	},
}

var (
	messageLocales = []language.Tag{language.English, language.Indonesian}
	messageMatcher = language.NewMatcher(messageLocales)
)

// localize returns the human readable message for code in locale, falling
// back to English.
func localize(locale, code string) string {
	_, idx, _ := messageMatcher.Match(language.Make(locale))
	byLang, ok := messages[code]
	if !ok {
		byLang = messages[codeInternal]
	}
	if text, ok := byLang[messageLocales[idx]]; ok {
		return text
	}
	return byLang[language.English]
}
