package config

const (
	// MaxFolderNameLength is the maximum length for folder names.
	// Limited to 255 to fit in PostgreSQL VARCHAR(255) and provide
	// reasonable UX (names should be short and descriptive).
	MaxFolderNameLength = 255

	// MaxNoteTitleLength is the maximum length for note titles.
	// Same bound as folder names for consistency.
	MaxNoteTitleLength = 255

	// MaxFolderDescriptionLength bounds the optional folder description.
	MaxFolderDescriptionLength = 1000

	// MaxTranscriptionBytes bounds the buffered audio payload accepted by
	// the transcription endpoint. Whisper rejects files over 25MB anyway.
	MaxTranscriptionBytes = 25 << 20
)
