package domain

// Source is the kind of recipe input a client submits.
type Source string

const (
	SourceURL   Source = "URL"
	SourceImage Source = "IMAGE"
	SourceText  Source = "TEXT"
)

// Sources lists every source kind the API accepts.
func Sources() []Source {
	return []Source{SourceURL, SourceImage, SourceText}
}

// Valid reports whether s is a known source kind.
func (s Source) Valid() bool {
	switch s {
	case SourceURL, SourceImage, SourceText:
		return true
	}
	return false
}

// FileFormat is the encoding of an uploaded recipe image.
type FileFormat string

const (
	FileFormatJPEG FileFormat = "JPEG"
	FileFormatJPG  FileFormat = "JPG"
	FileFormatPNG  FileFormat = "PNG"
)

// MIMEType returns the media type for the format, or false for unknown formats.
func (f FileFormat) MIMEType() (string, bool) {
	switch f {
	case FileFormatJPEG, FileFormatJPG:
		return "image/jpeg", true
	case FileFormatPNG:
		return "image/png", true
	}
	return "", false
}

// Language is the language the chat agent answers in.
type Language string

const (
	LanguagePL   Language = "PL"
	LanguageENUS Language = "EN_US"
	LanguageENGB Language = "EN_GB"
	LanguageDE   Language = "DE"
	LanguageFR   Language = "FR"
	LanguageSP   Language = "SP"
)

var languageNames = map[Language]string{
	LanguagePL:   "polish",
	LanguageENUS: "english (US)",
	LanguageENGB: "english (GB)",
	LanguageDE:   "german",
	LanguageFR:   "french",
	LanguageSP:   "spanish",
}

// DisplayName is the human readable language name used in prompts.
func (l Language) DisplayName() string {
	return languageNames[l]
}

// Valid reports whether l is a supported language.
func (l Language) Valid() bool {
	_, ok := languageNames[l]
	return ok
}

// Role is the author of a conversation message.
type Role string

const (
	RoleUser      Role = "USER"
	RoleAssistant Role = "ASSISTANT"
	RoleSystem    Role = "SYSTEM"
)

// Voice selects the speaker used for synthesized answers.
type Voice string

const (
	VoiceWoman Voice = "VOICE_WOMAN"
	VoiceMan   Voice = "VOICE_MAN"
)

var voiceIDs = map[Voice]string{
	VoiceWoman: "hpp4J3VqNfWAUOO0d1Us",
	VoiceMan:   "CwhRBWXzGAHq8TQ4Fs17",
}

// ID returns the speech engine voice identifier.
func (v Voice) ID() (string, bool) {
	id, ok := voiceIDs[v]
	return id, ok
}

// Unit is a measurement unit the extractor is allowed to use for quantities.
type Unit string

const (
	UnitGram       Unit = "g"
	UnitKilogram   Unit = "kg"
	UnitLiter      Unit = "l"
	UnitMilliliter Unit = "ml"
	UnitTeaspoon   Unit = "tsp"
	UnitTablespoon Unit = "tbsp"
	UnitCup        Unit = "cup"
	UnitPiece      Unit = "piece"
)

// Units returns the unit vocabulary in a stable order.
func Units() []Unit {
	return []Unit{UnitGram, UnitKilogram, UnitLiter, UnitMilliliter, UnitTeaspoon, UnitTablespoon, UnitCup, UnitPiece}
}
