package models

// Supported info languages.
const (
	LangEnglish = "en"
	LangHindi   = "hi"
	LangMarathi = "mr"
)

// Config holds application configuration
type Config struct {
	AutoStart bool   `json:"auto_start"`
	Language  string `json:"language"` // info text language: en, hi or mr
}

// Normalize falls back to English for unknown language codes.
func (c *Config) Normalize() {
	switch c.Language {
	case LangEnglish, LangHindi, LangMarathi:
	default:
		c.Language = LangEnglish
	}
}
