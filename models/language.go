package models

import "strings"

// Language is a BCP-47 style locale tag selecting the response templates.
type Language string

const (
	LangEnglish  Language = "en-US"
	LangHindi    Language = "hi-IN"
	LangGujarati Language = "gu-IN"
	LangTamil    Language = "ta-IN"
	LangMarathi  Language = "mr-IN"
	LangOdia     Language = "or-IN"
	LangSindhi   Language = "sd-IN"
	LangKutchi   Language = "kut-IN"
)

// SupportedLanguages lists every language the assistant answers in.
var SupportedLanguages = []Language{
	LangEnglish, LangHindi, LangGujarati, LangTamil,
	LangMarathi, LangOdia, LangSindhi, LangKutchi,
}

var languageNames = map[Language]string{
	LangEnglish:  "English",
	LangHindi:    "Hindi",
	LangGujarati: "Gujarati",
	LangTamil:    "Tamil",
	LangMarathi:  "Marathi",
	LangOdia:     "Odia",
	LangSindhi:   "Sindhi",
	LangKutchi:   "Kutchi",
}

// ParseLanguage matches a tag case-insensitively; unknown or empty tags
// resolve to English.
func ParseLanguage(tag string) Language {
	tag = strings.TrimSpace(tag)
	for _, l := range SupportedLanguages {
		if strings.EqualFold(string(l), tag) {
			return l
		}
	}
	return LangEnglish
}

// Valid reports whether l is one of the supported tags.
func (l Language) Valid() bool {
	_, ok := languageNames[l]
	return ok
}

// Name is the English display name used inside model prompts.
func (l Language) Name() string {
	if n, ok := languageNames[l]; ok {
		return n
	}
	return "English"
}

func (l *Language) UnmarshalText(b []byte) error {
	*l = ParseLanguage(string(b))
	return nil
}
