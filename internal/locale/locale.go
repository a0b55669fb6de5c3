package locale

import (
	"embed"
	"fmt"
	"path"

	"github.com/BurntSushi/toml"
	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

// Translation keys for user-visible messages.
const (
	KeyRequired    = "errorMessage.required"
	KeyURL         = "errorMessage.url"
	KeyURLNotOneOf = "errorMessage.urlNotOneOf"
	KeyURLInvalid  = "errorMessage.urlInValid"
	KeyTimeout     = "errorMessage.timeout"
	KeyNoRSS       = "errorMessage.noRss"
	KeyNetwork     = "errorMessage.network"
	KeyLoaded      = "successMessage.loaded"
)

//go:embed locales/*.toml
var resources embed.FS

// Translator resolves translation keys against the embedded locale bundle.
type Translator struct {
	bundle      *goi18n.Bundle
	defaultLang string
}

// New loads every embedded locale. defaultLang is used when a request names
// no supported language.
func New(defaultLang string) (*Translator, error) {
	tag, err := language.Parse(defaultLang)
	if err != nil {
		return nil, fmt.Errorf("parse default locale %q: %w", defaultLang, err)
	}

	bundle := goi18n.NewBundle(tag)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	entries, err := resources.ReadDir("locales")
	if err != nil {
		return nil, fmt.Errorf("read locales: %w", err)
	}
	for _, entry := range entries {
		name := path.Join("locales", entry.Name())
		data, err := resources.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		if _, err := bundle.ParseMessageFileBytes(data, name); err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
	}

	return &Translator{bundle: bundle, defaultLang: tag.String()}, nil
}

// DefaultLanguage returns the fallback language tag.
func (t *Translator) DefaultLanguage() string {
	return t.defaultLang
}

// Languages lists the tags that have a message file.
func (t *Translator) Languages() []string {
	tags := t.bundle.LanguageTags()
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		out = append(out, tag.String())
	}
	return out
}

// Translate resolves key for the first matching language in langs, which may be
// plain tags or Accept-Language header values. Unknown keys come back unchanged.
func (t *Translator) Translate(key string, langs ...string) string {
	if key == "" {
		return ""
	}
	localizer := goi18n.NewLocalizer(t.bundle, append(langs, t.defaultLang)...)
	msg, err := localizer.Localize(&goi18n.LocalizeConfig{MessageID: key})
	if err != nil || msg == "" {
		return key
	}
	return msg
}
