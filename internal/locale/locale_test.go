package locale_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"feedpoll/internal/locale"
)

func TestTranslate_DefaultLocale(t *testing.T) {
	tr, err := locale.New("ru")
	require.NoError(t, err)

	require.Equal(t, "ru", tr.DefaultLanguage())
	require.Equal(t, "RSS уже существует", tr.Translate(locale.KeyURLNotOneOf))
	require.Equal(t, "Превышено время ожидания ответа", tr.Translate(locale.KeyTimeout))
}

func TestTranslate_RequestedLanguage(t *testing.T) {
	tr, err := locale.New("ru")
	require.NoError(t, err)

	require.Equal(t, "Must not be empty", tr.Translate(locale.KeyRequired, "en"))
	require.Equal(t, "Link must be a valid URL", tr.Translate(locale.KeyURL, "en-US,en;q=0.9"))
	// Unsupported language falls back to the default one.
	require.Equal(t, "Ошибка сети", tr.Translate(locale.KeyNetwork, "de"))
}

func TestTranslate_EveryKeyHasMessages(t *testing.T) {
	tr, err := locale.New("en")
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"en", "ru"}, tr.Languages())

	keys := []string{
		locale.KeyRequired, locale.KeyURL, locale.KeyURLNotOneOf, locale.KeyURLInvalid,
		locale.KeyTimeout, locale.KeyNoRSS, locale.KeyNetwork, locale.KeyLoaded,
	}
	for _, lang := range []string{"en", "ru"} {
		for _, key := range keys {
			require.NotEqual(t, key, tr.Translate(key, lang), "%s missing for %s", key, lang)
		}
	}
}

func TestTranslate_UnknownKeyReturnedAsIs(t *testing.T) {
	tr, err := locale.New("ru")
	require.NoError(t, err)

	require.Equal(t, "boom: connection reset", tr.Translate("boom: connection reset"))
	require.Empty(t, tr.Translate(""))
}

func TestNew_InvalidDefault(t *testing.T) {
	_, err := locale.New("not a tag!")
	require.Error(t, err)
}
