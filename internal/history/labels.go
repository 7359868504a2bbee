package history

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Labels are the words placed in front of each history field.
type Labels struct {
	Press string // before the press date
	Value string // before the counter value
	Shake string // before the shake date
}

const (
	keyPress = "history.press"
	keyValue = "history.value"
	keyShake = "history.shake"
)

var labelTranslations = map[language.Tag][3]string{
	language.English: {"Pressed", "Value", "Shaken"},
	language.German:  {"Gedrückt", "Wert", "Geschüttelt"},
	language.Spanish: {"Pulsado", "Valor", "Agitado"},
}

// supported lists the catalog languages; English first so it wins ties.
var supported = []language.Tag{language.English, language.German, language.Spanish}

var (
	labelCatalog = buildCatalog()
	labelMatcher = language.NewMatcher(supported)
)

func buildCatalog() catalog.Catalog {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for tag, words := range labelTranslations {
		// SetString only fails for malformed message strings.
		_ = b.SetString(tag, keyPress, words[0])
		_ = b.SetString(tag, keyValue, words[1])
		_ = b.SetString(tag, keyShake, words[2])
	}
	return b
}

// DefaultLabels returns the English labels.
func DefaultLabels() Labels {
	return LabelsFor(language.English)
}

// LabelsFor returns the labels for the closest supported language to tag.
func LabelsFor(tag language.Tag) Labels {
	_, index, _ := labelMatcher.Match(tag)
	p := message.NewPrinter(supported[index], message.Catalog(labelCatalog))
	return Labels{
		Press: p.Sprintf(keyPress),
		Value: p.Sprintf(keyValue),
		Shake: p.Sprintf(keyShake),
	}
}

// ParseLocale resolves a BCP 47 locale string such as "de-CH" to labels.
// An empty locale selects English.
func ParseLocale(locale string) (Labels, error) {
	if locale == "" {
		return DefaultLabels(), nil
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return Labels{}, err
	}
	return LabelsFor(tag), nil
}
