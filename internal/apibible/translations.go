package apibible

import (
	"github.com/FocuswithJustin/DailyBread/core/errors"
)

// Translation maps a short selector to a remote bible collection.
type Translation struct {
	Name         string `json:"name"`         // selector used on the command line
	ID           string `json:"id"`           // remote collection identifier
	Abbreviation string `json:"abbreviation"` // printed in attributions
	Description  string `json:"description"`
}

// Translations returns the selectable translations in display order.
// All of them are public-domain English texts served by the production
// endpoint.
func Translations() []Translation {
	return []Translation{
		{
			Name:         "web",
			ID:           "9879dbb7cfe39e4d-01",
			Abbreviation: "WEB",
			Description:  "World English Bible",
		},
		{
			Name:         "kjv",
			ID:           "de4e12af7f28f599-01",
			Abbreviation: "KJV",
			Description:  "King James (Authorised) Version",
		},
		{
			Name:         "asv",
			ID:           "06125adad2d5898a-01",
			Abbreviation: "ASV",
			Description:  "American Standard Version",
		},
		{
			Name:         "bsb",
			ID:           "bba9f40183526463-01",
			Abbreviation: "BSB",
			Description:  "Berean Standard Bible",
		},
	}
}

// Names returns the valid translation selectors in display order.
func Names() []string {
	all := Translations()
	names := make([]string, len(all))
	for i, t := range all {
		names[i] = t.Name
	}
	return names
}

// LookupTranslation resolves a short translation selector.
func LookupTranslation(name string) (Translation, error) {
	for _, t := range Translations() {
		if t.Name == name {
			return t, nil
		}
	}
	return Translation{}, errors.NewNotFound("translation", name)
}
