package domain

import "slices"

const DefaultBaseCurrency = "usd"

var defaultSelectedCurrencies = []string{"eur"}

type Preferences struct {
	BaseCurrency       string   `json:"base_currency"`
	SelectedCurrencies []string `json:"selected_currencies"`
}

func DefaultPreferences() Preferences {
	return Preferences{
		BaseCurrency:       DefaultBaseCurrency,
		SelectedCurrencies: slices.Clone(defaultSelectedCurrencies),
	}
}

// WithDefaults fills in the values that were never stored. An empty, non-nil
// selection is a user choice and is kept as is.
func (p Preferences) WithDefaults() Preferences {
	if p.BaseCurrency == "" {
		p.BaseCurrency = DefaultBaseCurrency
	}
	if p.SelectedCurrencies == nil {
		p.SelectedCurrencies = slices.Clone(defaultSelectedCurrencies)
	}
	return p
}
