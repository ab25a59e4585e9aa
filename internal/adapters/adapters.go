package adapters

import (
	"context"
	"fxconvert/internal/domain"
)

type RateClient interface {
	GetExchangeRates(ctx context.Context, base string) (domain.RateTable, error)
}

type PreferenceRepository interface {
	Load(ctx context.Context) (domain.Preferences, error)
	Save(ctx context.Context, prefs domain.Preferences) error
}

type SearchCache interface {
	Get(query string) ([]domain.Currency, bool)
	Set(query string, result []domain.Currency)
}
