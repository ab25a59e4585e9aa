package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"fxconvert/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	keyBaseCurrency       = "base_currency"
	keySelectedCurrencies = "selected_currencies"
)

type PreferenceRepository struct {
	pool *pgxpool.Pool
}

// Load returns domain.ErrPreferencesNotFound when nothing was saved yet. Keys
// that are missing stay zero so that domain.Preferences.WithDefaults can fill them.
func (r *PreferenceRepository) Load(ctx context.Context) (domain.Preferences, error) {
	const q = `select key, value from preferences where key = any($1);`

	rows, err := r.pool.Query(ctx, q, []string{keyBaseCurrency, keySelectedCurrencies})
	if err != nil {
		return domain.Preferences{}, fmt.Errorf("failed to query preferences: %w", err)
	}
	defer rows.Close()

	var prefs domain.Preferences
	found := 0
	for rows.Next() {
		var key string
		var value []byte
		if err = rows.Scan(&key, &value); err != nil {
			return domain.Preferences{}, fmt.Errorf("failed to scan preference: %w", err)
		}
		switch key {
		case keyBaseCurrency:
			err = json.Unmarshal(value, &prefs.BaseCurrency)
		case keySelectedCurrencies:
			err = json.Unmarshal(value, &prefs.SelectedCurrencies)
		}
		if err != nil {
			return domain.Preferences{}, fmt.Errorf("failed to decode preference %q: %w", key, err)
		}
		found++
	}
	if err = rows.Err(); err != nil {
		return domain.Preferences{}, fmt.Errorf("error iterating preferences: %w", err)
	}
	if found == 0 {
		return domain.Preferences{}, domain.ErrPreferencesNotFound
	}
	return prefs, nil
}

func (r *PreferenceRepository) Save(ctx context.Context, prefs domain.Preferences) error {
	selected := prefs.SelectedCurrencies
	if selected == nil {
		selected = []string{}
	}

	baseJSON, err := json.Marshal(prefs.BaseCurrency)
	if err != nil {
		return fmt.Errorf("failed to marshal base currency: %w", err)
	}
	selectedJSON, err := json.Marshal(selected)
	if err != nil {
		return fmt.Errorf("failed to marshal selected currencies: %w", err)
	}

	const q = `
		insert into preferences(key, value, updated_at) values ($1, $2::jsonb, now())
		on conflict (key) do update
		set value = excluded.value, updated_at = now();
	`

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err = tx.Exec(ctx, q, keyBaseCurrency, string(baseJSON)); err != nil {
		return fmt.Errorf("failed to save %q: %w", keyBaseCurrency, err)
	}
	if _, err = tx.Exec(ctx, q, keySelectedCurrencies, string(selectedJSON)); err != nil {
		return fmt.Errorf("failed to save %q: %w", keySelectedCurrencies, err)
	}
	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func NewPreferenceRepository(pool *pgxpool.Pool) *PreferenceRepository {
	return &PreferenceRepository{pool: pool}
}
