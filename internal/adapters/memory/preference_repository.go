package memory

import (
	"context"
	"fxconvert/internal/domain"
	"slices"
	"sync"
)

// PreferenceRepository keeps preferences for the lifetime of the process.
type PreferenceRepository struct {
	mu    sync.RWMutex
	prefs *domain.Preferences
}

func (r *PreferenceRepository) Load(_ context.Context) (domain.Preferences, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.prefs == nil {
		return domain.Preferences{}, domain.ErrPreferencesNotFound
	}
	return clonePrefs(*r.prefs), nil
}

func (r *PreferenceRepository) Save(ctx context.Context, prefs domain.Preferences) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	saved := clonePrefs(prefs)
	r.prefs = &saved
	return nil
}

func clonePrefs(p domain.Preferences) domain.Preferences {
	p.SelectedCurrencies = slices.Clone(p.SelectedCurrencies)
	return p
}

func NewPreferenceRepository() *PreferenceRepository {
	return &PreferenceRepository{}
}
