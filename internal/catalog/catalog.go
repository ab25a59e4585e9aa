package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"fxconvert/internal/adapters"
	"fxconvert/internal/domain"
	"os"
	"slices"
	"strings"

	"github.com/sirupsen/logrus"
)

//go:embed currencies.json
var bundled []byte

type currencyList struct {
	Currencies []domain.Currency `json:"currencies"`
}

// Catalog is built once at startup and is read-only afterwards.
type Catalog struct {
	currencies []domain.Currency
	byCode     map[string]domain.Currency
	cache      adapters.SearchCache // optional
}

// LoadAll reads the bundled currency list, or the file at path when set.
// A missing or malformed asset is logged and yields an empty list.
func LoadAll(path string) []domain.Currency {
	data := bundled
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			logrus.WithError(fmt.Errorf("%w: %w", domain.ErrCatalogLoad, err)).WithField("path", path).Error("Currency catalog is unavailable")
			return []domain.Currency{}
		}
		data = raw
	}

	currencies, err := Parse(data)
	if err != nil {
		logrus.WithError(err).WithField("path", path).Error("Currency catalog is unavailable")
		return []domain.Currency{}
	}
	return currencies
}

// Parse decodes {"currencies": [...]}. Entries without a code are skipped and
// the first entry wins for duplicated codes.
func Parse(data []byte) ([]domain.Currency, error) {
	var list currencyList
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrCatalogLoad, err)
	}
	if list.Currencies == nil {
		return nil, fmt.Errorf("%w: no \"currencies\" list", domain.ErrCatalogLoad)
	}

	seen := make(map[string]struct{}, len(list.Currencies))
	currencies := make([]domain.Currency, 0, len(list.Currencies))
	for _, c := range list.Currencies {
		c.Code = strings.ToLower(strings.TrimSpace(c.Code))
		if c.Code == "" {
			continue
		}
		if _, dup := seen[c.Code]; dup {
			continue
		}
		seen[c.Code] = struct{}{}
		currencies = append(currencies, c)
	}
	return currencies, nil
}

func (c *Catalog) All() []domain.Currency {
	return slices.Clone(c.currencies)
}

func (c *Catalog) Lookup(code string) (domain.Currency, bool) {
	cur, ok := c.byCode[code]
	return cur, ok
}

// Flag returns an empty string for unknown codes.
func (c *Catalog) Flag(code string) string {
	return c.byCode[code].Flag
}

// Codes returns the set of known codes.
func (c *Catalog) Codes() map[string]struct{} {
	codes := make(map[string]struct{}, len(c.byCode))
	for code := range c.byCode {
		codes[code] = struct{}{}
	}
	return codes
}

// Search matches query against names and codes, ignoring case. An empty query
// matches everything. Order follows the catalog.
func (c *Catalog) Search(query string) []domain.Currency {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return c.All()
	}
	if c.cache != nil {
		if hit, ok := c.cache.Get(q); ok {
			return hit
		}
	}

	result := make([]domain.Currency, 0)
	for _, cur := range c.currencies {
		if strings.Contains(cur.Code, q) || strings.Contains(strings.ToLower(cur.Name), q) {
			result = append(result, cur)
		}
	}

	if c.cache != nil {
		c.cache.Set(q, result)
	}
	return result
}

func New(currencies []domain.Currency, cache adapters.SearchCache) *Catalog {
	byCode := make(map[string]domain.Currency, len(currencies))
	for _, cur := range currencies {
		byCode[cur.Code] = cur
	}
	return &Catalog{
		currencies: slices.Clone(currencies),
		byCode:     byCode,
		cache:      cache,
	}
}
