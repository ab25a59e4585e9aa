package domain

// Currency is a catalog entry. Codes are lowercase and unique.
type Currency struct {
	Code string `json:"code"`
	Name string `json:"name"`
	Flag string `json:"flag"`
}

// DisplayRow joins a selected currency with its rate against the current base.
type DisplayRow struct {
	Currency Currency
	Rate     float64
}
