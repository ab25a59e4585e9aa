package domain

import (
	"errors"
	"fmt"
)

var (
	ErrCatalogLoad         = errors.New("currency catalog load failed")
	ErrPreferencesNotFound = errors.New("preferences not found")
	ErrStoreClosed         = errors.New("rate store closed")
	ErrEmptyCurrencyCode   = errors.New("currency code is empty")
)

type FetchErrorKind string

const (
	FetchInvalidRequest FetchErrorKind = "invalid request"
	FetchNetwork        FetchErrorKind = "network"
	FetchTimeout        FetchErrorKind = "timeout"
	FetchDecode         FetchErrorKind = "decode"
)

// FetchError is returned by rate clients for every failed fetch.
type FetchError struct {
	Kind FetchErrorKind
	Base string
	Err  error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%s error for currency %q: %v", e.Kind, e.Base, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// IsFetchErrorKind reports whether err is a FetchError of the given kind.
func IsFetchErrorKind(err error, kind FetchErrorKind) bool {
	var fetchErr *FetchError
	return errors.As(err, &fetchErr) && fetchErr.Kind == kind
}
