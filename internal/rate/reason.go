package rate

import "fxconvert/internal/domain"

const (
	ReasonNoConnection = "No internet connection"
	ReasonTimeout      = "Connection timeout — please check your internet"
)

// FailureReason turns a fetch error into the text shown next to the retry button.
func FailureReason(err error) string {
	switch {
	case err == nil:
		return ""
	case domain.IsFetchErrorKind(err, domain.FetchNetwork):
		return ReasonNoConnection
	case domain.IsFetchErrorKind(err, domain.FetchTimeout):
		return ReasonTimeout
	default:
		return err.Error()
	}
}
