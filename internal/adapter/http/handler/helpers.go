package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/iho/finledger/internal/adapter/http/dto"
	"github.com/iho/finledger/internal/domain"
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.ErrorResponse{
		Error:   message,
		Message: details,
	})
}

// writeDomainError writes err with the status mapDomainError picks.
func writeDomainError(w http.ResponseWriter, message string, err error) {
	writeError(w, mapDomainError(err), message, err.Error())
}

// mapDomainError maps domain errors to HTTP status codes.
func mapDomainError(err error) int {
	var persistErr *domain.PersistError
	switch {
	case errors.As(err, &persistErr):
		return http.StatusInternalServerError
	case errors.Is(err, domain.ErrEntryNotFound),
		errors.Is(err, domain.ErrCardNotFound),
		errors.Is(err, domain.ErrSubscriptionNotFound),
		errors.Is(err, domain.ErrDebtNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrDerivedEntry):
		return http.StatusConflict
	case errors.Is(err, domain.ErrPartialPaymentTooLarge):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrInvalidInstallmentCount),
		errors.Is(err, domain.ErrInvalidDay),
		errors.Is(err, domain.ErrInvalidMonth),
		errors.Is(err, domain.ErrInvalidName),
		errors.Is(err, domain.ErrInvalidKind),
		errors.Is(err, domain.ErrInvalidColor),
		errors.Is(err, domain.ErrAmountTooLarge),
		errors.Is(err, domain.ErrTooManyInstallments),
		errors.Is(err, domain.ErrMultipleLinkages):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// parseIntQuery parses an integer query parameter with a default value.
func parseIntQuery(r *http.Request, key string, defaultValue int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultValue
	}
	return i
}

// parseBoolQuery reports whether key is set to a true value.
func parseBoolQuery(r *http.Request, key string) bool {
	b, _ := strconv.ParseBool(r.URL.Query().Get(key))
	return b
}

// parseMonthQuery reads year and zero-based month, defaulting to the month of now.
func parseMonthQuery(r *http.Request, now time.Time) (int, int, error) {
	year := parseIntQuery(r, "year", now.Year())
	month := parseIntQuery(r, "month", int(now.Month())-1)
	if err := domain.ValidateMonth(month); err != nil {
		return 0, 0, err
	}
	return year, month, nil
}

// decodeJSON decodes the request body into dst, rejecting unknown fields.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}
