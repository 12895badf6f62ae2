package store

import (
	"math"
	"strconv"
	"strings"

	"github.com/erazemk/zaloga/internal/model"
)

func validateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	return name, nil
}

// normalizeCurrency upper-cases a currency code, defaulting to USD when empty.
func normalizeCurrency(currency string) (string, error) {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == "" {
		return model.DefaultCurrency, nil
	}
	if len(currency) != 3 {
		return "", &ValidationError{Field: "currency", Reason: "must be a 3-letter code"}
	}
	for _, c := range currency {
		if c < 'A' || c > 'Z' {
			return "", &ValidationError{Field: "currency", Reason: "must be a 3-letter code"}
		}
	}
	return currency, nil
}

func parseQuantity(s string) (int, error) {
	q, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || q < 0 {
		return 0, &ValidationError{Field: "quantity", Reason: "must be a non-negative integer"}
	}
	return q, nil
}

func parsePrice(s string) (float64, error) {
	p, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || p < 0 || math.IsNaN(p) || math.IsInf(p, 0) {
		return 0, &ValidationError{Field: "price", Reason: "must be a non-negative number"}
	}
	return p, nil
}
