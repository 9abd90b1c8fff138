package filter

import (
	"net/url"
	"strconv"
	"strings"
)

// FromQuery arma la configuración a partir de los parámetros de la vista:
// q, category, min_price, max_price, available, min_eco, sort
func FromQuery(q url.Values) Config {
	cfg := Config{
		Search:   strings.TrimSpace(q.Get("q")),
		Category: strings.TrimSpace(q.Get("category")),
		SortBy:   q.Get("sort"),
	}

	if v, err := strconv.ParseFloat(q.Get("min_price"), 64); err == nil && v > 0 {
		cfg.MinPrice = v
	}
	if v, err := strconv.ParseFloat(q.Get("max_price"), 64); err == nil && v > 0 {
		cfg.MaxPrice = v
	}
	if v, err := strconv.ParseBool(q.Get("available")); err == nil {
		cfg.ShowOnlyAvailable = v
	}
	if v, err := strconv.Atoi(q.Get("min_eco")); err == nil && v > 0 {
		cfg.MinEcoRating = v
	}

	return cfg
}
