package models

import (
	"fmt"
	"time"
)

// DefaultLimit is the page size applied when a caller omits one.
const DefaultLimit = 25

// MaxLimit caps the page size a caller may request.
const MaxLimit = 500

// FilterCriteria is the sparse set of optional search parameters a caller
// supplies. Every field is optional; absent limit/offset default to 25/0.
// Fields combine conjunctively (logical AND).
type FilterCriteria struct {
	// Query is a free-text filter matched case-insensitively as a substring
	// against company name, description, and commodity description (OR).
	Query string `json:"q"`
	// Mode filters to "air" or "ocean"; "all" and "" mean no mode filter.
	Mode string `json:"mode"`
	// OriginCountry and DestinationCountry are exact matches.
	OriginCountry      string `json:"origin_country"`
	DestinationCountry string `json:"destination_country"`
	// DestinationCity is a case-insensitive substring match.
	DestinationCity string `json:"destination_city"`
	// HSCode is a case-insensitive prefix match, so "8471" matches "847130".
	HSCode string `json:"hs_code"`
	// Carrier is a case-insensitive substring match.
	Carrier string `json:"carrier"`
	// DateFrom and DateTo bound the shipment date inclusively; either bound
	// may be set independently. Format is YYYY-MM-DD.
	DateFrom string `json:"date_from"`
	DateTo   string `json:"date_to"`
	// MinValue and MaxValue bound the monetary value inclusively.
	MinValue *float64 `json:"min_value"`
	MaxValue *float64 `json:"max_value"`
	// LikelyAirShipper, when set, requires the derived classification flag to
	// match exactly. Nil means the filter is not applied.
	LikelyAirShipper *bool `json:"likely_air_shipper"`

	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// Normalized returns a copy with pagination defaults applied.
func (c FilterCriteria) Normalized() FilterCriteria {
	if c.Limit <= 0 {
		c.Limit = DefaultLimit
	}
	if c.Limit > MaxLimit {
		c.Limit = MaxLimit
	}
	if c.Offset < 0 {
		c.Offset = 0
	}
	return c
}

// Validate rejects criteria that cannot be compiled into a query. Zero results
// is a normal outcome and never a validation concern.
func (c FilterCriteria) Validate() error {
	switch c.Mode {
	case "", ModeAll, ModeAir, ModeOcean:
	default:
		return fmt.Errorf("invalid mode %q", c.Mode)
	}
	for _, d := range []string{c.DateFrom, c.DateTo} {
		if d == "" {
			continue
		}
		if _, err := time.Parse(DateLayout, d); err != nil {
			return fmt.Errorf("invalid date %q: %w", d, err)
		}
	}
	if c.MinValue != nil && *c.MinValue < 0 {
		return fmt.Errorf("min_value must be non-negative")
	}
	if c.MaxValue != nil && *c.MaxValue < 0 {
		return fmt.Errorf("max_value must be non-negative")
	}
	return nil
}

// TextOnly strips every filter except the free-text query. The legacy summary
// scope aggregates over this broader population.
func (c FilterCriteria) TextOnly() FilterCriteria {
	return FilterCriteria{Query: c.Query}
}
