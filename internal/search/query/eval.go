package query

import (
	"strings"

	"tradeintel/internal/search/models"
)

// Matches evaluates a predicate list against a single record. The in-memory
// store uses it so memory and Postgres share one definition of the filter
// semantics.
func Matches(preds []Predicate, rec models.ShipmentRecord) bool {
	for _, p := range preds {
		if !matches(p, rec) {
			return false
		}
	}
	return true
}

func matches(p Predicate, rec models.ShipmentRecord) bool {
	switch p.Op {
	case OpText:
		needle := strings.ToLower(p.Value.(string))
		for _, hay := range []string{rec.CompanyName, rec.Description, rec.CommodityDescription} {
			if strings.Contains(strings.ToLower(hay), needle) {
				return true
			}
		}
		return false
	case OpContains:
		return strings.Contains(strings.ToLower(stringField(rec, p.Column)), strings.ToLower(p.Value.(string)))
	case OpPrefix:
		return strings.HasPrefix(strings.ToLower(stringField(rec, p.Column)), strings.ToLower(p.Value.(string)))
	case OpEq:
		if p.Column == ColFlag {
			return rec.LikelyAirShipper == p.Value.(bool)
		}
		return stringField(rec, p.Column) == p.Value.(string)
	case OpGTE, OpLTE:
		return matchesRange(p, rec)
	}
	return false
}

func matchesRange(p Predicate, rec models.ShipmentRecord) bool {
	switch p.Column {
	case ColDate:
		// Records without a date never satisfy a date bound, matching SQL
		// NULL comparison semantics. ISO dates compare lexicographically.
		if rec.ShipmentDate == "" {
			return false
		}
		bound := p.Value.(string)
		if p.Op == OpGTE {
			return rec.ShipmentDate >= bound
		}
		return rec.ShipmentDate <= bound
	case ColValue:
		bound := p.Value.(float64)
		if p.Op == OpGTE {
			return rec.ValueUSD >= bound
		}
		return rec.ValueUSD <= bound
	}
	return false
}

func stringField(rec models.ShipmentRecord, column string) string {
	switch column {
	case ColMode:
		return rec.Mode
	case ColCompany:
		return rec.CompanyName
	case ColOrigin:
		return rec.OriginCountry
	case ColDestination:
		return rec.DestinationCountry
	case ColCity:
		return rec.DestinationCity
	case ColHSCode:
		return rec.HSCode
	case ColCarrier:
		return rec.Carrier
	}
	return ""
}
