// Package query compiles FilterCriteria into discrete predicate descriptors
// and folds them into parameterized SQL. Keeping compilation separate from the
// store keeps the filter logic pure and testable: the Postgres store folds
// predicates into WHERE clauses while the in-memory store evaluates the same
// predicates directly.
package query

import (
	"fmt"
	"strings"

	"tradeintel/internal/search/models"
)

// Columns of the shipments table addressable by predicates.
const (
	ColMode        = "mode"
	ColDate        = "shipment_date"
	ColCompany     = "company_name"
	ColOrigin      = "origin_country"
	ColDestination = "destination_country"
	ColCity        = "destination_city"
	ColHSCode      = "hs_code"
	ColCarrier     = "carrier"
	ColValue       = "value_usd"
	ColFlag        = "is_likely_air_shipper"
)

// textColumns are the targets of the free-text OR group.
var textColumns = []string{ColCompany, "description", "commodity_description"}

// Op is a predicate operator.
type Op string

const (
	// OpEq is an exact match.
	OpEq Op = "eq"
	// OpContains is a case-insensitive substring match.
	OpContains Op = "contains"
	// OpPrefix is a case-insensitive prefix match.
	OpPrefix Op = "prefix"
	// OpGTE and OpLTE are inclusive range bounds.
	OpGTE Op = "gte"
	OpLTE Op = "lte"
	// OpText is the free-text OR group over textColumns.
	OpText Op = "text"
)

// Predicate is one (column, operator, value) descriptor. Predicates compiled
// from a single FilterCriteria combine conjunctively.
type Predicate struct {
	Column string
	Op     Op
	Value  any
}

// Compile translates criteria into its predicate list. Absent fields compile
// to nothing; the mode sentinel "all" is equivalent to absent. The flag filter
// applies only when explicitly requested.
func Compile(c models.FilterCriteria) []Predicate {
	var preds []Predicate
	if c.Query != "" {
		preds = append(preds, Predicate{Op: OpText, Value: c.Query})
	}
	if c.Mode != "" && c.Mode != models.ModeAll {
		preds = append(preds, Predicate{Column: ColMode, Op: OpEq, Value: c.Mode})
	}
	if c.OriginCountry != "" {
		preds = append(preds, Predicate{Column: ColOrigin, Op: OpEq, Value: c.OriginCountry})
	}
	if c.DestinationCountry != "" {
		preds = append(preds, Predicate{Column: ColDestination, Op: OpEq, Value: c.DestinationCountry})
	}
	if c.DestinationCity != "" {
		preds = append(preds, Predicate{Column: ColCity, Op: OpContains, Value: c.DestinationCity})
	}
	if c.HSCode != "" {
		preds = append(preds, Predicate{Column: ColHSCode, Op: OpPrefix, Value: c.HSCode})
	}
	if c.Carrier != "" {
		preds = append(preds, Predicate{Column: ColCarrier, Op: OpContains, Value: c.Carrier})
	}
	if c.DateFrom != "" {
		preds = append(preds, Predicate{Column: ColDate, Op: OpGTE, Value: c.DateFrom})
	}
	if c.DateTo != "" {
		preds = append(preds, Predicate{Column: ColDate, Op: OpLTE, Value: c.DateTo})
	}
	if c.MinValue != nil {
		preds = append(preds, Predicate{Column: ColValue, Op: OpGTE, Value: *c.MinValue})
	}
	if c.MaxValue != nil {
		preds = append(preds, Predicate{Column: ColValue, Op: OpLTE, Value: *c.MaxValue})
	}
	if c.LikelyAirShipper != nil {
		preds = append(preds, Predicate{Column: ColFlag, Op: OpEq, Value: *c.LikelyAirShipper})
	}
	return preds
}

// selectColumns is the projection order every scan relies on.
const selectColumns = "id, mode, shipment_date, company_name, origin_country, " +
	"destination_country, destination_city, hs_code, carrier, value_usd, " +
	"weight_kg, description, commodity_description, is_likely_air_shipper"

// BuildSelect folds criteria into the primary page query. Ordering is fixed:
// shipment date descending. Sub-date ordering is undefined and callers must
// not depend on it.
func BuildSelect(c models.FilterCriteria) (string, []any) {
	where, args := whereSQL(Compile(c))
	sql := fmt.Sprintf(
		"SELECT %s FROM shipments%s ORDER BY shipment_date DESC NULLS LAST LIMIT $%d OFFSET $%d",
		selectColumns, where, len(args)+1, len(args)+2,
	)
	args = append(args, c.Limit, c.Offset)
	return sql, args
}

// BuildCount folds criteria into the exact-total query, independent of the
// page window.
func BuildCount(c models.FilterCriteria) (string, []any) {
	where, args := whereSQL(Compile(c))
	return "SELECT COUNT(*) FROM shipments" + where, args
}

// BuildSummary folds criteria into the aggregate query: per-mode counts plus
// the value total, with missing values treated as zero.
func BuildSummary(c models.FilterCriteria) (string, []any) {
	where, args := whereSQL(Compile(c))
	sql := "SELECT COUNT(*) FILTER (WHERE mode = 'air'), " +
		"COUNT(*) FILTER (WHERE mode = 'ocean'), " +
		"COALESCE(SUM(value_usd), 0) FROM shipments" + where
	return sql, args
}

func whereSQL(preds []Predicate) (string, []any) {
	if len(preds) == 0 {
		return "", nil
	}
	clauses := make([]string, 0, len(preds))
	var args []any
	for _, p := range preds {
		switch p.Op {
		case OpText:
			args = append(args, "%"+escapeLike(p.Value.(string))+"%")
			parts := make([]string, 0, len(textColumns))
			for _, col := range textColumns {
				parts = append(parts, fmt.Sprintf("%s ILIKE $%d", col, len(args)))
			}
			clauses = append(clauses, "("+strings.Join(parts, " OR ")+")")
		case OpContains:
			args = append(args, "%"+escapeLike(p.Value.(string))+"%")
			clauses = append(clauses, fmt.Sprintf("%s ILIKE $%d", p.Column, len(args)))
		case OpPrefix:
			args = append(args, escapeLike(p.Value.(string))+"%")
			clauses = append(clauses, fmt.Sprintf("%s ILIKE $%d", p.Column, len(args)))
		case OpEq:
			args = append(args, p.Value)
			clauses = append(clauses, fmt.Sprintf("%s = $%d", p.Column, len(args)))
		case OpGTE:
			args = append(args, p.Value)
			clauses = append(clauses, fmt.Sprintf("%s >= $%d", p.Column, len(args)))
		case OpLTE:
			args = append(args, p.Value)
			clauses = append(clauses, fmt.Sprintf("%s <= $%d", p.Column, len(args)))
		}
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

// escapeLike neutralizes LIKE metacharacters in user input so filter values
// match literally.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
