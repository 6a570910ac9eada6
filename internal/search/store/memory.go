package store

import (
	"context"
	"sort"
	"strings"
	"sync"

	"tradeintel/internal/search/models"
	"tradeintel/internal/search/query"
	pkgstrings "tradeintel/pkg/platform/strings"
)

// InMemory holds shipment and company rows in memory. It backs tests and local
// development; semantics track the Postgres store through the shared predicate
// evaluator in the query package.
//
// One divergence: in Postgres a NULL value_usd never satisfies a value bound,
// while rows here are already normalized and carry 0, so a record with no
// value matches max_value filters. Seed explicit values when a test depends
// on value-range behavior.
type InMemory struct {
	mu        sync.RWMutex
	shipments []models.ShipmentRecord
	companies []models.Company
}

// NewInMemory constructs an empty in-memory store.
func NewInMemory() *InMemory {
	return &InMemory{}
}

// SeedShipments replaces the shipment rows.
func (s *InMemory) SeedShipments(records []models.ShipmentRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shipments = append([]models.ShipmentRecord(nil), records...)
}

// SeedCompanies replaces the company rows.
func (s *InMemory) SeedCompanies(companies []models.Company) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.companies = append([]models.Company(nil), companies...)
}

// Search returns the page window over the filtered, date-descending record set
// plus the exact total of all matching records.
func (s *InMemory) Search(ctx context.Context, c models.FilterCriteria) ([]models.ShipmentRecord, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	preds := query.Compile(c)
	matched := make([]models.ShipmentRecord, 0, len(s.shipments))
	for _, rec := range s.shipments {
		if query.Matches(preds, rec) {
			matched = append(matched, rec)
		}
	}

	// Most recent first; records without a date sort last. Sub-date order is
	// undefined, but a stable sort keeps repeated queries identical.
	sort.SliceStable(matched, func(i, j int) bool {
		a, b := matched[i].ShipmentDate, matched[j].ShipmentDate
		if a == "" || b == "" {
			return b == "" && a != ""
		}
		return a > b
	})

	total := len(matched)
	if c.Offset >= total {
		return []models.ShipmentRecord{}, total, nil
	}
	end := c.Offset + c.Limit
	if end > total {
		end = total
	}
	page := append([]models.ShipmentRecord(nil), matched[c.Offset:end]...)
	return page, total, nil
}

// Summarize aggregates the population selected by the criteria.
func (s *InMemory) Summarize(ctx context.Context, c models.FilterCriteria) (models.Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	preds := query.Compile(c)
	var summary models.Summary
	for _, rec := range s.shipments {
		if !query.Matches(preds, rec) {
			continue
		}
		switch rec.Mode {
		case models.ModeAir:
			summary.AirCount++
		case models.ModeOcean:
			summary.OceanCount++
		}
		summary.TotalValue += rec.ValueUSD
	}
	return summary, nil
}

// Companies returns company rows whose name contains q, name-ascending.
func (s *InMemory) Companies(ctx context.Context, q string, limit int) ([]models.Company, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]models.Company, 0, limit)
	for _, company := range s.companies {
		if q != "" && !containsFold(company.Name, q) {
			continue
		}
		matched = append(matched, company)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Name < matched[j].Name })
	if len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

// Countries returns the deduplicated, alphabetically sorted union of origin
// and destination countries across all records.
func (s *InMemory) Countries(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	countries := make([]string, 0, len(s.shipments)*2)
	for _, rec := range s.shipments {
		countries = append(countries, rec.OriginCountry, rec.DestinationCountry)
	}
	return pkgstrings.DedupeSorted(countries), nil
}

func containsFold(hay, needle string) bool {
	return strings.Contains(strings.ToLower(hay), strings.ToLower(needle))
}
