package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"tradeintel/internal/search/models"
	"tradeintel/internal/search/query"
	pkgstrings "tradeintel/pkg/platform/strings"
)

// PostgresStore reads shipment and company rows from PostgreSQL. The store is
// read-only; ingestion happens outside this service.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed shipment store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Search runs the primary page query and the exact-count query compiled from
// the criteria. The count is independent of the page window.
func (s *PostgresStore) Search(ctx context.Context, c models.FilterCriteria) ([]models.ShipmentRecord, int, error) {
	selectSQL, selectArgs := query.BuildSelect(c)
	rows, err := s.db.QueryContext(ctx, selectSQL, selectArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("search shipments: %w", err)
	}
	defer rows.Close()

	page := []models.ShipmentRecord{}
	for rows.Next() {
		rec, err := scanShipment(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan shipment: %w", err)
		}
		page = append(page, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("search shipments: %w", err)
	}

	countSQL, countArgs := query.BuildCount(c)
	var total int
	if err := s.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count shipments: %w", err)
	}
	return page, total, nil
}

// Summarize aggregates the population selected by the criteria.
func (s *PostgresStore) Summarize(ctx context.Context, c models.FilterCriteria) (models.Summary, error) {
	summarySQL, args := query.BuildSummary(c)
	var summary models.Summary
	err := s.db.QueryRowContext(ctx, summarySQL, args...).
		Scan(&summary.AirCount, &summary.OceanCount, &summary.TotalValue)
	if err != nil {
		return models.Summary{}, fmt.Errorf("summarize shipments: %w", err)
	}
	return summary, nil
}

const companiesSQL = "SELECT id, name, country, industry, shipment_count " +
	"FROM companies WHERE name ILIKE $1 ORDER BY name ASC LIMIT $2"

// Companies returns company rows whose name contains q, name-ascending.
func (s *PostgresStore) Companies(ctx context.Context, q string, limit int) ([]models.Company, error) {
	pattern := "%" + escapeLike(q) + "%"
	rows, err := s.db.QueryContext(ctx, companiesSQL, pattern, limit)
	if err != nil {
		return nil, fmt.Errorf("search companies: %w", err)
	}
	defer rows.Close()

	companies := []models.Company{}
	for rows.Next() {
		var (
			company models.Company
			country sql.NullString
			indus   sql.NullString
			count   sql.NullInt64
		)
		if err := rows.Scan(&company.ID, &company.Name, &country, &indus, &count); err != nil {
			return nil, fmt.Errorf("scan company: %w", err)
		}
		company.Country = country.String
		company.Industry = indus.String
		company.ShipmentCount = int(count.Int64)
		companies = append(companies, company)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("search companies: %w", err)
	}
	return companies, nil
}

const countriesSQL = "SELECT origin_country FROM shipments " +
	"UNION SELECT destination_country FROM shipments"

// Countries scans the distinct union of origin and destination countries.
// The scan is unbounded by filters and runs on every call; the Redis cache
// wrapper keeps it off the hot path when configured.
func (s *PostgresStore) Countries(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, countriesSQL)
	if err != nil {
		return nil, fmt.Errorf("list countries: %w", err)
	}
	defer rows.Close()

	var countries []string
	for rows.Next() {
		var country sql.NullString
		if err := rows.Scan(&country); err != nil {
			return nil, fmt.Errorf("scan country: %w", err)
		}
		if country.Valid {
			countries = append(countries, country.String)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list countries: %w", err)
	}
	return pkgstrings.DedupeSorted(countries), nil
}

// scanShipment is the normalization projection: every nullable column defaults
// so the record always carries every field.
func scanShipment(rows *sql.Rows) (models.ShipmentRecord, error) {
	var (
		rec       models.ShipmentRecord
		date      sql.NullTime
		company   sql.NullString
		origin    sql.NullString
		dest      sql.NullString
		city      sql.NullString
		hsCode    sql.NullString
		carrier   sql.NullString
		value     sql.NullFloat64
		weight    sql.NullFloat64
		desc      sql.NullString
		commodity sql.NullString
		flag      sql.NullBool
	)
	err := rows.Scan(&rec.ID, &rec.Mode, &date, &company, &origin, &dest, &city,
		&hsCode, &carrier, &value, &weight, &desc, &commodity, &flag)
	if err != nil {
		return models.ShipmentRecord{}, err
	}
	if date.Valid {
		rec.ShipmentDate = date.Time.Format(models.DateLayout)
	}
	rec.CompanyName = company.String
	rec.OriginCountry = origin.String
	rec.DestinationCountry = dest.String
	rec.DestinationCity = city.String
	rec.HSCode = hsCode.String
	rec.Carrier = carrier.String
	rec.ValueUSD = value.Float64
	rec.WeightKG = weight.Float64
	rec.Description = desc.String
	rec.CommodityDescription = commodity.String
	rec.LikelyAirShipper = flag.Bool
	return rec, nil
}

func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
