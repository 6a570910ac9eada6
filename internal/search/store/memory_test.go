package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"tradeintel/internal/search/models"
)

type MemoryStoreSuite struct {
	suite.Suite
	store *InMemory
	ctx   context.Context
}

func (s *MemoryStoreSuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
	s.store.SeedShipments(fixtureShipments())
	s.store.SeedCompanies(fixtureCompanies())
}

func TestMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(MemoryStoreSuite))
}

func fixtureShipments() []models.ShipmentRecord {
	return []models.ShipmentRecord{
		{
			ID: "sh-1", Mode: models.ModeAir, ShipmentDate: "2024-03-10",
			CompanyName: "Acme Electronics", OriginCountry: "China", DestinationCountry: "USA",
			DestinationCity: "Los Angeles", HSCode: "847130", Carrier: "Cathay Cargo",
			ValueUSD: 20000, Description: "laptops", LikelyAirShipper: true,
		},
		{
			ID: "sh-2", Mode: models.ModeOcean, ShipmentDate: "2024-05-01",
			CompanyName: "Baltic Traders", OriginCountry: "Germany", DestinationCountry: "USA",
			DestinationCity: "Newark", HSCode: "940360", Carrier: "Maersk",
			ValueUSD: 8000, Description: "wooden furniture",
		},
		{
			ID: "sh-3", Mode: models.ModeOcean, ShipmentDate: "2024-01-20",
			CompanyName: "Baltic Traders", OriginCountry: "Germany", DestinationCountry: "Brazil",
			DestinationCity: "Santos", HSCode: "940161", Carrier: "Hapag-Lloyd",
			ValueUSD: 3000, Description: "office chairs",
		},
		{
			ID: "sh-4", Mode: models.ModeOcean, ShipmentDate: "2024-04-12",
			CompanyName: "Pampas Exports", OriginCountry: "Argentina", DestinationCountry: "China",
			DestinationCity: "Shanghai", HSCode: "020130", Carrier: "MSC",
			ValueUSD: 15000, CommodityDescription: "frozen beef cuts",
		},
		{
			// No shipment date; must sort after every dated record.
			ID: "sh-5", Mode: models.ModeAir,
			CompanyName: "Acme Electronics", OriginCountry: "China", DestinationCountry: "Germany",
			DestinationCity: "Frankfurt", HSCode: "851762", Carrier: "Lufthansa Cargo",
			ValueUSD: 5000, Description: "network routers", LikelyAirShipper: true,
		},
	}
}

func fixtureCompanies() []models.Company {
	return []models.Company{
		{ID: "co-1", Name: "Acme Electronics", Country: "China", Industry: "Electronics", ShipmentCount: 42},
		{ID: "co-2", Name: "Baltic Traders", Country: "Germany", Industry: "Furniture", ShipmentCount: 17},
		{ID: "co-3", Name: "Pampas Exports", Country: "Argentina", Industry: "Agriculture", ShipmentCount: 9},
	}
}

// TestSearchFiltering verifies predicate semantics against the seeded records.
func (s *MemoryStoreSuite) TestSearchFiltering() {
	s.Run("no filters returns everything", func() {
		page, total, err := s.store.Search(s.ctx, models.FilterCriteria{Limit: 25})
		s.Require().NoError(err)
		s.Equal(5, total)
		s.Len(page, 5)
	})

	s.Run("free text matches description and commodity description", func() {
		page, total, err := s.store.Search(s.ctx, models.FilterCriteria{Query: "beef", Limit: 25})
		s.Require().NoError(err)
		s.Equal(1, total)
		s.Equal("sh-4", page[0].ID)
	})

	s.Run("mode and value range combine conjunctively", func() {
		min := 5000.0
		_, total, err := s.store.Search(s.ctx, models.FilterCriteria{
			Mode: models.ModeOcean, MinValue: &min, Limit: 25,
		})
		s.Require().NoError(err)
		s.Equal(2, total)
	})

	s.Run("hs code prefix", func() {
		_, total, err := s.store.Search(s.ctx, models.FilterCriteria{HSCode: "9401", Limit: 25})
		s.Require().NoError(err)
		s.Equal(1, total)
	})

	s.Run("no matches is an empty page, not an error", func() {
		page, total, err := s.store.Search(s.ctx, models.FilterCriteria{Query: "zeppelin", Limit: 25})
		s.Require().NoError(err)
		s.Zero(total)
		s.NotNil(page)
		s.Empty(page)
	})
}

// TestSearchOrdering verifies descending date order with undated records last.
func (s *MemoryStoreSuite) TestSearchOrdering() {
	page, _, err := s.store.Search(s.ctx, models.FilterCriteria{Limit: 25})
	s.Require().NoError(err)
	s.Require().Len(page, 5)

	ids := make([]string, 0, len(page))
	for _, rec := range page {
		ids = append(ids, rec.ID)
	}
	s.Equal([]string{"sh-2", "sh-4", "sh-1", "sh-3", "sh-5"}, ids)
}

// TestSearchPagination verifies window slicing and the exact total.
func (s *MemoryStoreSuite) TestSearchPagination() {
	s.Run("window honors limit and offset", func() {
		page, total, err := s.store.Search(s.ctx, models.FilterCriteria{Limit: 2, Offset: 1})
		s.Require().NoError(err)
		s.Equal(5, total)
		s.Require().Len(page, 2)
		s.Equal("sh-4", page[0].ID)
		s.Equal("sh-1", page[1].ID)
	})

	s.Run("final partial page", func() {
		page, total, err := s.store.Search(s.ctx, models.FilterCriteria{Limit: 3, Offset: 3})
		s.Require().NoError(err)
		s.Equal(5, total)
		s.Len(page, 2)
	})

	s.Run("offset beyond total is empty with the true total", func() {
		page, total, err := s.store.Search(s.ctx, models.FilterCriteria{Limit: 25, Offset: 100})
		s.Require().NoError(err)
		s.Equal(5, total)
		s.Empty(page)
	})
}

// TestSummarize verifies the per-mode counts and value total.
func (s *MemoryStoreSuite) TestSummarize() {
	s.Run("whole population", func() {
		summary, err := s.store.Summarize(s.ctx, models.FilterCriteria{})
		s.Require().NoError(err)
		s.Equal(2, summary.AirCount)
		s.Equal(3, summary.OceanCount)
		s.Equal(51000.0, summary.TotalValue)
	})

	s.Run("filtered population", func() {
		summary, err := s.store.Summarize(s.ctx, models.FilterCriteria{OriginCountry: "Germany"})
		s.Require().NoError(err)
		s.Zero(summary.AirCount)
		s.Equal(2, summary.OceanCount)
		s.Equal(11000.0, summary.TotalValue)
	})
}

// TestCompanies verifies substring lookup with name-ascending order.
func (s *MemoryStoreSuite) TestCompanies() {
	s.Run("substring match folds case", func() {
		companies, err := s.store.Companies(s.ctx, "baltic", 25)
		s.Require().NoError(err)
		s.Require().Len(companies, 1)
		s.Equal("Baltic Traders", companies[0].Name)
		s.Equal(17, companies[0].ShipmentCount)
	})

	s.Run("empty query lists all in name order", func() {
		companies, err := s.store.Companies(s.ctx, "", 25)
		s.Require().NoError(err)
		s.Require().Len(companies, 3)
		s.Equal("Acme Electronics", companies[0].Name)
		s.Equal("Pampas Exports", companies[2].Name)
	})

	s.Run("limit truncates", func() {
		companies, err := s.store.Companies(s.ctx, "", 2)
		s.Require().NoError(err)
		s.Len(companies, 2)
	})
}

// TestCountries verifies the deduplicated sorted union of both country columns.
func (s *MemoryStoreSuite) TestCountries() {
	countries, err := s.store.Countries(s.ctx)
	s.Require().NoError(err)
	s.Equal([]string{"Argentina", "Brazil", "China", "Germany", "USA"}, countries)
}
