package models

// Summary aggregates the population selected by the summary query: record
// counts per mode plus the monetary value total (missing values count as zero).
type Summary struct {
	AirCount   int     `json:"air_count"`
	OceanCount int     `json:"ocean_count"`
	TotalValue float64 `json:"total_value"`
}

// Pagination echoes the effective page window back to the caller.
// HasMore is true iff total > offset + len(data).
type Pagination struct {
	HasMore bool `json:"hasMore"`
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
}

// SearchResponse is the uniform result shape of the search pipeline. Every
// invocation terminates in a well-formed SearchResponse; callers inspect the
// Success flag rather than handling errors. On failure Data is empty, Total is
// zero and Summary is zeroed, so "no results" and "infrastructure failure" are
// indistinguishable from the shape alone.
type SearchResponse struct {
	Success    bool             `json:"success"`
	Data       []ShipmentRecord `json:"data"`
	Total      int              `json:"total"`
	Summary    Summary          `json:"summary"`
	Pagination Pagination       `json:"pagination"`
}

// FailedSearchResponse builds the zeroed failure shape echoing the effective
// page window. Data is non-nil so it encodes as [] rather than null.
func FailedSearchResponse(limit, offset int) SearchResponse {
	return SearchResponse{
		Success: false,
		Data:    []ShipmentRecord{},
		Pagination: Pagination{
			HasMore: false,
			Limit:   limit,
			Offset:  offset,
		},
	}
}
