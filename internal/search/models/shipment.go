// Package models defines the caller-facing shapes of the search subsystem.
package models

// Transport modes. Mode is one of exactly two values on a record; ModeAll is a
// filter sentinel meaning "do not filter by mode".
const (
	ModeAir   = "air"
	ModeOcean = "ocean"
	ModeAll   = "all"
)

// DateLayout is the wire format for shipment dates.
const DateLayout = "2006-01-02"

// ShipmentRecord is one normalized trade-shipment row exposed to callers.
// Every field is always present in the JSON encoding; store scans default
// missing columns to the zero value so callers are decoupled from schema drift.
// Records are read-only from this subsystem's perspective.
type ShipmentRecord struct {
	ID                   string  `json:"id"`
	Mode                 string  `json:"mode"`
	ShipmentDate         string  `json:"shipment_date"`
	CompanyName          string  `json:"company_name"`
	OriginCountry        string  `json:"origin_country"`
	DestinationCountry   string  `json:"destination_country"`
	DestinationCity      string  `json:"destination_city"`
	HSCode               string  `json:"hs_code"`
	Carrier              string  `json:"carrier"`
	ValueUSD             float64 `json:"value_usd"`
	WeightKG             float64 `json:"weight_kg"`
	Description          string  `json:"description"`
	CommodityDescription string  `json:"commodity_description"`
	LikelyAirShipper     bool    `json:"is_likely_air_shipper"`
}

// Company is one row of the company-name lookup.
type Company struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Country       string `json:"country"`
	Industry      string `json:"industry"`
	ShipmentCount int    `json:"shipment_count"`
}
