package model

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/pgvector/pgvector-go"
)

// PropertyType classifies a residential parcel.
type PropertyType string

const (
	PropertyTypeSingleFamily PropertyType = "single_family"
	PropertyTypeCondo        PropertyType = "condo"
	PropertyTypeTownhouse    PropertyType = "townhouse"
	PropertyTypeMultiFamily  PropertyType = "multi_family"
	PropertyTypeLand         PropertyType = "land"
	PropertyTypeOther        PropertyType = "other"
)

// TaxStatus is the owner's property-tax standing from public records.
type TaxStatus string

const (
	TaxStatusCurrent    TaxStatus = "current"
	TaxStatusDelinquent TaxStatus = "delinquent"
	TaxStatusUnknown    TaxStatus = "unknown"
)

// ListingStatus is the property's market state.
type ListingStatus string

const (
	ListingStatusOnMarket     ListingStatus = "on_market"
	ListingStatusOffMarket    ListingStatus = "off_market"
	ListingStatusRecentlySold ListingStatus = "recently_sold"
)

// Permit is one building-permit record from public records.
type Permit struct {
	Type        string    `json:"type"`
	Date        time.Time `json:"date"`
	Description string    `json:"description,omitempty"`
	Value       float64   `json:"value,omitempty"`
}

// PropertyRecord represents a physical residential parcel assembled by the
// ingestion pipeline. Optional public-record fields are pointers; nil means
// "unknown", which the scorers treat as a legitimate state, never an error.
type PropertyRecord struct {
	ID            string          `json:"id" db:"id"`
	Address       string          `json:"address" db:"address"`
	City          *string         `json:"city,omitempty" db:"city"`
	State         *string         `json:"state,omitempty" db:"state"`
	Zip           *string         `json:"zip,omitempty" db:"zip"`
	Latitude      float64         `json:"latitude" db:"latitude"`
	Longitude     float64         `json:"longitude" db:"longitude"`
	Bedrooms      *int            `json:"bedrooms,omitempty" db:"bedrooms"`
	Bathrooms     *float64        `json:"bathrooms,omitempty" db:"bathrooms"`
	Sqft          *float64        `json:"sqft,omitempty" db:"sqft"`
	LotSqft       *float64        `json:"lot_sqft,omitempty" db:"lot_sqft"`
	YearBuilt     *int            `json:"year_built,omitempty" db:"year_built"`
	PropertyType  PropertyType    `json:"property_type" db:"property_type"`
	Style         *string         `json:"style,omitempty" db:"style"`
	Features      JSONArray       `json:"features,omitempty" db:"features"`
	LastSaleDate  *time.Time      `json:"last_sale_date,omitempty" db:"last_sale_date"`
	LastSalePrice *float64        `json:"last_sale_price,omitempty" db:"last_sale_price"`
	ListPrice     *float64        `json:"list_price,omitempty" db:"list_price"`
	EstimatedValue *float64       `json:"estimated_value,omitempty" db:"estimated_value"`
	OwnershipYears float64        `json:"ownership_years" db:"ownership_years"`
	AbsenteeOwner  bool           `json:"absentee_owner" db:"absentee_owner"`
	EquityPercent  float64        `json:"equity_percent" db:"equity_percent"`
	TaxStatus      TaxStatus      `json:"tax_status" db:"tax_status"`
	Permits        PermitList     `json:"permits,omitempty" db:"permits"`
	ListingStatus  ListingStatus  `json:"listing_status" db:"listing_status"`
	Embedding      pgvector.Vector `json:"-" db:"embedding"`
	CreatedAt      time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at" db:"updated_at"`
}

// HasLocation reports whether the record carries usable coordinates.
// Ingestion writes (0,0) when geocoding failed; those records are excluded
// from location scoring.
func (p *PropertyRecord) HasLocation() bool {
	return p.Latitude != 0 || p.Longitude != 0
}

// Price returns the best available price signal: the listing price when
// present, otherwise the estimated value. Nil when neither exists.
func (p *PropertyRecord) Price() *float64 {
	if p.ListPrice != nil {
		return p.ListPrice
	}
	return p.EstimatedValue
}

// PermitList is a JSONB-backed list of permit records.
type PermitList []Permit

// Value implements driver.Valuer interface
func (l PermitList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner interface
func (l *PermitList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return json.Unmarshal([]byte(value.(string)), l)
	}
	return json.Unmarshal(bytes, l)
}

// JSONArray represents a JSON array field
type JSONArray []string

// Value implements driver.Valuer interface
func (j JSONArray) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

// Scan implements sql.Scanner interface
func (j *JSONArray) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return json.Unmarshal([]byte(value.(string)), j)
	}
	return json.Unmarshal(bytes, j)
}
