package catalog

import (
	"errors"
	"time"
)

var (
	ErrNotFound  = errors.New("product not found")
	ErrConflict  = errors.New("product reference already exists")
	ErrForbidden = errors.New("not allowed to manage products")
)

type Product struct {
	ID                    int64     `json:"id"`
	Ref                   string    `json:"ref"`
	Category              string    `json:"category"`
	Type                  string    `json:"type"`
	Name                  string    `json:"name"`
	Description           string    `json:"description"`
	Price                 float64   `json:"price"`
	Stock                 int64     `json:"stock"`
	Gender                *string   `json:"gender,omitempty"`
	Species               string    `json:"species"`
	Race                  *string   `json:"race,omitempty"`
	Birth                 *int64    `json:"birth,omitempty"`
	RequiresCertification bool      `json:"requires_certification"`
	DimensionsMax         float64   `json:"dimensions_max"`
	DimensionsUnit        string    `json:"dimensions_unit"`
	Specification         string    `json:"specification"`
	SpecificationValue    *float64  `json:"specification_value,omitempty"`
	SpecificationUnit     string    `json:"specification_unit"`
	AuthorID              int64     `json:"author_id"`
	IsVisible             bool      `json:"is_visible"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

// Input carries the raw field values of a create or update payload, already
// decoded from the transport. Absent keys mean "not supplied"; on update only
// supplied fields are validated and overwritten.
type Input map[string]string

// ViolationKind names the reason a single field failed validation.
type ViolationKind string

const (
	ViolationInvalidCategory              ViolationKind = "invalid_category"
	ViolationInvalidType                  ViolationKind = "invalid_type"
	ViolationInvalidName                  ViolationKind = "invalid_name"
	ViolationInvalidDescription           ViolationKind = "invalid_description"
	ViolationInvalidPrice                 ViolationKind = "invalid_price"
	ViolationInvalidStock                 ViolationKind = "invalid_stock"
	ViolationInvalidGender                ViolationKind = "invalid_gender"
	ViolationInvalidSpecies               ViolationKind = "invalid_species"
	ViolationInvalidRace                  ViolationKind = "invalid_race"
	ViolationInvalidBirth                 ViolationKind = "invalid_birth"
	ViolationInvalidRequiresCertification ViolationKind = "invalid_requires_certification"
	ViolationInvalidDimensionsMax         ViolationKind = "invalid_dimensions_max"
	ViolationInvalidDimensionsUnit        ViolationKind = "invalid_dimensions_unit"
	ViolationInvalidSpecification         ViolationKind = "invalid_specification"
	ViolationInvalidSpecificationValue    ViolationKind = "invalid_specification_value"
	ViolationInvalidSpecificationUnit     ViolationKind = "invalid_specification_unit"
	ViolationDuplicateReference           ViolationKind = "duplicate_reference"
)

type FieldViolation struct {
	Field string        `json:"field"`
	Kind  ViolationKind `json:"kind"`
}
