package catalog

import (
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// FieldKind is the target type a raw value must coerce to.
type FieldKind int

const (
	KindString FieldKind = iota
	KindInt
	KindFloat
	KindBool
)

// Rule declares how one field is validated. The same interpreter handles the
// create and update tables; they only differ in Required and length bounds.
type Rule struct {
	Field     string
	Kind      FieldKind
	Violation ViolationKind
	Required  bool
	MinLen    int // strings only; 0 means no lower bound
	MaxLen    int // strings only; 0 means no upper bound
	Min       *float64
	Max       *float64
	Positive  bool // numeric must be strictly greater than zero
	Enum      []string
}

// Validate checks one raw field value against the rule. present is false when
// the payload did not carry the field at all. The returned value is the typed
// value (string, int64, float64, bool) or nil when the field was absent and
// optional. Validate never mutates anything and is idempotent.
func (r Rule) Validate(raw string, present bool) (any, *FieldViolation) {
	if !present || raw == "" {
		if r.Required {
			return nil, &FieldViolation{Field: r.Field, Kind: r.Violation}
		}
		return nil, nil
	}

	switch r.Kind {
	case KindString:
		return r.validateString(raw)
	case KindInt:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || !r.inRange(float64(n)) {
			return nil, &FieldViolation{Field: r.Field, Kind: r.Violation}
		}
		return n, nil
	case KindFloat:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil || !r.inRange(f) {
			return nil, &FieldViolation{Field: r.Field, Kind: r.Violation}
		}
		return f, nil
	case KindBool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, &FieldViolation{Field: r.Field, Kind: r.Violation}
		}
		return b, nil
	}
	return nil, &FieldViolation{Field: r.Field, Kind: r.Violation}
}

func (r Rule) validateString(raw string) (any, *FieldViolation) {
	n := utf8.RuneCountInString(raw)
	if r.MinLen > 0 && n < r.MinLen {
		return nil, &FieldViolation{Field: r.Field, Kind: r.Violation}
	}
	if r.MaxLen > 0 && n > r.MaxLen {
		return nil, &FieldViolation{Field: r.Field, Kind: r.Violation}
	}
	if len(r.Enum) > 0 {
		ok := false
		for _, v := range r.Enum {
			if raw == v {
				ok = true
				break
			}
		}
		if !ok {
			return nil, &FieldViolation{Field: r.Field, Kind: r.Violation}
		}
	}
	return raw, nil
}

func (r Rule) inRange(f float64) bool {
	if r.Positive && f <= 0 {
		return false
	}
	if r.Min != nil && f < *r.Min {
		return false
	}
	if r.Max != nil && f > *r.Max {
		return false
	}
	return true
}

// fieldOrder keeps validation output deterministic.
var fieldOrder = []string{
	"category", "type", "name", "description", "price", "stock",
	"gender", "species", "race", "birth", "requiresCertification",
	"dimensionsMax", "dimensionsUnit", "specification",
	"specificationValue", "specificationUnit",
}

func fptr(f float64) *float64 { return &f }

// CreateRules is the full-payload table: every field required except gender,
// race, birth and specificationValue.
func CreateRules(now time.Time) map[string]Rule {
	return ruleTable(now, true)
}

// UpdateRules is the partial-payload table: nothing is required, and the
// minimum-length bounds only apply when the field is actually supplied.
func UpdateRules(now time.Time) map[string]Rule {
	return ruleTable(now, false)
}

func ruleTable(now time.Time, create bool) map[string]Rule {
	minLen := func(n int) int {
		if create {
			return 0
		}
		return n
	}
	required := func(field Rule) Rule {
		field.Required = create
		return field
	}

	rules := map[string]Rule{
		"category": required(Rule{
			Field: "category", Kind: KindString, Violation: ViolationInvalidCategory,
			MinLen: minLen(6), MaxLen: 50,
		}),
		"type": required(Rule{
			Field: "type", Kind: KindString, Violation: ViolationInvalidType,
			MinLen: minLen(4), MaxLen: 100,
		}),
		"name": required(Rule{
			Field: "name", Kind: KindString, Violation: ViolationInvalidName,
			MinLen: minLen(3), MaxLen: 255,
		}),
		"description": required(Rule{
			Field: "description", Kind: KindString, Violation: ViolationInvalidDescription,
			MinLen: minLen(10),
		}),
		"price": required(Rule{
			Field: "price", Kind: KindFloat, Violation: ViolationInvalidPrice,
			Positive: true, Max: fptr(10000),
		}),
		"stock": required(Rule{
			Field: "stock", Kind: KindInt, Violation: ViolationInvalidStock,
			Min: fptr(0),
		}),
		"gender": {
			Field: "gender", Kind: KindString, Violation: ViolationInvalidGender,
			Enum: []string{"f", "m"},
		},
		"species": required(Rule{
			Field: "species", Kind: KindString, Violation: ViolationInvalidSpecies,
			MinLen: minLen(3), MaxLen: 200,
		}),
		"race": {
			Field: "race", Kind: KindString, Violation: ViolationInvalidRace,
			MaxLen: 200,
		},
		"birth": {
			Field: "birth", Kind: KindInt, Violation: ViolationInvalidBirth,
			Min: fptr(2010), Max: fptr(float64(now.Year())),
		},
		"requiresCertification": required(Rule{
			Field: "requiresCertification", Kind: KindBool,
			Violation: ViolationInvalidRequiresCertification,
		}),
		"dimensionsMax": required(Rule{
			Field: "dimensionsMax", Kind: KindFloat, Violation: ViolationInvalidDimensionsMax,
			Positive: true, Max: fptr(10000),
		}),
		"dimensionsUnit": required(Rule{
			Field: "dimensionsUnit", Kind: KindString, Violation: ViolationInvalidDimensionsUnit,
			MaxLen: 10,
		}),
		"specification": required(Rule{
			Field: "specification", Kind: KindString, Violation: ViolationInvalidSpecification,
			MaxLen: 50,
		}),
		"specificationValue": {
			Field: "specificationValue", Kind: KindFloat,
			Violation: ViolationInvalidSpecificationValue, Positive: true,
		},
		"specificationUnit": required(Rule{
			Field: "specificationUnit", Kind: KindString, Violation: ViolationInvalidSpecificationUnit,
			MaxLen: 3,
		}),
	}
	return rules
}

// ValidateFields runs every rule of the table against the payload, collecting
// the full violation set instead of stopping at the first failure. The
// returned map holds the typed values of the fields that validated cleanly.
func ValidateFields(rules map[string]Rule, in Input) (map[string]any, []FieldViolation) {
	values := make(map[string]any, len(in))
	var violations []FieldViolation

	for _, field := range fieldOrder {
		rule, ok := rules[field]
		if !ok {
			continue
		}
		raw, present := in[field]
		raw = strings.TrimSpace(raw)
		v, violation := rule.Validate(raw, present)
		if violation != nil {
			violations = append(violations, *violation)
			continue
		}
		if v != nil {
			values[field] = v
		}
	}
	return values, violations
}
