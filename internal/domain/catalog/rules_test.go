package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

func validCreateInput() Input {
	return Input{
		"category":              "reptiles",
		"type":                  "snake",
		"name":                  "Ball Python",
		"description":           "A calm and docile snake for beginners.",
		"price":                 "129.90",
		"stock":                 "4",
		"species":               "Python regius",
		"requiresCertification": "true",
		"dimensionsMax":         "120",
		"dimensionsUnit":        "cm",
		"specification":         "terrarium length",
		"specificationUnit":     "cm",
	}
}

func violationKinds(violations []FieldViolation) []ViolationKind {
	kinds := make([]ViolationKind, 0, len(violations))
	for _, v := range violations {
		kinds = append(kinds, v.Kind)
	}
	return kinds
}

func TestValidateFieldsCreateValid(t *testing.T) {
	values, violations := ValidateFields(CreateRules(testNow), validCreateInput())
	require.Empty(t, violations)

	assert.Equal(t, "reptiles", values["category"])
	assert.Equal(t, 129.90, values["price"])
	assert.Equal(t, int64(4), values["stock"])
	assert.Equal(t, true, values["requiresCertification"])
	assert.NotContains(t, values, "gender")
	assert.NotContains(t, values, "race")
}

func TestValidateFieldsCreateOptionalFields(t *testing.T) {
	in := validCreateInput()
	in["gender"] = "f"
	in["race"] = "royal"
	in["birth"] = "2021"
	in["specificationValue"] = "0.8"

	values, violations := ValidateFields(CreateRules(testNow), in)
	require.Empty(t, violations)
	assert.Equal(t, "f", values["gender"])
	assert.Equal(t, int64(2021), values["birth"])
	assert.Equal(t, 0.8, values["specificationValue"])
}

func TestValidateFieldsCreateMissingRequired(t *testing.T) {
	in := validCreateInput()
	delete(in, "category")
	delete(in, "price")
	in["stock"] = "" // empty counts as absent

	_, violations := ValidateFields(CreateRules(testNow), in)
	assert.ElementsMatch(t,
		[]ViolationKind{ViolationInvalidCategory, ViolationInvalidPrice, ViolationInvalidStock},
		violationKinds(violations),
	)
}

func TestValidateFieldsCreateBadValues(t *testing.T) {
	tests := []struct {
		name  string
		field string
		value string
		want  ViolationKind
	}{
		{"price zero", "price", "0", ViolationInvalidPrice},
		{"price above cap", "price", "10000.01", ViolationInvalidPrice},
		{"price not numeric", "price", "cheap", ViolationInvalidPrice},
		{"stock negative", "stock", "-1", ViolationInvalidStock},
		{"stock fractional", "stock", "1.5", ViolationInvalidStock},
		{"gender out of enum", "gender", "x", ViolationInvalidGender},
		{"gender too long", "gender", "female", ViolationInvalidGender},
		{"birth before 2010", "birth", "2009", ViolationInvalidBirth},
		{"birth in the future", "birth", "2025", ViolationInvalidBirth},
		{"certification not boolean", "requiresCertification", "maybe", ViolationInvalidRequiresCertification},
		{"dimensions zero", "dimensionsMax", "0", ViolationInvalidDimensionsMax},
		{"dimensions unit too long", "dimensionsUnit", "centimeters", ViolationInvalidDimensionsUnit},
		{"specification value zero", "specificationValue", "0", ViolationInvalidSpecificationValue},
		{"specification unit too long", "specificationUnit", "inch", ViolationInvalidSpecificationUnit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validCreateInput()
			in[tt.field] = tt.value
			_, violations := ValidateFields(CreateRules(testNow), in)
			assert.Equal(t, []ViolationKind{tt.want}, violationKinds(violations))
		})
	}
}

func TestValidateFieldsCreateTooLong(t *testing.T) {
	long := func(n int) string {
		b := make([]byte, n)
		for i := range b {
			b[i] = 'a'
		}
		return string(b)
	}

	in := validCreateInput()
	in["category"] = long(51)
	in["type"] = long(101)
	in["name"] = long(256)
	in["species"] = long(201)
	in["race"] = long(201)
	in["specification"] = long(51)

	_, violations := ValidateFields(CreateRules(testNow), in)
	assert.ElementsMatch(t,
		[]ViolationKind{
			ViolationInvalidCategory, ViolationInvalidType, ViolationInvalidName,
			ViolationInvalidSpecies, ViolationInvalidRace, ViolationInvalidSpecification,
		},
		violationKinds(violations),
	)
}

func TestValidateFieldsUpdatePartial(t *testing.T) {
	// Only supplied fields are validated: a payload touching just the price
	// must not trip required checks on everything else.
	values, violations := ValidateFields(UpdateRules(testNow), Input{"price": "49.50"})
	require.Empty(t, violations)
	assert.Equal(t, map[string]any{"price": 49.50}, values)
}

func TestValidateFieldsUpdateEmpty(t *testing.T) {
	values, violations := ValidateFields(UpdateRules(testNow), Input{})
	assert.Empty(t, violations)
	assert.Empty(t, values)
}

func TestValidateFieldsUpdateMinLengths(t *testing.T) {
	// Minimum lengths only bite on update, and only for supplied fields.
	tests := []struct {
		field string
		value string
		want  ViolationKind
	}{
		{"category", "cats", ViolationInvalidCategory},       // < 6
		{"type", "cat", ViolationInvalidType},                // < 4
		{"name", "Bo", ViolationInvalidName},                 // < 3
		{"description", "too short", ViolationInvalidDescription}, // < 10
		{"species", "ab", ViolationInvalidSpecies},           // < 3
	}
	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			_, violations := ValidateFields(UpdateRules(testNow), Input{tt.field: tt.value})
			assert.Equal(t, []ViolationKind{tt.want}, violationKinds(violations))
		})
	}

	// The same short category is fine on create, where no minimum applies.
	in := validCreateInput()
	in["category"] = "cats"
	_, violations := ValidateFields(CreateRules(testNow), in)
	assert.Empty(t, violations)
}

func TestRuleValidateIdempotent(t *testing.T) {
	rule := CreateRules(testNow)["price"]
	for i := 0; i < 3; i++ {
		v, violation := rule.Validate("12.5", true)
		assert.Nil(t, violation)
		assert.Equal(t, 12.5, v)
	}
}
