package main

import (
	"net/http/httptest"
	"strings"
	"testing"

	"petshop/internal/domain/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeProductInput(t *testing.T) {
	body := `{
		"category": "reptiles",
		"price": 129.9,
		"stock": 4,
		"requiresCertification": true,
		"race": null
	}`
	r := httptest.NewRequest("POST", "/v1/products", strings.NewReader(body))
	w := httptest.NewRecorder()

	in, err := decodeProductInput(w, r)
	require.NoError(t, err)

	assert.Equal(t, catalog.Input{
		"category":              "reptiles",
		"price":                 "129.9",
		"stock":                 "4",
		"requiresCertification": "true",
	}, in)
	// JSON null means the field was not supplied.
	assert.NotContains(t, in, "race")
}

func TestDecodeProductInputWholeNumbersStayIntegral(t *testing.T) {
	r := httptest.NewRequest("POST", "/v1/products", strings.NewReader(`{"stock": 7}`))
	w := httptest.NewRecorder()

	in, err := decodeProductInput(w, r)
	require.NoError(t, err)
	// 7, not 7.0: the stock rule parses integers.
	assert.Equal(t, "7", in["stock"])
}

func TestViolationKindNames(t *testing.T) {
	names := violationKindNames([]catalog.FieldViolation{
		{Field: "price", Kind: catalog.ViolationInvalidPrice},
		{Field: "name", Kind: catalog.ViolationInvalidName},
	})
	assert.Equal(t, []string{"invalid_price", "invalid_name"}, names)
}
