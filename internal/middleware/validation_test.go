package middleware

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type addLineRequest struct {
	ProductID string `json:"productId" validate:"required,uuid"`
	Size      string `json:"size"`
	Quantity  int    `json:"quantity" validate:"omitempty,gte=1,lte=99"`
}

// A body passes only when every required field is present
func TestProperty_RequiredFieldValidationWorks(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("missing required fields are rejected", prop.ForAll(
		func(includeProduct bool, quantity int) bool {
			body := map[string]interface{}{"size": "42", "quantity": quantity}
			if includeProduct {
				body["productId"] = "9b2f6c1e-8a47-4b7d-9e3c-2d5f1a6b7c8d"
			}
			raw, _ := json.Marshal(body)

			var req addLineRequest
			err := DecodeAndValidate(httptest.NewRequest("POST", "/api/cart/lines", bytes.NewReader(raw)), &req)

			valid := includeProduct && quantity >= 1 && quantity <= 99
			return (err == nil) == valid
		},
		gen.Bool(),
		gen.IntRange(-5, 120).SuchThat(func(n int) bool { return n != 0 }),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestFormatValidationErrors_UsesJSONNames(t *testing.T) {
	var req addLineRequest
	err := DecodeAndValidate(httptest.NewRequest("POST", "/", strings.NewReader(`{"quantity":500}`)), &req)
	require.Error(t, err)

	formatted := FormatValidationErrors(err)

	assert.ElementsMatch(t, []ValidationError{
		{Field: "productId", Message: "This field is required"},
		{Field: "quantity", Message: "Value must be less than or equal to 99"},
	}, formatted)
}

func TestDecodeAndValidate_RejectsMalformedAndUnknownFields(t *testing.T) {
	for _, body := range []string{`{"productId":`, `{"productId":"9b2f6c1e-8a47-4b7d-9e3c-2d5f1a6b7c8d","colour":"red"}`} {
		var req addLineRequest
		err := DecodeAndValidate(httptest.NewRequest("POST", "/", strings.NewReader(body)), &req)
		require.Error(t, err)

		formatted := FormatValidationErrors(err)
		require.Len(t, formatted, 1)
		assert.Equal(t, "body", formatted[0].Field)
	}
}
