package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func definitionFor(t *testing.T, code string) WidgetDefinition {
	t.Helper()
	def, ok := NewRegistry().Definition(code)
	require.True(t, ok, code)
	return def
}

func TestJSONSchemaValidatorPageSizeEnum(t *testing.T) {
	t.Parallel()
	validator := NewJSONSchemaValidator()
	def := definitionFor(t, WidgetTable)
	for _, size := range []int{5, 10, 20, 30, 40, 50} {
		assert.NoError(t, validator.Validate(def, map[string]any{"table": TableOrders, "page_size": size}), size)
	}
	assert.Error(t, validator.Validate(def, map[string]any{"table": TableOrders, "page_size": 25}))
	assert.Error(t, validator.Validate(def, map[string]any{"table": "invoices"}))
	assert.Error(t, validator.Validate(def, map[string]any{}))
	assert.Error(t, validator.Validate(def, map[string]any{"table": TableOrders, "color": "red"}))
}

func TestJSONSchemaValidatorRequiredSeller(t *testing.T) {
	t.Parallel()
	validator := NewJSONSchemaValidator()
	def := definitionFor(t, WidgetSellerProfile)
	assert.Error(t, validator.Validate(def, nil))
	assert.NoError(t, validator.Validate(def, map[string]any{"seller_id": "SEL-101"}))
}

func TestJSONSchemaValidatorSkipsSchemaless(t *testing.T) {
	t.Parallel()
	assert.NoError(t, NewJSONSchemaValidator().Validate(WidgetDefinition{Code: "free"}, map[string]any{"x": 1}))
}

func TestDefaultLayoutIsValid(t *testing.T) {
	t.Parallel()
	require.NoError(t, DefaultLayout().Validate())
	assert.NoError(t, ValidateLayout(DefaultLayout(), NewRegistry(), nil))
}
