package templates

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inferloop/tabsynth/internal/validation"
)

func TestAllTemplatesValidate(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	validator := validation.NewSchemaValidator(logger)

	all := All()
	require.NotEmpty(t, all)

	for name, schema := range all {
		result := validator.ValidateSchema(schema)
		assert.True(t, result.Valid, "template %q: %v", name, result.Errors)
	}
}

func TestNamesSortedAndComplete(t *testing.T) {
	names := Names()

	assert.Len(t, names, len(All()))
	assert.IsIncreasing(t, names)
	assert.Contains(t, names, "customer_database")
	assert.Contains(t, names, "iot_sensor_data")
}

func TestLookup(t *testing.T) {
	schema := Lookup("employee_records")
	require.NotNil(t, schema)
	assert.Equal(t, "Employee Records", schema.Name)
	assert.NotEmpty(t, schema.Fields)

	assert.Nil(t, Lookup("no_such_template"))
}

func TestLookupReturnsFreshCopy(t *testing.T) {
	first := Lookup("customer_database")
	first.Fields[0].Name = "mutated"

	second := Lookup("customer_database")
	assert.NotEqual(t, "mutated", second.Fields[0].Name)
}
