package validation

import (
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inferloop/tabsynth/pkg/models"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func validSchema() *models.Schema {
	return &models.Schema{
		Name: "orders",
		Fields: []models.FieldSpec{
			{Name: "order_id", Type: models.FieldTypeInteger, Subtype: "id"},
			{Name: "amount", Type: models.FieldTypeFloat, Subtype: "currency", Constraints: models.Constraints{
				MinVal: models.Float(0),
				MaxVal: models.Float(1000),
			}},
			{Name: "placed_at", Type: models.FieldTypeDate, Subtype: "date", Constraints: models.Constraints{
				StartDate: "2023-01-01",
				EndDate:   "2023-12-31",
			}},
		},
	}
}

func TestValidateSchemaAccepts(t *testing.T) {
	v := NewSchemaValidator(testLogger())

	result := v.ValidateSchema(validSchema())

	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)
}

func TestValidateSchemaNil(t *testing.T) {
	v := NewSchemaValidator(testLogger())

	result := v.ValidateSchema(nil)

	assert.False(t, result.Valid)
	assert.Contains(t, result.Errors, "schema is missing")
}

func TestValidateSchemaMissingName(t *testing.T) {
	v := NewSchemaValidator(testLogger())

	schema := validSchema()
	schema.Name = ""
	result := v.ValidateSchema(schema)

	assert.False(t, result.Valid)
	assert.Contains(t, result.Errors, "schema must have a 'name' field")
}

func TestValidateSchemaNoFields(t *testing.T) {
	v := NewSchemaValidator(testLogger())

	result := v.ValidateSchema(&models.Schema{Name: "empty"})

	assert.False(t, result.Valid)
	assert.Contains(t, result.Errors, "schema must have at least one field")
}

func TestValidateSchemaDuplicateFieldNames(t *testing.T) {
	v := NewSchemaValidator(testLogger())

	schema := validSchema()
	schema.Fields = append(schema.Fields, models.FieldSpec{Name: "order_id", Type: models.FieldTypeInteger})
	result := v.ValidateSchema(schema)

	assert.False(t, result.Valid)
	assert.Contains(t, result.Errors, `field 3: duplicate field name "order_id"`)
}

func TestValidateSchemaBadFieldName(t *testing.T) {
	v := NewSchemaValidator(testLogger())

	schema := &models.Schema{
		Name: "bad",
		Fields: []models.FieldSpec{
			{Name: "not a name", Type: models.FieldTypeText, Subtype: "name"},
		},
	}
	result := v.ValidateSchema(schema)

	assert.False(t, result.Valid)
	assert.Contains(t, result.Errors, "field 0: 'name' must be a valid identifier")
}

func TestValidateSchemaUnknownType(t *testing.T) {
	v := NewSchemaValidator(testLogger())

	schema := &models.Schema{
		Name: "bad",
		Fields: []models.FieldSpec{
			{Name: "x", Type: "blob"},
		},
	}
	result := v.ValidateSchema(schema)

	assert.False(t, result.Valid)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "'type' must be one of")
}

func TestValidateSchemaInvertedBounds(t *testing.T) {
	v := NewSchemaValidator(testLogger())

	schema := &models.Schema{
		Name: "bad",
		Fields: []models.FieldSpec{
			{Name: "x", Type: models.FieldTypeInteger, Constraints: models.Constraints{
				MinVal: models.Float(10),
				MaxVal: models.Float(1),
			}},
		},
	}
	result := v.ValidateSchema(schema)

	assert.False(t, result.Valid)
	assert.Contains(t, result.Errors, "field 0: min_val cannot be greater than max_val")
}

func TestValidateSchemaBadDates(t *testing.T) {
	v := NewSchemaValidator(testLogger())

	schema := &models.Schema{
		Name: "bad",
		Fields: []models.FieldSpec{
			{Name: "d", Type: models.FieldTypeDate, Constraints: models.Constraints{
				StartDate: "01/02/2023",
			}},
			{Name: "e", Type: models.FieldTypeDate, Constraints: models.Constraints{
				StartDate: "2023-12-31",
				EndDate:   "2023-01-01",
			}},
		},
	}
	result := v.ValidateSchema(schema)

	assert.False(t, result.Valid)
	assert.Contains(t, result.Errors, "field 0: start_date must be in YYYY-MM-DD format")
	assert.Contains(t, result.Errors, "field 1: start_date cannot be after end_date")
}

func TestValidateSchemaNullPercentageRange(t *testing.T) {
	v := NewSchemaValidator(testLogger())

	schema := &models.Schema{
		Name: "bad",
		Fields: []models.FieldSpec{
			{Name: "x", Type: models.FieldTypeText, Subtype: "name", Constraints: models.Constraints{
				NullPercentage: 150,
			}},
		},
	}
	result := v.ValidateSchema(schema)

	assert.False(t, result.Valid)
	assert.Contains(t, result.Errors, "field 0: null_percentage must be between 0 and 100")
}

func TestValidateDataAccepts(t *testing.T) {
	v := NewDataValidator(testLogger())

	schema := validSchema()
	dataset := &models.Dataset{
		Records: []models.Record{
			{"order_id": 1, "amount": 99.5, "placed_at": time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC)},
			{"order_id": 2, "amount": 10.0, "placed_at": "2023-06-01"},
		},
	}

	result := v.ValidateData(dataset, schema)
	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)
	assert.Empty(t, result.Warnings)
}

func TestValidateDataEmptyDataset(t *testing.T) {
	v := NewDataValidator(testLogger())

	result := v.ValidateData(&models.Dataset{}, validSchema())
	assert.False(t, result.Valid)
	assert.Contains(t, result.Errors, "dataset has no records")
}

func TestValidateDataMissingAndUnexpectedFields(t *testing.T) {
	v := NewDataValidator(testLogger())

	dataset := &models.Dataset{
		Records: []models.Record{
			{"order_id": 1, "amount": 5.0, "placed_at": "2023-06-01", "ghost": true},
			{"order_id": 2, "amount": 5.0},
		},
	}

	result := v.ValidateData(dataset, validSchema())
	assert.False(t, result.Valid)
	assert.Contains(t, result.Errors, `record 0: unexpected field "ghost"`)
	assert.Contains(t, result.Errors, `record 1: missing field "placed_at"`)
}

func TestValidateDataWarnsOnKindAndBounds(t *testing.T) {
	v := NewDataValidator(testLogger())

	dataset := &models.Dataset{
		Records: []models.Record{
			{"order_id": "abc", "amount": 5000.0, "placed_at": "2023-06-01"},
		},
	}

	result := v.ValidateData(dataset, validSchema())
	assert.True(t, result.Valid)
	require.Len(t, result.Warnings, 2)
	assert.Contains(t, result.Warnings[0], "expected integer")
	assert.Contains(t, result.Warnings[1], "above max_val")
}

func TestValidateDataNilValuesPass(t *testing.T) {
	v := NewDataValidator(testLogger())

	dataset := &models.Dataset{
		Records: []models.Record{
			{"order_id": nil, "amount": nil, "placed_at": nil},
		},
	}

	result := v.ValidateData(dataset, validSchema())
	assert.True(t, result.Valid)
	assert.Empty(t, result.Warnings)
}
