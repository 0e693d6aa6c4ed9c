package synthesis

import (
	"io"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inferloop/tabsynth/pkg/models"
)

func newTestEngine() *Engine {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewEngine(logger)
}

func customerSchema() *models.Schema {
	return &models.Schema{
		Name: "customers",
		Fields: []models.FieldSpec{
			{Name: "id", Type: models.FieldTypeInteger, Subtype: "id", Constraints: models.Constraints{Unique: true}},
			{Name: "name", Type: models.FieldTypeText, Subtype: "name"},
			{Name: "email", Type: models.FieldTypeText, Subtype: "email"},
			{Name: "age", Type: models.FieldTypeInteger, Subtype: "age", Constraints: models.Constraints{
				MinVal: models.Float(18),
				MaxVal: models.Float(80),
			}},
		},
	}
}

func TestGenerateBasicRun(t *testing.T) {
	engine := newTestEngine()

	dataset, err := engine.Generate(&models.GenerationRequest{
		Schema: customerSchema(),
		Rows:   100,
		Seed:   42,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, dataset.ID)
	assert.Equal(t, "customers", dataset.SchemaName)
	assert.Equal(t, []string{"id", "name", "email", "age"}, dataset.FieldOrder)
	assert.Equal(t, int64(42), dataset.Seed)
	assert.Equal(t, models.PrivacyLevelLow, dataset.PrivacyLevel)
	assert.Len(t, dataset.Records, 100)

	for _, record := range dataset.Records {
		require.Len(t, record, 4)
		age := record["age"].(int)
		assert.GreaterOrEqual(t, age, 18)
		assert.LessOrEqual(t, age, 80)
	}
}

func TestGenerateDeterministicForSeed(t *testing.T) {
	engine := newTestEngine()

	req := func() *models.GenerationRequest {
		return &models.GenerationRequest{Schema: customerSchema(), Rows: 50, Seed: 7}
	}

	first, err := engine.Generate(req())
	require.NoError(t, err)
	second, err := engine.Generate(req())
	require.NoError(t, err)

	assert.Equal(t, first.Records, second.Records)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestGenerateDifferentSeedsDiffer(t *testing.T) {
	engine := newTestEngine()

	first, err := engine.Generate(&models.GenerationRequest{Schema: customerSchema(), Rows: 50, Seed: 1})
	require.NoError(t, err)
	second, err := engine.Generate(&models.GenerationRequest{Schema: customerSchema(), Rows: 50, Seed: 2})
	require.NoError(t, err)

	assert.NotEqual(t, first.Records, second.Records)
}

func TestGenerateValidatesRequest(t *testing.T) {
	engine := newTestEngine()

	_, err := engine.Generate(nil)
	assert.Error(t, err)

	_, err = engine.Generate(&models.GenerationRequest{Schema: customerSchema(), Rows: 0})
	assert.Error(t, err)

	_, err = engine.Generate(&models.GenerationRequest{
		Schema: &models.Schema{Name: "empty"},
		Rows:   10,
	})
	assert.Error(t, err)

	_, err = engine.Generate(&models.GenerationRequest{
		Schema:       customerSchema(),
		Rows:         10,
		PrivacyLevel: "extreme",
	})
	assert.Error(t, err)
}

func TestGenerateUnknownSubtypeFailsRun(t *testing.T) {
	engine := newTestEngine()

	schema := &models.Schema{
		Name: "bad",
		Fields: []models.FieldSpec{
			{Name: "x", Type: models.FieldTypeText, Subtype: "telepathy"},
		},
	}

	_, err := engine.Generate(&models.GenerationRequest{Schema: schema, Rows: 10, Seed: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"x"`)
}

func TestGenerateUniqueShrinksDataset(t *testing.T) {
	engine := newTestEngine()

	// 100 unique draws from a 10-value range cannot exceed 10 records.
	schema := &models.Schema{
		Name: "narrow",
		Fields: []models.FieldSpec{
			{Name: "code", Type: models.FieldTypeInteger, Subtype: "integer", Constraints: models.Constraints{
				MinVal: models.Float(1),
				MaxVal: models.Float(10),
				Unique: true,
			}},
			{Name: "label", Type: models.FieldTypeText, Subtype: "company"},
		},
	}

	dataset, err := engine.Generate(&models.GenerationRequest{Schema: schema, Rows: 100, Seed: 3})
	require.NoError(t, err)

	assert.LessOrEqual(t, len(dataset.Records), 10)
	assert.NotEmpty(t, dataset.Records)

	seen := map[interface{}]bool{}
	for _, record := range dataset.Records {
		code := record["code"]
		assert.False(t, seen[code], "code %v appears twice", code)
		seen[code] = true
	}
}

func TestGenerateMissingPercentage(t *testing.T) {
	engine := newTestEngine()

	dataset, err := engine.Generate(&models.GenerationRequest{
		Schema:            customerSchema(),
		Rows:              100,
		Seed:              5,
		MissingPercentage: 20,
	})
	require.NoError(t, err)

	withNil := 0
	for _, record := range dataset.Records {
		for _, v := range record {
			if v == nil {
				withNil++
				break
			}
		}
	}
	assert.Equal(t, 20, withNil)
}

func TestGenerateDuplicatePercentage(t *testing.T) {
	engine := newTestEngine()

	schema := &models.Schema{
		Name: "simple",
		Fields: []models.FieldSpec{
			{Name: "word", Type: models.FieldTypeText, Subtype: "company"},
		},
	}

	dataset, err := engine.Generate(&models.GenerationRequest{
		Schema:              schema,
		Rows:                100,
		Seed:                5,
		DuplicatePercentage: 10,
	})
	require.NoError(t, err)

	assert.Len(t, dataset.Records, 110)
}

func TestGenerateMediumPrivacyMasksEmail(t *testing.T) {
	engine := newTestEngine()

	dataset, err := engine.Generate(&models.GenerationRequest{
		Schema:       customerSchema(),
		Rows:         50,
		Seed:         11,
		PrivacyLevel: models.PrivacyLevelMedium,
	})
	require.NoError(t, err)
	assert.Equal(t, models.PrivacyLevelMedium, dataset.PrivacyLevel)

	for _, record := range dataset.Records {
		email := record["email"].(string)
		at := strings.Index(email, "@")
		require.Greater(t, at, 0)
		local := email[:at]
		if len(local) > 1 {
			assert.Equal(t, strings.Repeat("*", len(local)-1), local[1:])
		}
	}
}

func TestGenerateHighPrivacyPseudonymizesNames(t *testing.T) {
	engine := newTestEngine()

	dataset, err := engine.Generate(&models.GenerationRequest{
		Schema:       customerSchema(),
		Rows:         50,
		Seed:         13,
		PrivacyLevel: models.PrivacyLevelHigh,
	})
	require.NoError(t, err)

	for _, record := range dataset.Records {
		assert.Regexp(t, `^Person \d+$`, record["name"])
		assert.Regexp(t, `^user\d+@example\.com$`, record["email"])
	}
}

func TestAnonymizeKeyDispatch(t *testing.T) {
	email := models.FieldSpec{Name: "e", Type: models.FieldTypeText, Subtype: "email"}
	assert.Equal(t, "email", anonymizeKey(email))

	salary := models.FieldSpec{Name: "s", Type: models.FieldTypeFloat, Subtype: "salary"}
	assert.Equal(t, "float", anonymizeKey(salary))

	word := models.FieldSpec{Name: "w", Type: models.FieldTypeText, Subtype: "word"}
	assert.Equal(t, "text", anonymizeKey(word))
}

func TestGenerateOutliersOnlyTouchNumericFields(t *testing.T) {
	engine := newTestEngine()

	schema := &models.Schema{
		Name: "mixed",
		Fields: []models.FieldSpec{
			{Name: "qty", Type: models.FieldTypeInteger, Subtype: "integer", Constraints: models.Constraints{
				MinVal: models.Float(50),
				MaxVal: models.Float(60),
			}},
			{Name: "word", Type: models.FieldTypeText, Subtype: "company"},
		},
	}

	dataset, err := engine.Generate(&models.GenerationRequest{
		Schema:            schema,
		Rows:              100,
		Seed:              17,
		OutlierPercentage: 10,
	})
	require.NoError(t, err)

	outliers := 0
	for _, record := range dataset.Records {
		qty := record["qty"].(int)
		if qty < 50 || qty > 60 {
			outliers++
		}
		_, ok := record["word"].(string)
		assert.True(t, ok)
	}
	assert.Equal(t, 10, outliers)
}
