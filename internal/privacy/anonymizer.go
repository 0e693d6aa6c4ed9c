package privacy

import (
	"fmt"
	"math"
	"math/rand"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/inferloop/tabsynth/pkg/models"
)

// Anonymizer rewrites whole columns according to a privacy level. Level low
// is identity. Medium masks PII, fuzzes dates by up to 30 days, and perturbs
// numerics by up to 10%. High replaces PII with per-call pseudonyms, widens
// the fuzz to a year and the noise to 20%, and generalizes everything else.
// Nil entries pass through untouched at every level.
type Anonymizer struct {
	logger *logrus.Logger
	rng    *rand.Rand
}

// piiFieldTypes are the field types subject to masking and pseudonymization.
var piiFieldTypes = map[string]bool{
	"email":   true,
	"name":    true,
	"phone":   true,
	"address": true,
}

var nonDigits = regexp.MustCompile(`\D`)

// NewAnonymizer creates an anonymizer around the shared random source.
func NewAnonymizer(rng *rand.Rand, logger *logrus.Logger) *Anonymizer {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &Anonymizer{logger: logger, rng: rng}
}

// Anonymize returns a new column with the level's technique applied.
// Unrecognized levels behave like low.
func (a *Anonymizer) Anonymize(column []interface{}, fieldType string, level models.PrivacyLevel) []interface{} {
	switch level {
	case models.PrivacyLevelMedium:
		return a.mediumAnonymization(column, fieldType)
	case models.PrivacyLevelHigh:
		return a.highAnonymization(column, fieldType)
	default:
		return column
	}
}

func (a *Anonymizer) mediumAnonymization(column []interface{}, fieldType string) []interface{} {
	switch {
	case piiFieldTypes[fieldType]:
		return a.maskPII(column, fieldType)
	case fieldType == "date" || fieldType == "datetime":
		return a.fuzzDates(column, 30)
	case fieldType == "integer" || fieldType == "float":
		return a.addNoise(column, 0.1)
	default:
		return column
	}
}

func (a *Anonymizer) highAnonymization(column []interface{}, fieldType string) []interface{} {
	switch {
	case piiFieldTypes[fieldType]:
		return a.pseudonymize(column, fieldType)
	case fieldType == "date" || fieldType == "datetime":
		return a.fuzzDates(column, 365)
	case fieldType == "integer" || fieldType == "float":
		return a.addNoise(column, 0.2)
	default:
		return a.generalize(column, fieldType)
	}
}

// maskPII applies format-preserving, irreversible redaction per field type.
func (a *Anonymizer) maskPII(column []interface{}, fieldType string) []interface{} {
	masked := make([]interface{}, len(column))
	for i, item := range column {
		if item == nil {
			masked[i] = nil
			continue
		}

		s := fmt.Sprintf("%v", item)
		switch fieldType {
		case "email":
			masked[i] = maskEmail(s)
		case "name":
			masked[i] = maskName(s)
		case "phone":
			masked[i] = maskPhone(s)
		case "address":
			masked[i] = maskAddress(s)
		default:
			masked[i] = s
		}
	}
	return masked
}

// maskEmail keeps the first local-part character and the domain.
func maskEmail(s string) string {
	at := strings.Index(s, "@")
	if at < 0 {
		return s
	}
	local, domain := s[:at], s[at+1:]
	if len(local) > 1 {
		return local[:1] + strings.Repeat("*", len(local)-1) + "@" + domain
	}
	return "*@" + domain
}

// maskName stars every character but the first of each whitespace token.
func maskName(s string) string {
	words := strings.Fields(s)
	for i, word := range words {
		if len(word) > 1 {
			words[i] = word[:1] + strings.Repeat("*", len(word)-1)
		}
	}
	return strings.Join(words, " ")
}

// maskPhone keeps the last four digits, best-effort restoring the original
// separator style.
func maskPhone(s string) string {
	digits := nonDigits.ReplaceAllString(s, "")
	if len(digits) < 4 {
		return "***-***-****"
	}

	masked := strings.Repeat("*", len(digits)-4) + digits[len(digits)-4:]
	switch {
	case strings.Contains(s, "-") && len(masked) >= 7:
		return masked[:3] + "-" + masked[3:6] + "-" + masked[6:]
	case strings.Contains(s, "(") && len(masked) >= 7:
		return "(" + masked[:3] + ") " + masked[3:6] + "-" + masked[6:]
	default:
		return masked
	}
}

// maskAddress keeps the first token (assumed house number) and stars the
// trailing characters of every remaining token.
func maskAddress(s string) string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return "*** *** ***"
	}

	masked := []string{words[0]}
	for _, word := range words[1:] {
		if len(word) > 2 {
			masked = append(masked, word[:1]+strings.Repeat("*", len(word)-1))
		} else {
			masked = append(masked, "**")
		}
	}
	return strings.Join(masked, " ")
}

// pseudonymize maps each distinct stringified value to a synthetic alias.
// The Nth distinct value seen gets alias index N, repeats reuse their alias,
// and the map is discarded when the call returns.
func (a *Anonymizer) pseudonymize(column []interface{}, fieldType string) []interface{} {
	aliases := make(map[string]string)
	result := make([]interface{}, len(column))

	for i, item := range column {
		if item == nil {
			result[i] = nil
			continue
		}

		s := fmt.Sprintf("%v", item)
		alias, ok := aliases[s]
		if !ok {
			n := len(aliases) + 1
			switch fieldType {
			case "email":
				alias = fmt.Sprintf("user%d@example.com", n)
			case "name":
				alias = fmt.Sprintf("Person %d", n)
			case "phone":
				alias = fmt.Sprintf("555-%d-%d", 100+a.rng.Intn(900), 1000+a.rng.Intn(9000))
			case "address":
				alias = fmt.Sprintf("%d Anonymized St", 100+a.rng.Intn(9900))
			default:
				alias = fmt.Sprintf("Pseudonym_%d", n)
			}
			aliases[s] = alias
		}
		result[i] = alias
	}
	return result
}

// fuzzDates shifts each date by a uniform offset in [-daysRange, +daysRange]
// days. Unparseable date strings pass through unchanged; that silent no-op is
// the contract, not an error.
func (a *Anonymizer) fuzzDates(column []interface{}, daysRange int) []interface{} {
	result := make([]interface{}, len(column))
	for i, item := range column {
		if item == nil {
			result[i] = nil
			continue
		}

		offset := a.rng.Intn(2*daysRange+1) - daysRange
		switch v := item.(type) {
		case time.Time:
			result[i] = v.AddDate(0, 0, offset)
		case string:
			parsed, err := time.Parse("2006-01-02", v)
			if err != nil {
				result[i] = v
				continue
			}
			result[i] = parsed.AddDate(0, 0, offset).Format("2006-01-02")
		default:
			result[i] = item
		}
	}
	return result
}

// addNoise multiplies each numeric value by (1 + uniform[-level, +level]),
// keeping integers integral.
func (a *Anonymizer) addNoise(column []interface{}, level float64) []interface{} {
	result := make([]interface{}, len(column))
	for i, item := range column {
		if item == nil {
			result[i] = nil
			continue
		}

		noise := -level + 2*level*a.rng.Float64()
		switch v := item.(type) {
		case int:
			result[i] = int(math.Round(float64(v) * (1 + noise)))
		case float64:
			result[i] = math.Round(v*(1+noise)*100) / 100
		default:
			result[i] = item
		}
	}
	return result
}

// generalize collapses precise values into coarse categories. Unrecognized
// field types map every non-nil value to the fixed literal "Generalized".
func (a *Anonymizer) generalize(column []interface{}, fieldType string) []interface{} {
	result := make([]interface{}, len(column))
	for i, item := range column {
		if item == nil {
			result[i] = nil
			continue
		}

		s := fmt.Sprintf("%v", item)
		switch fieldType {
		case "city":
			result[i] = "Generalized Location"
		case "zip_code":
			if len(s) >= 3 {
				result[i] = s[:3] + "**"
			} else {
				result[i] = "***"
			}
		case "age":
			result[i] = generalizeAge(s)
		default:
			result[i] = "Generalized"
		}
	}
	return result
}

// generalizeAge buckets an age into fixed bands.
func generalizeAge(s string) string {
	age, err := strconv.Atoi(s)
	if err != nil {
		return "Unknown"
	}
	switch {
	case age < 18:
		return "Under 18"
	case age < 25:
		return "18-24"
	case age < 35:
		return "25-34"
	case age < 50:
		return "35-49"
	default:
		return "50+"
	}
}
