package privacy

import (
	"fmt"
	"regexp"
)

// piiPatterns are the five fixed shapes the detector scans for.
var piiPatterns = []struct {
	name    string
	pattern *regexp.Regexp
}{
	{"email", regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)},
	{"phone", regexp.MustCompile(`\b\d{3}[-.]?\d{3}[-.]?\d{4}\b`)},
	{"ssn", regexp.MustCompile(`\b\d{3}-\d{2}-\d{4}\b`)},
	{"credit_card", regexp.MustCompile(`\b\d{4}[-\s]?\d{4}[-\s]?\d{4}[-\s]?\d{4}\b`)},
	{"ip_address", regexp.MustCompile(`\b\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}\b`)},
}

// highRiskPIITypes elevate the overall risk classification on any match.
var highRiskPIITypes = map[string]bool{
	"ssn":         true,
	"credit_card": true,
}

// PIITypeMatch reports matches for one PII shape.
type PIITypeMatch struct {
	Type       string  `json:"type"`
	Matches    int     `json:"matches"`
	Percentage float64 `json:"percentage"`
}

// PIIDetectionResult is the outcome of scanning one column.
type PIIDetectionResult struct {
	FieldName    string         `json:"field_name"`
	TotalRecords int            `json:"total_records"`
	PIIDetected  bool           `json:"pii_detected"`
	Types        []PIITypeMatch `json:"pii_types"`
	RiskLevel    string         `json:"risk_level"`
}

// DetectPII scans a column against the fixed PII patterns. Any SSN or credit
// card match classifies the column high risk, any other detected type medium,
// otherwise low.
func (a *Anonymizer) DetectPII(column []interface{}, fieldName string) *PIIDetectionResult {
	result := &PIIDetectionResult{
		FieldName:    fieldName,
		TotalRecords: len(column),
		RiskLevel:    "low",
	}

	for _, p := range piiPatterns {
		matches := 0
		for _, item := range column {
			if item == nil {
				continue
			}
			if p.pattern.MatchString(fmt.Sprintf("%v", item)) {
				matches++
			}
		}
		if matches > 0 {
			result.PIIDetected = true
			result.Types = append(result.Types, PIITypeMatch{
				Type:       p.name,
				Matches:    matches,
				Percentage: float64(matches) / float64(len(column)) * 100,
			})
		}
	}

	if result.PIIDetected {
		result.RiskLevel = "medium"
		for _, match := range result.Types {
			if highRiskPIITypes[match.Type] {
				result.RiskLevel = "high"
				break
			}
		}
	}

	return result
}
