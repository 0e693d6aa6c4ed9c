package privacy

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/inferloop/tabsynth/pkg/models"
)

// KAnonymityResult reports whether every group sharing the same
// quasi-identifier tuple contains at least k records.
type KAnonymityResult struct {
	Satisfied    bool `json:"k_anonymity_satisfied"`
	MinGroupSize int  `json:"min_group_size"`
	Violations   int  `json:"violations"`
	TotalGroups  int  `json:"total_groups"`
	K            int  `json:"k"`
}

// KAnonymityChecker groups records by quasi-identifier values and measures
// group sizes.
type KAnonymityChecker struct {
	logger *logrus.Logger
}

// NewKAnonymityChecker creates a checker.
func NewKAnonymityChecker(logger *logrus.Logger) *KAnonymityChecker {
	if logger == nil {
		logger = logrus.New()
	}
	return &KAnonymityChecker{logger: logger}
}

// Check groups records by the tuple of quasi-identifier values and reports
// the minimum group size and the number of groups smaller than k. An empty
// dataset or empty identifier list trivially satisfies the property.
func (c *KAnonymityChecker) Check(records []models.Record, quasiIdentifiers []string, k int) *KAnonymityResult {
	if len(records) == 0 || len(quasiIdentifiers) == 0 {
		return &KAnonymityResult{Satisfied: true, K: k}
	}

	groups := make(map[string]int)
	for _, record := range records {
		parts := make([]string, len(quasiIdentifiers))
		for i, qi := range quasiIdentifiers {
			if value, ok := record[qi]; ok && value != nil {
				parts[i] = fmt.Sprintf("%v", value)
			}
		}
		groups[strings.Join(parts, "\x1f")]++
	}

	violations := 0
	minSize := len(records) + 1
	for _, size := range groups {
		if size < minSize {
			minSize = size
		}
		if size < k {
			violations++
		}
	}

	c.logger.WithFields(logrus.Fields{
		"records":        len(records),
		"groups":         len(groups),
		"min_group_size": minSize,
		"k":              k,
		"violations":     violations,
	}).Debug("k-anonymity check complete")

	return &KAnonymityResult{
		Satisfied:    violations == 0,
		MinGroupSize: minSize,
		Violations:   violations,
		TotalGroups:  len(groups),
		K:            k,
	}
}
