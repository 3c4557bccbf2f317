package scoring

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/wecare/foodcheck/pkg/model"
)

// Category classifies an additive code.
type Category string

const (
	CategorySafe       Category = "safe"
	CategorySuspicious Category = "suspicious"
	CategoryHarmful    Category = "harmful"
	CategoryUnknown    Category = "unknown"
)

// AdditiveTable maps additive codes (E-numbers) to categories. Built once at
// startup and only read afterwards, so concurrent analyses share it freely.
type AdditiveTable map[string]Category

// Default classification, based on the common EU E-number lists: antioxidants
// and acidity regulators as safe, azo dyes and flavor enhancers as suspicious,
// preservatives with known health concerns as harmful.
var defaultAdditiveTable = AdditiveTable{
	"E100": CategorySafe, "E101": CategorySafe, "E300": CategorySafe,
	"E304": CategorySafe, "E306": CategorySafe, "E307": CategorySafe,
	"E308": CategorySafe, "E309": CategorySafe, "E322": CategorySafe,
	"E330": CategorySafe, "E331": CategorySafe, "E332": CategorySafe,
	"E333": CategorySafe, "E334": CategorySafe, "E440": CategorySafe,

	"E102": CategorySuspicious, "E104": CategorySuspicious,
	"E110": CategorySuspicious, "E122": CategorySuspicious,
	"E124": CategorySuspicious, "E129": CategorySuspicious,
	"E621": CategorySuspicious, "E954": CategorySuspicious,

	"E211": CategoryHarmful, "E249": CategoryHarmful,
	"E250": CategoryHarmful, "E251": CategoryHarmful,
	"E252": CategoryHarmful, "E920": CategoryHarmful,
}

// DefaultAdditiveTable returns the built-in classification table.
func DefaultAdditiveTable() AdditiveTable {
	return defaultAdditiveTable
}

// LoadAdditiveTable reads a YAML file with safe/suspicious/harmful code lists
// and builds a classification table from it.
func LoadAdditiveTable(path string) (AdditiveTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading additive tables: %w", err)
	}
	var lists struct {
		Safe       []string `yaml:"safe"`
		Suspicious []string `yaml:"suspicious"`
		Harmful    []string `yaml:"harmful"`
	}
	if err := yaml.Unmarshal(data, &lists); err != nil {
		return nil, fmt.Errorf("parsing additive tables: %w", err)
	}
	table := make(AdditiveTable, len(lists.Safe)+len(lists.Suspicious)+len(lists.Harmful))
	for _, code := range lists.Safe {
		table[normalizeCode(code)] = CategorySafe
	}
	for _, code := range lists.Suspicious {
		table[normalizeCode(code)] = CategorySuspicious
	}
	// Harmful last so a code listed twice keeps the stricter category.
	for _, code := range lists.Harmful {
		table[normalizeCode(code)] = CategoryHarmful
	}
	return table, nil
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Classify looks up a single additive code. Exact match only; codes absent
// from the table are Unknown.
func (t AdditiveTable) Classify(code string) Category {
	if c, ok := t[normalizeCode(code)]; ok {
		return c
	}
	return CategoryUnknown
}

// Additives sub-score weights.
const (
	safeWeight       = 0.4
	suspiciousWeight = 0.3
	harmfulWeight    = 0.3
)

// AdditivesScore aggregates additive categories into a 0-100 score.
//
// The safe factor scores 10 when every classified additive is safe (unknowns
// are excluded from that check but never count as safe themselves), 5 when
// safe additives appear in a mixed set, and 0 when no safe additive is
// present at all. A product with no additives therefore lands on the
// zero-safe branch: 0*0.4 + 10*0.3 + 10*0.3 = 6, scaled to 60.
func AdditivesScore(p *model.Product, table AdditiveTable) float64 {
	var safe, suspicious, harmful int
	for _, code := range p.Additives {
		switch table.Classify(code) {
		case CategorySafe:
			safe++
		case CategorySuspicious:
			suspicious++
		case CategoryHarmful:
			harmful++
		}
	}

	var safeFactor float64
	switch {
	case safe == 0:
		safeFactor = 0
	case suspicious == 0 && harmful == 0:
		safeFactor = 10
	default:
		safeFactor = 5
	}

	suspiciousFactor := 10.0
	if suspicious > 0 {
		suspiciousFactor = 0
	}
	harmfulFactor := 10.0
	if harmful > 0 {
		harmfulFactor = 0
	}

	weighted := safeFactor*safeWeight + suspiciousFactor*suspiciousWeight + harmfulFactor*harmfulWeight
	return clamp(weighted * 10)
}
