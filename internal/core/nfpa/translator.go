// Package nfpa maps a GHS flammability category plus physical properties to an
// NFPA 704 flammability rating using ordered first-match rules.
package nfpa

import (
	"errors"
	"fmt"
)

// Field names a physical property a rule may constrain.
type Field string

const (
	FieldFlashPointF   Field = "flash_point_f"
	FieldBoilingPointF Field = "boiling_point_f"
)

func (f Field) valid() bool {
	return f == FieldFlashPointF || f == FieldBoilingPointF
}

// Constraint bounds one numeric field. A nil bound leaves that side open.
type Constraint struct {
	Min          *float64
	Max          *float64
	MinInclusive bool
	MaxInclusive bool
}

type Classification struct {
	NFPAClass               string `json:"nfpa_class"`
	Flammability            int    `json:"nfpa_flammability"`
	FireCodeType            string `json:"fire_code_type"`
	FlashPointDescription   string `json:"flash_point_description"`
	BoilingPointDescription string `json:"boiling_point_description"`
}

type Rule struct {
	When   map[Field]Constraint
	Output Classification
}

// Category is an ordered rule sequence for one GHS category key.
type Category struct {
	Name  string
	Rules []Rule
}

// Properties are the optional physical inputs of a translation. A nil value
// means "not supplied" and disables every constraint on that field.
type Properties struct {
	FlashPointF   *float64
	BoilingPointF *float64
}

func (p Properties) value(field Field) (float64, bool) {
	var v *float64
	switch field {
	case FieldFlashPointF:
		v = p.FlashPointF
	case FieldBoilingPointF:
		v = p.BoilingPointF
	}
	if v == nil {
		return 0, false
	}
	return *v, true
}

var ErrInvalidRuleTable = errors.New("invalid nfpa rule table")

// Translator holds an immutable rule table. It is safe for concurrent use.
type Translator struct {
	order []string
	rules map[string][]Rule
}

func NewTranslator(categories []Category) (*Translator, error) {
	t := &Translator{
		order: make([]string, 0, len(categories)),
		rules: make(map[string][]Rule, len(categories)),
	}
	for _, cat := range categories {
		if cat.Name == "" {
			return nil, fmt.Errorf("%w: empty category name", ErrInvalidRuleTable)
		}
		if _, dup := t.rules[cat.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate category %q", ErrInvalidRuleTable, cat.Name)
		}
		for i, rule := range cat.Rules {
			if err := validateRule(rule); err != nil {
				return nil, fmt.Errorf("%w: category %q rule %d: %v", ErrInvalidRuleTable, cat.Name, i, err)
			}
		}
		rules := make([]Rule, len(cat.Rules))
		copy(rules, cat.Rules)
		t.order = append(t.order, cat.Name)
		t.rules[cat.Name] = rules
	}
	return t, nil
}

func validateRule(rule Rule) error {
	for field, c := range rule.When {
		if !field.valid() {
			return fmt.Errorf("unknown field %q", field)
		}
		if c.Min != nil && c.Max != nil && *c.Min > *c.Max {
			return fmt.Errorf("field %s: min %v greater than max %v", field, *c.Min, *c.Max)
		}
	}
	if rule.Output.Flammability < 0 || rule.Output.Flammability > 4 {
		return fmt.Errorf("nfpa_flammability %d outside 0..4", rule.Output.Flammability)
	}
	return nil
}

// Translate returns the output of the first rule of category satisfied by
// props. The second result is false when the category is unknown or no rule
// matches.
func (t *Translator) Translate(category string, props Properties) (Classification, bool) {
	rules, ok := t.rules[category]
	if !ok {
		return Classification{}, false
	}
	for _, rule := range rules {
		if matches(rule, props) {
			return rule.Output, true
		}
	}
	return Classification{}, false
}

func matches(rule Rule, props Properties) bool {
	for field, c := range rule.When {
		value, supplied := props.value(field)
		if !supplied {
			continue
		}
		if !Satisfies(value, c) {
			return false
		}
	}
	return true
}

// Satisfies reports whether value lies within both bounds of c.
func Satisfies(value float64, c Constraint) bool {
	if c.Min != nil {
		if c.MinInclusive && value < *c.Min {
			return false
		}
		if !c.MinInclusive && value <= *c.Min {
			return false
		}
	}
	if c.Max != nil {
		if c.MaxInclusive && value > *c.Max {
			return false
		}
		if !c.MaxInclusive && value >= *c.Max {
			return false
		}
	}
	return true
}

// Categories lists category keys in rule table order.
func (t *Translator) Categories() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

func (t *Translator) HasCategory(category string) bool {
	_, ok := t.rules[category]
	return ok
}
