package nfpa

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed ghs_to_nfpa_rules.yaml
var defaultRules []byte

type ruleFile struct {
	GHSToNFPA yaml.Node `yaml:"ghs_to_nfpa"`
}

type ruleEntry struct {
	Rule   map[string]constraintSpec `yaml:"rule"`
	Output outputSpec                `yaml:"output"`
}

type constraintSpec struct {
	Min          *float64 `yaml:"min"`
	Max          *float64 `yaml:"max"`
	MinInclusive *bool    `yaml:"min_inclusive"`
	MaxInclusive *bool    `yaml:"max_inclusive"`
}

type outputSpec struct {
	NFPAClass               string `yaml:"nfpa_class"`
	Flammability            *int   `yaml:"nfpa_flammability"`
	FireCodeType            string `yaml:"fire_code_type"`
	FlashPointDescription   string `yaml:"flash_point_description"`
	BoilingPointDescription string `yaml:"boiling_point_description"`
}

// LoadDefault builds a translator from the rule table compiled into the binary.
func LoadDefault() (*Translator, error) {
	return Parse(defaultRules)
}

func LoadFile(path string) (*Translator, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrInvalidRuleTable, path, err)
	}
	return Parse(data)
}

// Load reads path, or the embedded table when path is empty.
func Load(path string) (*Translator, error) {
	if path == "" {
		return LoadDefault()
	}
	return LoadFile(path)
}

// Parse decodes a YAML or JSON rule table. Category order follows the document.
func Parse(data []byte) (*Translator, error) {
	var file ruleFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRuleTable, err)
	}
	root := file.GHSToNFPA
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: ghs_to_nfpa mapping is missing", ErrInvalidRuleTable)
	}

	categories := make([]Category, 0, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		name := root.Content[i].Value

		var entries []ruleEntry
		if err := root.Content[i+1].Decode(&entries); err != nil {
			return nil, fmt.Errorf("%w: category %q: %v", ErrInvalidRuleTable, name, err)
		}

		rules := make([]Rule, 0, len(entries))
		for j, entry := range entries {
			rule, err := entry.toRule()
			if err != nil {
				return nil, fmt.Errorf("%w: category %q rule %d: %v", ErrInvalidRuleTable, name, j, err)
			}
			rules = append(rules, rule)
		}
		categories = append(categories, Category{Name: name, Rules: rules})
	}
	return NewTranslator(categories)
}

func (e ruleEntry) toRule() (Rule, error) {
	if e.Output.Flammability == nil {
		return Rule{}, errors.New("output.nfpa_flammability is required")
	}

	when := make(map[Field]Constraint, len(e.Rule))
	for name, spec := range e.Rule {
		when[Field(name)] = Constraint{
			Min:          spec.Min,
			Max:          spec.Max,
			MinInclusive: boolOr(spec.MinInclusive, true),
			MaxInclusive: boolOr(spec.MaxInclusive, true),
		}
	}

	return Rule{
		When: when,
		Output: Classification{
			NFPAClass:               e.Output.NFPAClass,
			Flammability:            *e.Output.Flammability,
			FireCodeType:            e.Output.FireCodeType,
			FlashPointDescription:   e.Output.FlashPointDescription,
			BoilingPointDescription: e.Output.BoilingPointDescription,
		},
	}, nil
}

func boolOr(v *bool, fallback bool) bool {
	if v == nil {
		return fallback
	}
	return *v
}
