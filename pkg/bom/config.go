package bom

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"dario.cat/mergo"
	"github.com/goccy/go-yaml"
	"github.com/hashicorp/go-multierror"

	"github.com/OpenTraceLab/netbom/pkg/netlist"
)

// Config controls which components reach the BOM, how they are grouped and
// which columns are produced. All pattern lists hold regular expressions
// matched against the start of the tested string.
type Config struct {
	// Filtering
	ExcludedReferences []string `yaml:"excluded_references"` // e.g. TP[0-9]+ for test points
	ExcludedValues     []string `yaml:"excluded_values"`
	ExcludedFootprints []string `yaml:"excluded_footprints"`
	ExcludedFields     []string `yaml:"excluded_fields"` // drop matching field names from the column set

	// Grouping
	Aliases  [][]string `yaml:"aliases"`    // part names that are interchangeable, compared case-insensitively
	DoNotFit []string   `yaml:"do_not_fit"` // substrings of value or Notes marking a part as not fitted

	// Output
	Columns      []string `yaml:"columns"`       // tracked columns, in output order
	Protected    []string `yaml:"protected"`     // columns always taken from the design
	MatchColumns []string `yaml:"match_columns"` // columns an external record must equal to apply
}

// DefaultConfig returns the stock configuration.
func DefaultConfig() *Config {
	return &Config{
		ExcludedReferences: []string{`TP[0-9]+`},
		ExcludedValues:     []string{"MOUNTHOLE", "SCOPETEST", "MOUNT_HOLE", "SOLDER_BRIDGE.*"},
		ExcludedFootprints: nil,
		ExcludedFields:     []string{"Reference"},
		Aliases: [][]string{
			{"c", "c_small", "cap", "capacitor"},
			{"r", "r_small", "res", "resistor"},
			{"sw", "switch"},
		},
		DoNotFit: append([]string(nil), netlist.DoNotFit...),
		Columns: []string{
			ColDescription, ColPart, ColReferences, ColValue, ColFootprint, ColQuantity, ColDatasheet,
			"Manufacturer", "MPN", "Supplier", "SPN", "Notes",
		},
		Protected:    append([]string(nil), FixedColumns...),
		MatchColumns: []string{ColPart, ColValue, ColFootprint},
	}
}

// LoadConfig reads a YAML configuration file. Keys missing from the file keep
// their DefaultConfig values.
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes YAML configuration data, fills unset keys from
// DefaultConfig and validates the result.
func ParseConfig(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.UnmarshalWithOptions(data, cfg, yaml.Strict()); err != nil {
		return nil, fmt.Errorf("bom: invalid config: %w", err)
	}
	if err := mergo.Merge(cfg, DefaultConfig()); err != nil {
		return nil, fmt.Errorf("bom: failed to apply defaults: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every pattern list, alias class and do-not-fit word. All
// problems are reported together.
func (c *Config) Validate() error {
	var result *multierror.Error

	lists := []struct {
		name     string
		patterns []string
	}{
		{"excluded_references", c.ExcludedReferences},
		{"excluded_values", c.ExcludedValues},
		{"excluded_footprints", c.ExcludedFootprints},
		{"excluded_fields", c.ExcludedFields},
	}
	for _, l := range lists {
		if _, err := compilePatterns(l.name, l.patterns); err != nil {
			result = multierror.Append(result, err)
		}
	}

	for i, class := range c.Aliases {
		if len(class) < 2 {
			result = multierror.Append(result, fmt.Errorf("aliases[%d]: a class needs at least two names", i))
		}
		for j, name := range class {
			if strings.TrimSpace(name) == "" {
				result = multierror.Append(result, fmt.Errorf("aliases[%d][%d]: empty name", i, j))
			}
		}
	}

	// An empty word matches every component.
	for i, word := range c.DoNotFit {
		if strings.TrimSpace(word) == "" {
			result = multierror.Append(result, fmt.Errorf("do_not_fit[%d]: empty word", i))
		}
	}

	return result.ErrorOrNil()
}

// compilePatterns anchors each pattern at the start of the string.
func compilePatterns(name string, patterns []string) ([]*regexp.Regexp, error) {
	var result *multierror.Error
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for i, p := range patterns {
		re, err := regexp.Compile("^(?:" + p + ")")
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("%s[%d] %q: %w", name, i, p, err))
			continue
		}
		compiled = append(compiled, re)
	}
	return compiled, result.ErrorOrNil()
}

func matchAny(patterns []*regexp.Regexp, s string) bool {
	for _, re := range patterns {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}

func stringSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, s := range items {
		set[s] = true
	}
	return set
}

func lowerAll(items []string) []string {
	out := make([]string, len(items))
	for i, s := range items {
		out[i] = strings.ToLower(s)
	}
	return out
}
