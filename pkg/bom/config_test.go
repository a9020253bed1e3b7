package bom

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigValidates(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, FixedColumns, cfg.Protected)
	assert.Equal(t, []string{ColPart, ColValue, ColFootprint}, cfg.MatchColumns)
}

func TestParseConfigMergesDefaults(t *testing.T) {
	cfg, err := ParseConfig([]byte(`
excluded_references:
  - "TP[0-9]+"
  - "FID[0-9]+"
columns: [Description, Part, References, Value, Footprint, Quantity, Datasheet, MPN]
aliases:
  - [c, c_small, cap, capacitor]
  - [led, led_small]
`))
	require.NoError(t, err)

	assert.Equal(t, []string{"TP[0-9]+", "FID[0-9]+"}, cfg.ExcludedReferences)
	assert.Len(t, cfg.Columns, 8)
	assert.Equal(t, [][]string{{"c", "c_small", "cap", "capacitor"}, {"led", "led_small"}}, cfg.Aliases)

	def := DefaultConfig()
	assert.Equal(t, def.ExcludedValues, cfg.ExcludedValues)
	assert.Equal(t, def.DoNotFit, cfg.DoNotFit)
	assert.Equal(t, def.Protected, cfg.Protected)
}

func TestParseConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown key", "exclude_refs: [TP]\n"},
		{"wrong type", "columns: 3\n"},
		{"bad regex", "excluded_values: [\"(\"]\n"},
		{"empty do-not-fit word", "do_not_fit: [dnf, \"\"]\n"},
		{"blank alias name", "aliases: [[c, \" \"]]\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestValidateReportsEveryProblem(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ExcludedReferences = []string{"(", "ok"}
	cfg.ExcludedFootprints = []string{"[a-"}
	cfg.Aliases = append(cfg.Aliases, []string{"lonely"})

	err := cfg.Validate()
	require.Error(t, err)

	var merr *multierror.Error
	require.ErrorAs(t, err, &merr)
	assert.Len(t, merr.Errors, 3)
	assert.Contains(t, err.Error(), "excluded_references[0]")
	assert.Contains(t, err.Error(), "excluded_footprints[0]")
	assert.Contains(t, err.Error(), "aliases[3]")
}

func TestValidateRejectsEmptyWords(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DoNotFit = []string{"dnf", ""}
	cfg.Aliases = [][]string{{"c", ""}}

	err := cfg.Validate()
	require.Error(t, err)

	var merr *multierror.Error
	require.ErrorAs(t, err, &merr)
	assert.Len(t, merr.Errors, 2)
	assert.Contains(t, err.Error(), "do_not_fit[1]: empty word")
	assert.Contains(t, err.Error(), "aliases[0][1]: empty name")
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "netbom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("do_not_fit: [dnp]\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"dnp"}, cfg.DoNotFit)
	assert.Equal(t, DefaultConfig().Columns, cfg.Columns)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
