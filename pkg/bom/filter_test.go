package bom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterDefaultConfig(t *testing.T) {
	nl := loadBoard(t)
	f, err := NewFilter(DefaultConfig())
	require.NoError(t, err)

	got := f.Apply(nl.Components)
	assert.Equal(t,
		[]string{"C1", "C2", "J1", "J2", "R2", "R3", "R4", "R5", "R10", "U1", "U3"},
		refsOf(got))

	assert.True(t, f.Excluded(nl.Component("TP1")), "reference pattern")
	assert.True(t, f.Excluded(nl.Component("MH1")), "value pattern")
	assert.True(t, f.Excluded(nl.Component("U2")), "Installed=NU")
	assert.False(t, f.Excluded(nl.Component("U3")), "unresolved parts are kept")

	assert.Equal(t, "C1", nl.Components[0].Ref(), "input order untouched")
}

func TestFilterPatternsAnchorAtStart(t *testing.T) {
	nl := parseDesign(t, []string{
		compSexp("TP1", "TestPoint", "TestPoint:Pad", "Connector", "TestPoint"),
		compSexp("XTP1", "TestPoint", "TestPoint:Pad", "Connector", "TestPoint"),
		compSexp("R1", "10k", "Resistor_SMD:R_0603", "Device", "R"),
		compSexp("R2", "10k", "Resistor_THT:R_Axial", "Device", "R"),
		compSexp("JP1", "SOLDER_BRIDGE_2", "Jumper:SolderJumper", "Jumper", "SolderJumper"),
		compSexp("JP2", "OPEN_SOLDER_BRIDGE", "Jumper:SolderJumper", "Jumper", "SolderJumper"),
	}, nil)

	cfg := DefaultConfig()
	cfg.ExcludedFootprints = []string{"Resistor_THT"}
	f, err := NewFilter(cfg)
	require.NoError(t, err)

	assert.Equal(t, []string{"JP2", "R1", "XTP1"}, refsOf(f.Apply(nl.Components)))
}

func TestFilterInstalledIsExact(t *testing.T) {
	nl := parseDesign(t, []string{
		compSexp("U1", "NE555", "SOIC-8", "Timer", "NE555", "Installed", "NU"),
		compSexp("U2", "NE555", "SOIC-8", "Timer", "NE555", "Installed", "nu"),
		compSexp("U3", "NE555", "SOIC-8", "Timer", "NE555", "Installed", "Yes"),
	}, nil)

	f, err := NewFilter(DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, []string{"U2", "U3"}, refsOf(f.Apply(nl.Components)))
}

func TestNewFilterBadPattern(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ExcludedValues = []string{"("}
	_, err := NewFilter(cfg)
	assert.Error(t, err)
}
