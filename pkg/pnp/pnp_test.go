package pnp

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testdata(name string) string {
	return filepath.Join("..", "..", "testdata", name)
}

func TestReadPlacement(t *testing.T) {
	places, err := ReadPlacementFile(testdata("power_board.pos"))
	require.NoError(t, err)
	require.Len(t, places, 11)

	assert.Equal(t, Placement{
		Ref:       "C1",
		Value:     "100nF",
		Footprint: "C_0603_1608Metric",
		X:         "12.7000",
		Y:         "-20.3200",
		Rotation:  "90.0000",
		Side:      "top",
	}, places[0])
	assert.Equal(t, "bottom", places[9].Side)
}

func TestReadPlacementErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"short line", "R1 10k R_0603 1.0 2.0 0.0\n", "want 7 columns"},
		{"duplicate", "R1 10k R_0603 1 2 0 top\nR1 10k R_0603 3 4 0 top\n", "duplicate reference R1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadPlacement(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestReadBOM(t *testing.T) {
	lines, err := ReadBOMFile(testdata("power_board_bom.csv"))
	require.NoError(t, err)
	require.Len(t, lines, 7, "summary after the blank line is ignored")

	assert.Equal(t, []string{"C1", "C2"}, lines[0].Refs)
	assert.Equal(t, "2", lines[0].Quantity, "Quantity Per PCB is read as Quantity")
	assert.Equal(t, "Generic connector, single row, 01x02", lines[1].Fields["Description"])
	assert.True(t, lines[3].DNF())
	assert.False(t, lines[2].DNF())
}

func TestLineDNF(t *testing.T) {
	for q, want := range map[string]bool{
		"0":       true,
		" 0 ":     true,
		"3 (DNF)": true,
		"dnf":     true,
		"1":       false,
		"10":      false,
	} {
		assert.Equal(t, want, Line{Quantity: q}.DNF(), q)
	}
}

func TestCheckFixtures(t *testing.T) {
	r, err := CheckFiles(testdata("power_board_bom.csv"), testdata("power_board.pos"))
	require.NoError(t, err)

	assert.Equal(t, 11, r.BOMItems)
	assert.Equal(t, 1, r.DNFItems)
	assert.Equal(t, 11, r.PNPItems)

	assert.Equal(t, []string{"TP1"}, r.MissingFromBOM)
	assert.Equal(t, []string{"U3"}, r.MissingFromPNP)
	assert.Equal(t, []string{"R5"}, r.DNFInPNP)

	assert.Equal(t, []string{"1 parts missing from BOM file: TP1"}, r.BOMErrors)
	assert.Equal(t, []string{
		"C2 value mismatch - BOM: '100nF', PNP: '0.1uF'",
		"J2 value mismatch - BOM: 'PWR_IN', PNP: 'FAN'",
		"R4 value mismatch - BOM: '4k7', PNP: '4.7k'",
		"1 parts missing from PNP file: U3",
		"1 DNF parts included in PNP file: R5",
	}, r.PNPErrors)
	assert.Equal(t, 6, r.Problems())
	assert.False(t, r.OK())

	var buf bytes.Buffer
	r.WriteSummary(&buf)
	out := buf.String()
	assert.Contains(t, out, "BOM items: 11 (DNF: 1)")
	assert.Contains(t, out, "There are 5 issues found in the PNP file:")
	assert.Contains(t, out, "\t- 1 parts missing from BOM file: TP1")
}

func TestCheckQuantityAndFootprint(t *testing.T) {
	lines := []Line{
		{Refs: []string{"R1", "R2"}, Quantity: "3", Fields: map[string]string{"Footprint": "R_0603", "Value": "10k"}},
		{Refs: []string{"C1"}, Quantity: "one", Fields: map[string]string{"Footprint": "C_0603", "Value": "1uF"}},
	}
	places := []Placement{
		{Ref: "R1", Value: "10k", Footprint: "R_0603"},
		{Ref: "R2", Value: "10k", Footprint: "R_0805"},
		{Ref: "C1", Value: "1uF", Footprint: "C_0603"},
	}

	r := Check(lines, places)
	assert.Equal(t, []string{
		"Quantity mismatch: [R1 R2] != 3",
		`Bad quantity "one": C1`,
	}, r.BOMErrors)
	assert.Equal(t, []string{"R2 footprint mismatch - BOM: 'R_0603', PNP: 'R_0805'"}, r.PNPErrors)
}

func TestCheckFilesExtensions(t *testing.T) {
	_, err := CheckFiles("bom.txt", "board.pos")
	assert.ErrorContains(t, err, ".csv")
	_, err = CheckFiles("bom.csv", "board.txt")
	assert.ErrorContains(t, err, ".pos")
}
