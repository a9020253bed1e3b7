package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func findTestdata() string {
	testdata := "../../testdata"
	if _, err := os.Stat(testdata); os.IsNotExist(err) {
		testdata = "../../../testdata"
	}
	return testdata
}

// execute runs the root command with args and returns what it wrote to
// stdout.
func execute(t *testing.T, args []string) (string, error) {
	t.Helper()

	// Capture stdout
	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	// Read in background to prevent pipe buffer from blocking on Windows
	var buf bytes.Buffer
	done := make(chan struct{})
	go func() {
		buf.ReadFrom(r)
		close(done)
	}()

	// Reset flags to prevent accumulation between tests
	verbose = false
	configFile = ""
	recordsFile = ""
	formatName = "csv"
	outputFile = ""
	rawRows = false
	checkBOMFile = ""
	checkPosFile = ""

	rootCmd.SetArgs(args)
	err := rootCmd.Execute()

	// Restore stdout and wait for reader
	w.Close()
	os.Stdout = old
	<-done

	return buf.String(), err
}

// TestBOME2E tests the bom command end-to-end
func TestBOME2E(t *testing.T) {
	testdata := findTestdata()
	xmlFile := filepath.Join(testdata, "power_board.xml")
	netFile := filepath.Join(testdata, "power_board.net")

	tests := []struct {
		name        string
		args        []string
		wantErr     bool
		wantContain []string
		wantMissing []string
	}{
		{
			name: "csv from xml",
			args: []string{"bom", xmlFile},
			wantContain: []string{
				"Description,Part,References,Value,Footprint,Quantity,Datasheet",
				"C1 C2",
				"R2 R10",
				"R3 R4",
				"C_0603_1608Metric",
				"https://www.yageo.com/rc_series.pdf",
				"50V 25V",
			},
			wantMissing: []string{"TP1", "MH1", "U2"},
		},
		{
			name: "yaml from sexp",
			args: []string{"bom", netFile, "--format", "yaml"},
			wantContain: []string{
				"References: C1 C2",
				"References: R2 R10",
				"Part: LM555",
			},
		},
		{
			name: "table",
			args: []string{"bom", xmlFile, "-f", "table"},
			wantContain: []string{
				"References",
				"J1 J2",
				"U3",
			},
		},
		{
			name: "records fill supplier columns",
			args: []string{"bom", xmlFile, "--records", filepath.Join(testdata, "power_board_records.csv")},
			wantContain: []string{
				"RC0603FR-0710KL",
				"LM555CMX/NOPB",
				"Digikey",
			},
		},
		{
			name:        "raw rows ignore records",
			args:        []string{"bom", xmlFile, "--raw", "--records", filepath.Join(testdata, "power_board_records.csv")},
			wantContain: []string{"R2 R10"},
			wantMissing: []string{"RC0603FR-0710KL"},
		},
		{
			name: "config file",
			args: []string{"bom", xmlFile, "--config", filepath.Join(testdata, "netbom.yaml")},
			wantContain: []string{
				"Datasheet,MPN",
				"R5",
			},
			wantMissing: []string{"U3", "Voltage", "50V"},
		},
		{
			name:    "unknown format",
			args:    []string{"bom", xmlFile, "--format", "pdf"},
			wantErr: true,
		},
		{
			name:    "non-existent file",
			args:    []string{"bom", "/nonexistent/board.xml"},
			wantErr: true,
		},
		{
			name:    "missing config",
			args:    []string{"bom", xmlFile, "--config", filepath.Join(testdata, "missing.yaml")},
			wantErr: true,
		},
		{
			name:    "missing argument",
			args:    []string{"bom"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := execute(t, tt.args)

			if tt.wantErr {
				if err == nil {
					t.Errorf("Expected error but got none")
				}
				return
			}

			if err != nil {
				t.Errorf("Unexpected error: %v\nOutput: %s", err, output)
				return
			}

			for _, want := range tt.wantContain {
				if !strings.Contains(output, want) {
					t.Errorf("Output missing expected string: %q\nGot:\n%s", want, output)
				}
			}
			for _, unwanted := range tt.wantMissing {
				if strings.Contains(output, unwanted) {
					t.Errorf("Output contains unexpected string: %q\nGot:\n%s", unwanted, output)
				}
			}
		})
	}
}

// TestBOMOutputFile tests writing the BOM to a file
func TestBOMOutputFile(t *testing.T) {
	testdata := findTestdata()
	out := filepath.Join(t.TempDir(), "board.csv")

	stdout, err := execute(t, []string{"bom", filepath.Join(testdata, "power_board.xml"), "--output", out})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if stdout != "" {
		t.Errorf("Expected nothing on stdout, got:\n%s", stdout)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("Failed to read output: %v", err)
	}
	if !strings.Contains(string(data), "R2 R10") {
		t.Errorf("Output file missing R2 R10:\n%s", data)
	}
}

// TestBOMBadConfig tests that unknown configuration keys are rejected
func TestBOMBadConfig(t *testing.T) {
	testdata := findTestdata()
	cfg := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(cfg, []byte("excluded_valus:\n  - TP\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := execute(t, []string{"bom", filepath.Join(testdata, "power_board.xml"), "--config", cfg})
	if err == nil {
		t.Errorf("Expected error for unknown config key")
	}
}

// TestInfoE2E tests the info command end-to-end
func TestInfoE2E(t *testing.T) {
	testdata := findTestdata()

	for _, file := range []string{"power_board.xml", "power_board.net"} {
		t.Run(file, func(t *testing.T) {
			output, err := execute(t, []string{"info", filepath.Join(testdata, file)})
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}

			for _, want := range []string{
				"Tool: Eeschema 5.1.0",
				"Revision: B",
				"Components: 14",
				"Library parts: 6",
				"Nets: 2",
				"Unresolved library parts (1):",
				"FPGA_Xilinx:XC7A35T-CPG236",
			} {
				if !strings.Contains(output, want) {
					t.Errorf("Output missing expected string: %q\nGot:\n%s", want, output)
				}
			}
		})
	}

	if _, err := execute(t, []string{"info", "/nonexistent/board.net"}); err == nil {
		t.Errorf("Expected error for non-existent file")
	}
}

// TestCheckE2E tests the check command end-to-end
func TestCheckE2E(t *testing.T) {
	testdata := findTestdata()

	output, err := execute(t, []string{"check",
		"--bom", filepath.Join(testdata, "power_board_bom.csv"),
		"--pnp", filepath.Join(testdata, "power_board.pos"),
	})
	if err == nil {
		t.Errorf("Expected check to report issues")
	}

	for _, want := range []string{
		"BOM items: 11 (DNF: 1)",
		"PNP items: 11",
		"1 parts missing from BOM file: TP1",
		"1 parts missing from PNP file: U3",
		"1 DNF parts included in PNP file: R5",
		"C2 value mismatch",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("Output missing expected string: %q\nGot:\n%s", want, output)
		}
	}

	if _, err := execute(t, []string{"check", "--bom", filepath.Join(testdata, "power_board_bom.csv")}); err == nil {
		t.Errorf("Expected error without --pnp")
	}
}
