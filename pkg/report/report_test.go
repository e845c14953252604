package report

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/unklstewy/flapsim/pkg/flap"
	"github.com/unklstewy/flapsim/pkg/sweep"
)

func sampleResult() sweep.Result {
	return sweep.Result{
		Variant:  flap.DoubleSlotted,
		Model:    "baseline",
		Reynolds: 1e6,
		Samples: []sweep.Sample{
			{Angle: 0, Lift: 0, Drag: 0.01, LiftToDrag: 0},
			{Angle: 0.5, Lift: 0.1234, Drag: 0.0101, LiftToDrag: 12.2178},
		},
	}
}

func TestResultFileName(t *testing.T) {
	tests := []struct {
		v    flap.Variant
		want string
	}{
		{flap.Plain, "plain_flap_results.csv"},
		{flap.DoubleSlotted, "double-slotted_flap_results.csv"},
		{flap.LeadingEdgeSlat, "leading-edge_slat_results.csv"},
	}
	for _, tt := range tests {
		if got := ResultFileName(tt.v); got != tt.want {
			t.Errorf("ResultFileName(%v) = %q, want %q", tt.v, got, tt.want)
		}
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, sampleResult()); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("failed to read back csv: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records, want 3", len(records))
	}
	if strings.Join(records[0], ",") != "angle,lift,drag,lift_to_drag" {
		t.Errorf("unexpected header %v", records[0])
	}
	if want := []string{"0.5", "0.1234", "0.0101", "12.2178"}; strings.Join(records[2], ",") != strings.Join(want, ",") {
		t.Errorf("row = %v, want %v", records[2], want)
	}
}

func TestWriteBestCSV(t *testing.T) {
	best := []sweep.Best{{
		Variant:         flap.Fowler,
		OptimalIndex:    15,
		OptimalAngle:    2.5,
		MaxLiftToDrag:   30.25,
		LiftCoefficient: 0.5,
		DragCoefficient: 0.0165,
	}}

	var buf bytes.Buffer
	if err := WriteBestCSV(&buf, best); err != nil {
		t.Fatalf("WriteBestCSV failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if lines[1] != "Fowler Flap,15,2.5,30.25,0.5,0.0165" {
		t.Errorf("row = %q", lines[1])
	}
}

func TestColumnTitle(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"angle", "Angle"},
		{"lift_to_drag", "L/D Ratio"},
		{"optimal_angle", "Optimal Angle"},
		{"max_lift_drag_ratio", "Max Lift Drag Ratio"},
	}
	for _, tt := range tests {
		if got := ColumnTitle(tt.in); got != tt.want {
			t.Errorf("ColumnTitle(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLaTeXTable(t *testing.T) {
	table := LaTeXTable("zap_flap_results",
		[]string{"angle", "lift_to_drag"},
		[][]string{{"1.5", "12.34567"}, {"2", "x_y"}})

	for _, want := range []string{
		"\\begin{table}[h!]\n",
		"\\caption{Aerodynamic Data for Zap Flap Results}\n",
		"\\label{tab:zap_flap_results}\n",
		"\\begin{tabular}{cc}\n",
		"Angle & L/D Ratio \\\\\n",
		"1.500 & 12.346 \\\\\n",
		"2 & x\\_y \\\\\n",
	} {
		if !strings.Contains(table, want) {
			t.Errorf("table missing %q:\n%s", want, table)
		}
	}
	if !strings.HasSuffix(table, "\\end{tabular}\n\\end{table}") {
		t.Errorf("table not closed:\n%s", table)
	}
}

func TestCSVToLaTeXEmpty(t *testing.T) {
	if _, err := CSVToLaTeX(strings.NewReader(""), "empty"); err == nil {
		t.Error("expected error for empty csv")
	}
}

func TestSaveAndConvert(t *testing.T) {
	dir := t.TempDir()
	dataDir := filepath.Join(dir, "data")
	tablesDir := filepath.Join(dir, "tables")

	paths, err := SaveResults(dataDir, []sweep.Result{sampleResult()})
	if err != nil {
		t.Fatalf("SaveResults failed: %v", err)
	}
	if len(paths) != 1 || filepath.Base(paths[0]) != "double-slotted_flap_results.csv" {
		t.Fatalf("unexpected paths %v", paths)
	}
	best, err := sweep.Summarize([]sweep.Result{sampleResult()})
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}
	if _, err := SaveBest(dataDir, best); err != nil {
		t.Fatalf("SaveBest failed: %v", err)
	}

	written, err := ConvertDir(dataDir, tablesDir)
	if err != nil {
		t.Fatalf("ConvertDir failed: %v", err)
	}
	if len(written) != 2 {
		t.Fatalf("wrote %d tables, want 2", len(written))
	}

	content, err := os.ReadFile(filepath.Join(tablesDir, "optimal_configurations_table.tex"))
	if err != nil {
		t.Fatalf("missing best table: %v", err)
	}
	if !strings.Contains(string(content), "Double-Slotted Flap & 1 & 0.500") {
		t.Errorf("best table missing row:\n%s", content)
	}
}

func TestSavePlot(t *testing.T) {
	path := filepath.Join(t.TempDir(), PlotFileName)
	if err := SavePlot([]sweep.Result{sampleResult()}, LiftToDrag, path, 6, 4); err != nil {
		t.Fatalf("SavePlot failed: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("plot not written: %v", err)
	}
	if info.Size() == 0 {
		t.Error("plot is empty")
	}
}
