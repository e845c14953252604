package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

var latexEscaper = strings.NewReplacer(
	`\`, `\textbackslash{}`,
	"&", `\&`,
	"%", `\%`,
	"$", `\$`,
	"#", `\#`,
	"_", `\_`,
	"{", `\{`,
	"}", `\}`,
)

// ColumnTitle turns a snake_case column into a table heading, e.g.
// "lift_to_drag" becomes "L/D Ratio" and "optimal_angle" "Optimal Angle".
func ColumnTitle(name string) string {
	title := titleCaser.String(strings.ReplaceAll(name, "_", " "))
	return strings.ReplaceAll(title, "Lift To Drag", "L/D Ratio")
}

// StemTitle turns a file stem into a caption, e.g. "zap_flap_results" into
// "Zap Flap Results".
func StemTitle(stem string) string {
	return titleCaser.String(strings.ReplaceAll(stem, "_", " "))
}

// formatCell keeps integers and text as-is and prints other numbers with
// three decimals.
func formatCell(s string) string {
	if _, err := strconv.ParseInt(s, 10, 64); err == nil {
		return s
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return fmt.Sprintf("%.3f", f)
	}
	return latexEscaper.Replace(s)
}

// LaTeXTable renders a header and rows as a centred tabular inside a table
// float labelled tab:<stem>.
func LaTeXTable(stem string, header []string, rows [][]string) string {
	var b strings.Builder
	b.WriteString("\\begin{table}[h!]\n")
	b.WriteString("\\centering\n")
	fmt.Fprintf(&b, "\\caption{Aerodynamic Data for %s}\n", latexEscaper.Replace(StemTitle(stem)))
	fmt.Fprintf(&b, "\\label{tab:%s}\n", stem)
	fmt.Fprintf(&b, "\\begin{tabular}{%s}\n", strings.Repeat("c", len(header)))
	b.WriteString("\\hline\n")

	headings := make([]string, len(header))
	for i, h := range header {
		headings[i] = latexEscaper.Replace(ColumnTitle(h))
	}
	b.WriteString(strings.Join(headings, " & ") + " \\\\\n")
	b.WriteString("\\hline\n")

	for _, row := range rows {
		cells := make([]string, len(row))
		for i, c := range row {
			cells[i] = formatCell(c)
		}
		b.WriteString(strings.Join(cells, " & ") + " \\\\\n")
	}

	b.WriteString("\\hline\n")
	b.WriteString("\\end{tabular}\n")
	b.WriteString("\\end{table}")
	return b.String()
}

// CSVToLaTeX reads a CSV table with a header row and renders it.
func CSVToLaTeX(r io.Reader, stem string) (string, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return "", fmt.Errorf("failed to read csv: %w", err)
	}
	if len(records) == 0 {
		return "", fmt.Errorf("empty csv for %s", stem)
	}
	return LaTeXTable(stem, records[0], records[1:]), nil
}

// ConvertDir converts every *.csv in dataDir into <stem>_table.tex in
// outDir and returns the written paths.
func ConvertDir(dataDir, outDir string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dataDir, "*.csv"))
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create tables directory: %w", err)
	}

	written := make([]string, 0, len(matches))
	for _, path := range matches {
		stem := strings.TrimSuffix(filepath.Base(path), ".csv")

		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", path, err)
		}
		table, err := CSVToLaTeX(f, stem)
		f.Close()
		if err != nil {
			return nil, err
		}

		out := filepath.Join(outDir, stem+"_table.tex")
		if err := os.WriteFile(out, []byte(table), 0644); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", out, err)
		}
		written = append(written, out)
	}
	return written, nil
}
