package testutil

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/xuri/excelize/v2"

	"swingctx/pkg/contracts/domain"
)

// SampleHeader is the column layout written by the motion recorder
var SampleHeader = []string{domain.ColumnTimestamp, domain.ColumnAccelMagnitude, domain.ColumnGyroMagnitude}

// SampleRows returns n data rows where row i has accel "i" and gyro "2i",
// so every value in a contextualized record points back at its source row.
func SampleRows(n int) [][]string {
	rows := make([][]string, n)
	for i := range rows {
		rows[i] = []string{
			fmt.Sprintf("%.1f", float64(i)*0.1),
			strconv.Itoa(i),
			strconv.Itoa(2 * i),
		}
	}
	return rows
}

// WriteCSV writes header and rows to dir/name and returns the path
func WriteCSV(t *testing.T, dir, name string, header []string, rows [][]string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	file, err := os.Create(path)
	if err != nil {
		t.Fatalf("create fixture %s: %v", path, err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if header != nil {
		if err := w.Write(header); err != nil {
			t.Fatalf("write fixture header: %v", err)
		}
	}
	if err := w.WriteAll(rows); err != nil {
		t.Fatalf("write fixture rows: %v", err)
	}
	return path
}

// WriteSampleCSV writes an n-row motion file with the standard header
func WriteSampleCSV(t *testing.T, dir, name string, n int) string {
	t.Helper()
	return WriteCSV(t, dir, name, SampleHeader, SampleRows(n))
}

// WriteWorkbook writes header and rows to the first sheet of a new workbook.
// A nil header leaves the data rows starting at row 1.
func WriteWorkbook(t *testing.T, dir, name string, header []string, rows [][]string) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	all := rows
	if header != nil {
		all = append([][]string{header}, rows...)
	}
	for i := range all {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetSheetRow(sheet, cell, &all[i]); err != nil {
			t.Fatalf("write workbook row %d: %v", i, err)
		}
	}

	path := filepath.Join(dir, name)
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook %s: %v", path, err)
	}
	return path
}

// ReadCSV reads every row of a CSV file, header included
func ReadCSV(t *testing.T, path string) [][]string {
	t.Helper()

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return rows
}
