package bank

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"
)

func buildSheet(t *testing.T, rows [][]interface{}) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatal(err)
		}
		row := row
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatal(err)
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatal(err)
	}
	return buf
}

func TestImportSpreadsheet(t *testing.T) {
	dir := t.TempDir()
	b := New(dir, testCategories)
	b.LoadCategories()

	buf := buildSheet(t, [][]interface{}{
		{"pregunta", "opcion1", "opcion2", "opcion3", "opcion4", "correcta"},
		{"¿Planeta rojo?", "Venus", "Marte", "Júpiter", "Saturno", 2},
		{"¿Símbolo del oro?", "Ag", "Au", "Fe", "Cu", "Au"},
		{"", "a", "b", "c", "d", 1},
		{"¿Repetida?", "a", "a", "c", "d", 1},
		{"¿Sin correcta?", "a", "b", "c", "d", "z"},
	})

	report, err := b.ImportSpreadsheet("Ciencia", buf)
	if err != nil {
		t.Fatalf("ImportSpreadsheet failed: %v", err)
	}
	if report.Added != 2 {
		t.Errorf("Expected 2 added, got %d", report.Added)
	}
	if len(report.Rejected) != 3 {
		t.Fatalf("Expected 3 rejected, got %+v", report.Rejected)
	}
	if report.Rejected[0].Row != 4 {
		t.Errorf("Expected row 4 rejected first, got %d", report.Rejected[0].Row)
	}

	qs, _ := b.Questions("Ciencia")
	if len(qs) != 2 || qs[0].RespuestaCorrecta != "Marte" || qs[1].RespuestaCorrecta != "Au" {
		t.Errorf("Unexpected imported questions %+v", qs)
	}
}

func TestImportSpreadsheet_UnknownCategory(t *testing.T) {
	b := New(t.TempDir(), testCategories)
	buf := buildSheet(t, [][]interface{}{{"pregunta"}})
	if _, err := b.ImportSpreadsheet("Astrología", buf); err == nil {
		t.Error("Expected error for unknown category")
	}
}

func TestImportSpreadsheet_NotASpreadsheet(t *testing.T) {
	b := New(t.TempDir(), testCategories)
	if _, err := b.ImportSpreadsheet("Ciencia", bytes.NewBufferString("hola")); err == nil {
		t.Error("Expected error for invalid file")
	}
}
