package bank

import (
	"errors"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"github.com/SBertone10/prog1-equipo-0X/pkg/models"
	"github.com/xuri/excelize/v2"
)

// RowError fila de la planilla que no se pudo importar
type RowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// ImportReport resumen de una importación
type ImportReport struct {
	Added    int        `json:"added"`
	Rejected []RowError `json:"rejected"`
}

// ImportSpreadsheet agrega preguntas desde la primera hoja de un .xlsx.
// Columnas: pregunta, opción 1..4, correcta (1-4 o el texto de la opción).
// La primera fila es el encabezado.
func (b *Bank) ImportSpreadsheet(category string, r io.Reader) (ImportReport, error) {
	report := ImportReport{Rejected: []RowError{}}
	if _, ok := b.lookup(category); !ok {
		return report, &ValidationError{Field: "categoria", Message: "Seleccioná una categoría válida."}
	}

	f, err := excelize.OpenReader(r)
	if err != nil {
		return report, fmt.Errorf("error abriendo planilla: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return report, errors.New("la planilla no tiene hojas")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return report, fmt.Errorf("error leyendo filas: %w", err)
	}

	var records []models.QuestionRecord
	for i, row := range rows {
		if i == 0 || isBlank(row) {
			continue
		}
		record, err := ValidateSubmission(rowToSubmission(row))
		if err != nil {
			report.Rejected = append(report.Rejected, RowError{Row: i + 1, Message: err.Error()})
			continue
		}
		records = append(records, record)
	}

	if len(records) == 0 {
		log.Printf("⚠️ La planilla no tenía preguntas válidas para '%s'", category)
		return report, nil
	}
	if err := b.appendRecords(category, records...); err != nil {
		return report, err
	}
	report.Added = len(records)
	return report, nil
}

func rowToSubmission(row []string) models.QuestionSubmission {
	cell := func(i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}

	sub := models.QuestionSubmission{
		Pregunta: cell(0),
		Opciones: []string{cell(1), cell(2), cell(3), cell(4)},
		Correcta: -1,
	}

	correcta := cell(5)
	if n, err := strconv.Atoi(correcta); err == nil {
		sub.Correcta = n - 1
		return sub
	}
	for i, o := range sub.Opciones {
		if o != "" && o == correcta {
			sub.Correcta = i
			break
		}
	}
	return sub
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
