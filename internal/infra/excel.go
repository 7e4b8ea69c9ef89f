package infra

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Hoja is one worksheet of an exported workbook: a bold header row followed by data rows.
type Hoja struct {
	Nombre      string
	Encabezados []string
	Filas       [][]any
}

// GenerarLibro renders the sheets into an .xlsx document, in order.
func GenerarLibro(hojas []Hoja) ([]byte, error) {
	if len(hojas) == 0 {
		return nil, fmt.Errorf("excel: no sheets")
	}
	f := excelize.NewFile()
	defer f.Close()

	negrita, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("excel: header style: %w", err)
	}

	for i, h := range hojas {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", h.Nombre); err != nil {
				return nil, fmt.Errorf("excel: rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(h.Nombre); err != nil {
			return nil, fmt.Errorf("excel: new sheet %q: %w", h.Nombre, err)
		}
		if err := escribirHoja(f, h, negrita); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("excel: write: %w", err)
	}
	return buf.Bytes(), nil
}

func escribirHoja(f *excelize.File, h Hoja, estiloEncabezado int) error {
	if len(h.Encabezados) > 0 {
		fila := make([]any, len(h.Encabezados))
		for i, e := range h.Encabezados {
			fila[i] = e
		}
		if err := f.SetSheetRow(h.Nombre, "A1", &fila); err != nil {
			return fmt.Errorf("excel: header %q: %w", h.Nombre, err)
		}
		ultima, _ := excelize.CoordinatesToCellName(len(h.Encabezados), 1)
		if err := f.SetCellStyle(h.Nombre, "A1", ultima, estiloEncabezado); err != nil {
			return fmt.Errorf("excel: header style %q: %w", h.Nombre, err)
		}
	}
	for i, fila := range h.Filas {
		celda, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		fila := fila
		if err := f.SetSheetRow(h.Nombre, celda, &fila); err != nil {
			return fmt.Errorf("excel: row %d of %q: %w", i+2, h.Nombre, err)
		}
	}
	return nil
}
