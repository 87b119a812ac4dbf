// Package export serializes the filtered movement view to CSV.
package export

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rogerio-castellano/container-tracker/internal/models"
)

const (
	Filename    = "movimientos_contenedores.csv"
	ContentType = "text/csv;charset=utf-8"
)

var Header = []string{"chofer", "placa", "fecha", "tipo de movimiento", "contenedor"}

// ErrNothingToExport is returned for an empty view; export is disabled in that state.
var ErrNothingToExport = errors.New("no movements to export")

// MovementType composes the "origin -> destination (status)" column.
func MovementType(m models.Movement) string {
	return fmt.Sprintf("%s -> %s (%s)", m.Origin, m.Destination, m.Status)
}

// Row renders one CSV line. The movement type column is always quoted.
func Row(m models.Movement) string {
	quoted := `"` + strings.ReplaceAll(MovementType(m), `"`, `""`) + `"`
	return strings.Join([]string{
		m.Driver,
		m.Plate,
		m.Date.Format("2006-01-02"),
		quoted,
		m.Container,
	}, ",")
}

// WriteCSV writes the header and one line per movement, lines joined by "\n".
func WriteCSV(w io.Writer, movements []models.Movement) error {
	if len(movements) == 0 {
		return ErrNothingToExport
	}

	lines := make([]string, 0, len(movements)+1)
	lines = append(lines, strings.Join(Header, ","))
	for _, m := range movements {
		lines = append(lines, Row(m))
	}

	if _, err := io.WriteString(w, strings.Join(lines, "\n")); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	return nil
}
