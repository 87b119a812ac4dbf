// Package presentation turns the filtered view into display rows with their per-row
// actions. Cards and table layouts carry the same rows.
package presentation

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"
	"unicode"

	"github.com/rogerio-castellano/container-tracker/internal/models"
)

type Layout string

const (
	LayoutCards Layout = "cards"
	LayoutTable Layout = "table"
)

// MediumBreakpoint is the viewport width, in CSS pixels, where the table replaces cards.
const MediumBreakpoint = 768

const (
	EmptyCardsMessage = "No hay movimientos para los filtros seleccionados."
	EmptyTableMessage = "No hay movimientos registrados para los filtros seleccionados."
	DeleteConfirmText = "¿Estás seguro de que quieres eliminar este movimiento?"
)

// LayoutFor picks cards for narrow viewports. Unknown widths get the table.
func LayoutFor(width int) Layout {
	if width > 0 && width < MediumBreakpoint {
		return LayoutCards
	}
	return LayoutTable
}

func (l Layout) EmptyMessage() string {
	if l == LayoutCards {
		return EmptyCardsMessage
	}
	return EmptyTableMessage
}

type Action struct {
	Method  string `json:"method"`
	Href    string `json:"href"`
	Confirm string `json:"confirm,omitempty"`
}

type Actions struct {
	Edit          *Action `json:"edit"`
	Delete        *Action `json:"delete"`
	AttachPhoto   *Action `json:"attach_photo,omitempty"`
	ViewPhoto     *Action `json:"view_photo,omitempty"`
	DownloadPhoto *Action `json:"download_photo,omitempty"`
}

type Row struct {
	ID          string    `json:"id"`
	Container   string    `json:"container"`
	Driver      string    `json:"driver"`
	Plate       string    `json:"plate"`
	Origin      string    `json:"origin"`
	Destination string    `json:"destination"`
	Status      string    `json:"status"`
	Date        time.Time `json:"date"`
	DateLabel   string    `json:"date_label"`
	PhotoURL    string    `json:"photo_url,omitempty"`
	Actions     Actions   `json:"actions"`
}

// View is what the UI renders for one filter state.
type View struct {
	Layout        Layout `json:"layout"`
	Rows          []Row  `json:"data"`
	EmptyMessage  string `json:"empty_message,omitempty"`
	ExportEnabled bool   `json:"export_enabled"`
}

// BuildView builds rows for movements. basePath prefixes the per-row action links.
func BuildView(movements []models.Movement, layout Layout, basePath string) View {
	v := View{
		Layout:        layout,
		Rows:          make([]Row, len(movements)),
		ExportEnabled: len(movements) > 0,
	}
	for i, m := range movements {
		v.Rows[i] = BuildRow(m, basePath)
	}
	if len(movements) == 0 {
		v.EmptyMessage = layout.EmptyMessage()
	}
	return v
}

func BuildRow(m models.Movement, basePath string) Row {
	self := strings.TrimSuffix(basePath, "/") + "/" + url.PathEscape(m.ID)

	row := Row{
		ID:          m.ID,
		Container:   m.Container,
		Driver:      m.Driver,
		Plate:       m.Plate,
		Origin:      m.Origin,
		Destination: m.Destination,
		Status:      m.Status,
		Date:        m.Date,
		DateLabel:   DateLabel(m.Date),
		PhotoURL:    m.PhotoURL,
		Actions: Actions{
			Edit:   &Action{Method: "GET", Href: self + "/edit"},
			Delete: &Action{Method: "DELETE", Href: self + "?confirm=true", Confirm: DeleteConfirmText},
		},
	}

	if m.HasPhoto() {
		row.Actions.ViewPhoto = &Action{Method: "GET", Href: self + "/photo"}
		row.Actions.DownloadPhoto = &Action{Method: "GET", Href: self + "/photo/download"}
	} else {
		row.Actions.AttachPhoto = &Action{Method: "POST", Href: self + "/photo"}
	}
	return row
}

var monthsES = [...]string{"ene", "feb", "mar", "abr", "may", "jun", "jul", "ago", "sept", "oct", "nov", "dic"}

// DateLabel renders "dd MMM yyyy, HH:mm" with Spanish month abbreviations.
func DateLabel(t time.Time) string {
	return fmt.Sprintf("%02d %s %d, %02d:%02d", t.Day(), monthsES[t.Month()-1], t.Year(), t.Hour(), t.Minute())
}

// EditURL points the edit flow at m: base?id=<id>&data=<json fields>.
func EditURL(base string, m models.Movement) (string, error) {
	data, err := json.Marshal(m.Editable())
	if err != nil {
		return "", fmt.Errorf("failed to encode movement for edit: %w", err)
	}

	params := url.Values{}
	params.Set("id", m.ID)
	params.Set("data", string(data))

	sep := "?"
	if strings.Contains(base, "?") {
		sep = "&"
	}
	return base + sep + params.Encode(), nil
}

// PhotoFilename is the download name for a movement's photo.
func PhotoFilename(container string) string {
	safe := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return '_'
		}
		return r
	}, container)
	return "foto_" + safe + ".jpg"
}
