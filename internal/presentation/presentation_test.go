package presentation

import (
	"encoding/json"
	"net/url"
	"testing"
	"time"

	"github.com/rogerio-castellano/container-tracker/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayoutFor(t *testing.T) {
	assert.Equal(t, LayoutCards, LayoutFor(375))
	assert.Equal(t, LayoutCards, LayoutFor(767))
	assert.Equal(t, LayoutTable, LayoutFor(768))
	assert.Equal(t, LayoutTable, LayoutFor(1440))
	assert.Equal(t, LayoutTable, LayoutFor(0))
}

func TestBuildView_LayoutsShareRows(t *testing.T) {
	movements := []models.Movement{
		{ID: "a", Container: "MSCU 123", Date: time.Date(2024, 6, 3, 9, 5, 0, 0, time.UTC), PhotoURL: "https://img/a.jpg"},
		{ID: "b", Container: "TGHU 456", Date: time.Date(2024, 6, 4, 17, 0, 0, 0, time.UTC)},
	}

	cards := BuildView(movements, LayoutCards, "/movements")
	table := BuildView(movements, LayoutTable, "/movements")

	assert.Equal(t, cards.Rows, table.Rows)
	assert.True(t, cards.ExportEnabled)
	assert.Empty(t, cards.EmptyMessage)
}

func TestBuildView_Empty(t *testing.T) {
	cards := BuildView(nil, LayoutCards, "/movements")
	table := BuildView(nil, LayoutTable, "/movements")

	assert.False(t, cards.ExportEnabled)
	assert.Equal(t, EmptyCardsMessage, cards.EmptyMessage)
	assert.Equal(t, EmptyTableMessage, table.EmptyMessage)
	assert.NotNil(t, cards.Rows)
}

func TestBuildRow_PhotoActions(t *testing.T) {
	withPhoto := BuildRow(models.Movement{ID: "a", PhotoURL: "https://img/a.jpg"}, "/movements")
	assert.Nil(t, withPhoto.Actions.AttachPhoto)
	require.NotNil(t, withPhoto.Actions.ViewPhoto)
	require.NotNil(t, withPhoto.Actions.DownloadPhoto)
	assert.Equal(t, "/movements/a/photo", withPhoto.Actions.ViewPhoto.Href)
	assert.Equal(t, "/movements/a/photo/download", withPhoto.Actions.DownloadPhoto.Href)

	without := BuildRow(models.Movement{ID: "b"}, "/movements/")
	require.NotNil(t, without.Actions.AttachPhoto)
	assert.Equal(t, "POST", without.Actions.AttachPhoto.Method)
	assert.Nil(t, without.Actions.ViewPhoto)
	assert.Nil(t, without.Actions.DownloadPhoto)

	assert.Equal(t, "/movements/b/edit", without.Actions.Edit.Href)
	assert.Equal(t, "DELETE", without.Actions.Delete.Method)
	assert.Equal(t, DeleteConfirmText, without.Actions.Delete.Confirm)
}

func TestDateLabel(t *testing.T) {
	assert.Equal(t, "03 jun 2024, 09:05", DateLabel(time.Date(2024, 6, 3, 9, 5, 0, 0, time.UTC)))
	assert.Equal(t, "21 sept 2024, 18:30", DateLabel(time.Date(2024, 9, 21, 18, 30, 0, 0, time.UTC)))
}

func TestEditURL(t *testing.T) {
	m := models.Movement{
		ID:          "abc",
		Date:        time.Now(),
		Origin:      "Port",
		Destination: "Yard",
		Status:      "In Transit",
		Container:   "CONT1",
		Driver:      "Juan",
		Plate:       "ABC123",
		PhotoURL:    "https://img/abc.jpg",
	}

	raw, err := EditURL("/movements/new", m)
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "/movements/new", u.Path)
	assert.Equal(t, "abc", u.Query().Get("id"))

	var data map[string]string
	require.NoError(t, json.Unmarshal([]byte(u.Query().Get("data")), &data))
	assert.Equal(t, map[string]string{
		"origin":      "Port",
		"destination": "Yard",
		"status":      "In Transit",
		"container":   "CONT1",
		"driver":      "Juan",
		"plate":       "ABC123",
	}, data)
}

func TestEditURL_BaseWithQuery(t *testing.T) {
	raw, err := EditURL("https://app.example/movements/new?mode=edit", models.Movement{ID: "x"})
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "edit", u.Query().Get("mode"))
	assert.Equal(t, "x", u.Query().Get("id"))
}

func TestPhotoFilename(t *testing.T) {
	assert.Equal(t, "foto_MSCU_123_456.jpg", PhotoFilename("MSCU 123 456"))
	assert.Equal(t, "foto_A__B.jpg", PhotoFilename("A \tB"))
	assert.Equal(t, "foto_CONT1.jpg", PhotoFilename("CONT1"))
}
