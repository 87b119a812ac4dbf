package models

import "time"

// Movement is one container transfer event.
type Movement struct {
	ID          string    `json:"id"`
	Date        time.Time `json:"date"`
	Origin      string    `json:"origin"`
	Destination string    `json:"destination"`
	Status      string    `json:"status"`
	Container   string    `json:"container"`
	Driver      string    `json:"driver"`
	Plate       string    `json:"plate"`
	PhotoURL    string    `json:"photoUrl,omitempty"`
}

// EditableFields is the part of a movement handed to the edit flow.
type EditableFields struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	Status      string `json:"status"`
	Container   string `json:"container"`
	Driver      string `json:"driver"`
	Plate       string `json:"plate"`
}

func (m Movement) Editable() EditableFields {
	return EditableFields{
		Origin:      m.Origin,
		Destination: m.Destination,
		Status:      m.Status,
		Container:   m.Container,
		Driver:      m.Driver,
		Plate:       m.Plate,
	}
}

func (m Movement) HasPhoto() bool {
	return m.PhotoURL != ""
}
