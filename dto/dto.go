// Package dto contains the shapes exchanged with API clients. They are
// separate from the gorm models in package model.
package dto

import (
	"encoding/xml"
	"time"
)

// ClientDTO is the external representation of a client. ID and the
// timestamps are set by the server and ignored on input.
type ClientDTO struct {
	XMLName    xml.Name  `json:"-" xml:"client"`
	ID         uint      `json:"id" xml:"id,attr"`
	Name       string    `json:"name" xml:"name" validate:"required,min=2,max=100"`
	Country    string    `json:"country,omitempty" xml:"country,omitempty" validate:"omitempty,max=60"`
	Background string    `json:"background,omitempty" xml:"background,omitempty" validate:"max=1000"`
	CreatedAt  time.Time `json:"created_at" xml:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" xml:"updated_at"`
}

// ContactDTO is the external representation of a contact entry.
type ContactDTO struct {
	XMLName   xml.Name  `json:"-" xml:"contact"`
	ID        uint      `json:"id" xml:"id,attr"`
	ClientID  uint      `json:"client_id" xml:"client_id"`
	Type      string    `json:"type" xml:"type" validate:"required,contacttype"`
	Label     string    `json:"label,omitempty" xml:"label,omitempty" validate:"max=100"`
	Value     string    `json:"value" xml:"value" validate:"required,max=300"`
	CreatedAt time.Time `json:"created_at" xml:"created_at"`
	UpdatedAt time.Time `json:"updated_at" xml:"updated_at"`
}

// ClientResponse wraps a list of clients.
type ClientResponse struct {
	XMLName xml.Name    `json:"-" xml:"clients"`
	Clients []ClientDTO `json:"clients" xml:"client"`
}

// ContactResponse wraps a list of contacts.
type ContactResponse struct {
	XMLName  xml.Name     `json:"-" xml:"contacts"`
	Contacts []ContactDTO `json:"contacts" xml:"contact"`
}

// NewClientResponse never returns a nil list so that JSON renders [].
func NewClientResponse(clients []ClientDTO) ClientResponse {
	if clients == nil {
		clients = []ClientDTO{}
	}
	return ClientResponse{Clients: clients}
}

// NewContactResponse never returns a nil list so that JSON renders [].
func NewContactResponse(contacts []ContactDTO) ContactResponse {
	if contacts == nil {
		contacts = []ContactDTO{}
	}
	return ContactResponse{Contacts: contacts}
}

// FieldError describes one rejected input field.
type FieldError struct {
	Field   string `json:"field" xml:"field,attr"`
	Message string `json:"message" xml:",chardata"`
}

// String renders the error as "field - message".
func (fe FieldError) String() string {
	return fe.Field + " - " + fe.Message
}

// ErrorResponse is the body of every failed request. Timestamp is in
// milliseconds since the Unix epoch.
type ErrorResponse struct {
	XMLName   xml.Name     `json:"-" xml:"error"`
	Message   string       `json:"message" xml:"message"`
	Timestamp int64        `json:"timestamp" xml:"timestamp"`
	Errors    []FieldError `json:"errors,omitempty" xml:"errors>error,omitempty"`
}

// NewErrorResponse stamps the response with the current time.
func NewErrorResponse(message string, fields []FieldError) ErrorResponse {
	return ErrorResponse{
		Message:   message,
		Timestamp: time.Now().UnixMilli(),
		Errors:    fields,
	}
}
