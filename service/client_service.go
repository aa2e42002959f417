// Package service holds the client and contact use cases. It converts
// between dto and model types and reports failures as the error kinds in
// errors.go.
package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/billingcat/clients/dto"
	"github.com/billingcat/clients/model"
	"github.com/billingcat/clients/validation"
)

// ClientStore is the persistence the service needs. *model.Store
// implements it.
type ClientStore interface {
	CreateClient(ctx context.Context, c *model.Client) error
	LoadAllClients(ctx context.Context) ([]model.Client, error)
	LoadClient(ctx context.Context, id uint) (*model.Client, error)
	CreateContact(ctx context.Context, clientID uint, ct *model.Contact) error
	LoadContactsForClient(ctx context.Context, clientID uint, typ model.ContactType) ([]model.Contact, error)
	ListClientsForExport(ctx context.Context) ([]model.Client, error)
}

// ClientService implements the client and contact operations.
type ClientService struct {
	store  ClientStore
	region string
	logger *slog.Logger
}

// NewClientService creates the service. region is the default region for
// phone numbers without country prefix (e.g. "RU").
func NewClientService(store ClientStore, region string, logger *slog.Logger) *ClientService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ClientService{
		store:  store,
		region: strings.ToUpper(region),
		logger: logger.With("component", "client_service"),
	}
}

// SaveClient stores a new client and returns its ID. Input IDs are ignored.
func (s *ClientService) SaveClient(ctx context.Context, in dto.ClientDTO) (uint, error) {
	c := &model.Client{
		Name:       validation.NormalizeSpace(in.Name),
		Background: strings.TrimSpace(in.Background),
	}
	if c.Name == "" {
		return 0, validation.Errors{{Field: "name", Message: "is required"}}
	}
	if country := strings.TrimSpace(in.Country); country != "" {
		c.Country = validation.CountryCode(country)
		if c.Country == "" {
			return 0, validation.Errors{{Field: "country", Message: "unknown country"}}
		}
	}

	if err := s.store.CreateClient(ctx, c); err != nil {
		if errors.Is(err, model.ErrClientNameTaken) {
			return 0, validation.Errors{{Field: "name", Message: "client with this name already exists"}}
		}
		return 0, err
	}
	s.logger.Debug("client created", "client_id", c.ID)
	return c.ID, nil
}

// FindAll returns all clients ordered by ID.
func (s *ClientService) FindAll(ctx context.Context) ([]dto.ClientDTO, error) {
	clients, err := s.store.LoadAllClients(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ClientDTO, len(clients))
	for i := range clients {
		out[i] = clientToDTO(&clients[i])
	}
	return out, nil
}

// FindOneByID returns the client or ErrClientNotFound.
func (s *ClientService) FindOneByID(ctx context.Context, id uint) (dto.ClientDTO, error) {
	c, err := s.store.LoadClient(ctx, id)
	if err != nil {
		return dto.ClientDTO{}, err
	}
	return clientToDTO(c), nil
}

// SaveContact attaches a contact to the client and returns the contact ID.
// It returns ErrClientNotFound for an unknown client and an error matching
// ErrContactInvalid if the value does not fit the type.
func (s *ClientService) SaveContact(ctx context.Context, in dto.ContactDTO, clientID uint) (uint, error) {
	typ := model.ParseContactType(in.Type)
	value, err := normalizeContactValue(typ, in.Value, s.region)
	if err != nil {
		return 0, err
	}
	ct := &model.Contact{
		Type:  typ,
		Label: strings.TrimSpace(in.Label),
		Value: value,
	}
	if err := s.store.CreateContact(ctx, clientID, ct); err != nil {
		return 0, err
	}
	s.logger.Debug("contact created", "client_id", clientID, "contact_id", ct.ID, "type", string(typ))
	return ct.ID, nil
}

// FindClientContacts lists the contacts of a client. An empty typ returns
// all of them; otherwise the type is compared case-insensitively.
func (s *ClientService) FindClientContacts(ctx context.Context, clientID uint, typ string) ([]dto.ContactDTO, error) {
	contacts, err := s.store.LoadContactsForClient(ctx, clientID, model.ParseContactType(typ))
	if err != nil {
		return nil, err
	}
	out := make([]dto.ContactDTO, len(contacts))
	for i := range contacts {
		out[i] = contactToDTO(&contacts[i])
	}
	return out, nil
}

func clientToDTO(c *model.Client) dto.ClientDTO {
	return dto.ClientDTO{
		ID:         c.ID,
		Name:       c.Name,
		Country:    c.Country,
		Background: c.Background,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}

func contactToDTO(ct *model.Contact) dto.ContactDTO {
	return dto.ContactDTO{
		ID:        ct.ID,
		ClientID:  ct.ClientID,
		Type:      string(ct.Type),
		Label:     ct.Label,
		Value:     ct.Value,
		CreatedAt: ct.CreatedAt,
		UpdatedAt: ct.UpdatedAt,
	}
}
