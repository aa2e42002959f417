package model

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
)

// Client is a customer record. It owns its contacts.
type Client struct {
	ID         uint `gorm:"primaryKey"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
	Name       string `gorm:"size:100;not null"`
	NameNorm   string `gorm:"size:100;not null;uniqueIndex:ux_clients_name_norm"`
	Country    string `gorm:"size:2"` // ISO 3166-1 alpha-2, empty if unknown
	Background string `gorm:"size:1000"`

	Contacts []Contact `gorm:"constraint:OnDelete:CASCADE;"`
}

// BeforeSave keeps NameNorm in sync with Name.
func (c *Client) BeforeSave(tx *gorm.DB) error {
	c.NameNorm = NormalizeName(c.Name)
	return nil
}

// NormalizeName turns a client name into the form used for the
// case-insensitive uniqueness check.
func NormalizeName(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

// CreateClient inserts a new client. The ID is assigned by the database;
// a caller-supplied ID is discarded.
func (s *Store) CreateClient(ctx context.Context, c *Client) error {
	c.ID = 0
	err := s.db.WithContext(ctx).Omit("Contacts").Create(c).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrClientNameTaken
	}
	return err
}

// LoadAllClients returns all clients ordered by ID.
func (s *Store) LoadAllClients(ctx context.Context) ([]Client, error) {
	clients := make([]Client, 0)
	err := s.db.WithContext(ctx).Order("id").Find(&clients).Error
	return clients, err
}

// LoadClient loads a single client. It returns ErrClientNotFound when no
// row matches.
func (s *Store) LoadClient(ctx context.Context, id uint) (*Client, error) {
	c := &Client{}
	err := s.db.WithContext(ctx).First(c, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrClientNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func clientExists(db *gorm.DB, id uint) (bool, error) {
	var n int64
	if err := db.Model(&Client{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

// ClientNameExists reports whether the name is already used by another
// client, ignoring case and surrounding whitespace.
func (s *Store) ClientNameExists(ctx context.Context, name string) (bool, error) {
	var n int64
	err := s.db.WithContext(ctx).
		Model(&Client{}).
		Where("name_norm = ?", NormalizeName(name)).
		Count(&n).Error
	return n > 0, err
}

// ListClientsForExport loads all clients with their contacts.
func (s *Store) ListClientsForExport(ctx context.Context) ([]Client, error) {
	clients := make([]Client, 0)
	err := s.db.WithContext(ctx).
		Preload("Contacts", func(db *gorm.DB) *gorm.DB {
			return db.Order("contacts.id")
		}).
		Order("id").
		Find(&clients).Error
	return clients, err
}
