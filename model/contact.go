package model

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"
)

// ContactType is the kind of a contact entry.
type ContactType string

const (
	ContactTypePhone    ContactType = "phone"
	ContactTypeFax      ContactType = "fax"
	ContactTypeEmail    ContactType = "email"
	ContactTypeWebsite  ContactType = "website"
	ContactTypeLinkedIn ContactType = "linkedin"
	ContactTypeTwitter  ContactType = "twitter"
	ContactTypeGitHub   ContactType = "github"
	ContactTypeOther    ContactType = "other"
)

// ContactTypes lists all known contact types in display order.
var ContactTypes = []ContactType{
	ContactTypePhone,
	ContactTypeFax,
	ContactTypeEmail,
	ContactTypeWebsite,
	ContactTypeLinkedIn,
	ContactTypeTwitter,
	ContactTypeGitHub,
	ContactTypeOther,
}

// IsValid reports whether t is one of the known contact types.
func (t ContactType) IsValid() bool {
	for _, known := range ContactTypes {
		if t == known {
			return true
		}
	}
	return false
}

// ParseContactType normalizes user input ("  Phone ") to a ContactType.
// The result is not guaranteed to be valid.
func ParseContactType(s string) ContactType {
	return ContactType(strings.ToLower(strings.TrimSpace(s)))
}

// Contact is a phone number, e-mail address or similar entry of a client.
type Contact struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	ClientID uint        `gorm:"not null;index:idx_contacts_client_type,priority:1"`
	Type     ContactType `gorm:"size:30;not null;index:idx_contacts_client_type,priority:2"`
	Label    string      `gorm:"size:100"` // e.g. office, mobile, support
	Value    string      `gorm:"size:300;not null"`
}

// Href returns a link target for the contact value.
func (c Contact) Href() string {
	switch c.Type {
	case ContactTypePhone:
		return "tel:" + c.Value
	case ContactTypeFax:
		return "fax:" + c.Value
	case ContactTypeEmail:
		return "mailto:" + c.Value
	default:
		if hasScheme(c.Value) {
			return c.Value
		}
		return "https://" + c.Value
	}
}

func hasScheme(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// CreateContact attaches a contact to the client with the given ID. The
// existence check and the insert run in one transaction. It returns
// ErrClientNotFound if the client does not exist.
func (s *Store) CreateContact(ctx context.Context, clientID uint, ct *Contact) error {
	ct.ID = 0
	ct.ClientID = clientID
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ok, err := clientExists(tx, clientID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrClientNotFound
		}
		return tx.Create(ct).Error
	})
}

// LoadContactsForClient returns the contacts of a client ordered by ID. An
// empty typ returns all contacts, otherwise only those of that type. It
// returns ErrClientNotFound if the client does not exist.
func (s *Store) LoadContactsForClient(ctx context.Context, clientID uint, typ ContactType) ([]Contact, error) {
	db := s.db.WithContext(ctx)
	ok, err := clientExists(db, clientID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrClientNotFound
	}

	q := db.Where("client_id = ?", clientID)
	if typ != "" {
		q = q.Where("type = ?", typ)
	}
	contacts := make([]Contact, 0)
	err = q.Order("id").Find(&contacts).Error
	return contacts, err
}
