// Package fixtures provides an in-memory store and sample data for tests.
package fixtures

import (
	"context"
	"testing"

	"github.com/billingcat/clients/model"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DefaultRegion is the phone number region of the test configuration.
const DefaultRegion = "RU"

// TestConfig returns a configuration that points at an in-memory database.
func TestConfig() *model.Config {
	return &model.Config{
		Mode:          "test",
		Port:          8080,
		DefaultRegion: DefaultRegion,
		BodyLimit:     "1M",
		Servers: map[string]model.Server{
			"test": {Database: "sqlite3", DBName: ":memory:"},
		},
	}
}

// NewTestStore opens a fresh in-memory sqlite database with the schema
// migrated. It is closed when the test ends.
func NewTestStore(t *testing.T) *model.Store {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?_pragma=foreign_keys(1)"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("cannot open test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("cannot get sql.DB: %v", err)
	}
	// every connection to :memory: is a separate database
	sqlDB.SetMaxOpenConns(1)

	store := model.NewStore(db, TestConfig())
	if err := store.AutoMigrate(); err != nil {
		t.Fatalf("cannot migrate test database: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

// TestData holds the records created by SeedTestData.
type TestData struct {
	Client *model.Client
	Phone  *model.Contact
	Email  *model.Contact
}

// SeedTestData creates one client with a phone and an e-mail contact.
func SeedTestData(t *testing.T, store *model.Store) *TestData {
	t.Helper()
	ctx := context.Background()

	c := Client()
	if err := store.CreateClient(ctx, c); err != nil {
		t.Fatalf("cannot create client: %v", err)
	}
	phone := Contact(WithContactType(model.ContactTypePhone), WithContactValue("+74951234567"), WithContactLabel("office"))
	if err := store.CreateContact(ctx, c.ID, phone); err != nil {
		t.Fatalf("cannot create phone contact: %v", err)
	}
	email := Contact(WithContactType(model.ContactTypeEmail), WithContactValue("info@example.com"))
	if err := store.CreateContact(ctx, c.ID, email); err != nil {
		t.Fatalf("cannot create email contact: %v", err)
	}
	return &TestData{Client: c, Phone: phone, Email: email}
}

// ClientOption modifies a client built by Client.
type ClientOption func(*model.Client)

// WithClientName sets the client name.
func WithClientName(name string) ClientOption {
	return func(c *model.Client) { c.Name = name }
}

// WithClientCountry sets the alpha-2 country code.
func WithClientCountry(code string) ClientOption {
	return func(c *model.Client) { c.Country = code }
}

// WithClientBackground sets the background text.
func WithClientBackground(s string) ClientOption {
	return func(c *model.Client) { c.Background = s }
}

// Client returns an unsaved client with sensible defaults.
func Client(opts ...ClientOption) *model.Client {
	c := &model.Client{
		Name:       "Acme Ltd",
		Country:    "DE",
		Background: "Long-standing customer",
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// ContactOption modifies a contact built by Contact.
type ContactOption func(*model.Contact)

// WithContactType sets the contact type.
func WithContactType(t model.ContactType) ContactOption {
	return func(ct *model.Contact) { ct.Type = t }
}

// WithContactValue sets the contact value.
func WithContactValue(v string) ContactOption {
	return func(ct *model.Contact) { ct.Value = v }
}

// WithContactLabel sets the contact label.
func WithContactLabel(l string) ContactOption {
	return func(ct *model.Contact) { ct.Label = l }
}

// Contact returns an unsaved contact. The client ID is set when it is
// stored with Store.CreateContact.
func Contact(opts ...ContactOption) *model.Contact {
	ct := &model.Contact{
		Type:  model.ContactTypeOther,
		Value: "n/a",
	}
	for _, o := range opts {
		o(ct)
	}
	return ct
}
