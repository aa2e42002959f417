package model_test

import (
	"context"
	"errors"
	"testing"

	"github.com/billingcat/clients/fixtures"
	"github.com/billingcat/clients/model"
)

func TestCreateContact_UnknownClient(t *testing.T) {
	store := fixtures.NewTestStore(t)

	ct := fixtures.Contact(fixtures.WithContactType(model.ContactTypeEmail), fixtures.WithContactValue("a@b.de"))
	err := store.CreateContact(context.Background(), 42, ct)
	if !errors.Is(err, model.ErrClientNotFound) {
		t.Errorf("err = %v, want ErrClientNotFound", err)
	}
}

func TestCreateContact_SetsClientID(t *testing.T) {
	store := fixtures.NewTestStore(t)
	data := fixtures.SeedTestData(t, store)

	ct := fixtures.Contact()
	ct.ClientID = 999
	ct.ID = 999
	if err := store.CreateContact(context.Background(), data.Client.ID, ct); err != nil {
		t.Fatalf("CreateContact failed: %v", err)
	}
	if ct.ClientID != data.Client.ID {
		t.Errorf("ClientID = %d, want %d", ct.ClientID, data.Client.ID)
	}
	if ct.ID == 999 || ct.ID == 0 {
		t.Errorf("ID = %d, want database assigned ID", ct.ID)
	}
}

func TestLoadContactsForClient(t *testing.T) {
	store := fixtures.NewTestStore(t)
	data := fixtures.SeedTestData(t, store)
	ctx := context.Background()

	all, err := store.LoadContactsForClient(ctx, data.Client.ID, "")
	if err != nil {
		t.Fatalf("LoadContactsForClient failed: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("len = %d, want 2", len(all))
	}

	phones, err := store.LoadContactsForClient(ctx, data.Client.ID, model.ContactTypePhone)
	if err != nil {
		t.Fatalf("LoadContactsForClient failed: %v", err)
	}
	if len(phones) != 1 || phones[0].ID != data.Phone.ID {
		t.Errorf("phones = %+v, want only contact %d", phones, data.Phone.ID)
	}

	none, err := store.LoadContactsForClient(ctx, data.Client.ID, model.ContactTypeFax)
	if err != nil {
		t.Fatalf("LoadContactsForClient failed: %v", err)
	}
	if none == nil || len(none) != 0 {
		t.Errorf("fax = %v, want empty non-nil slice", none)
	}

	_, err = store.LoadContactsForClient(ctx, data.Client.ID+1, "")
	if !errors.Is(err, model.ErrClientNotFound) {
		t.Errorf("err = %v, want ErrClientNotFound", err)
	}
}

func TestLoadContactsForClient_OtherClient(t *testing.T) {
	store := fixtures.NewTestStore(t)
	fixtures.SeedTestData(t, store)
	ctx := context.Background()

	other := fixtures.Client(fixtures.WithClientName("Other"))
	if err := store.CreateClient(ctx, other); err != nil {
		t.Fatalf("CreateClient failed: %v", err)
	}
	contacts, err := store.LoadContactsForClient(ctx, other.ID, "")
	if err != nil {
		t.Fatalf("LoadContactsForClient failed: %v", err)
	}
	if len(contacts) != 0 {
		t.Errorf("len = %d, want 0", len(contacts))
	}
}

func TestParseContactType(t *testing.T) {
	tests := []struct {
		in    string
		want  model.ContactType
		valid bool
	}{
		{"phone", model.ContactTypePhone, true},
		{"  PHONE ", model.ContactTypePhone, true},
		{"GitHub", model.ContactTypeGitHub, true},
		{"pager", "pager", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got := model.ParseContactType(tt.in)
		if got != tt.want {
			t.Errorf("ParseContactType(%q) = %q, want %q", tt.in, got, tt.want)
		}
		if got.IsValid() != tt.valid {
			t.Errorf("%q.IsValid() = %v, want %v", got, got.IsValid(), tt.valid)
		}
	}
}

func TestContactHref(t *testing.T) {
	tests := []struct {
		ct   model.Contact
		want string
	}{
		{model.Contact{Type: model.ContactTypePhone, Value: "+74951234567"}, "tel:+74951234567"},
		{model.Contact{Type: model.ContactTypeEmail, Value: "a@b.de"}, "mailto:a@b.de"},
		{model.Contact{Type: model.ContactTypeWebsite, Value: "example.com"}, "https://example.com"},
		{model.Contact{Type: model.ContactTypeGitHub, Value: "https://github.com/x"}, "https://github.com/x"},
	}
	for _, tt := range tests {
		if got := tt.ct.Href(); got != tt.want {
			t.Errorf("Href(%s %q) = %q, want %q", tt.ct.Type, tt.ct.Value, got, tt.want)
		}
	}
}
