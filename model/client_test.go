package model_test

import (
	"context"
	"errors"
	"testing"

	"github.com/billingcat/clients/fixtures"
	"github.com/billingcat/clients/model"
)

func TestCreateClient_AssignsID(t *testing.T) {
	store := fixtures.NewTestStore(t)
	ctx := context.Background()

	c := fixtures.Client()
	c.ID = 4711
	if err := store.CreateClient(ctx, c); err != nil {
		t.Fatalf("CreateClient failed: %v", err)
	}
	if c.ID == 0 || c.ID == 4711 {
		t.Errorf("ID = %d, want database assigned ID", c.ID)
	}
	if c.NameNorm != "acme ltd" {
		t.Errorf("NameNorm = %q, want %q", c.NameNorm, "acme ltd")
	}
}

func TestCreateClient_DuplicateName(t *testing.T) {
	store := fixtures.NewTestStore(t)
	ctx := context.Background()

	if err := store.CreateClient(ctx, fixtures.Client(fixtures.WithClientName("Acme Ltd"))); err != nil {
		t.Fatalf("CreateClient failed: %v", err)
	}
	if err := store.CreateClient(ctx, fixtures.Client(fixtures.WithClientName("  ACME   ltd "))); err == nil {
		t.Error("expected error for duplicate name")
	}
}

func TestLoadAllClients(t *testing.T) {
	store := fixtures.NewTestStore(t)
	ctx := context.Background()

	clients, err := store.LoadAllClients(ctx)
	if err != nil {
		t.Fatalf("LoadAllClients failed: %v", err)
	}
	if clients == nil || len(clients) != 0 {
		t.Errorf("empty store: got %v, want empty non-nil slice", clients)
	}

	for _, name := range []string{"Beta", "Alpha", "Gamma"} {
		if err := store.CreateClient(ctx, fixtures.Client(fixtures.WithClientName(name))); err != nil {
			t.Fatalf("CreateClient(%s) failed: %v", name, err)
		}
	}
	clients, err = store.LoadAllClients(ctx)
	if err != nil {
		t.Fatalf("LoadAllClients failed: %v", err)
	}
	if len(clients) != 3 {
		t.Fatalf("len = %d, want 3", len(clients))
	}
	for i := 1; i < len(clients); i++ {
		if clients[i-1].ID >= clients[i].ID {
			t.Errorf("clients not ordered by ID: %d before %d", clients[i-1].ID, clients[i].ID)
		}
	}
	if clients[0].Name != "Beta" {
		t.Errorf("first client = %q, want %q", clients[0].Name, "Beta")
	}
}

func TestLoadClient(t *testing.T) {
	store := fixtures.NewTestStore(t)
	data := fixtures.SeedTestData(t, store)
	ctx := context.Background()

	c, err := store.LoadClient(ctx, data.Client.ID)
	if err != nil {
		t.Fatalf("LoadClient failed: %v", err)
	}
	if c.Name != data.Client.Name {
		t.Errorf("Name = %q, want %q", c.Name, data.Client.Name)
	}

	_, err = store.LoadClient(ctx, data.Client.ID+100)
	if !errors.Is(err, model.ErrClientNotFound) {
		t.Errorf("err = %v, want ErrClientNotFound", err)
	}
	if !errors.Is(err, model.ErrNotFound) {
		t.Errorf("ErrClientNotFound should match ErrNotFound")
	}
}

func TestClientNameExists(t *testing.T) {
	store := fixtures.NewTestStore(t)
	fixtures.SeedTestData(t, store)
	ctx := context.Background()

	ok, err := store.ClientNameExists(ctx, " acme  LTD ")
	if err != nil || !ok {
		t.Errorf("ClientNameExists = %v, %v; want true", ok, err)
	}
	ok, err = store.ClientNameExists(ctx, "Other Inc")
	if err != nil || ok {
		t.Errorf("ClientNameExists(Other Inc) = %v, %v; want false", ok, err)
	}
}

func TestListClientsForExport(t *testing.T) {
	store := fixtures.NewTestStore(t)
	data := fixtures.SeedTestData(t, store)
	ctx := context.Background()

	if err := store.CreateClient(ctx, fixtures.Client(fixtures.WithClientName("No Contacts"))); err != nil {
		t.Fatalf("CreateClient failed: %v", err)
	}

	clients, err := store.ListClientsForExport(ctx)
	if err != nil {
		t.Fatalf("ListClientsForExport failed: %v", err)
	}
	if len(clients) != 2 {
		t.Fatalf("len = %d, want 2", len(clients))
	}
	if len(clients[0].Contacts) != 2 {
		t.Errorf("contacts of %q = %d, want 2", clients[0].Name, len(clients[0].Contacts))
	}
	if clients[0].Contacts[0].ID != data.Phone.ID {
		t.Errorf("first contact = %d, want %d", clients[0].Contacts[0].ID, data.Phone.ID)
	}
	if len(clients[1].Contacts) != 0 {
		t.Errorf("contacts of %q = %d, want 0", clients[1].Name, len(clients[1].Contacts))
	}
}

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Acme", "acme"},
		{"  Acme   Ltd ", "acme ltd"},
		{"ACME\tLTD", "acme ltd"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := model.NormalizeName(tt.in); got != tt.want {
			t.Errorf("NormalizeName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
