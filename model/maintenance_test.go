package model_test

import (
	"context"
	"testing"

	"github.com/billingcat/clients/fixtures"
	"github.com/billingcat/clients/model"
)

func TestRunMaintenance(t *testing.T) {
	store := fixtures.NewTestStore(t)
	data := fixtures.SeedTestData(t, store)
	ctx := context.Background()

	if err := model.RunMaintenance(ctx, store); err != nil {
		t.Fatalf("RunMaintenance failed: %v", err)
	}

	// contacts with an existing client are kept
	contacts, err := store.LoadContactsForClient(ctx, data.Client.ID, "")
	if err != nil {
		t.Fatalf("LoadContactsForClient failed: %v", err)
	}
	if len(contacts) != 2 {
		t.Errorf("len = %d, want 2", len(contacts))
	}

	// a second run is harmless
	if err := model.RunMaintenance(ctx, store); err != nil {
		t.Fatalf("second RunMaintenance failed: %v", err)
	}
}
