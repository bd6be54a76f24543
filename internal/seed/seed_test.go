package seed

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/bazaarhq/bazaar-backend/pkg/config"
	"github.com/bazaarhq/bazaar-backend/pkg/db"
	"github.com/bazaarhq/bazaar-backend/pkg/db/models"
)

func newTestDB(t *testing.T) *db.Client {
	t.Helper()
	path := fmt.Sprintf("file:seed_%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	client, err := db.New(context.Background(), config.DBConfig{Path: path}, nil)
	if err != nil {
		t.Fatalf("opening test db: %v", err)
	}
	if err := models.AutoMigrate(client.DB()); err != nil {
		t.Fatalf("migrating test db: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestRunPopulatesDemoDataset(t *testing.T) {
	client := newTestDB(t)
	ctx := context.Background()

	if err := Run(ctx, client.DB()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var productCount, branchCount, userCount int64
	if err := client.DB().Model(&models.Product{}).Count(&productCount).Error; err != nil {
		t.Fatalf("counting products: %v", err)
	}
	if err := client.DB().Model(&models.Branch{}).Count(&branchCount).Error; err != nil {
		t.Fatalf("counting branches: %v", err)
	}
	if err := client.DB().Model(&models.User{}).Count(&userCount).Error; err != nil {
		t.Fatalf("counting users: %v", err)
	}

	if productCount != 5 {
		t.Errorf("got %d products, want 5", productCount)
	}
	if branchCount != 5 {
		t.Errorf("got %d branches, want 5", branchCount)
	}
	if userCount != 2 {
		t.Errorf("got %d users, want 2", userCount)
	}
}

func TestRunLinksProductsToCityBranches(t *testing.T) {
	client := newTestDB(t)

	if err := Run(context.Background(), client.DB()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var rug models.Product
	if err := client.DB().First(&rug, "name = ?", "Afghan Rug").Error; err != nil {
		t.Fatalf("loading product: %v", err)
	}
	if rug.City != "Kabul" {
		t.Fatalf("got city %q", rug.City)
	}
	if rug.BranchID == nil {
		t.Fatal("expected product linked to its city branch")
	}

	var branch models.Branch
	if err := client.DB().First(&branch, "id = ?", *rug.BranchID).Error; err != nil {
		t.Fatalf("loading branch: %v", err)
	}
	if branch.City != "Kabul" {
		t.Fatalf("got branch city %q", branch.City)
	}
}

func TestRunIsIdempotent(t *testing.T) {
	client := newTestDB(t)
	ctx := context.Background()

	if err := Run(ctx, client.DB()); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if err := Run(ctx, client.DB()); err != nil {
		t.Fatalf("second run: %v", err)
	}

	var productCount int64
	if err := client.DB().Model(&models.Product{}).Count(&productCount).Error; err != nil {
		t.Fatalf("counting products: %v", err)
	}
	if productCount != 5 {
		t.Fatalf("got %d products after double seed, want 5", productCount)
	}
}
