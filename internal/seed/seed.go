// Package seed loads the demo dataset on boot. The store lives in memory
// only, so every process starts from this same catalog.
package seed

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/bazaarhq/bazaar-backend/pkg/db/models"
	"github.com/bazaarhq/bazaar-backend/pkg/enums"
)

// Cities covered by the demo branch network.
var cities = []string{"Jalalabad", "Kabul", "Kandahar", "Herat", "Balkh"}

type productSeed struct {
	name     string
	price    string
	category string
	city     string
}

var productSeeds = []productSeed{
	{"Afghan Rug", "49.99", "Home", "Kabul"},
	{"Green Tea", "5.99", "Grocery", "Jalalabad"},
	{"Traditional Hat", "12.99", "Wearing Stuff", "Kandahar"},
	{"Handcrafted Jewelry", "24.99", "Accessories", "Herat"},
	{"Dried Fruits", "8.99", "Grocery", "Balkh"},
}

// Run inserts branches, products, and demo users. It is a no-op when the
// catalog already has rows, mirroring the original boot check.
func Run(ctx context.Context, db *gorm.DB) error {
	var count int64
	if err := db.WithContext(ctx).Model(&models.Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hours := "Sat-Thu 08:00-18:00"
	branchByCity := make(map[string]*models.Branch, len(cities))
	for _, city := range cities {
		branch := &models.Branch{
			City:    city,
			Name:    city + " Central Branch",
			Address: "Main Bazaar Road, " + city,
			Hours:   &hours,
		}
		if err := db.WithContext(ctx).Create(branch).Error; err != nil {
			return err
		}
		branchByCity[city] = branch
	}

	for _, p := range productSeeds {
		price, err := decimal.NewFromString(p.price)
		if err != nil {
			return err
		}
		product := &models.Product{
			Name:     p.name,
			Price:    price,
			Category: p.category,
			City:     p.city,
		}
		if branch, ok := branchByCity[p.city]; ok {
			product.BranchID = &branch.ID
		}
		if err := db.WithContext(ctx).Create(product).Error; err != nil {
			return err
		}
	}

	demoUsers := []models.User{
		{Name: "Demo Customer", Email: "customer@bazaar.local", Role: enums.UserRoleCustomer},
		{Name: "Demo Seller", Email: "seller@bazaar.local", Role: enums.UserRoleSeller},
	}
	for i := range demoUsers {
		if err := db.WithContext(ctx).Create(&demoUsers[i]).Error; err != nil {
			return err
		}
	}

	return nil
}
