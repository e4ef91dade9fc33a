package main

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/commodities-api/internal/application/auth"
	"github.com/jhoicas/commodities-api/internal/application/dto"
	"github.com/jhoicas/commodities-api/internal/application/usecase"
	"github.com/jhoicas/commodities-api/internal/domain/entity"
	"github.com/jhoicas/commodities-api/internal/infrastructure/security"
	"github.com/jhoicas/commodities-api/internal/infrastructure/store"
)

const demoPassword = "password123"

var demoUsers = []dto.CreateUserRequest{
	{Name: "Alice Johnson", Email: "manager@slooz.com", Password: demoPassword, Role: entity.RoleManager},
	{Name: "Bob Smith", Email: "keeper@slooz.com", Password: demoPassword, Role: entity.RoleStoreKeeper},
}

type demoProduct struct {
	name, description, sku, category string
	price                             string
	quantity                          int
	unit                              string
}

var demoProducts = []demoProduct{
	{"Arabica Coffee Beans", "Premium single-origin Arabica coffee beans from Ethiopia", "COM-COF-001", "Beverages", "24.99", 150, "kg"},
	{"Organic Basmati Rice", "Long-grain organic Basmati rice from India", "COM-RIC-001", "Grains", "8.50", 500, "kg"},
	{"Extra Virgin Olive Oil", "Cold-pressed extra virgin olive oil from Spain", "COM-OIL-001", "Oils", "18.75", 200, "liters"},
	{"Refined Sugar", "White refined sugar for commercial use", "COM-SUG-001", "Sweeteners", "3.25", 1000, "kg"},
	{"Whole Wheat Flour", "Stone-ground whole wheat flour", "COM-FLR-001", "Grains", "4.50", 800, "kg"},
	{"Saffron Threads", "Premium Grade A saffron threads from Iran", "COM-SAF-001", "Spices", "299.99", 5, "grams"},
	{"Black Pepper Whole", "Tellicherry black peppercorns", "COM-PEP-001", "Spices", "15.00", 120, "kg"},
	{"Raw Honey", "Unprocessed wildflower honey", "COM-HON-001", "Sweeteners", "12.99", 75, "liters"},
	{"Cocoa Powder", "Dutch-processed premium cocoa powder", "COM-COC-001", "Beverages", "22.00", 60, "kg"},
	{"Himalayan Pink Salt", "Mined from Khewra salt mine, Pakistan", "COM-SAL-001", "Spices", "6.75", 3, "kg"},
	{"Sunflower Oil", "Refined sunflower cooking oil", "COM-OIL-002", "Oils", "7.25", 350, "liters"},
	{"Green Tea Leaves", "Premium Japanese Sencha green tea", "COM-TEA-001", "Beverages", "34.50", 45, "kg"},
}

type result struct {
	Users    []string
	Products int
}

// run vacía el almacenamiento y crea los usuarios y productos de demostración.
func run(ctx context.Context, st *store.Store, bcryptCost int) (result, error) {
	if err := st.Reset(ctx); err != nil {
		return result{}, fmt.Errorf("vaciar almacenamiento: %w", err)
	}

	// El seed no emite tokens: CreateUser no los necesita.
	authUC := auth.NewAuthUseCase(st.Users, security.NewBcryptHasher(bcryptCost), nil)
	var res result
	for _, u := range demoUsers {
		out, err := authUC.CreateUser(ctx, u)
		if err != nil {
			return res, fmt.Errorf("crear usuario %s: %w", u.Email, err)
		}
		res.Users = append(res.Users, out.Email)
	}

	productUC := usecase.NewProductUseCase(st.Products)
	for _, p := range demoProducts {
		desc := p.description
		_, err := productUC.Create(ctx, dto.CreateProductRequest{
			Name:        p.name,
			Description: &desc,
			SKU:         p.sku,
			Category:    p.category,
			Price:       decimal.RequireFromString(p.price),
			Quantity:    p.quantity,
			Unit:        p.unit,
		})
		if err != nil {
			return res, fmt.Errorf("crear producto %s: %w", p.sku, err)
		}
		res.Products++
	}
	return res, nil
}
