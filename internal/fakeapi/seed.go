package fakeapi

import (
	"github.com/fekuna/omnipos-admin-console/internal/model"
	"github.com/shopspring/decimal"
)

// SeedDemo fills the fake with a small catalogue for local runs.
func (s *Server) SeedDemo() {
	s.SeedCategories(
		model.Category{ID: 1, CategoryName: "Shoes", Description: "Footwear"},
		model.Category{ID: 2, CategoryName: "Bags"},
	)
	s.SeedProducts(
		model.Product{ID: 3, ProductName: "Trail Boot", Description: "Waterproof", Price: decimal.RequireFromString("89.90"), StockStatus: model.StockAvailable, CategoryID: 1},
		model.Product{ID: 4, ProductName: "Canvas Sneaker", Price: decimal.RequireFromString("39.00"), StockStatus: model.StockUnavailable, CategoryID: 1},
		model.Product{ID: 5, ProductName: "Leather Tote", Price: decimal.RequireFromString("120.00"), StockStatus: model.StockAvailable, CategoryID: 2},
	)
	s.SeedAdmins(
		model.AdminUser{ID: 6, UserName: "Dara", Email: "dara@shop.test", Status: model.UserActive, RoleID: 1},
		model.AdminUser{ID: 7, UserName: "Sokha", Email: "sokha@shop.test", Status: model.UserInactive, RoleID: 1},
	)
	s.SeedConsumers(
		model.ConsumerUser{ID: 8, UserName: "Vannak", Email: "vannak@mail.test", Status: model.UserActive},
		model.ConsumerUser{ID: 9, Email: "guest@mail.test", Status: model.UserActive},
	)
}
