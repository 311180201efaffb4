package dto

import "github.com/fekuna/omnipos-admin-console/internal/model"

// ProductFilters carries only the filters the user set. Zero means unset.
type ProductFilters struct {
	CategoryID  int64
	StockStatus model.StockStatus
}

// ProductQuery is the raw state of a product listing's search and filter controls.
type ProductQuery struct {
	SearchTerm  string
	CategoryID  int64
	StockStatus model.StockStatus
}
