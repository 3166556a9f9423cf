// Package model contains domain entities shared across layers.
// I keep it lean and focused on data shapes without behavior.
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category groups products in the catalog.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"categoryName"`
}

// Product is a sellable item that belongs to exactly one category.
type Product struct {
	ID           int64           `json:"id"`
	CategoryID   int64           `json:"categoryId"`
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	UnitPrice    decimal.Decimal `json:"unitPrice"`
	ImageURL     string          `json:"imageUrl"`
	Active       bool            `json:"active"`
	UnitsInStock int             `json:"unitsInStock"`
	DateCreated  time.Time       `json:"dateCreated"`
	LastUpdated  time.Time       `json:"lastUpdated"`
}
