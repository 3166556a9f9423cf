package main

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/maxviazov/bookstore-service/internal/model"
	"github.com/maxviazov/bookstore-service/internal/repository/memory"
)

var demoCatalog = map[string][]model.Product{
	"Books": {
		{SKU: "BOOK-TECH-1000", Name: "Crash Course in Python", UnitPrice: decimal.RequireFromString("14.99")},
		{SKU: "BOOK-TECH-1001", Name: "Become a Guru in JavaScript", UnitPrice: decimal.RequireFromString("20.99")},
		{SKU: "BOOK-TECH-1002", Name: "Exploring Vue.js", UnitPrice: decimal.RequireFromString("14.99")},
	},
	"Coffee Mugs": {
		{SKU: "COFFEEMUG-1000", Name: "Coffee Mug - Express", UnitPrice: decimal.RequireFromString("18.99")},
	},
	"Mouse Pads": {
		{SKU: "MOUSEPAD-1000", Name: "Mouse Pad - Fairy Tale", UnitPrice: decimal.RequireFromString("17.99")},
	},
	"Luggage Tags": {},
}

// demo categories are inserted in this order so ids stay stable between runs
var demoOrder = []string{"Books", "Coffee Mugs", "Mouse Pads", "Luggage Tags"}

func seedMemory(s *memory.Store) error {
	now := time.Now().UTC()
	for _, name := range demoOrder {
		c, err := s.AddCategory(model.Category{Name: name})
		if err != nil {
			return err
		}
		for _, p := range demoCatalog[name] {
			p.CategoryID = c.ID
			p.Active = true
			p.UnitsInStock = 100
			p.ImageURL = "assets/images/products/placeholder.png"
			p.DateCreated = now
			p.LastUpdated = now
			if _, err := s.AddProduct(p); err != nil {
				return err
			}
		}
	}
	return nil
}
