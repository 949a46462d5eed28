// Package catalog holds the static service and item tables. Prices are fixed
// in source; items the shop cannot price up front carry QuoteRequired instead
// of a unit price and are handled by the quote flow.
package catalog

import "github.com/shopspring/decimal"

type Service struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type Category struct {
	ID        string `json:"id"`
	ServiceID string `json:"service_id"`
	Name      string `json:"name"`
}

type Item struct {
	ID            string          `json:"id"`
	CategoryID    string          `json:"category_id"`
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	QuoteRequired bool            `json:"quote_required"`
}

var services = []Service{
	{ID: "easy-bag", Name: "Easy Bag", Description: "Fill a bag, we wash, dry and fold it"},
	{ID: "wash-iron", Name: "Wash & Iron", Description: "Per-piece washing and ironing"},
	{ID: "dry-cleaning", Name: "Dry Cleaning", Description: "Professional dry cleaning per garment"},
	{ID: "repairs", Name: "Repairs & Alterations", Description: "Tailoring, priced on inspection"},
}

var categories = []Category{
	{ID: "bags", ServiceID: "easy-bag", Name: "Bags"},
	{ID: "tops", ServiceID: "wash-iron", Name: "Tops"},
	{ID: "bottoms", ServiceID: "wash-iron", Name: "Bottoms"},
	{ID: "formal", ServiceID: "dry-cleaning", Name: "Formal Wear"},
	{ID: "outerwear", ServiceID: "dry-cleaning", Name: "Outerwear"},
	{ID: "alterations", ServiceID: "repairs", Name: "Alterations"},
}

var items = []Item{
	{ID: "bag-small", CategoryID: "bags", Name: "Small Bag (up to 6kg)", UnitPrice: price("24.99")},
	{ID: "bag-large", CategoryID: "bags", Name: "Large Bag (up to 12kg)", UnitPrice: price("44.99")},
	{ID: "shirt", CategoryID: "tops", Name: "Shirt", UnitPrice: price("4.99")},
	{ID: "blouse", CategoryID: "tops", Name: "Blouse", UnitPrice: price("5.49")},
	{ID: "polo", CategoryID: "tops", Name: "Polo", UnitPrice: price("4.49")},
	{ID: "pants", CategoryID: "bottoms", Name: "Pants", UnitPrice: price("5.99")},
	{ID: "skirt", CategoryID: "bottoms", Name: "Skirt", UnitPrice: price("5.99")},
	{ID: "suit-2pc", CategoryID: "formal", Name: "Suit (2-piece)", UnitPrice: price("16.99")},
	{ID: "dress", CategoryID: "formal", Name: "Dress", UnitPrice: price("12.99")},
	{ID: "coat", CategoryID: "outerwear", Name: "Coat", UnitPrice: price("14.99")},
	{ID: "jacket", CategoryID: "outerwear", Name: "Jacket", UnitPrice: price("11.99")},
	{ID: "wedding-dress", CategoryID: "formal", Name: "Wedding Dress", QuoteRequired: true,
		Description: "Priced after inspection"},
	{ID: "zipper-repair", CategoryID: "alterations", Name: "Zipper Replacement", QuoteRequired: true},
	{ID: "hem-adjust", CategoryID: "alterations", Name: "Hem Adjustment", QuoteRequired: true},
	{ID: "curtains", CategoryID: "outerwear", Name: "Curtains (per panel)", QuoteRequired: true,
		Description: "Depends on fabric and size"},
}

var itemsByID = func() map[string]Item {
	m := make(map[string]Item, len(items))
	for _, it := range items {
		m[it.ID] = it
	}
	return m
}()

var categoriesByID = func() map[string]Category {
	m := make(map[string]Category, len(categories))
	for _, c := range categories {
		m[c.ID] = c
	}
	return m
}()

var servicesByID = func() map[string]Service {
	m := make(map[string]Service, len(services))
	for _, s := range services {
		m[s.ID] = s
	}
	return m
}()

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// Services returns all bookable services in display order.
func Services() []Service {
	out := make([]Service, len(services))
	copy(out, services)
	return out
}

// ServiceByID reports whether the service exists.
func ServiceByID(id string) (Service, bool) {
	s, ok := servicesByID[id]
	return s, ok
}

// ItemByID reports whether the item exists.
func ItemByID(id string) (Item, bool) {
	it, ok := itemsByID[id]
	return it, ok
}

// ServiceForItem resolves the service an item is booked under via its
// category.
func ServiceForItem(item Item) (string, bool) {
	c, ok := categoriesByID[item.CategoryID]
	if !ok {
		return "", false
	}
	return c.ServiceID, true
}

// ItemsForService returns the items of every category under the service.
func ItemsForService(serviceID string) []Item {
	catIDs := make(map[string]bool)
	for _, c := range categories {
		if c.ServiceID == serviceID {
			catIDs[c.ID] = true
		}
	}
	var out []Item
	for _, it := range items {
		if catIDs[it.CategoryID] {
			out = append(out, it)
		}
	}
	return out
}

// CategoriesForService returns the categories under the service.
func CategoriesForService(serviceID string) []Category {
	var out []Category
	for _, c := range categories {
		if c.ServiceID == serviceID {
			out = append(out, c)
		}
	}
	return out
}
