// Palaestra - UI Automation Practice Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/palaestra

package store

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tomtom215/palaestra/internal/metrics"
	"github.com/tomtom215/palaestra/internal/models"
)

// ProductStore keeps the demo catalog. The default catalog is fixture
// furniture: names, prices, and stock levels are fixed so table assertions
// (sort by price, filter by category, search "laptop") always see the same
// rows. Reset restores it rather than emptying the dataset.
type ProductStore struct {
	mu    sync.RWMutex
	byID  map[uuid.UUID]models.Product
	order []uuid.UUID // catalog order, stable across list calls
}

// NewProductStore creates an empty product store. Call Seed to load the
// default catalog.
func NewProductStore() *ProductStore {
	return &ProductStore{
		byID: make(map[uuid.UUID]models.Product),
	}
}

// defaultCatalog is the deterministic demo inventory: 30 products across
// five categories. Two are deliberately out of stock for in_stock filtering.
var defaultCatalog = []struct {
	name        string
	description string
	category    string
	price       float64
	stock       int
	rating      float64
}{
	{"Wireless Mouse", "Ergonomic 2.4GHz wireless mouse with silent clicks", "electronics", 24.99, 120, 4.3},
	{"Mechanical Keyboard", "Tenkeyless mechanical keyboard with brown switches", "electronics", 89.99, 45, 4.7},
	{"USB-C Hub", "7-in-1 USB-C hub with HDMI and card reader", "electronics", 39.99, 80, 4.1},
	{"Noise Cancelling Headphones", "Over-ear Bluetooth headphones, 30h battery", "electronics", 199.99, 25, 4.8},
	{"1080p Webcam", "Full HD webcam with built-in microphone", "electronics", 49.99, 0, 3.9},
	{"Portable SSD 1TB", "USB 3.2 portable solid state drive", "electronics", 109.99, 60, 4.6},
	{"Smart Speaker", "Voice-controlled speaker with multi-room audio", "electronics", 59.99, 35, 4.0},
	{"Laptop Stand", "Adjustable aluminium laptop stand", "electronics", 32.99, 95, 4.4},
	{"The Pragmatic Programmer", "20th anniversary edition, Hunt & Thomas", "books", 44.99, 50, 4.8},
	{"Clean Code", "A handbook of agile software craftsmanship", "books", 39.99, 40, 4.5},
	{"Designing Data-Intensive Applications", "The big ideas behind reliable systems", "books", 54.99, 30, 4.9},
	{"The Go Programming Language", "Donovan & Kernighan reference", "books", 49.99, 22, 4.7},
	{"Test Driven Development", "By example, Kent Beck", "books", 34.99, 18, 4.4},
	{"Continuous Delivery", "Reliable software releases, Humble & Farley", "books", 47.99, 0, 4.6},
	{"Cotton T-Shirt", "Plain crew-neck t-shirt, 100% cotton", "clothing", 12.99, 200, 4.0},
	{"Hooded Sweatshirt", "Mid-weight fleece hoodie", "clothing", 34.99, 150, 4.2},
	{"Denim Jeans", "Straight-fit stretch denim", "clothing", 49.99, 90, 4.1},
	{"Running Shoes", "Lightweight cushioned trainers", "clothing", 79.99, 65, 4.5},
	{"Wool Beanie", "Ribbed merino wool beanie", "clothing", 16.99, 110, 4.3},
	{"Rain Jacket", "Packable waterproof shell", "clothing", 64.99, 40, 4.2},
	{"French Press", "8-cup borosilicate glass coffee press", "home", 29.99, 55, 4.5},
	{"Ceramic Mug Set", "Set of 4 stoneware mugs", "home", 24.99, 75, 4.2},
	{"LED Desk Lamp", "Dimmable lamp with USB charging port", "home", 36.99, 85, 4.4},
	{"Throw Blanket", "Knitted cotton throw, 130x170cm", "home", 42.99, 35, 4.6},
	{"Scented Candle", "Soy wax candle, cedar and vanilla", "home", 18.99, 140, 4.1},
	{"Cast Iron Skillet", "Pre-seasoned 26cm skillet", "home", 34.99, 45, 4.7},
	{"Building Blocks Set", "500-piece creative building set", "toys", 29.99, 70, 4.6},
	{"Remote Control Car", "1:18 scale off-road RC car", "toys", 44.99, 30, 4.2},
	{"Jigsaw Puzzle 1000", "1000-piece landscape puzzle", "toys", 19.99, 85, 4.4},
	{"Plush Dinosaur", "Soft 40cm triceratops plush", "toys", 21.99, 125, 4.8},
}

// Seed replaces the catalog with the deterministic defaults.
func (s *ProductStore) Seed() {
	s.mu.Lock()
	s.byID = make(map[uuid.UUID]models.Product, len(defaultCatalog))
	s.order = make([]uuid.UUID, 0, len(defaultCatalog))

	for i, dp := range defaultCatalog {
		p := models.Product{
			ID:          uuid.New(),
			Name:        dp.name,
			Description: dp.description,
			Category:    dp.category,
			Price:       dp.price,
			Stock:       dp.stock,
			InStock:     dp.stock > 0,
			Rating:      dp.rating,
			CreatedAt:   seedEpoch.Add(time.Duration(i) * time.Minute),
		}
		s.byID[p.ID] = p
		s.order = append(s.order, p.ID)
	}
	size := len(s.byID)
	s.mu.Unlock()

	metrics.SetDatasetSize("products", size)
}

// Create adds a product to the catalog.
func (s *ProductStore) Create(req models.CreateProductRequest) models.Product {
	p := models.Product{
		ID:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
		Stock:       req.Stock,
		InStock:     req.Stock > 0,
		Rating:      req.Rating,
		CreatedAt:   time.Now().UTC(),
	}

	s.mu.Lock()
	s.byID[p.ID] = p
	s.order = append(s.order, p.ID)
	size := len(s.byID)
	s.mu.Unlock()

	metrics.SetDatasetSize("products", size)
	return p
}

// Get returns the product with the given id.
func (s *ProductStore) Get(id uuid.UUID) (models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.byID[id]
	if !ok {
		return models.Product{}, ErrNotFound
	}
	return p, nil
}

// List returns products after filter, sort, and pagination, with the total
// match count before paging.
func (s *ProductStore) List(f models.ProductFilter) ([]models.Product, int) {
	s.mu.RLock()
	matched := make([]models.Product, 0, len(s.order))
	for _, id := range s.order {
		if p, ok := s.byID[id]; ok && matchProduct(p, f) {
			matched = append(matched, p)
		}
	}
	s.mu.RUnlock()

	sortProducts(matched, f.SortBy, f.SortOrder)

	total := len(matched)
	return pageSlice(matched, f.Page, f.Limit), total
}

// matchProduct applies every set filter field.
func matchProduct(p models.Product, f models.ProductFilter) bool {
	if f.Category != "" && !strings.EqualFold(p.Category, f.Category) {
		return false
	}
	if f.MinPrice > 0 && p.Price < f.MinPrice {
		return false
	}
	if f.MaxPrice > 0 && p.Price > f.MaxPrice {
		return false
	}
	if f.InStock != nil && (p.Stock > 0) != *f.InStock {
		return false
	}
	if f.Search != "" {
		q := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(p.Name), q) &&
			!strings.Contains(strings.ToLower(p.Description), q) {
			return false
		}
	}
	return true
}

// sortProducts orders the catalog by the requested column. Ties fall back to
// name so the order is total.
func sortProducts(products []models.Product, sortBy, sortOrder string) {
	desc := strings.EqualFold(sortOrder, "desc")

	less := func(a, b models.Product) bool {
		switch sortBy {
		case "category":
			if a.Category != b.Category {
				return a.Category < b.Category
			}
			return a.Name < b.Name
		case "price":
			if a.Price != b.Price {
				return a.Price < b.Price
			}
			return a.Name < b.Name
		case "rating":
			if a.Rating != b.Rating {
				return a.Rating < b.Rating
			}
			return a.Name < b.Name
		case "stock":
			if a.Stock != b.Stock {
				return a.Stock < b.Stock
			}
			return a.Name < b.Name
		case "created_at":
			if !a.CreatedAt.Equal(b.CreatedAt) {
				return a.CreatedAt.Before(b.CreatedAt)
			}
			return a.Name < b.Name
		default: // name
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		}
	}

	sort.SliceStable(products, func(i, j int) bool {
		if desc {
			return less(products[j], products[i])
		}
		return less(products[i], products[j])
	})
}

// Update applies the non-nil fields of the request and returns the updated
// product.
func (s *ProductStore) Update(id uuid.UUID, req models.UpdateProductRequest) (models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.byID[id]
	if !ok {
		return models.Product{}, ErrNotFound
	}

	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.Category != nil {
		p.Category = *req.Category
	}
	if req.Price != nil {
		p.Price = *req.Price
	}
	if req.Stock != nil {
		p.Stock = *req.Stock
	}
	if req.Rating != nil {
		p.Rating = *req.Rating
	}
	p.InStock = p.Stock > 0

	s.byID[id] = p
	return p, nil
}

// Delete removes a product by id.
func (s *ProductStore) Delete(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[id]; !ok {
		return ErrNotFound
	}
	delete(s.byID, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}

	metrics.SetDatasetSize("products", len(s.byID))
	return nil
}

// Count returns the current number of products.
func (s *ProductStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}

// Categories returns the distinct category names in the catalog, sorted.
func (s *ProductStore) Categories() []string {
	s.mu.RLock()
	set := make(map[string]struct{})
	for _, p := range s.byID {
		set[p.Category] = struct{}{}
	}
	s.mu.RUnlock()

	cats := make([]string, 0, len(set))
	for c := range set {
		cats = append(cats, c)
	}
	sort.Strings(cats)
	return cats
}

// Reset restores the default catalog and reports how many products that is.
func (s *ProductStore) Reset() int {
	s.Seed()
	return s.Count()
}
