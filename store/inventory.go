package store

import (
	"fmt"
	"strings"
	"time"

	"stockpile/models"
	"stockpile/storage"
)

// Session is the inventory store of one authenticated user. It owns the full
// persisted document so a save keeps every other user's data intact, but all
// operations act only on the authenticated user's inventory.
//
// Every mutating operation is all-or-nothing: the in-memory change is applied,
// the whole document is saved, and on a save failure the change is rolled back
// before the error is returned.
type Session struct {
	username string
	adapter  storage.Adapter
	doc      models.Document
	inv      *models.Inventory
}

// NewSession wraps the loaded document for the given user, creating an empty
// inventory for a user the document has not seen before.
func NewSession(adapter storage.Adapter, doc models.Document, username string) *Session {
	if doc == nil {
		doc = models.Document{}
	}
	inv, ok := doc[username]
	if !ok {
		inv = &models.Inventory{}
		doc[username] = inv
	}
	return &Session{username: username, adapter: adapter, doc: doc, inv: inv}
}

// Username returns the authenticated user this session belongs to.
func (s *Session) Username() string {
	return s.username
}

// Add inserts a new item with zeroed sales figures.
func (s *Session) Add(name string, price float64, count int) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: item name must not be empty", ErrInvalidArgument)
	}
	if price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidArgument)
	}
	if count < 0 {
		return fmt.Errorf("%w: count must not be negative", ErrInvalidArgument)
	}
	if _, ok := s.inv.Items.Get(name); ok {
		return fmt.Errorf("%w: %q", ErrDuplicateItem, name)
	}

	snap := s.inv.Clone()
	s.inv.Items.Set(name, models.Item{Price: price, Count: count})
	return s.saveOrRollback(snap)
}

// UpdateCount replaces the stock count of an existing item.
func (s *Session) UpdateCount(name string, newCount int) error {
	if newCount < 0 {
		return fmt.Errorf("%w: count must not be negative", ErrInvalidArgument)
	}
	item, ok := s.inv.Items.Get(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrItemNotFound, name)
	}

	snap := s.inv.Clone()
	item.Count = newCount
	s.inv.Items.Set(name, item)
	return s.saveOrRollback(snap)
}

// ChangePrice replaces the unit price of an existing item.
func (s *Session) ChangePrice(name string, newPrice float64) error {
	if newPrice < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidArgument)
	}
	item, ok := s.inv.Items.Get(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrItemNotFound, name)
	}

	snap := s.inv.Clone()
	item.Price = newPrice
	s.inv.Items.Set(name, item)
	return s.saveOrRollback(snap)
}

// Buy sells quantity units of an item: stock goes down, the item's lifetime
// sales figures and the inventory's total sales go up by quantity*price.
// There is no partial fulfillment. Returns the revenue of this purchase.
func (s *Session) Buy(name string, quantity int) (float64, error) {
	if quantity < 1 {
		return 0, fmt.Errorf("%w: quantity must be at least 1", ErrInvalidArgument)
	}
	item, ok := s.inv.Items.Get(name)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrItemNotFound, name)
	}
	if quantity > item.Count {
		return 0, fmt.Errorf("%w: %q has %d in stock, requested %d",
			ErrInsufficientStock, name, item.Count, quantity)
	}

	snap := s.inv.Clone()
	revenue := float64(quantity) * item.Price
	item.Count -= quantity
	item.SalesCount += quantity
	item.SalesRevenue += revenue
	s.inv.Items.Set(name, item)
	s.inv.TotalSales += revenue

	if err := s.saveOrRollback(snap); err != nil {
		return 0, err
	}
	return revenue, nil
}

// Delete removes an item along with its historical sales figures. The
// inventory's total sales are not reduced.
func (s *Session) Delete(name string) error {
	if _, ok := s.inv.Items.Get(name); !ok {
		return fmt.Errorf("%w: %q", ErrItemNotFound, name)
	}

	snap := s.inv.Clone()
	s.inv.Items.Delete(name)
	return s.saveOrRollback(snap)
}

// Get returns a snapshot of one item.
func (s *Session) Get(name string) (models.Item, error) {
	item, ok := s.inv.Items.Get(name)
	if !ok {
		return models.Item{}, fmt.Errorf("%w: %q", ErrItemNotFound, name)
	}
	return item, nil
}

// List returns snapshots of all items in insertion order.
func (s *Session) List() []models.ItemEntry {
	return s.inv.Items.Entries()
}

// TotalSales returns the cumulative revenue across all items, past and present.
func (s *Session) TotalSales() float64 {
	return s.inv.TotalSales
}

// Periods accepted by Stats.
const (
	PeriodDay   = "day"
	PeriodMonth = "month"
	PeriodYear  = "year"
)

// Stats returns the lifetime sales summary of one item. The period picks the
// date format of the label only; the figures are always lifetime cumulative
// totals. There is no time-bucketed aggregation behind the period argument.
func (s *Session) Stats(name, period string) (models.ItemStats, error) {
	var layout string
	switch period {
	case PeriodDay:
		layout = "2006-01-02"
	case PeriodMonth:
		layout = "2006-01"
	case PeriodYear:
		layout = "2006"
	default:
		return models.ItemStats{}, fmt.Errorf("%w: period must be day, month or year", ErrInvalidArgument)
	}

	item, ok := s.inv.Items.Get(name)
	if !ok {
		return models.ItemStats{}, fmt.Errorf("%w: %q", ErrItemNotFound, name)
	}
	return models.ItemStats{
		Name:         name,
		Price:        item.Price,
		Count:        item.Count,
		SalesCount:   item.SalesCount,
		SalesRevenue: item.SalesRevenue,
		PeriodLabel:  time.Now().Format(layout),
	}, nil
}

// saveOrRollback persists the whole document and restores the pre-mutation
// inventory if the save fails, keeping memory and disk consistent.
func (s *Session) saveOrRollback(snap models.Inventory) error {
	if err := s.adapter.SaveDocument(s.doc); err != nil {
		*s.inv = snap
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return nil
}
