package models

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/golang-jwt/jwt/v4"
)

// --- JWT & Auth ---

// SessionClaims is the payload of a persisted session token.
type SessionClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Credentials maps a username to its bcrypt secret hash, persisted as one document.
type Credentials map[string]string

// --- Core Models ---

// Item is a tracked product. SalesCount and SalesRevenue are lifetime cumulative
// figures; SalesRevenue keeps the historical "sales_price" key on disk.
type Item struct {
	Price        float64 `json:"price"`
	Count        int     `json:"count"`
	SalesCount   int     `json:"sales_count"`
	SalesRevenue float64 `json:"sales_price"`
}

// Items is a collection of named items that remembers insertion order, so that
// listings and the persisted document keep the order items were added in.
type Items struct {
	names  []string
	byName map[string]Item
}

// ItemEntry pairs an item with its name for ordered listings.
type ItemEntry struct {
	Name string
	Item Item
}

// Len reports the number of items.
func (it *Items) Len() int {
	return len(it.names)
}

// Get returns the item stored under name.
func (it *Items) Get(name string) (Item, bool) {
	item, ok := it.byName[name]
	return item, ok
}

// Set stores item under name, appending to the order only when the name is new.
func (it *Items) Set(name string, item Item) {
	if it.byName == nil {
		it.byName = make(map[string]Item)
	}
	if _, ok := it.byName[name]; !ok {
		it.names = append(it.names, name)
	}
	it.byName[name] = item
}

// Delete removes the item stored under name, if any.
func (it *Items) Delete(name string) {
	if _, ok := it.byName[name]; !ok {
		return
	}
	delete(it.byName, name)
	for i, n := range it.names {
		if n == name {
			it.names = append(it.names[:i], it.names[i+1:]...)
			break
		}
	}
}

// Entries returns all items in insertion order.
func (it *Items) Entries() []ItemEntry {
	entries := make([]ItemEntry, 0, len(it.names))
	for _, name := range it.names {
		entries = append(entries, ItemEntry{Name: name, Item: it.byName[name]})
	}
	return entries
}

// Clone returns an independent copy.
func (it *Items) Clone() Items {
	clone := Items{
		names:  append([]string(nil), it.names...),
		byName: make(map[string]Item, len(it.byName)),
	}
	for name, item := range it.byName {
		clone.byName[name] = item
	}
	return clone
}

// MarshalJSON writes the items as a JSON object in insertion order.
// encoding/json would sort map keys, losing the order.
func (it Items) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range it.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		value, err := json.Marshal(it.byName[name])
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a JSON object token by token so the on-disk key order
// becomes the insertion order.
func (it *Items) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("items: expected JSON object, got %v", tok)
	}

	*it = Items{byName: make(map[string]Item)}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("items: expected object key, got %v", tok)
		}
		var item Item
		if err := dec.Decode(&item); err != nil {
			return fmt.Errorf("items: decoding %q: %w", name, err)
		}
		it.Set(name, item)
	}

	// Consume the closing brace.
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}

// Inventory is the full set of items owned by one user plus the cumulative
// revenue across all of them. TotalSales always equals the sum of the items'
// SalesRevenue.
type Inventory struct {
	Items      Items   `json:"inventory"`
	TotalSales float64 `json:"total_sales"`
}

// Clone returns an independent copy, used to roll back a mutation whose save failed.
func (inv *Inventory) Clone() Inventory {
	return Inventory{Items: inv.Items.Clone(), TotalSales: inv.TotalSales}
}

// Document is the persisted inventory document: one Inventory per username,
// read and rewritten as a whole.
type Document map[string]*Inventory

// ItemStats is the lifetime sales summary of one item, labelled with the date
// of the requested reporting period.
type ItemStats struct {
	Name         string
	Price        float64
	Count        int
	SalesCount   int
	SalesRevenue float64
	PeriodLabel  string
}
