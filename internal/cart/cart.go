package cart

import (
	"errors"
	"strings"
	"sync"

	"github.com/harrylevesque/tododemo/internal/models"
)

// ErrInvalidItem is returned by AddItem for a new line without a name.
var ErrInvalidItem = errors.New("cart: item name must not be empty")

// Product is what callers add; the cart tracks the quantity.
type Product struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Cart holds at most one line per product id. Every mutation notifies the
// subscribers with a snapshot of the new lines, in mutation order.
// Subscribers may read the cart but must not mutate it.
type Cart struct {
	// writeMu serializes mutations together with their notification; it is
	// always taken before mu.
	writeMu     sync.Mutex
	mu          sync.Mutex
	items       []models.CartItem
	subscribers []func([]models.CartItem)
}

// New returns a cart seeded with items. Lines with a non-positive quantity
// are dropped and duplicate ids are merged.
func New(items []models.CartItem) *Cart {
	c := &Cart{}
	for _, it := range items {
		if it.Quantity < 1 {
			continue
		}
		if i := c.find(it.ID); i >= 0 {
			c.items[i].Quantity += it.Quantity
			continue
		}
		c.items = append(c.items, it)
	}
	return c
}

// Subscribe registers fn to run after every change.
func (c *Cart) Subscribe(fn func([]models.CartItem)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subscribers = append(c.subscribers, fn)
}

// AddItem increments the quantity of an existing line or appends a new one
// with quantity 1.
func (c *Cart) AddItem(p Product) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	c.mu.Lock()
	if i := c.find(p.ID); i >= 0 {
		c.items[i].Quantity++
	} else {
		if strings.TrimSpace(p.Name) == "" {
			c.mu.Unlock()
			return ErrInvalidItem
		}
		c.items = append(c.items, models.CartItem{ID: p.ID, Name: p.Name, Quantity: 1})
	}
	c.changed()
	return nil
}

// RemoveItem drops the whole line for id regardless of its quantity. It
// reports whether a line was removed.
func (c *Cart) RemoveItem(id int) bool {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	c.mu.Lock()
	i := c.find(id)
	if i < 0 {
		c.mu.Unlock()
		return false
	}
	c.items = append(c.items[:i], c.items[i+1:]...)
	c.changed()
	return true
}

func (c *Cart) Clear() {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	c.mu.Lock()
	c.items = nil
	c.changed()
}

// Items returns a copy of the lines in insertion order.
func (c *Cart) Items() []models.CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot()
}

// TotalItems is the sum of all quantities.
func (c *Cart) TotalItems() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := 0
	for _, it := range c.items {
		total += it.Quantity
	}
	return total
}

// changed releases mu and then notifies subscribers. caller holds writeMu
// and mu
func (c *Cart) changed() {
	snap := c.snapshot()
	subs := append([]func([]models.CartItem){}, c.subscribers...)
	c.mu.Unlock()
	for _, fn := range subs {
		fn(snap)
	}
}

func (c *Cart) snapshot() []models.CartItem {
	out := make([]models.CartItem, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Cart) find(id int) int {
	for i := range c.items {
		if c.items[i].ID == id {
			return i
		}
	}
	return -1
}
