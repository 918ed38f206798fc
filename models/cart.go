package models

import "time"

// CartData maps product id -> size -> quantity. The table is sparse: absent
// entries mean zero.
type CartData map[string]map[string]int

// Cart is a user's cart as stored in Redis.
type Cart struct {
	UserID    string    `json:"user_id"`
	Items     CartData  `json:"items"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Add increments the quantity for (itemID, size), creating the nested map as
// needed.
func (c CartData) Add(itemID, size string) {
	if c[itemID] == nil {
		c[itemID] = map[string]int{}
	}
	c[itemID][size]++
}

// Set overwrites the quantity for (itemID, size). A quantity of zero or less
// removes the entry, and the item's map once it empties.
func (c CartData) Set(itemID, size string, quantity int) {
	if quantity <= 0 {
		if sizes, ok := c[itemID]; ok {
			delete(sizes, size)
			if len(sizes) == 0 {
				delete(c, itemID)
			}
		}
		return
	}
	if c[itemID] == nil {
		c[itemID] = map[string]int{}
	}
	c[itemID][size] = quantity
}
