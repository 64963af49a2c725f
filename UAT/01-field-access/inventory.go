// Package inventory is a small store whose state is entirely unexported.
package inventory

// Inventory tracks stock levels by SKU.
type Inventory struct {
	capacity int
	counts   map[string]int
	lastErr  error
	audit    *string
}

// New returns an empty inventory that holds at most capacity items.
func New(capacity int) *Inventory {
	return &Inventory{capacity: capacity, counts: map[string]int{}}
}

// Receive adds quantity items of sku, refusing anything over capacity.
func (inv *Inventory) Receive(sku string, quantity int) bool {
	total := 0
	for _, count := range inv.counts {
		total += count
	}

	if total+quantity > inv.capacity {
		return false
	}

	inv.counts[sku] += quantity

	return true
}
