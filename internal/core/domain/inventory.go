package domain

import "encoding/gob"

func init() {
	// Pools hold their inventory behind the interface, both concrete
	// strategies must be registered for gob-based persistence.
	gob.Register(&CompactInventory{})
	gob.Register(&IndexedInventory{})
}

const (
	InventoryStrategyCompact = iota
	InventoryStrategyIndexed
)

// Inventory tracks the set of NFT identifiers a pool currently custodies.
// Membership is exact: every id present was deposited and not yet
// withdrawn or sold, with no duplicates. The two strategies are
// interchangeable; the ordering of All is unspecified beyond being stable
// across calls that don't mutate the set.
type Inventory interface {
	// Add inserts an id, rejecting duplicates with ErrPoolDuplicateNFT.
	Add(id string) error
	// Remove deletes an id, reporting whether it was present.
	Remove(id string) bool
	// Contains reports membership of an id.
	Contains(id string) bool
	// All returns the currently held ids.
	All() []string
	// Len returns the number of held ids.
	Len() int
}

// NewInventory returns an empty inventory using the given strategy,
// defaulting to the compact one.
func NewInventory(strategy int) Inventory {
	if strategy == InventoryStrategyIndexed {
		return &IndexedInventory{Index: map[string]int{}}
	}
	return &CompactInventory{}
}

// CompactInventory stores ids in a plain slice and removes by swapping
// with the last element and popping. Removal is O(1) at the cost of
// scrambling the order; lookups scan the slice.
type CompactInventory struct {
	Ids []string
}

func (i *CompactInventory) Add(id string) error {
	if i.Contains(id) {
		return ErrPoolDuplicateNFT
	}
	i.Ids = append(i.Ids, id)
	return nil
}

func (i *CompactInventory) Remove(id string) bool {
	for pos, held := range i.Ids {
		if held == id {
			last := len(i.Ids) - 1
			i.Ids[pos] = i.Ids[last]
			i.Ids = i.Ids[:last]
			return true
		}
	}
	return false
}

func (i *CompactInventory) Contains(id string) bool {
	for _, held := range i.Ids {
		if held == id {
			return true
		}
	}
	return false
}

func (i *CompactInventory) All() []string {
	ids := make([]string, len(i.Ids))
	copy(ids, i.Ids)
	return ids
}

func (i *CompactInventory) Len() int {
	return len(i.Ids)
}

// IndexedInventory keeps an id->position map next to the slice so that
// membership checks don't scan. Removal still swaps with the last element,
// updating the displaced id's index.
type IndexedInventory struct {
	Ids   []string
	Index map[string]int
}

func (i *IndexedInventory) Add(id string) error {
	if i.Index == nil {
		i.Index = map[string]int{}
	}
	if _, ok := i.Index[id]; ok {
		return ErrPoolDuplicateNFT
	}
	i.Index[id] = len(i.Ids)
	i.Ids = append(i.Ids, id)
	return nil
}

func (i *IndexedInventory) Remove(id string) bool {
	pos, ok := i.Index[id]
	if !ok {
		return false
	}
	last := len(i.Ids) - 1
	moved := i.Ids[last]
	i.Ids[pos] = moved
	i.Index[moved] = pos
	i.Ids = i.Ids[:last]
	delete(i.Index, id)
	return true
}

func (i *IndexedInventory) Contains(id string) bool {
	_, ok := i.Index[id]
	return ok
}

func (i *IndexedInventory) All() []string {
	ids := make([]string, len(i.Ids))
	copy(ids, i.Ids)
	return ids
}

func (i *IndexedInventory) Len() int {
	return len(i.Ids)
}
