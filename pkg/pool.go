package dupfiles

import (
	zcsl "github.com/mattkeenan/zerocopyskiplist"
)

// poolContext tags every entry in the pool; the pool has a single context
const poolContext = "pending"

// poolEntry is one candidate path together with its position in the scan
type poolEntry struct {
	index int
	path  string
}

// remainingPool holds the paths not yet assigned to a cluster, ordered by
// their original scan position so the first remaining entry is stable.
type remainingPool struct {
	skiplist *zcsl.ZeroCopySkiplist[poolEntry, int, string]
	entries  []poolEntry // backing storage, the skiplist points into it
}

func newRemainingPool(paths []string) *remainingPool {
	getKeyFromItem := func(entry *poolEntry) int {
		return entry.index
	}
	getItemSize := func(entry *poolEntry) int {
		return len(entry.path)
	}
	cmpKey := func(a, b int) int {
		switch {
		case a < b:
			return -1
		case a > b:
			return 1
		default:
			return 0
		}
	}

	pool := &remainingPool{
		skiplist: zcsl.MakeZeroCopySkiplist[poolEntry, int, string](16, getKeyFromItem, getItemSize, cmpKey),
		entries:  make([]poolEntry, len(paths)),
	}
	for i, path := range paths {
		pool.entries[i] = poolEntry{index: i, path: path}
		pool.skiplist.Insert(&pool.entries[i], poolContext)
	}
	return pool
}

// First returns the remaining entry with the lowest scan position, or nil
func (p *remainingPool) First() *poolEntry {
	first := p.skiplist.First()
	if first == nil {
		return nil
	}
	return first.Item()
}

// Each calls fn for every remaining entry in scan order until fn returns false
func (p *remainingPool) Each(fn func(entry *poolEntry) bool) {
	for current := p.skiplist.First(); current != nil; current = current.Next() {
		if !fn(current.Item()) {
			return
		}
	}
}

// Remove drops the entries with the given scan positions
func (p *remainingPool) Remove(indexes []int) {
	for _, index := range indexes {
		p.skiplist.Delete(index)
	}
}

// Len returns the number of entries still in the pool
func (p *remainingPool) Len() int {
	return p.skiplist.Length()
}

// IsEmpty returns true once every entry has been removed
func (p *remainingPool) IsEmpty() bool {
	return p.skiplist.IsEmpty()
}
