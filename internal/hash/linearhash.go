package hash

import (
	"github.com/cespare/xxhash/v2"
)

// LinearProbingHashAlgorithm - The internally used slot selection algorithm is implemented using xxhash to
// create a hash value over the key and then applying slot = hash % tableSize.
// The table grows additively, so the table size is not rounded to a power of 2.
type LinearProbingHashAlgorithm struct {
	tableSize int64
}

// NewLinearProbingHashAlgorithm - Returns a pointer to a new LinearProbingHashAlgorithm instance
func NewLinearProbingHashAlgorithm(tableSize int64) *LinearProbingHashAlgorithm {
	ha := &LinearProbingHashAlgorithm{}
	ha.SetTableSize(tableSize)
	return ha
}

// SetTableSize - Sets the table size for the hash algorithm.
func (L *LinearProbingHashAlgorithm) SetTableSize(tableSize int64) {
	L.tableSize = tableSize
}

// HashFunc1 - Given key it generates an index (slot) between 0 and table size - 1
func (L *LinearProbingHashAlgorithm) HashFunc1(key string) int64 {
	if L.tableSize <= 0 {
		return 0
	}
	return int64(xxhash.Sum64String(key) % uint64(L.tableSize))
}

// GetTableSize - Returns the table size the implemented hash function is supporting
func (L *LinearProbingHashAlgorithm) GetTableSize() int64 {
	return L.tableSize
}

// ProbeIteration - Implements Linear Probing, returning the slot visited in the given iteration
// when starting from hf1Value in a table of tableSize slots.
func ProbeIteration(hf1Value, iteration, tableSize int64) int64 {
	probe := hf1Value + iteration
	if probe >= tableSize {
		probe %= tableSize
	}

	return probe
}
