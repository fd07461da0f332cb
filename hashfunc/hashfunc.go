package hashfunc

// HashAlgorithm - Interface that permits a user of the Table to supply a custom slot
// selection algorithm suited for its particular distribution of keys.
type HashAlgorithm interface {
	// SetTableSize - Sets the table size for the hash algorithm.
	// It is called when a table is created, when it is loaded from file and every time the table grows.
	// Hence, a custom hash algorithm that already has a table size will get it overwritten by the
	// current capacity of the table.
	//   - tableSize is the number of slots the table currently has
	SetTableSize(tableSize int64)

	// HashFunc1 - Given key it generates an index (slot) between 0 and table size - 1
	// Any number returned outside the table size (0 -> table size - 1) will result in an error down stream.
	HashFunc1(key string) int64

	// GetTableSize - Returns the table size the implemented hash function is supporting
	GetTableSize() int64
}
