package model

// Header - Represents the persisted table header data
type Header struct {
	Capacity  int64
	Count     int64
	FirstSlot int64
	LastSlot  int64
}

// Slot - Represents one slot in the table. Key and Value are meaningless when Occupied is false.
type Slot struct {
	Key      string
	Value    int32
	Occupied bool
}
