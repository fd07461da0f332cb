package conf

// DefaultInitialCapacity - Number of slots a table gets when no capacity is configured
const DefaultInitialCapacity int64 = 5000

// DefaultGrowthIncrement - Number of slots added to a full table when it grows
const DefaultGrowthIncrement int64 = 2000

// DefaultMaxKeyLength - Longest key (in bytes) accepted on insert and on decode
const DefaultMaxKeyLength int64 = 1000

// NoSlot - Marker value for first and last slot when they point nowhere
const NoSlot int64 = -1

// HeaderLength - Length of the persisted table header, four 32-bit integers
const HeaderLength int64 = 16

// CapacityOffset - Header offset to the capacity - 4 bytes
const CapacityOffset int64 = 0

// CountOffset - Header offset to the number of occupied slots - 4 bytes
const CountOffset int64 = 4

// FirstSlotOffset - Header offset to the first slot marker - 4 bytes
const FirstSlotOffset int64 = 8

// LastSlotOffset - Header offset to the last slot marker - 4 bytes
const LastSlotOffset int64 = 12

// KeyLengthBytes - Number of bytes holding the key length in a slot record
const KeyLengthBytes int64 = 4

// ValueBytes - Number of bytes holding the value in a slot record
const ValueBytes int64 = 4

// OccupiedFlagBytes - Number of bytes holding the occupied flag in a slot record
const OccupiedFlagBytes int64 = 1

// MinSlotRecordLength - Length of a slot record with an empty key
const MinSlotRecordLength = KeyLengthBytes + ValueBytes + OccupiedFlagBytes

// SlotOccupied - Flag indicating a slot that is in use
const SlotOccupied uint8 = 1

// SlotFree - Flag indicating a slot that is not in use
const SlotFree uint8 = 0

// LoadProgressInterval - Number of slots between progress log lines while loading
const LoadProgressInterval int64 = 1000
