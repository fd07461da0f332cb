package probetable

import (
	"fmt"
	"io"
	"log"

	"github.com/gostonefire/probetable/hashfunc"
	"github.com/gostonefire/probetable/internal/conf"
	"github.com/gostonefire/probetable/internal/hash"
	"github.com/gostonefire/probetable/internal/model"
	"github.com/gostonefire/probetable/status"
)

// Conf - Is a struct passed to NewTable and NewFromFile holding the table configuration.
// Fields left at their zero value get the package defaults.
//   - InitialCapacity is the number of slots of a new table (default 5000)
//   - GrowthIncrement is the number of slots added every time a full table grows (default 2000)
//   - MaxKeyLength is the longest key in bytes accepted by Insert and by decoding (default 1000)
//   - HashAlgorithm is an optional custom hash algorithm following the hashfunc.HashAlgorithm interface
//   - Logger receives progress output such as resizes, saves and loads, nil discards it
type Conf struct {
	InitialCapacity int64
	GrowthIncrement int64
	MaxKeyLength    int64
	HashAlgorithm   hashfunc.HashAlgorithm
	Logger          *log.Logger
}

// Table - An open addressing string to int32 table using linear probing.
// It keeps track of the slots holding the first and the last inserted key, and grows by a fixed
// increment when an insert finds it full. A Table is not safe for concurrent use.
type Table struct {
	slots           []model.Slot
	count           int64
	firstSlot       int64
	lastSlot        int64
	growthIncrement int64
	maxKeyLength    int64
	hashAlgorithm   hashfunc.HashAlgorithm
	logger          *log.Logger
}

// NewTable - Returns a new empty table with the capacity given in tableConf.
//   - tableConf is a Conf struct, see Conf for defaults
//
// It returns:
//   - table is a pointer to the new Table
//   - err is a standard error if the configuration is invalid
func NewTable(tableConf Conf) (table *Table, err error) {
	table, err = newTable(tableConf)
	if err != nil {
		return
	}

	capacity := tableConf.InitialCapacity
	if capacity == 0 {
		capacity = conf.DefaultInitialCapacity
	}

	table.slots = make([]model.Slot, capacity)
	table.hashAlgorithm.SetTableSize(capacity)

	return
}

// NewFromFile - Returns a table loaded from a file previously written by Save.
// InitialCapacity in tableConf is ignored, the capacity comes from the file.
//   - fileName is the name of an existing table file
//   - tableConf is a Conf struct, see Conf for defaults
//
// It returns:
//   - table is a pointer to the loaded Table
//   - err is of type status.Corrupt if the file could not be read or decoded, or a standard error if the configuration is invalid
func NewFromFile(fileName string, tableConf Conf) (table *Table, err error) {
	t, err := newTable(tableConf)
	if err != nil {
		return
	}

	err = t.Load(fileName)
	if err != nil {
		return
	}

	table = t

	return
}

// newTable - Validates tableConf and returns a table without slots
func newTable(tableConf Conf) (table *Table, err error) {
	if tableConf.InitialCapacity < 0 {
		err = fmt.Errorf("initial capacity can not be negative")
		return
	}
	if tableConf.GrowthIncrement < 0 {
		err = fmt.Errorf("growth increment can not be negative")
		return
	}
	if tableConf.MaxKeyLength < 0 {
		err = fmt.Errorf("max key length can not be negative")
		return
	}

	table = &Table{
		firstSlot:       conf.NoSlot,
		lastSlot:        conf.NoSlot,
		growthIncrement: tableConf.GrowthIncrement,
		maxKeyLength:    tableConf.MaxKeyLength,
		hashAlgorithm:   tableConf.HashAlgorithm,
		logger:          loggerOrDiscard(tableConf.Logger),
	}

	if table.growthIncrement == 0 {
		table.growthIncrement = conf.DefaultGrowthIncrement
	}
	if table.maxKeyLength == 0 {
		table.maxKeyLength = conf.DefaultMaxKeyLength
	}
	if table.hashAlgorithm == nil {
		table.hashAlgorithm = &hash.LinearProbingHashAlgorithm{}
	}

	return
}

// loggerOrDiscard - Returns logger, or a logger writing nowhere if it is nil
func loggerOrDiscard(logger *log.Logger) *log.Logger {
	if logger == nil {
		return log.New(io.Discard, "", 0)
	}
	return logger
}

// Capacity - Returns the current number of slots
func (T *Table) Capacity() int64 {
	return int64(len(T.slots))
}

// Stats - Returns the number of occupied slots and the capacity of the table
func (T *Table) Stats() (occupied, capacity int64) {
	return T.count, T.Capacity()
}

// GetFirst - Returns the key and value held in the slot of the first inserted key.
// It returns an error of type status.EmptyTable if there is no such slot, which is also the case when
// that key has been removed.
func (T *Table) GetFirst() (key string, value int32, err error) {
	return T.slotAt(T.firstSlot)
}

// GetLast - Returns the key and value held in the slot of the last inserted key.
// It returns an error of type status.EmptyTable if there is no such slot, which is also the case when
// that key has been removed. After the table has grown it is the last key in slot order rather than the
// last inserted.
func (T *Table) GetLast() (key string, value int32, err error) {
	return T.slotAt(T.lastSlot)
}

// slotAt - Returns key and value of the slot index points at
func (T *Table) slotAt(index int64) (key string, value int32, err error) {
	if index == conf.NoSlot {
		err = status.EmptyTable{}
		return
	}

	slot := T.slots[index]
	key, value = slot.Key, slot.Value

	return
}

// header - Returns the persisted header representation of the table
func (T *Table) header() model.Header {
	return model.Header{
		Capacity:  T.Capacity(),
		Count:     T.count,
		FirstSlot: T.firstSlot,
		LastSlot:  T.lastSlot,
	}
}

// replace - Swaps in decoded table state, the header values are taken as they are
func (T *Table) replace(header model.Header, slots []model.Slot) {
	T.slots = slots
	T.count = header.Count
	T.firstSlot = header.FirstSlot
	T.lastSlot = header.LastSlot
	T.hashAlgorithm.SetTableSize(header.Capacity)
}
