package probetable

import (
	"errors"
	"fmt"

	"github.com/gostonefire/probetable/internal/conf"
	"github.com/gostonefire/probetable/internal/hash"
	"github.com/gostonefire/probetable/internal/model"
	"github.com/gostonefire/probetable/status"
)

// Get - Gets the value stored for key.
//   - key is the identifier of an entry
//
// It returns:
//   - value is the value of the matching entry if found
//   - err is either of type status.KeyNotFound or a standard error, if something went wrong
func (T *Table) Get(key string) (value int32, err error) {
	index, err := T.find(key)
	if err != nil {
		return
	}

	value = T.slots[index].Value

	return
}

// Insert - Updates the value of an existing key in place, or adds the key in the first free slot along its
// probe sequence. If the table is full it first grows by the configured increment.
//   - key is the identifier of an entry, it can not be longer than the configured max key length
//   - value is the value to store
//
// It returns:
//   - err is of type status.TableFull if probing found no free slot (it should never happen) or a standard error
func (T *Table) Insert(key string, value int32) (err error) {
	if int64(len(key)) > T.maxKeyLength {
		err = fmt.Errorf("key of length %d exceeds max key length %d", len(key), T.maxKeyLength)
		return
	}

	if T.count >= T.Capacity() {
		err = T.resize()
		if err != nil {
			return
		}
	}

	index, err := T.find(key)
	if err == nil {
		T.slots[index].Value = value
		return
	}
	if !errors.Is(err, status.KeyNotFound{}) {
		return
	}

	start, err := T.slotNo(key)
	if err != nil {
		return
	}

	index, err = probe(T.slots, start)
	if err != nil {
		return
	}

	T.slots[index] = model.Slot{Key: key, Value: value, Occupied: true}
	T.count++
	T.lastSlot = index
	if T.firstSlot == conf.NoSlot {
		T.firstSlot = index
	}

	return
}

// Remove - Removes key from the table.
// If the removed slot was marked as first or last slot, that marker is reset and GetFirst or GetLast will
// report an empty table until the next insert sets it again.
//   - key is the identifier of an entry
//
// It returns:
//   - err is either of type status.KeyNotFound or a standard error, if something went wrong
func (T *Table) Remove(key string) (err error) {
	index, err := T.find(key)
	if err != nil {
		return
	}

	T.slots[index] = model.Slot{}
	T.count--
	if index == T.firstSlot {
		T.firstSlot = conf.NoSlot
	}
	if index == T.lastSlot {
		T.lastSlot = conf.NoSlot
	}

	err = T.closeGap(index)

	return
}

// slotNo - Returns the slot number the given key hashes to
func (T *Table) slotNo(key string) (slotNo int64, err error) {
	slotNo = T.hashAlgorithm.HashFunc1(key)
	if slotNo < 0 || slotNo >= T.Capacity() {
		err = fmt.Errorf("received slot number from hash algorithm is outside permitted range")
		return
	}

	return
}

// find - Returns the slot index holding key. Free slots are skipped, since a decoded table may have gaps inside
// a probe run, so a missing key costs a full lap.
func (T *Table) find(key string) (index int64, err error) {
	start, err := T.slotNo(key)
	if err != nil {
		return
	}

	capacity := T.Capacity()
	for i := int64(0); i < capacity; i++ {
		index = hash.ProbeIteration(start, i, capacity)
		slot := T.slots[index]

		if slot.Occupied && slot.Key == key {
			return
		}
	}

	index = conf.NoSlot
	err = status.KeyNotFound{}

	return
}

// probe - Returns the first free slot in slots when scanning forward from start, wrapping at the end.
// It returns an error of type status.TableFull if it gets back to start.
func probe(slots []model.Slot, start int64) (index int64, err error) {
	capacity := int64(len(slots))
	for i := int64(0); i < capacity; i++ {
		index = hash.ProbeIteration(start, i, capacity)
		if !slots[index].Occupied {
			return
		}
	}

	err = status.TableFull{}

	return
}

// closeGap - Moves entries following a freed slot back into it as long as that keeps them reachable from their
// start slot, keeping probe runs free of holes left by Remove. Markers follow the entry they point at.
func (T *Table) closeGap(hole int64) (err error) {
	var start int64
	capacity := T.Capacity()
	removed := hole

	for i := int64(1); i < capacity; i++ {
		index := hash.ProbeIteration(removed, i, capacity)
		if !T.slots[index].Occupied {
			return
		}

		start, err = T.slotNo(T.slots[index].Key)
		if err != nil {
			return
		}

		if !cyclicBetween(hole, start, index) {
			T.slots[hole] = T.slots[index]
			T.slots[index] = model.Slot{}
			if T.firstSlot == index {
				T.firstSlot = hole
			}
			if T.lastSlot == index {
				T.lastSlot = hole
			}
			hole = index
		}
	}

	return
}

// cyclicBetween - Returns true if x lies in the cyclic range (from, to]
func cyclicBetween(from, x, to int64) bool {
	if from <= to {
		return from < x && x <= to
	}
	return x > from || x <= to
}

// resize - Grows the table by the growth increment and rehashes every entry into the new slots.
// The first slot marker follows its entry, the last slot marker ends up at the last entry rehashed in slot order.
func (T *Table) resize() (err error) {
	oldCapacity := T.Capacity()
	newCapacity := oldCapacity + T.growthIncrement
	newSlots := make([]model.Slot, newCapacity)
	newFirst, newLast := conf.NoSlot, conf.NoSlot

	T.hashAlgorithm.SetTableSize(newCapacity)
	defer func() {
		if err != nil {
			T.hashAlgorithm.SetTableSize(oldCapacity)
		}
	}()

	var start, index int64
	for i, slot := range T.slots {
		if !slot.Occupied {
			continue
		}

		start = T.hashAlgorithm.HashFunc1(slot.Key)
		if start < 0 || start >= newCapacity {
			err = fmt.Errorf("received slot number from hash algorithm is outside permitted range")
			return
		}

		index, err = probe(newSlots, start)
		if err != nil {
			err = fmt.Errorf("error while rehashing into %d slots: %w", newCapacity, err)
			return
		}

		newSlots[index] = slot
		if int64(i) == T.firstSlot {
			newFirst = index
		}
		newLast = index
	}

	T.slots = newSlots
	T.firstSlot = newFirst
	T.lastSlot = newLast

	T.logger.Printf("table resized to %d slots", newCapacity)

	return
}
