package storage

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/gostonefire/probetable/internal/conf"
	"github.com/gostonefire/probetable/internal/model"
	"github.com/gostonefire/probetable/status"
)

// bytesToHeader - Converts a slice of bytes to a Header struct
func bytesToHeader(buf []byte) (header model.Header) {
	header = model.Header{
		Capacity:  int64(int32(binary.LittleEndian.Uint32(buf[conf.CapacityOffset:]))),
		Count:     int64(int32(binary.LittleEndian.Uint32(buf[conf.CountOffset:]))),
		FirstSlot: int64(int32(binary.LittleEndian.Uint32(buf[conf.FirstSlotOffset:]))),
		LastSlot:  int64(int32(binary.LittleEndian.Uint32(buf[conf.LastSlotOffset:]))),
	}

	return
}

// headerToBytes - Converts a Header struct to a slice of bytes
func headerToBytes(header model.Header) (buf []byte) {
	buf = make([]byte, conf.HeaderLength)

	binary.LittleEndian.PutUint32(buf[conf.CapacityOffset:], uint32(int32(header.Capacity)))
	binary.LittleEndian.PutUint32(buf[conf.CountOffset:], uint32(int32(header.Count)))
	binary.LittleEndian.PutUint32(buf[conf.FirstSlotOffset:], uint32(int32(header.FirstSlot)))
	binary.LittleEndian.PutUint32(buf[conf.LastSlotOffset:], uint32(int32(header.LastSlot)))

	return
}

// checkHeaderRange - Makes sure every header field fits the 32-bit layout before encoding
func checkHeaderRange(header model.Header) (err error) {
	if header.Capacity > math.MaxInt32 {
		err = fmt.Errorf("capacity %d does not fit the file layout", header.Capacity)
	}

	return
}

// validateHeader - Does the framing checks a decoded header must pass. Count is only checked
// against capacity, it is never compared to the actual number of occupied slots.
func validateHeader(header model.Header) (err error) {
	if header.Capacity <= 0 {
		err = status.NewCorrupt(nil, "invalid capacity %d in header", header.Capacity)
		return
	}
	if header.Count < 0 || header.Count > header.Capacity {
		err = status.NewCorrupt(nil, "invalid count %d in header for capacity %d", header.Count, header.Capacity)
		return
	}
	if header.FirstSlot < conf.NoSlot || header.FirstSlot >= header.Capacity {
		err = status.NewCorrupt(nil, "first slot %d outside table of capacity %d", header.FirstSlot, header.Capacity)
		return
	}
	if header.LastSlot < conf.NoSlot || header.LastSlot >= header.Capacity {
		err = status.NewCorrupt(nil, "last slot %d outside table of capacity %d", header.LastSlot, header.Capacity)
		return
	}

	return
}
