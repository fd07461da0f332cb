package storage

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"log"

	"github.com/gostonefire/probetable/internal/conf"
	"github.com/gostonefire/probetable/internal/model"
	"github.com/gostonefire/probetable/status"
	"github.com/valyala/bytebufferpool"
)

// flushThreshold - Buffered bytes that trigger a write to the underlying writer while encoding
const flushThreshold = 64 * 1024

// maxPreallocSlots - Upper bound of slots allocated up front while decoding, the rest is appended as read
const maxPreallocSlots int64 = 1 << 16

// DecodeConf - Is a struct passed to Decode holding limits and logging for the decoding.
//   - MaxKeyLength is the longest key length accepted, anything longer is reported as corrupt
//   - Size is the total number of bytes available in the stream, zero if unknown
//   - Logger receives progress output, it must not be nil
type DecodeConf struct {
	MaxKeyLength int64
	Size         int64
	Logger       *log.Logger
}

// Encode - Writes the header followed by exactly len(slots) slot records to w.
// Unoccupied slots are written with an empty key, a zero value and a zero flag.
func Encode(w io.Writer, header model.Header, slots []model.Slot) (err error) {
	err = checkHeaderRange(header)
	if err != nil {
		return
	}
	if int64(len(slots)) != header.Capacity {
		err = fmt.Errorf("header capacity %d does not match %d slots", header.Capacity, len(slots))
		return
	}

	buffer := bytebufferpool.Get()
	defer bytebufferpool.Put(buffer)

	_, _ = buffer.Write(headerToBytes(header))

	for _, slot := range slots {
		buffer.B = appendSlot(buffer.B, slot)

		if buffer.Len() >= flushThreshold {
			_, err = buffer.WriteTo(w)
			if err != nil {
				err = fmt.Errorf("error while writing slot records: %s", err)
				return
			}
			buffer.Reset()
		}
	}

	_, err = buffer.WriteTo(w)
	if err != nil {
		err = fmt.Errorf("error while writing slot records: %s", err)
	}

	return
}

// Decode - Reads a header and exactly header.Capacity slot records from r.
// Any short read, framing violation or key length outside [0, MaxKeyLength] results in a status.Corrupt error,
// in which case no slots are returned. Count, FirstSlot and LastSlot are returned as read.
func Decode(r io.Reader, decodeConf DecodeConf) (header model.Header, slots []model.Slot, err error) {
	br := bufio.NewReader(r)

	buf := make([]byte, conf.HeaderLength)
	_, err = io.ReadFull(br, buf)
	if err != nil {
		err = status.NewCorrupt(err, "error reading header")
		return
	}

	header = bytesToHeader(buf)
	err = validateHeader(header)
	if err != nil {
		return
	}

	if decodeConf.Size > 0 && decodeConf.Size < conf.HeaderLength+header.Capacity*conf.MinSlotRecordLength {
		err = status.NewCorrupt(nil, "%d bytes can not hold %d slots", decodeConf.Size, header.Capacity)
		return
	}

	prealloc := header.Capacity
	if prealloc > maxPreallocSlots {
		prealloc = maxPreallocSlots
	}
	slots = make([]model.Slot, 0, prealloc)

	var slot model.Slot
	for i := int64(0); i < header.Capacity; i++ {
		slot, err = readSlot(br, i, decodeConf.MaxKeyLength)
		if err != nil {
			slots = nil
			return
		}
		slots = append(slots, slot)

		if i%conf.LoadProgressInterval == 0 {
			decodeConf.Logger.Printf("processed %d slots", i)
		}
	}

	return
}

// appendSlot - Appends the record of one slot to buf
func appendSlot(buf []byte, slot model.Slot) []byte {
	if !slot.Occupied {
		buf = binary.LittleEndian.AppendUint32(buf, 0)
		buf = binary.LittleEndian.AppendUint32(buf, 0)
		return append(buf, conf.SlotFree)
	}

	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(slot.Key)))
	buf = append(buf, slot.Key...)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(slot.Value))
	return append(buf, conf.SlotOccupied)
}

// readSlot - Reads the record of slot number slotNo from br.
// A free slot is returned as the zero Slot whatever key and value bytes it carried.
func readSlot(br *bufio.Reader, slotNo, maxKeyLength int64) (slot model.Slot, err error) {
	var fixed [conf.KeyLengthBytes]byte
	_, err = io.ReadFull(br, fixed[:])
	if err != nil {
		err = status.NewCorrupt(err, "error reading key length for slot %d", slotNo)
		return
	}

	keyLength := int64(int32(binary.LittleEndian.Uint32(fixed[:])))
	if keyLength < 0 || keyLength > maxKeyLength {
		err = status.NewCorrupt(nil, "invalid key length at slot %d: %d", slotNo, keyLength)
		return
	}

	key := make([]byte, keyLength)
	_, err = io.ReadFull(br, key)
	if err != nil {
		err = status.NewCorrupt(err, "error reading key for slot %d", slotNo)
		return
	}

	var tail [conf.ValueBytes + conf.OccupiedFlagBytes]byte
	_, err = io.ReadFull(br, tail[:])
	if err != nil {
		err = status.NewCorrupt(err, "error reading value and occupied flag for slot %d", slotNo)
		return
	}

	flag := tail[conf.ValueBytes]
	if flag != conf.SlotOccupied && flag != conf.SlotFree {
		err = status.NewCorrupt(nil, "invalid occupied flag at slot %d: %d", slotNo, flag)
		return
	}
	if flag == conf.SlotFree {
		return
	}

	slot = model.Slot{
		Key:      string(key),
		Value:    int32(binary.LittleEndian.Uint32(tail[:conf.ValueBytes])),
		Occupied: flag == conf.SlotOccupied,
	}

	return
}
