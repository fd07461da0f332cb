package probetable

import (
	"io"

	"github.com/gostonefire/probetable/internal/storage"
)

// Save - Writes the table to fileName, replacing any existing file.
// Every slot is written in slot order, including free ones.
func (T *Table) Save(fileName string) (err error) {
	T.logger.Printf("saving table to %s", fileName)

	err = storage.SaveFile(fileName, T.header(), T.slots)
	if err != nil {
		return
	}

	T.logger.Printf("table saved with %d elements", T.count)

	return
}

// Load - Replaces the contents of the table with a table previously written by Save.
// Count and the first and last slot markers are taken from the file as they are.
// If anything fails the table is left untouched and an error of type status.Corrupt is returned.
func (T *Table) Load(fileName string) (err error) {
	T.logger.Printf("loading table from %s", fileName)

	header, slots, err := storage.LoadFile(fileName, T.decodeConf())
	if err != nil {
		return
	}

	T.replace(header, slots)
	T.logger.Printf("table loaded with %d elements", T.count)

	return
}

// Encode - Writes the table to w using the same layout as Save
func (T *Table) Encode(w io.Writer) (err error) {
	return storage.Encode(w, T.header(), T.slots)
}

// Decode - Replaces the contents of the table with a table read from r, see Load
func (T *Table) Decode(r io.Reader) (err error) {
	header, slots, err := storage.Decode(r, T.decodeConf())
	if err != nil {
		return
	}

	T.replace(header, slots)

	return
}

// decodeConf - Returns the decoding limits of the table
func (T *Table) decodeConf() storage.DecodeConf {
	return storage.DecodeConf{
		MaxKeyLength: T.maxKeyLength,
		Logger:       T.logger,
	}
}
