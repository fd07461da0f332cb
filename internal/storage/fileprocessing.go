package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gostonefire/probetable/internal/model"
	"github.com/gostonefire/probetable/status"
)

// SaveFile - Encodes header and slots into fileName.
// Data is first written to a temporary file in the same directory which is then renamed over fileName,
// so a crash mid-write never leaves a half written table under fileName.
func SaveFile(fileName string, header model.Header, slots []model.Slot) (err error) {
	dir, base := filepath.Split(fileName)
	if dir == "" {
		dir = "."
	}

	file, err := os.CreateTemp(dir, base+".tmp-*")
	if err != nil {
		err = fmt.Errorf("could not open file to save table: %s", err)
		return
	}
	tmpName := file.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmpName)
		}
	}()

	err = Encode(file, header, slots)
	if err != nil {
		_ = file.Close()
		return
	}

	err = file.Sync()
	if err != nil {
		_ = file.Close()
		err = fmt.Errorf("error while syncing table file: %s", err)
		return
	}

	err = file.Close()
	if err != nil {
		err = fmt.Errorf("error while closing table file: %s", err)
		return
	}

	err = os.Rename(tmpName, fileName)
	if err != nil {
		err = fmt.Errorf("error while moving table file in place: %s", err)
		return
	}

	return
}

// LoadFile - Decodes header and slots from fileName.
// A missing or unreadable file is reported as status.Corrupt wrapping the os error.
func LoadFile(fileName string, decodeConf DecodeConf) (header model.Header, slots []model.Slot, err error) {
	file, err := os.Open(fileName)
	if err != nil {
		err = status.NewCorrupt(err, "unable to open table file")
		return
	}
	defer func(file *os.File) { _ = file.Close() }(file)

	stat, err := file.Stat()
	if err != nil {
		err = status.NewCorrupt(err, "unable to stat table file")
		return
	}
	decodeConf.Size = stat.Size()

	header, slots, err = Decode(file, decodeConf)

	return
}

// ReadFingerprint - Returns the fingerprint stored in fileName, or an empty string if there is none
func ReadFingerprint(fileName string) (fingerprint string) {
	buf, err := os.ReadFile(fileName)
	if err != nil {
		return
	}

	fields := strings.Fields(string(buf))
	if len(fields) > 0 {
		fingerprint = fields[0]
	}

	return
}

// WriteFingerprint - Stores fingerprint in fileName, replacing any previous content
func WriteFingerprint(fileName, fingerprint string) (err error) {
	err = os.WriteFile(fileName, []byte(fingerprint), 0644)
	if err != nil {
		err = fmt.Errorf("could not write fingerprint file: %s", err)
	}

	return
}
