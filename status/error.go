package status

import "fmt"

// KeyNotFound - Custom error to inform that a key is not present in the table
type KeyNotFound struct {
	msg string
}

// Error - Used to notify that no key was found
func (K KeyNotFound) Error() string {
	if K.msg == "" {
		return "key not found"
	}
	return K.msg
}

// Is - Matches any KeyNotFound regardless of message
func (K KeyNotFound) Is(target error) bool {
	_, ok := target.(KeyNotFound)
	return ok
}

// EmptyTable - Custom error to inform that the first or last marker of the table points nowhere
type EmptyTable struct {
	msg string
}

// Error - Used to notify that the table is empty
func (E EmptyTable) Error() string {
	if E.msg == "" {
		return "table is empty"
	}
	return E.msg
}

// Is - Matches any EmptyTable regardless of message
func (E EmptyTable) Is(target error) bool {
	_, ok := target.(EmptyTable)
	return ok
}

// TableFull - Custom error to inform that probing went a full lap without finding a free slot.
// Insert always grows the table before it gets full, so this points at a growth policy bug.
type TableFull struct {
	msg string
}

// Error - Used to notify that the table is full
func (T TableFull) Error() string {
	if T.msg == "" {
		return "table is full during probing"
	}
	return T.msg
}

// Is - Matches any TableFull regardless of message
func (T TableFull) Is(target error) bool {
	_, ok := target.(TableFull)
	return ok
}

// Corrupt - Custom error to inform that persisted table data could not be read or decoded.
// It optionally wraps the underlying error (for instance an os.PathError for a missing file).
type Corrupt struct {
	msg string
	err error
}

// NewCorrupt - Returns a Corrupt error with the given reason and optional cause
func NewCorrupt(err error, format string, a ...interface{}) Corrupt {
	return Corrupt{msg: fmt.Sprintf(format, a...), err: err}
}

// Error - Used to notify that persisted data is corrupt or unreadable
func (C Corrupt) Error() string {
	msg := C.msg
	if msg == "" {
		msg = "corrupt or unreadable table data"
	}
	if C.err != nil {
		return fmt.Sprintf("%s: %s", msg, C.err)
	}
	return msg
}

// Unwrap - Returns the underlying cause, if any
func (C Corrupt) Unwrap() error {
	return C.err
}

// Is - Matches any Corrupt regardless of message or cause
func (C Corrupt) Is(target error) bool {
	_, ok := target.(Corrupt)
	return ok
}
