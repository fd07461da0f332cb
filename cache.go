package probetable

import (
	"errors"
	"fmt"
	"io"

	"github.com/gostonefire/probetable/internal/storage"
	"github.com/gostonefire/probetable/status"
)

// TokenSource - Interface for anything producing an already cleaned stream of tokens.
// Next returns io.EOF when there are no more tokens.
type TokenSource interface {
	Next() (token string, err error)
}

// TokenSlice - A TokenSource over a slice of tokens
type TokenSlice struct {
	tokens []string
	pos    int
}

// NewTokenSlice - Returns a pointer to a new TokenSlice over tokens
func NewTokenSlice(tokens []string) *TokenSlice {
	return &TokenSlice{tokens: tokens}
}

// Next - Returns the next token, or io.EOF when all tokens have been returned
func (S *TokenSlice) Next() (token string, err error) {
	if S.pos >= len(S.tokens) {
		err = io.EOF
		return
	}

	token = S.tokens[S.pos]
	S.pos++

	return
}

// CacheConf - Is a struct passed to LoadOrBuild.
//   - TableFile is the file the table is saved to and loaded from
//   - FingerprintFile is the side-car file holding the fingerprint of the source the saved table was built from
//   - Fingerprint is the fingerprint of the current source, computed by the caller
//   - Tokens is the token stream of the current source, only consumed when the table is rebuilt
//   - TableConf is the configuration for the table
type CacheConf struct {
	TableFile       string
	FingerprintFile string
	Fingerprint     string
	Tokens          TokenSource
	TableConf       Conf
}

// LoadOrBuild - Returns the table saved in TableFile if the fingerprint stored in FingerprintFile equals
// Fingerprint and the file decodes. A missing or empty stored fingerprint never matches. Otherwise, it builds a
// new table counting every token from Tokens, and saves both the table and the fingerprint for the next run.
// A corrupt or unreadable table file counts as a cache miss.
//
// It returns:
//   - table is a pointer to the loaded or built Table
//   - loaded is true if the table came from TableFile
//   - err is a standard error if building or saving failed
func LoadOrBuild(cacheConf CacheConf) (table *Table, loaded bool, err error) {
	logger := loggerOrDiscard(cacheConf.TableConf.Logger)

	stored := storage.ReadFingerprint(cacheConf.FingerprintFile)
	if stored != "" && stored == cacheConf.Fingerprint {
		table, err = NewFromFile(cacheConf.TableFile, cacheConf.TableConf)
		if err == nil {
			logger.Printf("fingerprint matches, loaded table from %s", cacheConf.TableFile)
			loaded = true
			return
		}
		if !errors.Is(err, status.Corrupt{}) {
			return
		}
		logger.Printf("saved table unusable: %s", err)
	}

	logger.Printf("fingerprint mismatch or no previous data, building table")

	table, err = NewTable(cacheConf.TableConf)
	if err != nil {
		return
	}

	n, err := table.CountTokens(cacheConf.Tokens)
	if err != nil {
		table = nil
		return
	}
	logger.Printf("finished processing %d tokens", n)

	err = table.Save(cacheConf.TableFile)
	if err != nil {
		return
	}

	err = storage.WriteFingerprint(cacheConf.FingerprintFile, cacheConf.Fingerprint)

	return
}

// CountTokens - Reads tokens until io.EOF and counts each occurrence, inserting new tokens with value 1 and
// incrementing the value of tokens already present. Empty tokens are skipped.
//
// It returns:
//   - n is the number of tokens counted
//   - err is a standard error from the token source or from Insert
func (T *Table) CountTokens(tokens TokenSource) (n int64, err error) {
	var token string
	var count int32
	for {
		token, err = tokens.Next()
		if errors.Is(err, io.EOF) {
			err = nil
			return
		}
		if err != nil {
			err = fmt.Errorf("error while reading tokens: %s", err)
			return
		}
		if token == "" {
			continue
		}

		count, err = T.Get(token)
		if errors.Is(err, status.KeyNotFound{}) {
			count, err = 0, nil
		}
		if err != nil {
			return
		}

		err = T.Insert(token, count+1)
		if err != nil {
			return
		}
		n++
	}
}
