//go:build integration

package probetable

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gostonefire/probetable/status"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

// failingTokens - A TokenSource that fails the test if it is ever read, or returns err when set
type failingTokens struct {
	t   *testing.T
	err error
}

func (F failingTokens) Next() (string, error) {
	if F.err != nil {
		return "", F.err
	}
	F.t.Error("token source read although the table should come from cache")
	return "", io.EOF
}

type CacheTestSuite struct {
	suite.Suite
	Datadir         string
	TableFile       string
	FingerprintFile string
}

func (suite *CacheTestSuite) SetupTest() {
	dir, err := os.MkdirTemp("", "probetable")
	suite.Require().NoError(err)
	suite.Datadir = dir
	suite.TableFile = filepath.Join(dir, "hash_table.dat")
	suite.FingerprintFile = filepath.Join(dir, "checksum.txt")
}

func (suite *CacheTestSuite) TearDownTest() {
	_ = os.RemoveAll(suite.Datadir)
}

func (suite *CacheTestSuite) cacheConf(fingerprint, text string) CacheConf {
	return CacheConf{
		TableFile:       suite.TableFile,
		FingerprintFile: suite.FingerprintFile,
		Fingerprint:     fingerprint,
		Tokens:          NewTokenSlice(strings.Fields(text)),
		TableConf:       Conf{InitialCapacity: 4, GrowthIncrement: 4},
	}
}

func (suite *CacheTestSuite) TestBuildsWithoutPreviousData() {
	t := suite.T()

	table, loaded, err := LoadOrBuild(suite.cacheConf("abc", "it was the best of times it was the worst of times"))

	assert.NoError(t, err)
	assert.False(t, loaded, "built from tokens")
	value, err := table.Get("times")
	assert.NoError(t, err)
	assert.Equal(t, int32(2), value)
	occupied, _ := table.Stats()
	assert.Equal(t, int64(7), occupied, "distinct tokens")

	key, value, err := table.GetFirst()
	assert.NoError(t, err)
	assert.Equal(t, "it", key)
	assert.Equal(t, int32(2), value)

	buf, err := os.ReadFile(suite.FingerprintFile)
	assert.NoError(t, err, "fingerprint saved")
	assert.Equal(t, "abc", string(buf))
	_, err = os.Stat(suite.TableFile)
	assert.NoError(t, err, "table saved")
}

func (suite *CacheTestSuite) TestLoadsWhenFingerprintMatches() {
	t := suite.T()
	built, _, err := LoadOrBuild(suite.cacheConf("abc", "london dover london manette"))
	assert.NoError(t, err)

	conf := suite.cacheConf("abc", "")
	conf.Tokens = failingTokens{t: t}
	table, loaded, err := LoadOrBuild(conf)

	assert.NoError(t, err)
	assert.True(t, loaded, "loaded from file")
	builtOccupied, builtCapacity := built.Stats()
	occupied, capacity := table.Stats()
	assert.Equal(t, builtOccupied, occupied, "count preserved")
	assert.Equal(t, builtCapacity, capacity, "capacity preserved")
	builtKey, _, _ := built.GetFirst()
	key, _, err := table.GetFirst()
	assert.NoError(t, err)
	assert.Equal(t, builtKey, key, "first slot preserved")
	value, err := table.Get("london")
	assert.NoError(t, err)
	assert.Equal(t, int32(2), value)
}

func (suite *CacheTestSuite) TestRebuildsWhenFingerprintDiffers() {
	t := suite.T()
	_, _, err := LoadOrBuild(suite.cacheConf("abc", "london dover london"))
	assert.NoError(t, err)

	table, loaded, err := LoadOrBuild(suite.cacheConf("def", "paris"))

	assert.NoError(t, err)
	assert.False(t, loaded, "rebuilt")
	_, err = table.Get("london")
	assert.True(t, errors.Is(err, status.KeyNotFound{}), "old source forgotten")
	value, _ := table.Get("paris")
	assert.Equal(t, int32(1), value)
	buf, _ := os.ReadFile(suite.FingerprintFile)
	assert.Equal(t, "def", string(buf), "new fingerprint saved")
}

func (suite *CacheTestSuite) TestRebuildsWhenTableIsCorrupt() {
	t := suite.T()
	_, _, err := LoadOrBuild(suite.cacheConf("abc", "london dover london"))
	assert.NoError(t, err)
	stat, _ := os.Stat(suite.TableFile)
	assert.NoError(t, os.Truncate(suite.TableFile, stat.Size()-2))

	table, loaded, err := LoadOrBuild(suite.cacheConf("abc", "london dover london"))

	assert.NoError(t, err, "corrupt cache is a miss")
	assert.False(t, loaded, "rebuilt")
	value, _ := table.Get("london")
	assert.Equal(t, int32(2), value)

	table, loaded, err = LoadOrBuild(suite.cacheConf("abc", "unused"))
	assert.NoError(t, err)
	assert.True(t, loaded, "rewritten cache loads")
	value, _ = table.Get("london")
	assert.Equal(t, int32(2), value)
}

func (suite *CacheTestSuite) TestRebuildsWhenTableIsMissing() {
	t := suite.T()
	assert.NoError(t, os.WriteFile(suite.FingerprintFile, []byte("abc"), 0644))

	table, loaded, err := LoadOrBuild(suite.cacheConf("abc", "dover"))

	assert.NoError(t, err)
	assert.False(t, loaded, "rebuilt")
	value, _ := table.Get("dover")
	assert.Equal(t, int32(1), value)
}

func (suite *CacheTestSuite) TestEmptyFingerprintNeverMatches() {
	t := suite.T()
	_, _, err := LoadOrBuild(suite.cacheConf("abc", "london"))
	assert.NoError(t, err)
	assert.NoError(t, os.Remove(suite.FingerprintFile))

	table, loaded, err := LoadOrBuild(suite.cacheConf("", "paris"))

	assert.NoError(t, err)
	assert.False(t, loaded, "rebuilt")
	_, err = table.Get("london")
	assert.True(t, errors.Is(err, status.KeyNotFound{}), "saved table not used")
	value, _ := table.Get("paris")
	assert.Equal(t, int32(1), value)
}

func (suite *CacheTestSuite) TestTokenErrorPropagates() {
	t := suite.T()
	conf := suite.cacheConf("abc", "")
	conf.Tokens = failingTokens{t: t, err: errors.New("read failed")}

	table, loaded, err := LoadOrBuild(conf)

	assert.Error(t, err)
	assert.False(t, loaded)
	assert.Nil(t, table)
	_, err = os.Stat(suite.FingerprintFile)
	assert.True(t, os.IsNotExist(err), "fingerprint not saved")
}

func (suite *CacheTestSuite) TestInvalidConfigurationPropagates() {
	t := suite.T()
	_, _, err := LoadOrBuild(suite.cacheConf("abc", "london"))
	assert.NoError(t, err)

	conf := suite.cacheConf("abc", "london")
	conf.TableConf.GrowthIncrement = -1
	_, _, err = LoadOrBuild(conf)

	assert.Error(t, err)
	assert.False(t, errors.Is(err, status.Corrupt{}), "not treated as a cache miss")
}

func TestCacheTestSuite(t *testing.T) {
	suite.Run(t, new(CacheTestSuite))
}

func TestTable_CountTokens(t *testing.T) {
	t.Run("counts occurrences and skips empty tokens", func(t *testing.T) {
		// Prepare
		table, _ := NewTable(Conf{InitialCapacity: 2, GrowthIncrement: 2})

		// Execute
		n, err := table.CountTokens(NewTokenSlice([]string{"a", "", "b", "a", "c", "a"}))

		// Check
		assert.NoError(t, err)
		assert.Equal(t, int64(5), n, "empty token not counted")
		for key, expected := range map[string]int32{"a": 3, "b": 1, "c": 1} {
			value, err := table.Get(key)
			assert.NoErrorf(t, err, "gets %s", key)
			assert.Equalf(t, expected, value, "count of %s", key)
		}
	})
}
