package records

import (
	"fmt"
	"math/big"
	"regexp"
)

const (
	// SourceDir is the flat staging directory the producer writes into.
	SourceDir = "dat/clean"
	// DestinationRoot holds the sharded tree.
	DestinationRoot = "dat/data"

	shardWidth  = 1000
	shardSuffix = "000"
)

// Extensions lists the file extensions eligible for relocation.
var Extensions = []string{"hea", "dat", "png"}

// Anchored at both ends so temp names such as 1_lr.dat.tmp stay in staging.
var namePattern = regexp.MustCompile(`^(\d+)_lr.*\.(hea|dat|png)$`)

var thousand = big.NewInt(shardWidth)

// Record describes one eligible filename.
type Record struct {
	Name  string
	ID    *big.Int
	Ext   string
	Shard string
}

// Parse matches name against the record pattern. The second return value is
// false when the name is not eligible for relocation.
func Parse(name string) (Record, bool) {
	m := namePattern.FindStringSubmatch(name)
	if m == nil {
		return Record{}, false
	}
	id, ok := new(big.Int).SetString(m[1], 10)
	if !ok {
		return Record{}, false
	}
	return Record{
		Name:  name,
		ID:    id,
		Ext:   m[2],
		Shard: Shard(id),
	}, true
}

// Matches reports whether name is eligible for relocation.
func Matches(name string) bool {
	return namePattern.MatchString(name)
}

// Shard returns the shard directory name for a record id. Negative or nil ids
// are treated as zero.
func Shard(id *big.Int) string {
	if id == nil || id.Sign() < 0 {
		return fmt.Sprintf("%02d%s", 0, shardSuffix)
	}
	bucket := new(big.Int).Quo(id, thousand)
	return fmt.Sprintf("%02d%s", bucket, shardSuffix)
}

// ShardFor is a convenience wrapper for ids that fit in a uint64.
func ShardFor(id uint64) string {
	return Shard(new(big.Int).SetUint64(id))
}

// ParseID parses a decimal id string the same way Parse reads the filename
// prefix. It is used by the CLI to preview shard placement.
func ParseID(value string) (*big.Int, error) {
	id, ok := new(big.Int).SetString(value, 10)
	if !ok || id.Sign() < 0 {
		return nil, fmt.Errorf("invalid record id %q", value)
	}
	return id, nil
}
