// internal/storage/codec.go
package storage

import (
	"fmt"
	"go-tower-siege/internal/defs"
	"go-tower-siege/internal/interfaces"
	"log"

	"github.com/vmihailenco/msgpack/v5"
)

// progressRecord is the persisted layout. Build counts are keyed by tower id
// so records survive reordering of the kind enum.
type progressRecord struct {
	WaveIndex   int            `msgpack:"wave_index"`
	Currency    int            `msgpack:"currency"`
	Lives       int            `msgpack:"lives"`
	Score       int            `msgpack:"score"`
	BuildCounts map[string]int `msgpack:"tower_build_counts"`
}

// EncodeProgress serializes a progress record with msgpack.
func EncodeProgress(p interfaces.Progress) ([]byte, error) {
	rec := progressRecord{
		WaveIndex:   p.WaveIndex,
		Currency:    p.Currency,
		Lives:       p.Lives,
		Score:       p.Score,
		BuildCounts: countsByName(p.TowerBuildCounts),
	}
	data, err := msgpack.Marshal(&rec)
	if err != nil {
		return nil, fmt.Errorf("encode progress: %w", err)
	}
	return data, nil
}

// DecodeProgress parses a record written by EncodeProgress.
func DecodeProgress(data []byte) (interfaces.Progress, error) {
	var rec progressRecord
	if err := msgpack.Unmarshal(data, &rec); err != nil {
		return interfaces.Progress{}, fmt.Errorf("decode progress: %w", err)
	}
	return interfaces.Progress{
		WaveIndex:        rec.WaveIndex,
		Currency:         rec.Currency,
		Lives:            rec.Lives,
		Score:            rec.Score,
		TowerBuildCounts: countsByKind(rec.BuildCounts),
	}, nil
}

func encodeCounts(counts map[defs.TowerKind]int) ([]byte, error) {
	return msgpack.Marshal(countsByName(counts))
}

func decodeCounts(data []byte) (map[defs.TowerKind]int, error) {
	if len(data) == 0 {
		return make(map[defs.TowerKind]int), nil
	}
	var named map[string]int
	if err := msgpack.Unmarshal(data, &named); err != nil {
		return nil, err
	}
	return countsByKind(named), nil
}

func countsByName(counts map[defs.TowerKind]int) map[string]int {
	named := make(map[string]int, len(counts))
	for kind, n := range counts {
		named[kind.String()] = n
	}
	return named
}

// countsByKind drops ids that no longer name a tower.
func countsByKind(named map[string]int) map[defs.TowerKind]int {
	counts := make(map[defs.TowerKind]int, len(named))
	for id, n := range named {
		kind, err := defs.ParseTowerKind(id)
		if err != nil {
			log.Printf("Skipping build count for unknown tower %q", id)
			continue
		}
		counts[kind] = n
	}
	return counts
}
