package dump

import (
	"context"
	"fmt"
	"os"
	"slices"
	"sort"
	"time"

	"github.com/nodech/hsw-wallet-utils/internal/jsonarr"
	"github.com/nodech/hsw-wallet-utils/internal/paths"
)

// DefaultBatchSize is the number of heights fetched per RPC batch.
const DefaultBatchSize = 100

// BlockTime is one entry of blocktimes.json.
type BlockTime struct {
	Height int64  `json:"height"`
	Time   int64  `json:"time"`
	Hash   string `json:"hash"`
}

// BlockTimesOptions selects the height range for BlockTimes.
type BlockTimesOptions struct {
	From int64
	// To is inclusive; a negative value means the current tip.
	To    int64
	Batch int
}

// BlockTimes dumps the header time of every block in the range to
// <root>/blocktimes.json, ordered by height.
func (d *Dumper) BlockTimes(ctx context.Context, node ChainSource, opts BlockTimesOptions) (*Result, error) {
	if opts.Batch <= 0 {
		opts.Batch = DefaultBatchSize
	}
	if opts.From < 0 {
		return nil, fmt.Errorf("from height %d is negative", opts.From)
	}

	to := opts.To
	if to < 0 {
		info, err := node.GetBlockchainInfo(ctx)
		if err != nil {
			return nil, fmt.Errorf("read chain tip: %w", err)
		}
		to = info.Blocks
	}
	if to < opts.From {
		return nil, fmt.Errorf("height range %d..%d is empty", opts.From, to)
	}

	d.log().Debug("fetching block times %d..%d in batches of %d", opts.From, to, opts.Batch)

	return d.writeArray(paths.BlockTimesFile(d.Root), func(enc *jsonarr.Encoder) error {
		heights := make([]int64, 0, opts.Batch)
		for start := opts.From; start <= to; start += int64(opts.Batch) {
			if err := ctx.Err(); err != nil {
				return err
			}

			heights = heights[:0]
			for h := start; h <= to && h < start+int64(opts.Batch); h++ {
				heights = append(heights, h)
			}

			headers, err := node.GetBlocksByHeight(ctx, heights)
			if err != nil {
				return err
			}
			for _, hdr := range headers {
				if err := enc.Encode(BlockTime{Height: hdr.Height, Time: hdr.Time, Hash: hdr.Hash}); err != nil {
					return err
				}
			}
			d.progress(enc.Count())
		}
		return nil
	})
}

// BlockTimeTable answers height to time lookups from a loaded blocktimes.json.
type BlockTimeTable struct {
	entries []BlockTime // sorted by height
}

// LoadBlockTimes reads a blocktimes file in either encoding.
func LoadBlockTimes(path string) (*BlockTimeTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var entries []BlockTime
	err = jsonarr.DecodeEach(jsonarr.NewAutoDecoder(f), func(bt BlockTime) error {
		entries = append(entries, bt)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	return NewBlockTimeTable(entries), nil
}

// NewBlockTimeTable builds a table from entries in any order.
func NewBlockTimeTable(entries []BlockTime) *BlockTimeTable {
	sorted := make([]BlockTime, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Height < sorted[j].Height
	})
	return &BlockTimeTable{entries: sorted}
}

// Len returns the number of known blocks.
func (t *BlockTimeTable) Len() int {
	return len(t.entries)
}

// Range returns the lowest and highest known heights.
func (t *BlockTimeTable) Range() (lo, hi int64, ok bool) {
	if len(t.entries) == 0 {
		return 0, 0, false
	}
	return t.entries[0].Height, t.entries[len(t.entries)-1].Height, true
}

// Lookup returns the entry at height.
func (t *BlockTimeTable) Lookup(height int64) (BlockTime, bool) {
	i := sort.Search(len(t.entries), func(i int) bool {
		return t.entries[i].Height >= height
	})
	if i < len(t.entries) && t.entries[i].Height == height {
		return t.entries[i], true
	}
	return BlockTime{}, false
}

// Time returns the block time at height.
func (t *BlockTimeTable) Time(height int64) (time.Time, bool) {
	bt, ok := t.Lookup(height)
	if !ok {
		return time.Time{}, false
	}
	return time.Unix(bt.Time, 0).UTC(), true
}

// Intervals returns the seconds between up to n of the highest consecutive
// heights, oldest first. A gap in the table ends the run.
func (t *BlockTimeTable) Intervals(n int) []int64 {
	var out []int64
	for i := len(t.entries) - 1; i > 0 && len(out) < n; i-- {
		cur, prev := t.entries[i], t.entries[i-1]
		if cur.Height != prev.Height+1 {
			break
		}
		out = append(out, cur.Time-prev.Time)
	}
	slices.Reverse(out)
	return out
}
