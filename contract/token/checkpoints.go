package token

import "github.com/teia-community/teia-dao/sdk"

// recordCheckpoint appends the owner's new balance to their checkpoint
// history. A second write at the same level overwrites the last entry, and a
// write that does not change the balance is skipped.
func (c *Contract) recordCheckpoint(owner sdk.Address, balance, level uint64) {
	n := c.CheckpointCount(owner)
	if n > 0 {
		last := c.loadCheckpoint(owner, n-1)
		if last.Level == level {
			c.saveCheckpoint(owner, n-1, Checkpoint{Level: level, Balance: balance})
			return
		}
		if last.Balance == balance {
			return
		}
	}
	c.saveCheckpoint(owner, n, Checkpoint{Level: level, Balance: balance})
	c.setCheckpointCount(owner, n+1)
}

// GetPriorBalance returns an owner's balance as of a past block level. The
// level must be strictly below the current one. A non-nil maxCheckpoints
// limits the search to the owner's most recent entries; levels older than
// that window read as zero.
func (c *Contract) GetPriorBalance(ctx *sdk.Context, owner sdk.Address, tokenID, level uint64, maxCheckpoints *uint64) (uint64, error) {
	if tokenID != TokenID {
		return 0, sdk.Fail(sdk.ErrValidation, ErrTokenUndefined)
	}
	if maxCheckpoints != nil && *maxCheckpoints == 0 {
		return 0, sdk.Fail(sdk.ErrValidation, ErrWrongMaxCheckpoints)
	}
	if level >= ctx.Level {
		return 0, sdk.Fail(sdk.ErrTiming, ErrWrongLevel)
	}
	n := c.CheckpointCount(owner)
	if n == 0 {
		return 0, nil
	}
	lower := uint64(0)
	upper := n - 1
	if maxCheckpoints != nil && *maxCheckpoints < n {
		lower = n - *maxCheckpoints
	}
	if level < c.loadCheckpoint(owner, lower).Level {
		return 0, nil
	}
	for lower < upper {
		// Ceiling midpoint, so lower always advances.
		center := upper - (upper-lower)/2
		if level < c.loadCheckpoint(owner, center).Level {
			upper = center - 1
		} else {
			lower = center
		}
	}
	return c.loadCheckpoint(owner, lower).Balance, nil
}

// CheckpointCount returns how many checkpoints an owner has accumulated.
func (c *Contract) CheckpointCount(owner sdk.Address) uint64 {
	raw := c.state.Get(checkpointCountKey(owner))
	if raw == nil {
		return 0
	}
	r := sdk.NewReader([]byte(*raw))
	n := r.Uint64()
	if r.Err() != nil {
		return 0
	}
	return n
}

func (c *Contract) setCheckpointCount(owner sdk.Address, n uint64) {
	w := sdk.NewWriter()
	w.Uint64(n)
	c.state.Set(checkpointCountKey(owner), string(w.Bytes()))
}

func (c *Contract) loadCheckpoint(owner sdk.Address, index uint64) Checkpoint {
	raw := c.state.Get(checkpointKey(owner, index))
	if raw == nil {
		return Checkpoint{}
	}
	r := sdk.NewReader([]byte(*raw))
	cp := Checkpoint{Level: r.Uint64(), Balance: r.Uint64()}
	if r.Err() != nil {
		return Checkpoint{}
	}
	return cp
}

func (c *Contract) saveCheckpoint(owner sdk.Address, index uint64, cp Checkpoint) {
	w := sdk.NewWriter()
	w.Uint64(cp.Level)
	w.Uint64(cp.Balance)
	c.state.Set(checkpointKey(owner, index), string(w.Bytes()))
}
