package chain

import (
	"math/big"

	"github.com/ledgerchain/ledger/pkg/types"
)

// tryAdjustTargetLocked recalculates Target every DifficultyUpdateInterval
// blocks, based on the actual time spent mining the last interval versus
// the ideal time. Must be called with c.mu held.
func (c *Blockchain) tryAdjustTargetLocked() {
	n := len(c.Blocks)
	if n == 0 || n%DifficultyUpdateInterval != 0 {
		return
	}

	first := c.Blocks[n-DifficultyUpdateInterval]
	last := c.Blocks[n-1]
	actualSpan := last.Header.Timestamp.Unix() - first.Header.Timestamp.Unix()
	idealSpan := int64(IdealBlockTime * DifficultyUpdateInterval)

	// Clamp the observed span to [ideal/4, ideal*4] so a single retarget
	// can move the target by at most 4x in either direction.
	minSpan := idealSpan / 4
	maxSpan := idealSpan * 4
	if actualSpan < minSpan {
		actualSpan = minSpan
	}
	if actualSpan > maxSpan {
		actualSpan = maxSpan
	}

	// newTarget = oldTarget * actualSpan / idealSpan, using arbitrary
	// precision so the multiply can't overflow 256 bits.
	old := c.Target.ToBig()
	numerator := new(big.Int).Mul(old, big.NewInt(actualSpan))
	newTarget := new(big.Int).Div(numerator, big.NewInt(idealSpan))

	if newTarget.Sign() <= 0 {
		newTarget = big.NewInt(1)
	}

	minTarget := new(big.Int).Div(old, big.NewInt(4))
	maxTarget := new(big.Int).Mul(old, big.NewInt(4))
	if newTarget.Cmp(minTarget) < 0 {
		newTarget = minTarget
	}
	if newTarget.Cmp(maxTarget) > 0 {
		newTarget = maxTarget
	}

	ceiling := types.MinTarget.ToBig()
	if newTarget.Cmp(ceiling) > 0 {
		newTarget = ceiling
	}

	c.Target = types.FromBig(newTarget)
}
