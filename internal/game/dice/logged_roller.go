package dice

import (
	"fmt"

	"go.uber.org/zap"
)

// Roller wraps a Source and logger to provide logged dice rolling.
// All rolls are logged at debug level with the purpose of the roll and its result.
type Roller struct {
	src    Source
	logger *zap.Logger
}

// NewLoggedRoller creates a Roller that rolls with src and logs each roll to logger.
//
// Precondition: src must be non-nil. A nil logger disables roll logging.
func NewLoggedRoller(src Source, logger *zap.Logger) *Roller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Roller{src: src, logger: logger}
}

// Source returns the underlying randomness provider.
func (r *Roller) Source() Source { return r.src }

// Roll evaluates expr and logs the result at debug level.
//
// Precondition: expr must come from Parse.
// Postcondition: result logged; returns RollResult or error.
func (r *Roller) Roll(expr Expression) (RollResult, error) {
	result, err := Roll(expr, r.src)
	if err != nil {
		return RollResult{}, err
	}
	r.logger.Debug("dice roll",
		zap.String("expression", result.Expression),
		zap.Ints("dice", result.Dice),
		zap.Int("modifier", result.Modifier),
		zap.Int("total", result.Total()),
	)
	return result, nil
}

// RollExpr parses expr and rolls it, logging the result.
//
// Precondition: expr must be a valid dice expression string.
// Postcondition: Returns a RollResult or a parse/roll error.
func (r *Roller) RollExpr(expr string) (RollResult, error) {
	e, err := Parse(expr)
	if err != nil {
		return RollResult{}, err
	}
	return r.Roll(e)
}

// Between returns a uniformly distributed int in [lo, hi], both inclusive.
// Exactly one Intn call is consumed.
//
// Precondition: lo <= hi.
// Postcondition: lo <= result <= hi.
func (r *Roller) Between(purpose string, lo, hi int) int {
	if lo > hi {
		panic(fmt.Sprintf("dice: Between(%d, %d) precondition violated: lo must be <= hi", lo, hi))
	}
	v := lo + r.src.Intn(hi-lo+1)
	r.logger.Debug("range roll",
		zap.String("purpose", purpose),
		zap.Int("lo", lo),
		zap.Int("hi", hi),
		zap.Int("result", v),
	)
	return v
}

// Chance reports whether a percent-probability check succeeds.
// Exactly one Intn(100) call is consumed; the check passes when it is < percent.
//
// Postcondition: percent <= 0 never passes; percent >= 100 always passes.
func (r *Roller) Chance(purpose string, percent int) bool {
	roll := r.src.Intn(100)
	ok := roll < percent
	r.logger.Debug("chance roll",
		zap.String("purpose", purpose),
		zap.Int("percent", percent),
		zap.Int("roll", roll),
		zap.Bool("passed", ok),
	)
	return ok
}

// Pick returns a uniformly chosen index in [0, n).
//
// Precondition: n > 0.
func (r *Roller) Pick(purpose string, n int) int {
	idx := r.src.Intn(n)
	r.logger.Debug("pick roll",
		zap.String("purpose", purpose),
		zap.Int("options", n),
		zap.Int("index", idx),
	)
	return idx
}

// Weighted returns an index into weights chosen with probability proportional
// to its weight. Exactly one Intn call is consumed.
//
// Precondition: every weight >= 0 and the sum is > 0.
// Postcondition: weights[result] > 0.
func (r *Roller) Weighted(weights []int) int {
	total := 0
	for _, w := range weights {
		if w < 0 {
			panic("dice: Weighted precondition violated: negative weight")
		}
		total += w
	}
	if total <= 0 {
		panic("dice: Weighted precondition violated: weights sum to zero")
	}
	roll := r.src.Intn(total)
	for i, w := range weights {
		if roll < w {
			return i
		}
		roll -= w
	}
	// unreachable when total matches the weights
	return len(weights) - 1
}
