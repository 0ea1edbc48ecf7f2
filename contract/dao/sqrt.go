package dao

// ISqrt computes the integer square root of n with Newton's method using
// truncating unsigned arithmetic. The iteration strictly decreases, so it
// always terminates.
func ISqrt(n uint64) uint64 {
	x0 := n / 2
	if x0 == 0 {
		// Only n = 0 and n = 1 halve to zero.
		return n
	}
	x1 := (x0 + n/x0) / 2
	for x1 < x0 {
		x0 = x1
		x1 = (x0 + n/x0) / 2
	}
	return x0
}

// voteWeight converts an effective token balance into vote weight. Quadratic
// weighting divides by 10000 before the root to bound the Newton iterations
// and rescales by 100 afterwards.
func voteWeight(method VoteMethod, balance uint64) uint64 {
	if method == VoteMethodQuadratic {
		return 100 * ISqrt(balance/10000)
	}
	return balance
}
