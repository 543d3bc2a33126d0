package group

// Combine attempts to fold next into prev, producing a single merged
// group. It succeeds only when prev implements Combiner and accepts
// next; callers append next as a new, separate group otherwise.
func Combine(prev, next Group) (Group, bool) {
	combiner, ok := prev.(Combiner)
	if !ok {
		return nil, false
	}
	return combiner.Combine(next)
}
