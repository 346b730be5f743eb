package model

// Replacement is a proposed, non-destructive text substitution. Start is
// inclusive, End exclusive; Start == End denotes a pure insertion.
// Replacements targeting the same buffer must not overlap; the rewriter
// upholds that contract and the patch applier enforces it.
type Replacement struct {
	Start   int
	End     int
	NewText string
	Reason  string
}

// Len returns the number of original bytes the replacement covers.
func (r Replacement) Len() int {
	return r.End - r.Start
}
