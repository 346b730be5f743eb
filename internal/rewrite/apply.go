package rewrite

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	m "github.com/resew-dev/resew/internal/model"
)

// ErrOverlap reports two replacements targeting intersecting byte ranges.
// Overlap is a rewriter defect, not a data condition: the whole batch is
// rejected and the buffer left untouched.
var ErrOverlap = errors.New("overlapping replacements")

// Apply splices replacements into buf and returns the new buffer plus the
// number of replacements applied. Replacements are validated for bounds and
// pairwise non-overlap up front, then applied in descending start order so
// earlier offsets stay valid without any offset bookkeeping. With an empty
// batch the buffer is returned unchanged.
func Apply(buf string, replacements []m.Replacement) (string, int, error) {
	if len(replacements) == 0 {
		return buf, 0, nil
	}

	sorted := make([]m.Replacement, len(replacements))
	copy(sorted, replacements)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })

	for i, r := range sorted {
		if r.Start < 0 || r.End < r.Start || r.End > len(buf) {
			return buf, 0, fmt.Errorf("replacement range [%d,%d) out of bounds for %d-byte buffer", r.Start, r.End, len(buf))
		}

		if i > 0 && r.Start < sorted[i-1].End {
			return buf, 0, fmt.Errorf("%w: [%d,%d) and [%d,%d)", ErrOverlap,
				sorted[i-1].Start, sorted[i-1].End, r.Start, r.End)
		}
	}

	var b strings.Builder

	out := buf
	for i := len(sorted) - 1; i >= 0; i-- {
		r := sorted[i]
		b.Reset()
		b.Grow(len(out) - r.Len() + len(r.NewText))
		b.WriteString(out[:r.Start])
		b.WriteString(r.NewText)
		b.WriteString(out[r.End:])
		out = b.String()
	}

	return out, len(sorted), nil
}
