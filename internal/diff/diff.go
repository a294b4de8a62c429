// Package diff computes minimal edit scripts between two sequences.
package diff

// Kind classifies a Delta.
type Kind int

const (
	// KindInsert adds Target elements; Source is empty.
	KindInsert Kind = iota + 1
	// KindDelete removes Source elements; Target is empty.
	KindDelete
	// KindChange replaces Source elements with Target elements.
	KindChange
)

func (k Kind) String() string {
	switch k {
	case KindInsert:
		return "insert"
	case KindDelete:
		return "delete"
	case KindChange:
		return "change"
	default:
		return "unknown"
	}
}

// Range is the half-open index interval [Start, Start+Len).
type Range struct {
	Start int
	Len   int
}

// End returns the first index past the range.
func (r Range) End() int { return r.Start + r.Len }

// Delta is one contiguous difference between two sequences. For an insert,
// Source.Start is the position in the first sequence where Target goes; for
// a delete, Target.Start is the matching position in the second sequence.
type Delta struct {
	Kind   Kind
	Source Range
	Target Range
}

type opKind int

const (
	opEqual opKind = iota
	opDelete
	opInsert
)

// op is one edit step; a and b are the indices consumed in each sequence
// (or, for the side not consumed, the current position).
type op struct {
	kind opKind
	a, b int
}

// Compute returns the deltas of a minimal edit script turning a into b, in
// increasing index order. Equal runs are not reported. When several minimal
// scripts exist, deletions are taken before insertions at each step so the
// result is stable for equal inputs.
func Compute[T comparable](a, b []T) []Delta {
	return group(editScript(a, b))
}

// editScript runs the greedy Myers search and backtracks through the saved
// frontiers to recover the individual steps.
func editScript[T comparable](a, b []T) []op {
	n, m := len(a), len(b)
	limit := n + m
	offset := limit + 1
	v := make([]int, 2*limit+3)
	var trace [][]int

search:
	for d := 0; d <= limit; d++ {
		trace = append(trace, append([]int(nil), v...))
		for k := -d; k <= d; k += 2 {
			var x int
			if k == -d || (k != d && v[offset+k-1] < v[offset+k+1]) {
				x = v[offset+k+1]
			} else {
				x = v[offset+k-1] + 1
			}
			y := x - k
			for x < n && y < m && a[x] == b[y] {
				x++
				y++
			}
			v[offset+k] = x
			if x >= n && y >= m {
				break search
			}
		}
	}

	var ops []op
	x, y := n, m
	for d := len(trace) - 1; d >= 0; d-- {
		v := trace[d]
		k := x - y
		var prevK int
		if k == -d || (k != d && v[offset+k-1] < v[offset+k+1]) {
			prevK = k + 1
		} else {
			prevK = k - 1
		}
		prevX := v[offset+prevK]
		prevY := prevX - prevK

		for x > prevX && y > prevY {
			ops = append(ops, op{kind: opEqual, a: x - 1, b: y - 1})
			x--
			y--
		}
		if d > 0 {
			if x == prevX {
				ops = append(ops, op{kind: opInsert, a: x, b: y - 1})
			} else {
				ops = append(ops, op{kind: opDelete, a: x - 1, b: y})
			}
			x, y = prevX, prevY
		}
	}

	for i, j := 0, len(ops)-1; i < j; i, j = i+1, j-1 {
		ops[i], ops[j] = ops[j], ops[i]
	}
	return ops
}

// group folds each maximal run of non-equal steps into one Delta.
func group(ops []op) []Delta {
	var deltas []Delta
	for i := 0; i < len(ops); {
		if ops[i].kind == opEqual {
			i++
			continue
		}
		src := Range{Start: ops[i].a}
		tgt := Range{Start: ops[i].b}
		for ; i < len(ops) && ops[i].kind != opEqual; i++ {
			if ops[i].kind == opDelete {
				src.Len++
			} else {
				tgt.Len++
			}
		}

		d := Delta{Kind: KindChange, Source: src, Target: tgt}
		switch {
		case src.Len == 0:
			d.Kind = KindInsert
		case tgt.Len == 0:
			d.Kind = KindDelete
		}
		deltas = append(deltas, d)
	}
	return deltas
}
