package taxonomy

import "math/bits"

// bitset is an immutable set of type indices. Mutation always copies.
type bitset []uint64

func (b bitset) has(i int) bool {
	w := i >> 6
	return w < len(b) && b[w]&(1<<(uint(i)&63)) != 0
}

func (b bitset) with(i int) bitset {
	w := i >> 6
	n := len(b)
	if w >= n {
		n = w + 1
	}
	out := make(bitset, n)
	copy(out, b)
	out[w] |= 1 << (uint(i) & 63)
	return out
}

// each calls fn for every member in ascending order
func (b bitset) each(fn func(i int)) {
	for w, word := range b {
		for word != 0 {
			tz := bits.TrailingZeros64(word)
			fn(w<<6 + tz)
			word &^= 1 << uint(tz)
		}
	}
}

func (b bitset) count() int {
	n := 0
	for _, word := range b {
		n += bits.OnesCount64(word)
	}
	return n
}

// snapshot is one published state of a registry. It is never modified
// after publication.
type snapshot struct {
	// types in registration order; a type's index is its position
	types []*ExceptionType
	byID  map[string]*ExceptionType

	// closure[i] holds the indices of every type that types[i] catches,
	// itself included
	closure []bitset

	// children[i] holds the indices of direct subtypes of types[i]
	children [][]int
}

func emptySnapshot() *snapshot {
	return &snapshot{byID: make(map[string]*ExceptionType)}
}

// extend returns a new snapshot with t appended. Only the closures of t's
// ancestors and its parent's child list are copied; everything else is
// shared with s.
func (s *snapshot) extend(t *ExceptionType) *snapshot {
	n := len(s.types)

	next := &snapshot{
		types:    make([]*ExceptionType, n, n+1),
		byID:     make(map[string]*ExceptionType, n+1),
		closure:  make([]bitset, n, n+1),
		children: make([][]int, n, n+1),
	}
	copy(next.types, s.types)
	copy(next.closure, s.closure)
	copy(next.children, s.children)
	for id, et := range s.byID {
		next.byID[id] = et
	}

	next.types = append(next.types, t)
	next.byID[t.id] = t
	next.closure = append(next.closure, bitset(nil).with(t.index))
	next.children = append(next.children, nil)

	for a := t.parent; a != nil; a = a.parent {
		next.closure[a.index] = next.closure[a.index].with(t.index)
	}

	if t.parent != nil {
		p := t.parent.index
		siblings := make([]int, len(s.children[p]), len(s.children[p])+1)
		copy(siblings, s.children[p])
		next.children[p] = append(siblings, t.index)
	}

	return next
}

func (s *snapshot) root() *ExceptionType {
	if len(s.types) == 0 {
		return nil
	}
	return s.types[0]
}
