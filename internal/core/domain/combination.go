package domain

import (
	"fmt"
	"math/bits"
	"strconv"
	"strings"
)

// Combination is an unordered set of item ids, one bit per id.
// Two combinations are equal iff they hold the same members, so the value
// itself is the canonical key.
type Combination uint64

// NewCombination builds a combination from item ids.
func NewCombination(ids ...int) Combination {
	var c Combination
	for _, id := range ids {
		c = c.With(id)
	}
	return c
}

// With returns c plus the given id.
func (c Combination) With(id int) Combination {
	return c | 1<<uint(id)
}

// Without returns c minus the given id.
func (c Combination) Without(id int) Combination {
	return c &^ (1 << uint(id))
}

// Has reports whether id is a member.
func (c Combination) Has(id int) bool {
	return c&(1<<uint(id)) != 0
}

// Len returns the number of members.
func (c Combination) Len() int {
	return bits.OnesCount64(uint64(c))
}

// IsEmpty reports whether c has no members.
func (c Combination) IsEmpty() bool {
	return c == 0
}

// Union returns members present in either combination.
func (c Combination) Union(o Combination) Combination {
	return c | o
}

// Intersect returns members present in both combinations.
func (c Combination) Intersect(o Combination) Combination {
	return c & o
}

// Minus returns members of c that are not in o.
func (c Combination) Minus(o Combination) Combination {
	return c &^ o
}

// ContainsAll reports whether every member of o is in c.
func (c Combination) ContainsAll(o Combination) bool {
	return c&o == o
}

// IDs returns the member ids in ascending order.
func (c Combination) IDs() []int {
	ids := make([]int, 0, c.Len())
	for rest := uint64(c); rest != 0; rest &= rest - 1 {
		ids = append(ids, bits.TrailingZeros64(rest))
	}
	return ids
}

// String renders the ids, e.g. "{1,4,9}".
func (c Combination) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, id := range c.IDs() {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(id))
	}
	b.WriteByte('}')
	return b.String()
}

// IndexedCombination is the persisted form of an enumerated combination.
// It is created once per enumeration run and never mutated.
type IndexedCombination struct {
	// Index is the surrogate key assigned at enumeration time.
	Index int64

	// Members is the combination itself.
	Members Combination

	// Size is the number of members.
	Size int

	// TotalScore is the sum of discrete trait levels.
	TotalScore int
}

// Validate checks that the record is loadable against the given catalog members.
func (c IndexedCombination) Validate(known Combination) error {
	if c.Index < 0 {
		return fmt.Errorf("%w: negative combination index %d", ErrInvalidInput, c.Index)
	}
	if c.Size != c.Members.Len() {
		return fmt.Errorf("%w: combination %d size %d does not match %d members",
			ErrInvalidInput, c.Index, c.Size, c.Members.Len())
	}
	if !known.ContainsAll(c.Members) {
		return fmt.Errorf("%w: combination %d has members outside the catalog", ErrInvalidInput, c.Index)
	}
	if c.TotalScore < 0 {
		return fmt.Errorf("%w: combination %d has negative score", ErrInvalidInput, c.Index)
	}
	return nil
}
