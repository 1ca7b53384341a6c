package rsamath

import (
	"math/big"

	"github.com/pkg/errors"
)

// GeneratorSearchBound is the exclusive upper bound on the bases FindGenerator tries.
// For the keys the weak-key attack targets a suitable base shows up far below
// it, but nothing guarantees that for arbitrary inputs.
const GeneratorSearchBound = 1000

// FindGenerator returns the smallest g in [2, GeneratorSearchBound) such that
// g^a mod n != 1 and g^b mod n != 1, meaning the order of g divides neither a
// nor b. ErrNoGenerator is returned when there is no such g in the range.
func FindGenerator(a, b, n *big.Int) (*big.Int, error) {
	if a == nil || b == nil || n == nil || n.Cmp(one) <= 0 {
		return nil, ErrInvalidArgument
	}
	g := new(big.Int)
	ga := new(big.Int)
	gb := new(big.Int)
	found := false
	for i := int64(2); i < GeneratorSearchBound && !found; i++ {
		g.SetInt64(i)
		aOrderGood := ga.Exp(g, a, n).Cmp(one) != 0
		bOrderGood := gb.Exp(g, b, n).Cmp(one) != 0
		found = aOrderGood && bOrderGood
	}
	if !found {
		return nil, errors.Wrapf(ErrNoGenerator, "no base below %d works for a=%s, b=%s", GeneratorSearchBound, a, b)
	}
	return g, nil
}
