// Package rsamath holds the number theory the weak-key attack is built on:
// the extended Euclidean algorithm, modular inverses, CRT accelerated modular
// exponentiation and the bounded generator search.
package rsamath

import (
	"math/big"

	"github.com/pkg/errors"
)

var (
	// ErrInvalidArgument is returned for nil, negative or otherwise unusable operands.
	ErrInvalidArgument = errors.New("rsamath: invalid argument")
	// ErrNoInverse is returned when gcd(x, n) != 1.
	ErrNoInverse = errors.New("rsamath: no modular inverse exists")
	// ErrEqualPrimes is returned when the CRT is asked to combine p with itself.
	ErrEqualPrimes = errors.New("rsamath: p and q must be distinct")
	// ErrNoGenerator is returned when FindGenerator exhausts its search range.
	ErrNoGenerator = errors.New("rsamath: no generator found")
)

// A few useful big.Int, never modified:
var (
	zero = big.NewInt(0)
	one  = big.NewInt(1)
)

// ExtendedGCD runs the extended Euclidean algorithm on two non-negative
// integers. The operands are swapped so the larger one is processed first,
// and the coefficients follow that order: a*max(x,y) + b*min(x,y) = g.
func ExtendedGCD(x, y *big.Int) (a, b, g *big.Int) {
	if x.Cmp(y) < 0 {
		x, y = y, x
	}
	a, b, g = big.NewInt(1), big.NewInt(0), new(big.Int).Set(x)
	u, v, w := big.NewInt(0), big.NewInt(1), new(big.Int).Set(y)

	q := new(big.Int)
	tmp := new(big.Int)
	for w.Sign() > 0 {
		q.Quo(g, w)
		// (a, u) = (u, a - q*u) and the same for (b, v) and (g, w)
		a, u = u, new(big.Int).Sub(a, tmp.Mul(q, u))
		b, v = v, new(big.Int).Sub(b, tmp.Mul(q, v))
		g, w = w, new(big.Int).Sub(g, tmp.Mul(q, w))
	}
	return a, b, g
}

// ModInverse returns the inverse of x modulo n, in [0, n).
func ModInverse(x, n *big.Int) (*big.Int, error) {
	if x == nil || n == nil || n.Sign() <= 0 {
		return nil, ErrInvalidArgument
	}
	xr := new(big.Int).Mod(x, n)
	// n > xr, so b is the coefficient of xr
	_, b, g := ExtendedGCD(n, xr)
	if g.Cmp(one) != 0 {
		return nil, errors.Wrapf(ErrNoInverse, "gcd(%s, %s) = %s", x, n, g)
	}
	if b.Sign() < 0 {
		b.Add(b, n)
	}
	return b.Mod(b, n), nil
}
