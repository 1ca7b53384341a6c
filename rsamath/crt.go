package rsamath

import (
	"math/big"

	"github.com/pkg/errors"
)

// concurrentExpBits is the modulus size from which CRT.Exp runs its two
// half-size exponentiations on separate goroutines.
const concurrentExpBits = 1024

// CRT holds the recombination coefficients for N = P*Q.
// Mp is 1 mod P and 0 mod Q, Mq is 0 mod P and 1 mod Q, so
// x = (x mod P)*Mp + (x mod Q)*Mq mod N. A CRT is never modified after
// NewCRT returns and can be shared between goroutines.
type CRT struct {
	P, Q, N *big.Int
	Mp, Mq  *big.Int

	pMinus1, qMinus1 *big.Int
}

// NewCRT precomputes the CRT coefficients for two distinct primes.
func NewCRT(p, q *big.Int) (*CRT, error) {
	if p == nil || q == nil || p.Cmp(big.NewInt(2)) < 0 || q.Cmp(big.NewInt(2)) < 0 {
		return nil, ErrInvalidArgument
	}
	if p.Cmp(q) == 0 {
		return nil, ErrEqualPrimes
	}
	mp, mq, err := CRTPrecompute(p, q)
	if err != nil {
		return nil, err
	}
	return &CRT{
		P:       new(big.Int).Set(p),
		Q:       new(big.Int).Set(q),
		N:       new(big.Int).Mul(p, q),
		Mp:      mp,
		Mq:      mq,
		pMinus1: new(big.Int).Sub(p, one),
		qMinus1: new(big.Int).Sub(q, one),
	}, nil
}

// CRTPrecompute returns Mp = q*(q^-1 mod p) mod N and Mq = p*(p^-1 mod q) mod N.
func CRTPrecompute(p, q *big.Int) (mp, mq *big.Int, err error) {
	if p.Cmp(q) == 0 {
		return nil, nil, ErrEqualPrimes
	}
	n := new(big.Int).Mul(p, q)
	pInv, err := ModInverse(p, q)
	if err != nil {
		return nil, nil, errors.Wrap(err, "crt precompute")
	}
	qInv, err := ModInverse(q, p)
	if err != nil {
		return nil, nil, errors.Wrap(err, "crt precompute")
	}
	mp = new(big.Int).Mul(qInv, q)
	mp.Mod(mp, n)
	mq = new(big.Int).Mul(pInv, p)
	mq.Mod(mq, n)
	return mp, mq, nil
}

// CRTModExp computes x^a mod p*q from the coefficients of CRTPrecompute.
// The result is identical to new(big.Int).Exp(x, a, p*q).
func CRTModExp(x, a, p, q, mp, mq *big.Int) *big.Int {
	c := &CRT{
		P:       p,
		Q:       q,
		N:       new(big.Int).Mul(p, q),
		Mp:      mp,
		Mq:      mq,
		pMinus1: new(big.Int).Sub(p, one),
		qMinus1: new(big.Int).Sub(q, one),
	}
	return c.Exp(x, a)
}

// Exp returns x^a mod N. The exponent must be non-negative.
func (c *CRT) Exp(x, a *big.Int) *big.Int {
	var yp, yq *big.Int
	if c.N.BitLen() >= concurrentExpBits {
		done := make(chan struct{})
		go func() {
			yq = expModPrime(x, a, c.Q, c.qMinus1)
			close(done)
		}()
		yp = expModPrime(x, a, c.P, c.pMinus1)
		<-done
	} else {
		yp = expModPrime(x, a, c.P, c.pMinus1)
		yq = expModPrime(x, a, c.Q, c.qMinus1)
	}

	y := new(big.Int).Mul(yp, c.Mp)
	y.Add(y, new(big.Int).Mul(yq, c.Mq))
	return y.Mod(y, c.N)
}

// expModPrime computes x^a mod p with the exponent reduced mod p-1.
func expModPrime(x, a, p, pMinus1 *big.Int) *big.Int {
	xp := new(big.Int).Mod(x, p)
	// Fermat does not apply to 0: 0^a stays 0 for every a > 0, even when
	// a is a multiple of p-1.
	if xp.Cmp(zero) == 0 {
		if a.Sign() == 0 {
			return big.NewInt(1)
		}
		return xp
	}
	ap := new(big.Int).Mod(a, pMinus1)
	return xp.Exp(xp, ap, p)
}
