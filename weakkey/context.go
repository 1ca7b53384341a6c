package weakkey

import (
	"math/big"
	"time"

	"github.com/pkg/errors"

	"github.com/danshumow-msft/FixBadRsaEncryption/rsamath"
)

// MaxExponent is the largest public exponent accepted, the Fermat number F4 = 2^16 + 1.
const MaxExponent = 1<<16 + 1

var (
	// ErrInvalidKey is returned for missing primes, primes below 2 or p == q.
	ErrInvalidKey = errors.New("weakkey: invalid key")
	// ErrInvalidExponent is returned when e is not a prime.
	ErrInvalidExponent = errors.New("weakkey: public exponent must be prime")
	// ErrExponentTooLarge is returned when e > MaxExponent.
	ErrExponentTooLarge = errors.New("weakkey: public exponent is larger than F4")
	// ErrNeitherOrBothPrimesWeak is returned unless exactly one of p-1, q-1
	// is divisible by e.
	ErrNeitherOrBothPrimesWeak = errors.New("weakkey: exactly one of p-1 and q-1 must be divisible by e")
	// ErrCiphertextOutOfRange is returned for a ciphertext outside [0, N).
	ErrCiphertextOutOfRange = errors.New("weakkey: ciphertext out of range")
)

var one = big.NewInt(1)

// Context is everything the enumeration needs for one key and ciphertext.
// It is built by NewContext and only read afterwards.
type Context struct {
	// N = P*Q, P being the weak prime: e divides P-1.
	N, P, Q *big.Int
	E       int

	// ReducedTotient is φ(N)/e.
	ReducedTotient *big.Int
	// PartialExponent is e^-1 mod ReducedTotient.
	PartialExponent *big.Int
	// Generator is a base whose order divides neither e nor ReducedTotient.
	Generator *big.Int
	// TorsionGenerator is Generator^ReducedTotient mod N, of order exactly e.
	TorsionGenerator *big.Int
	// PartialPlaintext is c^PartialExponent mod N. The plaintext is
	// PartialPlaintext * TorsionGenerator^i mod N for some i.
	PartialPlaintext *big.Int

	// SquareDivisible is set when e^2 divides P-1. ReducedTotient is then a
	// multiple of e and no PartialExponent exists.
	SquareDivisible bool

	// Timings of the steps NewContext ran.
	Timings Timings

	crt *rsamath.CRT
	cfg config
}

// Timings are the wall-clock durations of the attack steps. The engine
// measures them and hands them back, printing them is up to the caller.
type Timings struct {
	// Setup covers validation and the totient and inverse computation.
	Setup time.Duration
	// GeneratorSearch is the time rsamath.FindGenerator took.
	GeneratorSearch time.Duration
	// PrivateKeyOps covers the CRT precomputation and both exponentiations.
	PrivateKeyOps time.Duration
	// Search is the enumeration of the candidates.
	Search time.Duration
}

// NewContext checks that (p, q, e) is a key with exactly one weak prime and
// computes the partial decryption of ciphertext.
func NewContext(p, q *big.Int, e int, ciphertext *big.Int, opts ...Option) (*Context, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	start := time.Now()

	p, q, squareDivisible, err := validate(p, q, e)
	if err != nil {
		return nil, err
	}
	n := new(big.Int).Mul(p, q)
	if ciphertext == nil || ciphertext.Sign() < 0 || ciphertext.Cmp(n) >= 0 {
		return nil, ErrCiphertextOutOfRange
	}
	if squareDivisible {
		cfg.logger.Printf("warning: e^2 divides p-1 for e = %d, the partial exponent will not exist", e)
	}

	ctx := &Context{
		N:               n,
		P:               p,
		Q:               q,
		E:               e,
		SquareDivisible: squareDivisible,
		cfg:             cfg,
	}

	eBig := big.NewInt(int64(e))
	phi := new(big.Int).Mul(new(big.Int).Sub(p, one), new(big.Int).Sub(q, one))
	ctx.ReducedTotient = phi.Quo(phi, eBig)

	ctx.PartialExponent, err = rsamath.ModInverse(eBig, ctx.ReducedTotient)
	if err != nil {
		if squareDivisible {
			return nil, errors.Wrap(err, "weakkey: partial exponent, e^2 divides p-1")
		}
		return nil, errors.Wrap(err, "weakkey: partial exponent")
	}
	ctx.Timings.Setup = time.Since(start)

	start = time.Now()
	ctx.Generator, err = rsamath.FindGenerator(eBig, ctx.ReducedTotient, n)
	if err != nil {
		return nil, errors.Wrap(err, "weakkey: torsion generator")
	}
	ctx.Timings.GeneratorSearch = time.Since(start)
	cfg.logger.Printf("generator %v found in %v", ctx.Generator, ctx.Timings.GeneratorSearch)

	start = time.Now()
	ctx.crt, err = rsamath.NewCRT(p, q)
	if err != nil {
		return nil, errors.Wrap(err, "weakkey: crt")
	}
	ctx.TorsionGenerator = ctx.crt.Exp(ctx.Generator, ctx.ReducedTotient)
	ctx.PartialPlaintext = ctx.crt.Exp(ciphertext, ctx.PartialExponent)
	ctx.Timings.PrivateKeyOps = time.Since(start)
	cfg.logger.Printf("private key operations done in %v", ctx.Timings.PrivateKeyOps)

	return ctx, nil
}

// validate returns the primes ordered so that the weak one comes first, and
// whether e^2 divides it minus one. Nothing here exponentiates.
func validate(p, q *big.Int, e int) (weak, other *big.Int, squareDivisible bool, err error) {
	if p == nil || q == nil || p.Cmp(one) <= 0 || q.Cmp(one) <= 0 {
		return nil, nil, false, ErrInvalidKey
	}
	if p.Cmp(q) == 0 {
		return nil, nil, false, errors.Wrap(ErrInvalidKey, "p == q")
	}
	if e > MaxExponent {
		return nil, nil, false, errors.Wrapf(ErrExponentTooLarge, "e = %d", e)
	}
	eBig := big.NewInt(int64(e))
	// ProbablyPrime is exact below 2^64
	if e < 2 || !eBig.ProbablyPrime(0) {
		return nil, nil, false, errors.Wrapf(ErrInvalidExponent, "e = %d", e)
	}

	r := new(big.Int)
	weakP := r.Mod(new(big.Int).Sub(p, one), eBig).Sign() == 0
	weakQ := r.Mod(new(big.Int).Sub(q, one), eBig).Sign() == 0
	if weakP == weakQ {
		return nil, nil, false, errors.Wrapf(ErrNeitherOrBothPrimesWeak, "p-1 weak: %v, q-1 weak: %v", weakP, weakQ)
	}
	if weakQ {
		p, q = q, p
	}
	weak = new(big.Int).Set(p)
	other = new(big.Int).Set(q)

	e2 := new(big.Int).Mul(eBig, eBig)
	squareDivisible = r.Mod(new(big.Int).Sub(weak, one), e2).Sign() == 0
	return weak, other, squareDivisible, nil
}
