package rsamath

import (
	"math/big"
	"testing"

	"github.com/pkg/errors"
)

func TestFindGenerator(t *testing.T) {
	e := big.NewInt(65537)
	for _, tp := range testPrimes {
		n := new(big.Int).Mul(tp.p, tp.q)
		phi := new(big.Int).Mul(new(big.Int).Sub(tp.p, one), new(big.Int).Sub(tp.q, one))
		reduced := new(big.Int).Quo(phi, e)

		g, err := FindGenerator(e, reduced, n)
		if err != nil {
			t.Fatal(err)
		}
		if g.Cmp(big.NewInt(2)) < 0 || g.Cmp(big.NewInt(GeneratorSearchBound)) >= 0 {
			t.Errorf("generator %v out of range", g)
		}
		if new(big.Int).Exp(g, e, n).Cmp(one) == 0 {
			t.Errorf("g^e = 1 for g = %v", g)
		}
		if new(big.Int).Exp(g, reduced, n).Cmp(one) == 0 {
			t.Errorf("g^(phi/e) = 1 for g = %v", g)
		}
	}
}

func TestFindGeneratorSmallest(t *testing.T) {
	// 2 is a square mod 7 so 2^3 = 1, while 3 has order 6
	g, err := FindGenerator(big.NewInt(3), big.NewInt(2), big.NewInt(7))
	if err != nil {
		t.Fatal(err)
	}
	if g.Int64() != 3 {
		t.Errorf("got %v, want 3", g)
	}
}

func TestFindGeneratorExhausted(t *testing.T) {
	// 1009 is prime, so every base below the bound has g^1008 = 1
	_, err := FindGenerator(big.NewInt(1008), big.NewInt(5), big.NewInt(1009))
	if errors.Cause(err) != ErrNoGenerator {
		t.Errorf("got %v, want %v", err, ErrNoGenerator)
	}
	if _, err := FindGenerator(big.NewInt(3), big.NewInt(5), big.NewInt(1)); err != ErrInvalidArgument {
		t.Errorf("got %v, want %v", err, ErrInvalidArgument)
	}
}
