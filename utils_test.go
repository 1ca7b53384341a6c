package main

import (
	"bytes"
	"crypto/rand"
	"math/big"
	"testing"

	"github.com/danshumow-msft/FixBadRsaEncryption/padding"
)

func TestFromBase10(t *testing.T) {
	if big.NewInt(65537).Cmp(fromBase10("65537")) != 0 {
		t.Errorf("Error when evaluating fromBase10(\"65537\").")
	}
	defer func() {
		if recover() == nil {
			t.Errorf("fromBase10(\"10001h\") did not panic")
		}
	}()
	fromBase10("10001h")
}

// Every fixture must have exactly its p weak, and p-1 not divisible by e^2.
func TestWeakKeys(t *testing.T) {
	for _, k := range weakKeys {
		e := big.NewInt(int64(k.e))
		if !k.p.ProbablyPrime(20) || !k.q.ProbablyPrime(20) {
			t.Errorf("%s: p or q is not prime", k.name)
		}
		pm1 := new(big.Int).Sub(k.p, big.NewInt(1))
		qm1 := new(big.Int).Sub(k.q, big.NewInt(1))
		if new(big.Int).Mod(pm1, e).Sign() != 0 {
			t.Errorf("%s: p is not weak", k.name)
		}
		if new(big.Int).Mod(qm1, e).Sign() == 0 {
			t.Errorf("%s: q is weak too", k.name)
		}
		if new(big.Int).Mod(pm1, new(big.Int).Mul(e, e)).Sign() == 0 {
			t.Errorf("%s: e^2 divides p-1", k.name)
		}
	}
}

func TestEncryptPKCS1v15(t *testing.T) {
	k := weakKeys[0]
	ct, err := encryptPKCS1v15(rand.Reader, []byte("Msg"), k)
	if err != nil {
		t.Fatal(err)
	}
	if ct.Cmp(k.n()) >= 0 {
		t.Errorf("ciphertext not reduced")
	}
	if _, err := encryptOAEP(rand.Reader, []byte("Msg"), nil, padding.MD5, k); err == nil {
		t.Errorf("OAEP with md5 cannot fit in 32 bytes")
	}
	if _, err := encryptOAEP(rand.Reader, bytes.Repeat([]byte("M"), 30), nil, padding.MD5, weakKeys[1]); err != nil {
		t.Errorf("30 bytes fit with md5 in 64 bytes: %v", err)
	}
}
