package main

import (
	"io"
	"math/big"

	"github.com/danshumow-msft/FixBadRsaEncryption/padding"
)

// fromBase10 parses a decimal constant, as found in the go crypto tests suite
func fromBase10(base10 string) *big.Int {
	i, ok := new(big.Int).SetString(base10, 10)
	if !ok {
		panic("bad number: " + base10)
	}
	return i
}

// weakKey is a key pair whose p has p-1 divisible by e.
type weakKey struct {
	name string
	p, q *big.Int
	e    int
}

func (k weakKey) n() *big.Int {
	return new(big.Int).Mul(k.p, k.q)
}

var weakKeys = []weakKey{
	{
		name: "256 bit",
		p:    fromBase10("105943264837628291368588115498666759579"),
		q:    fromBase10("281897970572710409379912902924766414623"),
		e:    65537,
	},
	{
		name: "512 bit",
		p:    fromBase10("56707933411172887678109258450273054838756057952372116336034264615184143162319"),
		q:    fromBase10("106164237342010437583582702908636891659657542364161656282054650336691404243699"),
		e:    65537,
	},
	{
		name: "510 bit",
		p:    fromBase10("34387544593670505224894952205499074005031928791959611454481093888481277920639"),
		q:    fromBase10("95494466027181231798633086231116363926111790946014452380632032637864163116199"),
		e:    65537,
	},
}

// rawEncrypt returns m^e mod n.
func rawEncrypt(m *big.Int, k weakKey) *big.Int {
	return new(big.Int).Exp(m, big.NewInt(int64(k.e)), k.n())
}

// encryptPKCS1v15 pads msg and encrypts it.
func encryptPKCS1v15(random io.Reader, msg []byte, k weakKey) (*big.Int, error) {
	em, err := padding.EncodePKCS1v15(random, k.n(), msg)
	if err != nil {
		return nil, err
	}
	return rawEncrypt(new(big.Int).SetBytes(em), k), nil
}

// encryptOAEP pads msg with OAEP and encrypts it.
func encryptOAEP(random io.Reader, msg, label []byte, h padding.Hash, k weakKey) (*big.Int, error) {
	em, err := padding.EncodeOAEP(random, k.n(), msg, label, h)
	if err != nil {
		return nil, err
	}
	return rawEncrypt(new(big.Int).SetBytes(em), k), nil
}
