package padding

import (
	"crypto/subtle"
	"encoding/binary"
	"io"
	"math/big"

	"github.com/pkg/errors"
)

// MGF1 is the mask generation function of PKCS #1, appendix B.2.1: the hash
// of seed || counter for counter = 0, 1, ... concatenated and cut to maskLen.
func MGF1(seed []byte, maskLen int, h Hash) ([]byte, error) {
	if !h.valid() {
		return nil, ErrUnsupportedHash
	}
	hLen := h.Size()
	if maskLen < 0 || uint64(maskLen) > (uint64(1)<<32)*uint64(hLen) {
		return nil, errors.Wrapf(ErrMaskTooLong, "mask of %d bytes", maskLen)
	}

	out := make([]byte, 0, maskLen+hLen)
	var counter [4]byte
	d := h.New()
	for i := 0; len(out) < maskLen; i++ {
		binary.BigEndian.PutUint32(counter[:], uint32(i))
		d.Reset()
		d.Write(seed)
		d.Write(counter[:])
		out = d.Sum(out)
	}
	return out[:maskLen], nil
}

// mgf1XOR xors out with the MGF1 mask of seed.
func mgf1XOR(out, seed []byte, h Hash) error {
	mask, err := MGF1(seed, len(out), h)
	if err != nil {
		return err
	}
	subtle.XORBytes(out, out, mask)
	return nil
}

func labelHash(label []byte, h Hash) []byte {
	d := h.New()
	d.Write(label)
	return d.Sum(nil)
}

// EncodeOAEP returns the k byte EME-OAEP encoding of msg:
// 0x00 || maskedSeed || maskedDB, with DB = lHash || PS || 0x01 || msg.
// A nil label is the empty label.
func EncodeOAEP(random io.Reader, n *big.Int, msg, label []byte, h Hash) ([]byte, error) {
	if !h.valid() {
		return nil, ErrUnsupportedHash
	}
	k, err := modulusLen(n)
	if err != nil {
		return nil, err
	}
	hLen := h.Size()

	if uint64(len(label)) > maxLabelLen {
		return nil, ErrLabelTooLong
	}
	if len(msg) > k-2*hLen-2 {
		return nil, errors.Wrapf(ErrMessageTooLong, "%d bytes, at most %d fit with %s", len(msg), k-2*hLen-2, h)
	}

	em := make([]byte, k)
	seed := em[1 : 1+hLen]
	db := em[1+hLen:]

	// DB = lHash || PS || 0x01 || M, PS being the zeros already in place
	copy(db[:hLen], labelHash(label, h))
	db[len(db)-len(msg)-1] = 0x01
	copy(db[len(db)-len(msg):], msg)

	if _, err := io.ReadFull(random, seed); err != nil {
		return nil, errors.Wrap(err, "padding: reading random seed")
	}

	if err := mgf1XOR(db, seed, h); err != nil {
		return nil, err
	}
	if err := mgf1XOR(seed, db, h); err != nil {
		return nil, err
	}
	return em, nil
}

// DecodeOAEP reverses EncodeOAEP and reports whether the padding is valid.
//
// A bad padding never produces an error: valid is false and msg holds
// whatever followed the first non-zero byte after the label hash. Errors are
// kept for malformed input, an em that is not k bytes long, a modulus too
// short for the hash, a label that is too long or an unusable hash.
func DecodeOAEP(n *big.Int, em, label []byte, h Hash) (msg []byte, valid bool, err error) {
	if !h.valid() {
		return nil, false, ErrUnsupportedHash
	}
	k, err := modulusLen(n)
	if err != nil {
		return nil, false, err
	}
	hLen := h.Size()

	if uint64(len(label)) > maxLabelLen {
		return nil, false, ErrLabelTooLong
	}
	if len(em) != k {
		return nil, false, errors.Wrapf(ErrModulusLengthMismatch, "got %d bytes, want %d", len(em), k)
	}
	if k < 2*hLen+2 {
		return nil, false, errors.Wrapf(ErrModulusLengthMismatch, "%d byte modulus is too short for %s", k, h)
	}

	lHash := labelHash(label, h)

	// Work on a copy, em may be reused by the caller.
	buf := append([]byte(nil), em...)
	y := buf[0]
	seed := buf[1 : 1+hLen]
	db := buf[1+hLen:]

	if err := mgf1XOR(seed, db, h); err != nil {
		return nil, false, err
	}
	if err := mgf1XOR(db, seed, h); err != nil {
		return nil, false, err
	}

	// DB = lHash' || PS || S || M
	i := hLen
	for i < len(db) && db[i] == 0x00 {
		i++
	}
	if i == len(db) {
		return nil, false, nil
	}
	s := db[i]
	msg = db[i+1:]

	lHashGood := subtle.ConstantTimeCompare(db[:hLen], lHash)
	firstByteIsZero := subtle.ConstantTimeByteEq(y, 0x00)
	separatorGood := subtle.ConstantTimeByteEq(s, 0x01)
	psLenGood := subtle.ConstantTimeEq(int32(i-hLen), int32(k-len(msg)-2*hLen-2))

	valid = firstByteIsZero&separatorGood&lHashGood&psLenGood == 1
	return msg, valid, nil
}
