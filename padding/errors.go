// Package padding implements the RSA encryption paddings of PKCS #1:
// the v1.5 block type 2 encoding and OAEP with MGF1.
//
// These are encodings only: they map a message to a block of exactly k bytes,
// k being the byte length of the modulus, and back. Nothing here does the RSA
// operation itself.
package padding

import (
	"math/big"

	"github.com/pkg/errors"
)

var (
	ErrMessageTooLong        = errors.New("padding: message too long")
	ErrLabelTooLong          = errors.New("padding: label too long")
	ErrMaskTooLong           = errors.New("padding: mask too long")
	ErrModulusLengthMismatch = errors.New("padding: encoded message length does not match the modulus")
	ErrPaddingInvalid        = errors.New("padding: invalid padding")
	ErrUnsupportedHash       = errors.New("padding: unsupported hash")
	ErrInvalidModulus        = errors.New("padding: invalid modulus")
)

// maxLabelLen is the 2^61 - 1 bytes SHA-1 and SHA-256 can take as input.
const maxLabelLen = 1<<61 - 1

// modulusLen returns k, the length in bytes of n.
func modulusLen(n *big.Int) (int, error) {
	if n == nil || n.Sign() <= 0 {
		return 0, ErrInvalidModulus
	}
	return (n.BitLen() + 7) / 8, nil
}

// LeftPad returns a new slice of length size, with input right aligned in it.
// Input longer than size is truncated from the left.
func LeftPad(input []byte, size int) []byte {
	out := make([]byte, size)
	n := len(input)
	if n > size {
		n = size
	}
	copy(out[len(out)-n:], input[len(input)-n:])
	return out
}
