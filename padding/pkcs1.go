package padding

import (
	"bytes"
	"io"
	"math/big"

	"github.com/pkg/errors"
)

// pkcs1MinPadding is the minimum length of PS. The separator must sit at
// offset 10 or further, after 0x00 0x02 and at least 8 padding bytes.
const pkcs1MinPadding = 8

// EncodePKCS1v15 returns 0x00 || 0x02 || PS || 0x00 || msg, k bytes long,
// where PS is made of non-zero bytes read from random.
func EncodePKCS1v15(random io.Reader, n *big.Int, msg []byte) ([]byte, error) {
	k, err := modulusLen(n)
	if err != nil {
		return nil, err
	}
	if len(msg) > k-11 {
		return nil, errors.Wrapf(ErrMessageTooLong, "%d bytes, at most %d fit", len(msg), k-11)
	}

	em := make([]byte, k)
	em[1] = 0x02
	ps := em[2 : k-len(msg)-1]
	if err := nonZeroRandomBytes(ps, random); err != nil {
		return nil, err
	}
	em[k-len(msg)-1] = 0x00
	copy(em[k-len(msg):], msg)
	return em, nil
}

// nonZeroRandomBytes fills s with random non-zero bytes.
func nonZeroRandomBytes(s []byte, random io.Reader) error {
	if _, err := io.ReadFull(random, s); err != nil {
		return errors.Wrap(err, "padding: reading random bytes")
	}
	for i := 0; i < len(s); i++ {
		for s[i] == 0 {
			if _, err := io.ReadFull(random, s[i:i+1]); err != nil {
				return errors.Wrap(err, "padding: reading random bytes")
			}
		}
	}
	return nil
}

// DecodePKCS1v15 strips the v1.5 padding from em.
//
// This is a testing primitive. It is not constant time and the errors tell
// a format failure apart from a length failure, which is exactly the leak a
// Bleichenbacher style attack feeds on. Never expose it as a decryption oracle.
func DecodePKCS1v15(em []byte) ([]byte, error) {
	if len(em) < 2 || em[0] != 0x00 || em[1] != 0x02 {
		return nil, errors.Wrap(ErrPaddingInvalid, "padding format is invalid")
	}
	j := separatorIndex(em)
	if j < 2+pkcs1MinPadding {
		return nil, errors.Wrap(ErrPaddingInvalid, "padding length is incorrect")
	}
	return em[j+1:], nil
}

// CheckPKCS1v15 runs the same checks as DecodePKCS1v15 without failing.
// When valid, padLen is the length of PS and msgLen the length of the message.
// An invalid block gives (false, -1, 0).
func CheckPKCS1v15(em []byte) (valid bool, padLen, msgLen int) {
	if len(em) < 2 || em[0] != 0x00 || em[1] != 0x02 {
		return false, -1, 0
	}
	j := separatorIndex(em)
	if j < 2+pkcs1MinPadding {
		return false, -1, 0
	}
	padLen = j - 2
	return true, padLen, len(em) - padLen - 3
}

// separatorIndex returns the index of the first zero byte at offset 2 or
// later, or -1.
func separatorIndex(em []byte) int {
	j := bytes.IndexByte(em[2:], 0x00)
	if j < 0 {
		return -1
	}
	return j + 2
}
