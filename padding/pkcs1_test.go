package padding

import (
	"bytes"
	"crypto/md5"
	"crypto/rand"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"math/big"
	"testing"

	"github.com/pkg/errors"
)

// n2048 is 2^2047, enough to give k = 256 without a real key.
var n2048 = new(big.Int).Lsh(big.NewInt(1), 2047)

func testMessages() [][]byte {
	nonce := bytes.Repeat([]byte{0x01, 0x23, 0x45, 0x67, 0x89, 0xab, 0xcd, 0xef}, 8)
	sha1Sum := sha1.Sum(nonce)
	md5Sum := md5.Sum(nonce)
	sha256Sum := sha256.Sum256(nonce)
	sha384Sum := sha512.Sum384(nonce)
	sha512Sum := sha512.Sum512(nonce)
	return [][]byte{
		{},
		[]byte("Msg"),
		bytes.Repeat([]byte{0x01, 0x23, 0x45, 0x67, 0x89}, 4),
		bytes.Repeat([]byte{0x01, 0x23, 0x45, 0x67, 0x89, 0x01, 0x23, 0x45}, 4),
		sha1Sum[:],
		md5Sum[:],
		sha256Sum[:],
		sha384Sum[:],
		sha512Sum[:],
	}
}

func TestPKCS1v15EncodeDecode(t *testing.T) {
	for _, msg := range testMessages() {
		em, err := EncodePKCS1v15(rand.Reader, n2048, msg)
		if err != nil {
			t.Fatal(err)
		}
		if len(em) != 256 {
			t.Errorf("got %d bytes, want 256", len(em))
		}
		if em[0] != 0x00 || em[1] != 0x02 {
			t.Errorf("bad header %x", em[:2])
		}
		if i := bytes.IndexByte(em[2:], 0x00) + 2; i != 256-len(msg)-1 {
			t.Errorf("separator at %d, want %d", i, 256-len(msg)-1)
		}
		got, err := DecodePKCS1v15(em)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(got, msg) {
			t.Errorf("got %x, want %x", got, msg)
		}

		valid, padLen, msgLen := CheckPKCS1v15(em)
		if !valid {
			t.Errorf("padding of %x not valid", em)
		}
		if padLen != 256-len(msg)-3 {
			t.Errorf("padding length: got %d, want %d", padLen, 256-len(msg)-3)
		}
		if msgLen != len(msg) {
			t.Errorf("message length: got %d, want %d", msgLen, len(msg))
		}
	}
}

func TestPKCS1v15MessageTooLong(t *testing.T) {
	n := new(big.Int).Lsh(big.NewInt(1), 255) // k = 32
	if _, err := EncodePKCS1v15(rand.Reader, n, make([]byte, 21)); err != nil {
		t.Errorf("21 bytes should fit: %v", err)
	}
	_, err := EncodePKCS1v15(rand.Reader, n, make([]byte, 22))
	if errors.Cause(err) != ErrMessageTooLong {
		t.Errorf("got %v, want %v", err, ErrMessageTooLong)
	}
	if _, err := EncodePKCS1v15(rand.Reader, nil, nil); err != ErrInvalidModulus {
		t.Errorf("got %v, want %v", err, ErrInvalidModulus)
	}
}

func TestPKCS1v15Invalid(t *testing.T) {
	valid := append([]byte{0x00, 0x02}, bytes.Repeat([]byte{0xff}, 8)...)
	valid = append(valid, 0x00, 'h', 'i')

	for _, tc := range []struct {
		name string
		em   []byte
	}{
		{"empty", []byte{}},
		{"short", []byte{0x00}},
		{"first byte", append([]byte{0x01}, valid[1:]...)},
		{"block type", append([]byte{0x00, 0x01}, valid[2:]...)},
		{"no separator", append([]byte{0x00, 0x02}, bytes.Repeat([]byte{0x11}, 20)...)},
		{"padding too short", []byte{0x00, 0x02, 1, 2, 3, 4, 5, 6, 7, 0x00, 'h', 'i'}},
	} {
		if _, err := DecodePKCS1v15(tc.em); errors.Cause(err) != ErrPaddingInvalid {
			t.Errorf("%s: got %v, want %v", tc.name, err, ErrPaddingInvalid)
		}
		if ok, padLen, msgLen := CheckPKCS1v15(tc.em); ok || padLen != -1 || msgLen != 0 {
			t.Errorf("%s: got (%v, %d, %d), want (false, -1, 0)", tc.name, ok, padLen, msgLen)
		}
	}

	// eight bytes of padding is the minimum
	got, err := DecodePKCS1v15(valid)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "hi" {
		t.Errorf("got %q, want %q", got, "hi")
	}
	if ok, padLen, msgLen := CheckPKCS1v15(valid); !ok || padLen != 8 || msgLen != 2 {
		t.Errorf("got (%v, %d, %d), want (true, 8, 2)", ok, padLen, msgLen)
	}
}

func TestLeftPad(t *testing.T) {
	if got := LeftPad([]byte{1, 2}, 4); !bytes.Equal(got, []byte{0, 0, 1, 2}) {
		t.Errorf("got %x", got)
	}
	if got := LeftPad([]byte{1, 2, 3}, 2); !bytes.Equal(got, []byte{2, 3}) {
		t.Errorf("got %x", got)
	}
}
