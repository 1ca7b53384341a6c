package padding

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"hash"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/blake2s"
	"golang.org/x/crypto/sha3"
)

// Hash is one of the digest algorithms OAEP and MGF1 may be keyed with.
// The zero Hash is not usable; get one from LookupHash or the package variables.
type Hash struct {
	name string
	new  func() hash.Hash
	size int
}

func newHash(name string, fn func() hash.Hash) Hash {
	return Hash{name: name, new: fn, size: fn().Size()}
}

// The unkeyed BLAKE2 constructors only fail on an oversized key.
func newBlake2b() hash.Hash {
	h, err := blake2b.New512(nil)
	if err != nil {
		panic(err)
	}
	return h
}

func newBlake2s() hash.Hash {
	h, err := blake2s.New256(nil)
	if err != nil {
		panic(err)
	}
	return h
}

// The allowed hash algorithms.
var (
	MD5      = newHash("md5", md5.New)
	SHA1     = newHash("sha1", sha1.New)
	SHA224   = newHash("sha224", sha256.New224)
	SHA256   = newHash("sha256", sha256.New)
	SHA384   = newHash("sha384", sha512.New384)
	SHA512   = newHash("sha512", sha512.New)
	SHA3_224 = newHash("sha3-224", sha3.New224)
	SHA3_256 = newHash("sha3-256", sha3.New256)
	SHA3_384 = newHash("sha3-384", sha3.New384)
	SHA3_512 = newHash("sha3-512", sha3.New512)
	BLAKE2s  = newHash("blake2s", newBlake2s)
	BLAKE2b  = newHash("blake2b", newBlake2b)
)

var allowedHashes = []Hash{
	MD5, SHA1, SHA224, SHA256, SHA384, SHA512,
	SHA3_224, SHA3_256, SHA3_384, SHA3_512,
	BLAKE2s, BLAKE2b,
}

// Hashes returns every allowed hash, in a fixed order.
func Hashes() []Hash {
	return append([]Hash(nil), allowedHashes...)
}

// LookupHash resolves a hash identifier such as "sha256" or "sha3-384".
// Underscores are accepted in place of dashes ("sha3_384").
func LookupHash(name string) (Hash, error) {
	want := strings.ReplaceAll(strings.ToLower(name), "_", "-")
	for _, h := range allowedHashes {
		if h.name == want {
			return h, nil
		}
	}
	return Hash{}, errors.Wrapf(ErrUnsupportedHash, "%q", name)
}

// Name returns the identifier of the hash.
func (h Hash) Name() string { return h.name }

// Size returns the digest length in bytes.
func (h Hash) Size() int { return h.size }

// New returns a fresh hash.Hash.
func (h Hash) New() hash.Hash { return h.new() }

func (h Hash) String() string { return h.name }

func (h Hash) valid() bool { return h.new != nil }
