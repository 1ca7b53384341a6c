package weakkey

import (
	"math/big"

	"github.com/danshumow-msft/FixBadRsaEncryption/padding"
)

// Candidate is a plaintext candidate an Oracle accepted.
type Candidate struct {
	// Index is i in z * t^i mod N.
	Index int
	// Value is the candidate itself, z * t^i mod N.
	Value *big.Int
	// Message is the plaintext the oracle extracted: the unpadded message
	// for the padding oracles, the big-endian bytes of Value otherwise.
	Message []byte
	// PaddingLength is the length of the PKCS #1 v1.5 padding string, only
	// set by PKCS1v15Oracle.
	PaddingLength int
	// MessageLength is len(Message).
	MessageLength int
}

// Oracle is an interface to allow anyone to easily provide its own way of
// recognizing the right plaintext among the candidates.
//
// Query is called with the modulus and one candidate at a time, and reports
// whether the candidate is accepted along with whatever metadata the oracle
// extracts from it. The engine fills Index and Value itself. Query is called
// from several goroutines at once and must not modify its arguments.
type Oracle interface {
	Query(n, candidate *big.Int) (Candidate, bool)
}

// OracleFunc adapts a function to the Oracle interface.
type OracleFunc func(n, candidate *big.Int) (Candidate, bool)

// Query calls f(n, candidate).
func (f OracleFunc) Query(n, candidate *big.Int) (Candidate, bool) {
	return f(n, candidate)
}

// ExactMatch returns an Oracle accepting only the candidate equal to want,
// for when the plaintext is known and the attack is being tested.
func ExactMatch(want *big.Int) Oracle {
	w := new(big.Int).Set(want)
	return OracleFunc(func(_, candidate *big.Int) (Candidate, bool) {
		if candidate.Cmp(w) != 0 {
			return Candidate{}, false
		}
		m := candidate.Bytes()
		return Candidate{Message: m, MessageLength: len(m)}, true
	})
}

// PKCS1v15Oracle accepts candidates whose k byte encoding has a valid
// PKCS #1 v1.5 encryption padding. The check is structural only, so a wrong
// candidate gets through now and then.
type PKCS1v15Oracle struct{}

// Query implements Oracle.
func (PKCS1v15Oracle) Query(n, candidate *big.Int) (Candidate, bool) {
	k := (n.BitLen() + 7) / 8
	em := padding.LeftPad(candidate.Bytes(), k)
	valid, padLen, msgLen := padding.CheckPKCS1v15(em)
	if !valid || padLen < 8 {
		return Candidate{}, false
	}
	msg, err := padding.DecodePKCS1v15(em)
	if err != nil {
		return Candidate{}, false
	}
	return Candidate{Message: msg, PaddingLength: padLen, MessageLength: msgLen}, true
}

// OAEPOracle accepts candidates whose k byte encoding is a valid OAEP
// encoding under Label and Hash.
type OAEPOracle struct {
	Label []byte
	Hash  padding.Hash
}

// Query implements Oracle.
func (o OAEPOracle) Query(n, candidate *big.Int) (Candidate, bool) {
	k := (n.BitLen() + 7) / 8
	em := padding.LeftPad(candidate.Bytes(), k)
	msg, valid, err := padding.DecodeOAEP(n, em, o.Label, o.Hash)
	if err != nil || !valid {
		return Candidate{}, false
	}
	return Candidate{Message: msg, MessageLength: len(msg)}, true
}

// NewOAEPOracle returns an OAEPOracle for the named hash, see padding.LookupHash.
func NewOAEPOracle(label []byte, hashName string) (OAEPOracle, error) {
	h, err := padding.LookupHash(hashName)
	if err != nil {
		return OAEPOracle{}, err
	}
	return OAEPOracle{Label: label, Hash: h}, nil
}
