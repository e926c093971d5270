package auth

import (
	"fmt"
	"strings"
	"sync"
)

// Hashing schemes accepted by NewPasswords.
const (
	SchemeArgon2id = "argon2id"
	SchemeBcrypt   = "bcrypt"
)

// dummyPassword is hashed once and verified against when an identity is
// unknown, so that lookups for missing users cost the same as bad secrets.
const dummyPassword = "coursekeep-dummy-password"

// Passwords hashes new passwords with a single scheme and verifies candidates
// against any supported stored hash (argon2id PHC strings or bcrypt).
// It is safe for concurrent use.
type Passwords struct {
	hash func(string) (string, error)

	dummyOnce sync.Once
	dummyHash string
}

// NewPasswords returns a Passwords that hashes with the given scheme.
func NewPasswords(scheme string) (*Passwords, error) {
	switch scheme {
	case SchemeArgon2id, "":
		return &Passwords{hash: HashArgon2id}, nil
	case SchemeBcrypt:
		return &Passwords{hash: HashBcrypt}, nil
	default:
		return nil, fmt.Errorf("unsupported password scheme %q", scheme)
	}
}

// Hash returns a salted one-way hash of password.
func (p *Passwords) Hash(password string) (string, error) {
	return p.hash(password)
}

// Verify reports whether candidate matches storedHash under the scheme that
// produced storedHash. Malformed or unknown hashes never verify.
func (p *Passwords) Verify(candidate, storedHash string) bool {
	var (
		ok  bool
		err error
	)

	switch {
	case strings.HasPrefix(storedHash, argon2Prefix):
		ok, err = VerifyArgon2id(candidate, storedHash)
	case isBcryptHash(storedHash):
		ok, err = VerifyBcrypt(candidate, storedHash)
	default:
		return false
	}

	return err == nil && ok
}

// VerifyDummy burns the same work as a real verification and always fails.
func (p *Passwords) VerifyDummy(candidate string) bool {
	p.dummyOnce.Do(func() {
		p.dummyHash, _ = p.hash(dummyPassword)
	})
	p.Verify(candidate, p.dummyHash)
	return false
}
