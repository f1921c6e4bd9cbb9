package auth

import "golang.org/x/crypto/bcrypt"

// PasswordHasher abstracts password hashing so services can swap the cost
// (tests use a cheap one).
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Compare(hash, plain string) error
}

type bcryptHasher struct {
	cost int
}

// NewBcryptPasswordHasher returns a bcrypt-backed hasher at the default cost.
func NewBcryptPasswordHasher() PasswordHasher {
	return &bcryptHasher{cost: bcrypt.DefaultCost}
}

// NewBcryptPasswordHasherWithCost returns a bcrypt-backed hasher at the given
// cost. Out-of-range costs fall back to the default.
func NewBcryptPasswordHasherWithCost(cost int) PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &bcryptHasher{cost: cost}
}

func (h *bcryptHasher) Hash(plain string) (string, error) {
	out, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// Compare returns nil when plain matches hash.
func (h *bcryptHasher) Compare(hash, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
}
