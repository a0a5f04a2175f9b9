package auth

import "golang.org/x/crypto/bcrypt"

// Hasher produces and checks bcrypt password digests.
type Hasher struct {
	Cost int
}

// NewHasher returns a Hasher at bcrypt's default cost.
func NewHasher() Hasher {
	return Hasher{Cost: bcrypt.DefaultCost}
}

func (h Hasher) Hash(password string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Compare reports whether password matches digest.
func (h Hasher) Compare(digest, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}
