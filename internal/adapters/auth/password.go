package auth

import "golang.org/x/crypto/bcrypt"

// Bcrypt implements domain.PasswordHasher.
type Bcrypt struct{ Cost int }

func (b Bcrypt) Hash(plain string) (string, error) {
	cost := b.Cost
	if cost < bcrypt.MinCost {
		cost = bcrypt.DefaultCost
	}
	h, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

func (Bcrypt) Verify(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
