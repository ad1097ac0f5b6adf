package auth

import (
	"go-ems/internal/auth/token"

	"go.uber.org/zap"
)

// NewServiceWithCompare swaps the password comparison so tests can observe it.
func NewServiceWithCompare(repo Repository, issuer *token.Issuer, compare func(hash, password []byte) error) Service {
	s := NewService(repo, issuer, zap.NewNop()).(*service)
	s.compare = compare
	return s
}
