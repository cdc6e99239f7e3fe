package test

import (
	"context"
	"errors"
)

// HasherStub provides deterministic hashing for tests.
type HasherStub struct {
	HashFn    func(string) (string, error)
	CompareFn func(string, string) error
}

// Hash returns a predictable hash for the supplied password.
func (h HasherStub) Hash(password string) (string, error) {
	if h.HashFn != nil {
		return h.HashFn(password)
	}
	return "hash:" + password, nil
}

// Compare validates password against stored hash.
func (h HasherStub) Compare(hash string, password string) error {
	if h.CompareFn != nil {
		return h.CompareFn(hash, password)
	}
	if hash != "hash:"+password {
		return errors.New("mismatch")
	}
	return nil
}

// StrategyStub issues and parses tokens via function overrides.
type StrategyStub struct {
	IssueFn func(int64) (string, error)
	ParseFn func(string) (int64, error)
	NameVal string
}

// IssueToken returns deterministic tokens for tests.
func (s StrategyStub) IssueToken(userID int64) (string, error) {
	if s.IssueFn != nil {
		return s.IssueFn(userID)
	}
	return "token", nil
}

// ParseToken parses previously issued token strings.
func (s StrategyStub) ParseToken(token string) (int64, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	return 1, nil
}

// Name returns the strategy identifier used in tests.
func (s StrategyStub) Name() string {
	if s.NameVal != "" {
		return s.NameVal
	}
	return "stub"
}

// TokenParserStub resolves every token to a fixed identity.
type TokenParserStub struct {
	ID  int64
	Err error
}

// ParseToken returns the configured identity or error.
func (s TokenParserStub) ParseToken(string) (int64, error) {
	if s.Err != nil {
		return 0, s.Err
	}
	return s.ID, nil
}

// AdminCheckerStub reports a fixed role grant.
type AdminCheckerStub struct {
	Admin bool
	Err   error
}

// IsAdmin returns the configured grant state.
func (s AdminCheckerStub) IsAdmin(ctx context.Context, userID int64) (bool, error) {
	return s.Admin, s.Err
}

// LimiterStub throttles nothing unless configured to.
type LimiterStub struct {
	AcquireFn func(int64) (func(), error)
	Acquired  []int64
	Released  int
}

// Acquire records the identity and returns a release callback counter.
func (l *LimiterStub) Acquire(userID int64) (func(), error) {
	if l.AcquireFn != nil {
		return l.AcquireFn(userID)
	}
	l.Acquired = append(l.Acquired, userID)
	return func() { l.Released++ }, nil
}
