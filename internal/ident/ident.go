// Package ident produces entity identifiers and human-typeable join codes.
package ident

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"
)

// ErrCodeExhausted indicates no verified-unique join code could be
// produced within the configured attempt budget. Only returned under
// PolicyStrict; PolicyDegrade returns the last candidate instead.
var ErrCodeExhausted = errors.New("join code generation exhausted")

// ExhaustPolicy selects what happens when every attempt produced a
// code that already exists (or could not be verified).
type ExhaustPolicy int

const (
	// PolicyDegrade returns the final unverified candidate. Callers
	// must treat it as "probably unique", not "guaranteed unique".
	PolicyDegrade ExhaustPolicy = iota
	// PolicyStrict surfaces ErrCodeExhausted and lets the caller decide.
	PolicyStrict
)

// Join codes avoid ambiguous characters (0/O, 1/I/L) but stay within
// the upper-case alphanumeric contract.
const codeAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

// Config tunes join-code generation.
type Config struct {
	CodeLength  int
	MaxAttempts int
	OnExhausted ExhaustPolicy
}

// Generator produces ids and join codes.
type Generator struct {
	cfg  Config
	rand io.Reader
}

// New creates a Generator. Zero-value config fields get defaults:
// 6-character codes, 10 attempts, degrade on exhaustion.
func New(cfg Config) *Generator {
	if cfg.CodeLength <= 0 {
		cfg.CodeLength = 6
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 10
	}
	return &Generator{cfg: cfg, rand: rand.Reader}
}

// NewID returns a globally-unique opaque identifier.
func (g *Generator) NewID() string {
	return uuid.NewString()
}

// ExistsFunc reports whether a candidate code is already taken.
// Typically backed by a remote lookup.
type ExistsFunc func(ctx context.Context, code string) (bool, error)

// JoinCode generates an upper-case join code verified unique against
// exists, retrying up to the configured attempt budget. Verification
// errors count as failed attempts. On exhaustion the configured policy
// applies.
func (g *Generator) JoinCode(ctx context.Context, exists ExistsFunc) (string, error) {
	var last string
	var entropyErr error

	backoff := retry.WithMaxRetries(uint64(g.cfg.MaxAttempts-1), retry.NewConstant(time.Millisecond))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		code, err := g.randomCode()
		if err != nil {
			// Entropy failure is terminal, not a failed attempt
			entropyErr = err
			return err
		}
		last = code

		taken, err := exists(ctx, code)
		if err != nil {
			return retry.RetryableError(fmt.Errorf("verify code: %w", err))
		}
		if taken {
			return retry.RetryableError(errors.New("code taken"))
		}
		return nil
	})
	if err == nil {
		return last, nil
	}
	if entropyErr != nil {
		return "", entropyErr
	}
	if ctx.Err() != nil {
		return "", ctx.Err()
	}
	if g.cfg.OnExhausted == PolicyStrict {
		return "", ErrCodeExhausted
	}
	return last, nil
}

func (g *Generator) randomCode() (string, error) {
	buf := make([]byte, g.cfg.CodeLength)
	if _, err := io.ReadFull(g.rand, buf); err != nil {
		return "", fmt.Errorf("read random: %w", err)
	}
	for i, b := range buf {
		buf[i] = codeAlphabet[int(b)%len(codeAlphabet)]
	}
	return string(buf), nil
}
