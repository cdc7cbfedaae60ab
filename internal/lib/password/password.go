// Package password hashes and verifies user passwords with bcrypt.
package password

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrMismatch is returned by Verify when the password does not match.
var ErrMismatch = errors.New("password does not match")

// Hasher produces bcrypt hashes at a fixed cost.
type Hasher struct {
	cost int
}

// NewHasher returns a Hasher. Costs outside bcrypt's range are clamped;
// zero selects bcrypt.DefaultCost.
func NewHasher(cost int) *Hasher {
	switch {
	case cost == 0:
		cost = bcrypt.DefaultCost
	case cost < bcrypt.MinCost:
		cost = bcrypt.MinCost
	case cost > bcrypt.MaxCost:
		cost = bcrypt.MaxCost
	}
	return &Hasher{cost: cost}
}

// Cost returns the bcrypt work factor.
func (h *Hasher) Cost() int {
	return h.cost
}

// Hash returns the bcrypt hash of plaintext, salted per call.
//
// Hashing is CPU bound, so it runs on its own goroutine and Hash returns
// ctx.Err() as soon as ctx is done. The abandoned computation finishes in
// the background and its result is dropped.
func (h *Hasher) Hash(ctx context.Context, plaintext string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		hash []byte
		err  error
	}
	done := make(chan result, 1)

	go func() {
		hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
		done <- result{hash: hash, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		if r.err != nil {
			return "", fmt.Errorf("hashing password: %w", r.err)
		}
		return string(r.hash), nil
	}
}

// Verify reports whether plaintext matches hash. A mismatch yields ErrMismatch.
func (h *Hasher) Verify(hash, plaintext string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrMismatch
	}
	return err
}
