package auth

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/user/scribe-go/apperror"
)

// defaultHasherConcurrency bounds how many bcrypt computations run at once.
// bcrypt is deliberately slow; without a bound a burst of logins could pin
// every processor and starve unrelated in-flight requests.
const defaultHasherConcurrency = 4

// Hasher performs one-way password hashing and verification. The work is
// dispatched to its own goroutine gated by a semaphore, and the caller
// awaits the result without holding anything other goroutines need.
type Hasher struct {
	cost int
	sem  chan struct{}
}

// NewHasher creates a Hasher at bcrypt's vetted default cost.
func NewHasher() *Hasher {
	return &Hasher{
		cost: bcrypt.DefaultCost,
		sem:  make(chan struct{}, defaultHasherConcurrency),
	}
}

type hashResult struct {
	digest string
	match  bool
	err    error
}

// Hash derives a salted digest from plaintext. A failure here is an engine
// error, not a verification outcome, and maps to an internal failure.
func (h *Hasher) Hash(ctx context.Context, plaintext string) (string, error) {
	out := make(chan hashResult, 1)
	go func() {
		h.sem <- struct{}{}
		defer func() { <-h.sem }()

		digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
		if err != nil {
			out <- hashResult{err: apperror.NewInternalError("failed to hash password", err)}
			return
		}
		out <- hashResult{digest: string(digest)}
	}()

	select {
	case res := <-out:
		return res.digest, res.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Verify reports whether plaintext matches digest. A mismatch is (false,
// nil); only a computation failure (e.g. a corrupt digest) is an error.
func (h *Hasher) Verify(ctx context.Context, plaintext, digest string) (bool, error) {
	out := make(chan hashResult, 1)
	go func() {
		h.sem <- struct{}{}
		defer func() { <-h.sem }()

		err := bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext))
		switch {
		case err == nil:
			out <- hashResult{match: true}
		case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
			out <- hashResult{match: false}
		default:
			out <- hashResult{err: apperror.NewInternalError("failed to verify password", err)}
		}
	}()

	select {
	case res := <-out:
		return res.match, res.err
	case <-ctx.Done():
		return false, ctx.Err()
	}
}
