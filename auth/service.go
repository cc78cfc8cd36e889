// Package auth contains the security core: credential hashing, token
// issuance and validation, the route classifier, the authentication gate,
// and the ownership guard used by every mutating resource operation.
package auth

import (
	"context"
	"log"

	"github.com/user/scribe-go/apperror"
	"github.com/user/scribe-go/config"
	"github.com/user/scribe-go/users"
)

// invalidCredentials is the single message used for an unknown username and
// for a wrong password. Identical shapes resist username enumeration.
const invalidCredentials = "invalid username or password"

// Service orchestrates registration and login over the identity store, the
// credential hasher and the token codec.
type Service struct {
	store  users.Store
	hasher *Hasher
	cfg    config.AuthConfig
}

// NewService creates an auth Service.
func NewService(store users.Store, hasher *Hasher, cfg config.AuthConfig) *Service {
	return &Service{store: store, hasher: hasher, cfg: cfg}
}

// Register hashes the password and creates the user. A username collision
// surfaces as a ConflictError from the store; neither the raw password nor
// the hash ever appear in a response.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*users.User, error) {
	digest, err := s.hasher.Hash(ctx, req.Password)
	if err != nil {
		return nil, err
	}
	return s.store.Insert(ctx, req.Username, digest)
}

// Login verifies the credential and issues a token whose claims are built
// from the user row's current username and role. Unknown username and wrong
// password collapse to the same authentication failure.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*TokenResponse, error) {
	user, err := s.store.FindByUsername(ctx, req.Username)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewAuthenticationError(invalidCredentials, nil)
		}
		log.Printf("login: failed to look up user: %v", err)
		return nil, err
	}

	match, err := s.hasher.Verify(ctx, req.Password, user.PasswordHash)
	if err != nil {
		log.Printf("login: password verification failed to run: %v", err)
		return nil, err
	}
	if !match {
		return nil, apperror.NewAuthenticationError(invalidCredentials, nil)
	}

	token, err := IssueToken(user.Username, user.Role, []byte(s.cfg.JWTSecret), s.cfg.TokenLifetime)
	if err != nil {
		log.Printf("login: failed to issue token: %v", err)
		return nil, apperror.NewInternalError("failed to issue token", err)
	}
	return &TokenResponse{Token: token}, nil
}
