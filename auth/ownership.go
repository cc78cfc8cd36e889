package auth

import (
	"context"
	"fmt"

	"github.com/user/scribe-go/apperror"
	"github.com/user/scribe-go/users"
)

// CheckOwnership allows the operation iff the acting user is the recorded
// owner of the resource. The caller fetches the resource first, so a missing
// resource surfaces as not-found and this check is never reached. A failure
// here is an authorization error, distinct from authentication: the
// requester is who they claim to be, but may not act on this resource.
func CheckOwnership(ownerID, actorID int64, action, resource string) error {
	if ownerID == actorID {
		return nil
	}
	return apperror.NewForbiddenError(fmt.Sprintf("not allowed to %s this %s", action, resource), nil)
}

// ResolveIdentity maps verified claims to the user row they name. A valid,
// unexpired token whose subject no longer resolves (user deleted
// out-of-band) fails as an authentication error, not a crash.
func ResolveIdentity(ctx context.Context, store users.Store, claims *Claims) (*users.User, error) {
	if claims == nil {
		return nil, apperror.NewAuthenticationError("missing credential", nil)
	}
	user, err := store.FindByUsername(ctx, claims.Username())
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewAuthenticationError("invalid or expired credential", err)
		}
		return nil, err
	}
	return user, nil
}
