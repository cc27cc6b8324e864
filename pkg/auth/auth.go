package auth

import (
	"context"
	"errors"
	"net/http"

	"github.com/rolodex-dev/rolodex/pkg/api"
)

// Decision represents the three possible outcomes of authentication.
type Decision int

const (
	// Yes means credentials are valid. The chain stops and the principal is used.
	Yes Decision = iota

	// No means credentials are present but invalid. The chain stops and the
	// request is rejected.
	No

	// Abstain means this authenticator cannot handle the credentials type.
	// The chain continues to the next authenticator.
	Abstain
)

// Result carries the outcome of an authentication attempt.
type Result struct {
	Decision Decision
	User     *api.User // populated only when Decision == Yes
	Err      error     // populated only when Decision == No
}

// Authenticator examines request credentials and returns a three-outcome vote.
type Authenticator interface {
	Authenticate(ctx context.Context, r *http.Request) Result
}

// Sentinel errors.
var (
	// ErrUnauthenticated covers every token failure on protected routes:
	// missing, malformed, stale, and revoked tokens are indistinguishable.
	ErrUnauthenticated = errors.New("authentication required")

	// ErrInvalidCredentials is returned by credential verification for both
	// an unknown username and a wrong password.
	ErrInvalidCredentials = errors.New("username or password is wrong")
)

// Chain evaluates authenticators in order using three-outcome voting.
type Chain struct {
	// Authenticators are evaluated left to right.
	Authenticators []Authenticator

	// DefaultDecision is used when all authenticators abstain.
	DefaultDecision Decision
}

// Authenticate runs the chain. Stops on the first Yes or No.
// If all abstain, returns the default decision; a default of Yes yields no
// principal and is only meaningful for test doubles.
func (c *Chain) Authenticate(ctx context.Context, r *http.Request) Result {
	for _, authn := range c.Authenticators {
		result := authn.Authenticate(ctx, r)
		if result.Decision != Abstain {
			return result
		}
	}

	if c.DefaultDecision == Yes {
		return Result{Decision: Yes}
	}

	return Result{
		Decision: No,
		Err:      ErrUnauthenticated,
	}
}
