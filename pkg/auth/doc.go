// Package auth provides token-based authentication for the rolodex API.
//
// Authentication uses a chain-of-responsibility pattern with three-outcome
// voting: each authenticator returns Yes (principal resolved), No
// (credentials invalid), or Abstain (can't handle). A configurable default
// voter decides when all authenticators abstain.
//
// Auth is implemented as HTTP middleware, keeping it decoupled from handler
// logic. The middleware injects the resolved principal into the request
// context for downstream ownership checks. A missing token and an invalid
// token produce identical responses: callers must not be able to tell
// whether a token ever existed.
package auth
