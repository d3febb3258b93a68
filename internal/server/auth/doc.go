// Package auth holds the stateless pieces of authentication: password hash
// verification, signing and verifying session tokens, and the role gate
// every protected operation consults before doing anything.
package auth
