package common

// AccessTokenHeaderName is the gRPC metadata key used to carry the
// session token on inbound calls.
const AccessTokenHeaderName = "access_token"

// SessionCookieName is the HTTP cookie holding the signed session token.
const SessionCookieName = "token"
