package common

// AuthHeaderName is the HTTP header that carries the access token on
// inbound requests. The value may be a bare token or "Bearer <token>".
const AuthHeaderName = "Authorization"
