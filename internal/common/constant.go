package common

// SessionCookieName is the cookie that carries the session token between
// the HTTP client and the server.
const SessionCookieName = "session_id"

// EnvironmentProduction is the Config.Environment value that turns on
// production-only behaviour (secure cookies, expensive password hashing).
const EnvironmentProduction = "production"
