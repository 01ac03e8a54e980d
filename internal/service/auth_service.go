package service

import "crypto/subtle"

// AuthService checks the shared secret sent by callers.
type AuthService struct {
	secret string
}

func NewAuthService(secret string) *AuthService {
	return &AuthService{secret: secret}
}

// IsValidRequest reports whether headerValue equals the configured secret.
// Missing or empty values never match, even when no secret is configured.
func (s *AuthService) IsValidRequest(headerValue string) bool {
	if s == nil || s.secret == "" || headerValue == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(headerValue), []byte(s.secret)) == 1
}
