package stripe

import "strings"

const (
	// SecretKeyPrefixStandard is the standard Stripe secret key prefix.
	SecretKeyPrefixStandard = "sk_"
	// SecretKeyPrefixRestricted is the Stripe restricted secret key prefix.
	SecretKeyPrefixRestricted = "rk_"
	// PublishableKeyPrefix is the Stripe publishable key prefix.
	PublishableKeyPrefix = "pk_"
)

func hasAllowedPrefix(value string, prefixes ...string) bool {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return false
	}

	for _, prefix := range prefixes {
		if strings.HasPrefix(trimmed, prefix) {
			return true
		}
	}

	return false
}

// IsSecretKey reports whether the value looks like a Stripe secret key.
func IsSecretKey(value string) bool {
	return hasAllowedPrefix(value, SecretKeyPrefixStandard, SecretKeyPrefixRestricted)
}

// IsPublishableKey reports whether the value looks like a Stripe publishable key.
// A publishable key cannot create sessions and usually means the wrong variable was set.
func IsPublishableKey(value string) bool {
	return hasAllowedPrefix(value, PublishableKeyPrefix)
}

// IsTestKey reports whether the key targets Stripe test mode.
func IsTestKey(value string) bool {
	trimmed := strings.TrimSpace(value)
	return strings.HasPrefix(trimmed, "sk_test_") || strings.HasPrefix(trimmed, "rk_test_")
}
