package validator

import (
	"html"
	"strings"
	"sync"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
)

var (
	validate  *validator.Validate
	sanitizer = bluemonday.StrictPolicy()
	initOnce  sync.Once
)

func Init() {
	initOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
}

func engine() *validator.Validate {
	Init()
	return validate
}

func Validate(s interface{}) error {
	return engine().Struct(s)
}

// Characters RFC 3986 never allows unescaped in a URI.
const disallowedURIChars = "<>\"{}|\\^`"

// ValidateURI reports whether value is an absolute URI with a scheme.
func ValidateURI(value string) bool {
	if strings.TrimSpace(value) == "" {
		return false
	}
	if engine().Var(value, "url") != nil {
		return false
	}
	if strings.ContainsAny(value, disallowedURIChars) {
		return false
	}
	return strings.IndexFunc(value, func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsControl(r)
	}) < 0
}

// StripTags removes all markup from s and returns plain text.
func StripTags(s string) string {
	return strings.TrimSpace(html.UnescapeString(sanitizer.Sanitize(s)))
}
