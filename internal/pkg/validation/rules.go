package validation

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validation rule patterns
var (
	// EmailPattern matches lowercase email addresses
	EmailPattern = `^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}$`

	// Name validation min/max length
	NameMinLength = 2
	NameMaxLength = 100
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	Email *regexp.Regexp
}{
	Email: regexp.MustCompile(EmailPattern),
}

// New returns a validator with the application's custom rules registered
func New() *validator.Validate {
	v := validator.New()
	// Registration only fails for empty tags or nil funcs.
	_ = v.RegisterValidation("github_url", hostValidator("github.com"))
	_ = v.RegisterValidation("linkedin_url", hostValidator("linkedin.com"))
	return v
}

// IsEmail reports whether s is a well-formed email address after normalisation
func IsEmail(s string) bool {
	return CompiledPatterns.Email.MatchString(strings.ToLower(strings.TrimSpace(s)))
}

// IsProfileURL reports whether raw is an http(s) URL on host or one of its subdomains
func IsProfileURL(raw, host string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return false
	}
	h := strings.ToLower(u.Hostname())
	return h == host || strings.HasSuffix(h, "."+host)
}

func hostValidator(host string) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return IsProfileURL(fl.Field().String(), host)
	}
}
