package validation

import (
	"regexp"
	"strings"
	"time"

	"github.com/ezhumalaisanjay/go-rentalform/pkg/application"
)

var (
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	ssnPattern   = regexp.MustCompile(`^\d{3}-?\d{2}-?\d{4}$`)
	zipPattern   = regexp.MustCompile(`^\d{5}(-\d{4})?$`)
	digitPattern = regexp.MustCompile(`\d`)
)

func validEmail(value string) bool {
	return emailPattern.MatchString(strings.TrimSpace(value))
}

func validSSN(value string) bool {
	return ssnPattern.MatchString(strings.TrimSpace(value))
}

func validZip(value string) bool {
	return zipPattern.MatchString(strings.TrimSpace(value))
}

// validPhone accepts free-form phone text as long as it carries at least ten
// digits. Formatting characters are not normalized away in the document.
func validPhone(value string) bool {
	return len(digitPattern.FindAllString(value, -1)) >= 10
}

func validDate(value string) bool {
	_, err := time.Parse(application.DateLayout, strings.TrimSpace(value))
	return err == nil
}

func blank(value string) bool {
	return strings.TrimSpace(value) == ""
}
