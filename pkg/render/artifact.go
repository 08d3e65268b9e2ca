package render

import (
	"strings"
	"unicode"

	"github.com/ezhumalaisanjay/go-rentalform/pkg/application"
)

// DefaultLetterhead matches the leasing office the paper form was printed
// for. Deployments override it through configuration.
var DefaultLetterhead = Letterhead{
	Title:       "Liberty Place Rental Application",
	AddressLine: "122 East 42nd Street, Suite 1903, New York, NY 10168",
	Phone:       "Tel: (646) 545-6700",
}

// Artifact is a finished render: the document bytes plus the metadata needed
// to download or preview it.
type Artifact struct {
	Bytes       []byte
	Filename    string
	ContentType string
}

// SuggestFilename builds the download name rental-application-<lastname>-<date>
// with the given extension. Missing pieces are dropped rather than padded.
func SuggestFilename(app application.Application, ext string) string {
	parts := []string{"rental-application"}
	if last := lastName(app.PrimaryApplicant.Name); last != "" {
		parts = append(parts, last)
	}
	if date := strings.TrimSpace(app.ApplicationDetails.ApplicationDate); date != "" {
		parts = append(parts, date)
	}
	name := strings.Join(parts, "-")
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return name + ext
}

func lastName(full string) string {
	fields := strings.Fields(full)
	if len(fields) == 0 {
		return ""
	}
	var b strings.Builder
	for _, r := range strings.ToLower(fields[len(fields)-1]) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
