package render

import (
	"fmt"
	"strings"

	"github.com/ezhumalaisanjay/go-rentalform/pkg/application"
)

// Line is one labelled value inside a section.
type Line struct {
	Label string
	Value string
}

// Section is one titled block of the rendered document.
type Section struct {
	Title      string
	Lines      []Line
	Signatures []SignatureBlock
}

// SignatureBlock carries one role's signing details. Bitmap is the captured
// data URL, empty when unsigned.
type SignatureBlock struct {
	Role   application.Role
	Title  string
	Name   string
	Date   string
	Bitmap string
}

var roleTitles = map[application.Role]string{
	application.RolePrimaryApplicant: "Primary Applicant",
	application.RoleCoApplicant:      "Co-Applicant",
	application.RoleGuarantor:        "Guarantor",
}

// Sections flattens the application into the fixed section order every
// renderer must follow: details, applicants, financial information, legal
// questions, then signatures. Conditional roles appear only while present on
// the document, and nothing present is ever dropped.
func Sections(app application.Application) []Section {
	out := []Section{detailsSection(app.ApplicationDetails)}

	out = append(out, applicantSection("Primary Applicant", app.PrimaryApplicant, false))
	if app.HasCoApplicant && app.CoApplicant != nil {
		out = append(out, applicantSection("Co-Applicant", *app.CoApplicant, true))
	}
	if app.HasGuarantor && app.Guarantor != nil {
		out = append(out, applicantSection("Guarantor", *app.Guarantor, true))
	}

	out = append(out, financialSections(app)...)
	out = append(out, legalSection(app.Legal))
	out = append(out, signaturesSection(app))
	return out
}

func detailsSection(d application.ApplicationDetails) Section {
	s := Section{Title: "Application Details"}
	s.push("Application Date", d.ApplicationDate)
	s.push("Building Address", d.BuildingAddress)
	s.push("Apartment", d.ApartmentNumber)
	s.push("Monthly Rent", money(d.MonthlyRent))
	s.push("Apartment Type", d.ApartmentType)
	s.push("Move-in Date", d.MoveInDate)
	s.push("Heard About Us Via", d.HearAbout)
	s.push("Broker", d.BrokerName)
	s.push("Broker Phone", d.BrokerPhone)
	return s
}

func applicantSection(title string, a application.Applicant, withRelationship bool) Section {
	s := Section{Title: title}
	s.push("Name", a.Name)
	if withRelationship {
		s.push("Relationship to Primary", a.Relationship)
	}
	s.push("Sex", a.Sex)
	s.push("Date of Birth", a.DateOfBirth)
	s.push("Social Security", a.SSN)
	s.push("Email", a.Email)
	s.push("Home Phone", a.HomePhone)
	s.push("Cell Phone", a.CellPhone)
	s.push("Current Address", formatAddress(a.CurrentAddress))
	s.push("License", joinNonEmpty(" / ", a.LicenseNumber, a.LicenseState))
	s.push("Landlord", joinNonEmpty(", ", a.Landlord.Name, a.Landlord.Address))
	s.push("Time at Address", formatLength(a.LengthAtAddress))
	s.push("Current Rent", money(a.CurrentRent))
	s.push("Reason for Moving", a.ReasonForMoving)
	return s
}

func financialSections(app application.Application) []Section {
	out := make([]Section, 0, 3)
	for _, role := range app.ActiveRoles() {
		profile, ok := app.FinancialInfo[role]
		if !ok || profile == nil {
			continue
		}
		s := Section{Title: "Financial Information — " + roleTitles[role]}
		s.push("Employer", profile.Employer)
		s.push("Employer Address", profile.EmployerAddress)
		s.push("Position", profile.Position)
		s.push("Employed Since", profile.EmployedSince)
		s.push("Supervisor", joinNonEmpty(", ", profile.Supervisor, profile.SupervisorPhone))
		if profile.Income > 0 {
			s.push("Income", money(profile.Income)+" "+profile.IncomeFrequency)
		}
		if profile.OtherIncomeAmount > 0 {
			other := money(profile.OtherIncomeAmount)
			if profile.OtherIncomePer != "" {
				other += " per " + profile.OtherIncomePer
			}
			if profile.OtherIncomeSource != "" {
				other += " from " + profile.OtherIncomeSource
			}
			s.push("Other Income", other)
		}
		s.push("Checking", formatBank(profile.Checking))
		s.push("Savings", formatBank(profile.Savings))
		s.push("Investment", formatBank(profile.Investment))
		out = append(out, s)
	}
	return out
}

func legalSection(l application.LegalQuestions) Section {
	s := Section{Title: "Legal Questions"}
	pushDisclosure(&s, "Party to a legal action", l.LegalAction, l.LegalActionExplanation)
	pushDisclosure(&s, "Broken a lease", l.BrokenLease, l.BrokenLeaseExplanation)
	pushDisclosure(&s, "Declared bankruptcy", l.Bankruptcy, l.BankruptcyExplanation)
	pushDisclosure(&s, "Convicted of a felony", l.Felony, l.FelonyExplanation)
	return s
}

func pushDisclosure(s *Section, label, answer, explanation string) {
	if answer == "" {
		answer = "Not answered"
	}
	s.push(label, answer)
	if strings.TrimSpace(explanation) != "" {
		s.push(label+" — explanation", explanation)
	}
}

func signaturesSection(app application.Application) Section {
	s := Section{Title: "Signatures"}
	for _, role := range app.ActiveRoles() {
		sig, ok := app.Signatures[role]
		if !ok || sig == nil {
			continue
		}
		s.Signatures = append(s.Signatures, SignatureBlock{
			Role:   role,
			Title:  roleTitles[role],
			Name:   sig.Name,
			Date:   sig.Date,
			Bitmap: sig.Bitmap,
		})
	}
	return s
}

func (s *Section) push(label, value string) {
	if strings.TrimSpace(value) == "" {
		return
	}
	s.Lines = append(s.Lines, Line{Label: label, Value: value})
}

func money(amount float64) string {
	if amount == 0 {
		return ""
	}
	if amount == float64(int64(amount)) {
		return fmt.Sprintf("$%d", int64(amount))
	}
	return fmt.Sprintf("$%.2f", amount)
}

func formatAddress(a application.Address) string {
	cityState := joinNonEmpty(", ", a.City, a.State)
	tail := joinNonEmpty(" ", cityState, a.Zip)
	return joinNonEmpty(", ", a.Street, tail)
}

func formatBank(b application.BankAccount) string {
	return joinNonEmpty(", ", b.Bank, b.Address, b.Phone)
}

func formatLength(l application.LengthAtAddress) string {
	if l.Years == 0 && l.Months == 0 {
		return ""
	}
	var parts []string
	if l.Years > 0 {
		parts = append(parts, fmt.Sprintf("%d yr", l.Years))
	}
	if l.Months > 0 {
		parts = append(parts, fmt.Sprintf("%d mo", l.Months))
	}
	return strings.Join(parts, " ")
}

func joinNonEmpty(sep string, parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if strings.TrimSpace(part) != "" {
			out = append(out, part)
		}
	}
	return strings.Join(out, sep)
}
