package application

// Role identifies which party a financial profile, signature, or document
// bundle belongs to.
type Role string

const (
	RolePrimaryApplicant Role = "primaryApplicant"
	RoleCoApplicant      Role = "coApplicant"
	RoleGuarantor        Role = "guarantor"
)

// Roles lists the valid roles in canonical order.
var Roles = []Role{RolePrimaryApplicant, RoleCoApplicant, RoleGuarantor}

// Valid reports whether the role is one of the three known parties.
func (r Role) Valid() bool {
	switch r {
	case RolePrimaryApplicant, RoleCoApplicant, RoleGuarantor:
		return true
	}
	return false
}

// Status tracks the lifecycle of a stored application. The wizard never sets
// it; the storage collaborator assigns it.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusSubmitted Status = "submitted"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
)

// Referral sources accepted by the application-details step.
const (
	HearAboutBuildingSign = "building-sign"
	HearAboutCraigslist   = "craigslist"
	HearAboutBroker       = "broker"
	HearAboutOther        = "other"
)

// Address is a postal address split into its parts.
type Address struct {
	Street string `json:"street,omitempty"`
	City   string `json:"city,omitempty"`
	State  string `json:"state,omitempty"`
	Zip    string `json:"zip,omitempty"`
}

// Landlord holds the applicant's current landlord contact details.
type Landlord struct {
	Name    string `json:"name,omitempty"`
	Address string `json:"address,omitempty"`
}

// LengthAtAddress records how long the applicant has lived at the current
// address.
type LengthAtAddress struct {
	Years  int `json:"years,omitempty"`
	Months int `json:"months,omitempty"`
}

// Applicant describes one party on the application. The same shape serves the
// primary applicant, co-applicant, and guarantor; Relationship is only
// meaningful for the latter two.
type Applicant struct {
	Name            string          `json:"name,omitempty"`
	SSN             string          `json:"ssn,omitempty"`
	DateOfBirth     string          `json:"dateOfBirth,omitempty"`
	Sex             string          `json:"sex,omitempty"`
	Email           string          `json:"email,omitempty"`
	HomePhone       string          `json:"homePhone,omitempty"`
	CellPhone       string          `json:"cellPhone,omitempty"`
	CurrentAddress  Address         `json:"currentAddress,omitempty"`
	LicenseNumber   string          `json:"licenseNumber,omitempty"`
	LicenseState    string          `json:"licenseState,omitempty"`
	Landlord        Landlord        `json:"landlord,omitempty"`
	LengthAtAddress LengthAtAddress `json:"lengthAtAddress,omitempty"`
	CurrentRent     float64         `json:"currentRent,omitempty"`
	ReasonForMoving string          `json:"reasonForMoving,omitempty"`
	Relationship    string          `json:"relationship,omitempty"`
}

// BankAccount holds contact details for one bank relationship. All fields are
// optional; an all-empty account is treated as absent.
type BankAccount struct {
	Bank    string `json:"bank,omitempty"`
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
}

// Income frequencies accepted by the financial step.
const (
	IncomeMonthly = "monthly"
	IncomeYearly  = "yearly"
)

// FinancialProfile captures employment, income, and banking details for one
// role.
type FinancialProfile struct {
	Employer          string      `json:"employer,omitempty"`
	EmployerAddress   string      `json:"employerAddress,omitempty"`
	Position          string      `json:"position,omitempty"`
	EmployedSince     string      `json:"employedSince,omitempty"`
	Supervisor        string      `json:"supervisor,omitempty"`
	SupervisorPhone   string      `json:"supervisorPhone,omitempty"`
	Income            float64     `json:"income,omitempty"`
	IncomeFrequency   string      `json:"incomeFrequency,omitempty"`
	OtherIncomeAmount float64     `json:"otherIncomeAmount,omitempty"`
	OtherIncomePer    string      `json:"otherIncomePer,omitempty"`
	OtherIncomeSource string      `json:"otherIncomeSource,omitempty"`
	Checking          BankAccount `json:"checking,omitempty"`
	Savings           BankAccount `json:"savings,omitempty"`
	Investment        BankAccount `json:"investment,omitempty"`
}

// LegalQuestions holds the four yes/no disclosures. Each explanation is only
// meaningful when its answer is "yes"; the wizard clears it when the answer
// flips to "no".
type LegalQuestions struct {
	LegalAction            string `json:"legalAction,omitempty"`
	LegalActionExplanation string `json:"legalActionExplanation,omitempty"`
	BrokenLease            string `json:"brokenLease,omitempty"`
	BrokenLeaseExplanation string `json:"brokenLeaseExplanation,omitempty"`
	Bankruptcy             string `json:"bankruptcy,omitempty"`
	BankruptcyExplanation  string `json:"bankruptcyExplanation,omitempty"`
	Felony                 string `json:"felony,omitempty"`
	FelonyExplanation      string `json:"felonyExplanation,omitempty"`
}

// Signature is a captured signing block: the typed name, the signing date, and
// the rasterized bitmap as a data URL. An empty Bitmap means "not signed".
type Signature struct {
	Name   string `json:"name,omitempty"`
	Date   string `json:"date,omitempty"`
	Bitmap string `json:"signature,omitempty"`
}

// ApplicationDetails covers the first wizard step: which unit is being applied
// for and how the applicant heard about it. Broker name/phone are required
// together only when HearAbout is "broker".
type ApplicationDetails struct {
	ApplicationDate string  `json:"applicationDate,omitempty"`
	BuildingAddress string  `json:"buildingAddress,omitempty"`
	ApartmentNumber string  `json:"apartmentNumber,omitempty"`
	MonthlyRent     float64 `json:"monthlyRent,omitempty"`
	ApartmentType   string  `json:"apartmentType,omitempty"`
	MoveInDate      string  `json:"moveInDate,omitempty"`
	HearAbout       string  `json:"hearAbout,omitempty"`
	BrokerName      string  `json:"brokerName,omitempty"`
	BrokerPhone     string  `json:"brokerPhone,omitempty"`
}

// Application is the root aggregate: one rental submission built up across the
// seven wizard steps. Per-role material (financial profiles, signatures,
// document handles) is keyed by Role rather than duplicated per party, and the
// co-applicant/guarantor sub-trees exist only while their flag is true.
type Application struct {
	ApplicationDetails ApplicationDetails `json:"applicationDetails,omitempty"`

	PrimaryApplicant Applicant `json:"primaryApplicant,omitempty"`

	HasCoApplicant         bool       `json:"hasCoApplicant"`
	CoApplicant            *Applicant `json:"coApplicant,omitempty"`
	CoApplicantSameAddress bool       `json:"coApplicantSameAddress"`

	HasGuarantor bool       `json:"hasGuarantor"`
	Guarantor    *Applicant `json:"guarantor,omitempty"`

	FinancialInfo map[Role]*FinancialProfile `json:"financialInfo,omitempty"`
	Legal         LegalQuestions             `json:"legalQuestions,omitempty"`
	Documents     map[string][]string        `json:"documents,omitempty"`
	Signatures    map[Role]*Signature        `json:"signatures,omitempty"`

	// Attested records the final "information is true" confirmation on the
	// review step.
	Attested bool `json:"attested"`
}

// DocumentCategory builds the document map key for a role and kind, e.g.
// "primaryApplicantID" or "guarantorPayStubs".
func DocumentCategory(role Role, kind string) string {
	return string(role) + kind
}

// Document kinds collected on the legal-questions step.
const (
	DocKindID         = "ID"
	DocKindSSN        = "SSN"
	DocKindBank       = "Bank"
	DocKindTax        = "Tax"
	DocKindEmployment = "Employment"
	DocKindPayStubs   = "PayStubs"
)

// DocumentKinds lists the fixed set of per-role document categories.
var DocumentKinds = []string{
	DocKindID, DocKindSSN, DocKindBank, DocKindTax, DocKindEmployment, DocKindPayStubs,
}
