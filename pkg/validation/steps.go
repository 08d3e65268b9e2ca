package validation

import (
	"fmt"

	"github.com/ezhumalaisanjay/go-rentalform/pkg/application"
)

// Wizard step numbers. Step one is the first page shown.
const (
	StepApplicationDetails = 1
	StepPrimaryApplicant   = 2
	StepCoApplicant        = 3
	StepGuarantor          = 4
	StepFinancialInfo      = 5
	StepLegalQuestions     = 6
	StepReview             = 7

	StepCount = 7
)

var stepNames = map[int]string{
	StepApplicationDetails: "Application Details",
	StepPrimaryApplicant:   "Primary Applicant",
	StepCoApplicant:        "Co-Applicant",
	StepGuarantor:          "Guarantor",
	StepFinancialInfo:      "Financial Information",
	StepLegalQuestions:     "Legal Questions",
	StepReview:             "Review & Submit",
}

// StepName returns the display name for a step, or an empty string for an
// unknown step number.
func StepName(step int) string {
	return stepNames[step]
}

// ValidateStep dispatches to the validator for the given step. An out-of-range
// step is a programmer error and reported through the error return; user-input
// problems only ever appear in the Result.
func ValidateStep(step int, app application.Application) (Result, error) {
	switch step {
	case StepApplicationDetails:
		return ValidateApplicationDetails(app), nil
	case StepPrimaryApplicant:
		return ValidatePrimaryApplicant(app), nil
	case StepCoApplicant:
		return ValidateCoApplicant(app), nil
	case StepGuarantor:
		return ValidateGuarantor(app), nil
	case StepFinancialInfo:
		return ValidateFinancialInfo(app), nil
	case StepLegalQuestions:
		return ValidateLegalQuestions(app), nil
	case StepReview:
		return ValidateReview(app), nil
	}
	return Result{}, fmt.Errorf("validation: unknown step %d", step)
}

// ValidateApplicationDetails checks the first step: unit details plus the
// referral source, with broker name/phone required together only when the
// referral is a broker.
func ValidateApplicationDetails(app application.Application) Result {
	var c collector
	d := app.ApplicationDetails

	if blank(d.ApplicationDate) {
		c.add("applicationDetails.applicationDate", "Application date is required")
	} else if !validDate(d.ApplicationDate) {
		c.add("applicationDetails.applicationDate", "Application date must be a calendar date (YYYY-MM-DD)")
	}
	if blank(d.BuildingAddress) {
		c.add("applicationDetails.buildingAddress", "Building address is required")
	}
	if blank(d.ApartmentNumber) {
		c.add("applicationDetails.apartmentNumber", "Apartment number is required")
	}
	if d.MonthlyRent <= 0 {
		c.add("applicationDetails.monthlyRent", "Monthly rent is required")
	}
	if blank(d.ApartmentType) {
		c.add("applicationDetails.apartmentType", "Apartment type is required")
	}
	if blank(d.MoveInDate) {
		c.add("applicationDetails.moveInDate", "Move-in date is required")
	} else if !validDate(d.MoveInDate) {
		c.add("applicationDetails.moveInDate", "Move-in date must be a calendar date (YYYY-MM-DD)")
	}

	switch d.HearAbout {
	case "":
		c.add("applicationDetails.hearAbout", "Please specify how you heard about us")
	case application.HearAboutBuildingSign, application.HearAboutCraigslist, application.HearAboutOther:
		if !blank(d.BrokerName) || !blank(d.BrokerPhone) {
			c.add("applicationDetails.brokerName", "Broker details apply only to broker referrals")
		}
	case application.HearAboutBroker:
		if blank(d.BrokerName) {
			c.add("applicationDetails.brokerName", "Broker name is required for broker referrals")
		}
		if blank(d.BrokerPhone) {
			c.add("applicationDetails.brokerPhone", "Broker phone is required for broker referrals")
		} else if !validPhone(d.BrokerPhone) {
			c.add("applicationDetails.brokerPhone", "Broker phone must contain at least ten digits")
		}
	default:
		c.add("applicationDetails.hearAbout", "Unknown referral source")
	}

	return c.result()
}

// ValidatePrimaryApplicant checks the second step.
func ValidatePrimaryApplicant(app application.Application) Result {
	var c collector
	checkApplicant(&c, "primaryApplicant", app.PrimaryApplicant, false)
	return c.result()
}

// ValidateCoApplicant checks the third step. When no co-applicant is declared
// the step is trivially valid; the sub-form must not exist in that case.
func ValidateCoApplicant(app application.Application) Result {
	var c collector
	if !app.HasCoApplicant {
		if app.CoApplicant != nil {
			c.add("coApplicant", "Co-applicant details present without a co-applicant declared")
		}
		return c.result()
	}
	if app.CoApplicant == nil {
		c.add("coApplicant", "Co-applicant details are required")
		return c.result()
	}
	checkApplicant(&c, "coApplicant", *app.CoApplicant, true)
	return c.result()
}

// ValidateGuarantor checks the fourth step, mirroring the co-applicant rules.
func ValidateGuarantor(app application.Application) Result {
	var c collector
	if !app.HasGuarantor {
		if app.Guarantor != nil {
			c.add("guarantor", "Guarantor details present without a guarantor declared")
		}
		return c.result()
	}
	if app.Guarantor == nil {
		c.add("guarantor", "Guarantor details are required")
		return c.result()
	}
	checkApplicant(&c, "guarantor", *app.Guarantor, true)
	return c.result()
}

func checkApplicant(c *collector, prefix string, a application.Applicant, needsRelationship bool) {
	if blank(a.Name) {
		c.add(prefix+".name", "Full name is required")
	}
	if blank(a.SSN) {
		c.add(prefix+".ssn", "Social security number is required")
	} else if !validSSN(a.SSN) {
		c.add(prefix+".ssn", "Social security number must match NNN-NN-NNNN")
	}
	if blank(a.DateOfBirth) {
		c.add(prefix+".dateOfBirth", "Date of birth is required")
	} else if !validDate(a.DateOfBirth) {
		c.add(prefix+".dateOfBirth", "Date of birth must be a calendar date (YYYY-MM-DD)")
	}
	if blank(a.Sex) {
		c.add(prefix+".sex", "Sex is required")
	}
	if blank(a.Email) {
		c.add(prefix+".email", "Email is required")
	} else if !validEmail(a.Email) {
		c.add(prefix+".email", "Valid email is required")
	}
	if !blank(a.HomePhone) && !validPhone(a.HomePhone) {
		c.add(prefix+".homePhone", "Home phone must contain at least ten digits")
	}
	if blank(a.CellPhone) {
		c.add(prefix+".cellPhone", "Cell phone is required")
	} else if !validPhone(a.CellPhone) {
		c.add(prefix+".cellPhone", "Cell phone must contain at least ten digits")
	}

	if blank(a.CurrentAddress.Street) {
		c.add(prefix+".currentAddress.street", "Street address is required")
	}
	if blank(a.CurrentAddress.City) {
		c.add(prefix+".currentAddress.city", "City is required")
	}
	if blank(a.CurrentAddress.State) {
		c.add(prefix+".currentAddress.state", "State is required")
	}
	if blank(a.CurrentAddress.Zip) {
		c.add(prefix+".currentAddress.zip", "ZIP code is required")
	} else if !validZip(a.CurrentAddress.Zip) {
		c.add(prefix+".currentAddress.zip", "ZIP code must match NNNNN or NNNNN-NNNN")
	}

	if a.LengthAtAddress.Years < 0 {
		c.add(prefix+".lengthAtAddress.years", "Years at address cannot be negative")
	}
	if a.LengthAtAddress.Months < 0 {
		c.add(prefix+".lengthAtAddress.months", "Months at address cannot be negative")
	}
	if a.CurrentRent < 0 {
		c.add(prefix+".currentRent", "Current rent cannot be negative")
	}
	if needsRelationship && blank(a.Relationship) {
		c.add(prefix+".relationship", "Relationship to the primary applicant is required")
	}
}

// ValidateFinancialInfo checks the fifth step: one complete financial profile
// per active role, and none for inactive roles.
func ValidateFinancialInfo(app application.Application) Result {
	var c collector
	active := map[application.Role]bool{}
	for _, role := range app.ActiveRoles() {
		active[role] = true
		prefix := "financialInfo." + string(role)
		profile, ok := app.FinancialInfo[role]
		if !ok || profile == nil {
			c.add(prefix, "Financial information is required")
			continue
		}
		checkFinancialProfile(&c, prefix, *profile)
	}
	for role := range app.FinancialInfo {
		if !active[role] {
			c.add("financialInfo."+string(role), "Financial information present for an inactive role")
		}
	}
	return c.result()
}

func checkFinancialProfile(c *collector, prefix string, p application.FinancialProfile) {
	if blank(p.Employer) {
		c.add(prefix+".employer", "Employer is required")
	}
	if blank(p.EmployerAddress) {
		c.add(prefix+".employerAddress", "Employer address is required")
	}
	if blank(p.Position) {
		c.add(prefix+".position", "Position is required")
	}
	if blank(p.EmployedSince) {
		c.add(prefix+".employedSince", "Employment start date is required")
	} else if !validDate(p.EmployedSince) {
		c.add(prefix+".employedSince", "Employment start date must be a calendar date (YYYY-MM-DD)")
	}
	if !blank(p.SupervisorPhone) && !validPhone(p.SupervisorPhone) {
		c.add(prefix+".supervisorPhone", "Supervisor phone must contain at least ten digits")
	}
	if p.Income <= 0 {
		c.add(prefix+".income", "Income is required")
	}
	switch p.IncomeFrequency {
	case application.IncomeMonthly, application.IncomeYearly:
	case "":
		c.add(prefix+".incomeFrequency", "Income frequency is required")
	default:
		c.add(prefix+".incomeFrequency", "Income frequency must be monthly or yearly")
	}
	if p.OtherIncomeAmount < 0 {
		c.add(prefix+".otherIncomeAmount", "Other income cannot be negative")
	}
}

// ValidateLegalQuestions checks the sixth step: all four disclosures answered
// yes or no, with explanations only alongside a "yes".
func ValidateLegalQuestions(app application.Application) Result {
	var c collector
	l := app.Legal
	checkDisclosure(&c, "legalQuestions.legalAction", l.LegalAction, l.LegalActionExplanation)
	checkDisclosure(&c, "legalQuestions.brokenLease", l.BrokenLease, l.BrokenLeaseExplanation)
	checkDisclosure(&c, "legalQuestions.bankruptcy", l.Bankruptcy, l.BankruptcyExplanation)
	checkDisclosure(&c, "legalQuestions.felony", l.Felony, l.FelonyExplanation)
	return c.result()
}

func checkDisclosure(c *collector, path, answer, explanation string) {
	switch answer {
	case "yes":
	case "no":
		if !blank(explanation) {
			c.add(path+"Explanation", "Explanation applies only when the answer is yes")
		}
	case "":
		c.add(path, "Please answer this question")
	default:
		c.add(path, "Answer must be yes or no")
	}
}

// ValidateReview checks the final step: a signature block (name, date, and a
// non-empty bitmap) for every active role, no stray entries for inactive
// roles, and the final attestation.
func ValidateReview(app application.Application) Result {
	var c collector
	active := map[application.Role]bool{}
	for _, role := range app.ActiveRoles() {
		active[role] = true
		prefix := "signatures." + string(role)
		sig, ok := app.Signatures[role]
		if !ok || sig == nil {
			c.add(prefix, "Signature is required")
			continue
		}
		if blank(sig.Name) {
			c.add(prefix+".name", "Signature name is required")
		}
		if blank(sig.Date) {
			c.add(prefix+".date", "Signature date is required")
		} else if !validDate(sig.Date) {
			c.add(prefix+".date", "Signature date must be a calendar date (YYYY-MM-DD)")
		}
		if blank(sig.Bitmap) {
			c.add(prefix+".signature", "Digital signature is required")
		}
	}
	for role := range app.Signatures {
		if !active[role] {
			c.add("signatures."+string(role), "Signature present for an inactive role")
		}
	}
	if !app.Attested {
		c.add("attested", "Please confirm that all information provided is true and accurate")
	}
	return c.result()
}

// ValidateAll runs every step validator and concatenates their findings, for
// whole-document checks outside the wizard flow (e.g. the storage API).
func ValidateAll(app application.Application) Result {
	var c collector
	for step := 1; step <= StepCount; step++ {
		res, err := ValidateStep(step, app)
		if err != nil {
			continue
		}
		c.errors = append(c.errors, res.Errors...)
	}
	return c.result()
}
