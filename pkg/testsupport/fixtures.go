// Package testsupport provides shared fixtures for the package tests: a
// complete valid application and a real captured signature bitmap.
package testsupport

import (
	"time"

	"github.com/ezhumalaisanjay/go-rentalform/pkg/application"
	"github.com/ezhumalaisanjay/go-rentalform/pkg/signature"
)

// FixtureDate is the clock every fixture uses, so date assertions are stable.
var FixtureDate = time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

// SignatureBitmap draws a short stroke on a pad and returns the data URL.
func SignatureBitmap() string {
	pad := signature.NewPad(0, 0)
	pad.StrokeStart(20, 64)
	pad.StrokeMove(60, 40)
	pad.StrokeMove(100, 70)
	pad.StrokeMove(140, 50)
	return pad.StrokeEnd()
}

// ValidApplication builds a complete single-applicant document that passes
// every step validator: no co-applicant, no guarantor, all disclosures "no",
// signed and attested.
func ValidApplication() application.Application {
	app := application.New(FixtureDate)
	app.ApplicationDetails = application.ApplicationDetails{
		ApplicationDate: "2024-03-15",
		BuildingAddress: "100 Main St",
		ApartmentNumber: "4B",
		MonthlyRent:     2450,
		ApartmentType:   "1BR",
		MoveInDate:      "2024-05-01",
		HearAbout:       application.HearAboutBuildingSign,
	}
	app.PrimaryApplicant = application.Applicant{
		Name:        "Jordan Rivera",
		SSN:         "123-45-6789",
		DateOfBirth: "1990-06-20",
		Sex:         "F",
		Email:       "jordan.rivera@example.com",
		CellPhone:   "212-555-0142",
		CurrentAddress: application.Address{
			Street: "45 Orchard Ave",
			City:   "Brooklyn",
			State:  "NY",
			Zip:    "11211",
		},
		Landlord:        application.Landlord{Name: "M. Chan", Address: "45 Orchard Ave"},
		LengthAtAddress: application.LengthAtAddress{Years: 3, Months: 2},
		CurrentRent:     1900,
		ReasonForMoving: "Closer to work",
	}
	app.FinancialInfo[application.RolePrimaryApplicant] = &application.FinancialProfile{
		Employer:        "Hudson Analytics",
		EmployerAddress: "200 Varick St, New York, NY",
		Position:        "Data Engineer",
		EmployedSince:   "2020-01-15",
		Supervisor:      "A. Okafor",
		SupervisorPhone: "212-555-0190",
		Income:          8200,
		IncomeFrequency: application.IncomeMonthly,
		Checking:        application.BankAccount{Bank: "First Federal", Phone: "800-555-0100"},
	}
	app.Legal = application.LegalQuestions{
		LegalAction: "no",
		BrokenLease: "no",
		Bankruptcy:  "no",
		Felony:      "no",
	}
	app.Signatures[application.RolePrimaryApplicant] = &application.Signature{
		Name:   "Jordan Rivera",
		Date:   "2024-03-15",
		Bitmap: SignatureBitmap(),
	}
	app.Attested = true
	return app
}

// WithCoApplicant extends a fixture with a complete co-applicant.
func WithCoApplicant(app application.Application) application.Application {
	app.EnableRole(application.RoleCoApplicant)
	*app.CoApplicant = application.Applicant{
		Name:        "Sam Rivera",
		SSN:         "987-65-4321",
		DateOfBirth: "1989-02-11",
		Sex:         "M",
		Email:       "sam.rivera@example.com",
		CellPhone:   "212-555-0177",
		CurrentAddress: application.Address{
			Street: "45 Orchard Ave",
			City:   "Brooklyn",
			State:  "NY",
			Zip:    "11211",
		},
		Relationship: "Spouse",
	}
	app.FinancialInfo[application.RoleCoApplicant] = &application.FinancialProfile{
		Employer:        "Citywide Health",
		EmployerAddress: "88 7th Ave, New York, NY",
		Position:        "Nurse",
		EmployedSince:   "2018-09-01",
		Income:          98000,
		IncomeFrequency: application.IncomeYearly,
	}
	app.Signatures[application.RoleCoApplicant] = &application.Signature{
		Name:   "Sam Rivera",
		Date:   "2024-03-15",
		Bitmap: SignatureBitmap(),
	}
	return app
}
