package validation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezhumalaisanjay/go-rentalform/pkg/application"
	"github.com/ezhumalaisanjay/go-rentalform/pkg/testsupport"
	"github.com/ezhumalaisanjay/go-rentalform/pkg/validation"
)

func TestValidApplicationPassesEveryStep(t *testing.T) {
	app := testsupport.ValidApplication()
	for step := 1; step <= validation.StepCount; step++ {
		res, err := validation.ValidateStep(step, app)
		require.NoError(t, err)
		assert.True(t, res.Valid, "step %d (%s): %v", step, validation.StepName(step), res.Errors)
	}
}

func TestValidatorsAreIdempotent(t *testing.T) {
	app := testsupport.ValidApplication()
	app.PrimaryApplicant.Email = "not-an-email"

	first, err := validation.ValidateStep(validation.StepPrimaryApplicant, app)
	require.NoError(t, err)
	second, err := validation.ValidateStep(validation.StepPrimaryApplicant, app)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestUnknownStepIsAnError(t *testing.T) {
	_, err := validation.ValidateStep(0, testsupport.ValidApplication())
	assert.Error(t, err)
	_, err = validation.ValidateStep(8, testsupport.ValidApplication())
	assert.Error(t, err)
}

func TestApplicationDetailsRequiredFields(t *testing.T) {
	app := testsupport.ValidApplication()
	app.ApplicationDetails = application.ApplicationDetails{}

	res := validation.ValidateApplicationDetails(app)

	require.False(t, res.Valid)
	for _, path := range []string{
		"applicationDetails.applicationDate",
		"applicationDetails.buildingAddress",
		"applicationDetails.apartmentNumber",
		"applicationDetails.monthlyRent",
		"applicationDetails.apartmentType",
		"applicationDetails.moveInDate",
		"applicationDetails.hearAbout",
	} {
		assert.NotEmpty(t, res.ErrorsFor(path), path)
	}
}

func TestBrokerReferralRequiresBrokerPair(t *testing.T) {
	app := testsupport.ValidApplication()
	app.ApplicationDetails.HearAbout = application.HearAboutBroker

	res := validation.ValidateApplicationDetails(app)
	require.False(t, res.Valid)
	assert.NotEmpty(t, res.ErrorsFor("applicationDetails.brokerName"))
	assert.NotEmpty(t, res.ErrorsFor("applicationDetails.brokerPhone"))

	app.ApplicationDetails.BrokerName = "A. Realty"
	app.ApplicationDetails.BrokerPhone = "212-555-0133"
	assert.True(t, validation.ValidateApplicationDetails(app).Valid)
}

func TestNonBrokerReferralRejectsBrokerDetails(t *testing.T) {
	app := testsupport.ValidApplication()
	app.ApplicationDetails.HearAbout = application.HearAboutCraigslist
	app.ApplicationDetails.BrokerName = "A. Realty"

	res := validation.ValidateApplicationDetails(app)
	assert.NotEmpty(t, res.ErrorsFor("applicationDetails.brokerName"))
}

func TestPrimaryApplicantPatterns(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*application.Applicant)
		path   string
	}{
		{"bad ssn", func(a *application.Applicant) { a.SSN = "12-345" }, "primaryApplicant.ssn"},
		{"bad email", func(a *application.Applicant) { a.Email = "nope" }, "primaryApplicant.email"},
		{"bad dob", func(a *application.Applicant) { a.DateOfBirth = "June 1990" }, "primaryApplicant.dateOfBirth"},
		{"short phone", func(a *application.Applicant) { a.CellPhone = "555" }, "primaryApplicant.cellPhone"},
		{"bad zip", func(a *application.Applicant) { a.CurrentAddress.Zip = "ABCDE" }, "primaryApplicant.currentAddress.zip"},
		{"negative rent", func(a *application.Applicant) { a.CurrentRent = -1 }, "primaryApplicant.currentRent"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := testsupport.ValidApplication()
			tc.mutate(&app.PrimaryApplicant)
			res := validation.ValidatePrimaryApplicant(app)
			assert.NotEmpty(t, res.ErrorsFor(tc.path))
		})
	}
}

func TestSSNAcceptsDashlessForm(t *testing.T) {
	app := testsupport.ValidApplication()
	app.PrimaryApplicant.SSN = "123456789"
	assert.True(t, validation.ValidatePrimaryApplicant(app).Valid)
}

func TestCoApplicantStepTrivialWhenAbsent(t *testing.T) {
	app := testsupport.ValidApplication()
	assert.True(t, validation.ValidateCoApplicant(app).Valid)
}

func TestCoApplicantSubFormWithoutFlagIsFlagged(t *testing.T) {
	app := testsupport.ValidApplication()
	app.CoApplicant = &application.Applicant{Name: "Stray"}

	res := validation.ValidateCoApplicant(app)
	assert.NotEmpty(t, res.ErrorsFor("coApplicant"))
}

func TestCoApplicantRequiresRelationship(t *testing.T) {
	app := testsupport.WithCoApplicant(testsupport.ValidApplication())
	app.CoApplicant.Relationship = ""

	res := validation.ValidateCoApplicant(app)
	assert.NotEmpty(t, res.ErrorsFor("coApplicant.relationship"))
}

func TestGuarantorMirrorsCoApplicantRules(t *testing.T) {
	app := testsupport.ValidApplication()
	app.HasGuarantor = true

	res := validation.ValidateGuarantor(app)
	assert.NotEmpty(t, res.ErrorsFor("guarantor"))
}

func TestFinancialInfoPerActiveRole(t *testing.T) {
	app := testsupport.WithCoApplicant(testsupport.ValidApplication())
	delete(app.FinancialInfo, application.RoleCoApplicant)

	res := validation.ValidateFinancialInfo(app)
	assert.NotEmpty(t, res.ErrorsFor("financialInfo.coApplicant"))
}

func TestFinancialInfoRejectsInactiveRoleEntries(t *testing.T) {
	app := testsupport.ValidApplication()
	app.FinancialInfo[application.RoleGuarantor] = &application.FinancialProfile{Employer: "Stray"}

	res := validation.ValidateFinancialInfo(app)
	assert.NotEmpty(t, res.ErrorsFor("financialInfo.guarantor"))
}

func TestFinancialInfoFrequencyEnum(t *testing.T) {
	app := testsupport.ValidApplication()
	app.FinancialInfo[application.RolePrimaryApplicant].IncomeFrequency = "weekly"

	res := validation.ValidateFinancialInfo(app)
	assert.NotEmpty(t, res.ErrorsFor("financialInfo.primaryApplicant.incomeFrequency"))
}

func TestLegalQuestionsRequireAnswers(t *testing.T) {
	app := testsupport.ValidApplication()
	app.Legal.Bankruptcy = ""

	res := validation.ValidateLegalQuestions(app)
	assert.NotEmpty(t, res.ErrorsFor("legalQuestions.bankruptcy"))
}

func TestLegalExplanationOnlyWithYes(t *testing.T) {
	app := testsupport.ValidApplication()
	app.Legal.Felony = "no"
	app.Legal.FelonyExplanation = "stale text"

	res := validation.ValidateLegalQuestions(app)
	assert.NotEmpty(t, res.ErrorsFor("legalQuestions.felonyExplanation"))

	app.Legal.Felony = "yes"
	assert.True(t, validation.ValidateLegalQuestions(app).Valid)
}

func TestLegalAnswerMustBeYesOrNo(t *testing.T) {
	app := testsupport.ValidApplication()
	app.Legal.BrokenLease = "maybe"

	res := validation.ValidateLegalQuestions(app)
	assert.NotEmpty(t, res.ErrorsFor("legalQuestions.brokenLease"))
}

func TestReviewRequiresSignatureForEveryActiveRole(t *testing.T) {
	app := testsupport.ValidApplication()
	app.HasGuarantor = true
	app.Guarantor = &application.Applicant{}
	app.FinancialInfo[application.RoleGuarantor] = &application.FinancialProfile{}

	res := validation.ValidateReview(app)
	assert.NotEmpty(t, res.ErrorsFor("signatures.guarantor"))
}

func TestReviewRejectsEmptyBitmap(t *testing.T) {
	app := testsupport.ValidApplication()
	app.Signatures[application.RolePrimaryApplicant].Bitmap = ""

	res := validation.ValidateReview(app)
	assert.NotEmpty(t, res.ErrorsFor("signatures.primaryApplicant.signature"))
}

func TestReviewRejectsStraySignatures(t *testing.T) {
	app := testsupport.ValidApplication()
	app.Signatures[application.RoleGuarantor] = &application.Signature{Name: "Stray"}

	res := validation.ValidateReview(app)
	assert.NotEmpty(t, res.ErrorsFor("signatures.guarantor"))
}

func TestReviewRequiresAttestation(t *testing.T) {
	app := testsupport.ValidApplication()
	app.Attested = false

	res := validation.ValidateReview(app)
	assert.NotEmpty(t, res.ErrorsFor("attested"))
}

func TestValidateAllConcatenatesFindings(t *testing.T) {
	app := testsupport.ValidApplication()
	app.ApplicationDetails.BuildingAddress = ""
	app.PrimaryApplicant.Email = "nope"
	app.Attested = false

	res := validation.ValidateAll(app)
	require.False(t, res.Valid)
	assert.NotEmpty(t, res.ErrorsFor("applicationDetails.buildingAddress"))
	assert.NotEmpty(t, res.ErrorsFor("primaryApplicant.email"))
	assert.NotEmpty(t, res.ErrorsFor("attested"))
}
