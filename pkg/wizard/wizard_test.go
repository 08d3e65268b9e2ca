package wizard_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezhumalaisanjay/go-rentalform/pkg/application"
	"github.com/ezhumalaisanjay/go-rentalform/pkg/testsupport"
	"github.com/ezhumalaisanjay/go-rentalform/pkg/validation"
	"github.com/ezhumalaisanjay/go-rentalform/pkg/wizard"
)

func fixtureClock() func() time.Time {
	return func() time.Time { return testsupport.FixtureDate }
}

// loadFixture replaces the wizard's working document with the complete valid
// fixture by merging its map form, the same path real updates take.
func loadFixture(t *testing.T, wiz *wizard.Wizard, app application.Application) {
	t.Helper()
	doc, err := application.ToMap(app)
	require.NoError(t, err)
	require.NoError(t, wiz.UpdateStep(doc))
}

func TestNewWizardStartsOnStepOne(t *testing.T) {
	wiz := wizard.New(wizard.WithClock(fixtureClock()))

	assert.Equal(t, 1, wiz.Step())
	assert.Equal(t, "Application Details", wiz.StepName())
	assert.Equal(t, "2024-03-15", wiz.Application().ApplicationDetails.ApplicationDate)
}

func TestPreviousOnFirstStep(t *testing.T) {
	wiz := wizard.New()
	assert.ErrorIs(t, wiz.Previous(), wizard.ErrFirstStep)
}

func TestNextGatedOnValidators(t *testing.T) {
	wiz := wizard.New(wizard.WithClock(fixtureClock()))

	err := wiz.Next()
	var verr *wizard.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, validation.StepApplicationDetails, verr.Step)
	assert.Equal(t, 1, wiz.Step(), "invalid step must not advance")
}

func TestNextAdvancesWhenValid(t *testing.T) {
	wiz := wizard.New(wizard.WithClock(fixtureClock()))
	loadFixture(t, wiz, testsupport.ValidApplication())

	require.NoError(t, wiz.Next())
	assert.Equal(t, 2, wiz.Step())
	require.NoError(t, wiz.Previous())
	assert.Equal(t, 1, wiz.Step())
}

func TestNextOnLastStep(t *testing.T) {
	wiz := wizard.New(wizard.WithClock(fixtureClock()))
	loadFixture(t, wiz, testsupport.ValidApplication())
	require.NoError(t, wiz.GoTo(validation.StepReview))

	assert.ErrorIs(t, wiz.Next(), wizard.ErrLastStep)
}

func TestGoToValidatesSkippedSteps(t *testing.T) {
	wiz := wizard.New(wizard.WithClock(fixtureClock()))

	err := wiz.GoTo(validation.StepFinancialInfo)
	var verr *wizard.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, validation.StepApplicationDetails, verr.Step)

	assert.Error(t, wiz.GoTo(0))
	assert.Error(t, wiz.GoTo(8))
}

func TestUpdateStepPreservesSiblings(t *testing.T) {
	wiz := wizard.New(wizard.WithClock(fixtureClock()))
	require.NoError(t, wiz.UpdateStep(map[string]any{
		"applicationDetails": map[string]any{"buildingAddress": "100 Main St"},
	}))
	require.NoError(t, wiz.UpdateStep(map[string]any{
		"applicationDetails": map[string]any{"apartmentNumber": "4B"},
	}))

	app := wiz.Application()
	assert.Equal(t, "100 Main St", app.ApplicationDetails.BuildingAddress)
	assert.Equal(t, "4B", app.ApplicationDetails.ApartmentNumber)
}

func TestUpdateStepRejectsUnknownFields(t *testing.T) {
	wiz := wizard.New()
	err := wiz.UpdateStep(map[string]any{"noSuchField": 1})
	assert.Error(t, err)
}

func TestEnablingCoApplicantBuildsSkeletons(t *testing.T) {
	wiz := wizard.New(wizard.WithClock(fixtureClock()))
	require.NoError(t, wiz.UpdateStep(map[string]any{"hasCoApplicant": true}))

	app := wiz.Application()
	require.NotNil(t, app.CoApplicant)
	assert.NotNil(t, app.FinancialInfo[application.RoleCoApplicant])
	assert.NotNil(t, app.Signatures[application.RoleCoApplicant])
}

func TestDisablingCoApplicantDiscardsData(t *testing.T) {
	wiz := wizard.New(wizard.WithClock(fixtureClock()))
	loadFixture(t, wiz, testsupport.WithCoApplicant(testsupport.ValidApplication()))

	require.NoError(t, wiz.UpdateStep(map[string]any{"hasCoApplicant": false}))

	app := wiz.Application()
	assert.Nil(t, app.CoApplicant)
	assert.NotContains(t, app.FinancialInfo, application.RoleCoApplicant)
	assert.NotContains(t, app.Signatures, application.RoleCoApplicant)
}

func TestDisabledRoleDataDoesNotResurrect(t *testing.T) {
	wiz := wizard.New(wizard.WithClock(fixtureClock()))
	loadFixture(t, wiz, testsupport.WithCoApplicant(testsupport.ValidApplication()))

	require.NoError(t, wiz.UpdateStep(map[string]any{"hasCoApplicant": false}))
	require.NoError(t, wiz.UpdateStep(map[string]any{"hasCoApplicant": true}))

	app := wiz.Application()
	require.NotNil(t, app.CoApplicant)
	assert.Empty(t, app.CoApplicant.Name, "stale co-applicant data resurrected")
	assert.Empty(t, app.FinancialInfo[application.RoleCoApplicant].Employer)
}

func TestDisclosureFlippedToNoClearsExplanation(t *testing.T) {
	wiz := wizard.New(wizard.WithClock(fixtureClock()))
	require.NoError(t, wiz.UpdateStep(map[string]any{
		"legalQuestions": map[string]any{
			"legalAction":            "yes",
			"legalActionExplanation": "Small claims dispute in 2019",
		},
	}))

	require.NoError(t, wiz.UpdateStep(map[string]any{
		"legalQuestions": map[string]any{"legalAction": "no"},
	}))

	app := wiz.Application()
	assert.Equal(t, "no", app.Legal.LegalAction)
	assert.Empty(t, app.Legal.LegalActionExplanation)
}

func TestNoDisclosureNeverKeepsExplanation(t *testing.T) {
	wiz := wizard.New(wizard.WithClock(fixtureClock()))
	// A "no" answer and an explanation arriving in the same update must not
	// leave the stale text behind.
	require.NoError(t, wiz.UpdateStep(map[string]any{
		"legalQuestions": map[string]any{
			"felony":            "no",
			"felonyExplanation": "should never be stored",
		},
	}))

	app := wiz.Application()
	assert.Equal(t, "no", app.Legal.Felony)
	assert.Empty(t, app.Legal.FelonyExplanation)
}

func TestSameAddressCopiesPrimaryAddress(t *testing.T) {
	wiz := wizard.New(wizard.WithClock(fixtureClock()))
	loadFixture(t, wiz, testsupport.ValidApplication())

	require.NoError(t, wiz.UpdateStep(map[string]any{
		"hasCoApplicant":         true,
		"coApplicantSameAddress": true,
	}))

	app := wiz.Application()
	require.NotNil(t, app.CoApplicant)
	assert.Equal(t, app.PrimaryApplicant.CurrentAddress, app.CoApplicant.CurrentAddress)
}

func TestSignatureDateDefaultsToToday(t *testing.T) {
	wiz := wizard.New(wizard.WithClock(fixtureClock()))
	require.NoError(t, wiz.UpdateStep(map[string]any{
		"signatures": map[string]any{
			"primaryApplicant": map[string]any{
				"name":      "Jordan Rivera",
				"signature": testsupport.SignatureBitmap(),
			},
		},
	}))

	app := wiz.Application()
	assert.Equal(t, "2024-03-15", app.Signatures[application.RolePrimaryApplicant].Date)
}

func TestSetField(t *testing.T) {
	wiz := wizard.New(wizard.WithClock(fixtureClock()))
	require.NoError(t, wiz.SetField("applicationDetails.monthlyRent", 2450.0))

	assert.Equal(t, 2450.0, wiz.Application().ApplicationDetails.MonthlyRent)
}

func TestApplicationReturnsSnapshot(t *testing.T) {
	wiz := wizard.New(wizard.WithClock(fixtureClock()))
	snapshot := wiz.Application()
	snapshot.ApplicationDetails.BuildingAddress = "mutated"

	assert.Empty(t, wiz.Application().ApplicationDetails.BuildingAddress)
}

func TestResetReturnsToStepOne(t *testing.T) {
	wiz := wizard.New(wizard.WithClock(fixtureClock()))
	loadFixture(t, wiz, testsupport.ValidApplication())
	require.NoError(t, wiz.Next())

	wiz.Reset()

	assert.Equal(t, 1, wiz.Step())
	assert.Empty(t, wiz.Application().ApplicationDetails.BuildingAddress)
}
