package tui

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/ezhumalaisanjay/go-rentalform/pkg/application"
	"github.com/ezhumalaisanjay/go-rentalform/pkg/fieldpath"
	"github.com/ezhumalaisanjay/go-rentalform/pkg/signature"
	"github.com/ezhumalaisanjay/go-rentalform/pkg/validation"
	"github.com/ezhumalaisanjay/go-rentalform/pkg/wizard"
)

var hearAboutOptions = []string{
	application.HearAboutBuildingSign,
	application.HearAboutCraigslist,
	application.HearAboutBroker,
	application.HearAboutOther,
}

// Flow drives a wizard through its steps using terminal prompts.
type Flow struct {
	driver PromptDriver
	wiz    *wizard.Wizard
}

// NewFlow creates a flow over the given driver and wizard.
func NewFlow(driver PromptDriver, wiz *wizard.Wizard) *Flow {
	return &Flow{driver: driver, wiz: wiz}
}

// Run walks every step, re-prompting a step until its validators pass, then
// submits and waits for the outcome.
func (f *Flow) Run(ctx context.Context) (wizard.Outcome, error) {
	for {
		step := f.wiz.Step()
		if err := f.driver.Info(ctx, fmt.Sprintf("\n— Step %d of %d: %s —",
			step, validation.StepCount, validation.StepName(step))); err != nil {
			return wizard.Outcome{}, err
		}
		if err := f.runStep(ctx, step); err != nil {
			return wizard.Outcome{}, err
		}
		if step == validation.StepCount {
			break
		}
		if err := f.advance(ctx); err != nil {
			return wizard.Outcome{}, err
		}
	}
	return f.submit(ctx)
}

// advance calls Next, surfacing validator findings and leaving the wizard on
// the same step so the caller loop re-prompts.
func (f *Flow) advance(ctx context.Context) error {
	err := f.wiz.Next()
	var verr *wizard.ValidationError
	if errors.As(err, &verr) {
		for _, fe := range verr.Result.Errors {
			if infoErr := f.driver.Info(ctx, "  ! "+fe.Path+": "+fe.Message); infoErr != nil {
				return infoErr
			}
		}
		return nil
	}
	return err
}

func (f *Flow) runStep(ctx context.Context, step int) error {
	switch step {
	case validation.StepApplicationDetails:
		return f.stepDetails(ctx)
	case validation.StepPrimaryApplicant:
		return f.stepApplicant(ctx, "primaryApplicant", false)
	case validation.StepCoApplicant:
		return f.stepCoApplicant(ctx)
	case validation.StepGuarantor:
		return f.stepGuarantor(ctx)
	case validation.StepFinancialInfo:
		return f.stepFinancial(ctx)
	case validation.StepLegalQuestions:
		return f.stepLegal(ctx)
	case validation.StepReview:
		return f.stepReview(ctx)
	}
	return fmt.Errorf("tui: unknown step %d", step)
}

// partial accumulates dotted-path answers for one UpdateStep call.
type partial struct {
	doc map[string]any
}

func (p *partial) set(path string, value any) error {
	if p.doc == nil {
		p.doc = map[string]any{}
	}
	doc, err := fieldpath.Set(p.doc, path, value)
	if err != nil {
		return err
	}
	p.doc = doc
	return nil
}

func (f *Flow) stepDetails(ctx context.Context) error {
	app := f.wiz.Application()
	d := app.ApplicationDetails
	var p partial

	fields := []struct {
		path, msg, def string
	}{
		{"applicationDetails.applicationDate", "Application date (YYYY-MM-DD)", d.ApplicationDate},
		{"applicationDetails.buildingAddress", "Building address", d.BuildingAddress},
		{"applicationDetails.apartmentNumber", "Apartment number", d.ApartmentNumber},
		{"applicationDetails.apartmentType", "Apartment type", d.ApartmentType},
		{"applicationDetails.moveInDate", "Desired move-in date (YYYY-MM-DD)", d.MoveInDate},
	}
	for _, field := range fields {
		if err := f.askString(ctx, &p, field.path, field.msg, field.def); err != nil {
			return err
		}
	}
	if err := f.askMoney(ctx, &p, "applicationDetails.monthlyRent", "Monthly rent", d.MonthlyRent); err != nil {
		return err
	}

	idx, err := f.driver.Select(ctx, SelectConfig{
		Message:      "How did you hear about us?",
		Options:      hearAboutOptions,
		DefaultIndex: indexOf(hearAboutOptions, d.HearAbout),
	})
	if err != nil {
		return err
	}
	if idx >= 0 {
		if err := p.set("applicationDetails.hearAbout", hearAboutOptions[idx]); err != nil {
			return err
		}
		if hearAboutOptions[idx] == application.HearAboutBroker {
			if err := f.askString(ctx, &p, "applicationDetails.brokerName", "Broker name", d.BrokerName); err != nil {
				return err
			}
			if err := f.askString(ctx, &p, "applicationDetails.brokerPhone", "Broker phone", d.BrokerPhone); err != nil {
				return err
			}
		}
	}
	return f.wiz.UpdateStep(p.doc)
}

func (f *Flow) stepApplicant(ctx context.Context, prefix string, withRelationship bool) error {
	app := f.wiz.Application()
	var current application.Applicant
	switch prefix {
	case "primaryApplicant":
		current = app.PrimaryApplicant
	case "coApplicant":
		if app.CoApplicant != nil {
			current = *app.CoApplicant
		}
	case "guarantor":
		if app.Guarantor != nil {
			current = *app.Guarantor
		}
	}

	var p partial
	fields := []struct {
		path, msg, def string
	}{
		{prefix + ".name", "Full name", current.Name},
		{prefix + ".ssn", "Social security number (NNN-NN-NNNN)", current.SSN},
		{prefix + ".dateOfBirth", "Date of birth (YYYY-MM-DD)", current.DateOfBirth},
		{prefix + ".sex", "Sex", current.Sex},
		{prefix + ".email", "Email", current.Email},
		{prefix + ".cellPhone", "Cell phone", current.CellPhone},
		{prefix + ".homePhone", "Home phone (optional)", current.HomePhone},
		{prefix + ".currentAddress.street", "Street address", current.CurrentAddress.Street},
		{prefix + ".currentAddress.city", "City", current.CurrentAddress.City},
		{prefix + ".currentAddress.state", "State", current.CurrentAddress.State},
		{prefix + ".currentAddress.zip", "ZIP code", current.CurrentAddress.Zip},
		{prefix + ".landlord.name", "Current landlord name (optional)", current.Landlord.Name},
		{prefix + ".landlord.address", "Current landlord address (optional)", current.Landlord.Address},
		{prefix + ".reasonForMoving", "Reason for moving (optional)", current.ReasonForMoving},
	}
	if withRelationship {
		fields = append(fields, struct{ path, msg, def string }{
			prefix + ".relationship", "Relationship to primary applicant", current.Relationship,
		})
	}
	for _, field := range fields {
		if err := f.askString(ctx, &p, field.path, field.msg, field.def); err != nil {
			return err
		}
	}
	if err := f.askInt(ctx, &p, prefix+".lengthAtAddress.years", "Years at current address", current.LengthAtAddress.Years); err != nil {
		return err
	}
	if err := f.askInt(ctx, &p, prefix+".lengthAtAddress.months", "Additional months", current.LengthAtAddress.Months); err != nil {
		return err
	}
	if err := f.askMoney(ctx, &p, prefix+".currentRent", "Current monthly rent", current.CurrentRent); err != nil {
		return err
	}
	return f.wiz.UpdateStep(p.doc)
}

func (f *Flow) stepCoApplicant(ctx context.Context) error {
	app := f.wiz.Application()
	has, err := f.driver.Confirm(ctx, ConfirmConfig{
		Message: "Is there a co-applicant?",
		Default: app.HasCoApplicant,
	})
	if err != nil {
		return err
	}
	if err := f.wiz.UpdateStep(map[string]any{"hasCoApplicant": has}); err != nil {
		return err
	}
	if !has {
		return nil
	}

	same, err := f.driver.Confirm(ctx, ConfirmConfig{
		Message: "Does the co-applicant live at the primary applicant's address?",
		Default: app.CoApplicantSameAddress,
	})
	if err != nil {
		return err
	}
	if err := f.stepApplicant(ctx, "coApplicant", true); err != nil {
		return err
	}
	// Applied after the applicant form so the shortcut overwrites whatever
	// address was typed.
	return f.wiz.UpdateStep(map[string]any{"coApplicantSameAddress": same})
}

func (f *Flow) stepGuarantor(ctx context.Context) error {
	app := f.wiz.Application()
	has, err := f.driver.Confirm(ctx, ConfirmConfig{
		Message: "Is there a guarantor?",
		Default: app.HasGuarantor,
	})
	if err != nil {
		return err
	}
	if err := f.wiz.UpdateStep(map[string]any{"hasGuarantor": has}); err != nil {
		return err
	}
	if !has {
		return nil
	}
	return f.stepApplicant(ctx, "guarantor", true)
}

func (f *Flow) stepFinancial(ctx context.Context) error {
	app := f.wiz.Application()
	for _, role := range app.ActiveRoles() {
		if err := f.driver.Info(ctx, "Financial information for "+string(role)); err != nil {
			return err
		}
		var current application.FinancialProfile
		if profile := app.FinancialInfo[role]; profile != nil {
			current = *profile
		}
		prefix := "financialInfo." + string(role)

		var p partial
		fields := []struct {
			path, msg, def string
		}{
			{prefix + ".employer", "Employer", current.Employer},
			{prefix + ".employerAddress", "Employer address", current.EmployerAddress},
			{prefix + ".position", "Position", current.Position},
			{prefix + ".employedSince", "Employed since (YYYY-MM-DD)", current.EmployedSince},
			{prefix + ".supervisor", "Supervisor (optional)", current.Supervisor},
			{prefix + ".supervisorPhone", "Supervisor phone (optional)", current.SupervisorPhone},
			{prefix + ".checking.bank", "Checking account bank (optional)", current.Checking.Bank},
			{prefix + ".savings.bank", "Savings account bank (optional)", current.Savings.Bank},
		}
		for _, field := range fields {
			if err := f.askString(ctx, &p, field.path, field.msg, field.def); err != nil {
				return err
			}
		}
		if err := f.askMoney(ctx, &p, prefix+".income", "Income amount", current.Income); err != nil {
			return err
		}
		freqOptions := []string{application.IncomeMonthly, application.IncomeYearly}
		idx, err := f.driver.Select(ctx, SelectConfig{
			Message:      "Income frequency",
			Options:      freqOptions,
			DefaultIndex: indexOf(freqOptions, current.IncomeFrequency),
		})
		if err != nil {
			return err
		}
		if idx >= 0 {
			if err := p.set(prefix+".incomeFrequency", freqOptions[idx]); err != nil {
				return err
			}
		}
		if err := f.wiz.UpdateStep(p.doc); err != nil {
			return err
		}
	}
	return nil
}

func (f *Flow) stepLegal(ctx context.Context) error {
	app := f.wiz.Application()
	questions := []struct {
		path, explainPath, msg string
		answer, explanation    string
	}{
		{"legalQuestions.legalAction", "legalQuestions.legalActionExplanation",
			"Have you ever been a party to a legal action?", app.Legal.LegalAction, app.Legal.LegalActionExplanation},
		{"legalQuestions.brokenLease", "legalQuestions.brokenLeaseExplanation",
			"Have you ever broken a lease?", app.Legal.BrokenLease, app.Legal.BrokenLeaseExplanation},
		{"legalQuestions.bankruptcy", "legalQuestions.bankruptcyExplanation",
			"Have you ever declared bankruptcy?", app.Legal.Bankruptcy, app.Legal.BankruptcyExplanation},
		{"legalQuestions.felony", "legalQuestions.felonyExplanation",
			"Have you ever been convicted of a felony?", app.Legal.Felony, app.Legal.FelonyExplanation},
	}
	for _, q := range questions {
		yes, err := f.driver.Confirm(ctx, ConfirmConfig{Message: q.msg, Default: q.answer == "yes"})
		if err != nil {
			return err
		}
		var p partial
		answer := "no"
		if yes {
			answer = "yes"
		}
		if err := p.set(q.path, answer); err != nil {
			return err
		}
		if yes {
			explanation, err := f.driver.Input(ctx, InputConfig{Message: "Please explain", Default: q.explanation})
			if err != nil {
				return err
			}
			if err := p.set(q.explainPath, explanation); err != nil {
				return err
			}
		}
		if err := f.wiz.UpdateStep(p.doc); err != nil {
			return err
		}
	}
	return nil
}

func (f *Flow) stepReview(ctx context.Context) error {
	app := f.wiz.Application()
	for _, role := range app.ActiveRoles() {
		name, err := f.driver.Input(ctx, InputConfig{
			Message: "Signature name for " + string(role),
			Default: signatureDefault(app, role),
		})
		if err != nil {
			return err
		}
		var p partial
		prefix := "signatures." + string(role)
		if err := p.set(prefix+".name", name); err != nil {
			return err
		}
		if err := p.set(prefix+".signature", drawSignature(name)); err != nil {
			return err
		}
		if err := f.wiz.UpdateStep(p.doc); err != nil {
			return err
		}
	}

	attested, err := f.driver.Confirm(ctx, ConfirmConfig{
		Message: "I confirm all information provided is true and accurate",
	})
	if err != nil {
		return err
	}
	return f.wiz.UpdateStep(map[string]any{"attested": attested})
}

func (f *Flow) submit(ctx context.Context) (wizard.Outcome, error) {
	sub, err := f.wiz.Submit(ctx)
	if err != nil {
		var verr *wizard.ValidationError
		if errors.As(err, &verr) {
			for _, fe := range verr.Result.Errors {
				if infoErr := f.driver.Info(ctx, "  ! "+fe.Path+": "+fe.Message); infoErr != nil {
					return wizard.Outcome{}, infoErr
				}
			}
		}
		return wizard.Outcome{}, err
	}
	return sub.Wait(ctx)
}

func (f *Flow) askString(ctx context.Context, p *partial, path, msg, def string) error {
	out, err := f.driver.Input(ctx, InputConfig{Message: msg, Default: def})
	if err != nil {
		return err
	}
	return p.set(path, out)
}

func (f *Flow) askMoney(ctx context.Context, p *partial, path, msg string, def float64) error {
	defStr := ""
	if def > 0 {
		defStr = strconv.FormatFloat(def, 'f', -1, 64)
	}
	out, err := f.driver.Input(ctx, InputConfig{Message: msg, Default: defStr})
	if err != nil {
		return err
	}
	// Unparseable input becomes zero and the step validator reports it.
	value, _ := strconv.ParseFloat(strings.TrimPrefix(strings.TrimSpace(out), "$"), 64)
	return p.set(path, value)
}

func (f *Flow) askInt(ctx context.Context, p *partial, path, msg string, def int) error {
	out, err := f.driver.Input(ctx, InputConfig{Message: msg, Default: strconv.Itoa(def)})
	if err != nil {
		return err
	}
	value, _ := strconv.Atoi(strings.TrimSpace(out))
	return p.set(path, value)
}

func signatureDefault(app application.Application, role application.Role) string {
	if applicant := app.ApplicantFor(role); applicant != nil {
		return applicant.Name
	}
	return ""
}

// drawSignature turns the typed name into pad strokes so terminal sessions
// still produce a bitmap. Each character contributes one arc of a looping
// baseline, deterministic for a given name.
func drawSignature(name string) string {
	pad := signature.NewPad(0, 0)
	if strings.TrimSpace(name) == "" {
		return pad.Clear()
	}

	const baseline = 64.0
	x := 20.0
	pad.StrokeStart(x, baseline)
	for i, r := range name {
		amplitude := 12 + float64(int(r)%20)
		for t := 1; t <= 8; t++ {
			phase := float64(t) / 8 * math.Pi
			pad.StrokeMove(x+float64(t)*1.5, baseline-math.Sin(phase)*amplitude)
		}
		x += 12
		if i%6 == 5 {
			pad.StrokeMove(x, baseline)
		}
	}
	return pad.StrokeEnd()
}

func indexOf(options []string, value string) int {
	for i, option := range options {
		if option == value {
			return i
		}
	}
	return 0
}
