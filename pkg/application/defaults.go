package application

import "time"

// DateLayout is the ISO calendar-date format used for every date field.
const DateLayout = "2006-01-02"

// New returns the empty application a fresh wizard starts from: today's date,
// both conditional flags false, and an empty skeleton for the always-present
// sub-documents.
func New(now time.Time) Application {
	return Application{
		ApplicationDetails: ApplicationDetails{
			ApplicationDate: now.Format(DateLayout),
		},
		FinancialInfo: map[Role]*FinancialProfile{
			RolePrimaryApplicant: {},
		},
		Documents: map[string][]string{},
		Signatures: map[Role]*Signature{
			RolePrimaryApplicant: {},
		},
	}
}

// EnableRole initializes the empty sub-tree skeleton for a co-applicant or
// guarantor. It refuses the primary role, which always exists.
func (a *Application) EnableRole(role Role) {
	switch role {
	case RoleCoApplicant:
		a.HasCoApplicant = true
		if a.CoApplicant == nil {
			a.CoApplicant = &Applicant{}
		}
	case RoleGuarantor:
		a.HasGuarantor = true
		if a.Guarantor == nil {
			a.Guarantor = &Applicant{}
		}
	default:
		return
	}
	if a.FinancialInfo == nil {
		a.FinancialInfo = map[Role]*FinancialProfile{}
	}
	if a.FinancialInfo[role] == nil {
		a.FinancialInfo[role] = &FinancialProfile{}
	}
	if a.Signatures == nil {
		a.Signatures = map[Role]*Signature{}
	}
	if a.Signatures[role] == nil {
		a.Signatures[role] = &Signature{}
	}
}

// DisableRole discards (not merely hides) every sub-tree belonging to the
// role: the applicant record, financial profile, signature, and document
// handles. Stale data must not resurrect if the role is re-enabled later.
func (a *Application) DisableRole(role Role) {
	switch role {
	case RoleCoApplicant:
		a.HasCoApplicant = false
		a.CoApplicant = nil
		a.CoApplicantSameAddress = false
	case RoleGuarantor:
		a.HasGuarantor = false
		a.Guarantor = nil
	default:
		return
	}
	delete(a.FinancialInfo, role)
	delete(a.Signatures, role)
	for _, kind := range DocumentKinds {
		delete(a.Documents, DocumentCategory(role, kind))
	}
}

// ActiveRoles returns the roles currently present on the application in
// canonical order: the primary always, the others per their flag.
func (a Application) ActiveRoles() []Role {
	roles := []Role{RolePrimaryApplicant}
	if a.HasCoApplicant {
		roles = append(roles, RoleCoApplicant)
	}
	if a.HasGuarantor {
		roles = append(roles, RoleGuarantor)
	}
	return roles
}

// ApplicantFor resolves the Applicant record for a role, or nil when the role
// is inactive.
func (a *Application) ApplicantFor(role Role) *Applicant {
	switch role {
	case RolePrimaryApplicant:
		return &a.PrimaryApplicant
	case RoleCoApplicant:
		return a.CoApplicant
	case RoleGuarantor:
		return a.Guarantor
	}
	return nil
}
