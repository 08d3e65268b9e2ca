package application

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ToMap converts the application into the nested map form the field-path
// updater operates on. The conversion goes through the JSON tags so dotted
// paths line up with the wire names ("financialInfo.coApplicant.checking.bank").
func ToMap(app Application) (map[string]any, error) {
	raw, err := json.Marshal(app)
	if err != nil {
		return nil, fmt.Errorf("application: encode: %w", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("application: decode: %w", err)
	}
	return doc, nil
}

// FromMap rebuilds a typed Application from its map form. Unknown keys are
// rejected: the wizard controller is the only caller, so a stray key means a
// malformed update path, which is a programmer error rather than user input.
func FromMap(doc map[string]any) (Application, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return Application{}, fmt.Errorf("application: encode map: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	var app Application
	if err := dec.Decode(&app); err != nil {
		return Application{}, fmt.Errorf("application: decode map: %w", err)
	}
	return app, nil
}

// Clone returns a deep copy of the application. The wizard hands clones to
// collaborators (storage, renderers) so later edits cannot leak into an
// in-flight snapshot.
func Clone(app Application) Application {
	clone := app
	if app.CoApplicant != nil {
		c := *app.CoApplicant
		clone.CoApplicant = &c
	}
	if app.Guarantor != nil {
		g := *app.Guarantor
		clone.Guarantor = &g
	}
	if app.FinancialInfo != nil {
		clone.FinancialInfo = make(map[Role]*FinancialProfile, len(app.FinancialInfo))
		for role, profile := range app.FinancialInfo {
			if profile == nil {
				clone.FinancialInfo[role] = nil
				continue
			}
			p := *profile
			clone.FinancialInfo[role] = &p
		}
	}
	if app.Signatures != nil {
		clone.Signatures = make(map[Role]*Signature, len(app.Signatures))
		for role, sig := range app.Signatures {
			if sig == nil {
				clone.Signatures[role] = nil
				continue
			}
			s := *sig
			clone.Signatures[role] = &s
		}
	}
	if app.Documents != nil {
		clone.Documents = make(map[string][]string, len(app.Documents))
		for category, files := range app.Documents {
			clone.Documents[category] = append([]string(nil), files...)
		}
	}
	return clone
}
