package render

// TermsTitle heads the conditions block printed at the bottom of every
// artifact.
const TermsTitle = "Terms and Conditions"

// Terms are the fixed lines printed under TermsTitle. The attestation line
// sits above the signature blocks on the paper form, so it is last here.
var Terms = []string{
	"A non-refundable processing fee of $150.00 per applicant is due with this application.",
	"The applicant authorizes the landlord to obtain a credit report and verify the information provided.",
	"All applications are subject to approval and availability; submitting an application does not reserve an apartment.",
	"By signing, each applicant certifies that the information provided is true and accurate.",
}
