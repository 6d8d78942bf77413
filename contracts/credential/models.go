package credential

// ContractVersion identifies the credential wire schema shared with external
// verifiers. Bump on any incompatible change to the JSON shapes below.
const ContractVersion = "v0.1.0"

// Context URIs every credential document carries, in order.
var Contexts = []string{
	"https://www.w3.org/2018/credentials/v1",
	"https://www.w3.org/2018/credentials/examples/v1",
}

// ProofDescriptor is the embedded proof section of a credential document.
// ProofValue carries the zero-knowledge proof reference, not a signature.
type ProofDescriptor struct {
	Type               string `json:"type"`
	ProofValue         string `json:"proofValue"`
	Created            string `json:"created"`
	ProofPurpose       string `json:"proofPurpose"`
	VerificationMethod string `json:"verificationMethod"`
}

// Subject is the credentialSubject object. Exactly one document field is
// present beyond ID and Type; which one is recorded in the Claims map.
type Subject struct {
	ID     string            `json:"id"`
	Type   string            `json:"type"`
	Claims map[string]string `json:"-"`
}

// Document is the W3C-style verifiable credential envelope issued per field.
type Document struct {
	Context        []string        `json:"@context"`
	ID             string          `json:"id"`
	Type           []string        `json:"type"`
	Issuer         string          `json:"issuer"`
	IssuanceDate   string          `json:"issuanceDate"`
	ExpirationDate string          `json:"expirationDate"`
	Subject        Subject         `json:"credentialSubject"`
	Proof          ProofDescriptor `json:"proof"`
}
