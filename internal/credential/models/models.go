// Package models defines the canonical data shapes of the credential context.
// Earlier iterations of this system accumulated two incompatible FieldProof
// shapes; this package is the single schema, and stores reject anything else
// at the boundary.
package models

import (
	"strings"
	"time"

	contract "selo/contracts/credential"
	id "selo/pkg/domain"
	dErrors "selo/pkg/domain-errors"
)

// Field enumerates the document attributes a credential can be issued for.
// The set is closed: adding a field means touching the catalog too, which the
// exhaustive switches there enforce at compile review time.
type Field string

const (
	FieldNome           Field = "nome"
	FieldCPF            Field = "cpf"
	FieldNumeroCNH      Field = "numeroCNH"
	FieldDataNascimento Field = "dataNascimento"
	FieldDataEmissao    Field = "dataEmissao"
	FieldDataValidade   Field = "dataValidade"
	FieldCategoria      Field = "categoria"
	FieldUF             Field = "uf"
)

// Fields lists every known field in document order.
var Fields = []Field{
	FieldNome,
	FieldCPF,
	FieldNumeroCNH,
	FieldDataNascimento,
	FieldDataEmissao,
	FieldDataValidade,
	FieldCategoria,
	FieldUF,
}

// ParseField validates a field name from an API boundary.
func ParseField(s string) (Field, error) {
	for _, f := range Fields {
		if string(f) == s {
			return f, nil
		}
	}
	return "", dErrors.New(dErrors.CodeInvalidInput, "unknown document field: "+s)
}

func (f Field) String() string {
	return string(f)
}

// DocumentFieldSet holds the structured attributes extracted from one scanned
// license. Values are canonical display strings (dates DD/MM/YYYY, CPF with
// punctuation). Produced once per upload by the extraction collaborator and
// never mutated; corrections require re-extraction.
type DocumentFieldSet struct {
	Nome           string `json:"nome"`
	CPF            string `json:"cpf"`
	NumeroCNH      string `json:"numeroCNH"`
	DataNascimento string `json:"dataNascimento"`
	DataEmissao    string `json:"dataEmissao"`
	DataValidade   string `json:"dataValidade"`
	Categoria      string `json:"categoria"`
	UF             string `json:"uf"`
}

// Value returns the document's value for a field. The switch is exhaustive
// over the Field constants.
func (d DocumentFieldSet) Value(f Field) (string, error) {
	switch f {
	case FieldNome:
		return d.Nome, nil
	case FieldCPF:
		return d.CPF, nil
	case FieldNumeroCNH:
		return d.NumeroCNH, nil
	case FieldDataNascimento:
		return d.DataNascimento, nil
	case FieldDataEmissao:
		return d.DataEmissao, nil
	case FieldDataValidade:
		return d.DataValidade, nil
	case FieldCategoria:
		return d.Categoria, nil
	case FieldUF:
		return d.UF, nil
	default:
		return "", dErrors.New(dErrors.CodeInvalidInput, "unknown document field: "+f.String())
	}
}

// FieldSelection is the ordered list of fields the holder chose for one
// generation session. Order is preserved into the bundle. Repeated fields are
// allowed and yield one credential each.
type FieldSelection []Field

// Validate enforces the "at least one field" invariant.
func (s FieldSelection) Validate() error {
	if len(s) == 0 {
		return dErrors.New(dErrors.CodeValidation, "at least one field must be selected")
	}
	return nil
}

// ProofArtifact is the normalized output of one external proof generation.
// Immutable once produced; one instance per (field, generation attempt).
type ProofArtifact struct {
	CircuitID          string         `json:"circuitId"`
	ProofHex           string         `json:"proofHex"`
	PublicInputs       map[string]any `json:"publicInputs"`
	VerificationKeyHex string         `json:"verificationKeyHex"`
}

// Validate enforces the artifact invariant: proof and verification key are
// non-empty 0x-prefixed hex strings. An artifact missing either is a build
// failure, never a usable artifact.
func (a ProofArtifact) Validate() error {
	if !isHexWithPrefix(a.ProofHex) {
		return dErrors.New(dErrors.CodeInvariantViolation, "proof is not a 0x-prefixed hex string")
	}
	if !isHexWithPrefix(a.VerificationKeyHex) {
		return dErrors.New(dErrors.CodeInvariantViolation, "verification key is not a 0x-prefixed hex string")
	}
	return nil
}

func isHexWithPrefix(s string) bool {
	rest, ok := strings.CutPrefix(s, "0x")
	if !ok || rest == "" {
		return false
	}
	for _, c := range rest {
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}

// FieldCredential pairs one field's cleartext value with its self-contained
// credential document. The artifact travels alongside the document so a
// credential can be re-verified without access to issuance state; the
// document's proofValue and the artifact's proof hex are the same bytes.
type FieldCredential struct {
	Field      Field             `json:"field"`
	FieldValue string            `json:"fieldValue"`
	Credential contract.Document `json:"credential"`
	Artifact   ProofArtifact     `json:"artifact"`
}

// Proof returns the embedded proof descriptor.
func (c FieldCredential) Proof() contract.ProofDescriptor {
	return c.Credential.Proof
}

// IssuanceDate parses the document's issuance timestamp.
func (c FieldCredential) IssuanceDate() (time.Time, error) {
	return time.Parse(time.RFC3339, c.Credential.IssuanceDate)
}

// ExpirationDate parses the document's expiration timestamp.
func (c FieldCredential) ExpirationDate() (time.Time, error) {
	return time.Parse(time.RFC3339, c.Credential.ExpirationDate)
}

// CredentialBundle groups the credentials issued in one generation session
// for one wallet. Never mutated; a new selection produces a new bundle.
type CredentialBundle struct {
	WalletAddress id.WalletAddress  `json:"walletAddress"`
	FieldProofs   []FieldCredential `json:"fieldProofs"`
	BundleID      id.BundleID       `json:"bundleId"`
}

// VerificationVerdict is the terminal outcome of one verification call.
// Ephemeral; never persisted by this context.
type VerificationVerdict struct {
	IsValid bool   `json:"isValid"`
	Reason  string `json:"reason"`
}
