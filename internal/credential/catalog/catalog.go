// Package catalog maps document fields to the zero-knowledge circuits that can
// prove them. It is read-only configuration: resolving a field either yields a
// descriptor or a first-class unsupported_field error, never a silent skip, so
// holders can't be led to believe an unproved field was proved.
package catalog

import (
	"selo/internal/credential/models"
	dErrors "selo/pkg/domain-errors"
)

// CircuitID names an external Noir circuit.
type CircuitID string

const (
	CircuitCPFAccess CircuitID = "cpf_access"
	CircuitBirthday  CircuitID = "birthday"
	CircuitValidity  CircuitID = "validity"
	CircuitCategory  CircuitID = "category"
)

// InputShape tells the proof builder how to encode a field value into the
// input mapping the circuit expects.
type InputShape int

const (
	// ShapeAccessList expects {accessList: [uint...], cpf: uint}.
	ShapeAccessList InputShape = iota
	// ShapeBirthYear expects {birth_year: uint, current_year: uint}.
	ShapeBirthYear
	// ShapeValidity expects {emission: uint, today: uint} as YYYYMMDD integers.
	ShapeValidity
	// ShapeCategory expects {driver_category: [string...], required_letter: string}.
	ShapeCategory
)

// Descriptor describes the external circuit for one provable field.
type Descriptor struct {
	Circuit CircuitID
	Shape   InputShape
}

// Resolve returns the circuit descriptor for a field. Fields without a proof
// circuit (free text or not yet circuit-backed) resolve to an
// unsupported_field error the caller reports per field. The switch is
// exhaustive over models.Fields.
func Resolve(field models.Field) (Descriptor, error) {
	switch field {
	case models.FieldCPF:
		return Descriptor{Circuit: CircuitCPFAccess, Shape: ShapeAccessList}, nil
	case models.FieldDataNascimento:
		return Descriptor{Circuit: CircuitBirthday, Shape: ShapeBirthYear}, nil
	case models.FieldDataEmissao:
		return Descriptor{Circuit: CircuitValidity, Shape: ShapeValidity}, nil
	case models.FieldCategoria:
		return Descriptor{Circuit: CircuitCategory, Shape: ShapeCategory}, nil
	case models.FieldNome, models.FieldNumeroCNH, models.FieldDataValidade, models.FieldUF:
		return Descriptor{}, dErrors.New(dErrors.CodeUnsupportedField,
			"field "+field.String()+" has no proof circuit")
	default:
		return Descriptor{}, dErrors.New(dErrors.CodeUnsupportedField,
			"field "+field.String()+" has no proof circuit")
	}
}

// Supported reports whether a field has a proof circuit.
func Supported(field models.Field) bool {
	_, err := Resolve(field)
	return err == nil
}
