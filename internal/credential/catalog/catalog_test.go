package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"selo/internal/credential/models"
	dErrors "selo/pkg/domain-errors"
)

func TestResolve_SupportedFields(t *testing.T) {
	cases := map[models.Field]Descriptor{
		models.FieldCPF:            {Circuit: CircuitCPFAccess, Shape: ShapeAccessList},
		models.FieldDataNascimento: {Circuit: CircuitBirthday, Shape: ShapeBirthYear},
		models.FieldDataEmissao:    {Circuit: CircuitValidity, Shape: ShapeValidity},
		models.FieldCategoria:      {Circuit: CircuitCategory, Shape: ShapeCategory},
	}

	for field, want := range cases {
		got, err := Resolve(field)
		require.NoError(t, err, field)
		assert.Equal(t, want, got, field)
	}
}

func TestResolve_UnsupportedFieldsReportCondition(t *testing.T) {
	for _, field := range []models.Field{
		models.FieldNome,
		models.FieldNumeroCNH,
		models.FieldDataValidade,
		models.FieldUF,
	} {
		_, err := Resolve(field)
		require.Error(t, err, field)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnsupportedField), field)
	}
}

func TestResolve_CoversEveryKnownField(t *testing.T) {
	// Every enumerated field must resolve to either a descriptor or an
	// explicit unsupported condition; nothing falls through silently.
	for _, field := range models.Fields {
		_, err := Resolve(field)
		if err != nil {
			assert.True(t, dErrors.HasCode(err, dErrors.CodeUnsupportedField), field)
		}
	}
}

func TestSupported(t *testing.T) {
	assert.True(t, Supported(models.FieldCPF))
	assert.False(t, Supported(models.FieldNome))
}
