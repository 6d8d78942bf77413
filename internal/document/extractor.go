// Package document extracts structured driver's license fields from scanned
// text. OCR itself happens upstream; this package owns the heuristics that
// turn recognized text into a field set.
package document

import (
	"context"
	"regexp"
	"strings"

	"selo/internal/credential/models"
	dErrors "selo/pkg/domain-errors"
)

// Extractor turns OCR output into a structured field set.
type Extractor interface {
	Extract(ctx context.Context, text string) (models.DocumentFieldSet, error)
}

var (
	cpfPattern      = regexp.MustCompile(`\b(\d{3}\.\d{3}\.\d{3}-\d{2})\b`)
	datePattern     = regexp.MustCompile(`\b(\d{2}/\d{2}/\d{4})\b`)
	registroPattern = regexp.MustCompile(`\b(\d{11})\b`)
	categoryPattern = regexp.MustCompile(`(?i)\bcat\.?\s*:?\s*([A-E]{1,3})\b`)
	ufPattern       = regexp.MustCompile(`\b(AC|AL|AP|AM|BA|CE|DF|ES|GO|MA|MT|MS|MG|PA|PB|PR|PE|PI|RJ|RN|RS|RO|RR|SC|SP|SE|TO)\b`)
	namePattern     = regexp.MustCompile(`(?im)^nome\s*:?\s*(.+)$`)
)

// TextExtractor applies regex heuristics to OCR text. Dates are assigned in
// order of appearance: birth, emission, validity, matching the layout of the
// physical document.
type TextExtractor struct{}

func NewTextExtractor() *TextExtractor {
	return &TextExtractor{}
}

func (e *TextExtractor) Extract(_ context.Context, text string) (models.DocumentFieldSet, error) {
	if strings.TrimSpace(text) == "" {
		return models.DocumentFieldSet{}, dErrors.New(dErrors.CodeInvalidInput, "document text is empty")
	}

	var fields models.DocumentFieldSet

	if m := namePattern.FindStringSubmatch(text); m != nil {
		fields.Nome = strings.TrimSpace(m[1])
	}
	if m := cpfPattern.FindStringSubmatch(text); m != nil {
		fields.CPF = m[1]
	}
	if m := categoryPattern.FindStringSubmatch(text); m != nil {
		fields.Categoria = strings.ToUpper(m[1])
	}
	if m := ufPattern.FindStringSubmatch(text); m != nil {
		fields.UF = m[1]
	}

	dates := datePattern.FindAllStringSubmatch(text, 3)
	if len(dates) > 0 {
		fields.DataNascimento = dates[0][1]
	}
	if len(dates) > 1 {
		fields.DataEmissao = dates[1][1]
	}
	if len(dates) > 2 {
		fields.DataValidade = dates[2][1]
	}

	// The registry number is 11 bare digits, which also matches a CPF with
	// punctuation stripped. Only take a match that is not the CPF.
	stripped := strings.NewReplacer(".", "", "-", "").Replace(fields.CPF)
	for _, m := range registroPattern.FindAllStringSubmatch(text, -1) {
		if m[1] != stripped {
			fields.NumeroCNH = m[1]
			break
		}
	}

	if fields == (models.DocumentFieldSet{}) {
		return models.DocumentFieldSet{}, dErrors.New(dErrors.CodeInvalidInput,
			"no recognizable document fields in text")
	}
	return fields, nil
}

// StaticExtractor returns a fixed field set. Used in tests and local setups
// without an OCR stage.
type StaticExtractor struct {
	Fields models.DocumentFieldSet
}

func (e *StaticExtractor) Extract(context.Context, string) (models.DocumentFieldSet, error) {
	return e.Fields, nil
}
