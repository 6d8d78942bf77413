package prover

import (
	"context"
	"encoding/hex"
	"errors"
	"log/slog"

	"selo/internal/credential/catalog"
	"selo/internal/credential/models"
	dErrors "selo/pkg/domain-errors"
	"selo/pkg/platform/middleware/requesttime"
)

// Builder turns (field, value) into a normalized ProofArtifact by invoking the
// external proving capability exactly once. It holds no state between calls;
// retry policy belongs to the caller.
type Builder struct {
	prover           Prover
	accessList       []uint64
	requiredCategory string
	logger           *slog.Logger
}

// Option configures the Builder.
type Option func(*Builder)

// WithAccessList sets the authorized CPF list fed to the access-list circuit.
func WithAccessList(list []uint64) Option {
	return func(b *Builder) {
		b.accessList = list
	}
}

// WithRequiredCategory sets the letter the category circuit proves possession of.
func WithRequiredCategory(letter string) Option {
	return func(b *Builder) {
		if letter != "" {
			b.requiredCategory = letter
		}
	}
}

// WithLogger configures a logger for build failures.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Builder) {
		b.logger = logger
	}
}

// NewBuilder creates a Builder around the given proving capability.
func NewBuilder(p Prover, opts ...Option) *Builder {
	b := &Builder{
		prover:           p,
		requiredCategory: "b",
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build resolves the field's circuit, encodes the input mapping, runs the
// proving capability, and normalizes the result. Every failure is returned as
// a proof_build_failed (or unsupported_field) domain error naming the field;
// nothing is retried here.
func (b *Builder) Build(ctx context.Context, field models.Field, value string) (models.ProofArtifact, error) {
	desc, err := catalog.Resolve(field)
	if err != nil {
		return models.ProofArtifact{}, err
	}

	input, err := b.encodeInput(ctx, desc.Shape, value)
	if err != nil {
		return models.ProofArtifact{}, dErrors.Wrap(err, dErrors.CodeProofBuildFailed,
			"could not encode input for field "+field.String())
	}

	result, err := b.prover.GenerateProof(ctx, string(desc.Circuit), input)
	if err != nil {
		if b.logger != nil {
			b.logger.ErrorContext(ctx, "proof generation failed",
				"field", field,
				"circuit", desc.Circuit,
				"error", err,
			)
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return models.ProofArtifact{}, dErrors.Wrap(err, dErrors.CodeTimeout,
				"proof generation timed out for field "+field.String())
		}
		return models.ProofArtifact{}, dErrors.Wrap(err, dErrors.CodeProofBuildFailed,
			"proof generation failed for field "+field.String())
	}

	artifact := models.ProofArtifact{
		CircuitID:          string(desc.Circuit),
		ProofHex:           hexify(result.Proof),
		PublicInputs:       result.PublicInputs,
		VerificationKeyHex: hexify(result.VerificationKey),
	}
	if err := artifact.Validate(); err != nil {
		// Empty proof or key from the backend is a build failure, not an artifact.
		return models.ProofArtifact{}, dErrors.Wrap(err, dErrors.CodeProofBuildFailed,
			"proving backend returned an unusable artifact for field "+field.String())
	}
	return artifact, nil
}

// encodeInput builds the circuit input mapping for a shape. Time-dependent
// shapes read the request-scoped clock so all fields of one session agree on
// "today".
func (b *Builder) encodeInput(ctx context.Context, shape catalog.InputShape, value string) (map[string]any, error) {
	now := requesttime.Now(ctx)

	switch shape {
	case catalog.ShapeAccessList:
		cpf, err := encodeCPF(value)
		if err != nil {
			return nil, err
		}
		return map[string]any{
			"accessList": b.accessList,
			"cpf":        cpf,
		}, nil

	case catalog.ShapeBirthYear:
		birth, err := parseDisplayDate(value)
		if err != nil {
			return nil, err
		}
		return map[string]any{
			"birth_year":   birth.Year(),
			"current_year": now.Year(),
		}, nil

	case catalog.ShapeValidity:
		emission, err := parseDisplayDate(value)
		if err != nil {
			return nil, err
		}
		return map[string]any{
			"emission": encodeDate(emission),
			"today":    encodeDate(now),
		}, nil

	case catalog.ShapeCategory:
		letters := encodeCategory(value)
		if len(letters) == 0 {
			return nil, dErrors.New(dErrors.CodeInvalidInput, "category has no letters")
		}
		return map[string]any{
			"driver_category": letters,
			"required_letter": b.requiredCategory,
		}, nil

	default:
		return nil, dErrors.New(dErrors.CodeInternal, "unknown input shape")
	}
}

func hexify(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	return "0x" + hex.EncodeToString(b)
}
