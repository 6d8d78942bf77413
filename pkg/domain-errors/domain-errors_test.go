package domainerrors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"
)

// DomainErrorsSuite tests the domain error primitives.
//
// Justification: These are core error primitives used at every trust boundary.
// Unit tests ensure invariants like "wrapped domain errors preserve original code"
// and "errors.Is matches by code" are maintained.
type DomainErrorsSuite struct {
	suite.Suite
}

func TestDomainErrorsSuite(t *testing.T) {
	suite.Run(t, new(DomainErrorsSuite))
}

func (s *DomainErrorsSuite) TestErrorInterface() {
	s.Run("returns message when present", func() {
		err := &Error{Code: CodeNotFound, Message: "credential not found"}
		s.Equal("credential not found", err.Error())
	})

	s.Run("returns code when message is empty", func() {
		err := &Error{Code: CodeProofBuildFailed}
		s.Equal("proof_build_failed", err.Error())
	})
}

func (s *DomainErrorsSuite) TestUnwrap() {
	cause := errors.New("backend crashed")
	err := Wrap(cause, CodeProofBuildFailed, "proof generation failed")

	s.ErrorIs(err, cause)
}

func (s *DomainErrorsSuite) TestIsMatchesByCode() {
	err := New(CodeSubjectMismatch, "subject claim mismatch")

	s.ErrorIs(err, &Error{Code: CodeSubjectMismatch})
	s.NotErrorIs(err, &Error{Code: CodeProofInvalid})
}

func (s *DomainErrorsSuite) TestWrapPreservesOriginalCode() {
	inner := New(CodeUnsupportedField, "no circuit for nome")
	outer := Wrap(inner, CodeInternal, "field skipped")

	s.True(HasCode(outer, CodeUnsupportedField))
	s.False(HasCode(outer, CodeInternal))
}

func (s *DomainErrorsSuite) TestHasCode() {
	s.Run("matches direct domain error", func() {
		s.True(HasCode(New(CodeEmptyBundle, "no fields succeeded"), CodeEmptyBundle))
	})

	s.Run("rejects plain errors", func() {
		s.False(HasCode(errors.New("plain"), CodeEmptyBundle))
	})
}

func (s *DomainErrorsSuite) TestCodeOf() {
	s.Equal(CodeCredentialExpired, CodeOf(New(CodeCredentialExpired, "expired")))
	s.Equal(CodeInternal, CodeOf(errors.New("plain")))
}
