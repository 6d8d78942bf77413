package service

import (
	"go.uber.org/mock/gomock"

	"selo/internal/credential/models"
	"selo/internal/credential/store"
	dErrors "selo/pkg/domain-errors"
)

func (s *ServiceSuite) TestGenerate_SingleField() {
	artifact := s.testArtifact("cpf_access")
	cred := s.testCredential(models.FieldCPF, "222.222.222-22")

	s.mockBuilder.EXPECT().
		Build(gomock.Any(), models.FieldCPF, "222.222.222-22").
		Return(artifact, nil)
	s.mockComposer.EXPECT().
		Compose(gomock.Any(), models.FieldCPF, "222.222.222-22", s.wallet, artifact).
		Return(cred)
	s.mockStore.EXPECT().
		Save(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, rec *store.Record) error {
			s.Equal(s.wallet, rec.Wallet)
			s.Equal(models.FieldCPF, rec.Credential.Field)
			s.Equal(s.now, rec.StoredAt)
			return nil
		})
	s.mockRegistrar.EXPECT().
		Register(gomock.Any(), gomock.Any()).
		Return("0xtx1", nil)
	s.mockAuditor.EXPECT().Emit(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	result, err := s.service.Generate(s.ctx(), GenerateRequest{
		Wallet:    s.wallet,
		Document:  s.testDocument(),
		Selection: models.FieldSelection{models.FieldCPF},
	})
	s.Require().NoError(err)

	s.Len(result.Bundle.FieldProofs, 1)
	s.Equal(models.FieldCPF, result.Bundle.FieldProofs[0].Field)
	s.Equal(s.wallet, result.Bundle.WalletAddress)
	s.False(result.Bundle.BundleID.IsNil())
	s.Empty(result.Failures)
}

func (s *ServiceSuite) TestGenerate_PartialSuccess() {
	buildErr := dErrors.New(dErrors.CodeProofBuildFailed, "proof generation failed for field categoria")
	artifact := s.testArtifact("cpf_access")
	cred := s.testCredential(models.FieldCPF, "222.222.222-22")

	s.mockBuilder.EXPECT().
		Build(gomock.Any(), models.FieldCPF, "222.222.222-22").
		Return(artifact, nil)
	s.mockBuilder.EXPECT().
		Build(gomock.Any(), models.FieldCategoria, "AB").
		Return(models.ProofArtifact{}, buildErr)
	s.mockComposer.EXPECT().
		Compose(gomock.Any(), models.FieldCPF, "222.222.222-22", s.wallet, artifact).
		Return(cred)
	s.mockStore.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)
	s.mockRegistrar.EXPECT().Register(gomock.Any(), gomock.Any()).Return("0xtx1", nil)
	s.mockAuditor.EXPECT().Emit(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	result, err := s.service.Generate(s.ctx(), GenerateRequest{
		Wallet:    s.wallet,
		Document:  s.testDocument(),
		Selection: models.FieldSelection{models.FieldCPF, models.FieldCategoria},
	})
	s.Require().NoError(err)

	s.Len(result.Bundle.FieldProofs, 1)
	s.Equal(models.FieldCPF, result.Bundle.FieldProofs[0].Field)
	s.Require().Len(result.Failures, 1)
	s.Equal(models.FieldCategoria, result.Failures[0].Field)
	s.Equal(dErrors.CodeProofBuildFailed, result.Failures[0].Code)
}

func (s *ServiceSuite) TestGenerate_AllFieldsFail() {
	buildErr := dErrors.New(dErrors.CodeProofBuildFailed, "backend down")

	s.mockBuilder.EXPECT().
		Build(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(models.ProofArtifact{}, buildErr).
		Times(2)

	_, err := s.service.Generate(s.ctx(), GenerateRequest{
		Wallet:    s.wallet,
		Document:  s.testDocument(),
		Selection: models.FieldSelection{models.FieldCPF, models.FieldCategoria},
	})
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeEmptyBundle))
}

func (s *ServiceSuite) TestGenerate_EmptySelection() {
	_, err := s.service.Generate(s.ctx(), GenerateRequest{
		Wallet:   s.wallet,
		Document: s.testDocument(),
	})
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))
}

func (s *ServiceSuite) TestGenerate_PreservesSelectionOrder() {
	doc := s.testDocument()
	selection := models.FieldSelection{models.FieldCategoria, models.FieldCPF, models.FieldDataNascimento}

	for _, field := range selection {
		value, err := doc.Value(field)
		s.Require().NoError(err)
		artifact := s.testArtifact(string(field))
		s.mockBuilder.EXPECT().Build(gomock.Any(), field, value).Return(artifact, nil)
		s.mockComposer.EXPECT().
			Compose(gomock.Any(), field, value, s.wallet, artifact).
			Return(s.testCredential(field, value))
	}
	s.mockStore.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil).Times(3)
	s.mockRegistrar.EXPECT().Register(gomock.Any(), gomock.Any()).Return("0xtx", nil).Times(3)
	s.mockAuditor.EXPECT().Emit(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	result, err := s.service.Generate(s.ctx(), GenerateRequest{
		Wallet:    s.wallet,
		Document:  doc,
		Selection: selection,
	})
	s.Require().NoError(err)

	s.Require().Len(result.Bundle.FieldProofs, 3)
	for i, field := range selection {
		s.Equal(field, result.Bundle.FieldProofs[i].Field)
	}
}

func (s *ServiceSuite) TestGenerate_MissingDocumentValue() {
	doc := s.testDocument()
	doc.Categoria = ""

	_, err := s.service.Generate(s.ctx(), GenerateRequest{
		Wallet:    s.wallet,
		Document:  doc,
		Selection: models.FieldSelection{models.FieldCategoria},
	})
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeEmptyBundle))
}

func (s *ServiceSuite) TestGenerate_LedgerFailureIsBestEffort() {
	artifact := s.testArtifact("cpf_access")
	cred := s.testCredential(models.FieldCPF, "222.222.222-22")

	s.mockBuilder.EXPECT().Build(gomock.Any(), models.FieldCPF, "222.222.222-22").Return(artifact, nil)
	s.mockComposer.EXPECT().
		Compose(gomock.Any(), models.FieldCPF, "222.222.222-22", s.wallet, artifact).
		Return(cred)
	s.mockStore.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)
	s.mockRegistrar.EXPECT().
		Register(gomock.Any(), gomock.Any()).
		Return("", dErrors.New(dErrors.CodeInternal, "relay down"))
	s.mockAuditor.EXPECT().Emit(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	result, err := s.service.Generate(s.ctx(), GenerateRequest{
		Wallet:    s.wallet,
		Document:  s.testDocument(),
		Selection: models.FieldSelection{models.FieldCPF},
	})
	s.Require().NoError(err)
	s.Len(result.Bundle.FieldProofs, 1)
}

func (s *ServiceSuite) TestGenerate_StoreFailureFailsSession() {
	artifact := s.testArtifact("cpf_access")
	cred := s.testCredential(models.FieldCPF, "222.222.222-22")

	s.mockBuilder.EXPECT().Build(gomock.Any(), models.FieldCPF, "222.222.222-22").Return(artifact, nil)
	s.mockComposer.EXPECT().
		Compose(gomock.Any(), models.FieldCPF, "222.222.222-22", s.wallet, artifact).
		Return(cred)
	s.mockStore.EXPECT().
		Save(gomock.Any(), gomock.Any()).
		Return(dErrors.New(dErrors.CodeInternal, "db down"))
	s.mockAuditor.EXPECT().Emit(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	_, err := s.service.Generate(s.ctx(), GenerateRequest{
		Wallet:    s.wallet,
		Document:  s.testDocument(),
		Selection: models.FieldSelection{models.FieldCPF},
	})
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeInternal))
}

func (s *ServiceSuite) TestVerify_DelegatesAndAudits() {
	cred := s.testCredential(models.FieldCPF, "222.222.222-22")
	verdict := models.VerificationVerdict{IsValid: false, Reason: "subject claim mismatch"}

	s.mockVerifier.EXPECT().Verify(gomock.Any(), cred).Return(verdict)
	s.mockAuditor.EXPECT().Emit(gomock.Any(), gomock.Any()).Return(nil)

	got, err := s.service.Verify(s.ctx(), cred)
	s.Require().NoError(err)
	s.Equal(verdict, got)
}

func (s *ServiceSuite) TestRetrieve() {
	rec := &store.Record{
		Wallet:     s.wallet,
		Credential: s.testCredential(models.FieldCPF, "222.222.222-22"),
	}

	s.mockStore.EXPECT().FindLatest(gomock.Any(), s.wallet, models.FieldCPF).Return(rec, nil)

	got, err := s.service.Retrieve(s.ctx(), s.wallet, models.FieldCPF)
	s.Require().NoError(err)
	s.Equal(rec, got)
}

func (s *ServiceSuite) TestRetrieve_NotFound() {
	s.mockStore.EXPECT().
		FindLatest(gomock.Any(), s.wallet, models.FieldUF).
		Return(nil, store.ErrNotFound)

	_, err := s.service.Retrieve(s.ctx(), s.wallet, models.FieldUF)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}
