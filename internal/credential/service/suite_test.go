package service

//go:generate mockgen -source=contracts.go -destination=mocks/mocks.go -package=mocks ProofBuilder,CredentialComposer,CredentialVerifier,AuditPublisher

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	contract "selo/contracts/credential"
	"selo/internal/credential/models"
	"selo/internal/credential/service/mocks"
	id "selo/pkg/domain"
	"selo/pkg/platform/middleware/requesttime"
)

const testWalletHex = "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"

type ServiceSuite struct {
	suite.Suite
	ctrl          *gomock.Controller
	mockBuilder   *mocks.MockProofBuilder
	mockComposer  *mocks.MockCredentialComposer
	mockVerifier  *mocks.MockCredentialVerifier
	mockStore     *mocks.MockCredentialStore
	mockRegistrar *mocks.MockLedgerRegistrar
	mockAuditor   *mocks.MockAuditPublisher
	service       *Service
	wallet        id.WalletAddress
	now           time.Time
}

func (s *ServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockBuilder = mocks.NewMockProofBuilder(s.ctrl)
	s.mockComposer = mocks.NewMockCredentialComposer(s.ctrl)
	s.mockVerifier = mocks.NewMockCredentialVerifier(s.ctrl)
	s.mockStore = mocks.NewMockCredentialStore(s.ctrl)
	s.mockRegistrar = mocks.NewMockLedgerRegistrar(s.ctrl)
	s.mockAuditor = mocks.NewMockAuditPublisher(s.ctrl)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc, err := New(
		s.mockBuilder,
		s.mockComposer,
		s.mockVerifier,
		s.mockStore,
		WithRegistrar(s.mockRegistrar),
		WithAuditor(s.mockAuditor),
		WithLogger(logger),
	)
	s.Require().NoError(err)
	s.service = svc

	wallet, err := id.ParseWalletAddress(testWalletHex)
	s.Require().NoError(err)
	s.wallet = wallet
	s.now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
}

func (s *ServiceSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) ctx() context.Context {
	return requesttime.WithTime(context.Background(), s.now)
}

func (s *ServiceSuite) testDocument() models.DocumentFieldSet {
	return models.DocumentFieldSet{
		Nome:           "MARIA DA SILVA",
		CPF:            "222.222.222-22",
		NumeroCNH:      "98765432100",
		DataNascimento: "15/05/1990",
		DataEmissao:    "10/03/2022",
		DataValidade:   "10/03/2032",
		Categoria:      "AB",
		UF:             "SP",
	}
}

func (s *ServiceSuite) testArtifact(circuit string) models.ProofArtifact {
	return models.ProofArtifact{
		CircuitID:          circuit,
		ProofHex:           "0xdeadbeef",
		PublicInputs:       map[string]any{"x": 1},
		VerificationKeyHex: "0xcafe",
	}
}

func (s *ServiceSuite) testCredential(field models.Field, value string) models.FieldCredential {
	return models.FieldCredential{
		Field:      field,
		FieldValue: value,
		Credential: contract.Document{
			ID:   id.NewCredentialID().String(),
			Type: []string{"VerifiableCredential", "CNHCredential"},
		},
		Artifact: s.testArtifact("test"),
	}
}
