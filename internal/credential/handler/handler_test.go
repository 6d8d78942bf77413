package handler

//go:generate mockgen -source=handler.go -destination=mocks/handler_mock.go -package=mocks Service

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	contract "selo/contracts/credential"
	"selo/internal/credential/handler/mocks"
	"selo/internal/credential/models"
	"selo/internal/credential/service"
	"selo/internal/credential/store"
	"selo/internal/platform/middleware"
	id "selo/pkg/domain"
	dErrors "selo/pkg/domain-errors"
)

const testWalletHex = "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"

func setupHandler(t *testing.T) (*mocks.MockService, *chi.Mux) {
	t.Helper()
	ctrl := gomock.NewController(t)
	mockService := mocks.NewMockService(ctrl)

	h := New(mockService, slog.New(slog.NewTextHandler(io.Discard, nil)))
	router := chi.NewRouter()
	h.Register(router)
	return mockService, router
}

func testWallet(t *testing.T) id.WalletAddress {
	t.Helper()
	wallet, err := id.ParseWalletAddress(testWalletHex)
	require.NoError(t, err)
	return wallet
}

func testCredential(field models.Field, value string) models.FieldCredential {
	return models.FieldCredential{
		Field:      field,
		FieldValue: value,
		Credential: contract.Document{
			ID:   "urn:uuid:11111111-2222-3333-4444-555555555555",
			Type: []string{"VerifiableCredential", "CNHCredential"},
		},
		Artifact: models.ProofArtifact{
			CircuitID:          "cpf_access",
			ProofHex:           "0xdeadbeef",
			VerificationKeyHex: "0xcafe",
		},
	}
}

func TestHandleGenerate(t *testing.T) {
	mockService, router := setupHandler(t)
	wallet := testWallet(t)

	mockService.EXPECT().
		Generate(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, req service.GenerateRequest) (*service.GenerateResult, error) {
			assert.Equal(t, wallet, req.Wallet)
			assert.Equal(t, models.FieldSelection{models.FieldCPF, models.FieldCategoria}, req.Selection)
			assert.Equal(t, "222.222.222-22", req.Document.CPF)
			return &service.GenerateResult{
				Bundle: models.CredentialBundle{
					WalletAddress: wallet,
					FieldProofs:   []models.FieldCredential{testCredential(models.FieldCPF, "222.222.222-22")},
					BundleID:      id.NewBundleID(),
				},
			}, nil
		})

	body := `{
		"walletAddress": "` + testWalletHex + `",
		"document": {"cpf": "222.222.222-22", "categoria": "AB"},
		"fields": ["cpf", "categoria"]
	}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/credentials/generate", strings.NewReader(body)))

	require.Equal(t, http.StatusCreated, rec.Code)

	var result service.GenerateResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Len(t, result.Bundle.FieldProofs, 1)
	assert.False(t, result.Bundle.BundleID.IsNil())
}

func TestHandleGenerate_BadWallet(t *testing.T) {
	_, router := setupHandler(t)

	body := `{"walletAddress": "not-an-address", "document": {}, "fields": ["cpf"]}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/credentials/generate", strings.NewReader(body)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleGenerate_WalletMismatch(t *testing.T) {
	_, router := setupHandler(t)

	body := `{"walletAddress": "` + testWalletHex + `", "document": {"cpf": "222.222.222-22"}, "fields": ["cpf"]}`
	req := httptest.NewRequest(http.MethodPost, "/credentials/generate", strings.NewReader(body))
	req = req.WithContext(middleware.WithWallet(req.Context(), "0x0000000000000000000000000000000000000001"))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestHandleGenerate_UnknownField(t *testing.T) {
	_, router := setupHandler(t)

	body := `{"walletAddress": "` + testWalletHex + `", "document": {}, "fields": ["rg"]}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/credentials/generate", strings.NewReader(body)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleGenerate_NoFields(t *testing.T) {
	_, router := setupHandler(t)

	body := `{"walletAddress": "` + testWalletHex + `", "document": {}, "fields": []}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/credentials/generate", strings.NewReader(body)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleGenerate_EmptyBundle(t *testing.T) {
	mockService, router := setupHandler(t)

	mockService.EXPECT().
		Generate(gomock.Any(), gomock.Any()).
		Return(nil, dErrors.New(dErrors.CodeEmptyBundle, "no credentials could be generated"))

	body := `{"walletAddress": "` + testWalletHex + `", "document": {"cpf": "222.222.222-22"}, "fields": ["cpf"]}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/credentials/generate", strings.NewReader(body)))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "empty_bundle")
}

func TestHandleVerify(t *testing.T) {
	mockService, router := setupHandler(t)
	cred := testCredential(models.FieldCPF, "222.222.222-22")

	mockService.EXPECT().
		Verify(gomock.Any(), gomock.Any()).
		Return(models.VerificationVerdict{IsValid: false, Reason: "subject claim mismatch"}, nil)

	payload, err := json.Marshal(VerifyRequest{Credential: cred})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/credentials/verify", bytes.NewReader(payload)))

	require.Equal(t, http.StatusOK, rec.Code, "a negative verdict is still a successful verification call")

	var resp VerifyResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.IsValid)
	assert.Equal(t, "subject claim mismatch", resp.Reason)
}

func TestHandleVerify_EmptyBody(t *testing.T) {
	_, router := setupHandler(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/credentials/verify", strings.NewReader(`{}`)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleRetrieve(t *testing.T) {
	mockService, router := setupHandler(t)
	wallet := testWallet(t)
	cred := testCredential(models.FieldCPF, "222.222.222-22")

	mockService.EXPECT().
		Retrieve(gomock.Any(), wallet, models.FieldCPF).
		Return(&store.Record{Wallet: wallet, Credential: cred}, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/credentials/"+testWalletHex+"/cpf", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var got models.FieldCredential
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, models.FieldCPF, got.Field)
	assert.Equal(t, "222.222.222-22", got.FieldValue)
}

func TestHandleRetrieve_NotFound(t *testing.T) {
	mockService, router := setupHandler(t)

	mockService.EXPECT().
		Retrieve(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, store.ErrNotFound)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/credentials/"+testWalletHex+"/cpf", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleRetrieve_BadField(t *testing.T) {
	_, router := setupHandler(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/credentials/"+testWalletHex+"/rg", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleRetrieveQR(t *testing.T) {
	mockService, router := setupHandler(t)
	wallet := testWallet(t)

	mockService.EXPECT().
		Retrieve(gomock.Any(), wallet, models.FieldCPF).
		Return(&store.Record{Wallet: wallet, Credential: testCredential(models.FieldCPF, "222.222.222-22")}, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/credentials/"+testWalletHex+"/cpf/qr", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.NotEmpty(t, rec.Body.Bytes())
}
