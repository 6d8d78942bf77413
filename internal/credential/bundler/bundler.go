// Package bundler groups issued field credentials into wallet-bound bundles.
package bundler

import (
	"selo/internal/credential/models"
	id "selo/pkg/domain"
	dErrors "selo/pkg/domain-errors"
)

// Assemble binds the credentials of one generation session to a wallet under
// a fresh bundle ID. Order of creds is preserved as given; duplicates are the
// caller's to avoid, not the bundler's to collapse.
func Assemble(wallet id.WalletAddress, creds []models.FieldCredential) (models.CredentialBundle, error) {
	if len(creds) == 0 {
		return models.CredentialBundle{}, dErrors.New(dErrors.CodeEmptyBundle,
			"no credentials could be generated for the requested fields")
	}

	bundled := make([]models.FieldCredential, len(creds))
	copy(bundled, creds)

	return models.CredentialBundle{
		WalletAddress: wallet,
		FieldProofs:   bundled,
		BundleID:      id.NewBundleID(),
	}, nil
}
