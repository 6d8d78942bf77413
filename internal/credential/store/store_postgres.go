package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"selo/internal/credential/models"
	id "selo/pkg/domain"
)

// PostgresStore persists credentials in PostgreSQL. The full credential
// envelope is stored as JSONB; wallet, field, and ids are lifted into columns
// for lookup.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed credential store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Save(ctx context.Context, rec *Record) error {
	if rec == nil {
		return fmt.Errorf("record is required")
	}
	payload, err := json.Marshal(rec.Credential)
	if err != nil {
		return fmt.Errorf("marshal credential: %w", err)
	}
	query := `
		INSERT INTO credentials (credential_id, wallet_address, field, bundle_id, payload, stored_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err = s.db.ExecContext(ctx, query,
		rec.Credential.Credential.ID,
		rec.Wallet.String(),
		rec.Credential.Field.String(),
		rec.BundleID.String(),
		payload,
		rec.StoredAt,
	)
	if err != nil {
		return fmt.Errorf("save credential: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindLatest(ctx context.Context, wallet id.WalletAddress, field models.Field) (*Record, error) {
	query := `
		SELECT wallet_address, bundle_id, payload, stored_at
		FROM credentials
		WHERE wallet_address = $1 AND field = $2
		ORDER BY stored_at DESC
		LIMIT 1
	`
	return s.scanOne(s.db.QueryRowContext(ctx, query, wallet.String(), field.String()))
}

func (s *PostgresStore) FindByCredentialID(ctx context.Context, credentialID string) (*Record, error) {
	query := `
		SELECT wallet_address, bundle_id, payload, stored_at
		FROM credentials
		WHERE credential_id = $1
	`
	return s.scanOne(s.db.QueryRowContext(ctx, query, credentialID))
}

func (s *PostgresStore) scanOne(row *sql.Row) (*Record, error) {
	var (
		rec        Record
		walletRaw  string
		bundleRaw  string
		payloadRaw []byte
	)
	if err := row.Scan(&walletRaw, &bundleRaw, &payloadRaw, &rec.StoredAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan credential: %w", err)
	}

	wallet, err := id.ParseWalletAddress(walletRaw)
	if err != nil {
		return nil, fmt.Errorf("parse stored wallet: %w", err)
	}
	rec.Wallet = wallet

	bundleID, err := id.ParseBundleID(bundleRaw)
	if err != nil {
		return nil, fmt.Errorf("parse stored bundle id: %w", err)
	}
	rec.BundleID = bundleID

	if err := json.Unmarshal(payloadRaw, &rec.Credential); err != nil {
		return nil, fmt.Errorf("unmarshal credential payload: %w", err)
	}
	return &rec, nil
}
