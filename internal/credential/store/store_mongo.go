package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"selo/internal/credential/models"
	id "selo/pkg/domain"
)

const mongoCollection = "credentials"

// MongoStore persists credentials in MongoDB. The envelope is stored as its
// JSON form inside the document, next to the lookup keys.
type MongoStore struct {
	coll *mongo.Collection
}

// NewMongo constructs a MongoDB-backed credential store on the given database.
func NewMongo(db *mongo.Database) *MongoStore {
	return &MongoStore{coll: db.Collection(mongoCollection)}
}

type mongoRecord struct {
	CredentialID  string    `bson:"credential_id"`
	WalletAddress string    `bson:"wallet_address"`
	Field         string    `bson:"field"`
	BundleID      string    `bson:"bundle_id"`
	Payload       []byte    `bson:"payload"`
	StoredAt      time.Time `bson:"stored_at"`
}

func (s *MongoStore) Save(ctx context.Context, rec *Record) error {
	if rec == nil {
		return fmt.Errorf("record is required")
	}
	payload, err := json.Marshal(rec.Credential)
	if err != nil {
		return fmt.Errorf("marshal credential: %w", err)
	}
	_, err = s.coll.InsertOne(ctx, mongoRecord{
		CredentialID:  rec.Credential.Credential.ID,
		WalletAddress: rec.Wallet.String(),
		Field:         rec.Credential.Field.String(),
		BundleID:      rec.BundleID.String(),
		Payload:       payload,
		StoredAt:      rec.StoredAt,
	})
	if err != nil {
		return fmt.Errorf("save credential: %w", err)
	}
	return nil
}

func (s *MongoStore) FindLatest(ctx context.Context, wallet id.WalletAddress, field models.Field) (*Record, error) {
	filter := bson.D{
		{Key: "wallet_address", Value: wallet.String()},
		{Key: "field", Value: field.String()},
	}
	opts := options.FindOne().SetSort(bson.D{{Key: "stored_at", Value: -1}})
	return s.decodeOne(s.coll.FindOne(ctx, filter, opts))
}

func (s *MongoStore) FindByCredentialID(ctx context.Context, credentialID string) (*Record, error) {
	filter := bson.D{{Key: "credential_id", Value: credentialID}}
	return s.decodeOne(s.coll.FindOne(ctx, filter))
}

func (s *MongoStore) decodeOne(res *mongo.SingleResult) (*Record, error) {
	var doc mongoRecord
	if err := res.Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("decode credential: %w", err)
	}

	wallet, err := id.ParseWalletAddress(doc.WalletAddress)
	if err != nil {
		return nil, fmt.Errorf("parse stored wallet: %w", err)
	}
	bundleID, err := id.ParseBundleID(doc.BundleID)
	if err != nil {
		return nil, fmt.Errorf("parse stored bundle id: %w", err)
	}

	rec := &Record{
		Wallet:   wallet,
		BundleID: bundleID,
		StoredAt: doc.StoredAt,
	}
	if err := json.Unmarshal(doc.Payload, &rec.Credential); err != nil {
		return nil, fmt.Errorf("unmarshal credential payload: %w", err)
	}
	return rec, nil
}
