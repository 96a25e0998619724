package hospitals

import (
	"context"
	"time"

	"emr-gateway-service/internal/app/contracts"
	"emr-gateway-service/internal/app/models"
	"emr-gateway-service/internal/pkg/constvars"
	"emr-gateway-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type HospitalCredentialMongoRepository struct {
	Collection *mongo.Collection
}

func NewHospitalCredentialMongoRepository(db *mongo.Client, dbName string) contracts.HospitalCredentialRepository {
	return &HospitalCredentialMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionHospitalCredentials),
	}
}

func (r *HospitalCredentialMongoRepository) FindActiveByHospitalID(ctx context.Context, hospitalID string) (*models.HospitalCredential, error) {
	var credential models.HospitalCredential
	filter := bson.M{
		"hospitalId": hospitalID,
		"active":     true,
	}
	err := r.Collection.FindOne(ctx, filter).Decode(&credential)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &credential, nil
}

func (r *HospitalCredentialMongoRepository) UpdateHealthStatus(ctx context.Context, hospitalID, status string, checkedAt time.Time) error {
	filter := bson.M{"hospitalId": hospitalID}
	update := bson.M{"$set": bson.M{
		"healthStatus":      status,
		"lastHealthCheckAt": checkedAt,
		"updatedAt":         time.Now(),
	}}

	_, err := r.Collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(false))
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}
