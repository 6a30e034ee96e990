package patients

import (
	"context"
	"intake-service/internal/app/contracts"
	"intake-service/internal/app/models"
	"intake-service/internal/app/services/shared/metrics"
	"intake-service/internal/pkg/constvars"
	"intake-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type PatientMongoRepository struct {
	Collection *mongo.Collection
}

func NewPatientMongoRepository(db *mongo.Client, dbName string) *PatientMongoRepository {
	return &PatientMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionPatientRecords),
	}
}

var _ contracts.PatientRepository = (*PatientMongoRepository)(nil)

// EnsureIndexes creates the owner/createdAt index every list query relies on.
func (r *PatientMongoRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.Collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: constvars.PatientFieldOwnerID, Value: 1},
			{Key: constvars.PatientFieldCreatedAt, Value: -1},
		},
	})
	if err != nil {
		return exceptions.ErrMongoDBCreateIndex(err)
	}
	return nil
}

func (r *PatientMongoRepository) FindAllByOwner(ctx context.Context, ownerID string, limit int) (patients []models.Patient, err error) {
	defer func() { metrics.ObserveStoreOperation("list", err) }()

	findOptions := options.Find().SetSort(bson.D{
		{Key: constvars.PatientFieldCreatedAt, Value: -1},
		{Key: constvars.PatientFieldID, Value: -1},
	})
	if limit > 0 {
		findOptions.SetLimit(int64(limit))
	}

	cursor, err := r.Collection.Find(ctx, bson.M{constvars.PatientFieldOwnerID: ownerID}, findOptions)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	patients = make([]models.Patient, 0)
	for cursor.Next(ctx) {
		var document bson.M
		err = cursor.Decode(&document)
		if err != nil {
			return nil, exceptions.ErrMongoDBIterateDocuments(err)
		}
		patients = append(patients, mapPatientDocument(recordIDOf(document[constvars.PatientFieldID]), document))
	}
	err = cursor.Err()
	if err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return patients, nil
}

// FindByID returns nil without error when the record does not exist in the
// owner's partition or the id is not a valid record id.
func (r *PatientMongoRepository) FindByID(ctx context.Context, ownerID, recordID string) (patient *models.Patient, err error) {
	defer func() { metrics.ObserveStoreOperation("get", err) }()

	objectID, err := primitive.ObjectIDFromHex(recordID)
	if err != nil {
		return nil, nil
	}

	var document bson.M
	filter := bson.M{
		constvars.PatientFieldID:      objectID,
		constvars.PatientFieldOwnerID: ownerID,
	}
	err = r.Collection.FindOne(ctx, filter).Decode(&document)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}

	result := mapPatientDocument(objectID.Hex(), document)
	return &result, nil
}

// Create writes the record with an upsert so createdAt is stamped by the
// database server through $currentDate.
func (r *PatientMongoRepository) Create(ctx context.Context, ownerID string, input models.PatientInput) (recordID string, err error) {
	defer func() { metrics.ObserveStoreOperation("create", err) }()

	objectID := primitive.NewObjectID()
	filter := bson.M{
		constvars.PatientFieldID:      objectID,
		constvars.PatientFieldOwnerID: ownerID,
	}
	update := bson.M{
		"$set": bson.M{
			constvars.PatientFieldName:       input.Name,
			constvars.PatientFieldFatherName: input.FatherName,
			constvars.PatientFieldAddress:    input.Address,
			constvars.PatientFieldMobile:     input.Mobile,
			constvars.PatientFieldComplaint:  input.Complaint,
		},
		"$currentDate": bson.M{
			constvars.PatientFieldCreatedAt: true,
		},
	}

	_, err = r.Collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return "", exceptions.ErrMongoDBInsertDocument(err)
	}
	return objectID.Hex(), nil
}

// Delete succeeds whether or not the record existed.
func (r *PatientMongoRepository) Delete(ctx context.Context, ownerID, recordID string) (err error) {
	defer func() { metrics.ObserveStoreOperation("delete", err) }()

	objectID, err := primitive.ObjectIDFromHex(recordID)
	if err != nil {
		return nil
	}

	filter := bson.M{
		constvars.PatientFieldID:      objectID,
		constvars.PatientFieldOwnerID: ownerID,
	}
	_, err = r.Collection.DeleteOne(ctx, filter)
	if err != nil {
		return exceptions.ErrMongoDBDeleteDocument(err)
	}
	return nil
}
