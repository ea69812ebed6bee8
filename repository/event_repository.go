package repository

import (
	"context"
	"errors"
	"time"

	"packpall-backend/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrRevisionConflict is returned when a compare-and-swap update loses the
// race against a concurrent writer. Callers reload and retry.
var ErrRevisionConflict = errors.New("event revision conflict")

// EventRepository defines the interface for event aggregate data access.
type EventRepository interface {
	Create(ctx context.Context, event *models.Event) error
	FindByID(ctx context.Context, id string) (*models.Event, error)
	FindByMember(ctx context.Context, userID string) ([]models.Event, error)
	Update(ctx context.Context, event *models.Event) error
	Delete(ctx context.Context, id string) error
}

// MongoEventRepository implements EventRepository on the "events" collection.
type MongoEventRepository struct {
	collection *mongo.Collection
}

// NewMongoEventRepository creates a new MongoEventRepository.
func NewMongoEventRepository(db *mongo.Database) *MongoEventRepository {
	return &MongoEventRepository{collection: db.Collection("events")}
}

func (r *MongoEventRepository) Create(ctx context.Context, event *models.Event) error {
	_, err := r.collection.InsertOne(ctx, event)
	return err
}

func (r *MongoEventRepository) FindByID(ctx context.Context, id string) (*models.Event, error) {
	var event models.Event
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&event)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &event, nil
}

// FindByMember returns every event whose members array contains the user.
func (r *MongoEventRepository) FindByMember(ctx context.Context, userID string) ([]models.Event, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"members.user": userID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var events []models.Event
	if err := cursor.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// Update replaces the whole document, guarded by a compare-and-swap on the
// revision counter. On success the event's revision is bumped in place; on a
// lost race the document is untouched and ErrRevisionConflict is returned.
func (r *MongoEventRepository) Update(ctx context.Context, event *models.Event) error {
	filter := bson.M{"_id": event.ID, "revision": event.Revision}

	next := *event
	next.Revision++
	next.UpdatedAt = time.Now().UTC()

	res, err := r.collection.ReplaceOne(ctx, filter, &next)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrRevisionConflict
	}
	*event = next
	return nil
}

func (r *MongoEventRepository) Delete(ctx context.Context, id string) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
