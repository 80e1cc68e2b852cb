package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/notezipper/notezipper-go/internal/model"
)

type noteDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	User      primitive.ObjectID `bson:"user"`
	Title     string             `bson:"title"`
	Content   string             `bson:"content"`
	Category  string             `bson:"category"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

func (d *noteDocument) toModel() model.Note {
	return model.Note{
		ID:        d.ID.Hex(),
		UserID:    d.User.Hex(),
		Title:     d.Title,
		Content:   d.Content,
		Category:  d.Category,
		CreatedAt: d.CreatedAt.UTC(),
		UpdatedAt: d.UpdatedAt.UTC(),
	}
}

// MongoNoteRepository persists notes in MongoDB. Filters always include the
// owner, and malformed ids read as missing notes.
type MongoNoteRepository struct {
	coll *mongo.Collection
}

func NewMongoNoteRepository(db *mongo.Database) *MongoNoteRepository {
	return &MongoNoteRepository{coll: db.Collection(notesCollection)}
}

func (r *MongoNoteRepository) Create(ctx context.Context, note *model.Note) error {
	owner, err := primitive.ObjectIDFromHex(note.UserID)
	if err != nil {
		return err
	}

	ts := now()
	doc := noteDocument{
		ID:        primitive.NewObjectID(),
		User:      owner,
		Title:     note.Title,
		Content:   note.Content,
		Category:  note.Category,
		CreatedAt: ts,
		UpdatedAt: ts,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return err
	}

	note.ID = doc.ID.Hex()
	note.CreatedAt = ts
	note.UpdatedAt = ts
	return nil
}

// ListByOwner returns the owner's notes in insertion order. ObjectIDs are
// generated increasing, so sorting on _id preserves it.
func (r *MongoNoteRepository) ListByOwner(ctx context.Context, ownerID string) ([]model.Note, error) {
	owner, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return nil, nil
	}

	cur, err := r.coll.Find(ctx, bson.M{"user": owner}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var notes []model.Note
	for cur.Next(ctx) {
		var doc noteDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		notes = append(notes, doc.toModel())
	}
	return notes, cur.Err()
}

func (r *MongoNoteRepository) GetByID(ctx context.Context, ownerID, id string) (*model.Note, error) {
	filter, ok := ownedFilter(ownerID, id)
	if !ok {
		return nil, ErrNoteNotFound
	}

	var doc noteDocument
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNoteNotFound
		}
		return nil, err
	}
	n := doc.toModel()
	return &n, nil
}

func (r *MongoNoteRepository) Update(ctx context.Context, ownerID, id string, patch model.NotePatch) (*model.Note, error) {
	filter, ok := ownedFilter(ownerID, id)
	if !ok {
		return nil, ErrNoteNotFound
	}

	set := bson.M{"updatedAt": now()}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Content != nil {
		set["content"] = *patch.Content
	}
	if patch.Category != nil {
		set["category"] = *patch.Category
	}

	var doc noteDocument
	err := r.coll.FindOneAndUpdate(ctx, filter, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNoteNotFound
		}
		return nil, err
	}
	n := doc.toModel()
	return &n, nil
}

func (r *MongoNoteRepository) Delete(ctx context.Context, ownerID, id string) error {
	filter, ok := ownedFilter(ownerID, id)
	if !ok {
		return ErrNoteNotFound
	}

	result, err := r.coll.DeleteOne(ctx, filter)
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNoteNotFound
	}
	return nil
}

func ownedFilter(ownerID, id string) (bson.M, bool) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, false
	}
	owner, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return nil, false
	}
	return bson.M{"_id": oid, "user": owner}, true
}
