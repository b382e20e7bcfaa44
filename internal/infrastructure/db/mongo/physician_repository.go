package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/medibook/appointment-system/internal/core/domain"
)

const collectionPhysicians = "physicians"

type PhysicianRepository struct {
	col *mongo.Collection
}

func NewPhysicianRepository(db *mongo.Database) *PhysicianRepository {
	return &PhysicianRepository{col: db.Collection(collectionPhysicians)}
}

type physicianDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Name         string             `bson:"name"`
	Specialty    string             `bson:"specialty"`
	RatePhysical *float64           `bson:"rate_physical,omitempty"`
	RateOnline   *float64           `bson:"rate_online,omitempty"`
	Email        string             `bson:"email,omitempty"`
	Phone        string             `bson:"phone,omitempty"`
	Bio          string             `bson:"bio,omitempty"`
	AvatarURL    string             `bson:"avatar_url,omitempty"`
	CreatedAt    int64              `bson:"created_at"`
	UpdatedAt    int64              `bson:"updated_at"`
}

func (r *PhysicianRepository) Create(ctx context.Context, p *domain.Physician) (*domain.Physician, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := toPhysicianDoc(p)
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "insert physician", Err: err}
	}

	created := *p
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *PhysicianRepository) FindByID(ctx context.Context, id string) (*domain.Physician, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrPhysicianNotFound
	}

	var doc physicianDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPhysicianNotFound
		}
		return nil, &domain.PersistenceError{Op: "find physician", Err: err}
	}
	return fromPhysicianDoc(&doc), nil
}

func (r *PhysicianRepository) Update(ctx context.Context, p *domain.Physician) (*domain.Physician, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(p.ID)
	if err != nil {
		return nil, domain.ErrPhysicianNotFound
	}

	doc := toPhysicianDoc(p)
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": oid}, doc)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "update physician", Err: err}
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrPhysicianNotFound
	}
	return p, nil
}

func (r *PhysicianRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrPhysicianNotFound
	}

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return &domain.PersistenceError{Op: "delete physician", Err: err}
	}
	if res.DeletedCount == 0 {
		return domain.ErrPhysicianNotFound
	}
	return nil
}

func (r *PhysicianRepository) List(ctx context.Context) ([]*domain.Physician, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, &domain.PersistenceError{Op: "list physicians", Err: err}
	}
	defer cur.Close(ctx)

	var physicians []*domain.Physician
	for cur.Next(ctx) {
		var doc physicianDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, &domain.PersistenceError{Op: "decode physician", Err: err}
		}
		physicians = append(physicians, fromPhysicianDoc(&doc))
	}
	return physicians, cur.Err()
}

func toPhysicianDoc(p *domain.Physician) physicianDoc {
	return physicianDoc{
		Name:         p.Name,
		Specialty:    p.Specialty,
		RatePhysical: p.RatePhysical,
		RateOnline:   p.RateOnline,
		Email:        p.Email,
		Phone:        p.Phone,
		Bio:          p.Bio,
		AvatarURL:    p.AvatarURL,
		CreatedAt:    p.CreatedAt.Unix(),
		UpdatedAt:    p.UpdatedAt.Unix(),
	}
}

func fromPhysicianDoc(doc *physicianDoc) *domain.Physician {
	return &domain.Physician{
		ID:           doc.ID.Hex(),
		Name:         doc.Name,
		Specialty:    doc.Specialty,
		RatePhysical: doc.RatePhysical,
		RateOnline:   doc.RateOnline,
		Email:        doc.Email,
		Phone:        doc.Phone,
		Bio:          doc.Bio,
		AvatarURL:    doc.AvatarURL,
		CreatedAt:    unixToTime(doc.CreatedAt),
		UpdatedAt:    unixToTime(doc.UpdatedAt),
	}
}
