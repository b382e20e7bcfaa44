package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/medibook/appointment-system/internal/core/domain"
	"github.com/medibook/appointment-system/internal/core/ports"
)

const collectionRoles = "roles"

// RoleRepository persists roles. Deleting a role that users still reference is
// refused store-side, which is where the referential constraint lives.
type RoleRepository struct {
	col   *mongo.Collection
	users ports.UserRepository
}

func NewRoleRepository(db *mongo.Database, users ports.UserRepository) *RoleRepository {
	return &RoleRepository{col: db.Collection(collectionRoles), users: users}
}

type roleDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Title       string             `bson:"title"`
	Description string             `bson:"description,omitempty"`
}

func (r *RoleRepository) Create(ctx context.Context, role *domain.Role) (*domain.Role, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := roleDoc{Name: role.Name, Title: role.Title, Description: role.Description}
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicateRoleName
		}
		return nil, &domain.PersistenceError{Op: "insert role", Err: err}
	}

	created := *role
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *RoleRepository) FindByID(ctx context.Context, id string) (*domain.Role, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrRoleNotFound
	}

	var doc roleDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRoleNotFound
		}
		return nil, &domain.PersistenceError{Op: "find role", Err: err}
	}
	return fromRoleDoc(&doc), nil
}

func (r *RoleRepository) FindByName(ctx context.Context, name string) (*domain.Role, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc roleDoc
	if err := r.col.FindOne(ctx, bson.M{"name": name}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRoleNotFound
		}
		return nil, &domain.PersistenceError{Op: "find role by name", Err: err}
	}
	return fromRoleDoc(&doc), nil
}

func (r *RoleRepository) Update(ctx context.Context, role *domain.Role) (*domain.Role, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(role.ID)
	if err != nil {
		return nil, domain.ErrRoleNotFound
	}

	doc := roleDoc{Name: role.Name, Title: role.Title, Description: role.Description}
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": oid}, doc)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "update role", Err: err}
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrRoleNotFound
	}
	return role, nil
}

// Delete removes a role unless users still reference it.
func (r *RoleRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrRoleNotFound
	}

	inUse, err := r.users.CountByRole(ctx, id)
	if err != nil {
		return err
	}
	if inUse > 0 {
		return domain.ErrRoleInUse
	}

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return &domain.PersistenceError{Op: "delete role", Err: err}
	}
	if res.DeletedCount == 0 {
		return domain.ErrRoleNotFound
	}
	return nil
}

func (r *RoleRepository) List(ctx context.Context) ([]*domain.Role, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, &domain.PersistenceError{Op: "list roles", Err: err}
	}
	defer cur.Close(ctx)

	var roles []*domain.Role
	for cur.Next(ctx) {
		var doc roleDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, &domain.PersistenceError{Op: "decode role", Err: err}
		}
		roles = append(roles, fromRoleDoc(&doc))
	}
	return roles, cur.Err()
}

// EnsureIndexes creates the unique internal-name index on the roles collection.
func (r *RoleRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true)},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

// SeedCoreRoles inserts the protected built-in roles when missing.
func (r *RoleRepository) SeedCoreRoles(ctx context.Context) error {
	core := []domain.Role{
		{Name: domain.RoleAdmin, Title: "Administrator"},
		{Name: domain.RolePhysician, Title: "Physician"},
		{Name: domain.RoleCustomer, Title: "Customer"},
	}
	for _, role := range core {
		if _, err := r.FindByName(ctx, role.Name); err == nil {
			continue
		} else if !errors.Is(err, domain.ErrRoleNotFound) {
			return err
		}
		if _, err := r.Create(ctx, &role); err != nil && !errors.Is(err, domain.ErrDuplicateRoleName) {
			return err
		}
	}
	return nil
}

func fromRoleDoc(doc *roleDoc) *domain.Role {
	return &domain.Role{
		ID:          doc.ID.Hex(),
		Name:        doc.Name,
		Title:       doc.Title,
		Description: doc.Description,
	}
}
