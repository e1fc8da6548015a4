package mongodb

import (
	"context"
	"errors"

	"health-insights/internal/domain/identities"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type userDoc struct {
	ID             any       `bson:"_id"`
	Name           string    `bson:"name"`
	Role           string    `bson:"role"`
	AvailableSlots []slotDoc `bson:"availableSlots"`
}

type slotDoc struct {
	DateTime bson.RawValue `bson:"dateTime"`
	IsBooked *bool         `bson:"isBooked"`
}

type IdentitiesRepo struct {
	coll *mongo.Collection
}

func NewIdentitiesRepo(db *mongo.Database) *IdentitiesRepo {
	return &IdentitiesRepo{coll: db.Collection(usersCollection)}
}

func (r *IdentitiesRepo) GetByID(ctx context.Context, id string) (identities.Identity, error) {
	ids := idCandidates(id)
	if len(ids) == 0 {
		return identities.Identity{}, identities.ErrNotFound
	}

	var doc userDoc
	err := r.coll.FindOne(ctx, bson.M{"_id": bson.M{"$in": ids}}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return identities.Identity{}, identities.ErrNotFound
		}
		return identities.Identity{}, err
	}
	return doc.toDomain(), nil
}

func (d userDoc) toDomain() identities.Identity {
	ident := identities.Identity{
		ID:   idString(d.ID),
		Name: d.Name,
		Role: d.Role,
	}
	for _, s := range d.AvailableSlots {
		slot := identities.Slot{
			// sin isBooked => se trata como reservado
			IsBooked: s.IsBooked == nil || *s.IsBooked,
		}
		if t, ok := dateValue(s.DateTime); ok {
			slot.DateTime = t
		}
		ident.AvailableSlots = append(ident.AvailableSlots, slot)
	}
	return ident
}
