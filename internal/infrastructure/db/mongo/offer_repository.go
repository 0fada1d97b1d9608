package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/cloudmarket/marketplace-api/internal/core/domain"
	"github.com/cloudmarket/marketplace-api/internal/core/ports"
)

type OfferRepository struct {
	coll *mongo.Collection
}

func NewOfferRepository(db *mongo.Database) *OfferRepository {
	return &OfferRepository{coll: db.Collection(collectionOffers)}
}

type mongoOffer struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Title     string             `bson:"title"`
	Discount  float64            `bson:"discount"`
	Product   primitive.ObjectID `bson:"product"`
	ValidFrom time.Time          `bson:"validFrom"`
	ValidTo   time.Time          `bson:"validTo"`
	Terms     string             `bson:"terms"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

func toMongoOffer(o *domain.Offer, id primitive.ObjectID) (mongoOffer, error) {
	pid, ok := objectID(o.Product)
	if !ok {
		return mongoOffer{}, domain.NewValidationError("product", "product must be a valid id")
	}
	return mongoOffer{
		ID:        id,
		Title:     o.Title,
		Discount:  o.Discount,
		Product:   pid,
		ValidFrom: o.ValidFrom,
		ValidTo:   o.ValidTo,
		Terms:     o.Terms,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}, nil
}

func (mo *mongoOffer) toDomain() *domain.Offer {
	return &domain.Offer{
		ID:        mo.ID.Hex(),
		Title:     mo.Title,
		Discount:  mo.Discount,
		Product:   mo.Product.Hex(),
		ValidFrom: mo.ValidFrom.UTC(),
		ValidTo:   mo.ValidTo.UTC(),
		Terms:     mo.Terms,
		CreatedAt: mo.CreatedAt.UTC(),
		UpdatedAt: mo.UpdatedAt.UTC(),
	}
}

func (r *OfferRepository) Create(ctx context.Context, o *domain.Offer) (*domain.Offer, error) {
	doc, err := toMongoOffer(o, primitive.NewObjectID())
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert offer: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *OfferRepository) FindByID(ctx context.Context, id string) (*domain.Offer, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrOfferNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mo mongoOffer
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mo); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrOfferNotFound
		}
		return nil, fmt.Errorf("find offer: %w", err)
	}
	return mo.toDomain(), nil
}

func (r *OfferRepository) List(ctx context.Context, f ports.OfferFilter) ([]*domain.Offer, int64, error) {
	filter := bson.M{}
	if f.ProductID != "" {
		pid, ok := objectID(f.ProductID)
		if !ok {
			return []*domain.Offer{}, 0, nil
		}
		filter["product"] = pid
	}
	if !f.ActiveAt.IsZero() {
		filter["validFrom"] = bson.M{"$lte": f.ActiveAt}
		filter["validTo"] = bson.M{"$gte": f.ActiveAt}
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	skip, limit := skipLimit(f.Page, f.Limit)
	opts := options.Find().
		SetSort(bson.D{{Key: "validFrom", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list offers: %w", err)
	}
	var docs []mongoOffer
	if err := cur.All(ctx, &docs); err != nil {
		return nil, 0, fmt.Errorf("decode offers: %w", err)
	}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count offers: %w", err)
	}

	out := make([]*domain.Offer, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toDomain())
	}
	return out, total, nil
}

func (r *OfferRepository) Update(ctx context.Context, o *domain.Offer) (*domain.Offer, error) {
	oid, ok := objectID(o.ID)
	if !ok {
		return nil, domain.ErrOfferNotFound
	}
	doc, err := toMongoOffer(o, oid)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": oid}, doc)
	if err != nil {
		return nil, fmt.Errorf("update offer: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrOfferNotFound
	}
	return doc.toDomain(), nil
}

func (r *OfferRepository) Delete(ctx context.Context, id string) error {
	oid, ok := objectID(id)
	if !ok {
		return domain.ErrOfferNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete offer: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrOfferNotFound
	}
	return nil
}

func (r *OfferRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.coll.DeleteMany(ctx, bson.M{}); err != nil {
		return fmt.Errorf("delete offers: %w", err)
	}
	return nil
}

// EnsureIndexes creates the product and validity window indexes.
func (r *OfferRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "product", Value: 1}}},
		{Keys: bson.D{{Key: "validFrom", Value: 1}, {Key: "validTo", Value: 1}}},
	})
	return err
}
