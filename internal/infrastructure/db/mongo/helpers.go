package mongo

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Collection names.
const (
	collectionUsers    = "users"
	collectionProducts = "products"
	collectionOffers   = "offers"
	collectionAudit    = "audit_events"
)

// objectID parses a hex id. ok is false for anything that is not a valid
// ObjectID, which callers treat as "not found".
func objectID(id string) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return oid, true
}

// skipLimit converts 1-based page parameters into skip/limit values.
func skipLimit(page, limit int) (int64, int64) {
	if page < 1 {
		page = 1
	}
	return int64((page - 1) * limit), int64(limit)
}
