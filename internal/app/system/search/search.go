// internal/app/system/search/search.go
package search

import (
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Regex builds a case-insensitive substring matcher for a user-supplied
// search term. The term is escaped so regex metacharacters match literally.
func Regex(term string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(term), Options: "i"}
}

// AnyField builds an $or filter matching term as a case-insensitive
// substring in any of the given fields.
func AnyField(term string, fields ...string) bson.M {
	re := Regex(term)
	or := make(bson.A, 0, len(fields))
	for _, f := range fields {
		or = append(or, bson.M{f: re})
	}
	return bson.M{"$or": or}
}
