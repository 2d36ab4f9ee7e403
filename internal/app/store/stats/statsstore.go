package statsstore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Store runs the read-only aggregations behind the admin dashboard. It
// reaches across collections, so it holds the database rather than a
// single collection.
type Store struct {
	db *mongo.Database
}

func New(db *mongo.Database) *Store {
	return &Store{db: db}
}

// Totals is the headline count block.
type Totals struct {
	Users    int64 `json:"users"`
	Tasks    int64 `json:"tasks"`
	Notes    int64 `json:"notes"`
	Groups   int64 `json:"groups"`
	Projects int64 `json:"projects"`
}

// CountAll counts every collection the dashboard shows.
func (s *Store) CountAll(ctx context.Context) (Totals, error) {
	var t Totals
	var err error
	if t.Users, err = s.db.Collection("users").CountDocuments(ctx, bson.M{}); err != nil {
		return Totals{}, err
	}
	if t.Tasks, err = s.db.Collection("tasks").CountDocuments(ctx, bson.M{}); err != nil {
		return Totals{}, err
	}
	if t.Notes, err = s.db.Collection("notes").CountDocuments(ctx, bson.M{}); err != nil {
		return Totals{}, err
	}
	if t.Groups, err = s.db.Collection("groups").CountDocuments(ctx, bson.M{}); err != nil {
		return Totals{}, err
	}
	if t.Projects, err = s.db.Collection("projects").CountDocuments(ctx, bson.M{}); err != nil {
		return Totals{}, err
	}
	return t, nil
}

// TrendPoint is one day of the registration trend.
type TrendPoint struct {
	Date  string `bson:"_id" json:"date"` // YYYY-MM-DD (UTC)
	Count int64  `bson:"count" json:"count"`
}

// RegistrationTrend buckets user sign-ups per UTC day over the last
// `days` days. Days with no registrations are absent from the result.
func (s *Store) RegistrationTrend(ctx context.Context, days int) ([]TrendPoint, error) {
	since := time.Now().AddDate(0, 0, -days)
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"created_at": bson.M{"$gte": since}}}},
		{{Key: "$group", Value: bson.M{
			"_id": bson.M{"$dateToString": bson.M{
				"format": "%Y-%m-%d",
				"date":   "$created_at",
			}},
			"count": bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.M{"_id": 1}}},
	}

	cur, err := s.db.Collection("users").Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var points []TrendPoint
	if err := cur.All(ctx, &points); err != nil {
		return nil, err
	}
	return points, nil
}

// StatusCount is one slice of the task status breakdown.
type StatusCount struct {
	Status string `bson:"_id" json:"status"`
	Count  int64  `bson:"count" json:"count"`
}

// TaskStatusBreakdown counts tasks per status across all users.
func (s *Store) TaskStatusBreakdown(ctx context.Context) ([]StatusCount, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":   "$status",
			"count": bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.M{"count": -1}}},
	}

	cur, err := s.db.Collection("tasks").Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var counts []StatusCount
	if err := cur.All(ctx, &counts); err != nil {
		return nil, err
	}
	return counts, nil
}

// ActiveUser is one row of the most-active-users table, ranked by task
// count.
type ActiveUser struct {
	UserID    string `bson:"_id" json:"userId"`
	Name      string `bson:"name" json:"name"`
	Email     string `bson:"email" json:"email"`
	TaskCount int64  `bson:"task_count" json:"taskCount"`
}

// MostActiveUsers returns the top `limit` users by task count, joined
// against the users collection for display fields. Users deleted since
// their tasks were counted are dropped by the join.
func (s *Store) MostActiveUsers(ctx context.Context, limit int) ([]ActiveUser, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":        "$user_id",
			"task_count": bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.M{"task_count": -1}}},
		{{Key: "$limit", Value: limit}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "users",
			"localField":   "_id",
			"foreignField": "_id",
			"as":           "user",
		}}},
		{{Key: "$unwind", Value: "$user"}},
		{{Key: "$project", Value: bson.M{
			"_id":        bson.M{"$toString": "$_id"},
			"task_count": 1,
			"name":       "$user.name",
			"email":      "$user.email",
		}}},
	}

	cur, err := s.db.Collection("tasks").Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var users []ActiveUser
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}
