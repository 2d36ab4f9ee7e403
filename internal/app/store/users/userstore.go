package userstore

import (
	"context"
	"errors"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gridleapp/gridle/internal/app/system/normalize"
	"github.com/gridleapp/gridle/internal/app/system/search"
	"github.com/gridleapp/gridle/internal/domain/models"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

var (
	// ErrDuplicateEmail is returned when attempting to create a user with an email that already exists.
	ErrDuplicateEmail = errors.New("a user with this email already exists")
	errBadRole        = errors.New(`role must be "user"|"admin"`)
	errNoCredential   = errors.New("password hash required unless a Google ID is present")
)

// GetByID loads a user by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByEmail looks up a user by case-insensitive email. Returns mongo.ErrNoDocuments if not found.
func (s *Store) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"email": normalize.Email(email)}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByGoogleID looks up a federated user by their Google subject ID.
func (s *Store) GetByGoogleID(ctx context.Context, googleID string) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"google_id": googleID}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByResetToken loads the user holding an unexpired reset token.
func (s *Store) GetByResetToken(ctx context.Context, token string) (*models.User, error) {
	var u models.User
	filter := bson.M{
		"reset_token":         token,
		"reset_token_expires": bson.M{"$gt": time.Now()},
	}
	if err := s.c.FindOne(ctx, filter).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts a new user after normalizing & validating fields.
// PasswordHash must already be computed by the caller; a user needs either
// a password hash or a Google ID.
func (s *Store) Create(ctx context.Context, u models.User) (models.User, error) {
	u.ID = primitive.NewObjectID()
	u.Name = normalize.Name(u.Name)
	u.NameCI = text.Fold(u.Name)
	u.Email = normalize.Email(u.Email)
	if u.Role == "" {
		u.Role = "user"
	}
	if u.Preferences == (models.Preferences{}) {
		u.Preferences = models.DefaultPreferences()
	}

	switch u.Role {
	case "user", "admin":
		// ok
	default:
		return models.User{}, errBadRole
	}

	if u.PasswordHash == "" && u.GoogleID == "" {
		return models.User{}, errNoCredential
	}

	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicateEmail
		}
		return models.User{}, err
	}
	return u, nil
}

// ProfileUpdate holds the caller-editable profile fields. Nil pointers are
// left untouched (strict partial update).
type ProfileUpdate struct {
	Name                  *string
	EmailNotifications    *bool
	PopupNotifications    *bool
	ReminderFrequency     *string
	AIPrioritization      *bool
	AIReminderIntensity   *string
	GrammarAutocorrection *bool
}

// UpdateProfile applies a partial profile update and returns the fresh user.
func (s *Store) UpdateProfile(ctx context.Context, id primitive.ObjectID, upd ProfileUpdate) (*models.User, error) {
	set := bson.M{"updated_at": time.Now()}
	if upd.Name != nil {
		name := normalize.Name(*upd.Name)
		set["name"] = name
		set["name_ci"] = text.Fold(name)
	}
	if upd.EmailNotifications != nil {
		set["preferences.email_notifications"] = *upd.EmailNotifications
	}
	if upd.PopupNotifications != nil {
		set["preferences.popup_notifications"] = *upd.PopupNotifications
	}
	if upd.ReminderFrequency != nil {
		set["preferences.reminder_frequency"] = *upd.ReminderFrequency
	}
	if upd.AIPrioritization != nil {
		set["preferences.ai_prioritization"] = *upd.AIPrioritization
	}
	if upd.AIReminderIntensity != nil {
		set["preferences.ai_reminder_intensity"] = *upd.AIReminderIntensity
	}
	if upd.GrammarAutocorrection != nil {
		set["preferences.grammar_autocorrection"] = *upd.GrammarAutocorrection
	}

	res := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After))

	var u models.User
	if err := res.Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// AdminUpdate holds the fields an admin can set on any user.
type AdminUpdate struct {
	Name *string
	Role *string
	// EmailVerified follows the double-pointer convention: nil = untouched,
	// pointer-to-nil = clear, real value = set.
	EmailVerified **time.Time
}

// UpdateByAdmin applies an admin edit and returns the fresh user.
// Self-protection (an admin demoting or deleting themselves) is enforced in
// the handler, where the caller identity is known.
func (s *Store) UpdateByAdmin(ctx context.Context, id primitive.ObjectID, upd AdminUpdate) (*models.User, error) {
	set := bson.M{"updated_at": time.Now()}
	if upd.Name != nil {
		name := normalize.Name(*upd.Name)
		set["name"] = name
		set["name_ci"] = text.Fold(name)
	}
	if upd.Role != nil {
		switch *upd.Role {
		case "user", "admin":
		default:
			return nil, errBadRole
		}
		set["role"] = *upd.Role
	}
	unset := bson.M{}
	if upd.EmailVerified != nil {
		if *upd.EmailVerified == nil {
			unset["email_verified"] = ""
		} else {
			set["email_verified"] = **upd.EmailVerified
		}
	}

	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}

	res := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After))

	var u models.User
	if err := res.Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// SetResetToken stores a password-reset token and its expiry on the user.
func (s *Store) SetResetToken(ctx context.Context, id primitive.ObjectID, token string, expires time.Time) error {
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"reset_token":         token,
		"reset_token_expires": expires,
		"updated_at":          time.Now(),
	}})
	return err
}

// SetPassword replaces the password hash and clears any reset token.
func (s *Store) SetPassword(ctx context.Context, id primitive.ObjectID, passwordHash string) error {
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set":   bson.M{"password_hash": passwordHash, "updated_at": time.Now()},
		"$unset": bson.M{"reset_token": "", "reset_token_expires": ""},
	})
	return err
}

// LinkGoogle attaches a Google identity to an existing account, marking
// the email verified and refreshing the profile image.
func (s *Store) LinkGoogle(ctx context.Context, id primitive.ObjectID, googleID, image string) error {
	set := bson.M{
		"google_id":      googleID,
		"email_verified": time.Now(),
		"updated_at":     time.Now(),
	}
	if image != "" {
		set["image"] = image
	}
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	return err
}

// Delete removes a user document. Returns the number deleted (0 or 1).
// Cascading cleanup of the user's tasks, notes, and memberships is the
// admin handler's job.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// ListFilter narrows the admin user listing.
type ListFilter struct {
	Search string // case-insensitive substring across name and email
	Role   string // "" = all
}

// List returns one page of users plus the total match count, newest first.
func (s *Store) List(ctx context.Context, f ListFilter, skip, limit int64) ([]models.User, int64, error) {
	filter := bson.M{}
	if f.Search != "" {
		re := search.Regex(f.Search)
		filter["$or"] = bson.A{
			bson.M{"name": re},
			bson.M{"email": re},
		}
	}
	if f.Role != "" {
		filter["role"] = f.Role
	}

	total, err := s.c.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// CountByRole returns role → user count for the admin listing sidebar.
func (s *Store) CountByRole(ctx context.Context) (map[string]int64, error) {
	cur, err := s.c.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": "$role", "count": bson.M{"$sum": 1}}}},
	})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make(map[string]int64)
	for cur.Next(ctx) {
		var row struct {
			Role  string `bson:"_id"`
			Count int64  `bson:"count"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, err
		}
		out[row.Role] = row.Count
	}
	return out, cur.Err()
}

// GetRefs resolves a set of user IDs to display form (id, name, email).
func (s *Store) GetRefs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.UserRef, error) {
	out := make(map[primitive.ObjectID]models.UserRef, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	cur, err := s.c.Find(ctx, bson.M{"_id": bson.M{"$in": ids}},
		options.Find().SetProjection(bson.M{"name": 1, "email": 1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var ref models.UserRef
		if err := cur.Decode(&ref); err != nil {
			return nil, err
		}
		out[ref.ID] = ref
	}
	return out, cur.Err()
}
