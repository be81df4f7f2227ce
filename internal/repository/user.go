package repository

import (
	"context"
	"strconv"
	"strings"

	"github.com/myflowlab/stem-certification-quiz/internal/domain/entities"
	"github.com/myflowlab/stem-certification-quiz/internal/sheet"
)

var userColumns = []string{
	"username", "password", "score", "certified", "attempts",
	"access_code", "full_name", "nric", "email",
}

// UserRepository provides access to the users worksheet.
type UserRepository struct {
	store sheet.Store
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(store sheet.Store) *UserRepository {
	return &UserRepository{store: store}
}

// List returns every user in sheet order.
func (r *UserRepository) List(ctx context.Context) ([]*entities.User, error) {
	_, recs, err := readRecords(ctx, r.store, sheet.TableUsers)
	if err != nil {
		return nil, err
	}

	users := make([]*entities.User, 0, len(recs))
	for _, rec := range recs {
		users = append(users, userFromRecord(rec))
	}
	return users, nil
}

// GetByUsername finds a user by exact username.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*entities.User, error) {
	users, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, entities.ErrUserNotFound
}

// Save inserts the user or replaces the row with the same username.
func (r *UserRepository) Save(ctx context.Context, user *entities.User) error {
	base, recs, err := readRecords(ctx, r.store, sheet.TableUsers)
	if err != nil {
		return err
	}

	updated := false
	for i, rec := range recs {
		if rec.Get("username") == user.Username {
			recs[i] = userToRecord(user, rec)
			updated = true
			break
		}
	}
	if !updated {
		recs = append(recs, userToRecord(user, nil))
	}

	return writeRecords(ctx, r.store, sheet.TableUsers, userColumns, base, recs)
}

func userFromRecord(rec sheet.Record) *entities.User {
	return &entities.User{
		Username:   rec.Get("username"),
		Password:   rec["password"],
		Score:      rec.Int("score"),
		Certified:  rec.Bool("certified"),
		Attempts:   rec.Int("attempts"),
		AccessCode: rec.Get("access_code"),
		FullName:   rec.Get("full_name"),
		NRIC:       rec.Get("nric"),
		Email:      rec.Get("email"),
	}
}

func userToRecord(u *entities.User, prev sheet.Record) sheet.Record {
	rec := make(sheet.Record, len(userColumns)+len(prev))
	for k, v := range prev {
		rec[k] = v
	}
	rec["username"] = u.Username
	rec["password"] = u.Password
	rec["score"] = strconv.Itoa(u.Score)
	rec["certified"] = sheet.FormatBool(u.Certified)
	rec["attempts"] = strconv.Itoa(u.Attempts)
	rec["access_code"] = strings.TrimSpace(u.AccessCode)
	rec["full_name"] = u.FullName
	rec["nric"] = u.NRIC
	rec["email"] = u.Email
	return rec
}
