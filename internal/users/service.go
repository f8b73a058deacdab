// Package users implements registration, login and account administration.
package users

import (
	"context"
	"slices"
	"strings"
	"time"

	"gamehub/backend/internal/apperr"
	"gamehub/backend/internal/auth"
	"gamehub/backend/internal/models"
	"gamehub/backend/internal/store"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const defaultTheme = "dark"

// Service owns the users collection.
type Service struct {
	store    store.Store
	sessions *auth.Sessions
	hashCost int
	now      func() time.Time
}

type Option func(*Service)

// WithHashCost sets the bcrypt cost used for new password hashes.
func WithHashCost(cost int) Option {
	return func(s *Service) { s.hashCost = cost }
}

func NewService(st store.Store, sessions *auth.Sessions, opts ...Option) *Service {
	s := &Service{store: st, sessions: sessions, hashCost: bcrypt.DefaultCost, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Session is what register and login hand back to the client.
type Session struct {
	User  models.PublicUser `json:"user"`
	Token string            `json:"token"`
}

// Profile holds the user-editable parts of an account.
type Profile struct {
	Avatar    string
	AvatarURL string
	Banner    string
	Bio       string
	Theme     string
}

// Register creates a basic user and logs them in.
func (s *Service) Register(ctx context.Context, username, password string) (*Session, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, apperr.New(apperr.Validation, "Username and password are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, err, "Failed to hash password")
	}

	var user models.User
	err = store.Atomic(ctx, s.store, func(tx store.Store) error {
		users, err := store.Load[models.User](ctx, tx, store.Users)
		if err != nil {
			return err
		}
		if _, ok := findByUsername(users, username); ok {
			return apperr.New(apperr.Conflict, "Username already exists")
		}

		user = models.User{
			ID:         store.NextID(users),
			Username:   username,
			Password:   string(hash),
			Role:       models.RoleBasic,
			Theme:      defaultTheme,
			CreatedAt:  s.now().UTC(),
			SessionKey: uuid.NewString(),
		}
		return store.Save(ctx, tx, store.Users, append(users, user))
	})
	if err != nil {
		return nil, apperr.OrInternal(err, "Registration failed")
	}

	return s.newSession(user)
}

// Login verifies credentials. Unknown usernames and wrong passwords fail identically.
func (s *Service) Login(ctx context.Context, username, password string) (*Session, error) {
	users, err := store.Load[models.User](ctx, s.store, store.Users)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, err, "Login failed")
	}

	user, ok := findByUsername(users, username)
	if !ok {
		return nil, apperr.New(apperr.Unauthorized, "Invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, apperr.New(apperr.Unauthorized, "Invalid credentials")
	}

	if user.SessionKey == "" {
		err := s.updateUser(ctx, user.ID, func(u *models.User) error {
			if u.SessionKey == "" {
				u.SessionKey = uuid.NewString()
			}
			user = *u
			return nil
		})
		if err != nil {
			return nil, apperr.OrInternal(err, "Login failed")
		}
	}

	return s.newSession(user)
}

// Logout revokes token for the rest of its validity window.
func (s *Service) Logout(ctx context.Context, token string) error {
	return s.sessions.Revoke(ctx, token)
}

// SeedAdmin creates an admin account when no users exist yet. It reports whether one was created.
func (s *Service) SeedAdmin(ctx context.Context, username, password string) (bool, error) {
	if username == "" || password == "" {
		return false, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return false, err
	}

	created := false
	err = store.Atomic(ctx, s.store, func(tx store.Store) error {
		users, err := store.Load[models.User](ctx, tx, store.Users)
		if err != nil {
			return err
		}
		if len(users) > 0 {
			return nil
		}
		created = true
		return store.Save(ctx, tx, store.Users, []models.User{{
			ID:         1,
			Username:   username,
			Password:   string(hash),
			Role:       models.RoleAdmin,
			Theme:      defaultTheme,
			CreatedAt:  s.now().UTC(),
			SessionKey: uuid.NewString(),
		}})
	})
	return created, err
}

// Me returns the caller's stored profile.
func (s *Service) Me(ctx context.Context, caller auth.Identity) (models.PublicUser, error) {
	users, err := store.Load[models.User](ctx, s.store, store.Users)
	if err != nil {
		return models.PublicUser{}, apperr.Wrap(apperr.Internal, err, "Failed to fetch user")
	}
	for _, u := range users {
		if u.ID == caller.ID {
			return u.Public(), nil
		}
	}
	return models.PublicUser{}, apperr.New(apperr.NotFound, "User not found")
}

func (s *Service) ListUsers(ctx context.Context) ([]models.PublicUser, error) {
	users, err := store.Load[models.User](ctx, s.store, store.Users)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, err, "Failed to fetch users")
	}
	out := make([]models.PublicUser, 0, len(users))
	for _, u := range users {
		out = append(out, u.Public())
	}
	return out, nil
}

// SetRole changes a user's role. Sessions already issued keep their old role until they expire.
func (s *Service) SetRole(ctx context.Context, id int, role models.Role) (models.PublicUser, error) {
	if !role.Valid() {
		return models.PublicUser{}, apperr.New(apperr.Validation, "Invalid role")
	}

	var updated models.User
	err := s.updateUser(ctx, id, func(u *models.User) error {
		u.Role = role
		updated = *u
		return nil
	})
	if err != nil {
		return models.PublicUser{}, apperr.OrInternal(err, "Failed to update role")
	}
	return updated.Public(), nil
}

// DeleteUser removes the account with its favorites and ratings and revokes
// every session issued for it. Ids may be handed out again later.
func (s *Service) DeleteUser(ctx context.Context, id int) error {
	var sessionKey string
	err := store.Atomic(ctx, s.store, func(tx store.Store) error {
		users, err := store.Load[models.User](ctx, tx, store.Users)
		if err != nil {
			return err
		}
		i := indexByID(users, id)
		if i < 0 {
			return apperr.New(apperr.NotFound, "User not found")
		}
		sessionKey = users[i].SessionKey
		if err := store.Save(ctx, tx, store.Users, append(users[:i], users[i+1:]...)); err != nil {
			return err
		}

		favorites, err := store.Load[models.Favorite](ctx, tx, store.Favorites)
		if err != nil {
			return err
		}
		favorites = slices.DeleteFunc(favorites, func(f models.Favorite) bool { return f.UserID == id })
		if err := store.Save(ctx, tx, store.Favorites, favorites); err != nil {
			return err
		}

		ratings, err := store.Load[models.Rating](ctx, tx, store.Ratings)
		if err != nil {
			return err
		}
		ratings = slices.DeleteFunc(ratings, func(r models.Rating) bool { return r.UserID == id })
		return store.Save(ctx, tx, store.Ratings, ratings)
	})
	if err != nil {
		return apperr.OrInternal(err, "Failed to delete user")
	}
	return s.sessions.RevokeAccount(ctx, sessionKey)
}

// UpdateProfile replaces the caller's profile fields. Only the owner may edit a profile.
func (s *Service) UpdateProfile(ctx context.Context, caller auth.Identity, id int, p Profile) (models.PublicUser, error) {
	if caller.ID != id {
		return models.PublicUser{}, apperr.New(apperr.Forbidden, "Can only update your own profile")
	}

	var updated models.User
	err := s.updateUser(ctx, id, func(u *models.User) error {
		u.Avatar = p.Avatar
		u.AvatarURL = p.AvatarURL
		u.Banner = p.Banner
		u.Bio = p.Bio
		u.Theme = p.Theme
		updated = *u
		return nil
	})
	if err != nil {
		return models.PublicUser{}, apperr.OrInternal(err, "Failed to update profile")
	}
	return updated.Public(), nil
}

func (s *Service) updateUser(ctx context.Context, id int, mutate func(*models.User) error) error {
	return store.Atomic(ctx, s.store, func(tx store.Store) error {
		users, err := store.Load[models.User](ctx, tx, store.Users)
		if err != nil {
			return err
		}
		i := indexByID(users, id)
		if i < 0 {
			return apperr.New(apperr.NotFound, "User not found")
		}
		if err := mutate(&users[i]); err != nil {
			return err
		}
		return store.Save(ctx, tx, store.Users, users)
	})
}

func (s *Service) newSession(u models.User) (*Session, error) {
	token, err := s.sessions.Issue(u)
	if err != nil {
		return nil, err
	}
	return &Session{User: u.Public(), Token: token}, nil
}

func findByUsername(users []models.User, username string) (models.User, bool) {
	for _, u := range users {
		if u.Username == username {
			return u, true
		}
	}
	return models.User{}, false
}

func indexByID(users []models.User, id int) int {
	for i, u := range users {
		if u.ID == id {
			return i
		}
	}
	return -1
}
