package service

import (
	stderrors "errors"
	"html"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/devbook-dev/devbook/shared/api"
	"github.com/devbook-dev/devbook/shared/config"
	"github.com/devbook-dev/devbook/shared/domain"
	"github.com/devbook-dev/devbook/shared/errors"
	"github.com/devbook-dev/devbook/shared/logger"
	"github.com/devbook-dev/devbook/shared/middleware/metrics"
	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/crypto/bcrypt"
)

type UserService interface {
	Create(req api.CreateUserRequest) (domain.User, error)
	User(id domain.UserId) (domain.User, error)
	Search(filter string) ([]domain.User, error)
	Update(actor, id domain.UserId, req api.UpdateUserRequest) error
	Delete(actor, id domain.UserId) error
	Follow(actor, id domain.UserId) error
	Unfollow(actor, id domain.UserId) error
	Followers(id domain.UserId) ([]domain.User, error)
	Following(id domain.UserId) ([]domain.User, error)
	UpdatePassword(actor, id domain.UserId, req api.UpdatePasswordRequest) error
}

type UserStorage interface {
	SaveUser(user domain.User) (domain.User, error)
	User(id domain.UserId) (domain.User, error)
	UserByEmail(email string) (domain.User, error)
	SearchUsers(filter string) ([]domain.User, error)
	UpdateUser(user domain.User) error
	DeleteUser(id domain.UserId) error
	UpdatePassword(id domain.UserId, passHash string) error
	Follow(userId, followerId domain.UserId) error
	Unfollow(userId, followerId domain.UserId) error
	Followers(userId domain.UserId) ([]domain.User, error)
	Following(followerId domain.UserId) ([]domain.User, error)
}

type Users struct {
	storage  UserStorage
	cfg      *config.Public
	validate *validator.Validate
	strip    *bluemonday.Policy
}

func NewUsers(storage UserStorage, cfg *config.Public) *Users {
	return &Users{
		storage:  storage,
		cfg:      cfg,
		validate: validator.New(),
		strip:    bluemonday.StrictPolicy(),
	}
}

// profile is the part of a user both signup and edit validate.
// Tags are checked after markup and spaces are stripped.
type profile struct {
	Name  string `validate:"required"`
	Nick  string `validate:"required"`
	Email string `validate:"required,email"`
}

// Create validates and normalises the request, hashes the password and stores the user.
func (u *Users) Create(req api.CreateUserRequest) (domain.User, error) {
	p, err := u.prepare(profile{Name: req.Name, Nick: req.Nick, Email: req.Email})
	if err != nil {
		return domain.User{}, err
	}
	if err := u.validate.Var(req.Password, "required"); err != nil {
		return domain.User{}, badRequest("Password can't be empty")
	}

	passHash, err := hashPassword(req.Password)
	if err != nil {
		return domain.User{}, err
	}

	user, err := u.storage.SaveUser(domain.User{
		Name:     p.Name,
		Nick:     p.Nick,
		Email:    p.Email,
		PassHash: passHash,
	})
	if err != nil {
		return domain.User{}, err
	}

	metrics.UsersCreated.Inc()
	logger.Log.Info("user created", "user_id", user.Id)
	return user, nil
}

func (u *Users) User(id domain.UserId) (domain.User, error) {
	return u.storage.User(id)
}

func (u *Users) Search(filter string) ([]domain.User, error) {
	return u.storage.SearchUsers(strings.TrimSpace(filter))
}

// Update lets a user change their own profile.
func (u *Users) Update(actor, id domain.UserId, req api.UpdateUserRequest) error {
	if actor != id {
		return forbidden("You can only update your own account")
	}
	p, err := u.prepare(profile{Name: req.Name, Nick: req.Nick, Email: req.Email})
	if err != nil {
		return err
	}
	return u.storage.UpdateUser(domain.User{Id: id, Name: p.Name, Nick: p.Nick, Email: p.Email})
}

// Delete lets a user remove their own account.
func (u *Users) Delete(actor, id domain.UserId) error {
	if actor != id {
		return forbidden("You can only delete your own account")
	}
	return u.storage.DeleteUser(id)
}

// Follow makes actor a follower of id. Following twice is a no-op.
func (u *Users) Follow(actor, id domain.UserId) error {
	if actor == id {
		return forbidden("Impossible to follow yourself")
	}
	return u.storage.Follow(id, actor)
}

// Unfollow removes actor from the followers of id. Unfollowing someone not followed is a no-op.
func (u *Users) Unfollow(actor, id domain.UserId) error {
	if actor == id {
		return forbidden("Impossible to unfollow yourself")
	}
	return u.storage.Unfollow(id, actor)
}

// Followers lists who follows id.
func (u *Users) Followers(id domain.UserId) ([]domain.User, error) {
	if _, err := u.storage.User(id); err != nil {
		return nil, err
	}
	return u.storage.Followers(id)
}

// Following lists whom id follows.
func (u *Users) Following(id domain.UserId) ([]domain.User, error) {
	if _, err := u.storage.User(id); err != nil {
		return nil, err
	}
	return u.storage.Following(id)
}

// UpdatePassword replaces the password of actor's own account once the current one is confirmed.
func (u *Users) UpdatePassword(actor, id domain.UserId, req api.UpdatePasswordRequest) error {
	if actor != id {
		return forbidden("You can only change your own password")
	}
	if err := u.validate.Var(req.New, "required"); err != nil {
		return badRequest("New password can't be empty")
	}

	user, err := u.storage.User(id)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PassHash), []byte(req.Current)); err != nil {
		return &errors.ErrorWithStatusCode{Message: "The current password is wrong", StatusCode: http.StatusUnauthorized}
	}

	passHash, err := hashPassword(req.New)
	if err != nil {
		return err
	}
	if err := u.storage.UpdatePassword(id, passHash); err != nil {
		return err
	}
	logger.Log.Info("password changed", "user_id", id)
	return nil
}

// prepare strips markup and surrounding spaces, lowercases the email and then validates.
func (u *Users) prepare(p profile) (profile, error) {
	p = profile{
		Name:  plainText(u.strip, p.Name),
		Nick:  plainText(u.strip, p.Nick),
		Email: strings.ToLower(strings.TrimSpace(p.Email)),
	}

	if err := u.validate.Struct(p); err != nil {
		return profile{}, profileError(err)
	}
	if u.cfg.NameMaxLen > 0 && utf8.RuneCountInString(p.Name) > u.cfg.NameMaxLen {
		return profile{}, badRequest("Name is too long")
	}
	if u.cfg.NickMaxLen > 0 && utf8.RuneCountInString(p.Nick) > u.cfg.NickMaxLen {
		return profile{}, badRequest("Nick is too long")
	}
	return p, nil
}

// profileError turns the first failed tag into a message for the client.
func profileError(err error) error {
	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]
	if fe.Tag() == "required" {
		return badRequest(fe.Field() + " can't be empty")
	}
	return badRequest("Invalid " + strings.ToLower(fe.Field()) + " format")
}

// plainText drops any HTML. Entities are decoded back since output is escaped at render time.
func plainText(policy *bluemonday.Policy, s string) string {
	return strings.TrimSpace(html.UnescapeString(policy.Sanitize(s)))
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func badRequest(msg string) error {
	return &errors.ErrorWithStatusCode{Message: msg, StatusCode: http.StatusBadRequest}
}

func forbidden(msg string) error {
	return &errors.ErrorWithStatusCode{Message: msg, StatusCode: http.StatusForbidden}
}
