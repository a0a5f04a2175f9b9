package auth

import (
	"context"

	"github.com/sirupsen/logrus"

	"task-manager/pkg/apperr"
	"task-manager/pkg/user"
)

// UserFinder looks users up by email.
type UserFinder interface {
	ByEmail(ctx context.Context, email string) (*user.User, error)
}

// Authenticator checks credentials and issues tokens.
type Authenticator struct {
	users  UserFinder
	hasher Hasher
	tokens *Tokens
	log    logrus.FieldLogger
}

func NewAuthenticator(users UserFinder, hasher Hasher, tokens *Tokens, log logrus.FieldLogger) *Authenticator {
	return &Authenticator{users: users, hasher: hasher, tokens: tokens, log: log}
}

// Login returns a bearer token for the user with this email and password.
// Unknown users and wrong passwords fail the same way.
func (a *Authenticator) Login(ctx context.Context, username, password string) (string, error) {
	u, err := a.users.ByEmail(ctx, username)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			a.log.WithField("username", username).Info("login rejected: unknown user")
			return "", apperr.Unauthorized("invalid credentials")
		}
		return "", err
	}
	if !a.hasher.Compare(u.PasswordDigest, password) {
		a.log.WithField("username", username).Info("login rejected: bad password")
		return "", apperr.Unauthorized("invalid credentials")
	}
	token, err := a.tokens.Issue(Principal{UserID: u.ID, Email: u.Email})
	if err != nil {
		return "", err
	}
	a.log.WithField("user_id", u.ID).Info("login")
	return token, nil
}
