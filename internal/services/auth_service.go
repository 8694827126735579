package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"artspace/internal/api"
	"artspace/internal/domain"
	applog "artspace/internal/log"
	"artspace/internal/repos"
)

var ErrNotLoggedIn = errors.New("not logged in")

// MsgNoToken is shown when sign-in succeeds without issuing a token.
const MsgNoToken = "Login failed: no session token was issued"

type AuthService struct {
	API      *api.Client
	Sessions *repos.SessionRepo
	Now      func() time.Time
}

func NewAuthService(c *api.Client, sessions *repos.SessionRepo) *AuthService {
	return &AuthService{API: c, Sessions: sessions, Now: time.Now}
}

// Login signs in against the backend and, when a token comes back, keeps
// the full payload as the visitor's session. Backend messages are returned
// unchanged.
func (s *AuthService) Login(ctx context.Context, sid, username, password string) (*domain.Session, error) {
	var raw json.RawMessage
	err := s.API.Do(ctx, api.Call{
		Method: http.MethodPost,
		Path:   "/auth/signin",
		Body:   map[string]string{"username": username, "password": password},
		Out:    &raw,
	})
	if err != nil {
		return nil, err
	}
	var sess domain.Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return nil, &api.Error{Message: api.MsgMalformed}
	}
	if sess.Token == "" {
		return nil, &api.Error{Status: http.StatusOK, Message: MsgNoToken}
	}
	if err := s.Sessions.SaveRaw(ctx, sid, raw); err != nil {
		return nil, err
	}
	return &sess, nil
}

type Registration struct {
	Username string `validate:"required,username"`
	Email    string `validate:"required,email,max=50"`
	Password string `validate:"required,min=6,max=40"`
	Phone    string `validate:"omitempty,phone"`
}

// Register creates an account with the default user role. It does not sign in.
func (s *AuthService) Register(ctx context.Context, r Registration) error {
	return s.API.Do(ctx, api.Call{
		Method: http.MethodPost,
		Path:   "/auth/signup",
		Body: map[string]any{
			"username": r.Username,
			"email":    r.Email,
			"password": r.Password,
			"phone":    r.Phone,
			"roles":    []string{"user"},
		},
	})
}

// Logout forgets the session locally; the backend is not told.
func (s *AuthService) Logout(ctx context.Context, sid string) error {
	return s.Sessions.Clear(ctx, sid)
}

// CurrentUser returns nil without error when the visitor is signed out.
// Unreadable or expired records are dropped.
func (s *AuthService) CurrentUser(ctx context.Context, sid string) (*domain.Session, error) {
	if sid == "" {
		return nil, nil
	}
	sess, err := s.Sessions.Load(ctx, sid)
	if errors.Is(err, repos.ErrCorrupt) {
		applog.Error(nil, "session.decode.fail", err, nil)
		return nil, s.Sessions.Clear(ctx, sid)
	}
	if err != nil || sess == nil {
		return nil, err
	}
	if sess.Expired(s.Now()) {
		return nil, s.Sessions.Clear(ctx, sid)
	}
	return sess, nil
}
