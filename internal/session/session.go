// Package session holds the server-side browser session: the token pair issued
// by the login service, the resolved user id, and the small UI state the
// front-end used to keep in local storage.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned by Store.Load for unknown or expired sessions.
var ErrNotFound = errors.New("session not found")

// Tokens is the credential pair stored for a session.
type Tokens struct {
	Access  string `json:"accessToken"`
	Refresh string `json:"refreshToken"`
}

func (t Tokens) Empty() bool {
	return t.Access == "" && t.Refresh == ""
}

// ReloadFlag is a one-shot marker telling the next dashboard render to open a dialog.
type ReloadFlag string

const (
	ReloadOpenViewCard    ReloadFlag = "reLoadOpenViewCard"
	ReloadOpenAskYourCard ReloadFlag = "reLoadOpenAskYourCard"
)

type Session struct {
	AccessToken           string    `json:"accessToken,omitempty"           bson:"accessToken,omitempty"`
	RefreshToken          string    `json:"refreshToken,omitempty"          bson:"refreshToken,omitempty"`
	UserID                string    `json:"userId,omitempty"                bson:"userId,omitempty"`
	Theme                 string    `json:"theme,omitempty"                 bson:"theme,omitempty"`
	ReloadOpenViewCard    bool      `json:"reLoadOpenViewCard,omitempty"    bson:"reLoadOpenViewCard,omitempty"`
	ReloadOpenAskYourCard bool      `json:"reLoadOpenAskYourCard,omitempty" bson:"reLoadOpenAskYourCard,omitempty"`
	UpdatedAt             time.Time `json:"updatedAt"                       bson:"updatedAt"`
}

func (s *Session) Tokens() Tokens {
	return Tokens{Access: s.AccessToken, Refresh: s.RefreshToken}
}

func (s *Session) clone() *Session {
	c := *s
	return &c
}

// Store persists sessions by id. Implementations must be safe for concurrent use.
type Store interface {
	Load(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, id string, s *Session) error
	Delete(ctx context.Context, id string) error
}

// NewID returns a fresh random session id.
func NewID() string {
	return uuid.NewString()
}

// ValidID reports whether id looks like one produced by NewID.
func ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
