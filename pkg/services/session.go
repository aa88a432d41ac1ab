/*
 * Copyright (c) Cubewise CODE GmbH.
 */

package services

import (
	"context"
	"fmt"

	"github.com/cubewise-code/tm1go/pkg/objects"
	"github.com/cubewise-code/tm1go/pkg/rest"
	"github.com/pkg/errors"
)

// Session is one open connection on the server
type Session struct {
	ID       int
	UserName string
	Context  string
}

// SessionService inspects and closes server sessions
type SessionService struct {
	ObjectService
}

// NewSessionService creates the service on a shared session
func NewSessionService(client *rest.Client) *SessionService {
	return &SessionService{ObjectService: NewObjectService(client)}
}

type rawSession struct {
	ID      int    `json:"ID"`
	Context string `json:"Context"`
	User    *struct {
		Name string `json:"Name"`
	} `json:"User"`
}

func (raw rawSession) toSession() Session {
	session := Session{ID: raw.ID, Context: raw.Context}
	if raw.User != nil {
		session.UserName = raw.User.Name
	}
	return session
}

// GetAll lists the open sessions. Requires admin permissions.
func (s *SessionService) GetAll(ctx context.Context) ([]Session, error) {
	if err := s.rest.RequireAdmin(ctx, "GetAll"); err != nil {
		return nil, err
	}
	resp, err := s.rest.GET(ctx, "/Sessions?$expand=User($select=Name)")
	if err != nil {
		return nil, err
	}
	var payload struct {
		Value []rawSession `json:"value"`
	}
	if err := resp.JSON(&payload); err != nil {
		return nil, errors.Wrap(err, "decoding sessions")
	}
	sessions := make([]Session, 0, len(payload.Value))
	for _, raw := range payload.Value {
		sessions = append(sessions, raw.toSession())
	}
	return sessions, nil
}

// GetCurrent reads the session owning this connection
func (s *SessionService) GetCurrent(ctx context.Context) (*Session, error) {
	resp, err := s.rest.GET(ctx, "/ActiveSession?$expand=User($select=Name)")
	if err != nil {
		return nil, err
	}
	var raw rawSession
	if err := resp.JSON(&raw); err != nil {
		return nil, errors.Wrap(err, "decoding active session")
	}
	session := raw.toSession()
	return &session, nil
}

// Close terminates another session. Requires admin permissions.
func (s *SessionService) Close(ctx context.Context, sessionID int) error {
	if err := s.rest.RequireAdmin(ctx, "Close"); err != nil {
		return err
	}
	url := fmt.Sprintf("/Sessions(%d)/tm1.Close", sessionID)
	_, err := s.rest.POST(ctx, url, "")
	return err
}

// CloseAll terminates every session owned by another user and returns the
// sessions it closed. System sessions without a user are left alone.
func (s *SessionService) CloseAll(ctx context.Context) ([]Session, error) {
	if err := s.rest.RequireAdmin(ctx, "CloseAll"); err != nil {
		return nil, err
	}
	current, err := s.GetCurrent(ctx)
	if err != nil {
		return nil, err
	}
	sessions, err := s.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	var closed []Session
	for _, session := range sessions {
		if session.UserName == "" {
			continue
		}
		if objects.NamesEqual(session.UserName, current.UserName) {
			continue
		}
		if err := s.Close(ctx, session.ID); err != nil {
			return closed, err
		}
		closed = append(closed, session)
	}
	return closed, nil
}
