package session

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
)

var ErrInvalidSession = errors.New("invalid session id")

// Service issues the anonymous ids a browser uses to address its cart.
type Service struct {
	newID func() (uuid.UUID, error)
}

func New() *Service {
	return &Service{newID: uuid.NewRandom}
}

func (s *Service) Issue(ctx context.Context) (string, error) {
	id, err := s.newID()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// Normalize validates raw and returns it in canonical lower-case form.
func (s *Service) Normalize(raw string) (string, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil || id.Version() != 4 {
		return "", ErrInvalidSession
	}
	return id.String(), nil
}
