package reconcile

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"

	"github.com/osse101/TheDigger_Go/internal/domain"
	"github.com/osse101/TheDigger_Go/internal/kvstore"
	"github.com/osse101/TheDigger_Go/internal/logger"
)

var nameCharset = regexp.MustCompile(`^[A-Za-z0-9 _-]+$`)

var folder = cases.Fold()

// ValidateName trims raw and checks the registry rules, returning the
// canonical spelling.
func ValidateName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	n := utf8.RuneCountInString(name)
	if n < MinNameLength || n > MaxNameLength || !nameCharset.MatchString(name) {
		return "", domain.ErrInvalidName
	}
	return name, nil
}

// FoldName is the case-insensitive registry key for a valid name.
func FoldName(name string) string {
	return folder.String(name)
}

// RegisterName reserves requested for the caller. Registering a name the
// caller already owns succeeds and returns the stored spelling.
func (s *Service) RegisterName(ctx context.Context, id domain.Identity, requested string) (string, error) {
	name, err := ValidateName(requested)
	if err != nil {
		return "", err
	}
	canonical, err := s.claimName(ctx, id.PlayerID, name)
	if err != nil {
		return "", err
	}
	logger.FromContext(ctx).Info(LogMsgNameRegistered, logger.AttrKeyPlayerID, id.PlayerID, "name", canonical)
	return canonical, nil
}

// claimName atomically reserves a validated name for playerID.
func (s *Service) claimName(ctx context.Context, playerID, name string) (string, error) {
	folded := FoldName(name)

	won, err := s.store.HSetNX(ctx, s.keys.nameOwner(), folded, playerID)
	if err != nil {
		return "", fmt.Errorf(ErrMsgRegisterName, err)
	}
	if won {
		if err := s.store.HSet(ctx, s.keys.nameIndex(), folded, name); err != nil {
			return "", fmt.Errorf(ErrMsgRegisterName, err)
		}
		return name, nil
	}

	owner, err := s.store.HGet(ctx, s.keys.nameOwner(), folded)
	if err != nil {
		return "", fmt.Errorf(ErrMsgLookupName, err)
	}
	if owner != playerID {
		return "", domain.ErrNameTaken
	}
	return s.canonicalName(ctx, folded, name)
}

// nameAvailable reports whether playerID could claim name without error.
func (s *Service) nameAvailable(ctx context.Context, playerID, name string) (bool, error) {
	owner, err := s.store.HGet(ctx, s.keys.nameOwner(), FoldName(name))
	if errors.Is(err, kvstore.ErrNotFound) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf(ErrMsgLookupName, err)
	}
	return owner == playerID, nil
}

func (s *Service) canonicalName(ctx context.Context, folded, fallback string) (string, error) {
	stored, err := s.store.HGet(ctx, s.keys.nameIndex(), folded)
	if errors.Is(err, kvstore.ErrNotFound) {
		return fallback, nil
	}
	if err != nil {
		return "", fmt.Errorf(ErrMsgLookupName, err)
	}
	return stored, nil
}
