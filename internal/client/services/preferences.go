package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/hustleadmin/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/hustleadmin/internal/common"
	"github.com/dmitrijs2005/hustleadmin/internal/dbx"
)

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

var ErrInvalidTheme = errors.New("theme must be light or dark")

func ParseTheme(s string) (Theme, error) {
	switch Theme(s) {
	case ThemeLight, ThemeDark:
		return Theme(s), nil
	}
	return "", fmt.Errorf("%w: got %q", ErrInvalidTheme, s)
}

// StoredState is everything the console persists between runs.
type StoredState struct {
	Token string
	Theme Theme
}

// Preferences persists the bearer token and the theme in the local store.
// It is the TokenStore of the session manager and the TokenSource of the
// API client, so every request reads the token from storage.
type Preferences struct {
	db   *sql.DB
	repo metadata.Repository
}

func NewPreferences(db *sql.DB) *Preferences {
	return &Preferences{db: db, repo: metadata.NewSQLiteRepository(db)}
}

// Token returns the stored token or "" when there is none.
func (p *Preferences) Token(ctx context.Context) (string, error) {
	v, err := p.repo.Get(ctx, common.TokenStorageKey)
	if err != nil {
		return "", fmt.Errorf("read token: %w", err)
	}
	return string(v), nil
}

func (p *Preferences) SaveToken(ctx context.Context, token string) error {
	if token == "" {
		return fmt.Errorf("%w: empty token", common.ErrInvalidToken)
	}
	return p.repo.Set(ctx, common.TokenStorageKey, []byte(token))
}

// ClearToken removes the stored token; clearing a missing token succeeds.
func (p *Preferences) ClearToken(ctx context.Context) error {
	return p.repo.Delete(ctx, common.TokenStorageKey)
}

// Theme returns the stored theme, light when unset or unreadable.
func (p *Preferences) Theme(ctx context.Context) (Theme, error) {
	v, err := p.repo.Get(ctx, common.ThemeStorageKey)
	if err != nil {
		return ThemeLight, fmt.Errorf("read theme: %w", err)
	}
	t, err := ParseTheme(string(v))
	if err != nil {
		return ThemeLight, nil
	}
	return t, nil
}

func (p *Preferences) SetTheme(ctx context.Context, t Theme) error {
	if _, err := ParseTheme(string(t)); err != nil {
		return err
	}
	return p.repo.Set(ctx, common.ThemeStorageKey, []byte(t))
}

// Load reads token and theme in one transaction.
func (p *Preferences) Load(ctx context.Context) (StoredState, error) {
	st := StoredState{Theme: ThemeLight}
	err := dbx.WithTx(ctx, p.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)

		token, err := repo.Get(ctx, common.TokenStorageKey)
		if err != nil {
			return err
		}
		theme, err := repo.Get(ctx, common.ThemeStorageKey)
		if err != nil {
			return err
		}

		st.Token = string(token)
		if t, err := ParseTheme(string(theme)); err == nil {
			st.Theme = t
		}
		return nil
	})
	if err != nil {
		return StoredState{}, fmt.Errorf("load preferences: %w", err)
	}
	return st, nil
}

// Reset forgets everything the console stored.
func (p *Preferences) Reset(ctx context.Context) error {
	return dbx.WithTx(ctx, p.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return metadata.NewSQLiteRepository(tx).Clear(ctx)
	})
}
