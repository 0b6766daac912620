package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/hustleadmin/internal/client/storage"
	"github.com/dmitrijs2005/hustleadmin/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPreferences(t *testing.T) *Preferences {
	t.Helper()
	db, err := storage.InitDatabase(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPreferences(db)
}

func TestPreferences_Token(t *testing.T) {
	ctx := context.Background()
	p := newPreferences(t)

	tok, err := p.Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, tok)

	require.NoError(t, p.SaveToken(ctx, "T"))
	tok, err = p.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "T", tok)

	require.ErrorIs(t, p.SaveToken(ctx, ""), common.ErrInvalidToken)

	for i := 0; i < 2; i++ {
		require.NoError(t, p.ClearToken(ctx))
		tok, err = p.Token(ctx)
		require.NoError(t, err)
		assert.Empty(t, tok)
	}
}

func TestPreferences_Theme(t *testing.T) {
	ctx := context.Background()
	p := newPreferences(t)

	th, err := p.Theme(ctx)
	require.NoError(t, err)
	assert.Equal(t, ThemeLight, th)

	require.NoError(t, p.SetTheme(ctx, ThemeDark))
	th, err = p.Theme(ctx)
	require.NoError(t, err)
	assert.Equal(t, ThemeDark, th)

	require.ErrorIs(t, p.SetTheme(ctx, "solarized"), ErrInvalidTheme)
}

func TestPreferences_LoadAndReset(t *testing.T) {
	ctx := context.Background()
	p := newPreferences(t)

	st, err := p.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, StoredState{Theme: ThemeLight}, st)

	require.NoError(t, p.SaveToken(ctx, "T"))
	require.NoError(t, p.SetTheme(ctx, ThemeDark))

	st, err = p.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, StoredState{Token: "T", Theme: ThemeDark}, st)

	require.NoError(t, p.Reset(ctx))
	st, err = p.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, StoredState{Theme: ThemeLight}, st)
}

func TestParseTheme(t *testing.T) {
	th, err := ParseTheme("dark")
	require.NoError(t, err)
	assert.Equal(t, ThemeDark, th)

	_, err = ParseTheme("")
	require.ErrorIs(t, err, ErrInvalidTheme)
}
