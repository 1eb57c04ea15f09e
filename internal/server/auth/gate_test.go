package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/userkeeper/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeVerifier struct {
	identity *Identity
	err      error
	got      string
}

func (f *fakeVerifier) Verify(token string) (*Identity, error) {
	f.got = token
	return f.identity, f.err
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr error
	}{
		{name: "bearer", header: "Bearer abc.def.ghi", want: "abc.def.ghi"},
		{name: "lowercase scheme", header: "bearer tok", want: "tok"},
		{name: "surrounding spaces", header: "  Bearer   tok  ", want: "tok"},
		{name: "empty", header: "", wantErr: common.ErrMissingToken},
		{name: "scheme only", header: "Bearer", wantErr: common.ErrMissingToken},
		{name: "scheme and blank", header: "Bearer    ", wantErr: common.ErrMissingToken},
		{name: "bare token", header: "abc.def.ghi", wantErr: common.ErrMissingToken},
		{name: "other scheme", header: "Basic dXNlcjpwdw==", wantErr: common.ErrInvalidToken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BearerToken(tt.header)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGate_Check(t *testing.T) {
	t.Run("missing credential", func(t *testing.T) {
		v := &fakeVerifier{}
		d := NewGate(v).Check("")

		assert.Equal(t, StateRejected, d.State)
		assert.False(t, d.Allowed())
		assert.ErrorIs(t, d.Err, common.ErrMissingToken)
		assert.Nil(t, d.Identity)
		assert.Empty(t, v.got, "verifier must not run without a token")
	})

	t.Run("verifier rejects", func(t *testing.T) {
		v := &fakeVerifier{err: common.ErrInvalidToken}
		d := NewGate(v).Check("Bearer bad")

		assert.Equal(t, StateRejected, d.State)
		assert.ErrorIs(t, d.Err, common.ErrInvalidToken)
		assert.Equal(t, "bad", v.got)
	})

	t.Run("verifier accepts", func(t *testing.T) {
		id := &Identity{UserID: 1, Email: "admin@example.com"}
		d := NewGate(&fakeVerifier{identity: id}).Check("Bearer good")

		assert.Equal(t, StateAuthenticated, d.State)
		assert.True(t, d.Allowed())
		assert.NoError(t, d.Err)
		assert.Equal(t, id, d.Identity)
	})
}

func TestGate_WithTokenManager(t *testing.T) {
	m, err := NewTokenManager([]byte("secret"), time.Hour)
	require.NoError(t, err)
	gate := NewGate(m)

	tok, err := m.Issue(Identity{UserID: 5, Email: "e@x.com"})
	require.NoError(t, err)

	d := gate.Check("Bearer " + tok)
	require.True(t, d.Allowed())
	assert.Equal(t, int64(5), d.Identity.UserID)

	d = gate.Check("Bearer " + tok + "x")
	assert.Equal(t, StateRejected, d.State)
	assert.ErrorIs(t, d.Err, common.ErrInvalidToken)
}

func TestGateState_String(t *testing.T) {
	assert.Equal(t, "unauthenticated", StateUnauthenticated.String())
	assert.Equal(t, "authenticated", StateAuthenticated.String())
	assert.Equal(t, "rejected", StateRejected.String())
	var zero Decision
	assert.Equal(t, StateUnauthenticated, zero.State)
}
