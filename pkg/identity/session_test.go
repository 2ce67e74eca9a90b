package identity_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/illmade-knight/place-map/pkg/identity"
)

type fakeProvider struct {
	users   map[string]string
	signErr error
}

func (f *fakeProvider) SignIn(_ context.Context, email, password string) (identity.User, error) {
	if f.signErr != nil {
		return identity.User{}, f.signErr
	}
	if f.users[email] != password {
		return identity.User{}, errors.New("bad credentials")
	}
	return identity.User{ID: "id-" + email, Email: email}, nil
}

func (f *fakeProvider) SignUp(_ context.Context, email, password string) (identity.User, error) {
	f.users[email] = password
	return identity.User{ID: "id-" + email, Email: email}, nil
}

func (f *fakeProvider) SignOut(_ context.Context) error {
	return f.signErr
}

func newTestSession() (*identity.Session, *fakeProvider) {
	provider := &fakeProvider{users: map[string]string{"ada@example.com": "pw"}}
	return identity.NewSession(provider, zerolog.Nop()), provider
}

func TestSession_SignInAndOut(t *testing.T) {
	ctx := context.Background()
	session, _ := newTestSession()

	var changes []*identity.User
	session.Changes().Subscribe(func(u *identity.User) { changes = append(changes, u) })

	user, err := session.SignIn(ctx, "ada@example.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", user.Email)
	require.NotNil(t, session.CurrentUser())
	assert.Equal(t, user.ID, session.CurrentUser().ID)

	require.NoError(t, session.SignOut(ctx))
	assert.Nil(t, session.CurrentUser())

	// One event per transition: the signed-in user, then nil.
	require.Len(t, changes, 2)
	assert.Equal(t, user.ID, changes[0].ID)
	assert.Nil(t, changes[1])
}

func TestSession_SignInFailure(t *testing.T) {
	session, _ := newTestSession()

	var changes int
	session.Changes().Subscribe(func(*identity.User) { changes++ })

	_, err := session.SignIn(context.Background(), "ada@example.com", "wrong")

	require.Error(t, err)
	assert.Nil(t, session.CurrentUser())
	assert.Zero(t, changes)
}

func TestSession_SignUp(t *testing.T) {
	session, provider := newTestSession()

	user, err := session.SignUp(context.Background(), "new@example.com", "secret")

	require.NoError(t, err)
	assert.Equal(t, "new@example.com", user.Email)
	assert.Equal(t, "secret", provider.users["new@example.com"])
	require.NotNil(t, session.CurrentUser())
}

func TestSession_SignOutFailureKeepsSession(t *testing.T) {
	ctx := context.Background()
	session, provider := newTestSession()
	_, err := session.SignIn(ctx, "ada@example.com", "pw")
	require.NoError(t, err)

	provider.signErr = errors.New("provider down")
	require.Error(t, session.SignOut(ctx))
	assert.NotNil(t, session.CurrentUser())
}
