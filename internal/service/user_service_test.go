package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"propertyhub/internal/domain"
)

func TestRegisterAndAuthenticate(t *testing.T) {
	svc := NewUserService(newTestRepos(t).users)
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterInput{
		Email:    "A@X.com",
		Password: "secret1",
		Name:     "A",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "a@x.com", user.Email, "emails are lower-cased at the boundary")
	assert.Equal(t, domain.RoleBuyer, user.Role, "role defaults to buyer")
	assert.Empty(t, user.PasswordHash, "hash never leaves the service")

	_, err = svc.Authenticate(ctx, "a@x.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	authed, err := svc.Authenticate(ctx, "a@X.COM", "secret1")
	require.NoError(t, err)
	assert.Equal(t, user.ID, authed.ID)
	assert.Empty(t, authed.PasswordHash)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := NewUserService(newTestRepos(t).users)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Email: "a@x.com", Password: "secret1", Name: "A"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, RegisterInput{Email: "A@x.com", Password: "other", Name: "B"})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegisterValidation(t *testing.T) {
	svc := NewUserService(newTestRepos(t).users)
	ctx := context.Background()

	cases := []struct {
		name string
		in   RegisterInput
	}{
		{"missing email", RegisterInput{Password: "secret1", Name: "A"}},
		{"missing password", RegisterInput{Email: "a@x.com", Name: "A"}},
		{"missing name", RegisterInput{Email: "a@x.com", Password: "secret1"}},
		{"unknown role", RegisterInput{Email: "a@x.com", Password: "secret1", Name: "A", Role: "admin"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tc.in)
			var vErr *ValidationError
			assert.ErrorAs(t, err, &vErr)
		})
	}
}

func TestAuthenticateUnknownEmail(t *testing.T) {
	svc := NewUserService(newTestRepos(t).users)

	// unknown email and wrong password are indistinguishable
	_, err := svc.Authenticate(context.Background(), "nobody@x.com", "secret1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
