package service_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/sangkips/quotedesk-api/internal/application/service"
	"github.com/sangkips/quotedesk-api/internal/testutil"
	"github.com/sangkips/quotedesk-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterCreatesTenantWithOwner(t *testing.T) {
	s := newSuite(t)
	ctx := context.Background()

	out, err := s.auth.Register(ctx, &service.RegisterInput{
		BusinessName: "Sunrise Solar",
		Name:         "Asha",
		Email:        " Asha@Sunrise.example ",
		Password:     "s3cret-pass",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, out.AccessToken)
	assert.NotEmpty(t, out.RefreshToken)
	assert.Equal(t, "asha@sunrise.example", out.User.Email)
	assert.NotEqual(t, s.acme.Tenant.ID, out.User.TenantID)

	_, err = s.auth.Register(ctx, &service.RegisterInput{BusinessName: "Dup", Name: "A", Email: "asha@sunrise.example", Password: "another-pass"})
	requireStatus(t, err, http.StatusConflict)

	_, err = s.auth.Register(ctx, &service.RegisterInput{Email: "x@example.com", Password: "short"})
	appErr := requireStatus(t, err, http.StatusBadRequest)
	assert.Len(t, appErr.Errors, 3)
}

func TestLoginAndRefresh(t *testing.T) {
	s := newSuite(t)
	ctx := context.Background()

	_, err := s.auth.Login(ctx, &service.LoginInput{Email: s.acme.Owner.Email, Password: "wrong"})
	assert.ErrorIs(t, err, apperror.ErrInvalidCredentials)
	_, err = s.auth.Login(ctx, &service.LoginInput{Email: "nobody@example.com", Password: testutil.Password})
	assert.ErrorIs(t, err, apperror.ErrInvalidCredentials)

	out, err := s.auth.Login(ctx, &service.LoginInput{Email: s.acme.Owner.Email, Password: testutil.Password})
	require.NoError(t, err)
	assert.Equal(t, s.acme.Owner.ID, out.User.ID)

	refreshed, err := s.auth.RefreshToken(ctx, out.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	_, err = s.auth.RefreshToken(ctx, out.AccessToken)
	assert.ErrorIs(t, err, apperror.ErrInvalidToken)

	me, err := s.auth.GetCurrentUser(ctx, s.acme.Owner.ID)
	require.NoError(t, err)
	assert.NotNil(t, me.LastLoginAt)
}
