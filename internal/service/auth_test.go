package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"eureka/internal/auth"
	"eureka/internal/mail"
	"eureka/internal/model"
	"eureka/internal/repository"
	"eureka/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var authConfig = service.AuthConfig{
	OTPLength:       6,
	OTPTTL:          10 * time.Minute,
	ResetTokenTTL:   time.Hour,
	ResetLinkFormat: "example://gawean/%s",
}

type authFixture struct {
	store  *repository.Store
	tokens *auth.TokenManager
	mailer *fakeMailer
	google *fakeVerifier
	svc    *service.AuthService
}

func newAuthFixture(t *testing.T, cfg service.AuthConfig) *authFixture {
	store, _ := newStore(t)
	f := &authFixture{
		store:  store,
		tokens: auth.NewTokenManager("test-secret", time.Hour),
		mailer: &fakeMailer{},
		google: &fakeVerifier{},
	}
	f.svc = service.NewAuthService(store, f.tokens, f.mailer, f.google, cfg)
	return f
}

// signUp runs the email flow up to a confirmed OTP and returns the session id.
func (f *authFixture) signUp(t *testing.T, email string) uuid.UUID {
	t.Helper()
	ctx := context.Background()
	sessionID, err := f.svc.SignUpWithEmail(ctx, service.SignUpRequest{Email: email})
	require.NoError(t, err)

	otp := f.mailer.last(t).Data.(mail.OTPData).OTP
	_, err = f.svc.ConfirmOTP(ctx, service.OTPConfirmationRequest{SessionID: sessionID.String(), OTP: otp})
	require.NoError(t, err)
	return sessionID
}

func TestAuthService_SignUpFlow(t *testing.T) {
	f := newAuthFixture(t, authConfig)
	ctx := context.Background()

	sessionID, err := f.svc.SignUpWithEmail(ctx, service.SignUpRequest{Email: " Jane@Example.com "})
	require.NoError(t, err)

	sent := f.mailer.last(t)
	assert.Equal(t, "jane@example.com", sent.To)
	assert.Equal(t, mail.TemplateOTP, sent.Template)
	otp := sent.Data.(mail.OTPData).OTP
	assert.Len(t, otp, 6)

	user, err := f.store.Users.FindByEmail(ctx, "jane@example.com")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, model.UserStatusInactive, user.Status)
	assert.Equal(t, model.AuthProviderBasic, user.AuthProvider)

	// profile cannot be completed before the code is confirmed
	_, err = f.svc.CompleteProfile(ctx, service.CompleteProfileRequest{SessionID: sessionID.String(), FullName: "Jane Doe", Password: "s3cretpass"})
	assert.ErrorIs(t, err, service.ErrUnauthorized)

	_, err = f.svc.ConfirmOTP(ctx, service.OTPConfirmationRequest{SessionID: sessionID.String(), OTP: otp})
	require.NoError(t, err)

	session, err := f.svc.CompleteProfile(ctx, service.CompleteProfileRequest{SessionID: sessionID.String(), FullName: "Jane Doe", Password: "s3cretpass"})
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", session.User.Attributes()[model.ProfileFullName])
	subject, err := f.tokens.Parse(session.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), subject)

	// the session is spent
	_, err = f.svc.CompleteProfile(ctx, service.CompleteProfileRequest{SessionID: sessionID.String(), FullName: "Jane Doe", Password: "s3cretpass"})
	assert.ErrorIs(t, err, service.ErrUnauthorized)

	signedIn, err := f.svc.SignIn(ctx, service.SignInRequest{Email: "jane@example.com", Password: "s3cretpass"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, signedIn.User.ID)
}

func TestAuthService_SignUp_DuplicateEmail(t *testing.T) {
	f := newAuthFixture(t, authConfig)
	createUser(t, f.store, "jane@example.com", model.UserStatusActive)

	_, err := f.svc.SignUpWithEmail(context.Background(), service.SignUpRequest{Email: "jane@example.com"})
	assert.ErrorIs(t, err, service.ErrConflict)
	assert.Empty(t, f.mailer.sent)
}

func TestAuthService_SignUp_InvalidEmail(t *testing.T) {
	f := newAuthFixture(t, authConfig)

	_, err := f.svc.SignUpWithEmail(context.Background(), service.SignUpRequest{Email: "not-an-email"})
	assert.ErrorIs(t, err, service.ErrValidation)
}

func TestAuthService_SignUp_MailFailureRollsBack(t *testing.T) {
	f := newAuthFixture(t, authConfig)
	f.mailer.err = errors.New("smtp down")

	_, err := f.svc.SignUpWithEmail(context.Background(), service.SignUpRequest{Email: "jane@example.com"})
	assert.ErrorIs(t, err, service.ErrStorage)

	user, err := f.store.Users.FindByEmail(context.Background(), "jane@example.com")
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestAuthService_ConfirmOTP_Failures(t *testing.T) {
	ctx := context.Background()

	f := newAuthFixture(t, authConfig)
	sessionID, err := f.svc.SignUpWithEmail(ctx, service.SignUpRequest{Email: "jane@example.com"})
	require.NoError(t, err)
	otp := f.mailer.last(t).Data.(mail.OTPData).OTP

	_, err = f.svc.ConfirmOTP(ctx, service.OTPConfirmationRequest{SessionID: sessionID.String(), OTP: wrongCode(otp)})
	assert.ErrorIs(t, err, service.ErrValidation)

	_, err = f.svc.ConfirmOTP(ctx, service.OTPConfirmationRequest{SessionID: uuid.NewString(), OTP: otp})
	assert.ErrorIs(t, err, service.ErrNotFound)

	expiredCfg := authConfig
	expiredCfg.OTPTTL = -time.Minute
	expired := newAuthFixture(t, expiredCfg)
	sessionID, err = expired.svc.SignUpWithEmail(ctx, service.SignUpRequest{Email: "jane@example.com"})
	require.NoError(t, err)
	_, err = expired.svc.ConfirmOTP(ctx, service.OTPConfirmationRequest{
		SessionID: sessionID.String(),
		OTP:       expired.mailer.last(t).Data.(mail.OTPData).OTP,
	})
	assert.ErrorIs(t, err, service.ErrValidation)
}

func wrongCode(otp string) string {
	if strings.HasPrefix(otp, "0") {
		return "1" + otp[1:]
	}
	return "0" + otp[1:]
}

func TestAuthService_SignIn_Failures(t *testing.T) {
	f := newAuthFixture(t, authConfig)
	ctx := context.Background()

	_, err := f.svc.SignIn(ctx, service.SignInRequest{Email: "nobody@example.com", Password: "whatever1"})
	assert.ErrorIs(t, err, service.ErrUnauthorized)

	// confirmed but never completed: no password yet
	f.signUp(t, "jane@example.com")
	_, err = f.svc.SignIn(ctx, service.SignInRequest{Email: "jane@example.com", Password: "whatever1"})
	assert.ErrorIs(t, err, service.ErrUnauthorized)

	sessionID, err := f.svc.SignUpWithEmail(ctx, service.SignUpRequest{Email: "late@example.com"})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, sessionID)
	user, err := f.store.Users.FindByEmail(ctx, "late@example.com")
	require.NoError(t, err)
	user.HashedPassword = mustHash(t, "s3cretpass")
	require.NoError(t, f.store.Users.Update(ctx, user))

	_, err = f.svc.SignIn(ctx, service.SignInRequest{Email: "late@example.com", Password: "wrongpass"})
	assert.ErrorIs(t, err, service.ErrUnauthorized)
	_, err = f.svc.SignIn(ctx, service.SignInRequest{Email: "late@example.com", Password: "s3cretpass"})
	assert.ErrorIs(t, err, service.ErrForbidden)
}

func TestAuthService_SignInWithGoogle(t *testing.T) {
	f := newAuthFixture(t, authConfig)
	f.google.identity = &auth.GoogleIdentity{Subject: "g-1", Email: "Jane@Example.com", Name: "Jane Doe"}
	ctx := context.Background()

	session, err := f.svc.SignInWithGoogle(ctx, service.GoogleSignInRequest{Token: "good-token"})
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", session.User.Email)
	assert.Equal(t, model.AuthProviderGoogle, session.User.AuthProvider)
	assert.Equal(t, model.UserStatusActive, session.User.Status)
	assert.Equal(t, "Jane Doe", session.User.Attributes()[model.ProfileFullName])

	again, err := f.svc.SignInWithGoogle(ctx, service.GoogleSignInRequest{Token: "good-token"})
	require.NoError(t, err)
	assert.Equal(t, session.User.ID, again.User.ID)

	_, err = f.svc.SignInWithGoogle(ctx, service.GoogleSignInRequest{Token: "forged"})
	assert.ErrorIs(t, err, service.ErrUnauthorized)
}

func TestAuthService_ResetPassword(t *testing.T) {
	f := newAuthFixture(t, authConfig)
	ctx := context.Background()
	sessionID := f.signUp(t, "jane@example.com")
	_, err := f.svc.CompleteProfile(ctx, service.CompleteProfileRequest{SessionID: sessionID.String(), FullName: "Jane Doe", Password: "oldpassword"})
	require.NoError(t, err)

	require.NoError(t, f.svc.RequestPasswordReset(ctx, service.ResetPasswordRequest{Email: "jane@example.com"}))
	sent := f.mailer.last(t)
	assert.Equal(t, mail.TemplateResetPasswordRequest, sent.Template)
	data := sent.Data.(mail.ResetRequestData)
	assert.Equal(t, "Jane Doe", data.Name)
	token := strings.TrimPrefix(string(data.Link), "example://gawean/")
	require.NotEqual(t, string(data.Link), token)

	confirmed, err := f.svc.ConfirmResetLink(ctx, service.ResetLinkConfirmationRequest{Token: token})
	require.NoError(t, err)
	assert.Equal(t, token, confirmed)

	require.NoError(t, f.svc.SetNewPassword(ctx, token, service.NewPasswordRequest{NewPassword: "newpassword"}))
	assert.Equal(t, mail.TemplateResetPasswordNotification, f.mailer.last(t).Template)

	_, err = f.svc.SignIn(ctx, service.SignInRequest{Email: "jane@example.com", Password: "oldpassword"})
	assert.ErrorIs(t, err, service.ErrUnauthorized)
	_, err = f.svc.SignIn(ctx, service.SignInRequest{Email: "jane@example.com", Password: "newpassword"})
	assert.NoError(t, err)

	// the token is single use
	_, err = f.svc.ConfirmResetLink(ctx, service.ResetLinkConfirmationRequest{Token: token})
	assert.ErrorIs(t, err, service.ErrValidation)
	err = f.svc.SetNewPassword(ctx, token, service.NewPasswordRequest{NewPassword: "anotherpass"})
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestAuthService_ResetPassword_UnknownUser(t *testing.T) {
	f := newAuthFixture(t, authConfig)

	err := f.svc.RequestPasswordReset(context.Background(), service.ResetPasswordRequest{Email: "nobody@example.com"})
	assert.ErrorIs(t, err, service.ErrNotFound)
	assert.Empty(t, f.mailer.sent)
}

func TestAuthService_ResetPassword_ExpiredToken(t *testing.T) {
	cfg := authConfig
	cfg.ResetTokenTTL = -time.Minute
	f := newAuthFixture(t, cfg)
	ctx := context.Background()
	createUser(t, f.store, "jane@example.com", model.UserStatusActive)

	require.NoError(t, f.svc.RequestPasswordReset(ctx, service.ResetPasswordRequest{Email: "jane@example.com"}))
	data := f.mailer.last(t).Data.(mail.ResetRequestData)
	assert.Equal(t, "jane@example.com", data.Name)
	token := strings.TrimPrefix(string(data.Link), "example://gawean/")

	_, err := f.svc.ConfirmResetLink(ctx, service.ResetLinkConfirmationRequest{Token: token})
	assert.ErrorIs(t, err, service.ErrValidation)
	err = f.svc.SetNewPassword(ctx, token, service.NewPasswordRequest{NewPassword: "newpassword"})
	assert.ErrorIs(t, err, service.ErrValidation)
}
