package service

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"strings"
	"time"

	"eureka/internal/auth"
	"eureka/internal/i18n"
	"eureka/internal/mail"
	"eureka/internal/model"
	"eureka/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type AuthConfig struct {
	OTPLength       int
	OTPTTL          time.Duration
	ResetTokenTTL   time.Duration
	ResetLinkFormat string
}

// Session is what a successful sign-in hands back to the client.
type Session struct {
	Token string
	User  *model.User
}

type SignUpRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type OTPConfirmationRequest struct {
	SessionID string `json:"sessionId" validate:"required"`
	OTP       string `json:"otp" validate:"required"`
}

type CompleteProfileRequest struct {
	SessionID string `json:"sessionId" validate:"required"`
	FullName  string `json:"fullName" validate:"required"`
	Password  string `json:"password" validate:"required,min=8"`
}

type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type GoogleSignInRequest struct {
	Token string `json:"token" validate:"required"`
}

type AuthService struct {
	store  *repository.Store
	tokens TokenIssuer
	mailer Mailer
	google GoogleVerifier
	cfg    AuthConfig
	now    func() time.Time
}

func NewAuthService(store *repository.Store, tokens TokenIssuer, mailer Mailer, google GoogleVerifier, cfg AuthConfig) *AuthService {
	return &AuthService{store: store, tokens: tokens, mailer: mailer, google: google, cfg: cfg, now: time.Now}
}

// SignUpWithEmail registers an inactive user and mails a one-time code. The
// returned session id is used to confirm the code and complete the profile.
func (s *AuthService) SignUpWithEmail(ctx context.Context, req SignUpRequest) (uuid.UUID, error) {
	req.Email = normalizeEmail(req.Email)
	if err := validateRequest(req); err != nil {
		return uuid.Nil, err
	}
	email := req.Email

	var sessionID uuid.UUID
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		existing, err := tx.Users.FindByEmail(ctx, email)
		if err != nil {
			return err
		}
		if existing != nil {
			return fail(ErrConflict, "auth.sign_up.email.exist", nil)
		}

		now := s.now().UTC()
		user := &model.User{
			ID:           uuid.New(),
			Email:        email,
			AuthProvider: model.AuthProviderBasic,
			Status:       model.UserStatusInactive,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := tx.Users.Create(ctx, user); err != nil {
			return err
		}

		otp, err := auth.GenerateOTP(s.cfg.OTPLength)
		if err != nil {
			return err
		}
		verification := &model.UserVerification{
			ID:        uuid.New(),
			UserID:    user.ID,
			Token:     otp,
			Type:      model.VerificationOTP,
			ExpiresAt: now.Add(s.cfg.OTPTTL),
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := tx.Verifications.Create(ctx, verification); err != nil {
			return err
		}

		// mailing last: a delivery failure rolls the registration back
		err = s.mailer.Send(ctx, email, i18n.T("auth.send_otp.subject"), mail.TemplateOTP, mail.OTPData{
			OTP:       otp,
			ExpiresIn: s.cfg.OTPTTL.String(),
		})
		if err != nil {
			return fail(ErrStorage, "auth.mail.failed", err)
		}

		sessionID = verification.ID
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return sessionID, nil
}

// ConfirmOTP activates the user behind a sign-up session.
func (s *AuthService) ConfirmOTP(ctx context.Context, req OTPConfirmationRequest) (uuid.UUID, error) {
	if err := validateRequest(req); err != nil {
		return uuid.Nil, err
	}
	sessionID, ok := parseOptionalID(&req.SessionID)
	if !ok {
		return uuid.Nil, fail(ErrNotFound, "auth.sign_up.otp.failed", nil)
	}

	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		verification, err := tx.Verifications.GetByID(ctx, sessionID)
		if errors.Is(err, repository.ErrVerificationNotFound) {
			return fail(ErrNotFound, "auth.sign_up.otp.failed", err)
		}
		if err != nil {
			return err
		}
		if verification.Type != model.VerificationOTP || verification.User == nil {
			return fail(ErrNotFound, "auth.sign_up.otp.failed", nil)
		}
		if verification.Token != req.OTP || verification.Expired(s.now()) {
			return fail(ErrValidation, "auth.sign_up.otp.failed", nil)
		}

		user := verification.User
		user.Status = model.UserStatusActive
		user.UpdatedAt = s.now().UTC()
		return tx.Users.Update(ctx, user)
	})
	if err != nil {
		return uuid.Nil, err
	}
	return sessionID, nil
}

// CompleteProfile sets the name and password of a confirmed sign-up and
// signs the user in. The session cannot be used again afterwards.
func (s *AuthService) CompleteProfile(ctx context.Context, req CompleteProfileRequest) (*Session, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	sessionID, ok := parseOptionalID(&req.SessionID)
	if !ok {
		return nil, fail(ErrUnauthorized, "auth.session.not.valid", nil)
	}

	var userID uuid.UUID
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		verification, err := tx.Verifications.GetByID(ctx, sessionID)
		if errors.Is(err, repository.ErrVerificationNotFound) {
			return fail(ErrUnauthorized, "auth.session.not.valid", err)
		}
		if err != nil {
			return err
		}
		user := verification.User
		if verification.Type != model.VerificationOTP || user == nil || user.Status != model.UserStatusActive {
			return fail(ErrUnauthorized, "auth.session.not.valid", nil)
		}

		if err := tx.Users.UpsertProfile(ctx, user.ID, model.ProfileFullName, req.FullName); err != nil {
			return err
		}
		hashed, err := hashPassword(req.Password)
		if err != nil {
			return err
		}
		user.HashedPassword = hashed
		user.UpdatedAt = s.now().UTC()
		if err := tx.Users.Update(ctx, user); err != nil {
			return err
		}

		userID = user.ID
		return tx.Verifications.Delete(ctx, verification.ID)
	})
	if err != nil {
		return nil, err
	}
	return s.session(ctx, userID)
}

func (s *AuthService) SignIn(ctx context.Context, req SignInRequest) (*Session, error) {
	req.Email = normalizeEmail(req.Email)
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	user, err := s.store.Users.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if user == nil || user.HashedPassword == "" {
		return nil, fail(ErrUnauthorized, "auth.sign_in.invalid", nil)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(req.Password)); err != nil {
		return nil, fail(ErrUnauthorized, "auth.sign_in.invalid", nil)
	}
	if user.Status != model.UserStatusActive {
		return nil, fail(ErrForbidden, "auth.sign_in.inactive", nil)
	}

	return s.session(ctx, user.ID)
}

// SignInWithGoogle trusts a verified Google identity, registering the user
// on first sight.
func (s *AuthService) SignInWithGoogle(ctx context.Context, req GoogleSignInRequest) (*Session, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	identity, err := s.google.Verify(ctx, req.Token)
	if err != nil {
		return nil, fail(ErrUnauthorized, "auth.sign_in.google.invalid", err)
	}
	email := normalizeEmail(identity.Email)

	var userID uuid.UUID
	err = s.store.Transaction(ctx, func(tx *repository.Store) error {
		now := s.now().UTC()
		user, err := tx.Users.FindByEmail(ctx, email)
		if err != nil {
			return err
		}

		if user == nil {
			user = &model.User{
				ID:           uuid.New(),
				Email:        email,
				AuthProvider: model.AuthProviderGoogle,
				Status:       model.UserStatusActive,
				CreatedAt:    now,
				UpdatedAt:    now,
			}
			if err := tx.Users.Create(ctx, user); err != nil {
				return err
			}
			if identity.Name != "" {
				if err := tx.Users.UpsertProfile(ctx, user.ID, model.ProfileFullName, identity.Name); err != nil {
					return err
				}
			}
		} else if user.Status != model.UserStatusActive {
			// Google has verified the address, which is all the OTP step proves
			user.Status = model.UserStatusActive
			user.UpdatedAt = now
			if err := tx.Users.Update(ctx, user); err != nil {
				return err
			}
		}

		userID = user.ID
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.session(ctx, userID)
}

func (s *AuthService) session(ctx context.Context, userID uuid.UUID) (*Session, error) {
	user, err := s.store.Users.GetWithProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fail(ErrUnauthorized, "unauthorized", nil)
	}
	token, err := s.tokens.Generate(user.ID.String())
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}
	return &Session{Token: token, User: user}, nil
}

func hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func displayName(user *model.User) string {
	if name := user.Attributes()[model.ProfileFullName]; name != "" {
		return name
	}
	return user.Email
}

func resetLink(format, token string) template.URL {
	return template.URL(fmt.Sprintf(format, token))
}
