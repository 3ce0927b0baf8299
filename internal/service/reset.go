package service

import (
	"context"
	"errors"

	"eureka/internal/auth"
	"eureka/internal/i18n"
	"eureka/internal/mail"
	"eureka/internal/model"
	"eureka/internal/repository"

	"github.com/google/uuid"
)

type ResetPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetLinkConfirmationRequest struct {
	Token string `json:"token" validate:"required"`
}

type NewPasswordRequest struct {
	NewPassword string `json:"newPassword" validate:"required,min=8"`
}

// RequestPasswordReset mails the user a link carrying a fresh reset token.
func (s *AuthService) RequestPasswordReset(ctx context.Context, req ResetPasswordRequest) error {
	req.Email = normalizeEmail(req.Email)
	if err := validateRequest(req); err != nil {
		return err
	}

	return s.store.Transaction(ctx, func(tx *repository.Store) error {
		found, err := tx.Users.FindByEmail(ctx, req.Email)
		if err != nil {
			return err
		}
		if found == nil {
			return fail(ErrNotFound, "auth.user.not.exist", nil)
		}
		user, err := tx.Users.GetWithProfile(ctx, found.ID)
		if err != nil {
			return err
		}

		token, err := auth.GenerateResetToken()
		if err != nil {
			return err
		}
		now := s.now().UTC()
		if err := tx.Verifications.Create(ctx, &model.UserVerification{
			ID:        uuid.New(),
			UserID:    user.ID,
			Token:     token,
			Type:      model.VerificationReset,
			ExpiresAt: now.Add(s.cfg.ResetTokenTTL),
			CreatedAt: now,
			UpdatedAt: now,
		}); err != nil {
			return err
		}

		err = s.mailer.Send(ctx, user.Email, i18n.T("auth.request.reset.password.subject"), mail.TemplateResetPasswordRequest, mail.ResetRequestData{
			Name:      displayName(user),
			Link:      resetLink(s.cfg.ResetLinkFormat, token),
			ExpiresIn: s.cfg.ResetTokenTTL.String(),
		})
		if err != nil {
			return fail(ErrStorage, "auth.mail.failed", err)
		}
		return nil
	})
}

// ConfirmResetLink checks that a reset token is still usable and echoes it back.
func (s *AuthService) ConfirmResetLink(ctx context.Context, req ResetLinkConfirmationRequest) (string, error) {
	if err := validateRequest(req); err != nil {
		return "", err
	}
	verification, err := s.store.Verifications.FindByToken(ctx, req.Token, model.VerificationReset)
	if errors.Is(err, repository.ErrVerificationNotFound) {
		return "", fail(ErrValidation, "auth.token.invalid", err)
	}
	if err != nil {
		return "", err
	}
	if verification.Expired(s.now()) {
		return "", fail(ErrValidation, "auth.token.invalid", nil)
	}
	return req.Token, nil
}

// SetNewPassword consumes a reset token and replaces the user's password.
func (s *AuthService) SetNewPassword(ctx context.Context, token string, req NewPasswordRequest) error {
	if err := validateRequest(req); err != nil {
		return err
	}

	return s.store.Transaction(ctx, func(tx *repository.Store) error {
		verification, err := tx.Verifications.FindByToken(ctx, token, model.VerificationReset)
		if errors.Is(err, repository.ErrVerificationNotFound) {
			return fail(ErrNotFound, "auth.token.invalid", err)
		}
		if err != nil {
			return err
		}
		if verification.Expired(s.now()) || verification.User == nil {
			return fail(ErrValidation, "auth.token.invalid", nil)
		}

		user, err := tx.Users.GetWithProfile(ctx, verification.UserID)
		if err != nil {
			return err
		}
		if user == nil {
			return fail(ErrNotFound, "auth.user.not.exist", nil)
		}
		hashed, err := hashPassword(req.NewPassword)
		if err != nil {
			return err
		}
		user.HashedPassword = hashed
		user.UpdatedAt = s.now().UTC()
		if err := tx.Users.Update(ctx, user); err != nil {
			return err
		}

		err = s.mailer.Send(ctx, user.Email, i18n.T("auth.reset_password.subject"), mail.TemplateResetPasswordNotification, mail.ResetNotificationData{
			Name:  displayName(user),
			Email: user.Email,
		})
		if err != nil {
			return fail(ErrStorage, "auth.mail.failed", err)
		}
		return tx.Verifications.Delete(ctx, verification.ID)
	})
}
