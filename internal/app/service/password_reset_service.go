package service

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/dkim/authapi-backend/internal/app/model"
	"github.com/dkim/authapi-backend/internal/app/repository"
	"github.com/dkim/authapi-backend/internal/cache"
	"github.com/dkim/authapi-backend/pkg/logger"
	"github.com/dkim/authapi-backend/pkg/util"
	"gorm.io/gorm"
)

var ErrInvalidResetToken = errors.New("invalid or expired reset token")

// resetKeyPrefix namespaces reset tokens in the cache.
const resetKeyPrefix = "reset:"

// PasswordResetService manages single-use password reset tokens. A token
// moves from issued to redeemed exactly once; expiry is the cache TTL.
//
// RequestReset hands the token back to the caller instead of mailing it,
// which discloses it to whoever knows the email. Inherited behavior; do not
// ship to production as-is.
type PasswordResetService interface {
	RequestReset(ctx context.Context, email string) (string, error)
	IssueResetToken(ctx context.Context, userID uint) (string, error)
	RedeemResetToken(ctx context.Context, token string) (uint, error)
	ResetPassword(ctx context.Context, token, newPassword string) error
	TokenExpiry() time.Duration
}

type passwordResetService struct {
	tokenCache  cache.TokenCache
	userRepo    repository.UserRepository
	requestRepo repository.ResetRequestRepository
	tokenExpiry time.Duration
}

func NewPasswordResetService(
	tokenCache cache.TokenCache,
	userRepo repository.UserRepository,
	requestRepo repository.ResetRequestRepository,
	tokenExpiry time.Duration,
) PasswordResetService {
	return &passwordResetService{
		tokenCache:  tokenCache,
		userRepo:    userRepo,
		requestRepo: requestRepo,
		tokenExpiry: tokenExpiry,
	}
}

func (s *passwordResetService) TokenExpiry() time.Duration {
	return s.tokenExpiry
}

// RequestReset issues a reset token for the account behind email. An unknown
// email returns an empty token and no error, so callers can answer with the
// same success shape and not reveal which emails are registered.
func (s *passwordResetService) RequestReset(ctx context.Context, email string) (string, error) {
	email = NormalizeEmail(email)

	logger.Info("Processing password reset request", map[string]interface{}{
		"email": email,
	})

	audit := &model.PasswordResetRequest{Email: email}

	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Password reset requested for non-existent email", map[string]interface{}{
				"email": email,
			})
			s.recordRequest(audit)
			return "", nil
		}
		logger.Error("Failed to find user for password reset", err, map[string]interface{}{
			"email": email,
		})
		return "", err
	}

	audit.UserID = &user.ID
	s.recordRequest(audit)

	token, err := s.IssueResetToken(ctx, user.ID)
	if err != nil {
		return "", err
	}

	logger.Info("Password reset token issued", map[string]interface{}{
		"email":      email,
		"user_id":    user.ID,
		"expires_in": s.tokenExpiry.String(),
	})

	return token, nil
}

// IssueResetToken generates a random token and stores token -> userID in the
// cache with the configured TTL.
func (s *passwordResetService) IssueResetToken(ctx context.Context, userID uint) (string, error) {
	token, err := util.GenerateResetToken()
	if err != nil {
		logger.Error("Failed to generate reset token", err, map[string]interface{}{
			"user_id": userID,
		})
		return "", err
	}

	value := strconv.FormatUint(uint64(userID), 10)
	if err := s.tokenCache.SetWithTTL(ctx, resetKeyPrefix+token, value, s.tokenExpiry); err != nil {
		logger.Error("Failed to store reset token", err, map[string]interface{}{
			"user_id": userID,
		})
		return "", err
	}

	return token, nil
}

// RedeemResetToken atomically fetches and invalidates the token. Under
// concurrent redemption of the same token exactly one caller gets the user
// ID; the loser sees ErrInvalidResetToken, same as an expired or unknown
// token.
func (s *passwordResetService) RedeemResetToken(ctx context.Context, token string) (uint, error) {
	value, err := s.tokenCache.GetDel(ctx, resetKeyPrefix+token)
	if err != nil {
		if errors.Is(err, cache.ErrCacheMiss) {
			logger.Warn("Invalid or expired reset token presented", nil)
			return 0, ErrInvalidResetToken
		}
		logger.Error("Failed to redeem reset token", err, nil)
		return 0, err
	}

	userID, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		logger.Error("Reset token carried a malformed user ID", err, nil)
		return 0, ErrInvalidResetToken
	}

	return uint(userID), nil
}

func (s *passwordResetService) ResetPassword(ctx context.Context, token, newPassword string) error {
	logger.Info("Processing password reset with token")

	userID, err := s.RedeemResetToken(ctx, token)
	if err != nil {
		return err
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Token outlived the account.
			logger.Warn("Reset token referenced a missing user", map[string]interface{}{
				"user_id": userID,
			})
			return ErrInvalidResetToken
		}
		logger.Error("Failed to find user for password reset", err, map[string]interface{}{
			"user_id": userID,
		})
		return err
	}

	hashedPassword, err := util.HashPassword(newPassword)
	if err != nil {
		logger.Error("Failed to hash new password", err, map[string]interface{}{
			"user_id": user.ID,
		})
		return err
	}

	if err := s.userRepo.UpdatePassword(user.ID, hashedPassword); err != nil {
		logger.Error("Failed to update user password", err, map[string]interface{}{
			"user_id": user.ID,
		})
		return err
	}

	logger.Info("Password reset successful", map[string]interface{}{
		"user_id": user.ID,
	})

	return nil
}

// recordRequest writes the audit row. Failures are logged, not returned; the
// reset flow does not depend on the audit trail.
func (s *passwordResetService) recordRequest(audit *model.PasswordResetRequest) {
	if err := s.requestRepo.Create(audit); err != nil {
		logger.Error("Failed to record password reset request", err, map[string]interface{}{
			"email": audit.Email,
		})
	}
}
