package service

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"time"

	"pageturn/internal/apperr"
	"pageturn/internal/client"
	"pageturn/internal/dto"
	"pageturn/internal/metrics"
	"pageturn/internal/repository"
	"pageturn/internal/validation"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	OTPMin      = 100000
	OTPMax      = 999999
	OTPValidFor = 10 * time.Minute
)

// GenerateOTP draws a code uniformly from [OTPMin, OTPMax].
func GenerateOTP() (int, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(OTPMax-OTPMin+1))
	if err != nil {
		return 0, fmt.Errorf("generate otp: %w", err)
	}
	return OTPMin + int(n.Int64()), nil
}

type PasswordService interface {
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, req *dto.ResetPasswordRequest) error
}

type passwordServiceImpl struct {
	log        *zap.Logger
	validator  *validation.Validator
	mailClient client.MailClient
	userRepo   repository.UserRepository
	now        func() time.Time
	otp        func() (int, error)
}

func NewPasswordService(
	log *zap.Logger,
	mailClient client.MailClient,
	userRepo repository.UserRepository,
) PasswordService {
	return &passwordServiceImpl{
		log:        log,
		validator:  validation.New(),
		mailClient: mailClient,
		userRepo:   userRepo,
		now:        time.Now,
		otp:        GenerateOTP,
	}
}

func (s *passwordServiceImpl) ForgotPassword(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return apperr.Validation("Email is required")
	}

	otp, err := s.otp()
	if err != nil {
		return err
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("User with this email does not exist")
		}
		return fmt.Errorf("get user by email: %w", err)
	}

	if err := s.userRepo.SetResetOTP(ctx, user.ID, otp, s.now().Add(OTPValidFor)); err != nil {
		return fmt.Errorf("store reset otp: %w", err)
	}

	if err := s.mailClient.SendResetPasswordOTP(ctx, email, otp); err != nil {
		metrics.OTPEmails.WithLabelValues(metrics.ResultFailed).Inc()
		s.log.Error("send reset password email", zap.String("user_id", user.ID), zap.Error(err))
		return apperr.Upstream("send reset password email", err)
	}

	metrics.OTPEmails.WithLabelValues(metrics.ResultSent).Inc()
	s.log.Info("reset password otp sent", zap.String("user_id", user.ID))
	return nil
}

// ResetPassword consumes a reset code: it must match, be unexpired, and is
// cleared on success.
func (s *passwordServiceImpl) ResetPassword(ctx context.Context, req *dto.ResetPasswordRequest) error {
	if err := s.validator.Validate(req); err != nil {
		return apperr.Validation("%s", validation.Message(err))
	}

	otp, err := strconv.Atoi(req.OTP)
	if err != nil || otp < OTPMin || otp > OTPMax {
		return apperr.Validation("Invalid or expired OTP")
	}

	user, err := s.userRepo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("User with this email does not exist")
		}
		return fmt.Errorf("get user by email: %w", err)
	}

	if user.VerificationOTP == 0 || user.ResetPasswordExpires == nil {
		return apperr.Validation("Invalid or expired OTP")
	}
	stored := strconv.Itoa(user.VerificationOTP)
	if subtle.ConstantTimeCompare([]byte(stored), []byte(req.OTP)) != 1 {
		return apperr.Validation("Invalid or expired OTP")
	}
	if s.now().After(*user.ResetPasswordExpires) {
		return apperr.Validation("Invalid or expired OTP")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	err = s.userRepo.ResetPassword(ctx, user.ID, otp, string(hash))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.Validation("Invalid or expired OTP")
		}
		return fmt.Errorf("reset password: %w", err)
	}

	s.log.Info("password reset", zap.String("user_id", user.ID))
	return nil
}
