package application

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"socialnet/internal/domain/entity"
	"socialnet/internal/domain/repository"
	"socialnet/internal/infrastructure/mail"
	"socialnet/internal/infrastructure/search"
	"socialnet/pkg/apperr"
	"socialnet/pkg/helpers"
)

const (
	msgInvalidCredentials = "Invalid Email or Password"
	msgUserNotFound       = "User Not Found"
	msgConfirmFirst       = "Confirm Your Email First, OTP sent to your email"
)

// AuthService drives the account state machine: registration, email
// confirmation, login, and the password flows.
type AuthService struct {
	Users      repository.UserRepository
	Tokens     repository.TokenRepository
	JWT        *helpers.JWTManager
	Phone      *helpers.PhoneCipher
	OTP        *OTPGenerator
	Mail       *mail.Sender
	Rotation   *RotationScheduler
	Index      *search.UserIndex
	Logger     *logrus.Logger
	MaxOTPSend int
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
	Age      int
}

// RegisterResult is the redacted projection returned after signup.
// EmailSent reports whether the confirmation mail went out; a failed send is
// a warning, not a registration failure.
type RegisterResult struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	EmailSent string `json:"email_sent"`
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*RegisterResult, error) {
	if _, err := s.Users.GetByEmail(ctx, in.Email); err == nil {
		return nil, apperr.Conflict("Email Already Exists")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to check email", err)
	}

	if s.Phone == nil {
		return nil, apperr.New(apperr.KindInternal, helpers.ErrPhoneCipherKeyMissing.Error())
	}

	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to hash password", err)
	}
	encPhone, err := s.Phone.Encrypt(in.Phone)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to encrypt phone", err)
	}
	otp, err := s.OTP.Generate()
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to generate otp", err)
	}

	emailSent := "OTP sent to your email"
	if err := s.Mail.SendConfirmOTP(ctx, in.Email, in.Name, otp.Code); err != nil {
		s.Logger.WithError(err).WithField("email", in.Email).Warn("signup otp email failed")
		emailSent = "Failed to send OTP email"
	}

	u := &entity.User{
		Name:     in.Name,
		Email:    in.Email,
		Password: hash,
		Phone:    encPhone,
		Age:      in.Age,
		Role:     entity.RoleUser,
		Status:   entity.StatusOffline,
		OTP:      otp,
	}
	if err := s.Users.Create(ctx, u); err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to create user", err)
	}

	_ = s.Index.Index(ctx, u)

	return &RegisterResult{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Phone:     u.Phone,
		EmailSent: emailSent,
	}, nil
}

// Login verifies credentials and returns the bearer string. The confirmation
// check runs before the password check, and a login attempt against an
// unconfirmed account refreshes the confirmation code as a side effect.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *entity.User, error) {
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil, apperr.NotFound(msgInvalidCredentials)
		}
		return "", nil, apperr.Wrap(apperr.KindInternal, "failed to load user", err)
	}
	if u.IsDeleted {
		return "", nil, apperr.NotFound(msgInvalidCredentials)
	}
	if !u.ConfirmEmail {
		if err := s.resendConfirmOTP(ctx, u); err != nil {
			return "", nil, err
		}
		return "", nil, apperr.NotFound(msgConfirmFirst)
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return "", nil, apperr.NotFound(msgInvalidCredentials)
	}

	token, _, err := s.JWT.Generate(u.ID, string(u.Role), u.DisplayName(), u.Email)
	if err != nil {
		return "", nil, apperr.Wrap(apperr.KindInternal, "failed to sign token", err)
	}
	if err := s.Tokens.Create(ctx, &entity.Token{Token: token, UserID: u.ID, IsValid: true}); err != nil {
		return "", nil, apperr.Wrap(apperr.KindInternal, "failed to persist token", err)
	}
	if err := s.Users.SetStatus(ctx, u.ID, entity.StatusOnline); err != nil {
		return "", nil, apperr.Wrap(apperr.KindInternal, "failed to update status", err)
	}
	u.Status = entity.StatusOnline

	return "Bearer " + token, u, nil
}

// ConfirmEmail consumes the signup OTP. Confirmation is one-shot; a fresh
// longer-lived code is rotated in afterwards and intentionally not mailed.
func (s *AuthService) ConfirmEmail(ctx context.Context, email, code string) error {
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound(msgUserNotFound)
		}
		return apperr.Wrap(apperr.KindInternal, "failed to load user", err)
	}
	if u.ConfirmEmail {
		return apperr.BadRequest("Email already confirmed")
	}
	if u.OTP.Code == "" {
		return apperr.BadRequest("No OTP found, request a new one")
	}
	if !u.OTP.ExpiresAt.IsZero() && time.Now().After(u.OTP.ExpiresAt) {
		return apperr.BadRequest("OTP expired")
	}
	if code != u.OTP.Code {
		return apperr.BadRequest("Invalid OTP")
	}

	next, err := s.OTP.GenerateRotated()
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to generate otp", err)
	}
	if err := s.Users.ConfirmEmail(ctx, u.ID, next); err != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to confirm email", err)
	}
	return nil
}

// checkUserBasics is the shared precondition for the password flows.
func (s *AuthService) checkUserBasics(ctx context.Context, u *entity.User) error {
	if u.IsDeleted {
		return apperr.NotFound(msgUserNotFound)
	}
	if u.Status == entity.StatusBlocked {
		return apperr.Forbidden("User is blocked")
	}
	if !u.ConfirmEmail {
		if err := s.resendConfirmOTP(ctx, u); err != nil {
			return err
		}
		return apperr.NotFound(msgConfirmFirst)
	}
	return nil
}

func (s *AuthService) resendConfirmOTP(ctx context.Context, u *entity.User) error {
	otp, err := s.OTP.Generate()
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to generate otp", err)
	}
	if err := s.Users.SetOTP(ctx, u.ID, otp); err != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to store otp", err)
	}
	if err := s.Mail.SendConfirmOTP(ctx, u.Email, u.Name, otp.Code); err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Warn("confirm otp email failed")
	}
	return nil
}

// ForgotPassword mails a reset code, capped per user, and arms the delayed
// rotation that invalidates the code after its grace period.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound(msgUserNotFound)
		}
		return apperr.Wrap(apperr.KindInternal, "failed to load user", err)
	}
	if err := s.checkUserBasics(ctx, u); err != nil {
		return err
	}
	if s.MaxOTPSend > 0 && u.OTPSendCount >= s.MaxOTPSend {
		return apperr.BadRequest("You have reached the maximum number of OTP requests, try again later")
	}

	otp, err := s.OTP.Generate()
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to generate otp", err)
	}
	if err := s.Mail.SendResetOTP(ctx, u.Email, u.Name, otp.Code); err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Error("reset otp email failed")
		return apperr.BadRequest("Failed to send OTP email, try again later")
	}
	if err := s.Users.SetOTPState(ctx, u.ID, otp, u.OTPSendCount+1); err != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to store otp", err)
	}
	s.Rotation.Schedule(u.ID, otp.Code)
	return nil
}

// ResetPassword consumes the reset OTP and replaces the password hash. On
// success the code is rotated, the send counter zeroed, and any pending
// rotation timer cancelled.
func (s *AuthService) ResetPassword(ctx context.Context, email, code, newPassword, confirm string) error {
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound(msgUserNotFound)
		}
		return apperr.Wrap(apperr.KindInternal, "failed to load user", err)
	}
	if u.OTP.Code == "" || code != u.OTP.Code {
		return apperr.BadRequest("Invalid OTP")
	}
	if !u.OTP.ExpiresAt.IsZero() && time.Now().After(u.OTP.ExpiresAt) {
		return apperr.Unauthorized("OTP expired")
	}
	if newPassword != confirm {
		return apperr.BadRequest("Passwords do not match")
	}

	hash, err := helpers.HashPassword(newPassword)
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to hash password", err)
	}
	next, err := s.OTP.Generate()
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to generate otp", err)
	}
	if err := s.Users.ResetPassword(ctx, u.ID, hash, next); err != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to reset password", err)
	}
	s.Rotation.Cancel(u.ID)
	return nil
}

// ChangePassword is the authenticated variant. The confirm-mismatch branch
// answers NotFound; clients match on that message, keep it.
func (s *AuthService) ChangePassword(ctx context.Context, userID, oldPassword, newPassword, confirm string) error {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound(msgUserNotFound)
		}
		return apperr.Wrap(apperr.KindInternal, "failed to load user", err)
	}
	if !helpers.CompareHashAndPassword(u.Password, oldPassword) {
		return apperr.BadRequest("Old password is incorrect")
	}
	if newPassword == oldPassword {
		return apperr.BadRequest("New password must be different from the old password")
	}
	if newPassword != confirm {
		return apperr.NotFound("Passwords do not match")
	}

	hash, err := helpers.HashPassword(newPassword)
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to hash password", err)
	}
	if err := s.Users.SetPassword(ctx, u.ID, hash); err != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to update password", err)
	}
	return nil
}
