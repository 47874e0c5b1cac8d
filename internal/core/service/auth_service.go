package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"

	"github.com/traincamp/bootcamp-directory/internal/core/domain"
	"github.com/traincamp/bootcamp-directory/internal/core/ports"
)

const resetTokenTTL = 10 * time.Minute

// AuthService implements registration, login, logout and the password
// lifecycle. Tokens are HS256 JWTs whose subject is the user id.
type AuthService struct {
	repo      ports.UserRepository
	denylist  ports.TokenDenylist
	mail      ports.MailQueue
	jwtSecret string
	tokenTTL  time.Duration
	resetURL  string
	logger    zerolog.Logger
}

func NewAuthService(
	repo ports.UserRepository,
	denylist ports.TokenDenylist,
	mail ports.MailQueue,
	jwtSecret string,
	tokenTTL time.Duration,
	resetURL string,
	logger zerolog.Logger,
) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		repo:      repo,
		denylist:  denylist,
		mail:      mail,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		resetURL:  resetURL,
		logger:    logger,
	}
}

// Register creates a user/publisher account and signs it in. Admin accounts
// are only creatable through the admin user management surface.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (string, *domain.User, error) {
	role := in.Role
	if role == "" {
		role = domain.RoleUser
	}
	if role != domain.RoleUser && role != domain.RolePublisher {
		return "", nil, fmt.Errorf("%w: %q", domain.ErrInvalidRole, in.Role)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, err
	}

	u := &domain.User{
		Name:      in.Name,
		Email:     in.Email,
		Role:      role,
		Password:  string(hash),
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return "", nil, err
	}

	token, err := s.generateToken(u)
	if err != nil {
		return "", nil, err
	}
	return token, u, nil
}

// Login verifies the credentials. An unknown email and a wrong password are
// indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, domain.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(u)
	if err != nil {
		return "", nil, err
	}
	return token, u, nil
}

// Logout revokes the raw token for its remaining lifetime so it cannot be
// replayed before expiry. An unparseable token is a no-op: it would be
// rejected by the auth middleware anyway.
func (s *AuthService) Logout(ctx context.Context, rawToken string) error {
	if rawToken == "" {
		return nil
	}

	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(rawToken, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return nil
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil
	}
	ttl := time.Until(exp.Time)
	if ttl <= 0 {
		return nil
	}

	return s.denylist.Revoke(ctx, rawToken, ttl)
}

// ForgotPassword stores a hashed single-use reset token with a 10-minute
// deadline and mails the raw token to the account's address. If the mail job
// cannot be queued the token is cleared again so no orphaned token lingers.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return err
	}

	raw, hashed, err := newResetToken()
	if err != nil {
		return err
	}
	if err := s.repo.SetResetToken(ctx, u.ID, hashed, time.Now().UTC().Add(resetTokenTTL)); err != nil {
		return err
	}

	resetLink := s.resetURL + "/" + raw
	job := ports.MailJob{
		To:      u.Email,
		Subject: "Password reset",
		Text: "You are receiving this message because a password reset was requested " +
			"for your account. Please send a PUT request to: " + resetLink,
		HTML: "<p>You are receiving this message because a password reset was requested " +
			"for your account. Please send a PUT request to:</p><p>" + resetLink + "</p>",
	}
	if err := s.mail.Enqueue(job); err != nil {
		if clearErr := s.repo.ClearResetToken(ctx, u.ID); clearErr != nil {
			s.logger.Error().Err(clearErr).
				Str("user_id", u.ID.Hex()).
				Msg("failed to clear reset token after mail failure")
		}
		return fmt.Errorf("queue reset mail: %w", err)
	}

	s.logger.Info().Str("user_id", u.ID.Hex()).Msg("password reset token issued")
	return nil
}

// ResetPassword consumes a raw reset token. The stored token hash is cleared
// on success, so a second submission of the same raw token fails.
func (s *AuthService) ResetPassword(ctx context.Context, rawToken, newPassword string) (string, *domain.User, error) {
	u, err := s.repo.FindByResetToken(ctx, hashToken(rawToken), time.Now().UTC())
	if err != nil {
		return "", nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, err
	}
	if err := s.repo.SetPassword(ctx, u.ID, string(hash)); err != nil {
		return "", nil, err
	}
	if err := s.repo.ClearResetToken(ctx, u.ID); err != nil {
		return "", nil, err
	}

	token, err := s.generateToken(u)
	if err != nil {
		return "", nil, err
	}
	return token, u, nil
}

// UpdatePassword verifies the current password before storing the new one
// and re-issues a token.
func (s *AuthService) UpdatePassword(ctx context.Context, principal *domain.User, current, next string) (string, error) {
	u, err := s.repo.FindByIDWithPassword(ctx, principal.ID)
	if err != nil {
		return "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(current)) != nil {
		return "", domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	if err := s.repo.SetPassword(ctx, u.ID, string(hash)); err != nil {
		return "", err
	}

	return s.generateToken(u)
}

// UpdateDetails changes name and email only; everything else goes through
// the dedicated flows.
func (s *AuthService) UpdateDetails(ctx context.Context, principal *domain.User, name, email string) (*domain.User, error) {
	fields := bson.M{}
	if name != "" {
		fields["name"] = name
	}
	if email != "" {
		fields["email"] = email
	}
	if len(fields) == 0 {
		return principal, nil
	}
	return s.repo.Update(ctx, principal.ID, fields)
}

func (s *AuthService) generateToken(u *domain.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  u.ID.Hex(),
		"role": u.Role,
		"iat":  now.Unix(),
		"exp":  now.Add(s.tokenTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

// newResetToken returns the raw token handed to the user and the sha256 hex
// digest stored server-side.
func newResetToken() (raw, hashed string, err error) {
	b := make([]byte, 20)
	if _, err := rand.Read(b); err != nil {
		return "", "", err
	}
	raw = hex.EncodeToString(b)
	return raw, hashToken(raw), nil
}

func hashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
