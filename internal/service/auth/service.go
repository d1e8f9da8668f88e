package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/gridvolt/stationd/internal/domain"
	"github.com/gridvolt/stationd/internal/ports"
)

// Service issues and validates bearer tokens and manages user records. Issued
// tokens are recorded in the injected cache with a TTL, so a token stays valid
// only while both its JWT expiry and its cache entry hold; expiry sweeping is
// the cache's concern.
type Service struct {
	users     ports.UserRepository
	tokens    ports.Cache
	jwtSecret []byte
	tokenTTL  time.Duration
	log       *zap.Logger
}

func NewService(users ports.UserRepository, tokens ports.Cache, jwtSecret string, tokenTTL time.Duration, log *zap.Logger) ports.AuthService {
	return &Service{
		users:     users,
		tokens:    tokens,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
		log:       log,
	}
}

// Register creates a user. The username is checked explicitly before the
// insert so a duplicate gets a friendlier message than the generic integrity
// translation.
func (s *Service) Register(ctx context.Context, in ports.UserInput) (*domain.User, error) {
	existing, err := s.users.FindByUsername(ctx, in.Username)
	if err != nil {
		return nil, s.storeErr("register", in.Username, err)
	}
	if existing != nil {
		return nil, domain.NewIntegrityViolation(fmt.Sprintf("User '%s' is already registered.", in.Username))
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, domain.NewInternal(err)
	}

	user := &domain.User{
		ID:             uuid.New(),
		Username:       in.Username,
		HashedPassword: string(hashed),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, s.storeErr("register", in.Username, err)
	}

	s.log.Info("Registered new user", zap.String("username", user.Username))
	return user, nil
}

func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return "", s.storeErr("login", username, err)
	}
	if user == nil {
		s.log.Warn("Authentication failed - nonexistent user", zap.String("username", username))
		return "", domain.NewNotFound("User not found.")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
		s.log.Warn("Authentication failed - wrong password", zap.String("username", username))
		return "", domain.NewUnauthorized("Wrong password.")
	}

	expiry := time.Now().Add(s.tokenTTL)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": user.Username,
		"exp": expiry.Unix(),
	})
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", domain.NewInternal(err)
	}

	if err := s.tokens.Set(ctx, tokenKey(signed), user.Username, s.tokenTTL); err != nil {
		return "", domain.NewInternal(err)
	}

	s.log.Info("Issued token",
		zap.String("username", user.Username),
		zap.Time("expires_at", expiry),
	)
	return signed, nil
}

// ValidateToken resolves a bearer credential to its username. Both the JWT
// signature/expiry and the cache entry must still be valid.
func (s *Service) ValidateToken(ctx context.Context, tokenStr string) (string, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return "", domain.NewUnauthorized("Invalid token.")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", domain.NewUnauthorized("Invalid token.")
	}
	username, _ := claims["sub"].(string)
	if username == "" {
		return "", domain.NewUnauthorized("Invalid token.")
	}

	if _, err := s.tokens.Get(ctx, tokenKey(tokenStr)); err != nil {
		return "", domain.NewUnauthorized("Expired token.")
	}

	return username, nil
}

func (s *Service) CurrentUser(ctx context.Context, tokenStr string) (*domain.User, error) {
	username, err := s.ValidateToken(ctx, tokenStr)
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, s.storeErr("current_user", username, err)
	}
	if user == nil {
		return nil, domain.NewNotFound(fmt.Sprintf("User '%s' not found.", username))
	}
	return user, nil
}

// UpdateUser replaces the target user's credentials. Self-service only.
func (s *Service) UpdateUser(ctx context.Context, currentUsername, target string, in ports.UserInput) (*domain.User, error) {
	if currentUsername != target {
		return nil, domain.NewForbidden("Cannot update other user's credentials.")
	}

	user, err := s.users.FindByUsername(ctx, target)
	if err != nil {
		return nil, s.storeErr("update", target, err)
	}
	if user == nil {
		return nil, domain.NewNotFound("User not found.")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, domain.NewInternal(err)
	}

	user.Username = in.Username
	user.HashedPassword = string(hashed)
	if err := s.users.Update(ctx, user); err != nil {
		return nil, s.storeErr("update", target, err)
	}

	s.log.Info("Updated user credentials", zap.String("username", user.Username))
	return user, nil
}

func (s *Service) DeleteUser(ctx context.Context, currentUsername, target string) error {
	if currentUsername != target {
		return domain.NewForbidden("Cannot delete other user's credentials.")
	}

	user, err := s.users.FindByUsername(ctx, target)
	if err != nil {
		return s.storeErr("delete", target, err)
	}
	if user == nil {
		return domain.NewNotFound("User not found.")
	}

	if err := s.users.Delete(ctx, target); err != nil {
		return s.storeErr("delete", target, err)
	}

	s.log.Info("Deleted user", zap.String("username", target))
	return nil
}

func tokenKey(token string) string {
	return "token:" + token
}

func (s *Service) storeErr(op, key string, err error) error {
	if domain.KindOf(err) == domain.ErrKindIntegrity {
		return err
	}
	s.log.Error("User store operation failed",
		zap.String("operation", op),
		zap.String("key", key),
		zap.Error(err),
	)
	return domain.NewInternal(err)
}
