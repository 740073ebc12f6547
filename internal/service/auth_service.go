package service

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"go-pos-backend/internal/logger"
	"go-pos-backend/internal/model"
	"go-pos-backend/internal/repository"
	"go-pos-backend/internal/session"
	"go-pos-backend/pkg/jwt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

var (
	ErrWrongPassword   = errors.New("current password is incorrect")
	ErrTooManyAttempts = errors.New("too many login attempts, try again later")
)

// Each username may try 5 logins in a burst, then one more per 12 seconds.
const (
	loginBurst    = 5
	loginInterval = 12 * time.Second
)

type AuthService interface {
	Authenticate(username, password string) (*model.User, error)
	Login(username, password string) (*LoginResponse, error)
	Logout(sessionID uuid.UUID)
	ChangePassword(userID uint, oldPassword, newPassword string) error
	ValidateToken(tokenString string) (*session.Session, error)
}

type LoginResponse struct {
	Token      string             `json:"token"`
	User       model.UserResponse `json:"user"`
	Privileges []string           `json:"privileges"`
}

type authService struct {
	userRepo repository.UserRepository
	sessions *session.Manager
	tokens   *jwt.Manager

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

func NewAuthService(userRepo repository.UserRepository, sessions *session.Manager, tokens *jwt.Manager) AuthService {
	return &authService{
		userRepo: userRepo,
		sessions: sessions,
		tokens:   tokens,
		limiters: make(map[string]*rate.Limiter),
	}
}

func (s *authService) limiter(username string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.limiters[username]
	if !ok {
		l = rate.NewLimiter(rate.Every(loginInterval), loginBurst)
		s.limiters[username] = l
	}
	return l
}

// Authenticate checks the credentials. Unknown users and wrong passwords both
// yield ErrInvalidCredentials.
func (s *authService) Authenticate(username, password string) (*model.User, error) {
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, model.ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.CheckPassword(password) {
		return nil, model.ErrInvalidCredentials
	}
	return user, nil
}

// Login throttles per existing account, so unknown usernames never allocate
// a limiter.
func (s *authService) Login(username, password string) (*LoginResponse, error) {
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, model.ErrInvalidCredentials
		}
		return nil, err
	}
	if !s.limiter(user.Username).Allow() {
		logger.Get().Warn("login throttled", zap.String("username", username))
		return nil, ErrTooManyAttempts
	}
	if !user.CheckPassword(password) {
		return nil, model.ErrInvalidCredentials
	}

	sess := s.sessions.Create(user.ID, user.Username, user.Role)
	token, err := s.tokens.GenerateToken(sess.ID, user.ID, user.Username, user.Role)
	if err != nil {
		s.sessions.Delete(sess.ID)
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	logger.Get().Info("user logged in", zap.String("username", user.Username), zap.String("role", user.Role))
	return &LoginResponse{
		Token:      token,
		User:       user.ToResponse(),
		Privileges: model.PrivilegesFor(user.Role),
	}, nil
}

// Logout ends the session and drops its cart.
func (s *authService) Logout(sessionID uuid.UUID) {
	s.sessions.Delete(sessionID)
}

func (s *authService) ChangePassword(userID uint, oldPassword, newPassword string) error {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return err
	}
	if !user.CheckPassword(oldPassword) {
		return ErrWrongPassword
	}
	if len(newPassword) < model.MinPasswordLength {
		return model.ErrWeakPassword
	}
	if err := user.SetPassword(newPassword); err != nil {
		return errors.New("failed to hash new password")
	}
	return s.userRepo.UpdatePassword(user.ID, user.Password)
}

// ValidateToken resolves a bearer token to its live session. The account must
// still exist in the store; otherwise the session is ended.
func (s *authService) ValidateToken(tokenString string) (*session.Session, error) {
	claims, err := s.tokens.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	sess, err := s.sessions.Get(claims.SessionID)
	if err != nil {
		return nil, err
	}
	if sess.UserID != claims.UserID {
		return nil, jwt.ErrInvalidToken
	}

	user, err := s.userRepo.FindByID(sess.UserID)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			s.sessions.Delete(sess.ID)
			return nil, jwt.ErrInvalidToken
		}
		return nil, err
	}
	if user.Username != sess.Username || user.Role != sess.Role {
		s.sessions.Delete(sess.ID)
		return nil, jwt.ErrInvalidToken
	}
	return sess, nil
}
