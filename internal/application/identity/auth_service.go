package identity

import (
	"context"
	"crypto/subtle"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/labakery/backend/internal/domain/shared"
	"github.com/labakery/backend/internal/infrastructure/auth"
	"github.com/labakery/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// AuthServiceConfig contains configuration for the auth service
type AuthServiceConfig struct {
	Username         string
	PasswordHash     string
	MaxLoginAttempts int           // Failed attempts from one IP before it is locked out
	LockDuration     time.Duration // How long the lockout lasts
}

// DefaultAuthServiceConfig returns default lockout settings for the given credentials
func DefaultAuthServiceConfig(username, passwordHash string) AuthServiceConfig {
	return AuthServiceConfig{
		Username:         username,
		PasswordHash:     passwordHash,
		MaxLoginAttempts: 5,
		LockDuration:     15 * time.Minute,
	}
}

// adminNamespace seeds the deterministic admin user id
var adminNamespace = uuid.MustParse("b3f1c6a2-5d4e-4f8a-9c7b-1e2d3f4a5b6c")

var errInvalidCredentials = shared.NewDomainError(shared.CodeUnauthorized, "Invalid username or password")

type loginAttempts struct {
	failures    int
	lockedUntil time.Time
}

// AuthService authenticates the single back-office admin
type AuthService struct {
	jwtService *auth.JWTService
	blacklist  auth.TokenBlacklist
	config     AuthServiceConfig
	adminID    uuid.UUID
	logger     *zap.Logger
	now        func() time.Time

	mu       sync.Mutex
	attempts map[string]*loginAttempts
}

// NewAuthService creates a new authentication service
func NewAuthService(
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
	config AuthServiceConfig,
	logger *zap.Logger,
) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		jwtService: jwtService,
		blacklist:  blacklist,
		config:     config,
		adminID:    uuid.NewSHA1(adminNamespace, []byte(config.Username)),
		logger:     logger,
		now:        time.Now,
		attempts:   make(map[string]*loginAttempts),
	}
}

// Login checks the admin credentials and returns a signed access token
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	log := logger.L(ctx, s.logger).With(zap.String("username", input.Username), zap.String("ip", input.IP))

	if s.isLocked(input.IP) {
		log.Warn("Login rejected, too many failed attempts")
		return nil, shared.NewDomainError("ACCOUNT_LOCKED", "Too many failed attempts, try again later")
	}

	usernameOK := subtle.ConstantTimeCompare(
		[]byte(strings.TrimSpace(input.Username)),
		[]byte(s.config.Username),
	) == 1
	// Both checks always run
	passwordOK := auth.CheckPassword(s.config.PasswordHash, input.Password)
	if !usernameOK || !passwordOK || s.config.Username == "" {
		s.recordFailure(input.IP)
		log.Warn("Login failed")
		return nil, errInvalidCredentials
	}
	s.resetFailures(input.IP)

	token, err := s.jwtService.GenerateAccessToken(auth.GenerateTokenInput{
		UserID:   s.adminID,
		Username: s.config.Username,
		Role:     auth.RoleAdmin,
	})
	if err != nil {
		log.Error("Failed to generate access token", zap.Error(err))
		return nil, err
	}

	log.Info("Admin logged in")
	return &LoginResult{
		AccessToken: token.Token,
		ExpiresAt:   token.ExpiresAt,
		TokenType:   token.TokenType,
		User: UserInfo{
			ID:       s.adminID,
			Username: s.config.Username,
			Role:     auth.RoleAdmin,
		},
	}, nil
}

// Logout revokes the token until it would have expired anyway
func (s *AuthService) Logout(ctx context.Context, input LogoutInput) error {
	if s.blacklist == nil || input.TokenJTI == "" {
		return nil
	}
	ttl := input.ExpiresAt.Sub(s.now())
	if err := s.blacklist.AddToBlacklist(ctx, input.TokenJTI, ttl); err != nil {
		return err
	}
	logger.L(ctx, s.logger).Info("Admin logged out", zap.String("jti", input.TokenJTI))
	return nil
}

func (s *AuthService) isLocked(ip string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.attempts[ip]
	return ok && s.now().Before(a.lockedUntil)
}

func (s *AuthService) recordFailure(ip string) {
	if s.config.MaxLoginAttempts <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.attempts[ip]
	if !ok {
		a = &loginAttempts{}
		s.attempts[ip] = a
	}
	a.failures++
	if a.failures >= s.config.MaxLoginAttempts {
		a.lockedUntil = s.now().Add(s.config.LockDuration)
		a.failures = 0
	}
}

func (s *AuthService) resetFailures(ip string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.attempts, ip)
}
