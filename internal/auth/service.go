package auth

import (
	"context"
	"errors"
	"strconv"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/praetor-admin/praetor-admin/internal/authority"
	"github.com/praetor-admin/praetor-admin/internal/shared"
	"github.com/praetor-admin/praetor-admin/internal/token"
	"github.com/praetor-admin/praetor-admin/internal/users"
)

// Identity is the slice of the identity store authentication needs.
type Identity interface {
	FindByUsername(ctx context.Context, username string) (users.User, error)
	RoleGrants(ctx context.Context, userID int64) ([]authority.RoleGrant, error)
	Create(ctx context.Context, actor string, req users.CreateUserRequest) (users.User, error)
}

// dummyHash keeps the bcrypt comparison cost for unknown usernames, so the
// unknown-user and wrong-password paths are not timing-distinguishable.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// Service wraps credential verification and token issuance.
type Service struct {
	identity Identity
	tokens   *token.Service
}

// NewService constructs a Service.
func NewService(identity Identity, tokens *token.Service) *Service {
	return &Service{identity: identity, tokens: tokens}
}

// Authenticate verifies username/password credentials. Unknown usernames and
// wrong passwords both yield ErrInvalidCredentials.
func (s *Service) Authenticate(ctx context.Context, username, password string) (users.User, error) {
	user, err := s.identity.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(password))
			return users.User{}, shared.ErrInvalidCredentials
		}
		return users.User{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return users.User{}, shared.ErrInvalidCredentials
	}
	return user, nil
}

// Session is the issued credential plus the resolved snapshot it embeds.
type Session struct {
	Token       string
	Username    string
	PrimaryRole string
	Authorities []string
	ExpiresAt   time.Time
}

// Login authenticates, resolves the principal's authority snapshot, and
// issues a signed token carrying it.
func (s *Service) Login(ctx context.Context, username, password string) (Session, error) {
	user, err := s.Authenticate(ctx, username, password)
	if err != nil {
		return Session{}, err
	}

	grants, err := s.identity.RoleGrants(ctx, user.ID)
	if err != nil {
		return Session{}, err
	}
	authorities := authority.Resolve(grants)
	primaryRole := authority.PrimaryRole(grants)

	now := time.Now()
	signed, err := s.tokens.Issue(strconv.FormatInt(user.ID, 10), user.Username, primaryRole, authorities, now)
	if err != nil {
		return Session{}, err
	}

	return Session{
		Token:       signed,
		Username:    user.Username,
		PrimaryRole: primaryRole,
		Authorities: authorities,
		ExpiresAt:   now.Add(s.tokens.TTL()),
	}, nil
}

// Register creates an account through the identity store. Kept open like the
// original deployment profile; production setups gate this route.
func (s *Service) Register(ctx context.Context, req users.CreateUserRequest) (users.User, error) {
	return s.identity.Create(ctx, req.Username, req)
}
