package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	"github.com/milesmeow/tll-scorekeeper-tools-sub000/internal/auth"
	"github.com/milesmeow/tll-scorekeeper-tools-sub000/internal/domain"
	"github.com/milesmeow/tll-scorekeeper-tools-sub000/internal/guard"
	"github.com/milesmeow/tll-scorekeeper-tools-sub000/internal/repository"
)

// AuthService handles coach and league-official registration and login.
type AuthService struct {
	pool   *pgxpool.Pool
	users  repository.AuthUserRepository
	teams  repository.TeamRepository
	jwtMgr *auth.JWTManager
}

// NewAuthService creates a new AuthService.
func NewAuthService(pool *pgxpool.Pool, users repository.AuthUserRepository, teams repository.TeamRepository, jwtMgr *auth.JWTManager) *AuthService {
	return &AuthService{pool: pool, users: users, teams: teams, jwtMgr: jwtMgr}
}

// RegisterInput holds the registration request fields. Realm defaults to
// coach; coaches must name their team.
type RegisterInput struct {
	Email    string     `json:"email"`
	Password string     `json:"password"`
	Realm    string     `json:"realm"`
	TeamID   *uuid.UUID `json:"team_id,omitempty"`
}

// AuthResult is returned on successful registration or login.
type AuthResult struct {
	Token  string     `json:"token"`
	UserID uuid.UUID  `json:"user_id"`
	Email  string     `json:"email"`
	Realm  string     `json:"realm"`
	TeamID *uuid.UUID `json:"team_id,omitempty"`
}

// Register creates a new account.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	if err := domain.ValidateEmail(input.Email); err != nil {
		return nil, domain.ErrValidation(err.Error())
	}
	if len(input.Password) < 8 {
		return nil, domain.ErrValidation("password must be at least 8 characters")
	}
	if input.Realm == "" {
		input.Realm = string(auth.RealmCoach)
	}
	if input.Realm != string(auth.RealmCoach) && input.Realm != string(auth.RealmAdmin) {
		return nil, domain.ErrValidation("realm must be coach or admin")
	}
	if input.Realm == string(auth.RealmCoach) {
		if input.TeamID == nil {
			return nil, domain.ErrValidation("coach accounts require a team_id")
		}
		team, err := s.teams.FindByID(ctx, s.pool, *input.TeamID)
		if err != nil {
			return nil, domain.ErrInternal("find team", err)
		}
		if team == nil {
			return nil, domain.ErrNotFound("team", input.TeamID.String())
		}
	}

	existing, err := s.users.FindByEmail(ctx, s.pool, input.Email)
	if err != nil {
		return nil, domain.ErrInternal("find user", err)
	}
	if existing != nil {
		return nil, domain.ErrConflict("email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, domain.ErrInternal("hash password", err)
	}

	user := &domain.AuthUser{
		ID:           uuid.New(),
		Email:        input.Email,
		PasswordHash: string(hash),
		Realm:        input.Realm,
		TeamID:       input.TeamID,
	}
	if err := s.users.Create(ctx, s.pool, user); err != nil {
		return nil, domain.ErrInternal("create user", err)
	}

	return s.issueToken(user)
}

// LoginInput holds the login request fields.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login verifies credentials and returns a token. Failed attempts count
// toward a 15-minute lockout.
func (s *AuthService) Login(ctx context.Context, input LoginInput, ip string) (*AuthResult, error) {
	user, err := s.users.FindByEmail(ctx, s.pool, input.Email)
	if err != nil {
		return nil, domain.ErrInternal("find user", err)
	}
	realm := string(auth.RealmCoach)
	if user != nil {
		realm = user.Realm
	}

	if err := guard.CheckLocked(ctx, s.pool, input.Email, realm); err != nil {
		return nil, err
	}

	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)) != nil {
		guard.RecordAttempt(ctx, s.pool, input.Email, realm, ip, false)
		return nil, domain.ErrUnauthorized("invalid email or password")
	}

	guard.RecordAttempt(ctx, s.pool, input.Email, realm, ip, true)
	return s.issueToken(user)
}

func (s *AuthService) issueToken(user *domain.AuthUser) (*AuthResult, error) {
	teamID := ""
	if user.TeamID != nil {
		teamID = user.TeamID.String()
	}
	token, err := s.jwtMgr.GenerateToken(auth.Realm(user.Realm), user.ID, user.Email, teamID)
	if err != nil {
		return nil, domain.ErrInternal("generate token", err)
	}
	return &AuthResult{
		Token:  token,
		UserID: user.ID,
		Email:  user.Email,
		Realm:  user.Realm,
		TeamID: user.TeamID,
	}, nil
}
