package domain

import (
	"context"
	"time"
)

// TokenService signs and verifies typed credential tokens
type TokenService interface {
	// Generate signs payload; ttl <= 0 selects the default lifetime
	Generate(payload TokenPayload, ttl time.Duration) (string, error)
	Verify(token string) DataResult[*TokenPayload]
}

// PasswordService defines password operations
type PasswordService interface {
	Hash(secret string) (string, error)
	Compare(candidate, hashed string) bool
}

// HumanVerifier checks a client proof-of-humanity token
type HumanVerifier interface {
	Verify(ctx context.Context, proofToken string) Result
}

// Mailer delivers email
type Mailer interface {
	Send(ctx context.Context, to, subject, plainText, html string) Result
}

// ResendLimiter throttles repeated emails of the same purpose to one address
type ResendLimiter interface {
	// Allow reports whether a mail may go out now, and otherwise how long to wait
	Allow(ctx context.Context, purpose, email string) (bool, time.Duration)
}

// UserService enforces business rules around persisted accounts
type UserService interface {
	GetByUsername(ctx context.Context, username string) DataResult[*Account]
	GetByEmail(ctx context.Context, email string) DataResult[*Account]
	GetByID(ctx context.Context, id string) DataResult[*Account]
	List(ctx context.Context) DataResult[[]Account]
	Add(ctx context.Context, draft AccountDraft) DataResult[*Account]
	Activate(ctx context.Context, id string) DataResult[*Account]
	Suspend(ctx context.Context, id string) DataResult[*Account]
	Update(ctx context.Context, id string, patch AccountPatch) DataResult[*Account]
	Delete(ctx context.Context, id string) DataResult[*Account]
	Purge(ctx context.Context, id string) DataResult[*Account]
}

// AuthService implements login, signup, verification and password reset
type AuthService interface {
	Login(ctx context.Context, username, password, captcha string) DataResult[*LoginResult]
	SignUp(ctx context.Context, username, email, password, captcha string) Result
	SendVerification(ctx context.Context, email string) Result
	Verify(ctx context.Context, token string) Result
	SendPasswordReset(ctx context.Context, email string) Result
	ResetPassword(ctx context.Context, token, newPassword string) Result
}

// PostService manages posts on behalf of an actor. viewer may be nil for
// anonymous requests.
type PostService interface {
	List(ctx context.Context, viewer *TokenPayload) DataResult[[]Post]
	ListByOwner(ctx context.Context, ownerID string, viewer *TokenPayload) DataResult[[]Post]
	Get(ctx context.Context, id string, viewer *TokenPayload) DataResult[*Post]
	Create(ctx context.Context, actor *TokenPayload, draft PostDraft) DataResult[*Post]
	Update(ctx context.Context, actor *TokenPayload, id string, patch PostPatch) DataResult[*Post]
	Delete(ctx context.Context, actor *TokenPayload, id string) Result
}

// PolicyService defines authorization policy operations
type PolicyService interface {
	AddPolicy(role, resource, action string) error
	RemovePolicy(role, resource, action string) error
	CheckPermission(role, resource, action string) (bool, error)
	GetPolicies() [][]string
}

// CasbinEnforcer is the subset of the casbin enforcer the policy service uses
type CasbinEnforcer interface {
	AddPolicy(params ...interface{}) (bool, error)
	RemovePolicy(params ...interface{}) (bool, error)
	Enforce(rvals ...interface{}) (bool, error)
	GetPolicy() ([][]string, error)
}
