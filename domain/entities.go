package domain

import (
	"strings"
	"time"
)

// Role is the authorization role of an account
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// Valid reports whether r is a known role
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// Is compares roles case-insensitively
func (r Role) Is(other Role) bool {
	return strings.EqualFold(string(r), string(other))
}

// AccountStatus is the lifecycle state of an account
type AccountStatus string

const (
	StatusPassive   AccountStatus = "PASSIVE"
	StatusActive    AccountStatus = "ACTIVE"
	StatusSuspended AccountStatus = "SUSPENDED"
	StatusDeleted   AccountStatus = "DELETED"
)

// Valid reports whether s is a known status
func (s AccountStatus) Valid() bool {
	switch s {
	case StatusPassive, StatusActive, StatusSuspended, StatusDeleted:
		return true
	}
	return false
}

// TokenType tells which operation a token was issued for
type TokenType string

const (
	TokenAuth   TokenType = "AUTH"
	TokenVerify TokenType = "VERIFY"
	TokenReset  TokenType = "RESET"
)

// Field names shared by filters, patches, bson tags and SQL columns
const (
	FieldID           = "id"
	FieldUsername     = "username"
	FieldEmail        = "email"
	FieldPasswordHash = "password_hash"
	FieldStatus       = "status"
	FieldRole         = "role"
	FieldOwnerID      = "owner_id"
	FieldTitle        = "title"
	FieldBody         = "body"
	FieldPublished    = "published"
	FieldUpdatedAt    = "updated_at"
)

// Account represents a user account in the system
type Account struct {
	ID           string        `json:"id" bson:"_id" gorm:"primaryKey;size:64"`
	Username     string        `json:"username" bson:"username" gorm:"index;size:255"`
	Email        string        `json:"email" bson:"email" gorm:"index;size:255"`
	PasswordHash string        `json:"-" bson:"password_hash" gorm:"column:password_hash"`
	Status       AccountStatus `json:"status" bson:"status" gorm:"index;size:16"`
	Role         Role          `json:"role" bson:"role" gorm:"size:16"`
	CreatedAt    time.Time     `json:"created_at" bson:"created_at"`
}

// DocumentID implements Document
func (a Account) DocumentID() string { return a.ID }

// MaxPasswordBytes is the longest secret bcrypt accepts
const MaxPasswordBytes = 72

// AccountDraft carries the input of a new account
type AccountDraft struct {
	Username string
	Email    string
	Password string
	Status   AccountStatus
	Role     Role
}

// AccountPatch carries optional account changes; nil fields are left untouched
type AccountPatch struct {
	Username *string
	Email    *string
	Password *string
	Status   *AccountStatus
	Role     *Role
}

// Post is a piece of content owned by an account
type Post struct {
	ID        string    `json:"id" bson:"_id" gorm:"primaryKey;size:64"`
	OwnerID   string    `json:"owner_id" bson:"owner_id" gorm:"index;size:64"`
	Title     string    `json:"title" bson:"title" gorm:"size:255"`
	Body      string    `json:"body" bson:"body"`
	Published bool      `json:"published" bson:"published" gorm:"index"`
	CreatedAt time.Time `json:"created_at" bson:"created_at" gorm:"index"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// DocumentID implements Document
func (p Post) DocumentID() string { return p.ID }

// PostDraft carries the input of a new post
type PostDraft struct {
	Title     string
	Body      string
	Published bool
}

// PostPatch carries optional post changes
type PostPatch struct {
	Title     *string
	Body      *string
	Published *bool
}

// TokenPayload is the set of claims signed into every token
type TokenPayload struct {
	UserID   string        `json:"id"`
	Status   AccountStatus `json:"status"`
	Username string        `json:"username"`
	Email    string        `json:"email"`
	Role     Role          `json:"role"`
	Type     TokenType     `json:"type"`
}

// NewTokenPayload snapshots an account into a payload of the given type
func NewTokenPayload(a *Account, t TokenType) TokenPayload {
	return TokenPayload{
		UserID:   a.ID,
		Status:   a.Status,
		Username: a.Username,
		Email:    a.Email,
		Role:     a.Role,
		Type:     t,
	}
}

// LoginResult is returned to a client after a successful login
type LoginResult struct {
	Token string `json:"token"`
}
