package domain

import (
	"context"
	"time"
)

// AuditEventType defines the type of audit event
type AuditEventType string

const (
	// Authentication events
	UserLoginEvent        AuditEventType = "USER_LOGIN"
	UserLoginFailureEvent AuditEventType = "USER_LOGIN_FAILED"
	UserRegistrationEvent AuditEventType = "USER_REGISTERED"

	// Account lifecycle events
	VerificationRequestEvent  AuditEventType = "VERIFICATION_REQUESTED"
	AccountVerifiedEvent      AuditEventType = "ACCOUNT_VERIFIED"
	PasswordResetRequestEvent AuditEventType = "PASSWORD_RESET_REQUESTED"
	PasswordResetEvent        AuditEventType = "PASSWORD_RESET"
	AccountActivatedEvent     AuditEventType = "ACCOUNT_ACTIVATED"
	AccountSuspendedEvent     AuditEventType = "ACCOUNT_SUSPENDED"
	AccountDeletedEvent       AuditEventType = "ACCOUNT_DELETED"
	AccountPurgedEvent        AuditEventType = "ACCOUNT_PURGED"
)

// AuditEvent represents a business event that occurred in the system
type AuditEvent struct {
	EventType AuditEventType         `json:"event_type"`
	UserID    string                 `json:"user_id,omitempty"`
	Username  string                 `json:"username,omitempty"`
	Email     string                 `json:"email,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	ErrorMsg  string                 `json:"error_msg,omitempty"`
	Success   bool                   `json:"success"`
}

// AuditLogger records audit events. Implementations are best-effort.
type AuditLogger interface {
	LogEvent(ctx context.Context, event *AuditEvent) error
}

// NewAuditEvent creates a new audit event with common fields populated
func NewAuditEvent(eventType AuditEventType) *AuditEvent {
	return &AuditEvent{
		EventType: eventType,
		Timestamp: time.Now().UTC(),
		Metadata:  make(map[string]interface{}),
		Success:   true,
	}
}

// WithAccount copies identifying fields of an account onto the event
func (e *AuditEvent) WithAccount(a *Account) *AuditEvent {
	if a != nil {
		e.UserID = a.ID
		e.Username = a.Username
		e.Email = a.Email
	}
	return e
}

// WithEmail sets the email field
func (e *AuditEvent) WithEmail(email string) *AuditEvent {
	e.Email = email
	return e
}

// WithUsername sets the username field
func (e *AuditEvent) WithUsername(username string) *AuditEvent {
	e.Username = username
	return e
}

// WithFailure marks the event failed with the given reason
func (e *AuditEvent) WithFailure(reason string) *AuditEvent {
	e.Success = false
	e.ErrorMsg = reason
	return e
}

// WithMetadata adds metadata to the event
func (e *AuditEvent) WithMetadata(key string, value interface{}) *AuditEvent {
	e.Metadata[key] = value
	return e
}
