package domain

import "errors"

// Storage errors
var (
	ErrNotFound        = errors.New("document not found")
	ErrUnsupportedOp   = errors.New("unsupported filter operator")
	ErrUnknownDriver   = errors.New("unknown database driver")
	ErrEmptyDocumentID = errors.New("document id is empty")
)

// Token errors
var (
	ErrTokenInvalid   = errors.New("invalid token")
	ErrTokenExpired   = errors.New("token has expired")
	ErrTokenMalformed = errors.New("malformed token")
)

// Policy errors
var (
	ErrPolicyExists   = errors.New("policy already exists")
	ErrPolicyNotFound = errors.New("policy not found")
)

// Delivery errors
var (
	ErrMailDelivery    = errors.New("mail delivery failed")
	ErrCaptchaResponse = errors.New("captcha service returned an unexpected response")
)
