package domain

// Messages surfaced to API clients
const (
	MsgGeneric = "Something went wrong"

	// token codec
	MsgTokenExpired  = "Token expired"
	MsgNotAuthorized = "Not authorized"
	MsgInvalidToken  = "Invalid token provided"
	MsgNoToken       = "No token provided"

	// human verification
	MsgCaptchaFailed = "Captcha verification failed."
	MsgNotHuman      = "You don't look like human."

	// accounts
	MsgUserNotExists     = "User not exits"
	MsgUsernameTaken     = "Username already exists"
	MsgEmailTaken        = "Email already exists"
	MsgInvalidStatus     = "Invalid status"
	MsgInvalidRole       = "Invalid role"
	MsgEmailImmutable    = "Email cannot be changed"
	MsgLoginFailed       = "Login failed"
	MsgUserSuspended     = "User is suspended"
	MsgUserNotVerified   = "Please verify your email first"
	MsgUserAlreadyActive = "User is already active"
	MsgAccountActive     = "Account is already active"
	MsgUserNotActive     = "User is not active"
	MsgPasswordTooLong   = "Password is too long"

	// success
	MsgAccountCreated    = "Account created. Check your email to verify it."
	MsgVerificationSent  = "Verification email sent"
	MsgAccountVerified   = "Account verified"
	MsgResetSent         = "Password reset email sent"
	MsgPasswordUpdated   = "Password updated"
	MsgAccountActivated  = "Account activated"
	MsgAccountSuspended  = "Account suspended"
	MsgAccountDeleted    = "Account deleted"
	MsgAccountPurged     = "Account purged"
	MsgAccountUpdated    = "Account updated"
	MsgPostDeleted       = "Post deleted"
	MsgResendWaitPattern = "Please wait %d seconds before requesting another email"

	// posts
	MsgPostNotExists = "Post not exists"
	MsgTitleRequired = "Title is required"
)

// HTTP surface
const (
	MsgInvalidBody     = "Invalid request body"
	MsgNotFound        = "Not found"
	MsgPolicyAdded     = "Policy added"
	MsgPolicyRemoved   = "Policy removed"
	MsgPolicyExists    = "Policy already exists"
	MsgPolicyNotExists = "Policy not exists"
)
