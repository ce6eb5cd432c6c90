package services

import (
	"fmt"
	"html"
	"net/url"
)

type mailContent struct {
	Subject   string
	PlainText string
	HTML      string
}

func actionLink(baseURL, path, token string) string {
	return fmt.Sprintf("%s%s?token=%s", baseURL, path, url.QueryEscape(token))
}

func verificationMail(baseURL, username, token string) mailContent {
	link := actionLink(baseURL, "/auth/verify", token)
	return mailContent{
		Subject: "Verify your email",
		PlainText: fmt.Sprintf("Hi %s,\n\nconfirm your email address by opening the link below:\n\n%s\n\nIf you did not sign up, ignore this message.\n",
			username, link),
		HTML: fmt.Sprintf(`<p>Hi %s,</p><p>Confirm your email address by opening the link below:</p><p><a href="%s">Verify email</a></p><p>If you did not sign up, ignore this message.</p>`,
			html.EscapeString(username), html.EscapeString(link)),
	}
}

func passwordResetMail(baseURL, username, token string) mailContent {
	link := actionLink(baseURL, "/auth/resetPassword", token)
	return mailContent{
		Subject: "Reset your password",
		PlainText: fmt.Sprintf("Hi %s,\n\nchoose a new password by opening the link below:\n\n%s\n\nIf you did not ask for a reset, ignore this message.\n",
			username, link),
		HTML: fmt.Sprintf(`<p>Hi %s,</p><p>Choose a new password by opening the link below:</p><p><a href="%s">Reset password</a></p><p>If you did not ask for a reset, ignore this message.</p>`,
			html.EscapeString(username), html.EscapeString(link)),
	}
}
