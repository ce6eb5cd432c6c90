package notifications

import (
	"context"
	"fmt"
	"time"

	"github.com/wneessen/go-mail"
	"github.com/you/blogsvc/domain"
	"go.uber.org/zap"
)

// SMTPConfig holds the outgoing mail server settings
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	// TLS requires STARTTLS; without it the connection stays plain
	TLS     bool
	Timeout time.Duration
}

// SMTPMailer implements domain.Mailer over SMTP
type SMTPMailer struct {
	config SMTPConfig
	logger *zap.Logger
}

// NewSMTPMailer creates a new SMTP mailer
func NewSMTPMailer(config SMTPConfig, logger *zap.Logger) *SMTPMailer {
	if config.Port == 0 {
		config.Port = 587
	}
	if config.Timeout <= 0 {
		config.Timeout = 15 * time.Second
	}
	return &SMTPMailer{config: config, logger: logger.Named("smtp")}
}

func (m *SMTPMailer) message(to, subject, plainText, html string) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.From(m.config.From); err != nil {
		return nil, fmt.Errorf("sender %q: %w", m.config.From, err)
	}
	if err := msg.To(to); err != nil {
		return nil, fmt.Errorf("recipient %q: %w", to, err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, plainText)
	if html != "" {
		msg.AddAlternativeString(mail.TypeTextHTML, html)
	}
	return msg, nil
}

func (m *SMTPMailer) client() (*mail.Client, error) {
	opts := []mail.Option{
		mail.WithPort(m.config.Port),
		mail.WithTimeout(m.config.Timeout),
		mail.WithTLSPolicy(mail.NoTLS),
	}
	if m.config.TLS {
		opts[2] = mail.WithTLSPolicy(mail.TLSMandatory)
	}
	if m.config.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(m.config.Username),
			mail.WithPassword(m.config.Password),
		)
	}
	return mail.NewClient(m.config.Host, opts...)
}

// Send implements domain.Mailer
func (m *SMTPMailer) Send(ctx context.Context, to, subject, plainText, html string) domain.Result {
	if err := m.send(ctx, to, subject, plainText, html); err != nil {
		m.logger.Error("mail delivery failed", zap.String("to", to), zap.String("subject", subject), zap.Error(err))
		return domain.Failure(domain.MsgGeneric)
	}
	m.logger.Debug("mail delivered", zap.String("to", to), zap.String("subject", subject))
	return domain.Success("")
}

func (m *SMTPMailer) send(ctx context.Context, to, subject, plainText, html string) error {
	msg, err := m.message(to, subject, plainText, html)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrMailDelivery, err)
	}
	client, err := m.client()
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrMailDelivery, err)
	}
	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrMailDelivery, err)
	}
	return nil
}

// LogMailer implements domain.Mailer by logging messages. It is wired when
// no SMTP host is configured.
type LogMailer struct {
	logger *zap.Logger
}

// NewLogMailer creates a new LogMailer
func NewLogMailer(logger *zap.Logger) *LogMailer {
	return &LogMailer{logger: logger.Named("mail")}
}

// Send implements domain.Mailer
func (m *LogMailer) Send(_ context.Context, to, subject, plainText, _ string) domain.Result {
	m.logger.Info("[MOCK EMAIL]",
		zap.String("to", to),
		zap.String("subject", subject),
		zap.String("body", plainText),
	)
	return domain.Success("")
}

var (
	_ domain.Mailer = (*SMTPMailer)(nil)
	_ domain.Mailer = (*LogMailer)(nil)
)
