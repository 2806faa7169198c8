package notify

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"seatbooking/internal/config"
	"seatbooking/internal/domain"

	"github.com/rs/zerolog"
	"github.com/wneessen/go-mail"
)

// mailSender is the part of *mail.Client the mailer uses.
type mailSender interface {
	DialAndSendWithContext(ctx context.Context, messages ...*mail.Msg) error
}

// SMTPMailer delivers plain-text mail through one SMTP relay.
type SMTPMailer struct {
	cfg    config.MailConfig
	dial   func(config.MailConfig) (mailSender, error)
	logger *zerolog.Logger
	now    func() time.Time
}

var _ domain.Mailer = (*SMTPMailer)(nil)

func NewSMTPMailer(cfg config.MailConfig, logger *zerolog.Logger) *SMTPMailer {
	return &SMTPMailer{cfg: cfg, dial: newMailClient, logger: logger, now: time.Now}
}

func newMailClient(cfg config.MailConfig) (mailSender, error) {
	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTLSPolicy(tlsPolicy(cfg.TLSPolicy)),
	}
	if cfg.Timeout > 0 {
		opts = append(opts, mail.WithTimeout(cfg.Timeout))
	}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}
	return mail.NewClient(cfg.Host, opts...)
}

func tlsPolicy(policy string) mail.TLSPolicy {
	switch policy {
	case "mandatory":
		return mail.TLSMandatory
	case "none":
		return mail.NoTLS
	default:
		return mail.TLSOpportunistic
	}
}

func (m *SMTPMailer) Send(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.ContainsAny(to, "\r\n") || strings.ContainsAny(subject, "\r\n") {
		return errors.New("invalid mail header")
	}

	msg, err := m.message(to, subject, body)
	if err != nil {
		return err
	}

	client, err := m.dial(m.cfg)
	if err != nil {
		return fmt.Errorf("smtp client for %s: %w", m.cfg.Host, err)
	}
	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("smtp send via %s: %w", m.cfg.Host, err)
	}
	m.logger.Debug().Str("to", to).Str("subject", subject).Msg("Mail sent")
	return nil
}

func (m *SMTPMailer) message(to, subject, body string) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.From(m.cfg.From); err != nil {
		return nil, fmt.Errorf("mail from %q: %w", m.cfg.From, err)
	}
	if err := msg.To(to); err != nil {
		return nil, fmt.Errorf("mail to %q: %w", to, err)
	}
	msg.Subject(subject)
	msg.SetDateWithValue(m.now())
	msg.SetBodyString(mail.TypeTextPlain, body)
	return msg, nil
}

// LogMailer stands in when SMTP is not configured. Bodies may carry reset
// codes, so they only appear at debug level.
type LogMailer struct {
	logger *zerolog.Logger
}

func NewLogMailer(logger *zerolog.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

func (m *LogMailer) Send(_ context.Context, to, subject, body string) error {
	m.logger.Info().Str("to", to).Str("subject", subject).Msg("Mail not sent, SMTP disabled")
	m.logger.Debug().Str("to", to).Str("body", body).Msg("Mail body")
	return nil
}

// NewMailer picks SMTP when enabled and the log mailer otherwise.
func NewMailer(cfg config.MailConfig, logger *zerolog.Logger) domain.Mailer {
	if cfg.Enabled && cfg.Host != "" {
		return NewSMTPMailer(cfg, logger)
	}
	return NewLogMailer(logger)
}
