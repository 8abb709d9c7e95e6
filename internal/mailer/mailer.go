package mailer

import (
	"crypto/tls"
	"fmt"
	"log/slog"
	"net/mail"
	"net/url"

	"github.com/dajohi/goemail"
)

// Mailer delivers notification emails. The core treats delivery as
// fire-and-forget; callers must not block a response on Send.
type Mailer interface {
	Send(to, subject, body string) error
}

// SMTP sends mail from a preset address. When any of host, user or
// password is missing the client is disabled and Send becomes a no-op,
// which keeps local runs and tests from needing a mail server.
type SMTP struct {
	smtp        *goemail.SMTP
	fromName    string
	fromAddress string
	disabled    bool
	log         *slog.Logger
}

func NewSMTP(host, user, password, fromAddress string, skipVerify bool, lgr *slog.Logger) (*SMTP, error) {
	const op = "mailer.NewSMTP"

	if host == "" || user == "" || password == "" {
		lgr.Info("mail disabled")
		return &SMTP{disabled: true, log: lgr}, nil
	}

	u, err := url.Parse(fmt.Sprintf("smtps://%v:%v@%v", user, password, host))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	from, err := mail.ParseAddress(fromAddress)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	smtp, err := goemail.NewSMTP(u.String(), &tls.Config{InsecureSkipVerify: skipVerify})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	lgr.Info("mail enabled", slog.String("host", host), slog.String("from", from.Address))

	return &SMTP{
		smtp:        smtp,
		fromName:    from.Name,
		fromAddress: from.Address,
		log:         lgr,
	}, nil
}

func (c *SMTP) Send(to, subject, body string) error {
	if c.disabled {
		return nil
	}

	msg := goemail.NewMessage(c.fromAddress, subject, body)
	msg.SetName(c.fromName)
	msg.AddTo(to)

	return c.smtp.Send(msg)
}
