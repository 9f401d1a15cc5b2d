package notify

import (
	"bytes"
	"context"
	"fmt"
	"mime"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"github.com/dtroode/paperdesk/internal/model"
)

// SMTPOptions configures the mail server connection.
type SMTPOptions struct {
	Host     string
	Port     int
	Username string
	Password string
	// Sender is the envelope and header sender. A message's own From
	// becomes its Reply-To.
	Sender string
}

// SMTPDeliverer sends messages through an SMTP relay.
type SMTPDeliverer struct {
	opts     SMTPOptions
	sendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
	now      func() time.Time
}

func NewSMTPDeliverer(opts SMTPOptions) *SMTPDeliverer {
	return &SMTPDeliverer{
		opts:     opts,
		sendMail: smtp.SendMail,
		now:      time.Now,
	}
}

func (s *SMTPDeliverer) Deliver(ctx context.Context, msg model.Message) error {
	addr := net.JoinHostPort(s.opts.Host, strconv.Itoa(s.opts.Port))

	var auth smtp.Auth
	if s.opts.Username != "" {
		auth = smtp.PlainAuth("", s.opts.Username, s.opts.Password, s.opts.Host)
	}

	body, err := s.compose(msg)
	if err != nil {
		return err
	}

	errc := make(chan error, 1)
	go func() {
		errc <- s.sendMail(addr, auth, s.opts.Sender, []string{msg.To}, body)
	}()

	select {
	case err := <-errc:
		if err != nil {
			return fmt.Errorf("failed to send mail: %w", err)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// compose renders msg as an RFC 5322 message. Address headers must not
// contain line breaks.
func (s *SMTPDeliverer) compose(msg model.Message) ([]byte, error) {
	for _, v := range []string{s.opts.Sender, msg.To, msg.From} {
		if strings.ContainsAny(v, "\r\n") {
			return nil, fmt.Errorf("invalid mail header value %q", v)
		}
	}

	var b bytes.Buffer
	header := func(k, v string) {
		fmt.Fprintf(&b, "%s: %s\r\n", k, v)
	}

	header("From", s.opts.Sender)
	header("To", msg.To)
	if msg.From != "" && !strings.EqualFold(msg.From, s.opts.Sender) {
		header("Reply-To", msg.From)
	}
	header("Subject", mime.QEncoding.Encode("utf-8", msg.Subject))
	header("Date", s.now().Format(time.RFC1123Z))
	header("MIME-Version", "1.0")
	header("Content-Type", `text/plain; charset="utf-8"`)
	b.WriteString("\r\n")
	b.WriteString(strings.ReplaceAll(msg.Body, "\n", "\r\n"))
	b.WriteString("\r\n")

	return b.Bytes(), nil
}
