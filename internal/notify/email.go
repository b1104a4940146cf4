package notify

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"mime"
	"net"
	"net/mail"
	"net/smtp"
	"strconv"
	"strings"
	"time"
)

// implicitTLSPort is the SMTPS port; other ports use STARTTLS when offered.
const implicitTLSPort = 465

// EmailConfig holds SMTP relay settings.
type EmailConfig struct {
	RelayHost string
	Port      int
	Username  string
	Password  string
	From      string
	To        string
}

// sendFunc matches smtp.SendMail.
type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// EmailNotifier implements Notifier by sending plain-text email through an
// SMTP relay.
type EmailNotifier struct {
	addr    string
	host    string
	from    *mail.Address
	to      *mail.Address
	auth    smtp.Auth
	tlsCfg  *tls.Config
	send    sendFunc
	nowFunc func() time.Time
}

// EmailOption configures an EmailNotifier.
type EmailOption func(*EmailNotifier)

// withSendFunc replaces the SMTP transport. Used by tests.
func withSendFunc(f sendFunc) EmailOption {
	return func(e *EmailNotifier) {
		e.send = f
	}
}

// WithEmailNowFunc overrides the clock used for the Date header.
func WithEmailNowFunc(f func() time.Time) EmailOption {
	return func(e *EmailNotifier) {
		e.nowFunc = f
	}
}

// NewEmailNotifier validates cfg and creates an EmailNotifier.
func NewEmailNotifier(cfg EmailConfig, opts ...EmailOption) (*EmailNotifier, error) {
	host := strings.TrimSpace(cfg.RelayHost)
	if host == "" {
		return nil, errors.New("email: relay host is required")
	}

	from, err := mail.ParseAddress(cfg.From)
	if err != nil {
		return nil, fmt.Errorf("email: parsing from address: %w", err)
	}
	to, err := mail.ParseAddress(cfg.To)
	if err != nil {
		return nil, fmt.Errorf("email: parsing to address: %w", err)
	}

	port := cfg.Port
	if port <= 0 {
		port = implicitTLSPort
	}

	e := &EmailNotifier{
		addr:    net.JoinHostPort(host, strconv.Itoa(port)),
		host:    host,
		from:    from,
		to:      to,
		tlsCfg:  &tls.Config{ServerName: host, MinVersion: tls.VersionTLS12},
		nowFunc: time.Now,
	}

	if strings.TrimSpace(cfg.Username) != "" && cfg.Password != "" {
		e.auth = smtp.PlainAuth("", strings.TrimSpace(cfg.Username), cfg.Password, host)
	}

	if port == implicitTLSPort {
		e.send = e.sendImplicitTLS
	} else {
		e.send = smtp.SendMail
	}

	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Send composes the message as a plain-text email and delivers it.
func (e *EmailNotifier) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	raw := e.buildMessage(msg)

	errCh := make(chan error, 1)
	go func() {
		errCh <- e.send(e.addr, e.auth, e.from.Address, []string{e.to.Address}, raw)
	}()

	select {
	case <-ctx.Done():
		return fmt.Errorf("sending email: %w", ctx.Err())
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("sending email: %w", err)
		}
		return nil
	}
}

func (e *EmailNotifier) buildMessage(msg Message) []byte {
	headers := [][2]string{
		{"From", e.from.String()},
		{"To", e.to.String()},
		{"Subject", mimeHeader(msg.Subject)},
		{"Date", e.nowFunc().Format(time.RFC1123Z)},
		{"MIME-Version", "1.0"},
		{"Content-Type", "text/plain; charset=utf-8"},
		{"Content-Transfer-Encoding", "8bit"},
	}

	var b strings.Builder
	for _, h := range headers {
		b.WriteString(h[0])
		b.WriteString(": ")
		b.WriteString(h[1])
		b.WriteString("\r\n")
	}
	b.WriteString("\r\n")
	b.WriteString(strings.ReplaceAll(msg.Body, "\n", "\r\n"))
	b.WriteString("\r\n")
	return []byte(b.String())
}

// mimeHeader Q-encodes a header value when it is not plain ASCII.
func mimeHeader(v string) string {
	for _, r := range v {
		if r > 127 {
			return mime.QEncoding.Encode("utf-8", v)
		}
	}
	return v
}

func (e *EmailNotifier) sendImplicitTLS(
	addr string,
	a smtp.Auth,
	from string,
	to []string,
	msg []byte,
) error {
	conn, err := tls.Dial("tcp", addr, e.tlsCfg)
	if err != nil {
		return fmt.Errorf("dial smtp: %w", err)
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, e.host)
	if err != nil {
		return fmt.Errorf("create smtp client: %w", err)
	}
	defer client.Close()

	if a != nil {
		if err := client.Auth(a); err != nil {
			return fmt.Errorf("smtp auth: %w", err)
		}
	}
	if err := client.Mail(from); err != nil {
		return fmt.Errorf("smtp mail from: %w", err)
	}
	for _, rcpt := range to {
		if err := client.Rcpt(rcpt); err != nil {
			return fmt.Errorf("smtp rcpt to: %w", err)
		}
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("smtp data: %w", err)
	}
	if _, err := w.Write(msg); err != nil {
		return fmt.Errorf("smtp write: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("smtp close data: %w", err)
	}
	return client.Quit()
}
