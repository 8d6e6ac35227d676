package smtp

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	smtpPkg "net/smtp"
	"strings"
	"time"
)

const defaultTimeout = 10 * time.Second

type ItfSmtp interface {
	SendMail(ctx context.Context, to string, subject string, body string) error
}

type smtp struct {
	host     string
	addr     string
	mail     string
	password string
	timeout  time.Duration
}

// New returns a mailer whose every delivery, from dial to QUIT, is bounded by
// timeout. A non-positive timeout falls back to ten seconds.
func New(host string, port int, mail string, password string, timeout time.Duration) ItfSmtp {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &smtp{
		host:     host,
		addr:     net.JoinHostPort(host, fmt.Sprint(port)),
		mail:     mail,
		password: password,
		timeout:  timeout,
	}
}

func (s *smtp) SendMail(ctx context.Context, to string, subject string, body string) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, "tcp", s.addr)
	if err != nil {
		return fmt.Errorf("dial smtp: %w", err)
	}

	deadline, _ := ctx.Deadline()
	if err := conn.SetDeadline(deadline); err != nil {
		conn.Close()
		return fmt.Errorf("set smtp deadline: %w", err)
	}
	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	client, err := smtpPkg.NewClient(conn, s.host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("smtp greeting: %w", err)
	}
	defer client.Close()

	if ok, _ := client.Extension("STARTTLS"); ok {
		if err := client.StartTLS(&tls.Config{ServerName: s.host}); err != nil {
			return fmt.Errorf("smtp starttls: %w", err)
		}
	}
	if s.password != "" {
		if ok, _ := client.Extension("AUTH"); ok {
			if err := client.Auth(smtpPkg.PlainAuth("", s.mail, s.password, s.host)); err != nil {
				return fmt.Errorf("smtp auth: %w", err)
			}
		}
	}

	if err := client.Mail(s.mail); err != nil {
		return fmt.Errorf("smtp mail from: %w", err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("smtp rcpt to: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("smtp data: %w", err)
	}
	if _, err := w.Write(buildMessage(s.mail, to, subject, body)); err != nil {
		return fmt.Errorf("smtp write body: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("smtp end data: %w", err)
	}

	return client.Quit()
}

func buildMessage(from, to, subject, body string) []byte {
	var sb strings.Builder
	sb.WriteString("From: " + from + "\r\n")
	sb.WriteString("To: " + to + "\r\n")
	sb.WriteString("Subject: " + subject + "\r\n")
	sb.WriteString("MIME-Version: 1.0\r\n")
	sb.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n")
	sb.WriteString("\r\n")
	sb.WriteString(body)
	return []byte(sb.String())
}
