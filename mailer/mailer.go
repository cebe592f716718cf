// Package mailer is the outbound email boundary.
package mailer

import (
	"context"
	"encoding/base64"
	"fmt"
	"net"
	"net/smtp"
	"strings"
	"time"
)

type Attachment struct {
	Filename string
	MIMEType string
	Content  []byte
}

type Options struct {
	HTML        bool
	Attachments []Attachment
}

type Sender interface {
	Send(ctx context.Context, to, subject, body string, opts Options) error
}

// SMTPSender delivers through a plain SMTP relay with a bounded dial timeout,
// so a dead relay fails the call instead of hanging the batch.
type SMTPSender struct {
	addr       string
	from       string
	senderName string
	timeout    time.Duration
}

func NewSMTPSender(host, port, from, senderName string) *SMTPSender {
	host = strings.TrimSpace(host)
	port = strings.TrimSpace(port)
	from = strings.TrimSpace(from)
	if from == "" {
		from = "no-reply@coachdesk.local"
	}
	return &SMTPSender{
		addr:       fmt.Sprintf("%s:%s", host, port),
		from:       from,
		senderName: senderName,
		timeout:    10 * time.Second,
	}
}

func (s *SMTPSender) Send(ctx context.Context, to, subject, body string, opts Options) error {
	dialer := net.Dialer{Timeout: s.timeout}
	conn, err := dialer.DialContext(ctx, "tcp", s.addr)
	if err != nil {
		return err
	}
	host, _, _ := net.SplitHostPort(s.addr)
	client, err := smtp.NewClient(conn, host)
	if err != nil {
		conn.Close()
		return err
	}
	defer client.Close()

	if err := client.Mail(s.from); err != nil {
		return err
	}
	if err := client.Rcpt(to); err != nil {
		return err
	}
	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(s.buildMessage(to, subject, body, opts)); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return client.Quit()
}

func (s *SMTPSender) buildMessage(to, subject, body string, opts Options) []byte {
	from := s.from
	if s.senderName != "" {
		from = fmt.Sprintf("%s <%s>", s.senderName, s.from)
	}
	contentType := "text/plain; charset=utf-8"
	if opts.HTML {
		contentType = "text/html; charset=utf-8"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\n", from, to, subject)

	if len(opts.Attachments) == 0 {
		fmt.Fprintf(&b, "Content-Type: %s\r\n\r\n%s\r\n", contentType, body)
		return []byte(b.String())
	}

	const boundary = "coachdesk-mime-boundary"
	fmt.Fprintf(&b, "Content-Type: multipart/mixed; boundary=%s\r\n\r\n", boundary)
	fmt.Fprintf(&b, "--%s\r\nContent-Type: %s\r\n\r\n%s\r\n", boundary, contentType, body)
	for _, att := range opts.Attachments {
		mimeType := att.MIMEType
		if mimeType == "" {
			mimeType = "application/octet-stream"
		}
		fmt.Fprintf(&b, "--%s\r\n", boundary)
		fmt.Fprintf(&b, "Content-Type: %s; name=%q\r\n", mimeType, att.Filename)
		fmt.Fprintf(&b, "Content-Disposition: attachment; filename=%q\r\n", att.Filename)
		fmt.Fprintf(&b, "Content-Transfer-Encoding: base64\r\n\r\n")
		encoded := base64.StdEncoding.EncodeToString(att.Content)
		for len(encoded) > 76 {
			b.WriteString(encoded[:76])
			b.WriteString("\r\n")
			encoded = encoded[76:]
		}
		b.WriteString(encoded)
		b.WriteString("\r\n")
	}
	fmt.Fprintf(&b, "--%s--\r\n", boundary)
	return []byte(b.String())
}
