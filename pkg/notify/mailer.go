package notify

import (
	"context"
	"crypto/tls"
	"errors"
	"net"
	"net/http"
	"net/smtp"
	"time"
)

var smtpConnectTimeout = time.Second * 5

// Message is one plaintext email, assembled and sent within a single run.
type Message struct {
	From    string
	To      string
	Subject string
	Body    string
}

// Sender delivers a composed message.
type Sender interface {
	Send(ctx context.Context, m Message) error
}

// SMTPSender submits mail over a STARTTLS-upgraded, authenticated connection
// to a submission endpoint (host:port).
type SMTPSender struct {
	Addr     string
	Username string
	Password string
}

func (s *SMTPSender) Send(ctx context.Context, m Message) error {
	cn, err := s.connect()
	if err != nil {
		return err
	}
	defer cn.Close()

	if err := cn.Mail(m.From); err != nil {
		return err
	}
	if err := cn.Rcpt(m.To); err != nil {
		return err
	}
	wr, err := cn.Data()
	if err != nil {
		return err
	}
	defer wr.Close()

	header := http.Header{}
	header.Set("From", m.From)
	header.Set("To", m.To)
	header.Set("Subject", m.Subject)
	if err := header.Write(wr); err != nil {
		return err
	}
	if _, err := wr.Write([]byte("\r\n")); err != nil {
		return err
	}
	if _, err := wr.Write([]byte(m.Body)); err != nil {
		return err
	}
	return nil
}

func (s *SMTPSender) connect() (*smtp.Client, error) {
	host, _, _ := net.SplitHostPort(s.Addr)
	c, err := net.DialTimeout("tcp", s.Addr, smtpConnectTimeout)
	if err != nil {
		return nil, errors.New("failed to connect to SMTP server: " + err.Error())
	}
	cn, err := smtp.NewClient(c, host)
	if err != nil {
		return nil, errors.New("failed to create SMTP client: " + err.Error())
	}
	if err := cn.StartTLS(&tls.Config{ServerName: host}); err != nil {
		return nil, errors.New("failed to StartTLS with SMTP server: " + err.Error())
	}
	if err := cn.Auth(smtp.PlainAuth("", s.Username, s.Password, host)); err != nil {
		return nil, errors.New("smtp auth failed: " + err.Error())
	}
	return cn, nil
}
