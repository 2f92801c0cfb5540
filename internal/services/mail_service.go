package services

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"html/template"
	"log"
	"net"
	"net/smtp"
	"time"
)

type IMailService interface {
	SendVerificationCode(to, code string) error
	SendMailToNotifyUser(to, subject, body string) error
}

// SMTPConfig holds SMTP + branding config. An empty Host switches the
// service into development mode where mail is logged instead of sent.
type SMTPConfig struct {
	Host       string // e.g. "smtp.gmail.com"
	Port       int    // 587 (STARTTLS) or 465 (SMTPS)
	Username   string
	Password   string
	From       string // envelope from, e.g. "no-reply@splitly.app"
	FromName   string
	UseSSL     bool // true for SMTPS 465, false for STARTTLS 587
	RequireTLS bool

	AppName string
}

type smtpMailService struct {
	cfg     SMTPConfig
	htmlTpl *template.Template
}

func NewSMTPMailService(cfg SMTPConfig) (IMailService, error) {
	htmlTpl, err := template.New("mail").Parse(mailHTMLTemplate)
	if err != nil {
		return nil, err
	}
	return &smtpMailService{cfg: cfg, htmlTpl: htmlTpl}, nil
}

type mailData struct {
	Title   string
	Intro   string
	Code    string
	AppName string
	Year    int
}

const mailHTMLTemplate = `<!doctype html>
<html>
<head><meta charset="UTF-8"><title>{{.Title}}</title></head>
<body style="margin:0;background:#f4f4f7;font-family:Arial,Helvetica,sans-serif;color:#333">
  <div style="max-width:600px;margin:0 auto;padding:32px 16px">
    <div style="background:#ffffff;border-radius:8px;padding:32px">
      <h2 style="margin-top:0">{{.AppName}}</h2>
      <h1 style="font-size:22px">{{.Title}}</h1>
      <p style="line-height:1.6">{{.Intro}}</p>
      {{if .Code}}
      <div style="text-align:center;margin:24px 0">
        <span style="font-size:32px;font-weight:bold;letter-spacing:6px">{{.Code}}</span>
      </div>
      {{end}}
      <p style="color:#999;font-size:12px">&copy; {{.Year}} {{.AppName}}</p>
    </div>
  </div>
</body>
</html>`

func (s *smtpMailService) SendVerificationCode(to, code string) error {
	subject := "Verify your email"
	return s.deliver(to, subject, mailData{
		Title:   subject,
		Intro:   "Use the code below to verify your email address. It expires in 24 hours.",
		Code:    code,
		AppName: s.cfg.AppName,
		Year:    time.Now().Year(),
	}, fmt.Sprintf("Your %s verification code is %s", s.cfg.AppName, code))
}

func (s *smtpMailService) SendMailToNotifyUser(to, subject, body string) error {
	return s.deliver(to, subject, mailData{
		Title:   subject,
		Intro:   body,
		AppName: s.cfg.AppName,
		Year:    time.Now().Year(),
	}, body)
}

func (s *smtpMailService) deliver(to, subject string, data mailData, textBody string) error {
	if s.cfg.Host == "" {
		log.Printf("Mail (development mode) to=%s subject=%q code=%q", to, subject, data.Code)
		return nil
	}

	var html bytes.Buffer
	if err := s.htmlTpl.Execute(&html, data); err != nil {
		return err
	}
	return s.send(to, subject, html.String(), textBody)
}

func (s *smtpMailService) send(to, subject, htmlBody, textBody string) error {
	boundary := fmt.Sprintf("mixed_%d", time.Now().UnixNano())

	var msg bytes.Buffer
	write := func(format string, a ...any) { _, _ = msg.WriteString(fmt.Sprintf(format, a...)) }

	write("From: %s <%s>\r\n", s.cfg.FromName, s.cfg.From)
	write("To: %s\r\n", to)
	write("Subject: %s\r\n", subject)
	write("Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	write("MIME-Version: 1.0\r\n")
	write("Content-Type: multipart/alternative; boundary=%q\r\n", boundary)
	write("\r\n")

	write("--%s\r\n", boundary)
	write("Content-Type: text/plain; charset=UTF-8\r\n\r\n")
	write("%s\r\n\r\n", textBody)

	write("--%s\r\n", boundary)
	write("Content-Type: text/html; charset=UTF-8\r\n\r\n")
	write("%s\r\n\r\n", htmlBody)

	write("--%s--\r\n", boundary)

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	tlsCfg := &tls.Config{ServerName: s.cfg.Host, MinVersion: tls.VersionTLS12}

	var c *smtp.Client
	if s.cfg.UseSSL {
		conn, err := tls.Dial("tcp", addr, tlsCfg)
		if err != nil {
			return err
		}
		c, err = smtp.NewClient(conn, s.cfg.Host)
		if err != nil {
			conn.Close()
			return err
		}
	} else {
		dialer := &net.Dialer{Timeout: 10 * time.Second}
		conn, err := dialer.Dial("tcp", addr)
		if err != nil {
			return err
		}
		c, err = smtp.NewClient(conn, s.cfg.Host)
		if err != nil {
			conn.Close()
			return err
		}
		if ok, _ := c.Extension("STARTTLS"); ok {
			if err = c.StartTLS(tlsCfg); err != nil {
				return err
			}
		} else if s.cfg.RequireTLS {
			return fmt.Errorf("server does not support STARTTLS and RequireTLS=true")
		}
	}
	defer c.Quit()

	if err := c.Auth(auth); err != nil {
		return err
	}
	if err := c.Mail(s.cfg.From); err != nil {
		return err
	}
	if err := c.Rcpt(to); err != nil {
		return err
	}
	w, err := c.Data()
	if err != nil {
		return err
	}
	if _, err = w.Write(msg.Bytes()); err != nil {
		return err
	}
	return w.Close()
}
