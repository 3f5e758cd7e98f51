package services

import (
	"io"

	"gopkg.in/gomail.v2"

	"tolvuleiga/config"
)

// Attachment is an in-memory mail attachment.
type Attachment struct {
	Filename string
	Data     []byte
}

// Mailer is the transactional mail transport. Synchronous, no built-in
// retry; a failed send is the caller's problem.
type Mailer interface {
	Send(to, subject, textBody, htmlBody string, attachments ...Attachment) error
}

type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPMailer(cfg *config.Config) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass),
		from:   cfg.MailFrom,
	}
}

func (m *SMTPMailer) Send(to, subject, textBody, htmlBody string, attachments ...Attachment) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", textBody)
	if htmlBody != "" {
		msg.AddAlternative("text/html", htmlBody)
	}
	for _, att := range attachments {
		data := att.Data
		msg.Attach(att.Filename, gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(data)
			return err
		}))
	}
	return m.dialer.DialAndSend(msg)
}
