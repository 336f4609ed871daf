// Package mailer sends outbound email through a buffered FIFO queue with a
// single consumer goroutine, so SMTP latency never blocks request handling.
package mailer

import (
	"fmt"
	"log"
	"net/smtp"

	"blog-app/config"
)

type Message struct {
	To      string
	Subject string
	Body    string
}

type Queue struct {
	ch chan Message
}

// Default is the process-wide outbox. main() starts its consumer; tests that
// never start it simply accumulate messages in the buffer.
var Default = NewQueue(64)

func NewQueue(size int) *Queue {
	return &Queue{ch: make(chan Message, size)}
}

// Start launches the single consumer. Messages are drained sequentially;
// a failed send is logged and dropped (no retry, no dead-letter).
func (q *Queue) Start() {
	go func() {
		for msg := range q.ch {
			if err := send(msg); err != nil {
				log.Println("mailer: send failed:", err)
			}
		}
	}()
}

// Enqueue never blocks the request path. A full buffer drops the message,
// which is logged; verification and reset flows have resend endpoints.
func (q *Queue) Enqueue(msg Message) {
	select {
	case q.ch <- msg:
	default:
		log.Println("mailer: queue full, dropping message to", msg.To)
	}
}

func send(m Message) error {
	from := config.SMTP_FROM
	auth := smtp.PlainAuth("", from, config.SMTP_PASSWORD, config.SMTP_HOST)

	message := []byte("Subject: " + m.Subject + "\r\n" +
		"From: " + from + "\r\n" +
		"To: " + m.To + "\r\n" +
		"Content-Type: text/plain; charset=UTF-8\r\n" +
		"\r\n" +
		m.Body + "\r\n")

	err := smtp.SendMail(config.SMTP_HOST+":"+config.SMTP_PORT, auth, from, []string{m.To}, message)
	if err != nil {
		fmt.Println("SMTP error:", err)
	}
	return err
}

// VerificationMessage builds the email carrying an email-verify link.
func VerificationMessage(to, token string) Message {
	link := fmt.Sprintf("%s/verify?token=%s", config.APP_BASE_URL, token)
	return Message{
		To:      to,
		Subject: "Verify Your Account",
		Body:    fmt.Sprintf("Click the following link to verify your account:\n\n%s", link),
	}
}

// PasswordResetMessage builds the email carrying a password-reset link.
func PasswordResetMessage(to, token string) Message {
	link := fmt.Sprintf("%s/reset-password?token=%s", config.FRONTEND_URL, token)
	return Message{
		To:      to,
		Subject: "Reset Your Password",
		Body:    fmt.Sprintf("Click the following link to reset your password:\n\n%s", link),
	}
}
