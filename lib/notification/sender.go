package notification

import (
	"fmt"
	"runtime/debug"

	log "github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"
)

// Sender delivers the templated welcome message. The contract is strict:
// Send never panics and never returns an error, only a success flag, so
// callers (registration, application creation) are never blocked by a
// provider outage.
type Sender interface {
	Send(toAddress, displayName string) bool
}

var Instance Sender

func NewHandler(host string, port int, apiKey, senderEmail, senderName string) {
	Instance = &impl{
		host:        host,
		port:        port,
		apiKey:      apiKey,
		senderEmail: senderEmail,
		senderName:  senderName,
	}
}

type impl struct {
	host        string
	port        int
	apiKey      string
	senderEmail string
	senderName  string
}

func (i impl) Send(toAddress, displayName string) (ok bool) {
	logger := log.WithField("to", toAddress)
	defer func() {
		if r := recover(); r != nil {
			logger.
				WithField("panic_stack", string(debug.Stack())).
				Errorf("panic in welcome mail send: (%v)", r)
			ok = false
		}
	}()
	// Missing credential or sender address is a configuration failure,
	// not a transient one; report it once per send and bail out.
	if i.apiKey == "" || i.senderEmail == "" {
		logger.Warn("welcome mail not sent, mail provider is not configured")
		return false
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", i.senderEmail, i.senderName)
	m.SetHeader("To", toAddress)
	m.SetHeader("Subject", "Welcome to CareLink")
	m.SetBody("text/html", welcomeBody(displayName))

	d := gomail.NewDialer(i.host, i.port, "apikey", i.apiKey)
	if err := d.DialAndSend(m); err != nil {
		logger.WithError(err).Error("welcome mail send failed")
		return false
	}
	logger.Info("welcome mail sent")
	return true
}

func welcomeBody(displayName string) string {
	if displayName == "" {
		displayName = "there"
	}
	return fmt.Sprintf(
		"<p>Hi %s,</p>"+
			"<p>Thanks for starting your caregiver application with CareLink. "+
			"You can return to it any time and continue where you left off.</p>"+
			"<p>The CareLink team</p>", displayName)
}
