package mail

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/techforge-labs/fulfillment/internal/domain/provider"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// Mailer delivers license emails over SMTP.
type Mailer struct {
	dialer *gomail.Dialer
	sender string
	brand  string
	logger *zap.Logger
}

// NewMailer creates a new SMTP mailer.
func NewMailer(host string, port int, username, password, sender, brand string, logger *zap.Logger) *Mailer {
	return &Mailer{
		dialer: gomail.NewDialer(host, port, username, password),
		sender: sender,
		brand:  brand,
		logger: logger,
	}
}

// SendLicenseIssued delivers the license key and download links to the
// purchaser. The dial-and-send runs in a goroutine so the context
// deadline is honored even though gomail itself takes no context.
func (m *Mailer) SendLicenseIssued(ctx context.Context, n *provider.LicenseNotification) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", msg.FormatAddress(m.sender, m.brand))
	msg.SetHeader("To", n.Email)
	msg.SetHeader("Subject", fmt.Sprintf("Your %s License + Downloads", m.brand))
	msg.SetBody("text/html", m.licenseEmailHTML(n))

	done := make(chan error, 1)
	go func() {
		done <- m.dialer.DialAndSend(msg)
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("failed to send license email: %w", err)
		}
		m.logger.Info("License email sent", zap.String("to", n.Email))
		return nil
	case <-ctx.Done():
		return fmt.Errorf("license email send canceled: %w", ctx.Err())
	}
}

func (m *Mailer) licenseEmailHTML(n *provider.LicenseNotification) string {
	names := make([]string, 0, len(n.DownloadLinks))
	for name := range n.DownloadLinks {
		names = append(names, name)
	}
	sort.Strings(names)

	var links strings.Builder
	for _, name := range names {
		links.WriteString(fmt.Sprintf(`<li><a href="%s">%s</a></li>`, n.DownloadLinks[name], name))
	}

	return fmt.Sprintf(`<h2>You're activated 🎉</h2>
<p><b>Plan:</b> %s</p>
<p><b>License Key:</b> %s</p>
<p>Downloads:</p>
<ul>%s</ul>
`, n.Plan, n.LicenseKey, links.String())
}
