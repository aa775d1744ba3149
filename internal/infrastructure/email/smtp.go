// Package email sends administrator notifications over SMTP.
package email

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"

	"gopkg.in/gomail.v2"

	adminUsecases "github.com/perkloop/perkloop/internal/application/admin/usecases"
	withdrawalUsecases "github.com/perkloop/perkloop/internal/application/withdrawal/usecases"
	"github.com/perkloop/perkloop/internal/shared/biztime"
	"github.com/perkloop/perkloop/internal/shared/config"
	"github.com/perkloop/perkloop/internal/shared/logger"
	"github.com/perkloop/perkloop/internal/shared/money"
)

var ErrNoRecipients = errors.New("no admin recipients configured")

var (
	_ adminUsecases.ShutdownNotifier        = (*SMTPNotifier)(nil)
	_ adminUsecases.MaturityNotifier        = (*SMTPNotifier)(nil)
	_ withdrawalUsecases.WithdrawalNotifier = (*SMTPNotifier)(nil)
)

type SMTPConfig struct {
	Host        string
	Port        int
	Username    string
	Password    string
	FromAddress string
	FromName    string
	Recipients  []string
}

// SMTPConfigFrom maps the email section of the configuration.
func SMTPConfigFrom(cfg config.EmailConfig) SMTPConfig {
	return SMTPConfig{
		Host:        cfg.SMTPHost,
		Port:        cfg.SMTPPort,
		Username:    cfg.SMTPUser,
		Password:    cfg.SMTPPassword,
		FromAddress: cfg.FromAddress,
		FromName:    cfg.FromName,
		Recipients:  cfg.AdminRecipients,
	}
}

type mailSender interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPNotifier e-mails every configured administrator.
type SMTPNotifier struct {
	config SMTPConfig
	sender mailSender
	logger logger.Interface
}

func NewSMTPNotifier(config SMTPConfig, log logger.Interface) *SMTPNotifier {
	dialer := gomail.NewDialer(config.Host, config.Port, config.Username, config.Password)

	return &SMTPNotifier{
		config: config,
		sender: dialer,
		logger: log,
	}
}

func (s *SMTPNotifier) NotifyEmergencyShutdown(_ context.Context, notice adminUsecases.ShutdownNotice) error {
	subject := "[Perkloop] Emergency shutdown executed"
	if notice.Partial {
		subject = "[Perkloop] Emergency shutdown PARTIAL"
	}

	plainBody := fmt.Sprintf(`Emergency shutdown executed at %s.

Admin: %s
Reason: %s
Active investments: %d
Suspended: %d
Refund rows: %d
Total refund: %s
`,
		biztime.FormatBizDateTime(notice.ExecutedAt),
		notice.AdminUserID,
		notice.Reason,
		notice.Attempted,
		notice.Suspended,
		notice.RefundRows,
		money.Format(notice.TotalRefund, money.JPY),
	)

	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<h2>Emergency shutdown executed</h2>
			<p>%s</p>
			<table>
				<tr><td>Admin</td><td>%s</td></tr>
				<tr><td>Reason</td><td>%s</td></tr>
				<tr><td>Active investments</td><td>%d</td></tr>
				<tr><td>Suspended</td><td>%d</td></tr>
				<tr><td>Refund rows</td><td>%d</td></tr>
				<tr><td>Total refund</td><td>%s</td></tr>
			</table>
		</body>
		</html>
	`,
		html.EscapeString(biztime.FormatBizDateTime(notice.ExecutedAt)),
		html.EscapeString(notice.AdminUserID),
		html.EscapeString(notice.Reason),
		notice.Attempted,
		notice.Suspended,
		notice.RefundRows,
		html.EscapeString(money.Format(notice.TotalRefund, money.JPY)),
	)

	return s.sendToAdmins(subject, htmlBody, plainBody)
}

func (s *SMTPNotifier) NotifyPrincipalWithdrawal(_ context.Context, notice withdrawalUsecases.PrincipalWithdrawalNotice) error {
	subject := fmt.Sprintf("[Perkloop] Principal withdrawal request #%d", notice.RequestID)

	plainBody := fmt.Sprintf(`A user requested their principal back.

Request: #%d
User: %s
Deposit: %s
Rate: %s JPY/USD
Indicated payout: %s
Requested at: %s
`,
		notice.RequestID,
		notice.UserEmail,
		money.Format(notice.DepositUSD, money.USD),
		notice.ExchangeRate.StringFixed(2),
		money.Format(notice.IndicatedJPY, money.JPY),
		biztime.FormatBizDateTime(notice.RequestedAt),
	)

	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<h2>Principal withdrawal request #%d</h2>
			<p>User <strong>%s</strong> requested their principal back.</p>
			<p>Deposit: %s<br>Rate: %s JPY/USD<br>Indicated payout: %s</p>
			<p>Requested at %s</p>
		</body>
		</html>
	`,
		notice.RequestID,
		html.EscapeString(notice.UserEmail),
		html.EscapeString(money.Format(notice.DepositUSD, money.USD)),
		notice.ExchangeRate.StringFixed(2),
		html.EscapeString(money.Format(notice.IndicatedJPY, money.JPY)),
		html.EscapeString(biztime.FormatBizDateTime(notice.RequestedAt)),
	)

	return s.sendToAdmins(subject, htmlBody, plainBody)
}

func (s *SMTPNotifier) NotifyMaturingInvestments(_ context.Context, notice adminUsecases.MaturityNotice) error {
	subject := fmt.Sprintf("[Perkloop] %d investment(s) maturing within %d days", len(notice.Items), notice.WindowDays)

	var plain, rows strings.Builder
	for _, item := range notice.Items {
		due := biztime.FormatBizDate(item.ExpectedReturnDate)
		owed := money.Format(item.TotalOwed, money.JPY)
		fmt.Fprintf(&plain, "- %s  %s  %s  user %s  (%s)\n", due, item.ProductName, owed, item.UserID, item.InvestmentID)
		fmt.Fprintf(&rows, "<tr><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td></tr>",
			html.EscapeString(due),
			html.EscapeString(item.ProductName),
			html.EscapeString(owed),
			html.EscapeString(item.UserID),
			html.EscapeString(item.InvestmentID),
		)
	}

	plainBody := fmt.Sprintf("Investments due for payout by %s:\n\n%s",
		biztime.FormatBizDate(biztime.AddDays(notice.GeneratedAt, notice.WindowDays)), plain.String())

	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<h2>Investments maturing soon</h2>
			<table>
				<tr><th>Due</th><th>Product</th><th>Owed</th><th>User</th><th>Investment</th></tr>
				%s
			</table>
		</body>
		</html>
	`, rows.String())

	return s.sendToAdmins(subject, htmlBody, plainBody)
}

func (s *SMTPNotifier) sendToAdmins(subject, htmlBody, plainBody string) error {
	if len(s.config.Recipients) == 0 {
		s.logger.Warnw("email not sent, no admin recipients configured", "subject", subject)
		return ErrNoRecipients
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.config.FromAddress, s.config.FromName)
	m.SetHeader("To", s.config.Recipients...)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", plainBody)
	m.AddAlternative("text/html", htmlBody)

	if err := s.sender.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Infow("admin email sent", "subject", subject, "recipients", len(s.config.Recipients))
	return nil
}
