package ses

import (
	"context"
	"fmt"
	"html"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"splittab/internal/domain"
	"splittab/internal/port"
)

type sesSender struct {
	client      *sesv2.Client
	fromAddress string
	fromName    string
}

// NewSESSender creates a new SES-backed EmailSender.
func NewSESSender(region, fromAddress, fromName string) (port.EmailSender, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for SES: %w", err)
	}
	client := sesv2.NewFromConfig(cfg)
	return &sesSender{
		client:      client,
		fromAddress: fromAddress,
		fromName:    fromName,
	}, nil
}

func (s *sesSender) SendSettlementSummary(ctx context.Context, toEmail, toName string, summary *domain.SettlementSummary) error {
	subject := "Your bill settlement summary"
	htmlBody := buildSummaryHTML(toName, summary)
	textBody := buildSummaryText(toName, summary)

	from := fmt.Sprintf("%s <%s>", s.fromName, s.fromAddress)

	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: &from,
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: &subject},
				Body: &types.Body{
					Html: &types.Content{Data: &htmlBody},
					Text: &types.Content{Data: &textBody},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("SES SendEmail: %w", err)
	}
	return nil
}

func buildSummaryText(name string, summary *domain.SettlementSummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\nHere is who pays whom:\n\n", name)
	if len(summary.OptimizedSettlements) == 0 {
		b.WriteString("Everyone is settled up.\n")
	}
	for _, t := range summary.OptimizedSettlements {
		fmt.Fprintf(&b, "  %s pays %s %s%.2f\n", t.From, t.To, summary.CurrencySymbol, t.Amount)
	}
	b.WriteString("\nBalances:\n")
	for _, p := range summary.Participants {
		fmt.Fprintf(&b, "  %s: owes %s%.2f, paid %s%.2f\n",
			p.Name, summary.CurrencySymbol, p.Owes, summary.CurrencySymbol, p.Paid)
	}
	b.WriteString("\nSplitTab\n")
	return b.String()
}

func buildSummaryHTML(name string, summary *domain.SettlementSummary) string {
	var rows strings.Builder
	for _, t := range summary.OptimizedSettlements {
		fmt.Fprintf(&rows,
			`<tr><td style="padding: 6px 12px;">%s</td><td style="padding: 6px 12px;">%s</td><td style="padding: 6px 12px; text-align: right;">%s%.2f</td></tr>`,
			html.EscapeString(t.From), html.EscapeString(t.To), html.EscapeString(summary.CurrencySymbol), t.Amount)
	}
	if len(summary.OptimizedSettlements) == 0 {
		rows.WriteString(`<tr><td colspan="3" style="padding: 6px 12px;">Everyone is settled up.</td></tr>`)
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #333;">Settlement summary</h2>
  <p>Hi %s,</p>
  <p>Here is who pays whom:</p>
  <table style="border-collapse: collapse; width: 100%%;">
    <tr style="background-color: #f4f4f5;"><th style="padding: 6px 12px; text-align: left;">From</th><th style="padding: 6px 12px; text-align: left;">To</th><th style="padding: 6px 12px; text-align: right;">Amount</th></tr>
    %s
  </table>
  <hr style="border: none; border-top: 1px solid #eee; margin: 20px 0;">
  <p style="color: #999; font-size: 12px;">SplitTab - Bill Splitting</p>
</body>
</html>`, html.EscapeString(name), rows.String())
}
