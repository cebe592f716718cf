// services/email_templates.go
package services

import (
	"strings"

	"coachdesk-backend/models"
)

type emailTemplate struct {
	Subject string
	Body    string
}

// Built-in templates. Placeholders use the same {{Key}} form as document
// templates; unknown placeholders are left in place so a missing variable is
// visible in the delivered mail rather than silently blank.
var emailTemplates = map[models.EmailCategory]emailTemplate{
	models.CategoryTrialInvite: {
		Subject: "[{{ServiceName}}] Your trial session is booked",
		Body: `Dear {{ClientName}},

Thank you for your interest in {{ServiceName}}.

Your trial session is booked for {{SessionDate}} at {{SessionTime}}.
{{MeetingLine}}
We look forward to seeing you.

{{SenderName}}`,
	},
	models.CategorySessionConfirm: {
		Subject: "[{{ServiceName}}] Session confirmed: {{SessionDate}} {{SessionTime}}",
		Body: `Dear {{ClientName}},

This confirms your upcoming session on {{SessionDate}} at {{SessionTime}}.
{{MeetingLine}}
If the time no longer works, please reply to this mail.

{{SenderName}}`,
	},
	models.CategoryReminder: {
		Subject: "[{{ServiceName}}] Reminder: session on {{SessionDate}} {{SessionTime}}",
		Body: `Dear {{ClientName}},

This is a reminder of your session on {{SessionDate}} at {{SessionTime}}.
{{MeetingLine}}
{{SenderName}}`,
	},
	models.CategoryPaymentInvite: {
		Subject: "[{{ServiceName}}] Payment details: {{LineItem}}",
		Body: `Dear {{ClientName}},

Please transfer the fee below at your convenience.

  Item:   {{LineItem}}
  Amount: {{Amount}}

Bank details:
{{BankInfo}}

{{SenderName}}`,
	},
	models.CategoryPaymentConfirm: {
		Subject: "[{{ServiceName}}] Payment received: {{LineItem}}",
		Body: `Dear {{ClientName}},

We have confirmed your payment of {{Amount}} ({{LineItem}}).
Thank you.

{{SenderName}}`,
	},
	models.CategoryContinuationOffer: {
		Subject: "[{{ServiceName}}] Continuing your program",
		Body: `Dear {{ClientName}},

Thank you for completing your trial session.

If you would like to continue, the full program is available below.

  Item:   {{LineItem}}
  Amount: {{Amount}}

Please reply to this mail and we will arrange your first session.

{{SenderName}}`,
	},
	models.CategoryReceiptSent: {
		Subject: "[{{ServiceName}}] Your receipt",
		Body: `Dear {{ClientName}},

Thank you for your payment of {{Amount}} ({{LineItem}}).
Your receipt is attached.

{{SenderName}}`,
	},
	models.CategoryNextSchedule: {
		Subject: "[{{ServiceName}}] Scheduling your next session",
		Body: `Dear {{ClientName}},

Thank you for your session today. Please reply with a few dates and times
that work for your next session.

{{SenderName}}`,
	},
}

func renderTemplate(text string, vars map[string]string) string {
	for key, value := range vars {
		text = strings.ReplaceAll(text, "{{"+key+"}}", value)
	}
	return text
}
