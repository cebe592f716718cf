package models

import "coachdesk-backend/store"

type Setting struct {
	Key         string `json:"key"`
	Value       string `json:"value"`
	Description string `json:"description"`
}

func SettingFromRecord(rec store.Record) Setting {
	return Setting{
		Key:         rec["Key"],
		Value:       rec["Value"],
		Description: rec["Description"],
	}
}

// DefaultSettings are seeded by the init command; existing keys are never
// overwritten.
var DefaultSettings = []Setting{
	{"ADMIN_EMAIL", "coach@example.com", "Administrator email address"},
	{"SERVICE_NAME", "Mind Engineering Coaching", "Service name"},
	{"MAIL_SENDER_NAME", "Mind Engineering Coaching", "Mail sender display name"},
	{"CORPORATE_COLOR", "#c50502", "Corporate color"},
	{"TRIAL_FEE", "6000", "Trial session fee"},
	{"CONTINUATION_FEE", "214000", "Continuation program fee"},
	{"SESSION_DURATION", "30", "Session duration in minutes"},
	{"BUSINESS_ADDRESS", "", "Business address"},
	{"BUSINESS_PHONE", "", "Business phone number"},
	{"BANK_INFO", "", "Bank transfer details"},
}
