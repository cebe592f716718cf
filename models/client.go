package models

import (
	"time"

	"coachdesk-backend/store"
	"coachdesk-backend/utils"
)

type Gender string

const (
	GenderMale        Gender = "male"
	GenderFemale      Gender = "female"
	GenderOther       Gender = "other"
	GenderUnspecified Gender = "unspecified"
)

type SessionFormat string

const (
	FormatInPerson  SessionFormat = "in_person"
	FormatOnline    SessionFormat = "online"
	FormatUndecided SessionFormat = "undecided"
)

type ClientStatus string

const (
	StatusInquiry      ClientStatus = "inquiry"
	StatusPreTrial     ClientStatus = "pre_trial"
	StatusTrialDone    ClientStatus = "trial_done"
	StatusContracted   ClientStatus = "contracted"
	StatusCompleted    ClientStatus = "completed"
	StatusDiscontinued ClientStatus = "discontinued"
)

// ClientStatuses lists every status in display order; aggregate queries
// zero-fill against it.
var ClientStatuses = []ClientStatus{
	StatusInquiry, StatusPreTrial, StatusTrialDone,
	StatusContracted, StatusCompleted, StatusDiscontinued,
}

func (s ClientStatus) Valid() bool {
	for _, v := range ClientStatuses {
		if s == v {
			return true
		}
	}
	return false
}

func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther, GenderUnspecified:
		return true
	}
	return false
}

func (f SessionFormat) Valid() bool {
	switch f {
	case FormatInPerson, FormatOnline, FormatUndecided:
		return true
	}
	return false
}

// Active reports whether the client is still in the funnel (not completed or
// discontinued).
func (s ClientStatus) Active() bool {
	return s != StatusCompleted && s != StatusDiscontinued
}

// Client column headers. Order is the storage contract.
const (
	ClientColID        = "Client ID"
	ClientColCreatedAt = "Created At"
	ClientColEmail     = "Email"
	ClientColName      = "Name"
	ClientColNameKana  = "Name (Kana)"
	ClientColGender    = "Gender"
	ClientColBirthDate = "Birth Date"
	ClientColPhone     = "Phone"
	ClientColAddress   = "Address"
	ClientColFormat    = "Preferred Format"
	ClientColStatus    = "Status"
	ClientColNotes     = "Notes"
)

var ClientSchema = store.Schema{
	Sheet:    "clients",
	IDPrefix: "CL",
	Headers: []string{
		ClientColID, ClientColCreatedAt, ClientColEmail, ClientColName,
		ClientColNameKana, ClientColGender, ClientColBirthDate, ClientColPhone,
		ClientColAddress, ClientColFormat, ClientColStatus, ClientColNotes,
	},
}

type Client struct {
	ID              string        `json:"id"`
	CreatedAt       time.Time     `json:"createdAt"`
	Email           string        `json:"email"`
	Name            string        `json:"name"`
	NameKana        string        `json:"nameKana"`
	Gender          Gender        `json:"gender"`
	BirthDate       string        `json:"birthDate"`
	Phone           string        `json:"phone"`
	Address         string        `json:"address"`
	PreferredFormat SessionFormat `json:"preferredFormat"`
	Status          ClientStatus  `json:"status"`
	Notes           string        `json:"notes"`
}

func (c *Client) ToRecord() store.Record {
	return store.Record{
		ClientColID:        c.ID,
		ClientColCreatedAt: utils.FormatDateTime(c.CreatedAt),
		ClientColEmail:     c.Email,
		ClientColName:      c.Name,
		ClientColNameKana:  c.NameKana,
		ClientColGender:    string(c.Gender),
		ClientColBirthDate: c.BirthDate,
		ClientColPhone:     c.Phone,
		ClientColAddress:   c.Address,
		ClientColFormat:    string(c.PreferredFormat),
		ClientColStatus:    string(c.Status),
		ClientColNotes:     c.Notes,
	}
}

func ClientFromRecord(rec store.Record) *Client {
	createdAt, _ := utils.ParseDateTime(rec[ClientColCreatedAt])
	return &Client{
		ID:              rec[ClientColID],
		CreatedAt:       createdAt,
		Email:           rec[ClientColEmail],
		Name:            rec[ClientColName],
		NameKana:        rec[ClientColNameKana],
		Gender:          Gender(rec[ClientColGender]),
		BirthDate:       rec[ClientColBirthDate],
		Phone:           rec[ClientColPhone],
		Address:         rec[ClientColAddress],
		PreferredFormat: SessionFormat(rec[ClientColFormat]),
		Status:          ClientStatus(rec[ClientColStatus]),
		Notes:           rec[ClientColNotes],
	}
}
