// services/client_service.go
package services

import (
	"time"

	"coachdesk-backend/apperr"
	"coachdesk-backend/models"
	"coachdesk-backend/store"
	"coachdesk-backend/utils"
)

type ClientService struct {
	records *store.RecordStore
}

func NewClientService(sheet store.Sheet) *ClientService {
	return &ClientService{records: store.NewRecordStore(sheet, models.ClientSchema)}
}

type ClientInput struct {
	Email           string               `json:"email" binding:"required"`
	Name            string               `json:"name" binding:"required"`
	NameKana        string               `json:"nameKana"`
	Gender          models.Gender        `json:"gender"`
	BirthDate       string               `json:"birthDate"`
	Phone           string               `json:"phone"`
	Address         string               `json:"address"`
	PreferredFormat models.SessionFormat `json:"preferredFormat"`
	Status          models.ClientStatus  `json:"status"`
	Notes           string               `json:"notes"`
}

type ClientPatch struct {
	Email           *string               `json:"email"`
	Name            *string               `json:"name"`
	NameKana        *string               `json:"nameKana"`
	Gender          *models.Gender        `json:"gender"`
	BirthDate       *string               `json:"birthDate"`
	Phone           *string               `json:"phone"`
	Address         *string               `json:"address"`
	PreferredFormat *models.SessionFormat `json:"preferredFormat"`
	Status          *models.ClientStatus  `json:"status"`
	Notes           *string               `json:"notes"`
}

func (s *ClientService) Create(input ClientInput) (*models.Client, error) {
	if input.Name == "" || input.Email == "" {
		return nil, apperr.Validationf("name and email are required")
	}
	if !utils.ValidateEmail(input.Email) {
		return nil, apperr.Validationf("invalid email address %q", input.Email)
	}
	if input.Phone != "" && !utils.ValidatePhone(input.Phone) {
		return nil, apperr.Validationf("invalid phone number %q", input.Phone)
	}
	if input.Gender == "" {
		input.Gender = models.GenderUnspecified
	}
	if input.PreferredFormat == "" {
		input.PreferredFormat = models.FormatUndecided
	}
	if input.Status == "" {
		input.Status = models.StatusInquiry
	}
	if !input.Gender.Valid() {
		return nil, apperr.Validationf("invalid gender %q", input.Gender)
	}
	if !input.PreferredFormat.Valid() {
		return nil, apperr.Validationf("invalid session format %q", input.PreferredFormat)
	}
	if !input.Status.Valid() {
		return nil, apperr.Validationf("invalid client status %q", input.Status)
	}

	client := &models.Client{
		CreatedAt:       time.Now(),
		Email:           input.Email,
		Name:            input.Name,
		NameKana:        input.NameKana,
		Gender:          input.Gender,
		BirthDate:       input.BirthDate,
		Phone:           input.Phone,
		Address:         input.Address,
		PreferredFormat: input.PreferredFormat,
		Status:          input.Status,
		Notes:           input.Notes,
	}
	stored, err := s.records.Append(client.ToRecord())
	if err != nil {
		return nil, err
	}
	return models.ClientFromRecord(stored), nil
}

func (s *ClientService) FindByID(id string) (*models.Client, error) {
	rec, err := s.records.FindByID(id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, apperr.NotFoundf("client %s not found", id)
	}
	return models.ClientFromRecord(rec), nil
}

// FindAll returns clients in table order. activeOnly excludes completed and
// discontinued clients.
func (s *ClientService) FindAll(activeOnly bool) ([]*models.Client, error) {
	var filter func(store.Record) bool
	if activeOnly {
		filter = func(rec store.Record) bool {
			return models.ClientStatus(rec[models.ClientColStatus]).Active()
		}
	}
	recs, err := s.records.ListAll(filter)
	if err != nil {
		return nil, err
	}
	clients := make([]*models.Client, len(recs))
	for i, rec := range recs {
		clients[i] = models.ClientFromRecord(rec)
	}
	return clients, nil
}

func (s *ClientService) Update(id string, patch ClientPatch) (*models.Client, error) {
	partial := store.Record{}
	if patch.Email != nil {
		if !utils.ValidateEmail(*patch.Email) {
			return nil, apperr.Validationf("invalid email address %q", *patch.Email)
		}
		partial[models.ClientColEmail] = *patch.Email
	}
	if patch.Name != nil {
		if *patch.Name == "" {
			return nil, apperr.Validationf("name cannot be empty")
		}
		partial[models.ClientColName] = *patch.Name
	}
	if patch.NameKana != nil {
		partial[models.ClientColNameKana] = *patch.NameKana
	}
	if patch.Gender != nil {
		if !patch.Gender.Valid() {
			return nil, apperr.Validationf("invalid gender %q", *patch.Gender)
		}
		partial[models.ClientColGender] = string(*patch.Gender)
	}
	if patch.BirthDate != nil {
		partial[models.ClientColBirthDate] = *patch.BirthDate
	}
	if patch.Phone != nil {
		if *patch.Phone != "" && !utils.ValidatePhone(*patch.Phone) {
			return nil, apperr.Validationf("invalid phone number %q", *patch.Phone)
		}
		partial[models.ClientColPhone] = *patch.Phone
	}
	if patch.Address != nil {
		partial[models.ClientColAddress] = *patch.Address
	}
	if patch.PreferredFormat != nil {
		if !patch.PreferredFormat.Valid() {
			return nil, apperr.Validationf("invalid session format %q", *patch.PreferredFormat)
		}
		partial[models.ClientColFormat] = string(*patch.PreferredFormat)
	}
	if patch.Status != nil {
		// Any status may follow any other; there is no transition guard.
		if !patch.Status.Valid() {
			return nil, apperr.Validationf("invalid client status %q", *patch.Status)
		}
		partial[models.ClientColStatus] = string(*patch.Status)
	}
	if patch.Notes != nil {
		partial[models.ClientColNotes] = *patch.Notes
	}

	updated, err := s.records.UpdateBy(id, partial)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, apperr.NotFoundf("client %s not found", id)
	}
	return models.ClientFromRecord(updated), nil
}

// StatusSummary counts clients per status; every status is present in the
// result, zero-filled.
func (s *ClientService) StatusSummary() (map[models.ClientStatus]int, error) {
	recs, err := s.records.ListAll(nil)
	if err != nil {
		return nil, err
	}
	summary := make(map[models.ClientStatus]int, len(models.ClientStatuses))
	for _, st := range models.ClientStatuses {
		summary[st] = 0
	}
	for _, rec := range recs {
		summary[models.ClientStatus(rec[models.ClientColStatus])]++
	}
	return summary, nil
}
