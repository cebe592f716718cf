package services

import (
	"testing"

	"coachdesk-backend/apperr"
	"coachdesk-backend/models"
)

func TestClientService_CreateDefaults(t *testing.T) {
	env := newTestEnv(t)

	client, err := env.clients.Create(ClientInput{Name: "hanako", Email: "hanako@example.com"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if client.Status != models.StatusInquiry {
		t.Fatalf("expected default status inquiry, got %q", client.Status)
	}
	if client.PreferredFormat != models.FormatUndecided {
		t.Fatalf("expected default format undecided, got %q", client.PreferredFormat)
	}
	if client.ID[:2] != "CL" {
		t.Fatalf("expected CL id, got %q", client.ID)
	}
}

func TestClientService_CreateRejectsBadInput(t *testing.T) {
	env := newTestEnv(t)

	cases := []ClientInput{
		{Name: "", Email: "a@example.com"},
		{Name: "a", Email: "not-an-email"},
		{Name: "a", Email: "a@example.com", Phone: "abc"},
		{Name: "a", Email: "a@example.com", Status: "negotiating"},
	}
	for i, input := range cases {
		if _, err := env.clients.Create(input); !apperr.IsValidation(err) {
			t.Fatalf("case %d: expected validation error, got %v", i, err)
		}
	}
}

func TestClientService_FindMissingIsNotFound(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.clients.FindByID("CL0000000000000")
	if !apperr.IsNotFound(err) {
		t.Fatalf("expected not-found, got %v", err)
	}
}

func TestClientService_UpdateStatusOnly(t *testing.T) {
	env := newTestEnv(t)
	client := env.addClient(t, "ichiro", models.StatusInquiry, models.FormatOnline)

	status := models.StatusContracted
	updated, err := env.clients.Update(client.ID, ClientPatch{Status: &status})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Status != models.StatusContracted {
		t.Fatalf("expected contracted, got %q", updated.Status)
	}
	if updated.Email != client.Email || updated.PreferredFormat != client.PreferredFormat {
		t.Fatal("unrelated fields changed on partial update")
	}
}

func TestClientService_FindAllActiveOnly(t *testing.T) {
	env := newTestEnv(t)
	env.addClient(t, "a", models.StatusInquiry, models.FormatOnline)
	env.addClient(t, "b", models.StatusContracted, models.FormatOnline)
	env.addClient(t, "c", models.StatusCompleted, models.FormatOnline)
	env.addClient(t, "d", models.StatusDiscontinued, models.FormatOnline)

	active, err := env.clients.FindAll(true)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(active) != 2 {
		t.Fatalf("expected 2 active clients, got %d", len(active))
	}

	all, err := env.clients.FindAll(false)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("expected 4 clients, got %d", len(all))
	}
}

func TestClientService_StatusSummaryZeroFills(t *testing.T) {
	env := newTestEnv(t)
	env.addClient(t, "a", models.StatusInquiry, models.FormatOnline)
	env.addClient(t, "b", models.StatusInquiry, models.FormatOnline)
	env.addClient(t, "c", models.StatusTrialDone, models.FormatOnline)
	env.addClient(t, "d", models.StatusContracted, models.FormatOnline)

	summary, err := env.clients.StatusSummary()
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	want := map[models.ClientStatus]int{
		models.StatusInquiry:      2,
		models.StatusPreTrial:     0,
		models.StatusTrialDone:    1,
		models.StatusContracted:   1,
		models.StatusCompleted:    0,
		models.StatusDiscontinued: 0,
	}
	for status, count := range want {
		if summary[status] != count {
			t.Fatalf("status %q: expected %d, got %d", status, count, summary[status])
		}
	}
	if len(summary) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(summary))
	}
}
