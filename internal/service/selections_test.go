package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"sportsbook/internal/apperr"
	"sportsbook/internal/cascade"
	"sportsbook/internal/models"
)

func selectionFixture(repo *stubRepo) *SelectionService {
	return &SelectionService{Repo: repo, Cascade: &cascade.Engine{Store: repo}}
}

func TestSelectionCreate_Defaults(t *testing.T) {
	repo := &stubRepo{events: []*models.Event{{Name: "Derby"}}}
	svc := selectionFixture(repo)

	record, err := svc.Create(context.Background(), map[string]string{
		"name":  "Home Win",
		"event": "Derby",
		"price": "3",
	})
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if record["price"] != "3.00" {
		t.Fatalf("price=%v want 3.00", record["price"])
	}
	if record["outcome"] != "Unsettled" {
		t.Fatalf("outcome=%v want Unsettled", record["outcome"])
	}
	if record["active"] != false {
		t.Fatalf("active=%v want false", record["active"])
	}
}

func TestSelectionCreate_PriceRounded(t *testing.T) {
	repo := &stubRepo{events: []*models.Event{{Name: "Derby"}}}
	svc := selectionFixture(repo)
	record, err := svc.Create(context.Background(), map[string]string{
		"name":  "Away Win",
		"event": "Derby",
		"price": "2.675",
	})
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if record["price"] != "2.68" {
		t.Fatalf("price=%v want 2.68", record["price"])
	}
}

func TestSelectionCreate_MissingFields(t *testing.T) {
	svc := selectionFixture(&stubRepo{})
	_, err := svc.Create(context.Background(), map[string]string{"name": "Home Win"})
	if !apperr.IsValidation(err) {
		t.Fatalf("err=%v want validation", err)
	}
}

func TestSelectionCreate_BadPrice(t *testing.T) {
	repo := &stubRepo{events: []*models.Event{{Name: "Derby"}}}
	svc := selectionFixture(repo)
	_, err := svc.Create(context.Background(), map[string]string{
		"name":  "Home Win",
		"event": "Derby",
		"price": "dear",
	})
	if !apperr.IsValidation(err) {
		t.Fatalf("err=%v want validation", err)
	}
}

func TestSelectionCreate_UnknownEvent(t *testing.T) {
	svc := selectionFixture(&stubRepo{})
	_, err := svc.Create(context.Background(), map[string]string{
		"name":  "Home Win",
		"event": "Derby",
		"price": "1.50",
	})
	if !apperr.IsValidation(err) {
		t.Fatalf("err=%v want validation", err)
	}
}

func TestSelectionCreate_Duplicate(t *testing.T) {
	repo := &stubRepo{
		events:     []*models.Event{{Name: "Derby"}},
		selections: []*models.Selection{{Name: "Home Win", Event: "Derby"}},
	}
	svc := selectionFixture(repo)
	_, err := svc.Create(context.Background(), map[string]string{
		"name":  "Home Win",
		"event": "Derby",
		"price": "1.50",
	})
	if !apperr.IsConflict(err) {
		t.Fatalf("err=%v want conflict", err)
	}
}

func TestSelectionUpdate_SettlementDeactivates(t *testing.T) {
	repo := &stubRepo{
		sports: []*models.Sport{{Name: "Football", Active: true}},
		events: []*models.Event{{Name: "Derby", Sport: "Football", Active: true}},
		selections: []*models.Selection{{
			Name: "Home Win", Event: "Derby", Active: true, Outcome: models.OutcomeUnsettled,
		}},
	}
	svc := selectionFixture(repo)

	record, err := svc.Update(context.Background(), "Home Win", map[string]string{"outcome": "Win"})
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if record["outcome"] != "Win" {
		t.Fatalf("outcome=%v", record["outcome"])
	}
	if record["active"] != false {
		t.Fatalf("settled selection still active")
	}
}

func TestSelectionUpdate_SettlementCascadesToSportRoot(t *testing.T) {
	repo := &stubRepo{
		sports: []*models.Sport{{Name: "Football", Active: true}},
		events: []*models.Event{{Name: "Man Utd vs Chelsea", Sport: "Football", Active: true}},
		selections: []*models.Selection{{
			Name: "Man Utd", Event: "Man Utd vs Chelsea", Active: true,
			Price: decimal.RequireFromString("1.50"), Outcome: models.OutcomeUnsettled,
		}},
	}
	svc := selectionFixture(repo)

	if _, err := svc.Update(context.Background(), "Man Utd", map[string]string{"outcome": "Win"}); err != nil {
		t.Fatalf("err=%v", err)
	}
	event, _ := repo.GetEvent(context.Background(), "Man Utd vs Chelsea")
	if event.Active {
		t.Fatalf("event still active after its only selection settled")
	}
	sport, _ := repo.GetSport(context.Background(), "Football")
	if sport.Active {
		t.Fatalf("sport still active after its only event deactivated")
	}
}

func TestSelectionUpdate_EventStaysActiveWithSiblings(t *testing.T) {
	repo := &stubRepo{
		sports: []*models.Sport{{Name: "Football", Active: true}},
		events: []*models.Event{{Name: "Derby", Sport: "Football", Active: true}},
		selections: []*models.Selection{
			{Name: "Home Win", Event: "Derby", Active: true},
			{Name: "Away Win", Event: "Derby", Active: true},
		},
	}
	svc := selectionFixture(repo)

	if _, err := svc.Update(context.Background(), "Home Win", map[string]string{"active": "false"}); err != nil {
		t.Fatalf("err=%v", err)
	}
	event, _ := repo.GetEvent(context.Background(), "Derby")
	if !event.Active {
		t.Fatalf("event deactivated while a sibling selection is active")
	}
}

func TestSelectionUpdate_ReactivationDoesNotPropagateUp(t *testing.T) {
	repo := &stubRepo{
		sports:     []*models.Sport{{Name: "Football"}},
		events:     []*models.Event{{Name: "Derby", Sport: "Football"}},
		selections: []*models.Selection{{Name: "Home Win", Event: "Derby"}},
	}
	svc := selectionFixture(repo)

	if _, err := svc.Update(context.Background(), "Home Win", map[string]string{"active": "true"}); err != nil {
		t.Fatalf("err=%v", err)
	}
	event, _ := repo.GetEvent(context.Background(), "Derby")
	if event.Active {
		t.Fatalf("cascade reactivated the event")
	}
	sport, _ := repo.GetSport(context.Background(), "Football")
	if sport.Active {
		t.Fatalf("cascade reactivated the sport")
	}
}

func TestSelectionUpdate_SettledOutcomeIsFinal(t *testing.T) {
	repo := &stubRepo{selections: []*models.Selection{{Name: "Home Win", Outcome: models.OutcomeWin}}}
	svc := selectionFixture(repo)
	_, err := svc.Update(context.Background(), "Home Win", map[string]string{"outcome": "Void"})
	if !apperr.IsValidation(err) {
		t.Fatalf("err=%v want validation", err)
	}
}

func TestSelectionUpdate_ImmutableFields(t *testing.T) {
	repo := &stubRepo{selections: []*models.Selection{{Name: "Home Win", Event: "Derby"}}}
	svc := selectionFixture(repo)
	for _, field := range []string{"name", "event"} {
		_, err := svc.Update(context.Background(), "Home Win", map[string]string{field: "x"})
		if !apperr.IsValidation(err) {
			t.Fatalf("field %s: err=%v want validation", field, err)
		}
	}
}

func TestSelectionUpdate_NotFound(t *testing.T) {
	svc := selectionFixture(&stubRepo{})
	_, err := svc.Update(context.Background(), "Home Win", map[string]string{"price": "2.00"})
	if !apperr.IsNotFound(err) {
		t.Fatalf("err=%v want not found", err)
	}
}

func TestSelectionDelete_Idempotent(t *testing.T) {
	svc := selectionFixture(&stubRepo{})
	if err := svc.Delete(context.Background(), "Home Win"); err != nil {
		t.Fatalf("err=%v", err)
	}
}

// Full lifecycle: build the hierarchy through the services, activate it, then
// settle the only selection and watch the whole chain go inactive.
func TestLifecycle_SettlementTakesDownTheChain(t *testing.T) {
	repo := &stubRepo{}
	ctx := context.Background()
	sports := &SportService{Repo: repo}
	events := eventFixture(repo)
	selections := selectionFixture(repo)

	if _, err := sports.Create(ctx, map[string]string{"name": "Football", "active": "true"}); err != nil {
		t.Fatalf("create sport: %v", err)
	}
	if _, err := events.Create(ctx, map[string]string{
		"name":            "Man Utd vs Chelsea",
		"sport":           "Football",
		"scheduled-start": "2024-06-02T17:00:00Z",
		"active":          "true",
	}); err != nil {
		t.Fatalf("create event: %v", err)
	}
	if _, err := selections.Create(ctx, map[string]string{
		"name":   "Man Utd",
		"event":  "Man Utd vs Chelsea",
		"price":  "1.50",
		"active": "true",
	}); err != nil {
		t.Fatalf("create selection: %v", err)
	}

	record, err := selections.Update(ctx, "Man Utd", map[string]string{"outcome": "Win"})
	if err != nil {
		t.Fatalf("settle: %v", err)
	}
	if record["active"] != false || record["outcome"] != "Win" || record["price"] != "1.50" {
		t.Fatalf("record=%v", record)
	}
	event, _ := repo.GetEvent(ctx, "Man Utd vs Chelsea")
	if event.Active {
		t.Fatalf("event still active")
	}
	sport, _ := repo.GetSport(ctx, "Football")
	if sport.Active {
		t.Fatalf("sport still active")
	}
}
