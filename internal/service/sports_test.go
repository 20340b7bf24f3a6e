package service

import (
	"context"
	"testing"

	"sportsbook/internal/apperr"
	"sportsbook/internal/models"
)

func TestSportCreate_Defaults(t *testing.T) {
	repo := &stubRepo{}
	svc := &SportService{Repo: repo}

	record, err := svc.Create(context.Background(), map[string]string{"name": "Table Tennis"})
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if record["slug"] != "table-tennis" {
		t.Fatalf("slug=%v want table-tennis", record["slug"])
	}
	if record["active"] != false {
		t.Fatalf("active=%v want false", record["active"])
	}
}

func TestSportCreate_ExplicitSlugAndActive(t *testing.T) {
	repo := &stubRepo{}
	svc := &SportService{Repo: repo}

	record, err := svc.Create(context.Background(), map[string]string{
		"name":   "Football",
		"slug":   "footy",
		"active": "true",
	})
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if record["slug"] != "footy" {
		t.Fatalf("slug=%v want footy", record["slug"])
	}
	if record["active"] != true {
		t.Fatalf("active=%v want true", record["active"])
	}
}

func TestSportCreate_MissingName(t *testing.T) {
	svc := &SportService{Repo: &stubRepo{}}
	_, err := svc.Create(context.Background(), map[string]string{"slug": "x"})
	if !apperr.IsValidation(err) {
		t.Fatalf("err=%v want validation", err)
	}
}

func TestSportCreate_BadActive(t *testing.T) {
	svc := &SportService{Repo: &stubRepo{}}
	_, err := svc.Create(context.Background(), map[string]string{"name": "Football", "active": "maybe"})
	if !apperr.IsValidation(err) {
		t.Fatalf("err=%v want validation", err)
	}
}

func TestSportCreate_Duplicate(t *testing.T) {
	repo := &stubRepo{sports: []*models.Sport{{Name: "Football", Slug: "football"}}}
	svc := &SportService{Repo: repo}
	_, err := svc.Create(context.Background(), map[string]string{"name": "Football"})
	if !apperr.IsConflict(err) {
		t.Fatalf("err=%v want conflict", err)
	}
}

func TestSportUpdate_SlugAndActive(t *testing.T) {
	repo := &stubRepo{sports: []*models.Sport{{Name: "Football", Slug: "football"}}}
	svc := &SportService{Repo: repo}

	record, err := svc.Update(context.Background(), "Football", map[string]string{
		"slug":   "assoc-football",
		"active": "true",
	})
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if record["slug"] != "assoc-football" {
		t.Fatalf("slug=%v", record["slug"])
	}
	if record["active"] != true {
		t.Fatalf("active=%v", record["active"])
	}
}

func TestSportUpdate_EmptyDelta(t *testing.T) {
	repo := &stubRepo{sports: []*models.Sport{{Name: "Football"}}}
	svc := &SportService{Repo: repo}
	_, err := svc.Update(context.Background(), "Football", map[string]string{})
	if !apperr.IsValidation(err) {
		t.Fatalf("err=%v want validation", err)
	}
}

func TestSportUpdate_NotFound(t *testing.T) {
	svc := &SportService{Repo: &stubRepo{}}
	_, err := svc.Update(context.Background(), "Quidditch", map[string]string{"active": "true"})
	if !apperr.IsNotFound(err) {
		t.Fatalf("err=%v want not found", err)
	}
}

func TestSportUpdate_NameImmutable(t *testing.T) {
	repo := &stubRepo{sports: []*models.Sport{{Name: "Football"}}}
	svc := &SportService{Repo: repo}
	_, err := svc.Update(context.Background(), "Football", map[string]string{"name": "Soccer"})
	if !apperr.IsValidation(err) {
		t.Fatalf("err=%v want validation", err)
	}
}

func TestSportDelete_RestrictedByEvents(t *testing.T) {
	repo := &stubRepo{
		sports: []*models.Sport{{Name: "Football"}},
		events: []*models.Event{{Name: "Derby", Sport: "Football"}},
	}
	svc := &SportService{Repo: repo}
	err := svc.Delete(context.Background(), "Football")
	if !apperr.IsConflict(err) {
		t.Fatalf("err=%v want conflict", err)
	}
	if len(repo.sports) != 1 {
		t.Fatalf("sport was deleted")
	}
}

func TestSportDelete_Idempotent(t *testing.T) {
	svc := &SportService{Repo: &stubRepo{}}
	if err := svc.Delete(context.Background(), "Quidditch"); err != nil {
		t.Fatalf("err=%v", err)
	}
}

func TestSportDelete_RemovesRow(t *testing.T) {
	repo := &stubRepo{sports: []*models.Sport{{Name: "Football"}}}
	svc := &SportService{Repo: repo}
	if err := svc.Delete(context.Background(), "Football"); err != nil {
		t.Fatalf("err=%v", err)
	}
	if len(repo.sports) != 0 {
		t.Fatalf("sport still present")
	}
}

func TestSportSearch_BadFilter(t *testing.T) {
	svc := &SportService{Repo: &stubRepo{}}
	_, err := svc.Search(context.Background(), map[string]string{"colour": "red"})
	if !apperr.IsValidation(err) {
		t.Fatalf("err=%v want validation", err)
	}
}

func TestSportSearch_RendersRecords(t *testing.T) {
	repo := &stubRepo{sports: []*models.Sport{
		{Name: "Football", Slug: "football", Active: true},
		{Name: "Tennis", Slug: "tennis"},
	}}
	svc := &SportService{Repo: repo}
	records, err := svc.Search(context.Background(), map[string]string{})
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if len(records) != 2 {
		t.Fatalf("len=%d want 2", len(records))
	}
	if records[0]["name"] != "Football" || records[1]["name"] != "Tennis" {
		t.Fatalf("order=%v,%v", records[0]["name"], records[1]["name"])
	}
}
