package service

import (
	"context"
	"testing"
	"time"

	"co2watch/internal/models"
)

func TestEventLogService_List_ValidatesRange(t *testing.T) {
	t.Parallel()

	s := NewEventLogService(&eventRepoStub{})

	from := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	if _, err := s.List(context.Background(), LogFilter{From: from, To: to}); err == nil {
		t.Fatal("expected error for from > to")
	}
}

func TestEventLogService_List_PassesThrough(t *testing.T) {
	t.Parallel()

	repo := &eventRepoStub{appended: []models.CheckEvent{
		{EventID: "ev-1", Type: models.StatusAlert},
	}}
	s := NewEventLogService(repo)

	events, err := s.List(context.Background(), LogFilter{Type: " alert "})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(events) != 1 || events[0].EventID != "ev-1" {
		t.Fatalf("events = %+v", events)
	}
}
