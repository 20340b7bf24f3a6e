package service

import (
	"context"

	"go.uber.org/zap"

	"sportsbook/internal/repository"
)

// ConsistencyAuditService is a read-only sweep over the derived activity
// flags. The cascade runs synchronously inside each write, so under normal
// operation the sweep finds nothing; drift would mean writes bypassed the
// service layer. It logs, it never repairs.
type ConsistencyAuditService struct {
	Repo   repository.Repository
	Logger *zap.Logger
}

func (s *ConsistencyAuditService) Run(ctx context.Context) error {
	drift := 0

	events, err := s.Repo.ListActiveEvents(ctx)
	if err != nil {
		return err
	}
	for _, event := range events {
		if event.Status.Terminal() {
			drift++
			if s.Logger != nil {
				s.Logger.Warn("active event has terminal status",
					zap.String("event", event.Name),
					zap.String("status", string(event.Status)),
				)
			}
			continue
		}
		total, err := s.Repo.CountSelectionsByEvent(ctx, event.Name)
		if err != nil {
			return err
		}
		if total == 0 {
			// Childless events are legitimately activated by hand.
			continue
		}
		active, err := s.Repo.CountActiveSelectionsTx(ctx, nil, event.Name)
		if err != nil {
			return err
		}
		if active == 0 {
			drift++
			if s.Logger != nil {
				s.Logger.Warn("active event has no active selections",
					zap.String("event", event.Name),
				)
			}
		}
	}

	sports, err := s.Repo.ListActiveSports(ctx)
	if err != nil {
		return err
	}
	for _, sport := range sports {
		total, err := s.Repo.CountEventsBySport(ctx, sport.Name)
		if err != nil {
			return err
		}
		if total == 0 {
			continue
		}
		active, err := s.Repo.CountActiveEventsTx(ctx, nil, sport.Name)
		if err != nil {
			return err
		}
		if active == 0 {
			drift++
			if s.Logger != nil {
				s.Logger.Warn("active sport has no active events",
					zap.String("sport", sport.Name),
				)
			}
		}
	}

	if s.Logger != nil {
		s.Logger.Info("consistency audit finished",
			zap.Int("active_events", len(events)),
			zap.Int("active_sports", len(sports)),
			zap.Int("drift", drift),
		)
	}
	return nil
}
