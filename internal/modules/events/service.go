package events

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"schoolrecords/internal/domain"
	"schoolrecords/internal/repository"
)

var ErrEventNotFound = errors.New("event not found")

type Service struct {
	events *repository.EventRepository
}

func NewService(events *repository.EventRepository) *Service {
	return &Service{events: events}
}

func (s *Service) Create(ctx context.Context, req CreateEventRequest) (*domain.Event, error) {
	event := &domain.Event{
		Title:       req.Title,
		Date:        req.Date,
		Description: req.Description,
	}
	if err := s.events.Create(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return event, nil
}

func (s *Service) List(ctx context.Context, start, end *time.Time) ([]domain.Event, error) {
	return s.events.List(ctx, start, end)
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateEventRequest) (*domain.Event, error) {
	event, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		event.Title = *req.Title
	}
	if req.Date != nil {
		event.Date = *req.Date
	}
	if req.Description != nil {
		event.Description = *req.Description
	}

	if err := s.events.Update(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	return s.events.Delete(ctx, id)
}
