package store

import (
	"context"

	"github.com/google/uuid"

	"vetsched/backend/internal/domain"
)

type ResourceRepository interface {
	ListVets(ctx context.Context) ([]domain.Vet, error)
	GetVet(ctx context.Context, id uuid.UUID) (domain.Vet, error)
	ListRooms(ctx context.Context) ([]domain.Room, error)
	GetRoom(ctx context.Context, id uuid.UUID) (domain.Room, error)
}
