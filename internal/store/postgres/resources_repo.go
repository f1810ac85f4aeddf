package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"vetsched/backend/internal/domain"
	"vetsched/backend/internal/store"
)

type ResourceRepo struct {
	db *bun.DB
}

func NewResourceRepo(db *bun.DB) *ResourceRepo {
	return &ResourceRepo{db: db}
}

func (r *ResourceRepo) ListVets(ctx context.Context) ([]domain.Vet, error) {
	var rows []domain.Vet
	err := r.db.NewSelect().
		Model(&rows).
		OrderExpr("name ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *ResourceRepo) GetVet(ctx context.Context, id uuid.UUID) (domain.Vet, error) {
	var m domain.Vet
	err := r.db.NewSelect().
		Model(&m).
		Where("id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Vet{}, store.ErrNotFound
		}
		return domain.Vet{}, err
	}
	return m, nil
}

func (r *ResourceRepo) ListRooms(ctx context.Context) ([]domain.Room, error) {
	var rows []domain.Room
	err := r.db.NewSelect().
		Model(&rows).
		OrderExpr("name ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *ResourceRepo) GetRoom(ctx context.Context, id uuid.UUID) (domain.Room, error) {
	var m domain.Room
	err := r.db.NewSelect().
		Model(&m).
		Where("id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Room{}, store.ErrNotFound
		}
		return domain.Room{}, err
	}
	return m, nil
}
