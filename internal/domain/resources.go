package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type Vet struct {
	bun.BaseModel `bun:"table:vets"`

	ID        uuid.UUID `bun:"id,pk,type:uuid" json:"id"`
	Name      string    `bun:"name,notnull" json:"name"`
	Email     string    `bun:"email" json:"email,omitempty"`
	Phone     string    `bun:"phone" json:"phone,omitempty"`
	CreatedAt time.Time `bun:"created_at,notnull" json:"createdAt"`
	UpdatedAt time.Time `bun:"updated_at,notnull" json:"updatedAt"`
}

func (v *Vet) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	now := time.Now().UTC()
	switch query.(type) {
	case *bun.InsertQuery:
		if v.ID == uuid.Nil {
			id, err := uuid.NewV7()
			if err != nil {
				return err
			}
			v.ID = id
		}
		if v.CreatedAt.IsZero() {
			v.CreatedAt = now
		}
		if v.UpdatedAt.IsZero() {
			v.UpdatedAt = now
		}
	case *bun.UpdateQuery:
		v.UpdatedAt = now
	}
	return nil
}

type Room struct {
	bun.BaseModel `bun:"table:rooms"`

	ID        uuid.UUID `bun:"id,pk,type:uuid" json:"id"`
	Name      string    `bun:"name,notnull" json:"name"`
	Location  string    `bun:"location" json:"location,omitempty"`
	CreatedAt time.Time `bun:"created_at,notnull" json:"createdAt"`
	UpdatedAt time.Time `bun:"updated_at,notnull" json:"updatedAt"`
}

func (r *Room) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	now := time.Now().UTC()
	switch query.(type) {
	case *bun.InsertQuery:
		if r.ID == uuid.Nil {
			id, err := uuid.NewV7()
			if err != nil {
				return err
			}
			r.ID = id
		}
		if r.CreatedAt.IsZero() {
			r.CreatedAt = now
		}
		if r.UpdatedAt.IsZero() {
			r.UpdatedAt = now
		}
	case *bun.UpdateQuery:
		r.UpdatedAt = now
	}
	return nil
}
