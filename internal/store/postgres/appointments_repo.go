package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/uptrace/bun"

	"vetsched/backend/internal/domain"
	"vetsched/backend/internal/store"
)

type AppointmentRepo struct {
	db *bun.DB
}

func NewAppointmentRepo(db *bun.DB) *AppointmentRepo {
	return &AppointmentRepo{db: db}
}

func (r *AppointmentRepo) Create(ctx context.Context, appt domain.Appointment) (domain.Appointment, error) {
	m := appt
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if err := lockResources(ctx, tx, appt.VetID, appt.RoomID); err != nil {
			return err
		}
		_, err := tx.NewInsert().Model(&m).Exec(ctx)
		return err
	})
	if err != nil {
		return domain.Appointment{}, mapPgError(err)
	}
	return m, nil
}

func (r *AppointmentRepo) Get(ctx context.Context, id uuid.UUID) (domain.Appointment, error) {
	var m domain.Appointment
	err := r.db.NewSelect().
		Model(&m).
		Where("id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Appointment{}, store.ErrNotFound
		}
		return domain.Appointment{}, err
	}
	return m, nil
}

func (r *AppointmentRepo) List(ctx context.Context, params store.ListParams) ([]domain.Appointment, int, error) {
	var rows []domain.Appointment

	q := r.db.NewSelect().Model(&rows)
	if params.Day != nil {
		dayStart := params.Day.UTC().Truncate(24 * time.Hour)
		dayEnd := dayStart.Add(24 * time.Hour)
		q = q.Where("start_at >= ?", dayStart).Where("start_at < ?", dayEnd)
	}

	page := params.Page
	if page < 1 {
		page = 1
	}
	pageSize := params.PageSize
	if pageSize < 1 {
		pageSize = 1
	}

	total, err := q.
		OrderExpr("start_at ASC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		ScanAndCount(ctx)
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *AppointmentRepo) Update(ctx context.Context, appt domain.Appointment) (domain.Appointment, error) {
	m := appt
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if err := lockResources(ctx, tx, appt.VetID, appt.RoomID); err != nil {
			return err
		}
		res, err := tx.NewUpdate().
			Model(&m).
			Column("pet_name", "owner_name", "type", "status", "notes",
				"duration", "start_at", "end_at", "vet_id", "room_id", "updated_at").
			WherePK().
			Exec(ctx)
		if err != nil {
			return err
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			return store.ErrNotFound
		}
		return nil
	})
	if err != nil {
		return domain.Appointment{}, mapPgError(err)
	}
	return m, nil
}

func (r *AppointmentRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.AppointmentStatus) (domain.Appointment, error) {
	res, err := r.db.NewUpdate().
		Model((*domain.Appointment)(nil)).
		Set("status = ?", status).
		Set("updated_at = ?", time.Now().UTC()).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return domain.Appointment{}, mapPgError(err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return domain.Appointment{}, err
	}
	if affected == 0 {
		return domain.Appointment{}, store.ErrNotFound
	}
	return r.Get(ctx, id)
}

func (r *AppointmentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.NewDelete().
		Model((*domain.Appointment)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *AppointmentRepo) FindOverlapping(ctx context.Context, filter store.ResourceFilter, start, end time.Time, excludeID uuid.UUID) ([]domain.Appointment, error) {
	if filter.IsZero() {
		return nil, nil
	}

	var rows []domain.Appointment
	q := r.db.NewSelect().
		Model(&rows).
		Where("status <> ?", domain.AppointmentStatusCancelled).
		Where("start_at < ?", end).
		Where("end_at > ?", start).
		WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
			if filter.VetID != "" {
				q = q.WhereOr("vet_id = ?", filter.VetID)
			}
			if filter.RoomID != "" {
				q = q.WhereOr("room_id = ?", filter.RoomID)
			}
			return q
		})
	if excludeID != uuid.Nil {
		q = q.Where("id <> ?", excludeID)
	}

	if err := q.OrderExpr("start_at ASC").Scan(ctx); err != nil {
		return nil, err
	}
	return rows, nil
}

// lockResources takes per-resource advisory locks so concurrent writers for
// the same vet or room serialize before hitting the exclusion constraints.
// Lock order is fixed (vet then room) to avoid deadlocks between writers that
// share both resources.
func lockResources(ctx context.Context, tx bun.Tx, vetID, roomID string) error {
	for _, id := range []string{vetID, roomID} {
		if id == "" {
			continue
		}
		if _, err := tx.NewRaw("SELECT pg_advisory_xact_lock(hashtext(?))", id).Exec(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Overlap exclusion constraints defined in the schema; a 23P01 on either means
// a concurrent writer booked the slot first.
const (
	vetNoOverlapConstraint  = "appointments_vet_no_overlap"
	roomNoOverlapConstraint = "appointments_room_no_overlap"
)

func mapPgError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case "23P01":
		if pgErr.ConstraintName == vetNoOverlapConstraint || pgErr.ConstraintName == roomNoOverlapConstraint {
			return store.ErrConflict
		}
	case "23503":
		return store.ErrInvalidReference
	}
	return err
}
