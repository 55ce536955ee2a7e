package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	models "github.com/skyfarehq/skyfare/internal"
)

type BookingRepository struct {
	db DBConn
}

func NewBookingRepository(db DBConn) *BookingRepository {
	return &BookingRepository{db: db}
}

const decrementSeatsQuery = `
        UPDATE flights
        SET available_seats = available_seats - $2
        WHERE id = $1 AND available_seats >= $2
    `

const insertBookingQuery = `
        INSERT INTO bookings (id, user_id, flight_id, seats_booked, created_at)
        VALUES ($1, $2, $3, $4, $5)
    `

// CreateBooking performs the paired write in one transaction: the seat
// decrement is conditional on availability, so the capacity check and the
// decrement are a single unit relative to concurrent bookers.
func (r *BookingRepository) CreateBooking(ctx context.Context, booking *models.Booking) (*models.Booking, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, decrementSeatsQuery, booking.FlightID, booking.SeatsBooked)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		// Either the flight is gone or it has too few seats.
		var exists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM flights WHERE id = $1)`, booking.FlightID).Scan(&exists); err != nil {
			return nil, err
		}
		if !exists {
			return nil, models.ErrFlightNotFound
		}
		return nil, models.ErrInsufficientSeats
	}

	if booking.ID == uuid.Nil {
		booking.ID = uuid.New()
	}
	booking.CreatedAt = time.Now().UTC()
	if _, err := tx.Exec(ctx, insertBookingQuery,
		booking.ID, booking.UserID, booking.FlightID, booking.SeatsBooked, booking.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return nil, models.ErrDuplicateBooking
		}
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return booking, nil
}

func (r *BookingRepository) GetBookingByID(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	var b models.Booking
	err := r.db.QueryRow(ctx, `
        SELECT id, user_id, flight_id, seats_booked, created_at
        FROM bookings
        WHERE id = $1
    `, id).Scan(&b.ID, &b.UserID, &b.FlightID, &b.SeatsBooked, &b.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrBookingNotFound
		}
		return nil, err
	}
	return &b, nil
}

// DeleteBookingRestoringSeats returns the booked seats to the flight and
// removes the booking. The restoration update matching zero rows means the
// flight was separately deleted; the cancellation still proceeds.
func (r *BookingRepository) DeleteBookingRestoringSeats(ctx context.Context, id uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var flightID uuid.UUID
	var seats int
	err = tx.QueryRow(ctx, `SELECT flight_id, seats_booked FROM bookings WHERE id = $1`, id).
		Scan(&flightID, &seats)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.ErrBookingNotFound
		}
		return err
	}

	if _, err := tx.Exec(ctx, `
        UPDATE flights
        SET available_seats = available_seats + $2
        WHERE id = $1
    `, flightID, seats); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM bookings WHERE id = $1`, id); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// DeleteOrphanedBookings is safe to run repeatedly and concurrently with
// live traffic: it only touches bookings whose flight is already absent.
func (r *BookingRepository) DeleteOrphanedBookings(ctx context.Context) (int, error) {
	tag, err := r.db.Exec(ctx, `
        DELETE FROM bookings b
        WHERE NOT EXISTS (SELECT 1 FROM flights f WHERE f.id = b.flight_id)
    `)
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}

func (r *BookingRepository) ListBookingDetails(ctx context.Context, req models.PageRequest) ([]models.BookingDetail, int, error) {
	base := psql.Select(
		"b.id", "b.seats_booked", "b.created_at",
		"u.name", "u.email",
		"f.flight_number", "f.origin", "f.destination", "f.departure_time", "f.arrival_time",
	).
		From("bookings b").
		Join("users u ON u.id = b.user_id").
		// Inner join drops bookings whose flight is gone; the orphan sweep
		// removes them for good.
		Join("flights f ON f.id = b.flight_id")

	countQuery := psql.Select("COUNT(*)").
		From("bookings b").
		Join("users u ON u.id = b.user_id").
		Join("flights f ON f.id = b.flight_id")

	if req.Search != "" {
		pattern := "%" + req.Search + "%"
		filter := squirrel.Or{
			squirrel.ILike{"u.name": pattern},
			squirrel.ILike{"u.email": pattern},
			squirrel.ILike{"f.flight_number": pattern},
		}
		base = base.Where(filter)
		countQuery = countQuery.Where(filter)
	}

	sql, args, err := countQuery.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count query: %w", err)
	}
	var total int
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	sql, args, err = base.
		OrderBy("b.created_at DESC", "b.id DESC").
		Offset(uint64((req.Page - 1) * req.Limit)).
		Limit(uint64(req.Limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var details []models.BookingDetail
	for rows.Next() {
		var d models.BookingDetail
		if err := rows.Scan(
			&d.ID, &d.SeatsBooked, &d.CreatedAt,
			&d.UserName, &d.UserEmail,
			&d.FlightNumber, &d.Origin, &d.Destination, &d.DepartureTime, &d.ArrivalTime,
		); err != nil {
			return nil, 0, err
		}
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return details, total, nil
}
