package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	models "github.com/skyfarehq/skyfare/internal"
)

type FlightRepository struct {
	db DBConn
}

func NewFlightRepository(db DBConn) *FlightRepository {
	return &FlightRepository{db: db}
}

const flightColumns = "id, flight_number, origin, destination, departure_time, arrival_time, available_seats, price"

func scanFlight(row pgx.Row) (*models.Flight, error) {
	var f models.Flight
	err := row.Scan(&f.ID, &f.FlightNumber, &f.Origin, &f.Destination,
		&f.DepartureTime, &f.ArrivalTime, &f.AvailableSeats, &f.Price)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func scanFlights(rows pgx.Rows) ([]models.Flight, error) {
	defer rows.Close()
	var flights []models.Flight
	for rows.Next() {
		f, err := scanFlight(rows)
		if err != nil {
			return nil, err
		}
		flights = append(flights, *f)
	}
	return flights, rows.Err()
}

func (r *FlightRepository) CreateFlight(ctx context.Context, flight *models.Flight) (*models.Flight, error) {
	if flight.ID == uuid.Nil {
		flight.ID = uuid.New()
	}
	_, err := r.db.Exec(ctx, `
        INSERT INTO flights (id, flight_number, origin, destination, departure_time, arrival_time, available_seats, price)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
    `, flight.ID, flight.FlightNumber, flight.Origin, flight.Destination,
		flight.DepartureTime, flight.ArrivalTime, flight.AvailableSeats, flight.Price)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, models.ErrDuplicateFlightNumber
		}
		return nil, err
	}
	return flight, nil
}

func (r *FlightRepository) GetFlightByID(ctx context.Context, id uuid.UUID) (*models.Flight, error) {
	flight, err := scanFlight(r.db.QueryRow(ctx,
		`SELECT `+flightColumns+` FROM flights WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrFlightNotFound
		}
		return nil, err
	}
	return flight, nil
}

// UpdateFlight replaces the flight's attributes, including its seat counter.
// Admin edits go through here; booking side effects use the conditional
// update in BookingRepository instead.
func (r *FlightRepository) UpdateFlight(ctx context.Context, flight *models.Flight) (*models.Flight, error) {
	tag, err := r.db.Exec(ctx, `
        UPDATE flights
        SET flight_number = $2, origin = $3, destination = $4,
            departure_time = $5, arrival_time = $6, available_seats = $7, price = $8
        WHERE id = $1
    `, flight.ID, flight.FlightNumber, flight.Origin, flight.Destination,
		flight.DepartureTime, flight.ArrivalTime, flight.AvailableSeats, flight.Price)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, models.ErrDuplicateFlightNumber
		}
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, models.ErrFlightNotFound
	}
	return flight, nil
}

// DeleteFlight cascades bookings-then-flight so no reader can observe a
// booking referencing the deleted flight through this path.
func (r *FlightRepository) DeleteFlight(ctx context.Context, id uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM bookings WHERE flight_id = $1`, id); err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, `DELETE FROM flights WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return models.ErrFlightNotFound
	}

	return tx.Commit(ctx)
}

func (r *FlightRepository) ListFlights(ctx context.Context, req models.PageRequest) ([]models.Flight, int, error) {
	base := psql.Select(
		"id", "flight_number", "origin", "destination",
		"departure_time", "arrival_time", "available_seats", "price",
	).From("flights")
	countQuery := psql.Select("COUNT(*)").From("flights")

	if req.Search != "" {
		pattern := "%" + req.Search + "%"
		filter := squirrel.Or{
			squirrel.ILike{"flight_number": pattern},
			squirrel.ILike{"origin": pattern},
			squirrel.ILike{"destination": pattern},
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
		OrderBy("departure_time ASC", "id ASC").
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
	flights, err := scanFlights(rows)
	if err != nil {
		return nil, 0, err
	}
	return flights, total, nil
}

// TopBookedFlights ranks flights by how many bookings reference them,
// excluding flights the user already booked. Ties break on id so repeated
// calls over unchanged data return the same order.
func (r *FlightRepository) TopBookedFlights(ctx context.Context, excludeUserID uuid.UUID, limit int) ([]models.Flight, error) {
	rows, err := r.db.Query(ctx, `
        SELECT f.id, f.flight_number, f.origin, f.destination,
               f.departure_time, f.arrival_time, f.available_seats, f.price
        FROM flights f
        JOIN bookings b ON b.flight_id = f.id
        WHERE NOT EXISTS (
            SELECT 1 FROM bookings mine WHERE mine.flight_id = f.id AND mine.user_id = $1
        )
        GROUP BY f.id
        ORDER BY COUNT(b.id) DESC, f.id ASC
        LIMIT $2
    `, excludeUserID, limit)
	if err != nil {
		return nil, err
	}
	return scanFlights(rows)
}

func (r *FlightRepository) CheapestFlights(ctx context.Context, excludeUserID uuid.UUID, excludeIDs []uuid.UUID, limit int) ([]models.Flight, error) {
	if excludeIDs == nil {
		excludeIDs = []uuid.UUID{}
	}
	rows, err := r.db.Query(ctx, `
        SELECT f.id, f.flight_number, f.origin, f.destination,
               f.departure_time, f.arrival_time, f.available_seats, f.price
        FROM flights f
        WHERE f.id <> ALL($2)
          AND NOT EXISTS (
            SELECT 1 FROM bookings mine WHERE mine.flight_id = f.id AND mine.user_id = $1
          )
        ORDER BY f.price ASC, f.id ASC
        LIMIT $3
    `, excludeUserID, excludeIDs, limit)
	if err != nil {
		return nil, err
	}
	return scanFlights(rows)
}

func (r *FlightRepository) FlightsByMostSeats(ctx context.Context, excludeUserID uuid.UUID, limit int) ([]models.Flight, error) {
	rows, err := r.db.Query(ctx, `
        SELECT f.id, f.flight_number, f.origin, f.destination,
               f.departure_time, f.arrival_time, f.available_seats, f.price
        FROM flights f
        WHERE NOT EXISTS (
            SELECT 1 FROM bookings mine WHERE mine.flight_id = f.id AND mine.user_id = $1
        )
        ORDER BY f.available_seats DESC, f.id ASC
        LIMIT $2
    `, excludeUserID, limit)
	if err != nil {
		return nil, err
	}
	return scanFlights(rows)
}
