package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/pkordes/travel-crm/backend/internal/domain"
)

// DestinationRepo defines the persistence operations for Destinations.
type DestinationRepo interface {
	// Create inserts a destination for an existing customer and returns the
	// persisted record. Returns domain.ErrNotFound if the customer does not exist.
	Create(ctx context.Context, d domain.Destination) (domain.Destination, error)

	// GetByID retrieves a single destination by primary key.
	// Returns domain.ErrNotFound if no destination with that ID exists.
	GetByID(ctx context.Context, id int64) (domain.Destination, error)

	// List returns one page of destinations matching q and the total number
	// of matches. Both are read from the same snapshot.
	List(ctx context.Context, q domain.DestinationQuery) ([]domain.Destination, int64, error)

	// ListByCustomerID returns every destination of a customer ordered by
	// start_date, then id.
	ListByCustomerID(ctx context.Context, customerID int64) ([]domain.Destination, error)

	// Update applies the non-nil fields of patch, sets updated_at, and returns
	// the updated record. Returns domain.ErrNotFound if the id does not exist.
	Update(ctx context.Context, id int64, patch domain.DestinationPatch) (domain.Destination, error)

	// Delete removes a destination unless it is the last one of its customer,
	// in which case domain.ErrLastDestination is returned and nothing changes.
	// Returns domain.ErrNotFound if the id does not exist.
	Delete(ctx context.Context, id int64) error
}

// pgDestinationRepo is the Postgres implementation of DestinationRepo.
type pgDestinationRepo struct {
	db db
}

// NewDestinationRepo constructs a DestinationRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewDestinationRepo(db db) DestinationRepo {
	return &pgDestinationRepo{db: db}
}

// destinationColumns is the select list read by scanDestination.
// status is cast to text so the enum scans into a plain string.
const destinationColumns = `d.id, d.customer_id, d.destination, d.start_date, d.end_date,
	d.status::text, d.created_at, d.updated_at`

// destinationSortColumns maps allow-listed sortBy keys onto columns.
var destinationSortColumns = map[string]string{
	"id":          "d.id",
	"customerId":  "d.customer_id",
	"destination": "d.destination",
	"startDate":   "d.start_date",
	"endDate":     "d.end_date",
	"createdAt":   "d.created_at",
	"updatedAt":   "d.updated_at",
}

// Create inserts a new destination row and returns the full persisted record.
func (r *pgDestinationRepo) Create(ctx context.Context, d domain.Destination) (domain.Destination, error) {
	result, err := insertDestination(ctx, r.db, d)
	if err != nil {
		return domain.Destination{}, fmt.Errorf("repo.DestinationRepo.Create: %w", err)
	}
	return result, nil
}

// insertDestination is shared with the customer aggregate insert.
func insertDestination(ctx context.Context, q db, d domain.Destination) (domain.Destination, error) {
	const sql = `
		INSERT INTO destinations AS d (customer_id, destination, start_date, end_date, status)
		VALUES (@customer_id, @destination, @start_date, @end_date, @status::destination_status)
		RETURNING ` + destinationColumns

	status := d.Status
	if status == "" {
		status = domain.StatusPlanned
	}
	args := pgx.NamedArgs{
		"customer_id": d.CustomerID,
		"destination": d.Destination,
		"start_date":  d.StartDate,
		"end_date":    d.EndDate,
		"status":      string(status),
	}
	result, err := scanDestination(q.QueryRow(ctx, sql, args))
	if err != nil {
		return domain.Destination{}, translate(err)
	}
	return result, nil
}

// GetByID retrieves a destination by primary key.
func (r *pgDestinationRepo) GetByID(ctx context.Context, id int64) (domain.Destination, error) {
	const q = `SELECT ` + destinationColumns + ` FROM destinations d WHERE d.id = @id`

	result, err := scanDestination(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Destination{}, fmt.Errorf("repo.DestinationRepo.GetByID: %w", translate(err))
	}
	return result, nil
}

// List runs the filtered page query and its count in one snapshot.
func (r *pgDestinationRepo) List(ctx context.Context, q domain.DestinationQuery) ([]domain.Destination, int64, error) {
	w := destinationWhere(q.Filter)
	order, err := orderBy(q.Sort, destinationSortColumns, "d.id")
	if err != nil {
		return nil, 0, fmt.Errorf("repo.DestinationRepo.List: %w", err)
	}

	countSQL := `SELECT count(*) FROM destinations d` + w.String()
	pageSQL := `SELECT ` + destinationColumns + ` FROM destinations d` + w.String() + order +
		` LIMIT @limit OFFSET @offset`
	w.args["limit"] = q.Page.Limit
	w.args["offset"] = q.Page.Offset()

	var (
		items []domain.Destination
		total int64
	)
	err = inSnapshot(ctx, r.db, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, countSQL, w.args).Scan(&total); err != nil {
			return fmt.Errorf("count: %w", err)
		}
		rows, err := tx.Query(ctx, pageSQL, w.args)
		if err != nil {
			return fmt.Errorf("query: %w", err)
		}
		items, err = collectDestinations(rows)
		return err
	})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.DestinationRepo.List: %w", err)
	}
	return items, total, nil
}

// destinationWhere translates a DestinationFilter into SQL predicates.
// Name matching is a case-sensitive substring match.
func destinationWhere(f domain.DestinationFilter) *where {
	w := newWhere()
	if f.CustomerID != nil {
		w.add("d.customer_id = @customer_id", "customer_id", *f.CustomerID)
	}
	if f.Name != "" {
		w.add("strpos(d.destination, @name) > 0", "name", f.Name)
	}
	if f.StartFrom != nil {
		w.add("d.start_date >= @start_from", "start_from", *f.StartFrom)
	}
	if f.EndUntil != nil {
		w.add("d.end_date <= @end_until", "end_until", *f.EndUntil)
	}
	if f.Status != nil {
		w.add("d.status = @status::destination_status", "status", string(*f.Status))
	}
	return w
}

// ListByCustomerID returns all destinations of a customer ordered by start date.
func (r *pgDestinationRepo) ListByCustomerID(ctx context.Context, customerID int64) ([]domain.Destination, error) {
	const q = `
		SELECT ` + destinationColumns + `
		FROM destinations d
		WHERE d.customer_id = @customer_id
		ORDER BY d.start_date, d.id`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"customer_id": customerID})
	if err != nil {
		return nil, fmt.Errorf("repo.DestinationRepo.ListByCustomerID: %w", err)
	}
	items, err := collectDestinations(rows)
	if err != nil {
		return nil, fmt.Errorf("repo.DestinationRepo.ListByCustomerID: %w", err)
	}
	return items, nil
}

// Update overwrites only the supplied fields and stamps updated_at.
func (r *pgDestinationRepo) Update(ctx context.Context, id int64, patch domain.DestinationPatch) (domain.Destination, error) {
	const q = `
		UPDATE destinations AS d
		SET destination = COALESCE(@destination, d.destination),
		    start_date  = COALESCE(@start_date, d.start_date),
		    end_date    = COALESCE(@end_date, d.end_date),
		    status      = COALESCE(@status::destination_status, d.status),
		    updated_at  = clock_timestamp()
		WHERE d.id = @id
		RETURNING ` + destinationColumns

	var status *string
	if patch.Status != nil {
		s := string(*patch.Status)
		status = &s
	}
	args := pgx.NamedArgs{
		"id":          id,
		"destination": patch.Destination, // nil becomes NULL and keeps the column
		"start_date":  patch.StartDate,
		"end_date":    patch.EndDate,
		"status":      status,
	}

	result, err := scanDestination(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Destination{}, fmt.Errorf("repo.DestinationRepo.Update: %w", translate(err))
	}
	return result, nil
}

// Delete removes a destination while holding a lock on its customer row.
// Concurrent deletes for the same customer serialize on that lock, so the
// remaining-count check cannot be raced into deleting the last destination.
func (r *pgDestinationRepo) Delete(ctx context.Context, id int64) error {
	const (
		lockCustomer = `
			SELECT c.id
			FROM customers c
			JOIN destinations d ON d.customer_id = c.id
			WHERE d.id = @id
			FOR UPDATE OF c`
		countSiblings = `SELECT count(*) FROM destinations WHERE customer_id = @customer_id`
		deleteOne     = `DELETE FROM destinations WHERE id = @id`
	)

	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		var customerID int64
		if err := tx.QueryRow(ctx, lockCustomer, pgx.NamedArgs{"id": id}).Scan(&customerID); err != nil {
			return translate(err)
		}
		var remaining int64
		if err := tx.QueryRow(ctx, countSiblings, pgx.NamedArgs{"customer_id": customerID}).Scan(&remaining); err != nil {
			return err
		}
		if remaining <= 1 {
			return domain.ErrLastDestination
		}
		tag, err := tx.Exec(ctx, deleteOne, pgx.NamedArgs{"id": id})
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("repo.DestinationRepo.Delete: %w", err)
	}
	return nil
}

// collectDestinations scans and closes rows. It always returns a non-nil slice
// on success.
func collectDestinations(rows pgx.Rows) ([]domain.Destination, error) {
	defer rows.Close()

	items := []domain.Destination{}
	for rows.Next() {
		d, err := scanDestination(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		items = append(items, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return items, nil
}

// scanDestination maps a single database row into a domain.Destination.
// A missing row is reported as pgx.ErrNoRows for the caller to translate.
func scanDestination(s scanner) (domain.Destination, error) {
	var (
		d      domain.Destination
		status string
	)
	err := s.Scan(&d.ID, &d.CustomerID, &d.Destination, &d.StartDate, &d.EndDate,
		&status, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return domain.Destination{}, err
	}
	d.Status = domain.Status(status)
	return d, nil
}
