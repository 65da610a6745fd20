package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/pkordes/travel-crm/backend/internal/domain"
)

// CustomerRepo defines the persistence operations for Customers.
// Reads return the customer aggregate: the customer plus all its destinations.
type CustomerRepo interface {
	// Create inserts a customer and all of its destinations in one transaction
	// and returns the persisted aggregate. Nothing is written if any row fails.
	Create(ctx context.Context, c domain.Customer) (domain.Customer, error)

	// GetByID retrieves a customer and its destinations ordered by id.
	// Returns domain.ErrNotFound if no customer with that ID exists.
	GetByID(ctx context.Context, id int64) (domain.Customer, error)

	// Exists reports whether a customer with the given ID exists.
	Exists(ctx context.Context, id int64) (bool, error)

	// List returns one page of customers matching q, each with its
	// destinations, and the total number of matches. Everything is read from
	// the same snapshot.
	List(ctx context.Context, q domain.CustomerQuery) ([]domain.Customer, int64, error)

	// Update applies the non-nil fields of patch, sets updated_at, and returns
	// the updated aggregate. Returns domain.ErrNotFound if the id does not exist.
	Update(ctx context.Context, id int64, patch domain.CustomerPatch) (domain.Customer, error)

	// Delete removes a customer; its destinations are removed by the
	// ON DELETE CASCADE foreign key. Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id int64) error
}

// pgCustomerRepo is the Postgres implementation of CustomerRepo.
type pgCustomerRepo struct {
	db db
}

// NewCustomerRepo constructs a CustomerRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewCustomerRepo(db db) CustomerRepo {
	return &pgCustomerRepo{db: db}
}

const customerColumns = `c.id, c.name, c.email, c.created_at, c.updated_at`

// customerSortColumns maps allow-listed sortBy keys onto columns.
var customerSortColumns = map[string]string{
	"id":        "c.id",
	"name":      "c.name",
	"createdAt": "c.created_at",
	"updatedAt": "c.updated_at",
}

// Create inserts the customer row, then each destination, in one transaction.
func (r *pgCustomerRepo) Create(ctx context.Context, c domain.Customer) (domain.Customer, error) {
	const q = `
		INSERT INTO customers AS c (name, email)
		VALUES (@name, @email)
		RETURNING ` + customerColumns

	var result domain.Customer
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		var err error
		result, err = scanCustomer(tx.QueryRow(ctx, q, pgx.NamedArgs{"name": c.Name, "email": c.Email}))
		if err != nil {
			return translate(err)
		}
		result.Destinations = make([]domain.Destination, 0, len(c.Destinations))
		for _, d := range c.Destinations {
			d.CustomerID = result.ID
			created, err := insertDestination(ctx, tx, d)
			if err != nil {
				return err
			}
			result.Destinations = append(result.Destinations, created)
		}
		return nil
	})
	if err != nil {
		return domain.Customer{}, fmt.Errorf("repo.CustomerRepo.Create: %w", err)
	}
	return result, nil
}

// GetByID reads the customer and its destinations from one snapshot.
func (r *pgCustomerRepo) GetByID(ctx context.Context, id int64) (domain.Customer, error) {
	const q = `SELECT ` + customerColumns + ` FROM customers c WHERE c.id = @id`

	var result domain.Customer
	err := inSnapshot(ctx, r.db, func(tx pgx.Tx) error {
		var err error
		result, err = scanCustomer(tx.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
		if err != nil {
			return translate(err)
		}
		return attachDestinations(ctx, tx, []*domain.Customer{&result})
	})
	if err != nil {
		return domain.Customer{}, fmt.Errorf("repo.CustomerRepo.GetByID: %w", err)
	}
	return result, nil
}

// Exists checks for the customer row without loading destinations.
func (r *pgCustomerRepo) Exists(ctx context.Context, id int64) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM customers WHERE id = @id)`

	var ok bool
	if err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}).Scan(&ok); err != nil {
		return false, fmt.Errorf("repo.CustomerRepo.Exists: %w", err)
	}
	return ok, nil
}

// List runs the count, the page query, and the destination load in one snapshot.
func (r *pgCustomerRepo) List(ctx context.Context, q domain.CustomerQuery) ([]domain.Customer, int64, error) {
	w := customerWhere(q.Filter)
	order, err := orderBy(q.Sort, customerSortColumns, "c.id")
	if err != nil {
		return nil, 0, fmt.Errorf("repo.CustomerRepo.List: %w", err)
	}

	countSQL := `SELECT count(*) FROM customers c` + w.String()
	pageSQL := `SELECT ` + customerColumns + ` FROM customers c` + w.String() + order +
		` LIMIT @limit OFFSET @offset`
	w.args["limit"] = q.Page.Limit
	w.args["offset"] = q.Page.Offset()

	var (
		items []domain.Customer
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
		items, err = collectCustomers(rows)
		if err != nil {
			return err
		}
		ptrs := make([]*domain.Customer, len(items))
		for i := range items {
			ptrs[i] = &items[i]
		}
		return attachDestinations(ctx, tx, ptrs)
	})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.CustomerRepo.List: %w", err)
	}
	return items, total, nil
}

// customerWhere translates a CustomerFilter into SQL predicates.
// Name and email matching are case-sensitive substring matches.
func customerWhere(f domain.CustomerFilter) *where {
	w := newWhere()
	if f.Name != "" {
		w.add("strpos(c.name, @name) > 0", "name", f.Name)
	}
	if f.Email != "" {
		w.add("strpos(c.email, @email) > 0", "email", f.Email)
	}
	if f.CreatedFrom != nil {
		w.add("c.created_at >= @created_from", "created_from", *f.CreatedFrom)
	}
	if f.CreatedTo != nil {
		w.add("c.created_at <= @created_to", "created_to", *f.CreatedTo)
	}
	if f.UpdatedFrom != nil {
		w.add("c.updated_at >= @updated_from", "updated_from", *f.UpdatedFrom)
	}
	if f.UpdatedTo != nil {
		w.add("c.updated_at <= @updated_to", "updated_to", *f.UpdatedTo)
	}
	return w
}

// Update overwrites only the supplied fields and stamps updated_at.
func (r *pgCustomerRepo) Update(ctx context.Context, id int64, patch domain.CustomerPatch) (domain.Customer, error) {
	const q = `
		UPDATE customers AS c
		SET name       = COALESCE(@name, c.name),
		    email      = COALESCE(@email, c.email),
		    updated_at = clock_timestamp()
		WHERE c.id = @id
		RETURNING ` + customerColumns

	args := pgx.NamedArgs{
		"id":    id,
		"name":  patch.Name, // nil becomes NULL and keeps the column
		"email": patch.Email,
	}

	var result domain.Customer
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		var err error
		result, err = scanCustomer(tx.QueryRow(ctx, q, args))
		if err != nil {
			return translate(err)
		}
		return attachDestinations(ctx, tx, []*domain.Customer{&result})
	})
	if err != nil {
		return domain.Customer{}, fmt.Errorf("repo.CustomerRepo.Update: %w", err)
	}
	return result, nil
}

// Delete removes a customer by primary key.
func (r *pgCustomerRepo) Delete(ctx context.Context, id int64) error {
	const q = `DELETE FROM customers WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.CustomerRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.CustomerRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// attachDestinations loads the destinations of every customer in one query
// and assigns them in id order. Customers without destinations get an empty slice.
func attachDestinations(ctx context.Context, q db, customers []*domain.Customer) error {
	if len(customers) == 0 {
		return nil
	}
	const sql = `
		SELECT ` + destinationColumns + `
		FROM destinations d
		WHERE d.customer_id = ANY(@ids)
		ORDER BY d.id`

	ids := make([]int64, len(customers))
	byID := make(map[int64]*domain.Customer, len(customers))
	for i, c := range customers {
		ids[i] = c.ID
		byID[c.ID] = c
		c.Destinations = []domain.Destination{}
	}

	rows, err := q.Query(ctx, sql, pgx.NamedArgs{"ids": ids})
	if err != nil {
		return fmt.Errorf("destinations: %w", err)
	}
	dests, err := collectDestinations(rows)
	if err != nil {
		return fmt.Errorf("destinations: %w", err)
	}
	for _, d := range dests {
		if c, ok := byID[d.CustomerID]; ok {
			c.Destinations = append(c.Destinations, d)
		}
	}
	return nil
}

// collectCustomers scans and closes rows.
func collectCustomers(rows pgx.Rows) ([]domain.Customer, error) {
	defer rows.Close()

	items := []domain.Customer{}
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		items = append(items, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return items, nil
}

// scanCustomer maps a single database row into a domain.Customer without
// its destinations.
func scanCustomer(s scanner) (domain.Customer, error) {
	var c domain.Customer
	if err := s.Scan(&c.ID, &c.Name, &c.Email, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return domain.Customer{}, err
	}
	return c, nil
}
