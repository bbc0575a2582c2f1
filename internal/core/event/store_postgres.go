package event

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/taibuivan/eventos/internal/platform/database/schema"
	"github.com/taibuivan/eventos/internal/platform/dberr"
	"github.com/taibuivan/eventos/internal/platform/postgres"
	"github.com/taibuivan/eventos/pkg/pagination"
)

const resource = "Event"

type PostgresRepository struct {
	db postgres.DBTX
}

func NewPostgresRepository(db postgres.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// selectFrom reads events with their type name and owner username embedded.
var selectFrom = func() string {
	e, t, a := schema.Event, schema.EventType, schema.UserAccount

	return fmt.Sprintf(`
		SELECT e.%s, e.%s, e.%s, e.%s, e.%s, e.%s, e.%s, e.%s, e.%s, e.%s, t.%s, e.%s, a.%s, e.%s
		FROM %s e
		JOIN %s t ON t.%s = e.%s
		LEFT JOIN %s a ON a.%s = e.%s`,
		e.ID, e.Name, e.Description, e.Address, e.Cost, e.StartDate, e.EndDate,
		e.StartTime, e.EndTime, e.EventTypeID, t.Name, e.OwnerID, a.Username, e.IsActive,
		e.Table,
		t.Table, t.ID, e.EventTypeID,
		a.Table, a.ID, e.OwnerID,
	)
}()

func (repository *PostgresRepository) List(context context.Context, filter Filter, params pagination.Params) (pagination.Page[*Event], error) {
	table := schema.Event

	where := ""
	args := []any{}
	if filter.OwnerID != nil {
		where = fmt.Sprintf(" WHERE e.%s = $1", table.OwnerID)
		args = append(args, *filter.OwnerID)
	}

	var total int
	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s e%s`, table.Table, where)
	if err := repository.db.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return pagination.Page[*Event]{}, dberr.Wrap(err, resource)
	}

	var query strings.Builder
	query.WriteString(selectFrom)
	query.WriteString(where)
	fmt.Fprintf(&query, " ORDER BY e.%s DESC, e.%s DESC LIMIT $%d OFFSET $%d",
		table.StartDate, table.ID, len(args)+1, len(args)+2,
	)
	args = append(args, params.Limit, params.Offset())

	rows, err := repository.db.Query(context, query.String(), args...)
	if err != nil {
		return pagination.Page[*Event]{}, dberr.Wrap(err, resource)
	}

	events, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*Event, error) {
		return scanEvent(row)
	})
	if err != nil {
		return pagination.Page[*Event]{}, dberr.Wrap(err, resource)
	}

	return pagination.NewPage(events, total, params), nil
}

func (repository *PostgresRepository) Get(context context.Context, id int64) (*Event, error) {
	query := selectFrom + fmt.Sprintf(" WHERE e.%s = $1", schema.Event.ID)

	event, err := scanEvent(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, resource)
	}
	return event, nil
}

func (repository *PostgresRepository) Create(context context.Context, event *Event) error {
	table := schema.Event
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING %s
	`,
		table.Table,
		table.Name, table.Description, table.Address, table.Cost, table.StartDate, table.EndDate,
		table.StartTime, table.EndTime, table.EventTypeID, table.OwnerID, table.IsActive,
		table.ID,
	)

	err := repository.db.QueryRow(context, query, writeArgs(event)...).Scan(&event.ID)
	return dberr.Wrap(err, resource)
}

func (repository *PostgresRepository) Update(context context.Context, event *Event) error {
	table := schema.Event
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $1, %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7, %s = $8, %s = $9, %s = $10, %s = $11
		WHERE %s = $12
	`,
		table.Table,
		table.Name, table.Description, table.Address, table.Cost, table.StartDate, table.EndDate,
		table.StartTime, table.EndTime, table.EventTypeID, table.OwnerID, table.IsActive,
		table.ID,
	)

	tag, err := repository.db.Exec(context, query, append(writeArgs(event), event.ID)...)
	if err != nil {
		return dberr.Wrap(err, resource)
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, resource)
	}
	return nil
}

// Delete removes an event. Its attendance records go with it (ON DELETE CASCADE).
func (repository *PostgresRepository) Delete(context context.Context, id int64) error {
	table := schema.Event
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, table.Table, table.ID)

	tag, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, resource)
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, resource)
	}
	return nil
}

func (repository *PostgresRepository) EventTypeExists(context context.Context, id int64) (bool, error) {
	return repository.exists(context, schema.EventType.Table, schema.EventType.ID, id)
}

func (repository *PostgresRepository) OwnerExists(context context.Context, id int64) (bool, error) {
	return repository.exists(context, schema.UserAccount.Table, schema.UserAccount.ID, id)
}

func (repository *PostgresRepository) exists(context context.Context, table, column string, id int64) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)`, table, column)

	var found bool
	if err := repository.db.QueryRow(context, query, id).Scan(&found); err != nil {
		return false, dberr.Wrap(err, resource)
	}
	return found, nil
}

func writeArgs(event *Event) []any {
	return []any{
		event.Name,
		event.Description,
		event.Address,
		event.Cost,
		postgres.DateValue(event.StartDate),
		postgres.DateValue(event.EndDate),
		postgres.TimeValue(event.StartTime),
		postgres.TimeValue(event.EndTime),
		event.EventTypeID,
		event.OwnerID,
		event.IsActive,
	}
}

func scanEvent(row pgx.Row) (*Event, error) {
	event := &Event{}

	var (
		startDate, endDate pgtype.Date
		startTime, endTime pgtype.Time
	)

	err := row.Scan(
		&event.ID, &event.Name, &event.Description, &event.Address, &event.Cost,
		&startDate, &endDate, &startTime, &endTime,
		&event.EventTypeID, &event.EventTypeName, &event.OwnerID, &event.OwnerUsername, &event.IsActive,
	)
	if err != nil {
		return nil, err
	}

	event.StartDate = postgres.DateFrom(startDate)
	event.EndDate = postgres.DateFrom(endDate)
	event.StartTime = postgres.TimeFrom(startTime)
	event.EndTime = postgres.TimeFrom(endTime)

	return event, nil
}
