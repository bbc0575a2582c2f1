package eventtype

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/taibuivan/eventos/internal/platform/apperr"
	"github.com/taibuivan/eventos/internal/platform/database/schema"
	"github.com/taibuivan/eventos/internal/platform/dberr"
	"github.com/taibuivan/eventos/internal/platform/postgres"
	"github.com/taibuivan/eventos/pkg/pagination"
)

const resource = "Event type"

type PostgresRepository struct {
	db postgres.DBTX
}

func NewPostgresRepository(db postgres.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) List(context context.Context, params pagination.Params) (pagination.Page[*EventType], error) {
	table := schema.EventType

	var total int
	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s`, table.Table)
	if err := repository.db.QueryRow(context, countQuery).Scan(&total); err != nil {
		return pagination.Page[*EventType]{}, dberr.Wrap(err, resource)
	}

	query := fmt.Sprintf(`
		SELECT %s, %s, %s
		FROM %s
		ORDER BY %s ASC, %s ASC
		LIMIT $1 OFFSET $2
	`,
		table.ID, table.Name, table.IsActive,
		table.Table, table.Name, table.ID,
	)

	rows, err := repository.db.Query(context, query, params.Limit, params.Offset())
	if err != nil {
		return pagination.Page[*EventType]{}, dberr.Wrap(err, resource)
	}

	eventTypes, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*EventType, error) {
		eventType := &EventType{}
		err := row.Scan(&eventType.ID, &eventType.Name, &eventType.IsActive)
		return eventType, err
	})
	if err != nil {
		return pagination.Page[*EventType]{}, dberr.Wrap(err, resource)
	}

	return pagination.NewPage(eventTypes, total, params), nil
}

func (repository *PostgresRepository) Get(context context.Context, id int64) (*EventType, error) {
	table := schema.EventType
	query := fmt.Sprintf(`SELECT %s, %s, %s FROM %s WHERE %s = $1`,
		table.ID, table.Name, table.IsActive, table.Table, table.ID,
	)

	eventType := &EventType{}
	err := repository.db.QueryRow(context, query, id).Scan(&eventType.ID, &eventType.Name, &eventType.IsActive)
	if err != nil {
		return nil, dberr.Wrap(err, resource)
	}
	return eventType, nil
}

func (repository *PostgresRepository) Create(context context.Context, eventType *EventType) error {
	table := schema.EventType
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2) RETURNING %s`,
		table.Table, table.Name, table.IsActive, table.ID,
	)

	err := repository.db.QueryRow(context, query, eventType.Name, eventType.IsActive).Scan(&eventType.ID)
	return dberr.Wrap(err, resource)
}

func (repository *PostgresRepository) Update(context context.Context, eventType *EventType) error {
	table := schema.EventType
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = $3 WHERE %s = $1`,
		table.Table, table.Name, table.IsActive, table.ID,
	)

	tag, err := repository.db.Exec(context, query, eventType.ID, eventType.Name, eventType.IsActive)
	if err != nil {
		return dberr.Wrap(err, resource)
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, resource)
	}
	return nil
}

// Delete removes an event type. Events referencing it block the delete.
func (repository *PostgresRepository) Delete(context context.Context, id int64) error {
	table := schema.EventType
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, table.Table, table.ID)

	tag, err := repository.db.Exec(context, query, id)
	if err != nil {
		if dberr.IsForeignKeyViolation(err) {
			return apperr.ValidationError("Event type is still used by events").WithCause(err)
		}
		return dberr.Wrap(err, resource)
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, resource)
	}
	return nil
}
