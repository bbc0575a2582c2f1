package attendance

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/taibuivan/eventos/internal/platform/database/schema"
	"github.com/taibuivan/eventos/internal/platform/dberr"
	"github.com/taibuivan/eventos/internal/platform/postgres"
	"github.com/taibuivan/eventos/pkg/pagination"
)

const resource = "Attendance"

type PostgresRepository struct {
	db postgres.DBTX
}

func NewPostgresRepository(db postgres.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// selectFrom reads attendance with the event and person names embedded.
var selectFrom = func() string {
	a, e, p := schema.Attendance, schema.Event, schema.Person

	return fmt.Sprintf(`
		SELECT a.%s, a.%s, a.%s, a.%s, e.%s, a.%s, p.%s
		FROM %s a
		JOIN %s e ON e.%s = a.%s
		JOIN %s p ON p.%s = a.%s`,
		a.ID, a.CheckedInAt, a.Note, a.EventID, e.Name, a.PersonID, p.Name,
		a.Table,
		e.Table, e.ID, a.EventID,
		p.Table, p.ID, a.PersonID,
	)
}()

func (repository *PostgresRepository) List(context context.Context, filter Filter, params pagination.Params) (pagination.Page[*Attendance], error) {
	table := schema.Attendance

	where := ""
	args := []any{}
	if filter.EventID != nil {
		where = fmt.Sprintf(" WHERE a.%s = $1", table.EventID)
		args = append(args, *filter.EventID)
	}

	var total int
	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s a%s`, table.Table, where)
	if err := repository.db.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return pagination.Page[*Attendance]{}, dberr.Wrap(err, resource)
	}

	var query strings.Builder
	query.WriteString(selectFrom)
	query.WriteString(where)
	fmt.Fprintf(&query, " ORDER BY a.%s DESC, a.%s DESC LIMIT $%d OFFSET $%d",
		table.CheckedInAt, table.ID, len(args)+1, len(args)+2,
	)
	args = append(args, params.Limit, params.Offset())

	rows, err := repository.db.Query(context, query.String(), args...)
	if err != nil {
		return pagination.Page[*Attendance]{}, dberr.Wrap(err, resource)
	}

	records, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*Attendance, error) {
		return scanAttendance(row)
	})
	if err != nil {
		return pagination.Page[*Attendance]{}, dberr.Wrap(err, resource)
	}

	return pagination.NewPage(records, total, params), nil
}

func (repository *PostgresRepository) Get(context context.Context, id int64) (*Attendance, error) {
	query := selectFrom + fmt.Sprintf(" WHERE a.%s = $1", schema.Attendance.ID)

	record, err := scanAttendance(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, resource)
	}
	return record, nil
}

func (repository *PostgresRepository) Create(context context.Context, record *Attendance) error {
	table := schema.Attendance
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, $4)
		RETURNING %s
	`,
		table.Table, table.CheckedInAt, table.Note, table.EventID, table.PersonID,
		table.ID,
	)

	err := repository.db.QueryRow(context, query,
		record.CheckedInAt, record.Note, record.EventID, record.PersonID,
	).Scan(&record.ID)
	return dberr.Wrap(err, resource)
}

func (repository *PostgresRepository) Update(context context.Context, record *Attendance) error {
	table := schema.Attendance
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = $3, %s = $4, %s = $5 WHERE %s = $1`,
		table.Table, table.CheckedInAt, table.Note, table.EventID, table.PersonID, table.ID,
	)

	tag, err := repository.db.Exec(context, query,
		record.ID, record.CheckedInAt, record.Note, record.EventID, record.PersonID,
	)
	if err != nil {
		return dberr.Wrap(err, resource)
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, resource)
	}
	return nil
}

func (repository *PostgresRepository) Delete(context context.Context, id int64) error {
	table := schema.Attendance
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

func (repository *PostgresRepository) EventExists(context context.Context, id int64) (bool, error) {
	return repository.exists(context, schema.Event.Table, schema.Event.ID, id)
}

func (repository *PostgresRepository) PersonExists(context context.Context, id int64) (bool, error) {
	return repository.exists(context, schema.Person.Table, schema.Person.ID, id)
}

func (repository *PostgresRepository) exists(context context.Context, table, column string, id int64) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)`, table, column)

	var found bool
	if err := repository.db.QueryRow(context, query, id).Scan(&found); err != nil {
		return false, dberr.Wrap(err, resource)
	}
	return found, nil
}

func scanAttendance(row pgx.Row) (*Attendance, error) {
	record := &Attendance{}
	err := row.Scan(
		&record.ID, &record.CheckedInAt, &record.Note,
		&record.EventID, &record.EventName, &record.PersonID, &record.PersonName,
	)
	if err != nil {
		return nil, err
	}
	return record, nil
}
