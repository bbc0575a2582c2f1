package person

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/taibuivan/eventos/internal/platform/apperr"
	"github.com/taibuivan/eventos/internal/platform/database/schema"
	"github.com/taibuivan/eventos/internal/platform/dberr"
	"github.com/taibuivan/eventos/internal/platform/postgres"
	"github.com/taibuivan/eventos/pkg/gender"
	"github.com/taibuivan/eventos/pkg/pagination"
)

const resource = "Person"

type PostgresRepository struct {
	db postgres.DBTX
}

func NewPostgresRepository(db postgres.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) List(context context.Context, params pagination.Params) (pagination.Page[*Person], error) {
	table := schema.Person

	var total int
	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s`, table.Table)
	if err := repository.db.QueryRow(context, countQuery).Scan(&total); err != nil {
		return pagination.Page[*Person]{}, dberr.Wrap(err, resource)
	}

	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s
		FROM %s
		ORDER BY %s ASC, %s ASC
		LIMIT $1 OFFSET $2
	`,
		table.ID, table.Name, table.Phone, table.BirthDate, table.Gender, table.IsActive,
		table.Table, table.Name, table.ID,
	)

	rows, err := repository.db.Query(context, query, params.Limit, params.Offset())
	if err != nil {
		return pagination.Page[*Person]{}, dberr.Wrap(err, resource)
	}

	persons, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*Person, error) {
		return scanPerson(row)
	})
	if err != nil {
		return pagination.Page[*Person]{}, dberr.Wrap(err, resource)
	}

	return pagination.NewPage(persons, total, params), nil
}

func (repository *PostgresRepository) Get(context context.Context, id int64) (*Person, error) {
	table := schema.Person
	query := fmt.Sprintf(`SELECT %s, %s, %s, %s, %s, %s FROM %s WHERE %s = $1`,
		table.ID, table.Name, table.Phone, table.BirthDate, table.Gender, table.IsActive,
		table.Table, table.ID,
	)

	person, err := scanPerson(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, resource)
	}
	return person, nil
}

func (repository *PostgresRepository) Create(context context.Context, person *Person) error {
	table := schema.Person
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING %s
	`,
		table.Table, table.Name, table.Phone, table.BirthDate, table.Gender, table.IsActive,
		table.ID,
	)

	err := repository.db.QueryRow(context, query,
		person.Name, person.Phone, postgres.NullableDate(person.BirthDate), int16(person.Gender), person.IsActive,
	).Scan(&person.ID)
	return dberr.Wrap(err, resource)
}

func (repository *PostgresRepository) Update(context context.Context, person *Person) error {
	table := schema.Person
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6 WHERE %s = $1`,
		table.Table, table.Name, table.Phone, table.BirthDate, table.Gender, table.IsActive, table.ID,
	)

	tag, err := repository.db.Exec(context, query,
		person.ID, person.Name, person.Phone, postgres.NullableDate(person.BirthDate), int16(person.Gender), person.IsActive,
	)
	if err != nil {
		return dberr.Wrap(err, resource)
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, resource)
	}
	return nil
}

// Delete removes a person. Attendance records referencing them block the delete.
func (repository *PostgresRepository) Delete(context context.Context, id int64) error {
	table := schema.Person
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, table.Table, table.ID)

	tag, err := repository.db.Exec(context, query, id)
	if err != nil {
		if dberr.IsForeignKeyViolation(err) {
			return apperr.ValidationError("Person still has attendance records").WithCause(err)
		}
		return dberr.Wrap(err, resource)
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, resource)
	}
	return nil
}

func scanPerson(row pgx.Row) (*Person, error) {
	person := &Person{}

	var (
		birthDate pgtype.Date
		code      int16
	)

	if err := row.Scan(&person.ID, &person.Name, &person.Phone, &birthDate, &code, &person.IsActive); err != nil {
		return nil, err
	}

	person.BirthDate = postgres.NullableDateFrom(birthDate)
	person.Gender = gender.Gender(code)
	return person, nil
}
