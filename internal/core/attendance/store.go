package attendance

import (
	"context"

	"github.com/taibuivan/eventos/pkg/pagination"
)

type Repository interface {
	List(context context.Context, filter Filter, params pagination.Params) (pagination.Page[*Attendance], error)
	Get(context context.Context, id int64) (*Attendance, error)
	Create(context context.Context, attendance *Attendance) error
	Update(context context.Context, attendance *Attendance) error
	Delete(context context.Context, id int64) error

	EventExists(context context.Context, id int64) (bool, error)
	PersonExists(context context.Context, id int64) (bool, error)
}
