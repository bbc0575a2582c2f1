package person

import (
	"context"

	"github.com/taibuivan/eventos/pkg/pagination"
)

type Repository interface {
	List(context context.Context, params pagination.Params) (pagination.Page[*Person], error)
	Get(context context.Context, id int64) (*Person, error)
	Create(context context.Context, person *Person) error
	Update(context context.Context, person *Person) error
	Delete(context context.Context, id int64) error
}
