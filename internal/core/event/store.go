package event

import (
	"context"

	"github.com/taibuivan/eventos/pkg/pagination"
)

type Repository interface {
	List(context context.Context, filter Filter, params pagination.Params) (pagination.Page[*Event], error)
	Get(context context.Context, id int64) (*Event, error)
	Create(context context.Context, event *Event) error
	Update(context context.Context, event *Event) error
	Delete(context context.Context, id int64) error

	// Reference checks ahead of writes, for a precise validation message
	EventTypeExists(context context.Context, id int64) (bool, error)
	OwnerExists(context context.Context, id int64) (bool, error)
}
