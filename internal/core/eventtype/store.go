package eventtype

import (
	"context"

	"github.com/taibuivan/eventos/pkg/pagination"
)

type Repository interface {
	List(context context.Context, params pagination.Params) (pagination.Page[*EventType], error)
	Get(context context.Context, id int64) (*EventType, error)
	Create(context context.Context, eventType *EventType) error
	Update(context context.Context, eventType *EventType) error
	Delete(context context.Context, id int64) error
}
