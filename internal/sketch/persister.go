package sketch

import (
	"context"

	"github.com/claimsketch-com/claimsketchgo/internal/models"
)

// Persister is the write side of the sketch store. Updates take column
// maps so a gesture can touch exactly the fields it changed. The edit
// session mutates through this interface only; reads happen when the
// transport reloads state after a change.
type Persister interface {
	CreateRoom(ctx context.Context, room *models.Room) error
	UpdateRoom(ctx context.Context, id string, fields map[string]interface{}) error
	DeleteRoom(ctx context.Context, id string) error

	CreateOpening(ctx context.Context, op *models.Opening) error
	UpdateOpening(ctx context.Context, id string, fields map[string]interface{}) error
	DeleteOpening(ctx context.Context, id string) error

	CreateAnnotation(ctx context.Context, a *models.Annotation) error
	UpdateAnnotation(ctx context.Context, id string, fields map[string]interface{}) error
	DeleteAnnotation(ctx context.Context, id string) error

	CreateAdjacency(ctx context.Context, adj *models.Adjacency) error
	DeleteAdjacency(ctx context.Context, id string) error
}
