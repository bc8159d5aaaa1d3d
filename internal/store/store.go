// Package store is the persistence layer for inspections and their
// sketch entities.
package store

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/claimsketch-com/claimsketchgo/internal/database"
	"github.com/claimsketch-com/claimsketchgo/internal/models"
	"github.com/claimsketch-com/claimsketchgo/internal/sketch"
)

// Store wraps the database for all inspection reads and writes. It is
// the Persister the edit sessions mutate through.
type Store struct {
	db  *database.DB
	log *zap.SugaredLogger
}

var _ sketch.Persister = (*Store)(nil)

func New(db *database.DB, log *zap.SugaredLogger) *Store {
	return &Store{db: db, log: log}
}

// --- Inspections ---

func (s *Store) CreateInspection(ctx context.Context, insp *models.Inspection) error {
	if err := s.db.WithContext(ctx).Create(insp).Error; err != nil {
		return fmt.Errorf("failed to create inspection: %w", err)
	}
	return nil
}

func (s *Store) GetInspection(ctx context.Context, id string) (*models.Inspection, error) {
	var insp models.Inspection
	if err := s.db.WithContext(ctx).First(&insp, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &insp, nil
}

// InspectionSummary is one row of the inspection listing: the
// inspection plus how many rooms have been captured so far.
type InspectionSummary struct {
	models.Inspection
	RoomCount int64 `json:"roomCount"`
}

type roomCount struct {
	InspectionID string
	Count        int64
}

func (s *Store) ListInspections(ctx context.Context) ([]InspectionSummary, error) {
	var inspections []models.Inspection
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&inspections).Error; err != nil {
		return nil, fmt.Errorf("list inspections: %w", err)
	}

	var counts []roomCount
	err := s.db.WithContext(ctx).Model(&models.Room{}).
		Select("inspection_id, count(*) as count").
		Group("inspection_id").
		Scan(&counts).Error
	if err != nil {
		return nil, fmt.Errorf("count rooms: %w", err)
	}
	return summarizeInspections(inspections, counts), nil
}

// summarizeInspections joins the grouped room counts onto the listing.
// Inspections with no rooms yet keep a zero count.
func summarizeInspections(inspections []models.Inspection, counts []roomCount) []InspectionSummary {
	byID := make(map[string]int64, len(counts))
	for _, c := range counts {
		byID[c.InspectionID] = c.Count
	}
	out := make([]InspectionSummary, len(inspections))
	for i, insp := range inspections {
		out[i] = InspectionSummary{Inspection: insp, RoomCount: byID[insp.ID]}
	}
	return out
}

func (s *Store) UpdateInspection(ctx context.Context, id string, fields map[string]interface{}) error {
	res := s.db.WithContext(ctx).Model(&models.Inspection{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteInspection removes an inspection and everything under it.
func (s *Store) DeleteInspection(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		roomIDs := tx.Model(&models.Room{}).Select("id").Where("inspection_id = ?", id)
		if err := tx.Where("room_id IN (?)", roomIDs).Delete(&models.Opening{}).Error; err != nil {
			return err
		}
		if err := tx.Where("room_id IN (?)", roomIDs).Delete(&models.Annotation{}).Error; err != nil {
			return err
		}
		if err := tx.Where("inspection_id = ?", id).Delete(&models.Adjacency{}).Error; err != nil {
			return err
		}
		if err := tx.Where("inspection_id = ?", id).Delete(&models.Room{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&models.Inspection{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// MarkExported stamps the time the inspection's report reached the
// claims system.
func (s *Store) MarkExported(ctx context.Context, id string) error {
	now := time.Now().UTC()
	return s.UpdateInspection(ctx, id, map[string]interface{}{"exported_at": now})
}

// Counts returns coarse table sizes for the status endpoint.
func (s *Store) Counts(ctx context.Context) (inspections, rooms int64, err error) {
	if err = s.db.WithContext(ctx).Model(&models.Inspection{}).Count(&inspections).Error; err != nil {
		return
	}
	err = s.db.WithContext(ctx).Model(&models.Room{}).Count(&rooms).Error
	return
}

// PendingExports lists completed inspections whose report has not been
// pushed to the claims system yet.
func (s *Store) PendingExports(ctx context.Context) ([]models.Inspection, error) {
	var out []models.Inspection
	err := s.db.WithContext(ctx).
		Where("status = ? AND exported_at IS NULL", models.InspectionComplete).
		Order("updated_at ASC").
		Find(&out).Error
	return out, err
}

// --- Sketch state ---

// LoadState reads everything a plan build needs in one call. Rooms
// come back in sort order so the layout seed is stable.
func (s *Store) LoadState(ctx context.Context, inspectionID string) (sketch.State, error) {
	var st sketch.State
	db := s.db.WithContext(ctx)

	err := db.Where("inspection_id = ?", inspectionID).
		Order("sort_order ASC, created_at ASC").
		Find(&st.Rooms).Error
	if err != nil {
		return st, fmt.Errorf("failed to load rooms: %w", err)
	}

	roomIDs := db.Model(&models.Room{}).Select("id").Where("inspection_id = ?", inspectionID)
	err = db.Where("room_id IN (?)", roomIDs).Order("created_at ASC").Find(&st.Openings).Error
	if err != nil {
		return st, fmt.Errorf("failed to load openings: %w", err)
	}
	err = db.Where("room_id IN (?)", roomIDs).Order("created_at ASC").Find(&st.Annotations).Error
	if err != nil {
		return st, fmt.Errorf("failed to load annotations: %w", err)
	}
	err = db.Where("inspection_id = ?", inspectionID).Order("created_at ASC").Find(&st.Adjacencies).Error
	if err != nil {
		return st, fmt.Errorf("failed to load adjacencies: %w", err)
	}
	return st, nil
}

func (s *Store) GetRoom(ctx context.Context, id string) (*models.Room, error) {
	var room models.Room
	if err := s.db.WithContext(ctx).First(&room, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &room, nil
}

func (s *Store) GetOpening(ctx context.Context, id string) (*models.Opening, error) {
	var op models.Opening
	if err := s.db.WithContext(ctx).First(&op, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &op, nil
}

func (s *Store) GetAnnotation(ctx context.Context, id string) (*models.Annotation, error) {
	var a models.Annotation
	if err := s.db.WithContext(ctx).First(&a, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

// --- Persister ---

func (s *Store) CreateRoom(ctx context.Context, room *models.Room) error {
	return s.db.WithContext(ctx).Create(room).Error
}

func (s *Store) UpdateRoom(ctx context.Context, id string, fields map[string]interface{}) error {
	res := s.db.WithContext(ctx).Model(&models.Room{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteRoom removes a room together with its openings, annotations,
// adjacencies and direct sub-areas.
func (s *Store) DeleteRoom(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var subIDs []string
		if err := tx.Model(&models.Room{}).Where("parent_room_id = ?", id).Pluck("id", &subIDs).Error; err != nil {
			return err
		}
		ids := append(subIDs, id)

		if err := tx.Where("room_id IN ?", ids).Delete(&models.Opening{}).Error; err != nil {
			return err
		}
		if err := tx.Where("room_id IN ?", ids).Delete(&models.Annotation{}).Error; err != nil {
			return err
		}
		if err := tx.Where("room_id_a IN ? OR room_id_b IN ?", ids, ids).Delete(&models.Adjacency{}).Error; err != nil {
			return err
		}
		res := tx.Where("id IN ?", ids).Delete(&models.Room{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (s *Store) CreateOpening(ctx context.Context, op *models.Opening) error {
	return s.db.WithContext(ctx).Create(op).Error
}

func (s *Store) UpdateOpening(ctx context.Context, id string, fields map[string]interface{}) error {
	res := s.db.WithContext(ctx).Model(&models.Opening{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (s *Store) DeleteOpening(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Opening{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (s *Store) CreateAnnotation(ctx context.Context, a *models.Annotation) error {
	return s.db.WithContext(ctx).Create(a).Error
}

func (s *Store) UpdateAnnotation(ctx context.Context, id string, fields map[string]interface{}) error {
	res := s.db.WithContext(ctx).Model(&models.Annotation{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (s *Store) DeleteAnnotation(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Annotation{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (s *Store) CreateAdjacency(ctx context.Context, adj *models.Adjacency) error {
	return s.db.WithContext(ctx).Create(adj).Error
}

func (s *Store) DeleteAdjacency(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Adjacency{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
