package reconcile

import (
	"context"
	"fmt"
	"time"

	"ge-sync/feature/inventory/models"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store is the gorm-backed canonical inventory store.
type Store struct {
	db *gorm.DB
}

// NewStore creates a store on db.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// LoadState reads the projection BuildPlan needs for scope. The reads are independent
// and run concurrently.
func (s *Store) LoadState(ctx context.Context, scope Scope) (*State, error) {
	state := &State{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		rows, err := s.itemsIn(gctx, scope, []models.InventoryType{scope.Bucket})
		if err != nil {
			return fmt.Errorf("failed to load %s items: %w", scope.Bucket, err)
		}
		state.Current = rows
		return nil
	})

	g.Go(func() error {
		class := models.EquivalenceClass(scope.Bucket)
		if len(class) < 2 {
			return nil
		}
		rows, err := s.itemsIn(gctx, scope, class[1:])
		if err != nil {
			return fmt.Errorf("failed to load equivalent items: %w", err)
		}
		state.Equivalent = rows
		return nil
	})

	g.Go(func() error {
		foreign, err := s.foreignLive(gctx, scope)
		if err != nil {
			return fmt.Errorf("failed to load foreign serials: %w", err)
		}
		state.ForeignLive = foreign
		return nil
	})

	g.Go(func() error {
		var loads []models.Load
		err := s.db.WithContext(gctx).
			Where("company_id = ? AND location_id = ? AND inventory_type = ?", scope.CompanyID, scope.LocationID, scope.Bucket).
			Order("load_number").
			Find(&loads).Error
		if err != nil {
			return fmt.Errorf("failed to load loads: %w", err)
		}
		state.Loads = loads
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return state, nil
}

func (s *Store) itemsIn(ctx context.Context, scope Scope, buckets []models.InventoryType) ([]models.InventoryItem, error) {
	var rows []models.InventoryItem
	err := s.db.WithContext(ctx).
		Where("company_id = ? AND location_id = ? AND inventory_type IN ?", scope.CompanyID, scope.LocationID, buckets).
		Order("created_at, id").
		Find(&rows).Error
	return rows, err
}

func (s *Store) foreignLive(ctx context.Context, scope Scope) (map[string]models.InventoryType, error) {
	var rows []struct {
		Serial        string
		InventoryType models.InventoryType
	}
	err := s.db.WithContext(ctx).
		Model(&models.InventoryItem{}).
		Select("serial", "inventory_type").
		Where("company_id = ? AND location_id = ? AND inventory_type NOT IN ? AND ge_orphaned = ?",
			scope.CompanyID, scope.LocationID, models.EquivalenceClass(scope.Bucket), false).
		Where("serial IS NOT NULL AND serial <> ''").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make(map[string]models.InventoryType, len(rows))
	for _, r := range rows {
		out[r.Serial] = r.InventoryType
	}
	return out, nil
}

// LoadProducts builds the model to product lookup.
func (s *Store) LoadProducts(ctx context.Context) (models.ProductLookup, error) {
	var products []models.Product
	if err := s.db.WithContext(ctx).Select("id", "model", "product_type").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}

	lookup := make(models.ProductLookup, len(products))
	for _, p := range products {
		lookup[models.ProductKey(p.Model)] = models.ProductRef{ID: p.ID, ProductType: p.ProductType}
	}
	return lookup, nil
}

// InsertChanges appends change events.
func (s *Store) InsertChanges(ctx context.Context, events []models.ChangeEvent) error {
	return s.db.WithContext(ctx).Create(&events).Error
}

// InsertItems creates brand-new records; ids are assigned by the model hook.
func (s *Store) InsertItems(ctx context.Context, items []models.InventoryItem) error {
	return s.db.WithContext(ctx).Create(&items).Error
}

// UpsertItems writes existing records keyed by id. Only sync-owned columns are
// overwritten, so workflow fields keep their values.
func (s *Store) UpsertItems(ctx context.Context, items []models.InventoryItem) error {
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns(models.SyncColumns),
		}).
		Create(&items).Error
}

// MarkItemsOrphaned flags records as no longer present in GE.
func (s *Store) MarkItemsOrphaned(ctx context.Context, ids []string, at time.Time) error {
	return s.db.WithContext(ctx).
		Model(&models.InventoryItem{}).
		Where("id IN ?", ids).
		Updates(map[string]any{
			"ge_orphaned":    true,
			"ge_orphaned_at": at,
			"status":         models.StatusNotInGE,
			"updated_at":     at,
		}).Error
}

// ClearOrphanStatus resets the status orphaning wrote on recovered records. A status
// changed since by the scanning workflow is left alone.
func (s *Store) ClearOrphanStatus(ctx context.Context, ids []string) error {
	return s.db.WithContext(ctx).
		Model(&models.InventoryItem{}).
		Where("id IN ? AND status = ?", ids, models.StatusNotInGE).
		Update("status", nil).Error
}

// UpsertLoads writes load metadata keyed by its natural key.
func (s *Store) UpsertLoads(ctx context.Context, loads []models.Load) error {
	cols := make([]clause.Column, 0, len(models.LoadScopeColumns))
	for _, c := range models.LoadScopeColumns {
		cols = append(cols, clause.Column{Name: c})
	}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   cols,
			DoUpdates: clause.AssignmentColumns(models.LoadSyncColumns),
		}).
		Create(&loads).Error
}

// MarkLoadsOrphaned flags loads that vanished from the snapshot.
func (s *Store) MarkLoadsOrphaned(ctx context.Context, ids []uint, at time.Time) error {
	return s.db.WithContext(ctx).
		Model(&models.Load{}).
		Where("id IN ?", ids).
		Updates(map[string]any{
			"ge_orphaned":    true,
			"ge_orphaned_at": at,
			"updated_at":     at,
		}).Error
}
