package basket

import (
	"encoding/json"
	"errors"
	"fmt"

	"asa-backend/internal/inventory"
	"asa-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore implementa Store sobre o Postgres via GORM.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) ListStockItems() ([]models.StockItem, error) {
	var items []models.StockItem
	if err := s.db.Order("name asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *GormStore) GetStockItem(id uint) (*models.StockItem, error) {
	var item models.StockItem
	if err := s.db.First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, inventory.ErrItemNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (s *GormStore) AdjustStockQuantity(id uint, delta float64) (*models.StockItem, error) {
	return inventory.ApplyDelta(s.db, id, delta)
}

func (s *GormStore) LoadConfiguration() (*Configuration, error) {
	var row models.BasketConfiguration
	if err := s.db.First(&row).Error; err != nil {
		return nil, fmt.Errorf("configuração da cesta não encontrada: %w", err)
	}

	cfg := Configuration{Name: row.Name, Lines: []RecipeLine{}}
	if err := json.Unmarshal([]byte(row.Items), &cfg.Lines); err != nil {
		return nil, fmt.Errorf("receita corrompida no banco: %w", err)
	}
	return &cfg, nil
}

// SaveConfiguration sobrescreve o registro único — não há histórico de receitas.
func (s *GormStore) SaveConfiguration(cfg *Configuration) error {
	items, err := json.Marshal(cfg.Lines)
	if err != nil {
		return err
	}

	var row models.BasketConfiguration
	if err := s.db.First(&row).Error; err != nil {
		return fmt.Errorf("configuração da cesta não encontrada: %w", err)
	}

	row.Name = cfg.Name
	row.Items = string(items)
	return s.db.Save(&row).Error
}

func (s *GormStore) AssembledCount() (int64, error) {
	var counter models.AssemblyCounter
	if err := s.db.First(&counter).Error; err != nil {
		return 0, err
	}
	return counter.Count, nil
}

// SetAssembledCount - sobrescrita manual pelo admin (fora da montagem)
func (s *GormStore) SetAssembledCount(n int64) error {
	if n < 0 {
		return fmt.Errorf("%w: contador não pode ser negativo", inventory.ErrInvalidQuantity)
	}
	var counter models.AssemblyCounter
	if err := s.db.First(&counter).Error; err != nil {
		return err
	}
	counter.Count = n
	return s.db.Save(&counter).Error
}

func (s *GormStore) ApplyAssembly(needs []Need, n int, performedBy string) (*AssemblyResult, error) {
	ids := make([]uint, 0, len(needs))
	for _, need := range needs {
		ids = append(ids, need.StockItemID)
	}

	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	// Trava as linhas afetadas: a checagem e o decremento acontecem contra o
	// mesmo saldo, uma montagem concorrente espera a vez
	var items []models.StockItem
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id IN ?", ids).Find(&items).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	byID := make(map[uint]*models.StockItem, len(items))
	for i := range items {
		byID[items[i].ID] = &items[i]
	}

	if shortfalls := verifyNeeds(byID, needs); len(shortfalls) > 0 {
		tx.Rollback()
		return nil, &inventory.InsufficientStockError{Shortfalls: shortfalls}
	}

	// Decrementos pontuais, item a item — nunca regrava a coleção inteira
	for _, need := range needs {
		res := tx.Model(&models.StockItem{}).
			Where("id = ? AND quantity >= ?", need.StockItemID, need.Quantity).
			Update("quantity", gorm.Expr("quantity - ?", need.Quantity))
		if res.Error != nil {
			tx.Rollback()
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			// Com as linhas travadas isso não deveria acontecer
			tx.Rollback()
			return nil, fmt.Errorf("decremento do item %d não aplicado", need.StockItemID)
		}
	}

	var counter models.AssemblyCounter
	if err := tx.First(&counter).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	counter.Count += int64(n)
	if err := tx.Save(&counter).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	record := models.AssemblyRecord{
		Reference:   uuid.NewString(),
		Quantity:    n,
		PerformedBy: performedBy,
	}
	if err := tx.Create(&record).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	var updated []models.StockItem
	if err := tx.Where("id IN ?", ids).Order("name asc").Find(&updated).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return &AssemblyResult{
		Reference:    record.Reference,
		NewCount:     counter.Count,
		UpdatedItems: updated,
	}, nil
}
