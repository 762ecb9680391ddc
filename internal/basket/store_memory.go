package basket

import (
	"fmt"
	"sync"

	"asa-backend/internal/inventory"
	"asa-backend/internal/models"

	"github.com/google/uuid"
)

// MemoryStore implementa Store em memória, para os testes do núcleo.
// As operações seguem exatamente a mesma semântica do GormStore.
type MemoryStore struct {
	mu      sync.Mutex
	items   map[uint]*models.StockItem
	cfg     Configuration
	count   int64
	records []models.AssemblyRecord
	nextID  uint
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		items: make(map[uint]*models.StockItem),
		cfg:   Configuration{Name: "Cesta Básica", Lines: []RecipeLine{}},
	}
}

// SeedItem insere um item e devolve o ID gerado.
func (s *MemoryStore) SeedItem(item models.StockItem) uint {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	item.ID = s.nextID
	s.items[item.ID] = &item
	return item.ID
}

// RemoveItem simula a remoção manual de um item do estoque.
func (s *MemoryStore) RemoveItem(id uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, id)
}

func (s *MemoryStore) ListStockItems() ([]models.StockItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]models.StockItem, 0, len(s.items))
	for _, item := range s.items {
		items = append(items, *item)
	}
	return items, nil
}

func (s *MemoryStore) GetStockItem(id uint) (*models.StockItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[id]
	if !ok {
		return nil, inventory.ErrItemNotFound
	}
	copied := *item
	return &copied, nil
}

func (s *MemoryStore) AdjustStockQuantity(id uint, delta float64) (*models.StockItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[id]
	if !ok {
		return nil, inventory.ErrItemNotFound
	}
	if item.Quantity+delta < 0 {
		return nil, &inventory.InsufficientStockError{Shortfalls: []inventory.Shortfall{{
			StockItemID: item.ID,
			Name:        item.Name,
			Required:    -delta,
			Available:   item.Quantity,
		}}}
	}
	item.Quantity += delta
	copied := *item
	return &copied, nil
}

func (s *MemoryStore) LoadConfiguration() (*Configuration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := Configuration{Name: s.cfg.Name, Lines: append([]RecipeLine{}, s.cfg.Lines...)}
	return &copied, nil
}

func (s *MemoryStore) SaveConfiguration(cfg *Configuration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg = Configuration{Name: cfg.Name, Lines: append([]RecipeLine{}, cfg.Lines...)}
	return nil
}

func (s *MemoryStore) AssembledCount() (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.count, nil
}

func (s *MemoryStore) SetAssembledCount(n int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n < 0 {
		return fmt.Errorf("%w: contador não pode ser negativo", inventory.ErrInvalidQuantity)
	}
	s.count = n
	return nil
}

func (s *MemoryStore) ApplyAssembly(needs []Need, n int, performedBy string) (*AssemblyResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if shortfalls := verifyNeeds(s.items, needs); len(shortfalls) > 0 {
		return nil, &inventory.InsufficientStockError{Shortfalls: shortfalls}
	}

	updated := make([]models.StockItem, 0, len(needs))
	for _, need := range needs {
		item := s.items[need.StockItemID]
		item.Quantity -= need.Quantity
		updated = append(updated, *item)
	}

	s.count += int64(n)
	record := models.AssemblyRecord{
		Reference:   uuid.NewString(),
		Quantity:    n,
		PerformedBy: performedBy,
	}
	s.records = append(s.records, record)

	return &AssemblyResult{
		Reference:    record.Reference,
		NewCount:     s.count,
		UpdatedItems: updated,
	}, nil
}
