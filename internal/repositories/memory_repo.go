package repositories

import (
	"context"
	"sync"

	"github.com/Roland778ad/devops-capstone-project/internal/models"
)

// MemoryAccountRepository is an in-memory AccountRepository used for tests
// and local development without a database.
type MemoryAccountRepository struct {
	mu       sync.Mutex
	accounts map[int64]*models.Account
	nextID   int64
}

func NewMemoryAccountRepository() *MemoryAccountRepository {
	return &MemoryAccountRepository{
		accounts: make(map[int64]*models.Account),
		nextID:   1,
	}
}

func (r *MemoryAccountRepository) Create(ctx context.Context, account *models.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	account.ID = r.nextID
	r.nextID++

	stored := *account
	r.accounts[account.ID] = &stored
	return nil
}

func (r *MemoryAccountRepository) GetByID(ctx context.Context, id int64) (*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.accounts[id]
	if !ok {
		return nil, ErrNotFound
	}

	account := *stored
	return &account, nil
}

func (r *MemoryAccountRepository) List(ctx context.Context) ([]*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	accounts := make([]*models.Account, 0, len(r.accounts))
	for _, stored := range r.accounts {
		account := *stored
		accounts = append(accounts, &account)
	}
	return accounts, nil
}

func (r *MemoryAccountRepository) Update(ctx context.Context, account *models.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.accounts[account.ID]; !ok {
		return ErrNotFound
	}

	stored := *account
	r.accounts[account.ID] = &stored
	return nil
}

func (r *MemoryAccountRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.accounts[id]; !ok {
		return ErrNotFound
	}

	delete(r.accounts, id)
	return nil
}
