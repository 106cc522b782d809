package moneybook

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/hyoniii710/gimyo-sns/internal/store"
	"github.com/shopspring/decimal"
)

// Service owns income/expense transactions and their per-category
// aggregation.
type Service struct {
	store store.RecordStore
	mu    sync.Mutex
}

func NewService(recordStore store.RecordStore) *Service {
	return &Service{store: recordStore}
}

// List returns all transactions in stored order.
func (s *Service) List(ctx context.Context) ([]Transaction, error) {
	return store.Load[Transaction](s.store, store.NamespaceAccounts)
}

// Add validates and appends a transaction, persisting the whole array.
func (s *Service) Add(ctx context.Context, tx Transaction) (Transaction, error) {
	if err := validate(tx); err != nil {
		return Transaction{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	txs, err := store.Load[Transaction](s.store, store.NamespaceAccounts)
	if err != nil {
		return Transaction{}, fmt.Errorf("failed to load transactions: %w", err)
	}

	tx.ID = uuid.NewString()
	txs = append(txs, tx)

	if err := store.Save(s.store, store.NamespaceAccounts, txs); err != nil {
		return Transaction{}, err
	}
	return tx, nil
}

// Update replaces every field of the matching transaction.
func (s *Service) Update(ctx context.Context, tx Transaction) (Transaction, error) {
	if err := validate(tx); err != nil {
		return Transaction{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	txs, err := store.Load[Transaction](s.store, store.NamespaceAccounts)
	if err != nil {
		return Transaction{}, fmt.Errorf("failed to load transactions: %w", err)
	}

	idx := -1
	for i, t := range txs {
		if t.ID == tx.ID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return Transaction{}, ErrTransactionNotFound
	}
	txs[idx] = tx

	if err := store.Save(s.store, store.NamespaceAccounts, txs); err != nil {
		return Transaction{}, err
	}
	return tx, nil
}

// Delete removes the matching transaction.
func (s *Service) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	txs, err := store.Load[Transaction](s.store, store.NamespaceAccounts)
	if err != nil {
		return fmt.Errorf("failed to load transactions: %w", err)
	}

	idx := -1
	for i, t := range txs {
		if t.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return ErrTransactionNotFound
	}
	txs = append(txs[:idx], txs[idx+1:]...)

	return store.Save(s.store, store.NamespaceAccounts, txs)
}

// Summary groups transactions of the given type by category and sums the
// amounts. Categories appear in order of first appearance; amounts are never
// normalized or rounded.
func (s *Service) Summary(ctx context.Context, txType TransactionType) ([]CategoryTotal, error) {
	if !txType.valid() {
		return nil, ErrInvalidType
	}

	txs, err := store.Load[Transaction](s.store, store.NamespaceAccounts)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}

	totals := make([]CategoryTotal, 0)
	index := make(map[string]int)
	for _, tx := range txs {
		if tx.Type != txType {
			continue
		}
		i, ok := index[tx.Category]
		if !ok {
			i = len(totals)
			index[tx.Category] = i
			totals = append(totals, CategoryTotal{Name: tx.Category, Value: decimal.Zero})
		}
		totals[i].Value = totals[i].Value.Add(tx.Amount)
	}
	return totals, nil
}

// Balance returns total income minus total expense.
func (s *Service) Balance(ctx context.Context) (decimal.Decimal, error) {
	txs, err := store.Load[Transaction](s.store, store.NamespaceAccounts)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to load transactions: %w", err)
	}

	balance := decimal.Zero
	for _, tx := range txs {
		switch tx.Type {
		case TypeIncome:
			balance = balance.Add(tx.Amount)
		case TypeExpense:
			balance = balance.Sub(tx.Amount)
		}
	}
	return balance, nil
}

func validate(tx Transaction) error {
	if !tx.Type.valid() {
		return ErrInvalidType
	}
	if tx.Amount.IsNegative() {
		return ErrInvalidAmount
	}
	if !validCategory(tx.Type, tx.Category) {
		return ErrInvalidCategory
	}
	return nil
}
