package service

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/collabhub/identity-service/internal/core/domain"
	"github.com/collabhub/identity-service/internal/infrastructure/db/memory"
)

func TestCollection_ConcurrentUpdatesDoNotLoseWrites(t *testing.T) {
	col := NewCollection(memory.NewUserStore())
	ctx := context.Background()

	const n = 32
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			err := col.Update(ctx, func(users []domain.User) ([]domain.User, error) {
				return append(users, domain.User{ID: fmt.Sprintf("u%d", i)}), nil
			})
			if err != nil {
				t.Errorf("update %d failed: %v", i, err)
			}
		}(i)
	}
	wg.Wait()

	err := col.View(ctx, func(users []domain.User) error {
		if len(users) != n {
			return fmt.Errorf("expected %d records, got %d", n, len(users))
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestCollection_UpdateNilSliceSkipsSave(t *testing.T) {
	store := &countingStore{inner: memory.NewUserStore()}
	col := NewCollection(store)

	err := col.Update(context.Background(), func(users []domain.User) ([]domain.User, error) {
		return nil, nil
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if store.saves != 0 {
		t.Fatalf("read-only update must not save, saves=%d", store.saves)
	}
}

func TestCollection_UpdateErrorSkipsSave(t *testing.T) {
	store := &countingStore{inner: memory.NewUserStore()}
	col := NewCollection(store)

	wantErr := fmt.Errorf("boom")
	err := col.Update(context.Background(), func(users []domain.User) ([]domain.User, error) {
		return append(users, domain.User{ID: "x"}), wantErr
	})
	if err != wantErr {
		t.Fatalf("expected fn error, got %v", err)
	}
	if store.saves != 0 {
		t.Fatalf("failed update must not save, saves=%d", store.saves)
	}
}
