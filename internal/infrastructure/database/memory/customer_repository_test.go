package memory

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"origination-engine/internal/domain/customer"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func TestCustomerRepositoryLookups(t *testing.T) {
	repo := NewCustomerRepository(SeedCustomers(), testLogger())

	t.Run("should find by ID", func(t *testing.T) {
		profile, err := repo.FindByID(context.Background(), "C001")
		assert.NoError(t, err)
		assert.Equal(t, "Rajesh Kumar", profile.Name)
	})

	t.Run("should miss unknown IDs", func(t *testing.T) {
		_, err := repo.FindByID(context.Background(), "C999")
		assert.ErrorIs(t, err, customer.ErrNotFound)
	})

	t.Run("should find by phone regardless of prefix", func(t *testing.T) {
		withPrefix, err := repo.FindByPhone(context.Background(), "+919876543210")
		assert.NoError(t, err)
		bare, err := repo.FindByPhone(context.Background(), "9876543210")
		assert.NoError(t, err)
		assert.Equal(t, withPrefix.CustomerID, bare.CustomerID)
	})

	t.Run("should list in insertion order", func(t *testing.T) {
		profiles, err := repo.FindAll(context.Background())
		assert.NoError(t, err)
		assert.Len(t, profiles, 3)
		assert.Equal(t, "C001", profiles[0].CustomerID)
		assert.Equal(t, "C003", profiles[2].CustomerID)
	})

	t.Run("should return clones, not shared state", func(t *testing.T) {
		profile, err := repo.FindByID(context.Background(), "C001")
		assert.NoError(t, err)
		profile.Name = "Mutated"

		again, err := repo.FindByID(context.Background(), "C001")
		assert.NoError(t, err)
		assert.Equal(t, "Rajesh Kumar", again.Name)
	})
}

func TestCustomerRepositoryFindOrCreate(t *testing.T) {
	t.Run("should return the existing record for a known phone", func(t *testing.T) {
		repo := NewCustomerRepository(SeedCustomers(), testLogger())

		profile, created, err := repo.FindOrCreate(context.Background(), &customer.Profile{Phone: "+919876543210"})
		assert.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, "C001", profile.CustomerID)
	})

	t.Run("should assign sequential IDs to new records", func(t *testing.T) {
		repo := NewCustomerRepository(SeedCustomers(), testLogger())

		profile, created, err := repo.FindOrCreate(context.Background(), &customer.Profile{Phone: "9000000001"})
		assert.NoError(t, err)
		assert.True(t, created)
		assert.Equal(t, "C004", profile.CustomerID)
	})

	t.Run("should create at most one record under concurrent inquiries", func(t *testing.T) {
		repo := NewCustomerRepository(nil, testLogger())

		const workers = 50
		var wg sync.WaitGroup
		createdCount := make(chan bool, workers)

		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, created, err := repo.FindOrCreate(context.Background(), &customer.Profile{
					Phone: "+919111222333",
					Name:  "Concurrent Caller",
				})
				assert.NoError(t, err)
				createdCount <- created
			}()
		}
		wg.Wait()
		close(createdCount)

		creations := 0
		for created := range createdCount {
			if created {
				creations++
			}
		}
		assert.Equal(t, 1, creations)

		profiles, err := repo.FindAll(context.Background())
		assert.NoError(t, err)
		assert.Len(t, profiles, 1)
	})

	t.Run("should keep IDs unique across mixed phone numbers", func(t *testing.T) {
		repo := NewCustomerRepository(nil, testLogger())

		const workers = 20
		var wg sync.WaitGroup
		for i := 0; i < workers; i++ {
			phone := fmt.Sprintf("90000000%02d", i%5)
			wg.Add(1)
			go func(p string) {
				defer wg.Done()
				_, _, err := repo.FindOrCreate(context.Background(), &customer.Profile{Phone: p})
				assert.NoError(t, err)
			}(phone)
		}
		wg.Wait()

		profiles, err := repo.FindAll(context.Background())
		assert.NoError(t, err)
		assert.Len(t, profiles, 5)

		seen := map[string]bool{}
		for _, p := range profiles {
			assert.False(t, seen[p.CustomerID])
			seen[p.CustomerID] = true
		}
	})
}

func TestCustomerRepositoryUpsert(t *testing.T) {
	repo := NewCustomerRepository(SeedCustomers(), testLogger())

	t.Run("should replace an existing record", func(t *testing.T) {
		profile, err := repo.FindByID(context.Background(), "C001")
		assert.NoError(t, err)

		profile.CreditScore = 790
		assert.NoError(t, repo.Upsert(context.Background(), profile))

		updated, err := repo.FindByID(context.Background(), "C001")
		assert.NoError(t, err)
		assert.Equal(t, 790, updated.CreditScore)
	})

	t.Run("should insert an unseen record", func(t *testing.T) {
		assert.NoError(t, repo.Upsert(context.Background(), &customer.Profile{
			CustomerID: "C099",
			Phone:      "+919555666777",
		}))

		inserted, err := repo.FindByID(context.Background(), "C099")
		assert.NoError(t, err)
		assert.Equal(t, "9555666777", inserted.Phone)
	})
}
