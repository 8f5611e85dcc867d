package service

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/billing-api/internal/domain/billing"
	"github.com/sangkips/billing-api/pkg/apperror"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionStore_CreateWithDelete(t *testing.T) {
	store := NewSessionStore(0)
	defer store.Close()

	sess := store.Create()
	assert.Equal(t, 1, store.Len())

	err := store.With(sess.ID, func(s *billing.Session) error {
		s.SetDiscount(decimal.NewFromInt(5))
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "5", sess.Discount.String())

	assert.True(t, store.Delete(sess.ID))
	assert.False(t, store.Delete(sess.ID))

	err = store.With(sess.ID, func(*billing.Session) error { return nil })
	appErr := apperror.GetAppError(err)
	assert.Equal(t, 404, appErr.Code)
}

func TestSessionStore_WithReturnsCallbackError(t *testing.T) {
	store := NewSessionStore(0)
	defer store.Close()
	sess := store.Create()

	boom := errors.New("boom")
	assert.ErrorIs(t, store.With(sess.ID, func(*billing.Session) error { return boom }), boom)
}

func TestSessionStore_SerializesAccess(t *testing.T) {
	store := NewSessionStore(0)
	defer store.Close()
	sess := store.Create()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = store.With(sess.ID, func(s *billing.Session) error {
				s.SetDiscount(s.Discount.Add(decimal.NewFromInt(1)))
				return nil
			})
		}()
	}
	wg.Wait()

	assert.Equal(t, "50", sess.Discount.String())
}

func TestSessionStore_EvictIdle(t *testing.T) {
	store := NewSessionStore(time.Hour)
	defer store.Close()

	old := store.Create()
	fresh := store.Create()
	store.sessions[old.ID].lastSeen = time.Now().Add(-2 * time.Hour)

	assert.Equal(t, 1, store.evictIdle(time.Now()))
	assert.Equal(t, 1, store.Len())
	assert.NoError(t, store.With(fresh.ID, func(*billing.Session) error { return nil }))
	assert.Error(t, store.With(uuid.New(), func(*billing.Session) error { return nil }))
}
