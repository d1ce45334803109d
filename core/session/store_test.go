package session_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paylens/dashgate/core/session"
)

func TestMemoryStore_ReadWriteClear(t *testing.T) {
	ctx := context.Background()
	store := session.NewMemoryStore()

	_, err := store.Read(ctx, "company_session")
	assert.ErrorIs(t, err, session.ErrNotFound)

	sess := session.Session{
		CompanyID:   "c-1",
		AccessToken: "tok",
		ExpiresAt:   session.Timestamp{Time: time.Now().Add(time.Hour)},
	}
	require.NoError(t, store.Write(ctx, "company_session", sess))

	got, err := store.Read(ctx, "company_session")
	require.NoError(t, err)
	assert.Equal(t, sess.CompanyID, got.CompanyID)

	require.NoError(t, store.Clear(ctx, "company_session"))
	_, err = store.Read(ctx, "company_session")
	assert.ErrorIs(t, err, session.ErrNotFound)
}

func TestMemoryStore_ClearMissingKey(t *testing.T) {
	store := session.NewMemoryStore()
	assert.NoError(t, store.Clear(context.Background(), "never_written"))
}

func TestMemoryStore_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	store := session.NewMemoryStore()
	sess := session.Session{CompanyID: "c-1", AccessToken: "tok"}

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(3)
		go func() {
			defer wg.Done()
			_ = store.Write(ctx, "k", sess)
		}()
		go func() {
			defer wg.Done()
			_, _ = store.Read(ctx, "k")
		}()
		go func() {
			defer wg.Done()
			_ = store.Clear(ctx, "k")
		}()
	}
	wg.Wait()
}
