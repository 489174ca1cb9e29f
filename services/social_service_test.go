// File: /services/social_service_test.go
package services

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkwell-api/models"
	"inkwell-api/repositories"
)

func newTestUser(t *testing.T, store *repositories.MemoryUserStore, id, name string) {
	t.Helper()
	err := store.Create(&models.User{
		ID:            id,
		Name:          name,
		Email:         id + "@example.com",
		Password:      "hash",
		EmailVerified: true,
	})
	require.NoError(t, err)
}

// requireGraphSymmetry asserts that for every pair of users, A follows B
// exactly when B has A as a follower.
func requireGraphSymmetry(t *testing.T, store *repositories.MemoryUserStore, ids []string) {
	t.Helper()
	users := make(map[string]*models.User, len(ids))
	for _, id := range ids {
		u, err := store.Get(id)
		require.NoError(t, err)
		users[id] = u
	}
	for _, a := range ids {
		for _, b := range ids {
			if a == b {
				continue
			}
			following := users[a].Following.Contains(b)
			followed := users[b].Followers.Contains(a)
			require.Equal(t, following, followed,
				"asymmetric state between %s and %s", a, b)
		}
	}
}

func TestFollowCreatesBothSides(t *testing.T) {
	store := repositories.NewMemoryUserStore()
	newTestUser(t, store, "alice", "Alice")
	newTestUser(t, store, "bob", "Bob")
	svc := NewSocialGraphService(store)

	require.NoError(t, svc.Follow("alice", "bob"))

	alice, err := store.Get("alice")
	require.NoError(t, err)
	bob, err := store.Get("bob")
	require.NoError(t, err)

	assert.True(t, alice.Following.Contains("bob"))
	assert.True(t, bob.Followers.Contains("alice"))
	assert.False(t, bob.Following.Contains("alice"))
	assert.False(t, alice.Followers.Contains("bob"))
}

func TestFollowSelfRejected(t *testing.T) {
	store := repositories.NewMemoryUserStore()
	newTestUser(t, store, "alice", "Alice")
	svc := NewSocialGraphService(store)

	err := svc.Follow("alice", "alice")
	require.ErrorIs(t, err, models.ErrInvalidOperation)
}

func TestFollowMissingUser(t *testing.T) {
	store := repositories.NewMemoryUserStore()
	newTestUser(t, store, "alice", "Alice")
	svc := NewSocialGraphService(store)

	require.ErrorIs(t, svc.Follow("alice", "ghost"), models.ErrNotFound)
	require.ErrorIs(t, svc.Follow("ghost", "alice"), models.ErrNotFound)

	alice, err := store.Get("alice")
	require.NoError(t, err)
	assert.Empty(t, alice.Following)
}

func TestFollowIdempotent(t *testing.T) {
	store := repositories.NewMemoryUserStore()
	newTestUser(t, store, "alice", "Alice")
	newTestUser(t, store, "bob", "Bob")
	svc := NewSocialGraphService(store)

	require.NoError(t, svc.Follow("alice", "bob"))
	require.NoError(t, svc.Follow("alice", "bob"))

	alice, err := store.Get("alice")
	require.NoError(t, err)
	bob, err := store.Get("bob")
	require.NoError(t, err)

	assert.Len(t, alice.Following, 1)
	assert.Len(t, bob.Followers, 1)
}

func TestUnfollowIdempotent(t *testing.T) {
	store := repositories.NewMemoryUserStore()
	newTestUser(t, store, "alice", "Alice")
	newTestUser(t, store, "bob", "Bob")
	svc := NewSocialGraphService(store)

	// Unfollowing a user that was never followed succeeds silently.
	require.NoError(t, svc.Unfollow("alice", "bob"))

	require.NoError(t, svc.Follow("alice", "bob"))
	require.NoError(t, svc.Unfollow("alice", "bob"))
	require.NoError(t, svc.Unfollow("alice", "bob"))

	alice, err := store.Get("alice")
	require.NoError(t, err)
	bob, err := store.Get("bob")
	require.NoError(t, err)

	assert.Empty(t, alice.Following)
	assert.Empty(t, bob.Followers)
}

func TestFollowUnfollowRandomInterleavings(t *testing.T) {
	store := repositories.NewMemoryUserStore()
	ids := make([]string, 6)
	for i := range ids {
		ids[i] = fmt.Sprintf("user-%d", i)
		newTestUser(t, store, ids[i], fmt.Sprintf("User %d", i))
	}
	svc := NewSocialGraphService(store)

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 500; i++ {
		actor := ids[rng.Intn(len(ids))]
		target := ids[rng.Intn(len(ids))]

		if actor == target {
			require.ErrorIs(t, svc.Follow(actor, target), models.ErrInvalidOperation)
		} else if rng.Intn(2) == 0 {
			require.NoError(t, svc.Follow(actor, target))
		} else {
			require.NoError(t, svc.Unfollow(actor, target))
		}

		requireGraphSymmetry(t, store, ids)
	}
}

func TestFollowingOrderAndFiltering(t *testing.T) {
	store := repositories.NewMemoryUserStore()
	newTestUser(t, store, "alice", "Alice")
	newTestUser(t, store, "bob", "Bob")
	newTestUser(t, store, "carol", "Carol")
	newTestUser(t, store, "dave", "Dave")
	svc := NewSocialGraphService(store)

	require.NoError(t, svc.Follow("alice", "carol"))
	require.NoError(t, svc.Follow("alice", "bob"))
	require.NoError(t, svc.Follow("alice", "dave"))

	following, err := svc.Following("alice")
	require.NoError(t, err)
	require.Len(t, following, 3)
	assert.Equal(t, "carol", following[0].ID)
	assert.Equal(t, "bob", following[1].ID)
	assert.Equal(t, "dave", following[2].ID)

	// A deleted account disappears from the list without breaking it.
	require.NoError(t, store.Delete("bob"))
	following, err = svc.Following("alice")
	require.NoError(t, err)
	require.Len(t, following, 2)
	assert.Equal(t, "carol", following[0].ID)
	assert.Equal(t, "dave", following[1].ID)
}
