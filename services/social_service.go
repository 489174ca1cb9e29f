// File: /services/social_service.go
package services

import (
	"fmt"

	"inkwell-api/models"
	"inkwell-api/repositories"
)

// SocialGraphService owns the follow relationship. The following and
// followers sets are two independently stored sets kept as exact inverses of
// each other, and every mutation goes through here so the invariant
// (A in B.followers iff B in A.following) survives any call sequence.
//
// The two writes in Follow/Unfollow are separate store saves. The store only
// guarantees per-document atomicity, so a concurrent reader can observe the
// pair half-applied for a moment. That window is accepted for this domain.
type SocialGraphService struct {
	users repositories.UserStore
}

func NewSocialGraphService(users repositories.UserStore) *SocialGraphService {
	return &SocialGraphService{users: users}
}

// Follow makes actorID a follower of targetID. Following someone twice is a
// no-op that still succeeds.
func (s *SocialGraphService) Follow(actorID, targetID string) error {
	if actorID == targetID {
		return fmt.Errorf("cannot follow yourself: %w", models.ErrInvalidOperation)
	}

	actor, err := s.users.Get(actorID)
	if err != nil {
		return err
	}
	target, err := s.users.Get(targetID)
	if err != nil {
		return err
	}

	if actor.Following.Contains(targetID) && target.Followers.Contains(actorID) {
		return nil
	}

	actor.Following = actor.Following.Add(targetID)
	if err := s.users.Save(actor); err != nil {
		return err
	}

	target.Followers = target.Followers.Add(actorID)
	return s.users.Save(target)
}

// Unfollow removes the relationship in both directions. Unfollowing a user
// that was never followed succeeds silently.
func (s *SocialGraphService) Unfollow(actorID, targetID string) error {
	actor, err := s.users.Get(actorID)
	if err != nil {
		return err
	}
	target, err := s.users.Get(targetID)
	if err != nil {
		return err
	}

	if !actor.Following.Contains(targetID) && !target.Followers.Contains(actorID) {
		return nil
	}

	actor.Following = actor.Following.Remove(targetID)
	if err := s.users.Save(actor); err != nil {
		return err
	}

	target.Followers = target.Followers.Remove(actorID)
	return s.users.Save(target)
}

// Following returns the users userID follows, in follow order. Ids pointing
// at since-deleted accounts are filtered out.
func (s *SocialGraphService) Following(userID string) ([]models.User, error) {
	user, err := s.users.Get(userID)
	if err != nil {
		return nil, err
	}
	return s.resolveInOrder(user.Following)
}

// Followers returns the users following userID, in follow order.
func (s *SocialGraphService) Followers(userID string) ([]models.User, error) {
	user, err := s.users.Get(userID)
	if err != nil {
		return nil, err
	}
	return s.resolveInOrder(user.Followers)
}

func (s *SocialGraphService) resolveInOrder(ids models.StringSet) ([]models.User, error) {
	found, err := s.users.FindByIDs(ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]models.User, len(found))
	for _, u := range found {
		byID[u.ID] = u
	}

	users := make([]models.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := byID[id]; ok {
			users = append(users, u)
		}
	}
	return users, nil
}
