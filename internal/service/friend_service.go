package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/tabsplit/internal/apperr"
	"github.com/mmynk/tabsplit/internal/auth"
	"github.com/mmynk/tabsplit/internal/metrics"
	"github.com/mmynk/tabsplit/internal/models"
	"github.com/mmynk/tabsplit/internal/storage"
	"github.com/mmynk/tabsplit/pkg/api"
	"github.com/mmynk/tabsplit/pkg/api/apiconnect"
)

// FriendService implements the Connect FriendService.
type FriendService struct {
	apiconnect.UnimplementedFriendServiceHandler
	store   storage.Store
	metrics *metrics.Collector
}

// NewFriendService creates a new FriendService with the given storage backend.
func NewFriendService(store storage.Store, collector *metrics.Collector) *FriendService {
	return &FriendService{store: store, metrics: collector}
}

// AddFriend links the caller and another user in both directions.
func (s *FriendService) AddFriend(ctx context.Context, req *connect.Request[api.AddFriendRequest]) (*connect.Response[api.AddFriendResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	friend, err := s.lookupFriend(ctx, req.Msg)
	if err != nil {
		return nil, toConnectError("AddFriend", err)
	}
	if friend.ID == userID {
		return nil, toConnectError("AddFriend", apperr.BadRequest("you cannot add yourself as a friend"))
	}

	owner, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return nil, toConnectError("AddFriend", err)
	}
	if owner == nil {
		return nil, toConnectError("AddFriend", apperr.NotFound("user not found: %s", userID))
	}

	if err := s.store.AddFriendship(ctx, owner, friend); err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			err = apperr.BadRequest("%s is already your friend", friend.Name)
		}
		return nil, toConnectError("AddFriend", err)
	}

	s.metrics.FriendsAdded.Inc()
	slog.Info("Friend added", "user_id", userID, "friend_id", friend.ID)

	return connect.NewResponse(&api.AddFriendResponse{
		Friend: friendView(&models.FriendLink{
			OwnerID:    owner.ID,
			FriendID:   friend.ID,
			FriendName: friend.Name,
			CreatedAt:  time.Now().Unix(),
		}),
	}), nil
}

// lookupFriend resolves exactly one of friendId or friendEmail to a user.
func (s *FriendService) lookupFriend(ctx context.Context, msg *api.AddFriendRequest) (*models.User, error) {
	byID, byEmail := msg.FriendID != "", msg.FriendEmail != ""
	if byID == byEmail {
		return nil, apperr.BadRequest("provide exactly one of friendId or friendEmail")
	}

	var (
		user *models.User
		err  error
	)
	if byID {
		user, err = s.store.GetUserByID(ctx, msg.FriendID)
	} else {
		user, err = s.store.GetUserByEmail(ctx, auth.NormalizeEmail(msg.FriendEmail))
	}
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.BadRequest("no user found to add as a friend")
	}
	return user, nil
}

// RemoveFriend deletes the caller's link to a friend. The friend's link back
// to the caller is kept.
func (s *FriendService) RemoveFriend(ctx context.Context, req *connect.Request[api.RemoveFriendRequest]) (*connect.Response[api.RemoveFriendResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	if req.Msg.FriendID == "" {
		return nil, toConnectError("RemoveFriend", apperr.BadRequest("friendId is required"))
	}

	if err := s.store.RemoveFriendLink(ctx, userID, req.Msg.FriendID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			err = apperr.NotFound("%s is not in your friend list", req.Msg.FriendID)
		}
		return nil, toConnectError("RemoveFriend", err)
	}

	slog.Info("Friend removed", "user_id", userID, "friend_id", req.Msg.FriendID)
	return connect.NewResponse(&api.RemoveFriendResponse{}), nil
}

// ListFriends returns the caller's friends ordered by name.
func (s *FriendService) ListFriends(ctx context.Context, _ *connect.Request[api.ListFriendsRequest]) (*connect.Response[api.ListFriendsResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	links, err := s.store.ListFriends(ctx, userID)
	if err != nil {
		return nil, toConnectError("ListFriends", err)
	}

	friends := make([]*api.Friend, len(links))
	for i, link := range links {
		friends[i] = friendView(link)
	}
	return connect.NewResponse(&api.ListFriendsResponse{Friends: friends}), nil
}
