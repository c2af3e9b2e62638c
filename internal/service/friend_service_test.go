package service

import (
	"context"
	"testing"

	"connectrpc.com/connect"

	"github.com/mmynk/tabsplit/internal/apperr"
	"github.com/mmynk/tabsplit/pkg/api"
)

func listFriends(t *testing.T, env *testEnv, userID string) map[string]string {
	t.Helper()
	resp, err := env.friends(userID).ListFriends(context.Background(), connect.NewRequest(&api.ListFriendsRequest{}))
	if err != nil {
		t.Fatalf("ListFriends failed: %v", err)
	}
	out := make(map[string]string, len(resp.Msg.Friends))
	for _, f := range resp.Msg.Friends {
		out[f.UserID] = f.Name
	}
	return out
}

func TestAddFriend(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()

	alice := env.createUser(t, "Alice", "alice@example.com")
	bob := env.createUser(t, "Bob", "bob@example.com")
	carol := env.createUser(t, "Carol", "carol@example.com")
	client := env.friends(alice.ID)

	resp, err := client.AddFriend(ctx, connect.NewRequest(&api.AddFriendRequest{FriendEmail: "  BOB@example.com"}))
	if err != nil {
		t.Fatalf("AddFriend failed: %v", err)
	}
	if resp.Msg.Friend.UserID != bob.ID || resp.Msg.Friend.Name != "Bob" {
		t.Errorf("unexpected friend: %+v", resp.Msg.Friend)
	}

	if got := listFriends(t, env, alice.ID); got[bob.ID] != "Bob" {
		t.Errorf("expected alice -> Bob, got %v", got)
	}
	if got := listFriends(t, env, bob.ID); got[alice.ID] != "Alice" {
		t.Errorf("expected reverse link bob -> Alice, got %v", got)
	}

	if _, err := client.AddFriend(ctx, connect.NewRequest(&api.AddFriendRequest{FriendID: carol.ID})); err != nil {
		t.Fatalf("AddFriend by ID failed: %v", err)
	}

	tests := []struct {
		name string
		req  *api.AddFriendRequest
	}{
		{"self by email", &api.AddFriendRequest{FriendEmail: "alice@example.com"}},
		{"self by ID", &api.AddFriendRequest{FriendID: alice.ID}},
		{"duplicate", &api.AddFriendRequest{FriendID: bob.ID}},
		{"unknown email", &api.AddFriendRequest{FriendEmail: "nobody@example.com"}},
		{"unknown ID", &api.AddFriendRequest{FriendID: "no-such-user"}},
		{"neither", &api.AddFriendRequest{}},
		{"both", &api.AddFriendRequest{FriendID: bob.ID, FriendEmail: "bob@example.com"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := client.AddFriend(ctx, connect.NewRequest(tt.req))
			assertErrorKind(t, err, connect.CodeInvalidArgument, apperr.KindBadRequest)
		})
	}
}

func TestAddFriend_ReverseLinkExists(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()

	alice := env.createUser(t, "Alice", "alice@example.com")
	bob := env.createUser(t, "Bob", "bob@example.com")

	if _, err := env.friends(alice.ID).AddFriend(ctx, connect.NewRequest(&api.AddFriendRequest{FriendID: bob.ID})); err != nil {
		t.Fatalf("AddFriend failed: %v", err)
	}
	if _, err := env.friends(alice.ID).RemoveFriend(ctx, connect.NewRequest(&api.RemoveFriendRequest{FriendID: bob.ID})); err != nil {
		t.Fatalf("RemoveFriend failed: %v", err)
	}

	// Bob still has alice, so only the missing direction is restored.
	if _, err := env.friends(alice.ID).AddFriend(ctx, connect.NewRequest(&api.AddFriendRequest{FriendID: bob.ID})); err != nil {
		t.Fatalf("re-adding failed: %v", err)
	}
	if got := listFriends(t, env, alice.ID); len(got) != 1 {
		t.Errorf("expected one friend for alice, got %v", got)
	}
	if got := listFriends(t, env, bob.ID); len(got) != 1 {
		t.Errorf("expected one friend for bob, got %v", got)
	}
}

func TestRemoveFriend(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()

	alice := env.createUser(t, "Alice", "alice@example.com")
	bob := env.createUser(t, "Bob", "bob@example.com")

	if _, err := env.friends(alice.ID).AddFriend(ctx, connect.NewRequest(&api.AddFriendRequest{FriendID: bob.ID})); err != nil {
		t.Fatalf("AddFriend failed: %v", err)
	}

	if _, err := env.friends(alice.ID).RemoveFriend(ctx, connect.NewRequest(&api.RemoveFriendRequest{FriendID: bob.ID})); err != nil {
		t.Fatalf("RemoveFriend failed: %v", err)
	}

	if got := listFriends(t, env, alice.ID); len(got) != 0 {
		t.Errorf("expected alice to have no friends, got %v", got)
	}
	if got := listFriends(t, env, bob.ID); got[alice.ID] != "Alice" {
		t.Errorf("expected bob -> Alice to survive, got %v", got)
	}

	_, err := env.friends(alice.ID).RemoveFriend(ctx, connect.NewRequest(&api.RemoveFriendRequest{FriendID: bob.ID}))
	assertErrorKind(t, err, connect.CodeNotFound, apperr.KindNotFound)

	_, err = env.friends(alice.ID).RemoveFriend(ctx, connect.NewRequest(&api.RemoveFriendRequest{}))
	assertErrorKind(t, err, connect.CodeInvalidArgument, apperr.KindBadRequest)
}
