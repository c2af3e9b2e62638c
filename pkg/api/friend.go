package api

type Friend struct {
	UserID    string `json:"userId"`
	Name      string `json:"name"`
	CreatedAt int64  `json:"createdAt"`
}

// AddFriendRequest names the friend by ID or by email, never both.
type AddFriendRequest struct {
	FriendID    string `json:"friendId,omitempty"`
	FriendEmail string `json:"friendEmail,omitempty"`
}

type AddFriendResponse struct {
	Friend *Friend `json:"friend"`
}

type RemoveFriendRequest struct {
	FriendID string `json:"friendId"`
}

type RemoveFriendResponse struct{}

type ListFriendsRequest struct{}

type ListFriendsResponse struct {
	Friends []*Friend `json:"friends"`
}
