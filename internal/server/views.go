package server

import (
	"time"

	"helenite/internal/models"
)

// ProfileView is the API projection of a profile. Birthday is omitted when
// the owner turned show_birthday off.
type ProfileView struct {
	Username   string     `json:"username"`
	FirstName  string     `json:"first_name"`
	LastName   string     `json:"last_name"`
	FullName   string     `json:"full_name"`
	Slug       string     `json:"slug"`
	Picture    string     `json:"picture"`
	Private    bool       `json:"private"`
	Birthday   *time.Time `json:"birthday,omitempty"`
	BirthPlace string     `json:"birth_place"`
	Endpoint   string     `json:"endpoint"`
}

func newProfileView(p *models.Profile) ProfileView {
	view := ProfileView{
		Username:   p.User.Username,
		FirstName:  p.FirstName,
		LastName:   p.LastName,
		FullName:   p.FullName(),
		Slug:       p.Slug,
		Picture:    p.Picture,
		Private:    p.Private,
		BirthPlace: p.BirthPlace,
		Endpoint:   p.Endpoint(),
	}
	if p.ShowBirthday {
		birthday := p.Birthday
		view.Birthday = &birthday
	}
	return view
}

func newProfileViews(profiles []models.Profile) []ProfileView {
	views := make([]ProfileView, 0, len(profiles))
	for i := range profiles {
		views = append(views, newProfileView(&profiles[i]))
	}
	return views
}

// AuthorView is the minimal owner projection attached to posts and comments.
type AuthorView struct {
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Slug     string `json:"slug"`
	Picture  string `json:"picture"`
}

func newAuthorView(user *models.User) AuthorView {
	view := AuthorView{Username: user.Username}
	if user.Profile != nil {
		view.FullName = user.Profile.FullName()
		view.Slug = user.Profile.Slug
		view.Picture = user.Profile.Picture
	}
	return view
}

// PostView is the API projection of a post.
type PostView struct {
	Slug          string     `json:"slug"`
	Text          string     `json:"text"`
	Image         string     `json:"image,omitempty"`
	PublishedAt   time.Time  `json:"published_at"`
	LikesCount    int        `json:"likes_count"`
	CommentsCount int        `json:"comments_count"`
	Liked         bool       `json:"liked"`
	Endpoint      string     `json:"endpoint"`
	Author        AuthorView `json:"author"`
}

func newPostView(p *models.Post) PostView {
	return PostView{
		Slug:          p.Slug,
		Text:          p.Text,
		Image:         p.Image,
		PublishedAt:   p.PublishedAt,
		LikesCount:    p.LikesCount,
		CommentsCount: p.CommentsCount,
		Liked:         p.Liked,
		Endpoint:      p.Endpoint(),
		Author:        newAuthorView(&p.User),
	}
}

func newPostViews(posts []models.Post) []PostView {
	views := make([]PostView, 0, len(posts))
	for i := range posts {
		views = append(views, newPostView(&posts[i]))
	}
	return views
}

// CommentView is the API projection of a comment.
type CommentView struct {
	Text      string     `json:"text"`
	CreatedAt time.Time  `json:"created_at"`
	Author    AuthorView `json:"author"`
}

func newCommentView(cm *models.Comment) CommentView {
	return CommentView{
		Text:      cm.Text,
		CreatedAt: cm.CreatedAt,
		Author:    newAuthorView(&cm.User),
	}
}

func newCommentViews(comments []models.Comment) []CommentView {
	views := make([]CommentView, 0, len(comments))
	for i := range comments {
		views = append(views, newCommentView(&comments[i]))
	}
	return views
}

// FriendRequestView is the API projection of a pending friend request. User
// carries the counterparty: the requester on received requests, the
// recipient on sent ones.
type FriendRequestView struct {
	RequestID string     `json:"request_id"`
	CreatedAt time.Time  `json:"created_at"`
	User      AuthorView `json:"user"`
}

func newReceivedRequestViews(requests []models.FriendRequest) []FriendRequestView {
	views := make([]FriendRequestView, 0, len(requests))
	for i := range requests {
		views = append(views, FriendRequestView{
			RequestID: requests[i].RequestID,
			CreatedAt: requests[i].CreatedAt,
			User:      newAuthorView(&requests[i].Requester),
		})
	}
	return views
}

func newSentRequestViews(requests []models.FriendRequest) []FriendRequestView {
	views := make([]FriendRequestView, 0, len(requests))
	for i := range requests {
		views = append(views, FriendRequestView{
			RequestID: requests[i].RequestID,
			CreatedAt: requests[i].CreatedAt,
			User:      newAuthorView(&requests[i].Recipient),
		})
	}
	return views
}
