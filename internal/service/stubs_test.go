package service

import (
	"context"

	"helenite/internal/models"
	"helenite/internal/search"
)

type userRepoStub struct {
	createFn            func(context.Context, *models.User) error
	createWithProfileFn func(context.Context, *models.User, *models.Profile) error
	getByIDFn           func(context.Context, uint) (*models.User, error)
	getByUsernameFn     func(context.Context, string) (*models.User, error)
	getByEmailFn        func(context.Context, string) (*models.User, error)
	updateFn            func(context.Context, *models.User) error
	deleteFn            func(context.Context, uint) error
}

func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) CreateWithProfile(ctx context.Context, user *models.User, profile *models.Profile) error {
	return s.createWithProfileFn(ctx, user, profile)
}
func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		createFn:            func(context.Context, *models.User) error { return nil },
		createWithProfileFn: func(context.Context, *models.User, *models.Profile) error { return nil },
		getByIDFn:           func(context.Context, uint) (*models.User, error) { return &models.User{}, nil },
		getByUsernameFn:     func(context.Context, string) (*models.User, error) { return &models.User{}, nil },
		getByEmailFn:        func(context.Context, string) (*models.User, error) { return nil, nil },
		updateFn:            func(context.Context, *models.User) error { return nil },
		deleteFn:            func(context.Context, uint) error { return nil },
	}
}

type profileRepoStub struct {
	createFn      func(context.Context, *models.Profile) error
	getByIDFn     func(context.Context, uint) (*models.Profile, error)
	getByUserIDFn func(context.Context, uint) (*models.Profile, error)
	getBySlugFn   func(context.Context, string) (*models.Profile, error)
	slugExistsFn  func(context.Context, string) (bool, error)
	updateFn      func(context.Context, *models.Profile) error
}

func (s *profileRepoStub) Create(ctx context.Context, profile *models.Profile) error {
	return s.createFn(ctx, profile)
}
func (s *profileRepoStub) GetByID(ctx context.Context, id uint) (*models.Profile, error) {
	return s.getByIDFn(ctx, id)
}
func (s *profileRepoStub) GetByUserID(ctx context.Context, userID uint) (*models.Profile, error) {
	return s.getByUserIDFn(ctx, userID)
}
func (s *profileRepoStub) GetBySlug(ctx context.Context, slug string) (*models.Profile, error) {
	return s.getBySlugFn(ctx, slug)
}
func (s *profileRepoStub) SlugExists(ctx context.Context, slug string) (bool, error) {
	return s.slugExistsFn(ctx, slug)
}
func (s *profileRepoStub) Update(ctx context.Context, profile *models.Profile) error {
	return s.updateFn(ctx, profile)
}

func noopProfileRepo() *profileRepoStub {
	return &profileRepoStub{
		createFn:      func(context.Context, *models.Profile) error { return nil },
		getByIDFn:     func(context.Context, uint) (*models.Profile, error) { return &models.Profile{}, nil },
		getByUserIDFn: func(context.Context, uint) (*models.Profile, error) { return &models.Profile{}, nil },
		getBySlugFn:   func(context.Context, string) (*models.Profile, error) { return &models.Profile{}, nil },
		slugExistsFn:  func(context.Context, string) (bool, error) { return false, nil },
		updateFn:      func(context.Context, *models.Profile) error { return nil },
	}
}

type friendRepoStub struct {
	createRequestFn         func(context.Context, *models.FriendRequest) error
	getRequestFn            func(context.Context, uint, uint) (*models.FriendRequest, error)
	getRequestByRequestIDFn func(context.Context, string) (*models.FriendRequest, error)
	deleteRequestFn         func(context.Context, uint) error
	pendingRequestsForFn    func(context.Context, uint) ([]models.FriendRequest, error)
	sentRequestsByFn        func(context.Context, uint) ([]models.FriendRequest, error)
	acceptFn                func(context.Context, *models.FriendRequest) error
	areFriendsFn            func(context.Context, uint, uint) (bool, error)
	friendsOfFn             func(context.Context, uint) ([]models.Profile, error)
	friendUserIDsFn         func(context.Context, uint) ([]uint, error)
	removeEdgeFn            func(context.Context, uint, uint) error
	removeAllEdgesFn        func(context.Context, uint) error
}

func (s *friendRepoStub) CreateRequest(ctx context.Context, request *models.FriendRequest) error {
	return s.createRequestFn(ctx, request)
}
func (s *friendRepoStub) GetRequest(ctx context.Context, requesterID, recipientID uint) (*models.FriendRequest, error) {
	return s.getRequestFn(ctx, requesterID, recipientID)
}
func (s *friendRepoStub) GetRequestByRequestID(ctx context.Context, requestID string) (*models.FriendRequest, error) {
	return s.getRequestByRequestIDFn(ctx, requestID)
}
func (s *friendRepoStub) DeleteRequest(ctx context.Context, id uint) error {
	return s.deleteRequestFn(ctx, id)
}
func (s *friendRepoStub) PendingRequestsFor(ctx context.Context, userID uint) ([]models.FriendRequest, error) {
	return s.pendingRequestsForFn(ctx, userID)
}
func (s *friendRepoStub) SentRequestsBy(ctx context.Context, userID uint) ([]models.FriendRequest, error) {
	return s.sentRequestsByFn(ctx, userID)
}
func (s *friendRepoStub) Accept(ctx context.Context, request *models.FriendRequest) error {
	return s.acceptFn(ctx, request)
}
func (s *friendRepoStub) AreFriends(ctx context.Context, profileID, friendID uint) (bool, error) {
	return s.areFriendsFn(ctx, profileID, friendID)
}
func (s *friendRepoStub) FriendsOf(ctx context.Context, profileID uint) ([]models.Profile, error) {
	return s.friendsOfFn(ctx, profileID)
}
func (s *friendRepoStub) FriendUserIDs(ctx context.Context, userID uint) ([]uint, error) {
	return s.friendUserIDsFn(ctx, userID)
}
func (s *friendRepoStub) RemoveEdge(ctx context.Context, profileID, friendID uint) error {
	return s.removeEdgeFn(ctx, profileID, friendID)
}
func (s *friendRepoStub) RemoveAllEdges(ctx context.Context, profileID uint) error {
	return s.removeAllEdgesFn(ctx, profileID)
}

func noopFriendRepo() *friendRepoStub {
	return &friendRepoStub{
		createRequestFn: func(context.Context, *models.FriendRequest) error { return nil },
		getRequestFn:    func(context.Context, uint, uint) (*models.FriendRequest, error) { return nil, nil },
		getRequestByRequestIDFn: func(context.Context, string) (*models.FriendRequest, error) {
			return &models.FriendRequest{}, nil
		},
		deleteRequestFn:      func(context.Context, uint) error { return nil },
		pendingRequestsForFn: func(context.Context, uint) ([]models.FriendRequest, error) { return nil, nil },
		sentRequestsByFn:     func(context.Context, uint) ([]models.FriendRequest, error) { return nil, nil },
		acceptFn:             func(context.Context, *models.FriendRequest) error { return nil },
		areFriendsFn:         func(context.Context, uint, uint) (bool, error) { return false, nil },
		friendsOfFn:          func(context.Context, uint) ([]models.Profile, error) { return nil, nil },
		friendUserIDsFn:      func(context.Context, uint) ([]uint, error) { return nil, nil },
		removeEdgeFn:         func(context.Context, uint, uint) error { return nil },
		removeAllEdgesFn:     func(context.Context, uint) error { return nil },
	}
}

type postRepoStub struct {
	createFn      func(context.Context, *models.Post) error
	getBySlugFn   func(context.Context, string, uint) (*models.Post, error)
	getByUserIDFn func(context.Context, uint, int, int, uint) ([]models.Post, error)
	feedFn        func(context.Context, uint, []uint, int, int) ([]models.Post, error)
	discoverFn    func(context.Context, uint) ([]models.Post, error)
	deleteFn      func(context.Context, uint) error
	toggleLikeFn  func(context.Context, uint, uint) (bool, error)
	isLikedFn     func(context.Context, uint, uint) (bool, error)
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetBySlug(ctx context.Context, slug string, currentUserID uint) (*models.Post, error) {
	return s.getBySlugFn(ctx, slug, currentUserID)
}
func (s *postRepoStub) GetByUserID(ctx context.Context, userID uint, limit, offset int, currentUserID uint) ([]models.Post, error) {
	return s.getByUserIDFn(ctx, userID, limit, offset, currentUserID)
}
func (s *postRepoStub) Feed(ctx context.Context, userID uint, friendIDs []uint, limit, offset int) ([]models.Post, error) {
	return s.feedFn(ctx, userID, friendIDs, limit, offset)
}
func (s *postRepoStub) Discover(ctx context.Context, userID uint) ([]models.Post, error) {
	return s.discoverFn(ctx, userID)
}
func (s *postRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *postRepoStub) ToggleLike(ctx context.Context, userID, postID uint) (bool, error) {
	return s.toggleLikeFn(ctx, userID, postID)
}
func (s *postRepoStub) IsLiked(ctx context.Context, userID, postID uint) (bool, error) {
	return s.isLikedFn(ctx, userID, postID)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn:    func(context.Context, *models.Post) error { return nil },
		getBySlugFn: func(context.Context, string, uint) (*models.Post, error) { return &models.Post{}, nil },
		getByUserIDFn: func(context.Context, uint, int, int, uint) ([]models.Post, error) {
			return nil, nil
		},
		feedFn:       func(context.Context, uint, []uint, int, int) ([]models.Post, error) { return nil, nil },
		discoverFn:   func(context.Context, uint) ([]models.Post, error) { return nil, nil },
		deleteFn:     func(context.Context, uint) error { return nil },
		toggleLikeFn: func(context.Context, uint, uint) (bool, error) { return true, nil },
		isLikedFn:    func(context.Context, uint, uint) (bool, error) { return false, nil },
	}
}

type commentRepoStub struct {
	createFn     func(context.Context, *models.Comment) error
	getByIDFn    func(context.Context, uint) (*models.Comment, error)
	listByPostFn func(context.Context, uint) ([]models.Comment, error)
	deleteFn     func(context.Context, uint) error
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) ListByPost(ctx context.Context, postID uint) ([]models.Comment, error) {
	return s.listByPostFn(ctx, postID)
}
func (s *commentRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn:     func(context.Context, *models.Comment) error { return nil },
		getByIDFn:    func(context.Context, uint) (*models.Comment, error) { return &models.Comment{}, nil },
		listByPostFn: func(context.Context, uint) ([]models.Comment, error) { return nil, nil },
		deleteFn:     func(context.Context, uint) error { return nil },
	}
}

type storageStub struct {
	saveFn   func(string, string, []byte) (string, error)
	removeFn func(string) error
}

func (s *storageStub) Save(category, filename string, content []byte) (string, error) {
	return s.saveFn(category, filename, content)
}
func (s *storageStub) Remove(reference string) error {
	return s.removeFn(reference)
}
func (s *storageStub) Path(reference string) string {
	return reference
}

func noopStorage() *storageStub {
	return &storageStub{
		saveFn:   func(category, filename string, _ []byte) (string, error) { return category + "/" + filename, nil },
		removeFn: func(string) error { return nil },
	}
}

type searchClientStub struct {
	searchFn func(context.Context, string, string) ([]search.Hit, error)
}

func (s *searchClientStub) Search(ctx context.Context, index, query string) ([]search.Hit, error) {
	return s.searchFn(ctx, index, query)
}
