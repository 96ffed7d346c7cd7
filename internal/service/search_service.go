package service

import (
	"context"

	"helenite/internal/models"
	"helenite/internal/repository"
	"helenite/internal/search"
)

// Search index names. The hosted index mirrors public profiles and posts;
// private ones are never indexed.
const (
	IndexProfile = "Profile"
	IndexPost    = "Post"
)

// SearchResult carries the resolved matches for one query. Exactly one of
// the slices is populated, depending on the index searched.
type SearchResult struct {
	Profiles []models.Profile
	Posts    []models.Post
}

// Empty reports whether the search produced no usable matches.
func (r *SearchResult) Empty() bool {
	return len(r.Profiles) == 0 && len(r.Posts) == 0
}

// SearchService bridges the hosted search index and the local store. Hits
// only carry endpoint references; every hit is resolved back to the local
// row, which stays the source of truth. Stale hits are dropped silently.
type SearchService struct {
	client      search.Client
	profileRepo repository.ProfileRepository
	postRepo    repository.PostRepository
}

// NewSearchService returns a new SearchService.
func NewSearchService(client search.Client, profileRepo repository.ProfileRepository, postRepo repository.PostRepository) *SearchService {
	return &SearchService{
		client:      client,
		profileRepo: profileRepo,
		postRepo:    postRepo,
	}
}

// Search runs the query against the named index and resolves the hits
// locally. An empty result is a valid outcome, distinct from an error.
func (s *SearchService) Search(ctx context.Context, userID uint, query, index string) (*SearchResult, error) {
	if query == "" {
		return nil, models.NewValidationError("Search query cannot be empty")
	}
	if index != IndexProfile && index != IndexPost {
		return nil, models.NewValidationError("Unknown search index")
	}

	hits, err := s.client.Search(ctx, index, query)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	result := &SearchResult{}
	for _, hit := range hits {
		slug := search.SlugFromEndpoint(hit.Endpoint)
		if slug == "" {
			continue
		}
		switch index {
		case IndexProfile:
			profile, err := s.profileRepo.GetBySlug(ctx, slug)
			if err != nil {
				if isNotFound(err) {
					continue
				}
				return nil, err
			}
			result.Profiles = append(result.Profiles, *profile)
		case IndexPost:
			post, err := s.postRepo.GetBySlug(ctx, slug, userID)
			if err != nil {
				if isNotFound(err) {
					continue
				}
				return nil, err
			}
			result.Posts = append(result.Posts, *post)
		}
	}
	return result, nil
}

func isNotFound(err error) bool {
	appErr, ok := err.(*models.AppError)
	return ok && appErr.Code == models.CodeNotFound
}
