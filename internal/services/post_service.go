package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/you/blogsvc/domain"
	"go.uber.org/zap"
)

// PostServiceImpl implements domain.PostService
type PostServiceImpl struct {
	posts  domain.PostStore
	users  domain.UserService
	logger *zap.Logger
	now    func() time.Time
	newID  func() string
}

// NewPostService creates a new post service
func NewPostService(posts domain.PostStore, users domain.UserService, logger *zap.Logger) *PostServiceImpl {
	return &PostServiceImpl{
		posts:  posts,
		users:  users,
		logger: logger.Named("posts"),
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// canManage reports whether actor owns the post's author id or is an admin
func canManage(actor *domain.TokenPayload, ownerID string) bool {
	return actor != nil && (actor.UserID == ownerID || actor.Role.Is(domain.RoleAdmin))
}

func newestFirst(posts []domain.Post) []domain.Post {
	if posts == nil {
		return []domain.Post{}
	}
	sort.SliceStable(posts, func(i, j int) bool { return posts[i].CreatedAt.After(posts[j].CreatedAt) })
	return posts
}

// List implements domain.PostService
func (s *PostServiceImpl) List(ctx context.Context, viewer *domain.TokenPayload) domain.DataResult[[]domain.Post] {
	posts, err := s.posts.Find(ctx, domain.Where(domain.Eq(domain.FieldPublished, true)))
	if err != nil {
		return storageFailure[[]domain.Post](s.logger, "list", err)
	}
	if viewer != nil {
		drafts, err := s.posts.Find(ctx, domain.Where(
			domain.Eq(domain.FieldOwnerID, viewer.UserID),
			domain.Eq(domain.FieldPublished, false),
		))
		if err != nil {
			return storageFailure[[]domain.Post](s.logger, "list_drafts", err)
		}
		posts = append(posts, drafts...)
	}
	return domain.SuccessData(newestFirst(posts))
}

// ListByOwner implements domain.PostService
func (s *PostServiceImpl) ListByOwner(ctx context.Context, ownerID string, viewer *domain.TokenPayload) domain.DataResult[[]domain.Post] {
	filter := domain.Where(domain.Eq(domain.FieldOwnerID, ownerID))
	if !canManage(viewer, ownerID) {
		filter = append(filter, domain.Eq(domain.FieldPublished, true))
	}
	posts, err := s.posts.Find(ctx, filter)
	if err != nil {
		return storageFailure[[]domain.Post](s.logger, "list_by_owner", err)
	}
	return domain.SuccessData(newestFirst(posts))
}

// Get implements domain.PostService. Drafts are invisible to other viewers.
func (s *PostServiceImpl) Get(ctx context.Context, id string, viewer *domain.TokenPayload) domain.DataResult[*domain.Post] {
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		s.logger.Error("post store failure", zap.String("op", "get"), zap.Error(err))
		return domain.FailureData[*domain.Post](domain.MsgGeneric)
	}
	if post == nil || (!post.Published && !canManage(viewer, post.OwnerID)) {
		return domain.FailureData[*domain.Post](domain.MsgPostNotExists)
	}
	return domain.SuccessData(post)
}

// Create implements domain.PostService
func (s *PostServiceImpl) Create(ctx context.Context, actor *domain.TokenPayload, draft domain.PostDraft) domain.DataResult[*domain.Post] {
	if actor == nil {
		return domain.FailureData[*domain.Post](domain.MsgNotAuthorized)
	}
	if res := domain.RunRules(ctx,
		func(ctx context.Context) domain.Result { return s.users.GetByID(ctx, actor.UserID).Result },
		domain.Check(strings.TrimSpace(draft.Title) != "", domain.MsgTitleRequired),
	); res.Failed() {
		return domain.FailWith[*domain.Post](res)
	}

	now := s.now().UTC()
	post := &domain.Post{
		ID:        s.newID(),
		OwnerID:   actor.UserID,
		Title:     strings.TrimSpace(draft.Title),
		Body:      draft.Body,
		Published: draft.Published,
		CreatedAt: now,
		UpdatedAt: now,
	}
	created, err := s.posts.Create(ctx, post)
	if err != nil {
		s.logger.Error("post store failure", zap.String("op", "create"), zap.Error(err))
		return domain.FailureData[*domain.Post](domain.MsgGeneric)
	}
	return domain.SuccessData(created)
}

// managed loads the post into *dst and checks that actor may change it
func (s *PostServiceImpl) managed(actor *domain.TokenPayload, id string, dst **domain.Post) []domain.Rule {
	return []domain.Rule{
		func(ctx context.Context) domain.Result {
			post, err := s.posts.FindByID(ctx, id)
			if err != nil {
				s.logger.Error("post store failure", zap.String("op", "find"), zap.Error(err))
				return domain.Failure(domain.MsgGeneric)
			}
			if post == nil {
				return domain.Failure(domain.MsgPostNotExists)
			}
			*dst = post
			return domain.Success("")
		},
		func(ctx context.Context) domain.Result {
			return domain.Check(canManage(actor, (*dst).OwnerID), domain.MsgNotAuthorized)(ctx)
		},
	}
}

// Update implements domain.PostService
func (s *PostServiceImpl) Update(ctx context.Context, actor *domain.TokenPayload, id string, patch domain.PostPatch) domain.DataResult[*domain.Post] {
	var post *domain.Post
	rules := append(s.managed(actor, id, &post),
		domain.Check(patch.Title == nil || strings.TrimSpace(*patch.Title) != "", domain.MsgTitleRequired),
	)
	if res := domain.RunRules(ctx, rules...); res.Failed() {
		return domain.FailWith[*domain.Post](res)
	}

	changes := domain.Patch{domain.FieldUpdatedAt: s.now().UTC()}
	if patch.Title != nil {
		changes[domain.FieldTitle] = strings.TrimSpace(*patch.Title)
	}
	if patch.Body != nil {
		changes[domain.FieldBody] = *patch.Body
	}
	if patch.Published != nil {
		changes[domain.FieldPublished] = *patch.Published
	}

	updated, err := s.posts.FindOneAndUpdate(ctx, domain.Where(domain.Eq(domain.FieldID, id)), changes)
	if err != nil {
		s.logger.Error("post store failure", zap.String("op", "update"), zap.Error(err))
		return domain.FailureData[*domain.Post](domain.MsgGeneric)
	}
	if updated == nil {
		return domain.FailureData[*domain.Post](domain.MsgPostNotExists)
	}
	return domain.SuccessData(updated)
}

// Delete implements domain.PostService
func (s *PostServiceImpl) Delete(ctx context.Context, actor *domain.TokenPayload, id string) domain.Result {
	var post *domain.Post
	if res := domain.RunRules(ctx, s.managed(actor, id, &post)...); res.Failed() {
		return res
	}

	removed, err := s.posts.FindOneAndDelete(ctx, domain.Where(domain.Eq(domain.FieldID, id)))
	if err != nil {
		s.logger.Error("post store failure", zap.String("op", "delete"), zap.Error(err))
		return domain.Failure(domain.MsgGeneric)
	}
	if removed == nil {
		return domain.Failure(domain.MsgPostNotExists)
	}
	return domain.Success(domain.MsgPostDeleted)
}

var _ domain.PostService = (*PostServiceImpl)(nil)
