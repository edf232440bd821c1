package content

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"resonance/database"
	"resonance/models"
	"resonance/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const maxSlugAttempts = 5

// Slugify lowercases title and joins its alphanumeric runs with hyphens.
func Slugify(title string) string {
	var b strings.Builder
	pendingDash := false
	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			pendingDash = false
			continue
		}
		pendingDash = true
	}
	return b.String()
}

func (s *DefaultContentService) ListBlogs(ctx context.Context, includeDrafts bool) ([]models.Blog, error) {
	blogs, err := s.Blogs.List(ctx, !includeDrafts)
	if err != nil {
		utils.GetLogger().Error("Failed to list blogs", zap.Error(err))
		return nil, err
	}
	for i := range blogs {
		blogs[i].Image = utils.NormalizeMedia(blogs[i].Image)
	}
	return blogs, nil
}

func (s *DefaultContentService) GetBlog(ctx context.Context, idOrSlug string, includeDrafts bool) (*models.Blog, error) {
	b, err := s.Blogs.GetByID(ctx, idOrSlug)
	if err != nil {
		return nil, notFound(err, "blog", idOrSlug)
	}
	if !b.Published && !includeDrafts {
		return nil, utils.NotFound("blog %s not found", idOrSlug)
	}
	b.Image = utils.NormalizeMedia(b.Image)
	return b, nil
}

func (s *DefaultContentService) applyBlog(ctx context.Context, b *models.Blog, in models.BlogInput) error {
	if in.Title != nil {
		b.Title = strings.TrimSpace(*in.Title)
	}
	if in.Excerpt != nil {
		b.Excerpt = strings.TrimSpace(*in.Excerpt)
	}
	if in.Content != nil {
		b.Content = *in.Content
	}
	if in.Author != nil {
		b.Author = strings.TrimSpace(*in.Author)
	}
	if in.Tags != nil {
		b.Tags = in.Tags
	}
	if in.Published != nil {
		b.Published = *in.Published
	}
	if in.Image != nil {
		img, err := s.media().Store(ctx, *in.Image)
		if err != nil {
			utils.GetLogger().Error("Failed to store blog image", zap.String("blogID", b.ID), zap.Error(err))
			return err
		}
		b.Image = img
	}

	if b.Title == "" {
		return utils.BadRequest("blog title is required")
	}
	if strings.TrimSpace(b.Content) == "" {
		return utils.BadRequest("blog content is required")
	}
	return nil
}

// CreateBlog derives the slug from the title and suffixes it when taken.
func (s *DefaultContentService) CreateBlog(ctx context.Context, in models.BlogInput) (*models.Blog, error) {
	now := s.now()
	b := &models.Blog{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now}
	if err := s.applyBlog(ctx, b, in); err != nil {
		return nil, err
	}
	base := Slugify(b.Title)
	if base == "" {
		base = b.ID[:8]
	}

	for attempt := 0; attempt < maxSlugAttempts; attempt++ {
		b.Slug = base
		if attempt > 0 {
			b.Slug = fmt.Sprintf("%s-%s", base, uuid.New().String()[:6])
		}
		err := s.Blogs.Create(ctx, b)
		if err == nil {
			utils.GetLogger().Info("Blog created", zap.String("blogID", b.ID), zap.String("slug", b.Slug))
			return b, nil
		}
		if !errors.Is(err, database.ErrDuplicate) {
			utils.GetLogger().Error("Failed to create blog", zap.Error(err))
			return nil, err
		}
	}
	return nil, utils.Conflict("could not find a free slug for %q", b.Title)
}

// UpdateBlog keeps the slug stable so published links survive title edits.
func (s *DefaultContentService) UpdateBlog(ctx context.Context, id string, in models.BlogInput) (*models.Blog, error) {
	b, err := s.Blogs.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "blog", id)
	}
	if err := s.applyBlog(ctx, b, in); err != nil {
		return nil, err
	}
	b.UpdatedAt = s.now()
	if err := s.Blogs.Replace(ctx, b); err != nil {
		return nil, notFound(err, "blog", id)
	}
	b.Image = utils.NormalizeMedia(b.Image)
	return b, nil
}

func (s *DefaultContentService) DeleteBlog(ctx context.Context, id string) error {
	b, err := s.Blogs.GetByID(ctx, id)
	if err != nil {
		return notFound(err, "blog", id)
	}
	if err := s.Blogs.Delete(ctx, b.ID); err != nil {
		return notFound(err, "blog", id)
	}
	return nil
}
