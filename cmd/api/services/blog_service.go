package services

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"car-blog/cmd/api/dto"
	"car-blog/cmd/api/upload"
	"car-blog/events"
	"car-blog/internal/logger"
	"car-blog/models"
	"car-blog/repositories"
)

// TokenVerifier resolves a credential to its subject and role.
type TokenVerifier interface {
	Parse(token string) (string, string, error)
}

// UserFinder loads accounts by the hex id carried in tokens.
type UserFinder interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
}

// BlogStore persists blogs.
type BlogStore interface {
	Insert(ctx context.Context, b *models.Blog) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Blog, error)
	List(ctx context.Context) ([]models.Blog, error)
	ListByOwner(ctx context.Context, owner primitive.ObjectID) ([]models.Blog, error)
	Update(ctx context.Context, b *models.Blog) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// ImageStore validates, stores and removes uploaded images.
type ImageStore interface {
	Save(fh *multipart.FileHeader) (string, error)
	Remove(stored string) error
}

// BlogEventPublisher receives blog lifecycle notifications.
type BlogEventPublisher interface {
	PublishBlogCreated(ctx context.Context, blog *models.Blog, actorID string) error
	PublishBlogUpdated(ctx context.Context, blog *models.Blog, actorID string) error
	PublishBlogDeleted(ctx context.Context, blog *models.Blog, actorID string) error
}

// BlogInput holds the four required blog fields.
type BlogInput struct {
	Title       string
	Description string
	Model       string
	Year        int
}

func (in BlogInput) complete() bool {
	return strings.TrimSpace(in.Title) != "" &&
		strings.TrimSpace(in.Description) != "" &&
		strings.TrimSpace(in.Model) != "" &&
		in.Year != 0
}

// BlogWrite is the input of Create and Update. Form may be nil when the
// request carried no multipart body.
type BlogWrite struct {
	Token  string
	Fields BlogInput
	Form   *multipart.Form
}

// defaultPublishTimeout bounds event publication when none is configured.
const defaultPublishTimeout = 5 * time.Second

type BlogServiceOptions struct {
	// EnforceOwnership makes Update and Delete require a credential whose
	// subject owns the blog or carries the admin role.
	EnforceOwnership bool
	// PublishTimeout bounds how long a committed write waits for its
	// lifecycle event to be published.
	PublishTimeout time.Duration
}

// BlogService implements the blog use cases on top of the store, the token
// verifier and the image store.
type BlogService struct {
	blogs  BlogStore
	users  UserFinder
	tokens TokenVerifier
	images ImageStore
	events BlogEventPublisher
	opts   BlogServiceOptions
}

// NewBlogService wires the service. publisher may be nil.
func NewBlogService(blogs BlogStore, users UserFinder, tokens TokenVerifier, images ImageStore, publisher BlogEventPublisher, opts BlogServiceOptions) *BlogService {
	if publisher == nil {
		publisher = noopPublisher{}
	}
	if opts.PublishTimeout <= 0 {
		opts.PublishTimeout = defaultPublishTimeout
	}
	return &BlogService{
		blogs:  blogs,
		users:  users,
		tokens: tokens,
		images: images,
		events: publisher,
		opts:   opts,
	}
}

// Create stores a new blog owned by the token's user. The image, if any, is
// only written after the user has been resolved.
func (s *BlogService) Create(ctx context.Context, in BlogWrite) (*dto.BlogDTO, error) {
	if in.Token == "" {
		return nil, newError(dto.CodeUnauthorized, "Token is required", nil)
	}
	if !in.Fields.complete() {
		// Clients of the create form expect 403 for missing fields.
		return nil, &Error{Code: dto.CodeValidationFailed, Message: "All fields are required", Status: http.StatusForbidden}
	}

	actor, err := s.authenticate(ctx, in.Token)
	if err != nil {
		return nil, err
	}

	stored, err := s.storeImage(in.Form)
	if err != nil {
		return nil, err
	}

	blog := &models.Blog{
		Owner:       actor.ID,
		Title:       in.Fields.Title,
		Description: in.Fields.Description,
		Model:       in.Fields.Model,
		Year:        in.Fields.Year,
		Image:       stored,
	}
	if err := s.blogs.Insert(ctx, blog); err != nil {
		s.discardImage(stored)
		return nil, internalError(err)
	}

	s.notify(ctx, events.BlogCreated, blog, actor.ID.Hex())

	out := dto.NewBlogDTO(*blog)
	return &out, nil
}

// List returns every blog. An empty collection is reported as not found.
func (s *BlogService) List(ctx context.Context) ([]dto.BlogDTO, error) {
	items, err := s.blogs.List(ctx)
	if err != nil {
		return nil, internalError(err)
	}
	if len(items) == 0 {
		return nil, newError(dto.CodeNotFound, "No blogs found", nil)
	}
	return dto.NewBlogDTOs(items), nil
}

// ListByOwner returns the blogs of the token's user. No blogs is an empty
// slice, not an error.
func (s *BlogService) ListByOwner(ctx context.Context, token string) ([]dto.BlogDTO, error) {
	if token == "" {
		return nil, newError(dto.CodeUnauthorized, "Not authorized, token not provided", nil)
	}
	actor, err := s.authenticate(ctx, token)
	if err != nil {
		return nil, err
	}

	items, err := s.blogs.ListByOwner(ctx, actor.ID)
	if err != nil {
		return nil, internalError(err)
	}
	return dto.NewBlogDTOs(items), nil
}

// GetByID returns a single blog. Malformed ids are not found.
func (s *BlogService) GetByID(ctx context.Context, id string) (*dto.BlogDTO, error) {
	blog, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	out := dto.NewBlogDTO(*blog)
	return &out, nil
}

// Update overwrites the four fields of an existing blog. A new image
// replaces the stored path; the previous file stays on disk.
func (s *BlogService) Update(ctx context.Context, id string, in BlogWrite) (*dto.BlogDTO, error) {
	if !in.Fields.complete() {
		return nil, newError(dto.CodeValidationFailed, "All fields (title, description, model, and year) are required", nil)
	}

	actorID, actor, err := s.actor(ctx, in.Token)
	if err != nil {
		return nil, err
	}

	blog, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(actor, blog); err != nil {
		return nil, err
	}

	stored, err := s.storeImage(in.Form)
	if err != nil {
		return nil, err
	}

	blog.Title = in.Fields.Title
	blog.Description = in.Fields.Description
	blog.Model = in.Fields.Model
	blog.Year = in.Fields.Year
	if stored != "" {
		blog.Image = stored
	}

	if err := s.blogs.Update(ctx, blog); err != nil {
		s.discardImage(stored)
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, newError(dto.CodeNotFound, "Blog not found", err)
		}
		return nil, internalError(err)
	}

	s.notify(ctx, events.BlogUpdated, blog, actorID)

	out := dto.NewBlogDTO(*blog)
	return &out, nil
}

// Delete removes the blog and its image file. A missing file is ignored.
func (s *BlogService) Delete(ctx context.Context, id, token string) error {
	actorID, actor, err := s.actor(ctx, token)
	if err != nil {
		return err
	}

	blog, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if err := s.authorize(actor, blog); err != nil {
		return err
	}

	if err := s.blogs.Delete(ctx, blog.ID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return newError(dto.CodeNotFound, "Blog not found", err)
		}
		return internalError(err)
	}

	if err := s.images.Remove(blog.Image); err != nil {
		logger.WarnWithFields("failed to remove blog image", logger.Fields{
			"blog_id": blog.ID.Hex(),
			"image":   blog.Image,
			"error":   err.Error(),
		})
	}

	s.notify(ctx, events.BlogDeleted, blog, actorID)
	return nil
}

// authenticate resolves token to a persisted user.
func (s *BlogService) authenticate(ctx context.Context, token string) (*models.User, error) {
	sub, _, err := s.tokens.Parse(token)
	if err != nil {
		return nil, newError(dto.CodeUnauthorized, "Invalid or expired token", err)
	}

	user, err := s.users.FindByID(ctx, sub)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, newError(dto.CodeUnauthorized, "Not authorized, user not found", err)
		}
		return nil, internalError(err)
	}
	return user, nil
}

// actor identifies the caller of Update and Delete. With ownership enforced
// the credential is mandatory; otherwise it is only read for event
// attribution and any problem with it is ignored.
func (s *BlogService) actor(ctx context.Context, token string) (string, *models.User, error) {
	if !s.opts.EnforceOwnership {
		if token == "" {
			return "", nil, nil
		}
		sub, _, err := s.tokens.Parse(token)
		if err != nil {
			return "", nil, nil
		}
		return sub, nil, nil
	}

	if token == "" {
		return "", nil, newError(dto.CodeUnauthorized, "Not authorized, token not provided", nil)
	}
	user, err := s.authenticate(ctx, token)
	if err != nil {
		return "", nil, err
	}
	return user.ID.Hex(), user, nil
}

func (s *BlogService) authorize(actor *models.User, blog *models.Blog) error {
	if !s.opts.EnforceOwnership {
		return nil
	}
	if actor.IsAdmin() || actor.ID == blog.Owner {
		return nil
	}
	return newError(dto.CodeForbidden, "Not authorized to modify this blog", nil)
}

func (s *BlogService) find(ctx context.Context, id string) (*models.Blog, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, newError(dto.CodeNotFound, "Blog not found", err)
	}

	blog, err := s.blogs.FindByID(ctx, oid)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, newError(dto.CodeNotFound, "Blog not found", err)
		}
		return nil, internalError(err)
	}
	return blog, nil
}

// storeImage saves the single image in form, returning "" when there is none.
func (s *BlogService) storeImage(form *multipart.Form) (string, error) {
	fh, err := upload.SingleFile(form)
	if err != nil {
		return "", uploadError(err)
	}
	if fh == nil {
		return "", nil
	}

	stored, err := s.images.Save(fh)
	if err != nil {
		return "", uploadError(err)
	}
	return stored, nil
}

// discardImage removes a file stored for a write that did not persist.
func (s *BlogService) discardImage(stored string) {
	if stored == "" {
		return
	}
	if err := s.images.Remove(stored); err != nil {
		logger.ErrorWithFields("failed to discard orphaned image", logger.Fields{
			"image": stored,
			"error": err.Error(),
		})
	}
}

// notify publishes the lifecycle event of a committed write, waiting at most
// PublishTimeout. Failures are logged and never fail the request.
func (s *BlogService) notify(ctx context.Context, typ events.EventType, blog *models.Blog, actorID string) {
	ctx, cancel := context.WithTimeout(ctx, s.opts.PublishTimeout)
	defer cancel()

	var err error
	switch typ {
	case events.BlogCreated:
		err = s.events.PublishBlogCreated(ctx, blog, actorID)
	case events.BlogUpdated:
		err = s.events.PublishBlogUpdated(ctx, blog, actorID)
	case events.BlogDeleted:
		err = s.events.PublishBlogDeleted(ctx, blog, actorID)
	}
	if err == nil {
		return
	}
	logger.WarnWithFields("failed to publish blog event", logger.Fields{
		"event":   string(typ),
		"blog_id": blog.ID.Hex(),
		"error":   err.Error(),
	})
}

type noopPublisher struct{}

func (noopPublisher) PublishBlogCreated(context.Context, *models.Blog, string) error { return nil }

func (noopPublisher) PublishBlogUpdated(context.Context, *models.Blog, string) error { return nil }

func (noopPublisher) PublishBlogDeleted(context.Context, *models.Blog, string) error { return nil }
