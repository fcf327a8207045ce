package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pitwall/paddockpress/internal/client/models"
	"github.com/pitwall/paddockpress/internal/client/store"
	"github.com/pitwall/paddockpress/internal/slugx"
)

// PostService persists articles: metadata plus the finished block tree
// handed over by the editing surface on save.
type PostService struct {
	posts    *store.Table
	notifier Notifier
}

func NewPostService(st *store.Store, n Notifier) *PostService {
	return &PostService{posts: st.Table("posts"), notifier: n}
}

// Create inserts a new article. Missing fields are filled in: id, derived
// slug, draft status, the fallback section, timestamps.
func (s *PostService) Create(ctx context.Context, p *models.Post) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Status == "" {
		p.Status = models.PostStatusDraft
	}
	if p.Slug == "" {
		p.Slug = slugx.Make(p.Title)
	}
	normalizeSections(p)
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	if err := store.AddAs(ctx, s.posts, p.ID, *p); err != nil {
		return fmt.Errorf("create post: %w", err)
	}
	s.notifier.NotifyWrite()
	return nil
}

// Save upserts an edited article.
func (s *PostService) Save(ctx context.Context, p *models.Post) error {
	normalizeSections(p)
	p.UpdatedAt = time.Now().UTC()

	if err := store.PutAs(ctx, s.posts, p.ID, *p); err != nil {
		return fmt.Errorf("save post: %w", err)
	}
	s.notifier.NotifyWrite()
	return nil
}

func (s *PostService) Get(ctx context.Context, id string) (*models.Post, error) {
	return store.GetAs[models.Post](ctx, s.posts, id)
}

func (s *PostService) List(ctx context.Context) ([]models.Post, error) {
	return store.ToArrayAs[models.Post](ctx, s.posts)
}

// ListBySection returns the articles tagged with the given section.
func (s *PostService) ListBySection(ctx context.Context, section string) ([]models.Post, error) {
	docs, err := s.posts.Filter(ctx, func(doc json.RawMessage) bool {
		var row struct {
			Sections []string `json:"sections"`
		}
		if json.Unmarshal(doc, &row) != nil {
			return false
		}
		for _, tag := range row.Sections {
			if tag == section {
				return true
			}
		}
		return false
	})
	if err != nil {
		return nil, err
	}

	result := make([]models.Post, 0, len(docs))
	for _, doc := range docs {
		var p models.Post
		if err := json.Unmarshal(doc, &p); err != nil {
			return nil, fmt.Errorf("decode post: %w", err)
		}
		result = append(result, p)
	}
	return result, nil
}

func (s *PostService) Delete(ctx context.Context, id string) error {
	if err := s.posts.Delete(ctx, id); err != nil {
		return err
	}
	s.notifier.NotifyWrite()
	return nil
}

// ApplyTitle sets a new title and keeps the slug in step while it is still
// the auto-derived one. Once the user hand-edits the slug, the divergence is
// sticky: later title changes leave it alone.
func ApplyTitle(p *models.Post, title string) {
	if p.Slug == "" || p.Slug == slugx.Make(p.Title) {
		p.Slug = slugx.Make(title)
	}
	p.Title = title
}

// ToggleSection adds or removes a section tag. The set never empties:
// removing the last tag swaps in the fallback section.
func ToggleSection(p *models.Post, tag string) {
	for i, existing := range p.Sections {
		if existing == tag {
			p.Sections = append(p.Sections[:i], p.Sections[i+1:]...)
			normalizeSections(p)
			return
		}
	}
	p.Sections = append(p.Sections, tag)
}

func normalizeSections(p *models.Post) {
	if len(p.Sections) == 0 {
		p.Sections = []string{models.FallbackSection}
	}
}
