package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/pitwall/paddockpress/internal/client/models"
	"github.com/pitwall/paddockpress/internal/client/services"
)

// Posts lists the stored articles.
func (a *App) Posts(ctx context.Context) error {
	posts, err := a.posts.List(ctx)
	if err != nil {
		a.logger.Error(ctx, "listing posts", "error", err)
		return err
	}
	if len(posts) == 0 {
		fmt.Println("No posts yet.")
		return nil
	}
	for _, p := range posts {
		fmt.Printf("%s  [%s]  %s  (%s)\n", p.ID, p.Status, p.Title, strings.Join(p.Sections, ","))
	}
	return nil
}

// NewPost interactively creates a draft article.
func (a *App) NewPost(ctx context.Context) error {
	title, err := GetSimpleText(a.reader, "Title", os.Stdout)
	if err != nil {
		return err
	}
	sections, err := GetSimpleText(a.reader, "Sections (comma-separated, empty for default)", os.Stdout)
	if err != nil {
		return err
	}

	p := &models.Post{Title: title}
	for _, tag := range strings.Split(sections, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			services.ToggleSection(p, tag)
		}
	}

	if err := a.posts.Create(ctx, p); err != nil {
		a.logger.Error(ctx, "creating post", "error", err)
		return err
	}
	fmt.Printf("Created draft %s (slug %q)\n", p.ID, p.Slug)
	return nil
}

// DeletePost removes an article after confirmation.
func (a *App) DeletePost(ctx context.Context, id string) error {
	p, err := a.posts.Get(ctx, id)
	if err != nil {
		a.logger.Error(ctx, "loading post", "error", err)
		return err
	}
	if !GetConfirm(a.reader, fmt.Sprintf("Delete %q?", p.Title), os.Stdout) {
		fmt.Println("Cancelled.")
		return nil
	}
	if err := a.posts.Delete(ctx, id); err != nil {
		a.logger.Error(ctx, "deleting post", "error", err)
		return err
	}
	fmt.Println("Deleted.")
	return nil
}
