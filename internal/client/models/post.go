// Package models defines the client-side data models persisted in the local
// store and mirrored to the remote relational store.
package models

import (
	"time"

	"github.com/pitwall/paddockpress/internal/blockdoc"
)

// PostStatus is the publishing state of an article.
type PostStatus string

const (
	PostStatusDraft     PostStatus = "draft"
	PostStatusPublished PostStatus = "published"
)

// FallbackSection is assigned when the last section tag is removed; the
// section set is never empty.
const FallbackSection = "news"

// PostLayout holds the per-article layout toggles.
type PostLayout struct {
	Wide        bool `json:"wide"`
	HideTitle   bool `json:"hideTitle"`
	ShowRelated bool `json:"showRelated"`
}

// HeroImage is the optional header image of an article.
type HeroImage struct {
	URL     string `json:"url,omitempty"`
	Alt     string `json:"alt,omitempty"`
	Caption string `json:"caption,omitempty"`
}

// Post is one article: metadata plus the block tree making up its body.
type Post struct {
	ID       string            `json:"id"`
	Title    string            `json:"title"`
	Slug     string            `json:"slug"`
	Excerpt  string            `json:"excerpt,omitempty"`
	AuthorID string            `json:"authorId"`
	Status   PostStatus        `json:"status"`
	Sections []string          `json:"sections"`
	Layout   PostLayout        `json:"layout"`
	Hero     HeroImage         `json:"hero"`
	Blocks   []*blockdoc.Block `json:"blocks"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
