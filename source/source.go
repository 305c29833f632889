// Package source reads post dumps saved from the blog API, as JSON or YAML,
// into the content model.
package source

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/postsaver/postsaver/pkg/content"
)

type rawAuthor struct {
	Name string `mapstructure:"name"`
}

type rawComment struct {
	ID          string `mapstructure:"id"`
	Author      any    `mapstructure:"author"`
	CreatedAt   int64  `mapstructure:"createdAt"`
	IsDeleted   bool   `mapstructure:"isDeleted"`
	Unavailable bool   `mapstructure:"unavailable"`
	Data        any    `mapstructure:"data"`
	Replies     any    `mapstructure:"replies"`
}

type rawPost struct {
	ID          string `mapstructure:"id"`
	Title       string `mapstructure:"title"`
	CreatedAt   int64  `mapstructure:"createdAt"`
	HasAccess   *bool  `mapstructure:"hasAccess"`
	SignedQuery string `mapstructure:"signedQuery"`
	Blog        string `mapstructure:"blog"`
	User        struct {
		BlogURL string `mapstructure:"blogUrl"`
	} `mapstructure:"user"`
	Data     any `mapstructure:"data"`
	Comments any `mapstructure:"comments"`
}

// LoadFile reads the posts stored in the dump at path. The format is chosen
// by extension: .yaml and .yml are YAML, anything else is JSON. A document
// with a top level "posts" key, or a top level array, holds several posts;
// any other object is a single post.
func LoadFile(path string) ([]content.Post, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dump %q: %w", path, err)
	}

	var doc any
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &doc)
	default:
		err = json.Unmarshal(data, &doc)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse dump %q: %w", path, err)
	}

	posts, err := decodePosts(doc)
	if err != nil {
		return nil, fmt.Errorf("invalid dump %q: %w", path, err)
	}
	return posts, nil
}

func decodePosts(doc any) ([]content.Post, error) {
	var entries []any
	switch t := doc.(type) {
	case []any:
		entries = t
	case map[string]any:
		if raw, ok := t["posts"]; ok {
			entries = listOf(raw)
		} else {
			entries = []any{t}
		}
	default:
		return nil, fmt.Errorf("expected an object or an array, got %T", doc)
	}

	posts := make([]content.Post, 0, len(entries))
	for i, entry := range entries {
		post, err := decodePost(entry)
		if err != nil {
			return nil, fmt.Errorf("post %d: %w", i, err)
		}
		posts = append(posts, post)
	}
	return posts, nil
}

func decodePost(entry any) (content.Post, error) {
	var raw rawPost
	if err := decode(entry, &raw); err != nil {
		return content.Post{}, err
	}
	items, err := decodeItems(raw.Data)
	if err != nil {
		return content.Post{}, err
	}
	comments, err := decodeComments(raw.Comments)
	if err != nil {
		return content.Post{}, fmt.Errorf("comments: %w", err)
	}

	blog := raw.Blog
	if blog == "" {
		blog = raw.User.BlogURL
	}
	return content.Post{
		ID:          raw.ID,
		Title:       raw.Title,
		Blog:        blog,
		CreatedAt:   raw.CreatedAt,
		HasAccess:   raw.HasAccess == nil || *raw.HasAccess,
		SignedQuery: raw.SignedQuery,
		Data:        items,
		Comments:    comments,
	}, nil
}

func decodeComments(raw any) ([]content.Comment, error) {
	entries := listOf(raw)
	if len(entries) == 0 {
		return nil, nil
	}
	comments := make([]content.Comment, 0, len(entries))
	for i, entry := range entries {
		var rc rawComment
		if err := decode(entry, &rc); err != nil {
			return nil, fmt.Errorf("comment %d: %w", i, err)
		}
		items, err := decodeItems(rc.Data)
		if err != nil {
			return nil, fmt.Errorf("comment %d: %w", i, err)
		}
		replies, err := decodeComments(rc.Replies)
		if err != nil {
			return nil, fmt.Errorf("comment %d: %w", i, err)
		}
		comments = append(comments, content.Comment{
			ID:          rc.ID,
			Author:      authorName(rc.Author),
			CreatedAt:   rc.CreatedAt,
			Unavailable: rc.IsDeleted || rc.Unavailable,
			Data:        items,
			Replies:     replies,
		})
	}
	return comments, nil
}

// authorName accepts a plain name or an author object.
func authorName(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case map[string]any:
		var a rawAuthor
		if err := decode(t, &a); err == nil {
			return a.Name
		}
	}
	return ""
}
