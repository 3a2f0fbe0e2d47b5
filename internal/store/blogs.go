package store

import (
	"encoding/json"
	"fmt"

	"github.com/Xurramov-Ogabek/42-lesson-Homework/internal/storage"
	"github.com/Xurramov-Ogabek/42-lesson-Homework/internal/types"
)

// Blogs is the blog post collection.
type Blogs struct {
	blogs *storage.Collection[types.Blog]
}

// NewBlogs binds the blogs collection of backend.
func NewBlogs(backend storage.Backend) *Blogs {
	return &Blogs{blogs: storage.NewCollection[types.Blog](backend, BlogsCollection)}
}

// Create requires a title and content, derives the slug from the title
// when none is given, and appends the post with id len(blogs)+1.
func (s *Blogs) Create(in types.BlogInput) (types.Blog, error) {
	if err := structError(in); err != nil {
		return types.Blog{}, err
	}

	var created types.Blog
	err := s.blogs.Mutate(func(blogs []types.Blog) ([]types.Blog, error) {
		created = types.Blog{
			ID:       len(blogs) + 1,
			Title:    in.Title,
			Slug:     pick(in.Slug, Slugify(in.Title)),
			Content:  in.Content,
			Tags:     in.Tags,
			Comments: []json.RawMessage{},
		}
		if created.Tags == nil {
			created.Tags = []string{}
		}
		return append(blogs, created), nil
	})
	if err != nil {
		return types.Blog{}, err
	}

	return created, nil
}

// List returns every post in insertion order.
func (s *Blogs) List() ([]types.Blog, error) {
	return s.blogs.Load()
}

// FindByID returns the first post with the given id.
func (s *Blogs) FindByID(id int) (types.Blog, error) {
	blogs, err := s.blogs.Load()
	if err != nil {
		return types.Blog{}, err
	}

	for _, b := range blogs {
		if b.ID == id {
			return b, nil
		}
	}

	return types.Blog{}, fmt.Errorf("blog %d %w", id, ErrNotFound)
}

// Update overwrites title, slug, content and tags where in carries them.
// Empty strings keep the old value; any non-nil tags slice, even an empty
// one, replaces the old tags. The slug is never re-derived from a new title.
func (s *Blogs) Update(id int, in types.BlogInput) (types.Blog, error) {
	var updated types.Blog
	err := s.blogs.Mutate(func(blogs []types.Blog) ([]types.Blog, error) {
		idx := -1
		for i, b := range blogs {
			if b.ID == id {
				idx = i
				break
			}
		}
		if idx == -1 {
			return nil, fmt.Errorf("blog %d %w", id, ErrNotFound)
		}

		b := blogs[idx]
		b.Title = pick(in.Title, b.Title)
		b.Slug = pick(in.Slug, b.Slug)
		b.Content = pick(in.Content, b.Content)
		if in.Tags != nil {
			b.Tags = in.Tags
		}

		blogs[idx] = b
		updated = b
		return blogs, nil
	})
	if err != nil {
		return types.Blog{}, err
	}

	return updated, nil
}

// Delete removes every post with the given id.
func (s *Blogs) Delete(id int) error {
	return s.blogs.Mutate(func(blogs []types.Blog) ([]types.Blog, error) {
		kept := make([]types.Blog, 0, len(blogs))
		for _, b := range blogs {
			if b.ID != id {
				kept = append(kept, b)
			}
		}
		if len(kept) == len(blogs) {
			return nil, fmt.Errorf("blog %d %w", id, ErrNotFound)
		}
		return kept, nil
	})
}
