package application

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/dfryer1193/blogify/blog/domain"
	"github.com/dfryer1193/blogify/shared/llm"
)

// memoryRepo is an in-memory domain.PostRepository.
type memoryRepo struct {
	mu    sync.Mutex
	posts map[string]domain.Post
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{posts: make(map[string]domain.Post)}
}

func (r *memoryRepo) CreatePost(_ context.Context, p *domain.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.posts[p.ID]; ok {
		return fmt.Errorf("duplicate id %s", p.ID)
	}
	r.posts[p.ID] = *p
	return nil
}

func (r *memoryRepo) GetPost(_ context.Context, id string) (*domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrPostNotFound, id)
	}
	return &p, nil
}

func (r *memoryRepo) ListPosts(_ context.Context, limit, offset int) ([]*domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := make([]*domain.Post, 0, len(r.posts))
	for _, p := range r.posts {
		all = append(all, &p)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	if offset > len(all) {
		return []*domain.Post{}, nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

func (r *memoryRepo) UpdatePost(_ context.Context, p *domain.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.posts[p.ID]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrPostNotFound, p.ID)
	}
	p.CreatedAt = existing.CreatedAt
	if p.UpdatedAt.Before(p.CreatedAt) {
		p.UpdatedAt = p.CreatedAt
	}
	r.posts[p.ID] = *p
	return nil
}

func (r *memoryRepo) UpsertPost(_ context.Context, p *domain.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.posts[p.ID]; ok {
		p.CreatedAt = existing.CreatedAt
	}
	r.posts[p.ID] = *p
	return nil
}

func (r *memoryRepo) DeletePost(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.posts[id]; !ok {
		return fmt.Errorf("%w: %s", domain.ErrPostNotFound, id)
	}
	delete(r.posts, id)
	return nil
}

func (r *memoryRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.posts)
}

// fakeCompleter returns a canned answer or error and records the last request.
type fakeCompleter struct {
	answer string
	err    error
	delay  time.Duration

	mu   sync.Mutex
	last llm.Request
}

func (f *fakeCompleter) Complete(ctx context.Context, req llm.Request) (string, error) {
	f.mu.Lock()
	f.last = req
	f.mu.Unlock()

	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return f.answer, f.err
}

func (f *fakeCompleter) Name() string { return "fake" }

func (f *fakeCompleter) lastRequest() llm.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.last
}

// fakeSource is an in-memory BranchSource.
type fakeSource struct {
	name    string
	branch  string
	files   map[string]string
	listErr error

	mu    sync.Mutex
	lists int
}

func (s *fakeSource) Name() string { return s.name }

func (s *fakeSource) Branch(context.Context) (string, error) { return s.branch, nil }

func (s *fakeSource) ListFiles(context.Context) ([]string, error) {
	s.mu.Lock()
	s.lists++
	s.mu.Unlock()

	if s.listErr != nil {
		return nil, s.listErr
	}
	paths := make([]string, 0, len(s.files))
	for p := range s.files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths, nil
}

func (s *fakeSource) GetFileContents(_ context.Context, path string) ([]byte, error) {
	content, ok := s.files[path]
	if !ok {
		return nil, fmt.Errorf("no such file %s", path)
	}
	return []byte(content), nil
}

func (s *fakeSource) listCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lists
}
