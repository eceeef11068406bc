package github

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dfryer1193/blogify/blog/domain"
	"github.com/google/go-github/v75/github"
)

var _ domain.SourceRepository = (*GithubSourceRepository)(nil)

// GithubSourceRepository is an implementation of domain.SourceRepository that reads
// Markdown files from one branch of a GitHub repository.
type GithubSourceRepository struct {
	client  *github.Client
	owner   string
	gitRepo string

	mu     sync.Mutex
	branch string
}

// NewGithubSourceRepository creates a new GithubSourceRepository. An empty token
// uses unauthenticated requests; an empty branch resolves to the default branch.
func NewGithubSourceRepository(token, owner, gitRepo, branch string) *GithubSourceRepository {
	client := github.NewClient(nil)
	if token != "" {
		client = client.WithAuthToken(token)
	}

	return NewGithubSourceRepositoryWithClient(client, owner, gitRepo, branch)
}

// NewGithubSourceRepositoryWithClient creates a GithubSourceRepository around an existing client.
func NewGithubSourceRepositoryWithClient(client *github.Client, owner, gitRepo, branch string) *GithubSourceRepository {
	return &GithubSourceRepository{
		client:  client,
		owner:   owner,
		gitRepo: gitRepo,
		branch:  branch,
	}
}

// Name identifies the source in imported post IDs.
func (g *GithubSourceRepository) Name() string {
	return "github.com/" + g.GetRepoFullName()
}

// GetRepoFullName returns the repository's full name (e.g., "owner/repo").
func (g *GithubSourceRepository) GetRepoFullName() string {
	return fmt.Sprintf("%s/%s", g.owner, g.gitRepo)
}

// Branch returns the branch files are read from, looking up the default branch once.
func (g *GithubSourceRepository) Branch(ctx context.Context) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.branch != "" {
		return g.branch, nil
	}

	branch, err := g.GetDefaultBranchName(ctx)
	if err != nil {
		return "", err
	}
	g.branch = branch
	return branch, nil
}

// ListFiles returns the path of every file on the branch.
func (g *GithubSourceRepository) ListFiles(ctx context.Context) ([]string, error) {
	branch, err := g.Branch(ctx)
	if err != nil {
		return nil, err
	}

	op := fmt.Sprintf("listing tree of %s at %s", g.GetRepoFullName(), branch)
	tree, _, err := g.client.Git.GetTree(ctx, g.owner, g.gitRepo, branch, true)
	if err != nil {
		return nil, handleGithubError(op, err)
	}
	if tree.GetTruncated() {
		return nil, fmt.Errorf("github: %s returned a truncated tree", op)
	}

	paths := make([]string, 0, len(tree.Entries))
	for _, entry := range tree.Entries {
		if entry.GetType() == "blob" {
			paths = append(paths, entry.GetPath())
		}
	}
	return paths, nil
}

// GetFileContents fetches the contents of a file on the branch.
func (g *GithubSourceRepository) GetFileContents(ctx context.Context, path string) ([]byte, error) {
	branch, err := g.Branch(ctx)
	if err != nil {
		return nil, err
	}

	op := fmt.Sprintf("getting file %s at ref %s", path, branch)
	fileContent, _, _, err := g.client.Repositories.GetContents(ctx, g.owner, g.gitRepo, path, &github.RepositoryContentGetOptions{
		Ref: branch,
	})
	if err != nil {
		return nil, handleGithubError(op, err)
	}

	if fileContent == nil {
		return nil, fmt.Errorf("github: %s returned nil file content", op)
	}

	content, err := fileContent.GetContent()
	if err != nil {
		return nil, fmt.Errorf("github: %s failed to decode content: %w", op, err)
	}

	return []byte(content), nil
}

// GetDefaultBranchName fetches the repository metadata and returns the name of the default branch.
func (g *GithubSourceRepository) GetDefaultBranchName(ctx context.Context) (string, error) {
	op := fmt.Sprintf("getting repository info for %s", g.GetRepoFullName())
	repo, _, err := g.client.Repositories.Get(ctx, g.owner, g.gitRepo)
	if err != nil {
		return "", handleGithubError(op, err)
	}
	return repo.GetDefaultBranch(), nil
}

// handleGithubError inspects an error from the go-github client and returns a more informative, structured error.
func handleGithubError(op string, err error) error {
	if err == nil {
		return nil
	}

	var errResp *github.ErrorResponse
	if errors.As(err, &errResp) && errResp.Response != nil {
		return fmt.Errorf("github: %s failed with status %d: %s", op, errResp.Response.StatusCode, errResp.Message)
	}

	return fmt.Errorf("github: %s failed: %w", op, err)
}
