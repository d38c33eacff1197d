package tmpl

import (
	"fmt"
	"time"

	"github.com/go-git/go-git/v5"
)

// CommitInfo is the subset of HEAD commit metadata usable in deck text.
type CommitInfo struct {
	Hash   string
	Author string
	When   time.Time
}

// HeadCommit opens the repository containing dir and returns its HEAD commit.
func HeadCommit(dir string) (*CommitInfo, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("opening repository: %w", err)
	}

	head, err := repo.Head()
	if err != nil {
		return nil, fmt.Errorf("getting HEAD: %w", err)
	}

	commit, err := repo.CommitObject(head.Hash())
	if err != nil {
		return nil, fmt.Errorf("getting HEAD commit: %w", err)
	}

	return &CommitInfo{
		Hash:   head.Hash().String(),
		Author: commit.Author.Name,
		When:   commit.Author.When,
	}, nil
}

// ShortHash returns the abbreviated seven-character commit hash.
func (c *CommitInfo) ShortHash() string {
	if len(c.Hash) > 7 {
		return c.Hash[:7]
	}
	return c.Hash
}
