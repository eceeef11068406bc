package persistence

import (
	"fmt"

	"github.com/dfryer1193/blogify/blog/domain"
)

// checkPost rejects posts no store can persist.
func checkPost(p *domain.Post) error {
	if p == nil {
		return fmt.Errorf("post cannot be nil")
	}
	if p.ID == "" {
		return fmt.Errorf("post ID cannot be empty")
	}
	return nil
}

// normalizePage clamps list paging to the supported range.
func normalizePage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// contentTypeOrDefault maps a stored tag back to a ContentType. Rows written by
// older versions or by hand may carry unknown tags; those render as plain text.
func contentTypeOrDefault(s string) domain.ContentType {
	ct, err := domain.ParseContentType(s)
	if err != nil {
		return domain.ContentTypePlain
	}
	return ct
}
