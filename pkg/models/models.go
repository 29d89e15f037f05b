package models

import (
	"fmt"
	"strconv"
	"strings"

	"blogdl/pkg/errors"
)

// DownloadItem is a single monthly archive listing discovered on the root
// page. Items are immutable once parsed and consumed once per crawl pass.
type DownloadItem struct {
	Year  int
	Month int
	Href  string
}

// Post is one blog article found on an archive listing page.
type Post struct {
	ID   string
	Href string
}

// PaddedID derives the zero-padded numeric ID used for output file naming.
// Post IDs have the composite form "<prefix>-<number>"; anything else is a
// structure error because it means the site markup changed.
func (p Post) PaddedID() (string, error) {
	tokens := strings.Split(p.ID, "-")
	if len(tokens) != 2 {
		return "", errors.NewStructure(fmt.Sprintf("unsupported post ID format: %q", p.ID), p.Href)
	}

	n, err := strconv.Atoi(tokens[1])
	if err != nil {
		return "", errors.NewStructure(fmt.Sprintf("non-numeric post ID %q: %v", p.ID, err), p.Href)
	}

	return fmt.Sprintf("%010d", n), nil
}
