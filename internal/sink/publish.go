package sink

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Root is the key prefix every published node lives under.
const Root = "llamapun"

// Document is the publishable summary of one processed document.
type Document struct {
	ID          string
	Filename    string
	Title       string
	ContentHash string
	CreatedAt   string
	Matches     []Match
	Formulas    []Formula
}

// Match is one rule match. Value is stored as-is.
type Match struct {
	Rule  string
	Value any
}

// Formula links a canonical formula digest (algo:hex) to the addresses of
// its occurrences in the document.
type Formula struct {
	Digest    string
	Addresses []string
}

// DocumentKey returns the key prefix of a document's nodes.
func DocumentKey(docID string) string {
	return Root + "/documents/" + docID
}

// FormulaKey returns the key prefix for a digest in algo:hex form.
func FormulaKey(digest string) string {
	algo, hex, ok := strings.Cut(digest, ":")
	if !ok {
		return Root + "/formulas/" + Slugify(digest)
	}
	return Root + "/formulas/" + Slugify(algo) + "/" + Slugify(hex)
}

// PublishDocument writes the document metadata, one node per match and one
// node per formula occurrence set, linked back to the document. At most
// concurrency writes are in flight. It returns the number of nodes stored;
// failures are joined into the error and do not stop the remaining writes.
func (c *Client) PublishDocument(ctx context.Context, doc Document, concurrency int) (int, error) {
	if doc.ID == "" {
		return 0, fmt.Errorf("publish: document id is required")
	}
	if concurrency <= 0 {
		concurrency = 10
	}
	docPrefix := DocumentKey(doc.ID)
	source := "llamapun:" + doc.ID

	type write struct {
		key  string
		req  NodeRequest
		link *LinkRequest
	}
	var writes []write
	seq := map[string]int{}
	for _, m := range doc.Matches {
		rule := Slugify(m.Rule)
		if rule == "" {
			rule = "rule"
		}
		writes = append(writes, write{
			key: fmt.Sprintf("%s/matches/%s/%d", docPrefix, rule, seq[rule]),
			req: NodeRequest{Value: m.Value, Source: source},
		})
		seq[rule]++
	}
	for _, f := range doc.Formulas {
		key := FormulaKey(f.Digest) + "/" + doc.ID
		writes = append(writes, write{
			key: key,
			req: NodeRequest{
				Value:  map[string]any{"digest": f.Digest, "addresses": f.Addresses},
				Source: source,
			},
			link: &LinkRequest{From: key, To: docPrefix + "/meta", Weight: float64(len(f.Addresses))},
		})
	}

	sem := make(chan struct{}, concurrency)
	results := make(chan error, len(writes))
	for _, w := range writes {
		sem <- struct{}{}
		go func(w write) {
			defer func() { <-sem }()
			if err := c.PutNode(ctx, w.key, w.req); err != nil {
				results <- err
				return
			}
			if w.link != nil {
				if err := c.PutLink(ctx, *w.link); err != nil {
					results <- fmt.Errorf("link %s: %w", w.key, err)
					return
				}
			}
			results <- nil
		}(w)
	}

	stored := 0
	var errs []error
	for range writes {
		if err := <-results; err != nil {
			errs = append(errs, err)
			continue
		}
		stored++
	}

	// Metadata is written last, once the counts are known.
	err := c.PutNode(ctx, docPrefix+"/meta", NodeRequest{
		Value: map[string]any{
			"filename":     doc.Filename,
			"title":        doc.Title,
			"content_hash": doc.ContentHash,
			"matches":      len(doc.Matches),
			"formulas":     len(doc.Formulas),
			"nodes_stored": stored,
			"created_at":   doc.CreatedAt,
		},
		Source: source,
	})
	if err != nil {
		errs = append(errs, fmt.Errorf("meta: %w", err))
	} else {
		stored++
	}
	return stored, errors.Join(errs...)
}

var (
	slugInvalid = regexp.MustCompile(`[^a-z0-9-]`)
	slugDashes  = regexp.MustCompile(`-+`)
)

// Slugify converts a string to a path-safe slug.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = slugInvalid.ReplaceAllString(s, "-")
	s = slugDashes.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if len(s) > 64 {
		s = s[:64]
	}
	return s
}
