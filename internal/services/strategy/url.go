package strategy

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/hubertmaka/culinary-agent/internal/domain"
	apperrors "github.com/hubertmaka/culinary-agent/internal/errors"
	"github.com/hubertmaka/culinary-agent/internal/httpclient"
	"github.com/hubertmaka/culinary-agent/internal/services/llm"
)

const maxPageBytes = 5 << 20

var (
	ErrPageNotFound = errors.New("page not found")
	ErrPageBlocked  = errors.New("page refused the request")
	ErrEmptyPage    = errors.New("page has no visible text")
)

// URLStrategy downloads a recipe page and sends its visible text.
type URLStrategy struct {
	client *http.Client
}

func NewURLStrategy(client *http.Client) *URLStrategy {
	if client == nil {
		client = httpclient.NewBrowserClient("", 0)
	}
	return &URLStrategy{client: client}
}

func (s *URLStrategy) Supports(source domain.Source) bool {
	return source == domain.SourceURL
}

func (s *URLStrategy) CreateMessage(ctx context.Context, in domain.RecipeInput) (llm.UserMessage, error) {
	text, err := s.fetchText(ctx, strings.TrimSpace(in.Content))
	if err != nil {
		return llm.UserMessage{}, apperrors.NewRecipeExtractionError("could not read recipe page", "PAGE_FETCH_FAILED", err)
	}
	return llm.UserMessage{Text: text}, nil
}

func (s *URLStrategy) fetchText(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(httpclient.WithProvider(ctx, "RecipePage"), http.MethodGet, pageURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return "", ErrPageNotFound
	case resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusTooManyRequests:
		return "", fmt.Errorf("%w: status %d", ErrPageBlocked, resp.StatusCode)
	case resp.StatusCode >= 300:
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	doc, err := html.Parse(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return "", fmt.Errorf("parsing page: %w", err)
	}

	text := VisibleText(doc)
	if text == "" {
		return "", ErrEmptyPage
	}
	return text, nil
}

// VisibleText returns the whitespace-normalised text of the document body,
// skipping script, style, meta and link elements.
func VisibleText(doc *html.Node) string {
	root := findBody(doc)
	if root == nil {
		root = doc
	}

	var words []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.DataAtom {
			case atom.Script, atom.Style, atom.Meta, atom.Link:
				return
			}
		}
		if n.Type == html.TextNode {
			words = append(words, strings.Fields(n.Data)...)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)

	return strings.Join(words, " ")
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == atom.Body {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}
