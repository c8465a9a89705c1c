// Package parsers converts browser bookmark-export documents into flat
// bookmark records.
//
// Browser exports follow the old Netscape bookmark file convention:
// <H3> headings name folders and are followed by <DL> blocks containing
// <A> links. Real exports are rarely well-formed HTML (unclosed <DT> and
// <p> tags are the norm), so parsing is tolerant: malformed structure
// degrades to "absent", never to an error.
package parsers

import (
	"io"
	"strings"

	"golang.org/x/net/html"
)

// ParsedBookmark is a single link discovered in an export document.
// Folder is nil for links outside any named folder.
type ParsedBookmark struct {
	Title  string
	URL    string
	Folder *string
}

// ParseBookmarks extracts bookmarks from a browser export document in
// discovery order: links inside folder blocks first (document order),
// then top-level links not captured by the first pass.
//
// Folder attribution is a single document-order walk: each heading opens
// a folder, and links inside list blocks belong to the currently open
// folder. Folder names are taken verbatim from the heading text.
// Only http(s) URLs qualify; entries without a URL are dropped, and an
// entry whose link text is empty uses its URL as the title.
func ParseBookmarks(r io.Reader) []ParsedBookmark {
	doc, err := html.Parse(r)
	if err != nil {
		// html.Parse recovers from malformed markup; an error here
		// means the reader itself failed.
		return nil
	}

	var bookmarks []ParsedBookmark
	seen := make(map[string]bool)

	// Pass 1: links inside folder blocks, attributed to the open folder.
	var currentFolder *string
	listDepth := 0

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "h3":
				name := nodeText(n)
				currentFolder = &name
			case "dl":
				listDepth++
				for c := n.FirstChild; c != nil; c = c.NextSibling {
					walk(c)
				}
				listDepth--
				return
			case "a":
				if listDepth > 0 {
					if b, ok := anchorBookmark(n); ok {
						b.Folder = currentFolder
						bookmarks = append(bookmarks, b)
						seen[b.URL] = true
					}
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	// Pass 2: every link in the document, to catch unfiled top-level
	// entries. Skips URLs already captured so a link nested in a folder
	// block is not counted twice.
	var sweep func(n *html.Node)
	sweep = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			if b, ok := anchorBookmark(n); ok && !seen[b.URL] {
				bookmarks = append(bookmarks, b)
				seen[b.URL] = true
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			sweep(c)
		}
	}
	sweep(doc)

	return bookmarks
}

// anchorBookmark builds a ParsedBookmark from an <a> node. Returns
// ok=false when the href is missing or not an http(s) URL.
func anchorBookmark(n *html.Node) (ParsedBookmark, bool) {
	var url string
	for _, attr := range n.Attr {
		if attr.Key == "href" {
			url = attr.Val
			break
		}
	}
	if !strings.HasPrefix(url, "http") {
		return ParsedBookmark{}, false
	}

	title := nodeText(n)
	if title == "" {
		title = url
	}
	return ParsedBookmark{Title: title, URL: url}, true
}

// nodeText concatenates all text content under a node, verbatim.
func nodeText(n *html.Node) string {
	var sb strings.Builder
	var collect func(*html.Node)
	collect = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	collect(n)
	return sb.String()
}
