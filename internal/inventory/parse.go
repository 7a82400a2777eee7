package inventory

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/roach88/flix/internal/rentalerr"
)

// leadingArticles are dropped from the front of multi-word titles so that
// "The Matrix" files under M.
var leadingArticles = []string{"A ", "a ", "An ", "an ", "The ", "the "}

// ParseItem parses one inventory line of the form "<stock> <title>".
//
// The title is everything after the stock count. A leading article is
// stripped when something follows it. Returns INVALID_ARGUMENT for a
// missing or non-integer stock count, a negative count, or a missing title.
func ParseItem(line string) (*Item, error) {
	line = strings.TrimSpace(line)
	countField, rest := line, ""
	if i := strings.IndexFunc(line, unicode.IsSpace); i >= 0 {
		countField, rest = line[:i], line[i+1:]
	}

	stock, err := strconv.Atoi(countField)
	if err != nil {
		return nil, rentalerr.New(rentalerr.CodeInvalidArgument, "stock count %q is not an integer", countField)
	}

	title := strings.TrimSpace(rest)
	if title == "" {
		return nil, rentalerr.New(rentalerr.CodeInvalidArgument, "missing title")
	}

	return NewItem(stripArticle(title), stock)
}

func stripArticle(title string) string {
	for _, article := range leadingArticles {
		if strings.HasPrefix(title, article) {
			if stripped := strings.TrimSpace(title[len(article):]); stripped != "" {
				return stripped
			}
		}
	}
	return title
}

// Load reads an inventory listing, one item per line, into a sorted catalog.
// Blank lines are skipped. Returns INVALID_ARGUMENT if the listing holds no
// items; parse errors are wrapped with their line number.
func Load(r io.Reader) (*Catalog, error) {
	c := NewCatalog()

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		item, err := ParseItem(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		c.Add(item)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read inventory: %w", err)
	}

	if c.Len() == 0 {
		return nil, rentalerr.New(rentalerr.CodeInvalidArgument, "inventory is empty")
	}
	return c, nil
}

// LoadFile reads the inventory listing at path.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open inventory: %w", err)
	}
	defer f.Close()

	c, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("load inventory %s: %w", path, err)
	}
	return c, nil
}
