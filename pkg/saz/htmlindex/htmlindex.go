// Package htmlindex reads capture sessions from the _index.htm table that
// Fiddler writes next to the raw/ folder.
//
// It is an alternative to saz.Parser, not a step of it: sessions come from
// the table rows instead of from file names, and the request/response text is
// joined in from the archive entries the row links to.
package htmlindex

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/usestring/saz-mcp/pkg/saz"
)

// IndexFile is the archive path of the session table.
const IndexFile = "_index.htm"

// ErrNoIndex is returned when the archive has no usable session table.
var ErrNoIndex = errors.New("htmlindex: no session table")

// Column headers recognized in the session table.
const (
	colIndex  = "#"
	colResult = "Result"
	colURL    = "URL"
	colBody   = "Body"
)

// ParseFile enumerates the archive at path and reads its session table.
func ParseFile(path string) ([]saz.Session, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("htmlindex: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("htmlindex: %w", err)
	}

	entries, err := saz.Enumerate(f, info.Size())
	if err != nil {
		return nil, err
	}
	return Parse(entries)
}

// Parse builds sessions from the _index.htm entry in entries.
// Rows are returned in ascending index order.
func Parse(entries []saz.Entry) ([]saz.Session, error) {
	byPath := make(map[string]*saz.Entry, len(entries))
	for i := range entries {
		byPath[entries[i].Path] = &entries[i]
	}

	index, ok := byPath[IndexFile]
	if !ok {
		return nil, ErrNoIndex
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(index.Content))
	if err != nil {
		return nil, fmt.Errorf("htmlindex: parsing %s: %w", IndexFile, err)
	}

	table := doc.Find("table").First()
	if table.Length() == 0 {
		return nil, ErrNoIndex
	}

	columns := headerColumns(table)
	if _, ok := columns[colIndex]; !ok {
		return nil, fmt.Errorf("%w: missing %q column", ErrNoIndex, colIndex)
	}

	var sessions []saz.Session
	var rowErr error

	table.Find("tr").EachWithBreak(func(_ int, row *goquery.Selection) bool {
		cells := row.Find("td")
		if cells.Length() == 0 {
			return true
		}

		s, err := sessionFromRow(cells, columns, byPath)
		if err != nil {
			rowErr = err
			return false
		}
		sessions = append(sessions, s)
		return true
	})
	if rowErr != nil {
		return nil, rowErr
	}
	if len(sessions) == 0 {
		return nil, ErrNoIndex
	}

	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].Index < sessions[j].Index
	})

	return sessions, nil
}

// headerColumns maps header text to column position.
func headerColumns(table *goquery.Selection) map[string]int {
	columns := make(map[string]int)
	table.Find("th").Each(func(i int, th *goquery.Selection) {
		name := strings.TrimSpace(th.Text())
		if name != "" {
			columns[name] = i
		}
	})
	return columns
}

func sessionFromRow(cells *goquery.Selection, columns map[string]int, byPath map[string]*saz.Entry) (saz.Session, error) {
	cell := func(name string) string {
		i, ok := columns[name]
		if !ok || i >= cells.Length() {
			return ""
		}
		return strings.TrimSpace(cells.Eq(i).Text())
	}

	idx, err := strconv.ParseUint(cell(colIndex), 10, 32)
	if err != nil {
		return saz.Session{}, fmt.Errorf("htmlindex: bad session number %q: %w", cell(colIndex), err)
	}

	s := saz.Session{
		Index:      uint32(idx),
		URL:        cell(colURL),
		Status:     parseUint32(cell(colResult)),
		BodyLength: parseBodyLength(cell(colBody)),
	}

	cells.Find("a").Each(func(_ int, a *goquery.Selection) {
		href, ok := a.Attr("href")
		if !ok {
			return
		}
		path := strings.ReplaceAll(href, `\`, "/")
		switch strings.TrimSpace(a.Text()) {
		case "C":
			s.RequestPath = path
		case "S":
			s.ResponsePath = path
		}
	})

	for _, link := range []struct {
		path string
		dst  *string
	}{
		{s.RequestPath, &s.Request},
		{s.ResponsePath, &s.Response},
	} {
		if link.path == "" {
			continue
		}
		e, ok := byPath[link.path]
		if !ok {
			return saz.Session{}, fmt.Errorf("htmlindex: session %d: %w: %s", idx, saz.ErrMissingEntry, link.path)
		}
		*link.dst = e.Content
	}

	return s, nil
}

// parseUint32 returns 0 for cells such as "-" that Fiddler writes for
// aborted sessions.
func parseUint32(s string) uint32 {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0
	}
	return uint32(n)
}

// parseBodyLength accepts Fiddler's thousands-separated byte counts ("1,234").
func parseBodyLength(s string) uint64 {
	s = strings.NewReplacer(",", "", ".", "", " ", "").Replace(s)
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}
