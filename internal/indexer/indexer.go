package indexer

import (
	"strings"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/usestring/saz-mcp/pkg/saz"
)

// Index holds in-memory indexes over the sessions of one capture using Roaring
// bitmaps. An Index is immutable once built and safe for concurrent reads.
type Index struct {
	// ID mappings
	indexToDoc map[uint32]uint32
	docToMeta  []*SessionMeta

	// Inverted indexes
	idxHost        map[string]*roaring.Bitmap
	idxStatus      map[uint32]*roaring.Bitmap
	idxStatusClass map[uint32]*roaring.Bitmap
	idxToken       map[string]*roaring.Bitmap
}

// Build indexes sessions in order. Document IDs are positions in sessions.
func Build(sessions []saz.Session) *Index {
	idx := &Index{
		indexToDoc:     make(map[uint32]uint32, len(sessions)),
		docToMeta:      make([]*SessionMeta, 0, len(sessions)),
		idxHost:        make(map[string]*roaring.Bitmap),
		idxStatus:      make(map[uint32]*roaring.Bitmap),
		idxStatusClass: make(map[uint32]*roaring.Bitmap),
		idxToken:       make(map[string]*roaring.Bitmap),
	}
	for i := range sessions {
		idx.add(&sessions[i])
	}
	return idx
}

func (idx *Index) add(s *saz.Session) {
	docID := uint32(len(idx.docToMeta))
	meta := FromSession(s)
	meta.DocID = docID

	idx.indexToDoc[meta.Index] = docID
	idx.docToMeta = append(idx.docToMeta, meta)

	if meta.Host != "" {
		addToBitmap(idx.idxHost, meta.Host, docID)
	}
	if meta.Status != 0 {
		addToBitmap(idx.idxStatus, meta.Status, docID)
		addToBitmap(idx.idxStatusClass, meta.Status/100, docID)
	}
	for _, token := range TokenizeURL(meta.URL) {
		addToBitmap(idx.idxToken, token, docID)
	}
}

func addToBitmap[K comparable](m map[K]*roaring.Bitmap, key K, docID uint32) {
	bm, ok := m[key]
	if !ok {
		bm = roaring.New()
		m[key] = bm
	}
	bm.Add(docID)
}

// Meta retrieves metadata by docID.
func (idx *Index) Meta(docID uint32) *SessionMeta {
	if int(docID) >= len(idx.docToMeta) {
		return nil
	}
	return idx.docToMeta[docID]
}

// MetaByIndex retrieves metadata by session index.
func (idx *Index) MetaByIndex(index uint32) *SessionMeta {
	docID, ok := idx.indexToDoc[index]
	if !ok {
		return nil
	}
	return idx.docToMeta[docID]
}

// AllDocIDs returns a bitmap of all indexed document IDs.
func (idx *Index) AllDocIDs() *roaring.Bitmap {
	bm := roaring.New()
	bm.AddRange(0, uint64(len(idx.docToMeta)))
	return bm
}

// DocCount returns the number of indexed documents.
func (idx *Index) DocCount() int {
	return len(idx.docToMeta)
}

// Hosts returns the distinct hosts seen in the capture.
func (idx *Index) Hosts() []string {
	hosts := make([]string, 0, len(idx.idxHost))
	for h := range idx.idxHost {
		hosts = append(hosts, h)
	}
	return hosts
}

// BitmapForHost returns the bitmap for a host pattern.
// Supports wildcard prefix: "*.example.com" matches "example.com"
// and all subdomains like "api.example.com", "www.example.com".
// Without the prefix, matches exactly (case-insensitive).
func (idx *Index) BitmapForHost(host string) *roaring.Bitmap {
	host = strings.ToLower(host)
	if !strings.HasPrefix(host, "*.") {
		return idx.idxHost[host]
	}

	baseDomain := host[2:]
	if baseDomain == "" {
		return nil
	}

	suffix := "." + baseDomain
	result := roaring.New()
	for key, bm := range idx.idxHost {
		if key == baseDomain || strings.HasSuffix(key, suffix) {
			result.Or(bm)
		}
	}
	if result.IsEmpty() {
		return nil
	}
	return result
}

// BitmapForStatus returns the bitmap for a specific HTTP status code.
func (idx *Index) BitmapForStatus(status uint32) *roaring.Bitmap {
	return idx.idxStatus[status]
}

// BitmapForStatusClass returns the bitmap for a status class (4 for 4xx).
func (idx *Index) BitmapForStatusClass(class uint32) *roaring.Bitmap {
	return idx.idxStatusClass[class]
}

// BitmapForToken returns the bitmap for a specific URL token.
func (idx *Index) BitmapForToken(token string) *roaring.Bitmap {
	return idx.idxToken[token]
}

// BitmapForBodyLength returns documents whose declared body length lies in
// [minLen, maxLen]. A maxLen of 0 means unbounded.
func (idx *Index) BitmapForBodyLength(minLen, maxLen uint64) *roaring.Bitmap {
	bm := roaring.New()
	for _, meta := range idx.docToMeta {
		if meta.BodyLength < minLen {
			continue
		}
		if maxLen > 0 && meta.BodyLength > maxLen {
			continue
		}
		bm.Add(meta.DocID)
	}
	return bm
}
