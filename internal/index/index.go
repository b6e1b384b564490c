package index

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/blevesearch/bleve"

	"github.com/proposalarchitect/speakerscout/tools/embedding"
)

// rrfK is the reciprocal-rank-fusion constant.
const rrfK = 60

type DocType string

const (
	DocProfileChunk DocType = "profile_chunk"
	DocOpportunity  DocType = "opportunity"
)

// Document is one indexed unit inside a session: a profile chunk or an
// opportunity rendered to text. Vector is optional; documents without one
// only participate in keyword search.
type Document struct {
	ID      string
	DocType DocType
	Title   string
	Content string
	Vector  []float32
}

// Hit is one search result after fusion.
type Hit struct {
	ID      string  `json:"id"`
	DocType DocType `json:"doc_type"`
	Title   string  `json:"title"`
	Snippet string  `json:"snippet"`
	Score   float64 `json:"score"`
	Rank    int     `json:"rank"`
}

// Index keeps a memory-only bleve index plus raw vectors per session.
// Sessions never see each other's documents; dropping a session releases
// everything it indexed.
type Index struct {
	sessions map[string]*sessionIndex
	mu       sync.Mutex
}

type sessionIndex struct {
	bleve   bleve.Index
	docs    map[string]Document
	vectors map[string][]float32
	mu      sync.RWMutex
}

func New() *Index {
	return &Index{sessions: make(map[string]*sessionIndex)}
}

// Upsert indexes or replaces a document in the session's index.
func (x *Index) Upsert(sessionID string, doc Document) error {
	si, err := x.forSession(sessionID)
	if err != nil {
		return err
	}
	si.mu.Lock()
	defer si.mu.Unlock()
	si.docs[doc.ID] = doc
	if doc.Vector != nil {
		si.vectors[doc.ID] = doc.Vector
	} else {
		delete(si.vectors, doc.ID)
	}
	return si.bleve.Index(doc.ID, map[string]string{
		"title":    doc.Title,
		"content":  doc.Content,
		"doc_type": string(doc.DocType),
	})
}

// Search runs keyword and vector search over one session and fuses the two
// lists with reciprocal-rank fusion. An empty query skips the keyword leg,
// a nil query vector skips the vector leg. docType filters results when set.
func (x *Index) Search(sessionID, query string, queryVec []float32, docType DocType, k int) ([]Hit, error) {
	x.mu.Lock()
	si, ok := x.sessions[sessionID]
	x.mu.Unlock()
	if !ok {
		return []Hit{}, nil
	}

	var keyword, vector []Hit
	if strings.TrimSpace(query) != "" {
		var err error
		keyword, err = si.keywordSearch(query, docType, k)
		if err != nil {
			return nil, fmt.Errorf("keyword search failed: %w", err)
		}
	}
	if queryVec != nil {
		vector = si.vectorSearch(queryVec, docType, k)
	}
	return fuseRRF(keyword, vector, k), nil
}

// Drop discards everything indexed for a session.
func (x *Index) Drop(sessionID string) {
	x.mu.Lock()
	si, ok := x.sessions[sessionID]
	delete(x.sessions, sessionID)
	x.mu.Unlock()
	if ok {
		_ = si.bleve.Close()
	}
}

func (x *Index) forSession(sessionID string) (*sessionIndex, error) {
	x.mu.Lock()
	defer x.mu.Unlock()
	if si, ok := x.sessions[sessionID]; ok {
		return si, nil
	}
	idx, err := bleve.NewMemOnly(bleve.NewIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("failed to create index: %w", err)
	}
	si := &sessionIndex{
		bleve:   idx,
		docs:    make(map[string]Document),
		vectors: make(map[string][]float32),
	}
	x.sessions[sessionID] = si
	return si, nil
}

func (si *sessionIndex) keywordSearch(q string, docType DocType, k int) ([]Hit, error) {
	query := bleve.NewQueryStringQuery(q)
	req := bleve.NewSearchRequestOptions(query, k*3, 0, false)
	res, err := si.bleve.Search(req)
	if err != nil {
		return nil, err
	}
	si.mu.RLock()
	defer si.mu.RUnlock()
	var out []Hit
	for _, hit := range res.Hits {
		doc, ok := si.docs[hit.ID]
		if !ok || (docType != "" && doc.DocType != docType) {
			continue
		}
		out = append(out, Hit{
			ID: doc.ID, DocType: doc.DocType, Title: doc.Title,
			Snippet: snippet(doc.Content), Score: hit.Score, Rank: len(out) + 1,
		})
		if len(out) >= k {
			break
		}
	}
	return out, nil
}

func (si *sessionIndex) vectorSearch(q []float32, docType DocType, k int) []Hit {
	si.mu.RLock()
	defer si.mu.RUnlock()
	type scored struct {
		id    string
		score float64
	}
	var scoreds []scored
	for id, v := range si.vectors {
		if docType != "" && si.docs[id].DocType != docType {
			continue
		}
		scoreds = append(scoreds, scored{id: id, score: embedding.CosineSimilarity(q, v)})
	}
	sort.Slice(scoreds, func(i, j int) bool {
		if scoreds[i].score != scoreds[j].score {
			return scoreds[i].score > scoreds[j].score
		}
		return scoreds[i].id < scoreds[j].id
	})
	var out []Hit
	for _, sc := range scoreds {
		doc := si.docs[sc.id]
		out = append(out, Hit{
			ID: doc.ID, DocType: doc.DocType, Title: doc.Title,
			Snippet: snippet(doc.Content), Score: sc.score, Rank: len(out) + 1,
		})
		if len(out) >= k {
			break
		}
	}
	return out
}

func fuseRRF(a, b []Hit, k int) []Hit {
	type agg struct {
		item  Hit
		score float64
	}
	m := map[string]*agg{}
	add := func(list []Hit) {
		for _, h := range list {
			x, ok := m[h.ID]
			if !ok {
				x = &agg{item: h}
				m[h.ID] = x
			}
			x.score += 1.0 / float64(rrfK+h.Rank)
		}
	}
	add(a)
	add(b)

	items := make([]*agg, 0, len(m))
	for _, v := range m {
		items = append(items, v)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].score != items[j].score {
			return items[i].score > items[j].score
		}
		return items[i].item.ID < items[j].item.ID
	})

	if k > len(items) {
		k = len(items)
	}
	out := make([]Hit, 0, k)
	for i := 0; i < k; i++ {
		h := items[i].item
		h.Score = items[i].score
		h.Rank = i + 1
		out = append(out, h)
	}
	return out
}

func snippet(s string) string {
	if len(s) <= 300 {
		return s
	}
	return s[:300] + "..."
}
