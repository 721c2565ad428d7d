package content

import (
	"github.com/codemateteam/php-handbook-sub005/internal/model"
	"github.com/codemateteam/php-handbook-sub005/internal/navigation"
)

// Index maps site routes to collected documents.
type Index struct {
	docs    []*model.Document
	byRoute map[string]*model.Document
}

func NewIndex(docs []*model.Document) *Index {
	idx := &Index{docs: docs, byRoute: make(map[string]*model.Document, len(docs))}
	for _, doc := range docs {
		key := navigation.PageKey(doc.Route)
		if _, seen := idx.byRoute[key]; !seen {
			idx.byRoute[key] = doc
		}
	}
	return idx
}

// Docs returns the documents in route order.
func (i *Index) Docs() []*model.Document { return i.docs }

// Lookup finds the document a site-relative link points at. /guide and
// /guide/ both match guide/index.md.
func (i *Index) Lookup(link string) (*model.Document, bool) {
	if navigation.IsExternal(link) {
		return nil, false
	}
	doc, ok := i.byRoute[navigation.PageKey(link)]
	return doc, ok
}
