package document

import "path/filepath"

// Workspace is the ordered set of open documents and the active one.
type Workspace struct {
	docs   []*Document
	active int
}

// NewWorkspace returns an empty workspace.
func NewWorkspace() *Workspace {
	return &Workspace{active: -1}
}

// Open adds a document for path unless one is already open for the same
// cleaned path, in which case that one is activated instead. load is only
// called for new documents. created reports whether a document was added.
func (w *Workspace) Open(path string, load func(string) (string, error)) (doc *Document, created bool, err error) {
	key := filepath.Clean(path)
	if i := w.index(key); i >= 0 {
		w.active = i
		return w.docs[i], false, nil
	}

	content, err := load(path)
	if err != nil {
		return nil, false, err
	}
	doc = New(key, content)
	w.docs = append(w.docs, doc)
	w.active = len(w.docs) - 1
	return doc, true, nil
}

// Lookup returns the open document for path.
func (w *Workspace) Lookup(path string) (*Document, bool) {
	i := w.index(filepath.Clean(path))
	if i < 0 {
		return nil, false
	}
	return w.docs[i], true
}

func (w *Workspace) index(key string) int {
	for i, d := range w.docs {
		if d.Path == key {
			return i
		}
	}
	return -1
}

// Close closes doc and removes it. The document to its right, or else to
// its left, becomes active when doc was active.
func (w *Workspace) Close(doc *Document) bool {
	i := -1
	for j, d := range w.docs {
		if d == doc {
			i = j
			break
		}
	}
	if i < 0 {
		return false
	}

	doc.Close()
	w.docs = append(w.docs[:i], w.docs[i+1:]...)
	switch {
	case len(w.docs) == 0:
		w.active = -1
	case w.active > i:
		w.active--
	case w.active == i && w.active == len(w.docs):
		w.active--
	}
	return true
}

// Active returns the active document, or nil when none are open.
func (w *Workspace) Active() *Document {
	if w.active < 0 || w.active >= len(w.docs) {
		return nil
	}
	return w.docs[w.active]
}

// ActiveIndex returns the position of the active document, or -1.
func (w *Workspace) ActiveIndex() int { return w.active }

// Activate makes the i-th document active.
func (w *Workspace) Activate(i int) bool {
	if i < 0 || i >= len(w.docs) {
		return false
	}
	w.active = i
	return true
}

// Next activates the following document, wrapping around.
func (w *Workspace) Next() {
	if n := len(w.docs); n > 0 {
		w.active = (w.active + 1) % n
	}
}

// Prev activates the preceding document, wrapping around.
func (w *Workspace) Prev() {
	if n := len(w.docs); n > 0 {
		w.active = (w.active - 1 + n) % n
	}
}

// Documents returns the open documents in tab order.
func (w *Workspace) Documents() []*Document { return w.docs }

// Len returns the number of open documents.
func (w *Workspace) Len() int { return len(w.docs) }
