package platform

import (
	"io"

	"github.com/mj1618/a11y-snapshot/internal/model"
)

// Reader decodes a captured accessibility tree into a document.
type Reader interface {
	// ReadDocument decodes one document from r.
	ReadDocument(r io.Reader) (*model.Document, error)
}

// DirectionProvider reports the layout direction of the environment a
// tree is parsed in. It satisfies parser.LayoutDirectionProvider.
type DirectionProvider interface {
	LayoutDirection() model.LayoutDirection
}

// ReaderFunc adapts a function to the Reader interface.
type ReaderFunc func(r io.Reader) (*model.Document, error)

func (f ReaderFunc) ReadDocument(r io.Reader) (*model.Document, error) {
	return f(r)
}
