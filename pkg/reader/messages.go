package reader

import (
	"github.com/google/uuid"

	"github.com/dtnitsch/cauldron/models"
	"github.com/dtnitsch/cauldron/pkg/markup"
)

// Input is a message accepted by Reader.Send.
type Input interface{ input() }

// SetTitle changes the displayed title.
type SetTitle struct{ Title string }

// SetMetadata changes the catalog metadata shown in the header.
type SetMetadata struct{ Article models.Article }

// SetContent replaces the current document with one built from Tree.
type SetContent struct{ Tree markup.Tree }

// RequestImage asks for the image at Index of the current document.
type RequestImage struct{ Index int }

func (SetTitle) input()     {}
func (SetMetadata) input()  {}
func (SetContent) input()   {}
func (RequestImage) input() {}

// Event is a notification published on Reader.Events.
type Event interface{ event() }

// DocumentReplaced carries the live document. The reader keeps writing its
// image states after publishing it, so consumers must not read Image.State
// through this pointer; ImageChanged carries each new state.
type DocumentReplaced struct{ Document *models.Document }

// ImageChanged reports the new state of one image.
type ImageChanged struct {
	DocumentID uuid.UUID
	Index      int
	URL        string
	State      models.ImageState
}

type TitleChanged struct{ Title string }

type MetadataChanged struct{ Article models.Article }

func (DocumentReplaced) event() {}
func (ImageChanged) event()     {}
func (TitleChanged) event()     {}
func (MetadataChanged) event()  {}
