// Package gdocs maintains the day's Google Doc: one document per calendar
// day inside a configured Drive folder, written in one of three modes.
package gdocs

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"google.golang.org/api/docs/v1"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"

	"github.com/pevans/sociald/config"
	"github.com/pevans/sociald/render"
)

const (
	folderMimeType = "application/vnd.google-apps.folder"
	docMimeType    = "application/vnd.google-apps.document"
)

// ErrUnknownMode indicates an unrecognized document write mode.
var ErrUnknownMode = errors.New("unknown document write mode")

// Mode selects how the day's document is written.
type Mode string

const (
	// ModeAppend inserts new content before the document's trailing
	// structural element, keeping prior content. Safest; the default.
	ModeAppend Mode = "append"
	// ModeOverwrite replaces the document body in place.
	ModeOverwrite Mode = "overwrite"
	// ModeRecreate deletes the day's document and creates a fresh one.
	ModeRecreate Mode = "recreate"
)

// ParseMode folds case and whitespace and validates a mode string.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeAppend:
		return ModeAppend, nil
	case ModeOverwrite:
		return ModeOverwrite, nil
	case ModeRecreate:
		return ModeRecreate, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

// Publisher writes the day's picks to Google Docs.
type Publisher struct {
	docs       *docs.Service
	drive      *drive.Service
	folderName string
	folderID   string
	mode       Mode
}

// NewPublisher builds Docs and Drive services from the OAuth credentials on
// disk and returns a Publisher configured from settings.
func NewPublisher(ctx context.Context, settings config.Settings) (*Publisher, error) {
	mode, err := ParseMode(settings.DocMode)
	if err != nil {
		return nil, err
	}

	client, err := oauthClient(ctx)
	if err != nil {
		return nil, err
	}

	docsSvc, err := docs.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("failed to create Docs service: %w", err)
	}
	driveSvc, err := drive.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("failed to create Drive service: %w", err)
	}

	return &Publisher{
		docs:       docsSvc,
		drive:      driveSvc,
		folderName: settings.GoogleFolderName,
		folderID:   settings.GoogleFolderID,
		mode:       mode,
	}, nil
}

// UpsertDaily writes the picks into today's document and returns its
// viewing URL. The target document is named from now's calendar date.
func (p *Publisher) UpsertDaily(picks []render.Pick, now time.Time) (string, error) {
	folderID, err := p.ensureFolder()
	if err != nil {
		return "", err
	}

	title := render.DocTitle(now)
	text := render.DocBody(render.DateString(now), picks)
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}

	switch p.mode {
	case ModeRecreate:
		return p.recreate(folderID, title, text)
	case ModeOverwrite:
		return p.writeExisting(folderID, title, text, true)
	default:
		return p.writeExisting(folderID, title, text, false)
	}
}

// ensureFolder returns the target Drive folder ID. A pre-configured ID
// wins; otherwise the folder is located by name and created when absent.
func (p *Publisher) ensureFolder() (string, error) {
	if p.folderID != "" {
		return p.folderID, nil
	}

	query := fmt.Sprintf("name = '%s' and mimeType = '%s' and trashed = false",
		p.folderName, folderMimeType)
	list, err := p.drive.Files.List().Q(query).Spaces("drive").Fields("files(id, name)").Do()
	if err != nil {
		return "", fmt.Errorf("failed to search for folder: %w", err)
	}
	if len(list.Files) > 0 {
		return list.Files[0].Id, nil
	}

	folder, err := p.drive.Files.Create(&drive.File{
		Name:     p.folderName,
		MimeType: folderMimeType,
	}).Fields("id").Do()
	if err != nil {
		return "", fmt.Errorf("failed to create folder: %w", err)
	}
	return folder.Id, nil
}

// findDoc returns the document ID by title within a folder, or "" when the
// document does not exist.
func (p *Publisher) findDoc(folderID, title string) (string, error) {
	query := fmt.Sprintf("name = '%s' and '%s' in parents and mimeType = '%s' and trashed = false",
		title, folderID, docMimeType)
	list, err := p.drive.Files.List().Q(query).Spaces("drive").Fields("files(id, name)").Do()
	if err != nil {
		return "", fmt.Errorf("failed to search for document: %w", err)
	}
	if len(list.Files) > 0 {
		return list.Files[0].Id, nil
	}
	return "", nil
}

// createDoc creates a titled document and moves it into the folder.
func (p *Publisher) createDoc(folderID, title string) (string, error) {
	doc, err := p.docs.Documents.Create(&docs.Document{Title: title}).Do()
	if err != nil {
		return "", fmt.Errorf("failed to create document: %w", err)
	}

	// New documents land in the Drive root; re-parent into the folder.
	_, err = p.drive.Files.Update(doc.DocumentId, nil).
		AddParents(folderID).RemoveParents("root").Do()
	if err != nil {
		return "", fmt.Errorf("failed to move document into folder: %w", err)
	}

	return doc.DocumentId, nil
}

// recreate deletes the day's document if present, creates a fresh one, and
// inserts the text at the start.
func (p *Publisher) recreate(folderID, title, text string) (string, error) {
	existing, err := p.findDoc(folderID, title)
	if err != nil {
		return "", err
	}
	if existing != "" {
		if err := p.drive.Files.Delete(existing).Do(); err != nil {
			return "", fmt.Errorf("failed to delete existing document: %w", err)
		}
	}

	docID, err := p.createDoc(folderID, title)
	if err != nil {
		return "", err
	}

	if err := p.batchUpdate(docID, insertAt(1, text)); err != nil {
		return "", err
	}
	return docURL(docID), nil
}

// writeExisting locates or creates the day's document and writes the text,
// either replacing the body (overwrite) or inserting before the trailing
// structural element (append).
func (p *Publisher) writeExisting(folderID, title, text string, overwrite bool) (string, error) {
	docID, err := p.findDoc(folderID, title)
	if err != nil {
		return "", err
	}
	if docID == "" {
		docID, err = p.createDoc(folderID, title)
		if err != nil {
			return "", err
		}
	}

	doc, err := p.docs.Documents.Get(docID).Do()
	if err != nil {
		return "", fmt.Errorf("failed to fetch document: %w", err)
	}
	var content []*docs.StructuralElement
	if doc.Body != nil {
		content = doc.Body.Content
	}

	var requests []*docs.Request
	if overwrite {
		deleteEnd := overwriteDeleteEnd(content)
		requests = append(requests, &docs.Request{
			DeleteContentRange: &docs.DeleteContentRangeRequest{
				Range: &docs.Range{StartIndex: 1, EndIndex: deleteEnd},
			},
		})
		requests = append(requests, insertAt(1, text))
	} else {
		requests = append(requests, insertAt(appendInsertIndex(content), text))
	}

	if err := p.batchUpdate(docID, requests...); err != nil {
		return "", err
	}
	return docURL(docID), nil
}

// batchUpdate applies a batch of content mutations to a document.
func (p *Publisher) batchUpdate(docID string, requests ...*docs.Request) error {
	_, err := p.docs.Documents.BatchUpdate(docID, &docs.BatchUpdateDocumentRequest{
		Requests: requests,
	}).Do()
	if err != nil {
		return fmt.Errorf("failed to update document: %w", err)
	}
	return nil
}

// insertAt builds an insert-text request at the given body index.
func insertAt(index int64, text string) *docs.Request {
	return &docs.Request{
		InsertText: &docs.InsertTextRequest{
			Location: &docs.Location{Index: index},
			Text:     text,
		},
	}
}

// appendInsertIndex computes where appended text goes: just before the
// trailing structural element's closing newline, never below index 1.
func appendInsertIndex(content []*docs.StructuralElement) int64 {
	if len(content) == 0 {
		return 1
	}
	index := content[len(content)-1].EndIndex - 1
	if index < 1 {
		return 1
	}
	return index
}

// overwriteDeleteEnd computes a conservative end for the body delete range.
// With two or more structural elements the range stops at the last
// element's start index, which leaves the trailing section break intact;
// otherwise it falls back to endIndex - 1. The result is never below 2, so
// an empty range is never issued.
func overwriteDeleteEnd(content []*docs.StructuralElement) int64 {
	const minEnd = 2
	if len(content) >= 2 {
		end := content[len(content)-1].StartIndex
		if end < minEnd {
			return minEnd
		}
		return end
	}

	var end int64 = minEnd
	if len(content) == 1 {
		end = content[0].EndIndex - 1
	}
	if end < minEnd {
		return minEnd
	}
	return end
}

// docURL returns the stable viewing URL for a document.
func docURL(docID string) string {
	return fmt.Sprintf("https://docs.google.com/document/d/%s/edit", docID)
}
