package document

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	apperrors "github.com/brieflyhq/briefly/errors"
	"github.com/brieflyhq/briefly/pkg/docx"
)

// Kind is the type of document to assemble
type Kind string

const (
	KindProposal Kind = "proposal"
	KindContract Kind = "contract"
)

var kindHeadings = map[Kind]string{
	KindProposal: "Proposal",
	KindContract: "Contract",
}

// Section is one meeting's contribution to the document: its summary text
// and its proposal items, already consolidated upstream.
type Section struct {
	Summary       string
	ProposalItems []string
}

// Document is an assembled artifact ready for download
type Document struct {
	Filename string
	Content  []byte
}

// Assembler renders consolidated sections into a word-processor document.
// It is pure: assembling never touches stored meetings.
type Assembler struct {
	logger *zap.Logger
}

// NewAssembler constructs a document assembler
func NewAssembler(logger *zap.Logger) *Assembler {
	return &Assembler{logger: logger}
}

// Assemble renders the sections, in order, into a .docx byte stream. The
// layout is fixed: title, client name, kind heading, then an Overall Summary
// block and a bulleted Proposal Items block. Sections without any content
// are skipped; if nothing remains the call fails with no artifact produced.
func (a *Assembler) Assemble(kind Kind, title, clientName string, sections []Section) (*Document, error) {
	heading, ok := kindHeadings[kind]
	if !ok {
		return nil, apperrors.ErrUnsupportedDocumentType(string(kind))
	}

	var summaries []string
	var items []string
	for _, s := range sections {
		if strings.TrimSpace(s.Summary) != "" {
			summaries = append(summaries, strings.TrimSpace(s.Summary))
		}
		for _, item := range s.ProposalItems {
			if strings.TrimSpace(item) != "" {
				items = append(items, renderBullet(item))
			}
		}
	}
	if len(summaries) == 0 && len(items) == 0 {
		return nil, apperrors.ErrNothingToAssemble()
	}

	b := docx.NewBuilder()
	b.AddHeading(title)
	b.AddParagraph(clientName)
	b.AddBlankLine()
	b.AddHeading(heading)
	b.AddBlankLine()
	b.AddHeading("Overall Summary")
	for _, s := range summaries {
		b.AddParagraph(s)
	}
	b.AddBlankLine()
	b.AddHeading("Proposal Items")
	for _, item := range items {
		b.AddParagraph(item)
	}

	content, err := b.Bytes()
	if err != nil {
		return nil, apperrors.ErrInternal(fmt.Errorf("failed to render document: %w", err))
	}

	a.logger.Info("document assembled",
		zap.String("kind", string(kind)),
		zap.String("title", title),
		zap.Int("sections", len(sections)),
		zap.Int("items", len(items)),
	)

	return &Document{
		Filename: title + ".docx",
		Content:  content,
	}, nil
}

// renderBullet strips a leading bullet marker, if any, and applies exactly
// one. "- Foo" and "Foo" both render as "- Foo".
func renderBullet(item string) string {
	item = strings.TrimSpace(item)
	item = strings.TrimPrefix(item, "- ")
	item = strings.TrimPrefix(item, "-")
	return "- " + strings.TrimSpace(item)
}
