package document

import (
	"archive/zip"
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apperrors "github.com/brieflyhq/briefly/errors"
)

func documentText(t *testing.T, content []byte) string {
	t.Helper()
	r, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	require.NoError(t, err)
	for _, f := range r.File {
		if f.Name == "word/document.xml" {
			rc, err := f.Open()
			require.NoError(t, err)
			defer rc.Close()
			data, err := io.ReadAll(rc)
			require.NoError(t, err)
			return string(data)
		}
	}
	t.Fatal("word/document.xml not found in archive")
	return ""
}

func TestAssembler_Assemble(t *testing.T) {
	a := NewAssembler(zap.NewNop())

	doc, err := a.Assemble(KindProposal, "Acme Rollout", "Acme Corp", []Section{
		{Summary: "Rollout agreed for Q2.", ProposalItems: []string{"Phase one by March", "Weekly calls"}},
		{Summary: "Budget fixed at $55k.", ProposalItems: []string{"Total price $55k"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "Acme Rollout.docx", doc.Filename)

	xml := documentText(t, doc.Content)
	assert.Contains(t, xml, "Acme Rollout")
	assert.Contains(t, xml, "Acme Corp")
	assert.Contains(t, xml, "Proposal")
	assert.Contains(t, xml, "Overall Summary")
	assert.Contains(t, xml, "Proposal Items")
	assert.Contains(t, xml, "- Phase one by March")
	assert.Contains(t, xml, "- Total price $55k")

	// Title before client name before summary before items.
	assert.Less(t, strings.Index(xml, "Acme Rollout"), strings.Index(xml, "Acme Corp"))
	assert.Less(t, strings.Index(xml, "Overall Summary"), strings.Index(xml, "Proposal Items"))
	assert.Less(t, strings.Index(xml, "Rollout agreed for Q2."), strings.Index(xml, "- Phase one by March"))
}

func TestAssembler_ContractKind(t *testing.T) {
	a := NewAssembler(zap.NewNop())

	doc, err := a.Assemble(KindContract, "Acme Terms", "Acme Corp", []Section{
		{Summary: "Terms agreed.", ProposalItems: nil},
	})
	require.NoError(t, err)
	assert.Contains(t, documentText(t, doc.Content), "Contract")
}

func TestAssembler_UnsupportedKind(t *testing.T) {
	a := NewAssembler(zap.NewNop())

	_, err := a.Assemble(Kind("invoice"), "Acme", "Acme Corp", []Section{{Summary: "x"}})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorCode_UNSUPPORTED_DOCUMENT_TYPE, apperrors.CodeOf(err))
}

func TestAssembler_NothingToAssemble(t *testing.T) {
	a := NewAssembler(zap.NewNop())

	_, err := a.Assemble(KindProposal, "Acme", "Acme Corp", nil)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorCode_NOTHING_TO_ASSEMBLE, apperrors.CodeOf(err))

	// Sections that are present but empty count as nothing.
	_, err = a.Assemble(KindProposal, "Acme", "Acme Corp", []Section{
		{Summary: "   ", ProposalItems: []string{"", "  "}},
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorCode_NOTHING_TO_ASSEMBLE, apperrors.CodeOf(err))
}

func TestAssembler_BulletMarkersNotDoubled(t *testing.T) {
	a := NewAssembler(zap.NewNop())

	doc, err := a.Assemble(KindProposal, "Acme", "Acme Corp", []Section{
		{Summary: "s", ProposalItems: []string{"- Foo", "Foo", "-Foo"}},
	})
	require.NoError(t, err)

	xml := documentText(t, doc.Content)
	assert.Equal(t, 3, strings.Count(xml, "- Foo"))
	assert.NotContains(t, xml, "- - Foo")
	assert.NotContains(t, xml, "--")
}
