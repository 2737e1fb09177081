package grounding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCorpus() Corpus {
	return Corpus{
		"doc_001": "Paracetamol is indicated for the relief of mild to moderate pain.",
		"doc_002": "Ibuprofen is a nonsteroidal anti-inflammatory drug.",
	}
}

func TestCiteComputesSpan(t *testing.T) {
	corpus := testCorpus()

	cit, err := corpus.Cite("doc_001", "relief of mild to moderate pain")
	require.NoError(t, err)

	assert.Equal(t, "doc_001", cit.SourceID)
	assert.Equal(t, cit.Quote, corpus["doc_001"][cit.Start:cit.End])
	require.NoError(t, corpus.VerifyCitation(cit))
}

func TestCiteUnknownSource(t *testing.T) {
	_, err := testCorpus().Cite("doc_999", "anything")
	assert.ErrorIs(t, err, ErrUnknownSource)
}

func TestCiteQuoteAbsent(t *testing.T) {
	_, err := testCorpus().Cite("doc_001", "cures all ailments")
	assert.ErrorIs(t, err, ErrQuoteNotFound)
}

func TestVerifyGroundedResponse(t *testing.T) {
	corpus := testCorpus()
	cit, err := corpus.Cite("doc_001", "mild to moderate pain")
	require.NoError(t, err)

	resp := Response{
		Answer:    "Paracetamol is used for treating moderate pain [1].",
		Citations: []Citation{cit},
	}
	assert.NoError(t, corpus.Verify(resp))
}

func TestVerifyRejectsEmptyCitations(t *testing.T) {
	err := testCorpus().Verify(Response{Answer: "Trust me."})
	assert.ErrorIs(t, err, ErrNoCitations)
}

func TestVerifyDetectsHallucinatedQuote(t *testing.T) {
	err := testCorpus().Verify(Response{
		Answer: "Paracetamol cures everything [1].",
		Citations: []Citation{{
			SourceID: "doc_001",
			Quote:    "cures everything",
			Start:    0,
			End:      16,
		}},
	})
	assert.ErrorIs(t, err, ErrQuoteNotFound)
}

func TestVerifyDetectsSpanMismatch(t *testing.T) {
	corpus := testCorpus()
	cit, err := corpus.Cite("doc_001", "moderate pain")
	require.NoError(t, err)

	cit.Start += 2 // quote still present, span now wrong
	err = corpus.Verify(Response{Answer: "x", Citations: []Citation{cit}})
	assert.ErrorIs(t, err, ErrSpanMismatch)
}

func TestVerifyRejectsOutOfRangeSpan(t *testing.T) {
	corpus := testCorpus()
	err := corpus.VerifyCitation(Citation{
		SourceID: "doc_002",
		Quote:    "Ibuprofen",
		Start:    0,
		End:      10_000,
	})
	assert.ErrorIs(t, err, ErrSpanMismatch)
}
