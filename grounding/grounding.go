package grounding

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoCitations is returned when a response carries no citations at all.
	ErrNoCitations = errors.New("response carries no citations")
	// ErrUnknownSource is returned when a citation names a source absent from
	// the corpus.
	ErrUnknownSource = errors.New("cited source not found in corpus")
	// ErrQuoteNotFound is returned when the quoted text does not occur
	// verbatim in its source. This is the hallucination case.
	ErrQuoteNotFound = errors.New("quote does not exist in cited source")
	// ErrSpanMismatch is returned when the [Start:End) span of the source does
	// not reproduce the quote.
	ErrSpanMismatch = errors.New("span indices do not match the quote text")
)

// Citation points at a verbatim span of one corpus source. Start and End are
// byte offsets into the source, half-open.
type Citation struct {
	SourceID string `json:"source_id"`
	Quote    string `json:"quote"`
	Start    int    `json:"start_idx"`
	End      int    `json:"end_idx"`
}

// Response is an answer together with the citations that ground it.
type Response struct {
	Answer    string     `json:"answer"`
	Citations []Citation `json:"citations"`
}

// Corpus maps source IDs to their full text.
type Corpus map[string]string

// Cite builds a Citation for the first occurrence of quote in the named
// source, computing the span offsets.
func (c Corpus) Cite(sourceID, quote string) (Citation, error) {
	content, ok := c[sourceID]
	if !ok {
		return Citation{}, fmt.Errorf("source %s: %w", sourceID, ErrUnknownSource)
	}
	idx := strings.Index(content, quote)
	if idx < 0 {
		return Citation{}, fmt.Errorf("source %s: %w", sourceID, ErrQuoteNotFound)
	}
	return Citation{
		SourceID: sourceID,
		Quote:    quote,
		Start:    idx,
		End:      idx + len(quote),
	}, nil
}

// VerifyCitation checks a single citation against the corpus: the source must
// exist, the quote must occur verbatim in it, and the span must reproduce the
// quote exactly.
func (c Corpus) VerifyCitation(cit Citation) error {
	content, ok := c[cit.SourceID]
	if !ok {
		return fmt.Errorf("source %s: %w", cit.SourceID, ErrUnknownSource)
	}
	if !strings.Contains(content, cit.Quote) {
		return fmt.Errorf("source %s, quote %q: %w", cit.SourceID, cit.Quote, ErrQuoteNotFound)
	}
	if cit.Start < 0 || cit.End > len(content) || cit.Start > cit.End {
		return fmt.Errorf("source %s, span [%d:%d): %w", cit.SourceID, cit.Start, cit.End, ErrSpanMismatch)
	}
	if content[cit.Start:cit.End] != cit.Quote {
		return fmt.Errorf("source %s, span [%d:%d): %w", cit.SourceID, cit.Start, cit.End, ErrSpanMismatch)
	}
	return nil
}

// Verify checks that the response is grounded: at least one citation, and
// every citation valid against the corpus. It fails on the first bad citation.
func (c Corpus) Verify(resp Response) error {
	if len(resp.Citations) == 0 {
		return ErrNoCitations
	}
	for _, cit := range resp.Citations {
		if err := c.VerifyCitation(cit); err != nil {
			return err
		}
	}
	return nil
}
