package document

import (
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"docuchat/backend/internal/model"
)

// separators is the boundary hierarchy the splitter descends through:
// paragraphs first, then lines, then words, then a hard character cut.
var separators = []string{"\n\n", "\n", " "}

// Splitter cuts documents into overlapping chunks of roughly chunkSize runes,
// preferring to break at natural text boundaries.
type Splitter struct {
	chunkSize int
	overlap   int
}

func NewSplitter(chunkSize, overlap int) *Splitter {
	if chunkSize <= 0 {
		chunkSize = 1000
	}
	if overlap < 0 || overlap >= chunkSize {
		overlap = 0
	}
	return &Splitter{chunkSize: chunkSize, overlap: overlap}
}

// Split cuts each document into chunks, carrying the source metadata through
// and recording where in the document each chunk starts.
func (s *Splitter) Split(docs []model.Document) []model.Chunk {
	var chunks []model.Chunk
	for _, doc := range docs {
		pieces := s.splitText(doc.Content, separators)

		searchFrom := 0
		for _, piece := range pieces {
			if strings.TrimSpace(piece) == "" {
				continue
			}
			start := searchFrom
			if idx := strings.Index(doc.Content[searchFrom:], piece); idx >= 0 {
				start = searchFrom + idx
				searchFrom = start + 1
			}
			chunks = append(chunks, model.Chunk{
				ID:         uuid.NewString(),
				SourceFile: doc.SourceFile,
				Page:       doc.Page,
				StartIndex: utf8.RuneCountInString(doc.Content[:start]),
				Content:    piece,
			})
		}
	}
	return chunks
}

// splitText breaks text on the first separator present in it, then packs the
// parts back into chunks no longer than chunkSize. Parts that are themselves
// oversized recurse into the finer separators.
func (s *Splitter) splitText(text string, seps []string) []string {
	if utf8.RuneCountInString(text) <= s.chunkSize {
		return []string{text}
	}

	sep := ""
	var finer []string
	for i, candidate := range seps {
		if strings.Contains(text, candidate) {
			sep = candidate
			finer = seps[i+1:]
			break
		}
	}
	if sep == "" {
		return s.hardSplit(text)
	}

	sepLen := utf8.RuneCountInString(sep)
	parts := strings.Split(text, sep)

	var (
		out     []string
		current []string
		curLen  int
		grown   bool // a part was added since the last emit
	)

	emit := func(keepOverlap bool) {
		if len(current) == 0 {
			return
		}
		if grown {
			out = append(out, strings.Join(current, sep))
		}
		if !keepOverlap {
			current = nil
			curLen = 0
			grown = false
			return
		}
		// Retain a tail of parts up to the overlap size so consecutive
		// chunks share context.
		var kept []string
		keptLen := 0
		for i := len(current) - 1; i >= 0; i-- {
			add := utf8.RuneCountInString(current[i])
			if keptLen > 0 {
				add += sepLen
			}
			if keptLen+add > s.overlap {
				break
			}
			kept = append(kept, current[i])
			keptLen += add
		}
		for i, j := 0, len(kept)-1; i < j; i, j = i+1, j-1 {
			kept[i], kept[j] = kept[j], kept[i]
		}
		current = kept
		curLen = keptLen
		grown = false
	}

	for _, part := range parts {
		partLen := utf8.RuneCountInString(part)

		if partLen > s.chunkSize {
			emit(false)
			if len(finer) == 0 {
				out = append(out, s.hardSplit(part)...)
			} else {
				out = append(out, s.splitText(part, finer)...)
			}
			continue
		}

		add := partLen
		if len(current) > 0 {
			add += sepLen
		}
		if curLen+add > s.chunkSize && len(current) > 0 {
			emit(true)
			// Shrink the retained overlap until the new part fits.
			for len(current) > 0 && curLen+partLen+sepLen > s.chunkSize {
				removed := utf8.RuneCountInString(current[0])
				if len(current) > 1 {
					removed += sepLen
				}
				current = current[1:]
				curLen -= removed
			}
			add = partLen
			if len(current) > 0 {
				add += sepLen
			}
		}
		current = append(current, part)
		curLen += add
		grown = true
	}
	emit(false)

	return out
}

// hardSplit cuts text into fixed-size rune windows stepped by
// chunkSize-overlap. It is the fallback when no separator is left.
func (s *Splitter) hardSplit(text string) []string {
	runes := []rune(text)
	step := s.chunkSize - s.overlap
	if step <= 0 {
		step = s.chunkSize
	}

	var out []string
	for start := 0; start < len(runes); start += step {
		end := start + s.chunkSize
		if end > len(runes) {
			end = len(runes)
		}
		out = append(out, string(runes[start:end]))
		if end == len(runes) {
			break
		}
	}
	return out
}
