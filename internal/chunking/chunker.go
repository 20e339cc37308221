// Package chunking splits raw document text into an ordered sequence of
// section-labeled chunks sized for evidence retrieval.
package chunking

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"
)

// Options controls chunk sizing.
type Options struct {
	// MaxChars is the hard upper bound on chunk length.
	MaxChars int
	// MinChars is the soft lower bound; once a buffer reaches it, chunk
	// boundaries are biased toward bullet and sentence ends.
	MinChars int
}

// DefaultOptions returns the standard chunk sizing.
func DefaultOptions() Options {
	return Options{MaxChars: 700, MinChars: 200}
}

// Chunk is one section-labeled slice of the source document.
type Chunk struct {
	Section string
	Text    string
}

// sectionHeading matches a known section heading isolated on its own line.
var sectionHeading = regexp.MustCompile(
	`(?i)\n\s*(?:experience|professional experience|leadership|education|skills|summary|highlights|accomplishments|projects|publications|speaking|press|media)\s*\n`)

// ChunkText splits raw text into ordered (section, chunk) pairs. It is a pure
// function of its input: empty or whitespace-only text yields no chunks, and
// exact-duplicate (section, text) pairs are dropped, preserving first-seen
// order.
func ChunkText(text string, opts Options) []Chunk {
	t := strings.TrimSpace(text)
	if t == "" {
		return nil
	}

	// Normalize line endings.
	t = strings.ReplaceAll(t, "\r\n", "\n")
	t = strings.ReplaceAll(t, "\r", "\n")

	// Split into rough sections on heading lines. Headings themselves are
	// consumed by the split; if none match, the whole text is one section.
	parts := sectionHeading.Split(t, -1)
	type section struct {
		name string
		text string
	}
	var sections []section
	if len(parts) == 1 {
		sections = []section{{name: "document", text: t}}
	} else {
		for i, p := range parts {
			p = strings.TrimSpace(p)
			if p == "" {
				continue
			}
			sections = append(sections, section{name: fmt.Sprintf("section_%d", i+1), text: p})
		}
	}

	var chunks []Chunk
	for _, sec := range sections {
		chunks = append(chunks, chunkSection(sec.name, sec.text, opts)...)
	}

	// Deduplicate exact (section, text) pairs by content hash.
	seen := make(map[string]struct{}, len(chunks))
	out := make([]Chunk, 0, len(chunks))
	for _, c := range chunks {
		h := ContentHash(c.Section, c.Text)
		if _, dup := seen[h]; dup {
			continue
		}
		seen[h] = struct{}{}
		out = append(out, c)
	}
	return out
}

// chunkSection accumulates non-empty lines into chunks of at most MaxChars,
// flushing eagerly at bullet or sentence ends once MinChars is reached.
// Oversized lines are hard-sliced into MaxChars pieces.
func chunkSection(name, text string, opts Options) []Chunk {
	var chunks []Chunk
	var buf []string
	bufLen := 0

	flush := func() {
		if len(buf) == 0 {
			return
		}
		chunk := strings.TrimSpace(strings.Join(buf, "\n"))
		if chunk != "" {
			chunks = append(chunks, Chunk{Section: name, Text: chunk})
		}
		buf = buf[:0]
		bufLen = 0
	}

	for _, raw := range strings.Split(text, "\n") {
		ln := strings.TrimSpace(raw)
		if ln == "" {
			continue
		}

		runes := []rune(ln)
		if len(runes) > opts.MaxChars {
			flush()
			for i := 0; i < len(runes); i += opts.MaxChars {
				end := i + opts.MaxChars
				if end > len(runes) {
					end = len(runes)
				}
				piece := strings.TrimSpace(string(runes[i:end]))
				if piece != "" {
					chunks = append(chunks, Chunk{Section: name, Text: piece})
				}
			}
			continue
		}

		if bufLen+len(runes)+1 > opts.MaxChars {
			flush()
		}

		buf = append(buf, ln)
		bufLen += len(runes) + 1

		if bufLen >= opts.MinChars && (startsWithBullet(ln) || strings.HasSuffix(ln, ".")) {
			flush()
		}
	}
	flush()

	return chunks
}

func startsWithBullet(line string) bool {
	return strings.HasPrefix(line, "-") || strings.HasPrefix(line, "•") || strings.HasPrefix(line, "*")
}

// ContentHash is the deduplication key for an evidence chunk, derived from
// its section label and text.
func ContentHash(section, text string) string {
	sum := sha256.Sum256([]byte(section + "\n" + text))
	return hex.EncodeToString(sum[:])
}
