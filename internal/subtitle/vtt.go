// Package subtitle converts platform caption tracks (WebVTT) into a
// normalized full transcript plus per-word timings. Parsing is pure:
// malformed cues are skipped, never fatal.
package subtitle

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/bnema/insightreel/internal/domain"
	"github.com/bnema/insightreel/internal/infrastructure/logger"
)

const arrow = "-->"

// inlineTagRe matches inline formatting tags (<c>, <i>, <00:00:01.000>,
// font color spans) that auto-generated captions embed in cue text.
var inlineTagRe = regexp.MustCompile(`<[^>]+>`)

// cueIndexRe matches standalone numeric cue identifiers.
var cueIndexRe = regexp.MustCompile(`^\d+$`)

type Result struct {
	Transcript string
	Words      []domain.WordTiming
}

// Parse scans a caption track line by line. Each line containing the
// timestamp arrow starts a cue: both timestamps are converted to
// seconds and the next line becomes the cue text. The cue's span is
// distributed evenly across its words, so word timings within a cue are
// contiguous and cover exactly [start, end].
func Parse(raw string) Result {
	lines := strings.Split(strings.ReplaceAll(raw, "\r", ""), "\n")

	var transcript strings.Builder
	var words []domain.WordTiming

	for i := 0; i < len(lines); i++ {
		if !strings.Contains(lines[i], arrow) {
			continue
		}

		start, end, ok := parseCueTiming(lines[i])
		if !ok {
			logger.Warn.Printf("skipping malformed cue timing line %d", i+1)
			continue
		}

		var text string
		if i+1 < len(lines) {
			text = cleanCueText(lines[i+1])
		}
		if text == "" {
			continue
		}

		if transcript.Len() > 0 {
			transcript.WriteByte(' ')
		}
		transcript.WriteString(text)

		fields := strings.Fields(text)
		perWord := 0.0
		if len(fields) > 0 {
			perWord = (end - start) / float64(len(fields))
		}
		for j, word := range fields {
			words = append(words, domain.WordTiming{
				Word:     word,
				StartSec: start + float64(j)*perWord,
				EndSec:   start + float64(j+1)*perWord,
			})
		}
	}

	return Result{Transcript: transcript.String(), Words: words}
}

// parseCueTiming splits a "<start> --> <end>" line. Both sides must be
// present; individual timestamp components that fail to parse are
// treated as zero rather than aborting the file.
func parseCueTiming(line string) (start, end float64, ok bool) {
	parts := strings.SplitN(line, arrow, 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	left := strings.TrimSpace(parts[0])
	// Position/alignment settings may trail the end timestamp.
	rightFields := strings.Fields(strings.TrimSpace(parts[1]))
	if left == "" || len(rightFields) == 0 {
		return 0, 0, false
	}
	return timestampSeconds(left), timestampSeconds(rightFields[0]), true
}

// timestampSeconds converts "H:MM:SS.mmm" to seconds. Unparsable
// components degrade to zero.
func timestampSeconds(ts string) float64 {
	parts := strings.Split(ts, ":")
	if len(parts) != 3 {
		return 0
	}
	secParts := strings.SplitN(parts[2], ".", 2)

	h := atoiOrZero(parts[0])
	m := atoiOrZero(parts[1])
	s := atoiOrZero(secParts[0])
	ms := 0
	if len(secParts) == 2 {
		ms = atoiOrZero(secParts[1])
	}

	return float64(h)*3600 + float64(m)*60 + float64(s) + float64(ms)/1000
}

func atoiOrZero(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

// cleanCueText strips inline tags and discards bare numeric index
// lines that can follow a timing line in malformed tracks.
func cleanCueText(line string) string {
	text := strings.TrimSpace(inlineTagRe.ReplaceAllString(line, ""))
	if cueIndexRe.MatchString(text) {
		return ""
	}
	return text
}
