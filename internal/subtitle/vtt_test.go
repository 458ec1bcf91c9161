package subtitle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/insightreel/internal/domain"
)

func TestParse_SingleCue(t *testing.T) {
	res := Parse("00:00:01.000 --> 00:00:03.000\nhello world")

	assert.Equal(t, "hello world", res.Transcript)
	require.Len(t, res.Words, 2)
	assert.Equal(t, domain.WordTiming{Word: "hello", StartSec: 1.0, EndSec: 2.0}, res.Words[0])
	assert.Equal(t, domain.WordTiming{Word: "world", StartSec: 2.0, EndSec: 3.0}, res.Words[1])
}

func TestParse_FullFile(t *testing.T) {
	raw := "WEBVTT\nKind: captions\nLanguage: en\n\n" +
		"1\n00:00:00.000 --> 00:00:02.000\nfirst cue here\n\n" +
		"2\n00:00:02.000 --> 00:00:04.000\nsecond cue\n"

	res := Parse(raw)

	assert.Equal(t, "first cue here second cue", res.Transcript)
	assert.Len(t, res.Words, 5)
}

func TestParse_WordsContiguousWithinCue(t *testing.T) {
	res := Parse("00:00:10.000 --> 00:00:13.000\none two three")

	require.Len(t, res.Words, 3)
	for i := 0; i < len(res.Words)-1; i++ {
		assert.Equal(t, res.Words[i].EndSec, res.Words[i+1].StartSec,
			"word %d end must equal word %d start", i, i+1)
	}
	assert.Equal(t, 10.0, res.Words[0].StartSec)
	assert.Equal(t, 13.0, res.Words[len(res.Words)-1].EndSec)
}

func TestParse_StripsInlineTags(t *testing.T) {
	res := Parse("00:00:01.000 --> 00:00:02.000\n<c.colorCCCCCC>hello</c> <i>there</i>")

	assert.Equal(t, "hello there", res.Transcript)
	assert.Len(t, res.Words, 2)
}

func TestParse_CueWithOnlyTagsContributesNothing(t *testing.T) {
	res := Parse("00:00:01.000 --> 00:00:02.000\n<c></c>")

	assert.Empty(t, res.Transcript)
	assert.Empty(t, res.Words)
}

func TestParse_NumericIndexLineIsNotCueText(t *testing.T) {
	res := Parse("00:00:01.000 --> 00:00:02.000\n42")

	assert.Empty(t, res.Transcript)
	assert.Empty(t, res.Words)
}

func TestParse_MalformedCueDoesNotAbort(t *testing.T) {
	raw := "garbage -->\n\n" +
		"00:00:01.000 --> 00:00:02.000\nstill parsed\n"

	res := Parse(raw)

	assert.Equal(t, "still parsed", res.Transcript)
	assert.Len(t, res.Words, 2)
}

func TestParse_UnparsableTimestampDegradesToZero(t *testing.T) {
	res := Parse("xx:yy:zz.qqq --> 00:00:02.000\nhello")

	require.Len(t, res.Words, 1)
	assert.Equal(t, 0.0, res.Words[0].StartSec)
	assert.Equal(t, 2.0, res.Words[0].EndSec)
}

func TestParse_HourComponent(t *testing.T) {
	res := Parse("1:02:03.500 --> 1:02:04.500\nhi")

	require.Len(t, res.Words, 1)
	assert.InDelta(t, 3723.5, res.Words[0].StartSec, 1e-9)
	assert.InDelta(t, 3724.5, res.Words[0].EndSec, 1e-9)
}

func TestParse_PositionSettingsAfterEndTimestamp(t *testing.T) {
	res := Parse("00:00:01.000 --> 00:00:03.000 align:start position:0%\nhello world")

	assert.Equal(t, "hello world", res.Transcript)
	require.Len(t, res.Words, 2)
	assert.Equal(t, 3.0, res.Words[1].EndSec)
}

func TestParse_Empty(t *testing.T) {
	res := Parse("")

	assert.Empty(t, res.Transcript)
	assert.Empty(t, res.Words)
}

func TestParse_CarriageReturns(t *testing.T) {
	res := Parse("00:00:01.000 --> 00:00:03.000\r\nhello world\r\n")

	assert.Equal(t, "hello world", res.Transcript)
	assert.Len(t, res.Words, 2)
}
