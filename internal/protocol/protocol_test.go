package protocol

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aharonba/mstnet/internal/mst"
)

func TestParseNewGraph(t *testing.T) {
	req, err := Parse([]byte("NewGraph 7\n"))
	require.NoError(t, err)
	assert.Equal(t, Request{Kind: KindNewGraph, N: 7}, req)
}

func TestParseAddEdge(t *testing.T) {
	req, err := Parse([]byte("AddEdge 0 5 10"))
	require.NoError(t, err)
	assert.Equal(t, Request{Kind: KindAddEdge, I: 0, J: 5, W: 10}, req)
}

func TestParseRemoveEdge(t *testing.T) {
	req, err := Parse([]byte("RemoveEdge 3 6"))
	require.NoError(t, err)
	assert.Equal(t, Request{Kind: KindRemoveEdge, I: 3, J: 6}, req)
}

func TestParseSolveMST(t *testing.T) {
	req, err := Parse([]byte("SolveMST Kruskal"))
	require.NoError(t, err)
	assert.Equal(t, Request{Kind: KindSolveMST, Algorithm: "Kruskal"}, req)
}

func TestParseUnknownCommand(t *testing.T) {
	_, err := Parse([]byte("Frobnicate 1 2 3"))
	assert.ErrorIs(t, err, ErrUnknownCommand)
}

func TestParseEmptyLine(t *testing.T) {
	_, err := Parse([]byte("   \n"))
	assert.ErrorIs(t, err, ErrUnknownCommand)
}

func TestParseWrongArgumentCount(t *testing.T) {
	_, err := Parse([]byte("AddEdge 1 2"))
	assert.Error(t, err)
}

func TestFrameEncodesLittleEndianLength(t *testing.T) {
	body := "hello"
	framed := Frame(body)

	require.Len(t, framed, 4+len(body))
	length := binary.LittleEndian.Uint32(framed[:4])
	assert.EqualValues(t, len(body), length)
	assert.Equal(t, body, string(framed[4:]))
}

func TestEdgeLinesFormatsEachEdge(t *testing.T) {
	edges := []mst.Edge{
		{From: 0, To: 5, Weight: 10, ID: 0},
		{From: 3, To: 2, Weight: 12, ID: 1},
	}
	want := "Edge from 0 to 5 with weight 10\nEdge from 3 to 2 with weight 12\n"
	assert.Equal(t, want, EdgeLines(edges))
}

func TestLFBodyPrefixesMSTResult(t *testing.T) {
	edges := []mst.Edge{{From: 0, To: 1, Weight: 1, ID: 0}}
	body := LFBody(edges)
	assert.Equal(t, "MST result:\nEdge from 0 to 1 with weight 1\n", body)
}

func TestUnsupportedAlgorithmReplyMatchesSpecText(t *testing.T) {
	length := binary.LittleEndian.Uint32(UnsupportedAlgorithmReply[:4])
	body := string(UnsupportedAlgorithmReply[4:])
	assert.EqualValues(t, len(body), length)
	assert.Equal(t, "Error: Unsupported MST algorithm\n", body)
}

func TestReadFrameDecodesWhatFrameEncodes(t *testing.T) {
	encoded := Frame("MST result:\nEdge from 0 to 1 with weight 1\n")
	body, err := ReadFrame(bytes.NewReader(encoded))
	require.NoError(t, err)
	assert.Equal(t, "MST result:\nEdge from 0 to 1 with weight 1\n", body)
}

func TestReadFrameErrorsOnTruncatedBody(t *testing.T) {
	encoded := Frame("hello")
	_, err := ReadFrame(bytes.NewReader(encoded[:5]))
	assert.Error(t, err)
}
