// Package protocol implements the wire format the MST server speaks:
// line-oriented UTF-8 requests in, length-prefixed UTF-8 replies out.
package protocol

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Aharonba/mstnet/internal/mst"
)

// MaxCommandBytes is the largest single read the connection handler
// tolerates per command; the protocol inherits this limit rather than
// supporting arbitrarily long input (spec.md §9).
const MaxCommandBytes = 1023

// Kind tags which command a Request carries.
type Kind int

const (
	KindUnknown Kind = iota
	KindNewGraph
	KindAddEdge
	KindRemoveEdge
	KindSolveMST
)

// Request is a parsed, typed command. Only the fields relevant to Kind
// are populated.
type Request struct {
	Kind      Kind
	N         int
	I, J, W   int
	Algorithm string
}

// ErrUnknownCommand is returned by Parse for any line whose first token
// is not one of NewGraph/AddEdge/RemoveEdge/SolveMST. Per spec.md §4.4
// the caller logs and drops it silently — no reply is sent.
var ErrUnknownCommand = fmt.Errorf("unknown command")

// Parse tokenises one line on whitespace and produces a typed Request.
// Numeric arguments are not range-checked; a token strconv.Atoi cannot
// parse, or a wrong argument count, is returned to the caller as an
// error rather than papered over.
func Parse(line []byte) (Request, error) {
	fields := strings.Fields(string(bytes.TrimSpace(line)))
	if len(fields) == 0 {
		return Request{}, ErrUnknownCommand
	}

	switch fields[0] {
	case "NewGraph":
		if len(fields) != 2 {
			return Request{}, fmt.Errorf("NewGraph wants 1 argument, got %d", len(fields)-1)
		}
		n, err := strconv.Atoi(fields[1])
		if err != nil {
			return Request{}, fmt.Errorf("NewGraph: %w", err)
		}
		return Request{Kind: KindNewGraph, N: n}, nil

	case "AddEdge":
		if len(fields) != 4 {
			return Request{}, fmt.Errorf("AddEdge wants 3 arguments, got %d", len(fields)-1)
		}
		i, err := strconv.Atoi(fields[1])
		if err != nil {
			return Request{}, fmt.Errorf("AddEdge: %w", err)
		}
		j, err := strconv.Atoi(fields[2])
		if err != nil {
			return Request{}, fmt.Errorf("AddEdge: %w", err)
		}
		w, err := strconv.Atoi(fields[3])
		if err != nil {
			return Request{}, fmt.Errorf("AddEdge: %w", err)
		}
		return Request{Kind: KindAddEdge, I: i, J: j, W: w}, nil

	case "RemoveEdge":
		if len(fields) != 3 {
			return Request{}, fmt.Errorf("RemoveEdge wants 2 arguments, got %d", len(fields)-1)
		}
		i, err := strconv.Atoi(fields[1])
		if err != nil {
			return Request{}, fmt.Errorf("RemoveEdge: %w", err)
		}
		j, err := strconv.Atoi(fields[2])
		if err != nil {
			return Request{}, fmt.Errorf("RemoveEdge: %w", err)
		}
		return Request{Kind: KindRemoveEdge, I: i, J: j}, nil

	case "SolveMST":
		if len(fields) != 2 {
			return Request{}, fmt.Errorf("SolveMST wants 1 argument, got %d", len(fields)-1)
		}
		return Request{Kind: KindSolveMST, Algorithm: fields[1]}, nil

	default:
		return Request{}, ErrUnknownCommand
	}
}

// Frame prepends a 4-byte little-endian signed length to body and
// returns the complete wire reply, per spec.md §6.
func Frame(body string) []byte {
	buf := make([]byte, 4+len(body))
	binary.LittleEndian.PutUint32(buf[:4], uint32(int32(len(body))))
	copy(buf[4:], body)
	return buf
}

// FrameError builds the framed reply for an unsupported algorithm name.
func FrameError(msg string) []byte {
	return Frame(fmt.Sprintf("Error: %s\n", msg))
}

// UnsupportedAlgorithmReply is the exact framed reply spec.md §7 requires
// when SolveMST names an algorithm the solver dispatch rejects.
var UnsupportedAlgorithmReply = FrameError("Unsupported MST algorithm")

// EdgeLines renders one "Edge from <u> to <v> with weight <w>" line per
// MST edge, in the order edges were produced by the solver.
func EdgeLines(edges []mst.Edge) string {
	var b strings.Builder
	for _, e := range edges {
		fmt.Fprintf(&b, "Edge from %d to %d with weight %d\n", e.From, e.To, e.Weight)
	}
	return b.String()
}

// LFBody builds the short LF-mode reply body: "MST result:" followed by
// the edge list, per spec.md §6.
func LFBody(edges []mst.Edge) string {
	var b strings.Builder
	b.WriteString("MST result:\n")
	b.WriteString(EdgeLines(edges))
	return b.String()
}

// ReadFrame is Frame's inverse: it reads the 4-byte length prefix and
// the body it describes from r, blocking until both arrive. Clients use
// this to decode a SolveMST reply off the wire.
func ReadFrame(r io.Reader) (string, error) {
	header := make([]byte, 4)
	if _, err := io.ReadFull(r, header); err != nil {
		return "", fmt.Errorf("read frame header: %w", err)
	}
	length := int32(binary.LittleEndian.Uint32(header))
	if length < 0 {
		return "", fmt.Errorf("read frame: negative length %d", length)
	}
	body := make([]byte, length)
	if _, err := io.ReadFull(r, body); err != nil {
		return "", fmt.Errorf("read frame body: %w", err)
	}
	return string(body), nil
}
