// Package address encodes DNM ranges as persistent, tree-anchored
// addresses and decodes them back against a freshly built DNM of the same
// document.
package address

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/KWARC/llamapun/internal/dnm"
	"github.com/KWARC/llamapun/internal/doctree"
)

// Point is a byte offset relative to the start of a node's plain-text span.
type Point struct {
	Path   string `json:"path"`
	Offset int    `json:"offset"`
}

// Address locates a range by its two end points.
type Address struct {
	Start Point `json:"start"`
	End   Point `json:"end"`
}

// String renders a as path@start-end when both points share a node and as
// path@start;path@end otherwise.
func (a Address) String() string {
	if a.Start.Path == a.End.Path {
		return a.Start.Path + "@" + strconv.Itoa(a.Start.Offset) + "-" + strconv.Itoa(a.End.Offset)
	}
	return a.Start.String() + ";" + a.End.String()
}

func (p Point) String() string {
	return p.Path + "@" + strconv.Itoa(p.Offset)
}

// MarshalText implements encoding.TextMarshaler.
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Address) UnmarshalText(b []byte) error {
	parsed, err := Parse(string(b))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// Parse reads the string form produced by Address.String.
func Parse(s string) (Address, error) {
	g, err := addressParser.ParseString("", s)
	if err != nil {
		return Address{}, &ResolutionError{Address: s, Reason: err.Error()}
	}
	for _, pt := range []*pointGrammar{g.Start, g.End} {
		if pt == nil {
			continue
		}
		if bad := pt.Path.check(); bad != nil {
			return Address{}, &ResolutionError{Address: s, Step: bad.String(), Reason: "malformed step"}
		}
	}
	start := g.Start.point()
	if g.End != nil {
		return Address{Start: start, End: g.End.point()}, nil
	}
	return Address{Start: start, End: Point{Path: start.Path, Offset: *g.To}}, nil
}

// Encode anchors r to the nodes that own its first and last bytes, so the
// address survives edits elsewhere in the document.
func Encode(d *dnm.DNM, r dnm.Range) (Address, error) {
	if r.DNM() != d {
		return Address{}, dnm.ErrForeignRange
	}
	if !r.Valid() {
		return Address{}, fmt.Errorf("encode %s: %w", r, dnm.ErrInvalidRange)
	}
	if d.Len() == 0 {
		root := Point{Path: "/"}
		return Address{Start: root, End: root}, nil
	}

	startPos, endPos := r.Start, r.End-1
	if r.IsEmpty() {
		startPos = min(r.Start, d.Len()-1)
		endPos = startPos
	}
	start, err := point(d, startPos, r.Start)
	if err != nil {
		return Address{}, err
	}
	end, err := point(d, endPos, r.End)
	if err != nil {
		return Address{}, err
	}
	return Address{Start: start, End: end}, nil
}

// point anchors the absolute offset abs to the owner of byte pos.
func point(d *dnm.DNM, pos, abs int) (Point, error) {
	o, err := d.Owner(pos)
	if err != nil {
		return Point{}, err
	}
	span, ok := d.RangeOf(o.Node)
	if !ok {
		return Point{}, fmt.Errorf("owner %d of offset %d: %w", o.Node, pos, dnm.ErrUnmapped)
	}
	return Point{Path: PathOf(d.Tree(), o.Node), Offset: abs - span.Start}, nil
}

// EncodeNode addresses the whole span of n relative to n itself.
func EncodeNode(d *dnm.DNM, n doctree.NodeID) (Address, error) {
	span, ok := d.RangeOf(n)
	if !ok {
		return Address{}, fmt.Errorf("node %d: %w", n, dnm.ErrUnmapped)
	}
	path := PathOf(d.Tree(), n)
	return Address{Start: Point{path, 0}, End: Point{path, span.Len()}}, nil
}

// Decode resolves a against d. It fails with a *ResolutionError when a path
// no longer exists or an offset falls outside the node's current span.
func Decode(a Address, d *dnm.DNM) (dnm.Range, error) {
	start, err := resolvePoint(a, a.Start, d)
	if err != nil {
		return dnm.Range{}, err
	}
	end, err := resolvePoint(a, a.End, d)
	if err != nil {
		return dnm.Range{}, err
	}
	if end < start {
		return dnm.Range{}, &ResolutionError{Address: a.String(), Reason: fmt.Sprintf("end %d precedes start %d", end, start)}
	}
	r, err := d.Range(start, end)
	if err != nil {
		return dnm.Range{}, &ResolutionError{Address: a.String(), Reason: err.Error()}
	}
	return r, nil
}

func resolvePoint(a Address, p Point, d *dnm.DNM) (int, error) {
	n, err := Resolve(d.Tree(), p.Path)
	if err != nil {
		var re *ResolutionError
		if errors.As(err, &re) {
			re.Address = a.String()
		}
		return 0, err
	}
	span, ok := d.RangeOf(n)
	if !ok {
		return 0, &ResolutionError{Address: a.String(), Step: p.Path, Reason: "node has no text span"}
	}
	if p.Offset < 0 || p.Offset > span.Len() {
		return 0, &ResolutionError{
			Address: a.String(),
			Step:    p.Path,
			Reason:  fmt.Sprintf("offset %d outside span of length %d", p.Offset, span.Len()),
		}
	}
	return span.Start + p.Offset, nil
}

// DecodeTree builds a DNM of t with opts and decodes a against it. The
// returned range carries the new DNM.
func DecodeTree(a Address, t *doctree.Tree, opts dnm.Options) (dnm.Range, error) {
	d, err := dnm.Build(t, opts)
	if err != nil {
		return dnm.Range{}, err
	}
	return Decode(a, d)
}

// DecodeNode returns the node a single-node address is anchored to.
func DecodeNode(a Address, t *doctree.Tree) (doctree.NodeID, error) {
	if a.Start.Path != a.End.Path {
		return doctree.NoNode, &ResolutionError{Address: a.String(), Reason: "address spans more than one node"}
	}
	n, err := Resolve(t, a.Start.Path)
	if err != nil {
		var re *ResolutionError
		if errors.As(err, &re) {
			re.Address = a.String()
		}
		return doctree.NoNode, err
	}
	return n, nil
}
