// Package report renders scan results as text, JSON, YAML or CBOR.
package report

import (
	"errors"
	"fmt"
	"io"
	gomath "math"
	"strconv"

	"github.com/fxamacker/cbor/v2"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/lpmtscan/internal/config"
	"github.com/Faultbox/lpmtscan/pkg/formats"
)

// ErrUnknownFormat is returned for an output format with no renderer.
var ErrUnknownFormat = errors.New("unknown report format")

// Number is a float that survives JSON encoding when it is not finite.
// NaN and infinities are written as the strings "NaN", "+Inf" and "-Inf".
type Number float64

// MarshalJSON implements json.Marshaler.
func (n Number) MarshalJSON() ([]byte, error) {
	f := float64(n)
	switch {
	case gomath.IsNaN(f):
		return []byte(`"NaN"`), nil
	case gomath.IsInf(f, 1):
		return []byte(`"+Inf"`), nil
	case gomath.IsInf(f, -1):
		return []byte(`"-Inf"`), nil
	}
	return strconv.AppendFloat(nil, f, 'g', -1, 64), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *Number) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		s, err := strconv.Unquote(string(data))
		if err != nil {
			return err
		}
		data = []byte(s)
	}
	f, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return fmt.Errorf("decoding number %q: %w", data, err)
	}
	*n = Number(f)
	return nil
}

// Entry is one scanned slot.
type Entry struct {
	Index    int       `json:"index" yaml:"index" cbor:"index"`
	Offset   int       `json:"offset" yaml:"offset" cbor:"offset"`
	Layout   string    `json:"layout" yaml:"layout" cbor:"layout"`
	Matched  bool      `json:"matched" yaml:"matched" cbor:"matched"`
	Position [3]Number `json:"position" yaml:"position" cbor:"position"`
	Scale    [3]Number `json:"scale" yaml:"scale" cbor:"scale"`
	Rotation [4]Number `json:"rotation" yaml:"rotation" cbor:"rotation"`
	QuatNorm Number    `json:"quat_norm" yaml:"quat_norm" cbor:"quat_norm"`
	Valid    bool      `json:"valid" yaml:"valid" cbor:"valid"`
	Size     int       `json:"size" yaml:"size" cbor:"size"`
}

// Report is the serializable form of a scan.
type Report struct {
	ScanID         string  `json:"scan_id" yaml:"scan_id" cbor:"scan_id"`
	Source         string  `json:"source" yaml:"source" cbor:"source"`
	MarkerOffset   int     `json:"marker_offset" yaml:"marker_offset" cbor:"marker_offset"`
	DeclaredCount  uint32  `json:"declared_count" yaml:"declared_count" cbor:"declared_count"`
	DataOffset     int     `json:"data_offset" yaml:"data_offset" cbor:"data_offset"`
	Stop           string  `json:"stop" yaml:"stop" cbor:"stop"`
	BoundaryTag    string  `json:"boundary_tag,omitempty" yaml:"boundary_tag,omitempty" cbor:"boundary_tag,omitempty"`
	BoundaryOffset int     `json:"boundary_offset,omitempty" yaml:"boundary_offset,omitempty" cbor:"boundary_offset,omitempty"`
	Slots          int     `json:"slots" yaml:"slots" cbor:"slots"`
	Matched        int     `json:"matched" yaml:"matched" cbor:"matched"`
	Valid          int     `json:"valid" yaml:"valid" cbor:"valid"`
	Entries        []Entry `json:"entries" yaml:"entries" cbor:"entries"`
}

// New builds a report for a scan of source. With validOnly, entries that
// failed validation are left out of Entries but still counted in Slots and
// Matched.
func New(source string, res *formats.ScanResult, validOnly bool) *Report {
	rep := &Report{
		ScanID:        uuid.NewString(),
		Source:        source,
		MarkerOffset:  res.MarkerOffset,
		DeclaredCount: res.DeclaredCount,
		DataOffset:    res.DataOffset,
		Stop:          res.Stop.String(),
		Slots:         len(res.Entries),
		Matched:       res.Matched(),
		Valid:         res.ValidCount(),
		Entries:       make([]Entry, 0, len(res.Entries)),
	}
	if res.Stop == formats.StopBoundaryTag {
		rep.BoundaryTag = res.BoundaryTag
		rep.BoundaryOffset = res.BoundaryOffset
	}

	for _, e := range res.Entries {
		if validOnly && !e.Valid {
			continue
		}
		rep.Entries = append(rep.Entries, newEntry(e))
	}
	return rep
}

func newEntry(e formats.ParsedEntry) Entry {
	t := e.Transform
	return Entry{
		Index:    e.Index,
		Offset:   e.Offset,
		Layout:   e.Layout,
		Matched:  e.Matched,
		Position: [3]Number{Number(t.Position.X), Number(t.Position.Y), Number(t.Position.Z)},
		Scale:    [3]Number{Number(t.Scale.X), Number(t.Scale.Y), Number(t.Scale.Z)},
		Rotation: [4]Number{Number(t.Rotation.X), Number(t.Rotation.Y), Number(t.Rotation.Z), Number(t.Rotation.W)},
		QuatNorm: Number(e.QuatNorm),
		Valid:    e.Valid,
		Size:     e.Size,
	}
}

// Options selects the output encoding.
type Options struct {
	Format    string
	Precision int // Decimal places, text only
}

// Write renders rep to w.
func Write(w io.Writer, rep *Report, opts Options) error {
	switch opts.Format {
	case config.FormatText, "":
		return writeText(w, rep, opts.Precision)
	case config.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	case config.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(rep); err != nil {
			return err
		}
		return enc.Close()
	case config.FormatCBOR:
		return cborEncMode.NewEncoder(w).Encode(rep)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, opts.Format)
	}
}

// cborEncMode produces deterministic output.
var cborEncMode = func() cbor.EncMode {
	encOpts := cbor.EncOptions{
		Sort:          cbor.SortCanonical,
		IndefLength:   cbor.IndefLengthForbidden,
		NilContainers: cbor.NilContainerAsNull,
	}
	em, err := encOpts.EncMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create report CBOR encoder mode: %v", err))
	}
	return em
}()

// DecodeCBOR reads a report written with the CBOR format.
func DecodeCBOR(data []byte) (*Report, error) {
	var rep Report
	if err := cbor.Unmarshal(data, &rep); err != nil {
		return nil, fmt.Errorf("decoding CBOR report: %w", err)
	}
	return &rep, nil
}
