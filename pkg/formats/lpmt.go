package formats

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/lpmtscan/pkg/layout"
)

// Marker identifies the start of a transform block.
const Marker = "LPMT"

// UnparsedLayout is the layout name of a slot no descriptor matched.
const UnparsedLayout = "unparsed"

// resyncStep is how far the cursor moves past a slot nothing decodes.
const resyncStep = 4

// ErrBlockNotFound is returned when the buffer has no LPMT marker.
var ErrBlockNotFound = errors.New("LPMT block not found")

// StopReason says why a scan halted.
type StopReason int

const (
	StopEndOfBuffer StopReason = iota // Cursor reached the end of the data
	StopBoundaryTag                   // Next container tag found
	StopEntryLimit                    // ScanOptions.MaxEntries reached
)

// String returns a short name for the reason.
func (r StopReason) String() string {
	switch r {
	case StopEndOfBuffer:
		return "end_of_buffer"
	case StopBoundaryTag:
		return "boundary_tag"
	case StopEntryLimit:
		return "entry_limit"
	default:
		return fmt.Sprintf("unknown(%d)", int(r))
	}
}

// ParsedEntry is one slot of the block, matched or not.
type ParsedEntry struct {
	Index     int
	Offset    int
	Layout    string // Descriptor name, or UnparsedLayout
	Matched   bool
	Transform layout.Transform
	QuatNorm  float64
	Valid     bool
	Size      int // Bytes the cursor advanced past this slot
}

// ScanResult is the outcome of scanning one block.
type ScanResult struct {
	MarkerOffset   int
	DeclaredCount  uint32 // Advisory count from the block header
	DataOffset     int
	Entries        []ParsedEntry
	Stop           StopReason
	BoundaryTag    string // Set when Stop is StopBoundaryTag
	BoundaryOffset int
}

// Matched returns the number of entries a descriptor decoded.
func (r *ScanResult) Matched() int {
	n := 0
	for _, e := range r.Entries {
		if e.Matched {
			n++
		}
	}
	return n
}

// ValidCount returns the number of entries that passed validation.
func (r *ScanResult) ValidCount() int {
	n := 0
	for _, e := range r.Entries {
		if e.Valid {
			n++
		}
	}
	return n
}

// ScanOptions tunes a Scanner.
type ScanOptions struct {
	// MaxEntries stops the scan after this many slots. Zero means no limit.
	MaxEntries int
}

// Scanner walks an LPMT block and decodes every record it finds.
type Scanner struct {
	catalog *layout.Catalog
	log     *zap.Logger
	opts    ScanOptions
}

// ScannerOption configures a Scanner.
type ScannerOption func(*Scanner)

// WithCatalog replaces the default layout catalog. A nil catalog is ignored.
func WithCatalog(c *layout.Catalog) ScannerOption {
	return func(s *Scanner) {
		if c != nil {
			s.catalog = c
		}
	}
}

// WithLogger sets the logger used for scan diagnostics.
func WithLogger(l *zap.Logger) ScannerOption {
	return func(s *Scanner) {
		if l != nil {
			s.log = l
		}
	}
}

// WithOptions sets scan limits.
func WithOptions(o ScanOptions) ScannerOption {
	return func(s *Scanner) {
		s.opts = o
	}
}

// NewScanner creates a scanner over the default catalog.
func NewScanner(opts ...ScannerOption) *Scanner {
	s := &Scanner{
		catalog: layout.Default(),
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FindBlock returns the offset of the first marker in data.
func FindBlock(data []byte) (int, error) {
	idx := bytes.Index(data, []byte(Marker))
	if idx < 0 {
		return 0, ErrBlockNotFound
	}
	return idx, nil
}

// isBoundaryTag reports whether four uppercase ASCII letters start at off.
func isBoundaryTag(data []byte, off int) bool {
	if off < 0 || off+4 > len(data) {
		return false
	}
	for _, b := range data[off : off+4] {
		if b < 'A' || b > 'Z' {
			return false
		}
	}
	return true
}

// Scan locates the first block in data and decodes its records.
func (s *Scanner) Scan(data []byte) (*ScanResult, error) {
	markerOff, err := FindBlock(data)
	if err != nil {
		return nil, err
	}

	result := &ScanResult{
		MarkerOffset: markerOff,
		DataOffset:   markerOff + 8,
		Stop:         StopEndOfBuffer,
	}
	// A truncated header reads as zero entries.
	if countOff := markerOff + len(Marker); countOff+4 <= len(data) {
		result.DeclaredCount = binary.LittleEndian.Uint32(data[countOff:])
	}

	s.log.Debug("block found",
		zap.Int("offset", markerOff),
		zap.Uint32("declared_count", result.DeclaredCount))

	cursor := result.DataOffset
	for index := 0; cursor < len(data); index++ {
		if isBoundaryTag(data, cursor) {
			result.Stop = StopBoundaryTag
			result.BoundaryTag = string(data[cursor : cursor+4])
			result.BoundaryOffset = cursor
			s.log.Debug("boundary tag, stopping",
				zap.String("tag", result.BoundaryTag),
				zap.Int("offset", cursor))
			break
		}
		if s.opts.MaxEntries > 0 && index >= s.opts.MaxEntries {
			result.Stop = StopEntryLimit
			break
		}

		entry := s.decodeSlot(data, cursor, index)
		result.Entries = append(result.Entries, entry)
		cursor += entry.Size
	}

	return result, nil
}

func (s *Scanner) decodeSlot(data []byte, cursor, index int) ParsedEntry {
	m, ok := s.catalog.Match(data, cursor)
	if !ok {
		s.log.Debug("no layout matched",
			zap.Int("index", index),
			zap.Int("offset", cursor))
		return ParsedEntry{
			Index:  index,
			Offset: cursor,
			Layout: UnparsedLayout,
			Size:   resyncStep,
		}
	}

	return ParsedEntry{
		Index:     index,
		Offset:    cursor,
		Layout:    m.Name,
		Matched:   true,
		Transform: m.Transform,
		QuatNorm:  m.Transform.QuatNorm(),
		Valid:     m.Transform.Valid(),
		Size:      m.Size,
	}
}

// ParseLPMT scans data with the default scanner.
func ParseLPMT(data []byte) (*ScanResult, error) {
	return NewScanner().Scan(data)
}

// ParseLPMTFile reads and scans a file with the default scanner.
func ParseLPMTFile(path string) (*ScanResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading LPMT file: %w", err)
	}
	return ParseLPMT(data)
}
