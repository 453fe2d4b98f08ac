package catalog

import "fmt"

// Set is an immutable template/segment catalog: every TerrainTemplate and
// TemplateSegment a map generator has authored, keyed by stable integer
// id. It is the "template catalog" collaborator contract of spec.md §6.
type Set struct {
	templates          []*TerrainTemplate
	segments           []*TemplateSegment
	segmentsByTemplate map[int][]*TemplateSegment // TemplateID -> segments
}

// NewSet validates and wraps templates and segments into an immutable
// Set. Every segment's TemplateID must reference a template present in
// templates, and every segment must pass Validate.
func NewSet(templates []*TerrainTemplate, segments []*TemplateSegment) (*Set, error) {
	byID := make(map[int]*TerrainTemplate, len(templates))
	for _, tpl := range templates {
		byID[tpl.ID] = tpl
	}

	segByTpl := make(map[int][]*TemplateSegment, len(templates))
	for _, seg := range segments {
		if err := seg.Validate(); err != nil {
			return nil, err
		}
		if _, ok := byID[seg.TemplateID]; !ok {
			return nil, fmt.Errorf("catalog: segment %d references unknown template %d", seg.ID, seg.TemplateID)
		}
		segByTpl[seg.TemplateID] = append(segByTpl[seg.TemplateID], seg)
	}

	return &Set{
		templates:          append([]*TerrainTemplate(nil), templates...),
		segments:           append([]*TemplateSegment(nil), segments...),
		segmentsByTemplate: segByTpl,
	}, nil
}

// Templates returns every registered template, in catalog order.
func (s *Set) Templates() []*TerrainTemplate { return s.templates }

// Segments returns every registered segment, in catalog order.
func (s *Set) Segments() []*TemplateSegment { return s.segments }

// TemplateFor returns the TerrainTemplate a segment paints, looked up by
// the segment's TemplateID, or nil if no template in this Set has that
// id. The segment itself need not be registered in this Set.
func (s *Set) TemplateFor(seg *TemplateSegment) *TerrainTemplate {
	for _, tpl := range s.templates {
		if tpl.ID == seg.TemplateID {
			return tpl
		}
	}
	return nil
}

// PermittedSegments is the subset of a catalog a single search invocation
// may use, split by role: Start segments may begin a tiling, End segments
// may close it, Inner segments may appear anywhere in the interior. A
// segment may appear in more than one set (e.g. a straight segment usable
// both as Start and Inner).
type PermittedSegments struct {
	Start, Inner, End []*TemplateSegment
	Catalog           *Set
}

// NewPermittedSegments validates that every segment in start, inner, and
// end belongs to catalog, and returns the assembled PermittedSegments.
func NewPermittedSegments(cat *Set, start, inner, end []*TemplateSegment) (*PermittedSegments, error) {
	known := make(map[int]bool, len(cat.segments))
	for _, seg := range cat.segments {
		known[seg.ID] = true
	}
	for _, group := range [][]*TemplateSegment{start, inner, end} {
		for _, seg := range group {
			if !known[seg.ID] {
				return nil, fmt.Errorf("%w: segment %d", ErrUnknownSegment, seg.ID)
			}
		}
	}
	return &PermittedSegments{
		Start:   append([]*TemplateSegment(nil), start...),
		Inner:   append([]*TemplateSegment(nil), inner...),
		End:     append([]*TemplateSegment(nil), end...),
		Catalog: cat,
	}, nil
}

// All returns the union Start ∪ Inner ∪ End, each segment listed once.
func (p *PermittedSegments) All() []*TemplateSegment {
	seen := make(map[int]bool)
	var out []*TemplateSegment
	for _, group := range [][]*TemplateSegment{p.Start, p.Inner, p.End} {
		for _, seg := range group {
			if !seen[seg.ID] {
				seen[seg.ID] = true
				out = append(out, seg)
			}
		}
	}
	return out
}
