package catalog

import (
	"fmt"
	"io"

	"github.com/terrakit/pathtiler/geo"
	"gopkg.in/yaml.v3"
)

// yamlTemplate and yamlSegment mirror the authoring format a map
// generator's asset pipeline would naturally emit: a flat, human-edited
// template/segment catalog file. Field names are lowerCamel to match the
// terse, unadorned YAML style used elsewhere in the corpus's config
// loaders.
type yamlTemplate struct {
	ID      int     `yaml:"id"`
	PickAny bool    `yaml:"pickAny"`
	Tiles   [][]int `yaml:"tiles"` // -1 marks a null (unpainted) cell
}

type yamlSegment struct {
	ID         int      `yaml:"id"`
	Start      string   `yaml:"start"`
	End        string   `yaml:"end"`
	Inner      []string `yaml:"inner"`
	TemplateID int      `yaml:"templateId"`
	Points     [][2]int `yaml:"points"`
}

type yamlCatalog struct {
	Templates []yamlTemplate `yaml:"templates"`
	Segments  []yamlSegment  `yaml:"segments"`
}

// LoadCatalogYAML decodes a template/segment catalog from YAML and
// assembles it into a validated, immutable *Set. It is a convenience
// loader for callers whose catalog lives on disk or is embedded as an
// asset; programmatic callers may instead build a *Set directly with
// NewSet.
func LoadCatalogYAML(r io.Reader) (*Set, error) {
	var doc yamlCatalog
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("catalog: decode yaml: %w", err)
	}

	templates := make([]*TerrainTemplate, 0, len(doc.Templates))
	for _, yt := range doc.Templates {
		tiles := make([][]TileCell, len(yt.Tiles))
		for r, row := range yt.Tiles {
			tiles[r] = make([]TileCell, len(row))
			for c, v := range row {
				if v < 0 {
					tiles[r][c] = TileCell{Present: false}
					continue
				}
				tiles[r][c] = TileCell{Index: v, Present: true}
			}
		}
		templates = append(templates, &TerrainTemplate{ID: yt.ID, PickAny: yt.PickAny, Tiles: tiles})
	}

	segments := make([]*TemplateSegment, 0, len(doc.Segments))
	for _, ys := range doc.Segments {
		points := make([]geo.CellVec, len(ys.Points))
		for i, p := range ys.Points {
			points[i] = geo.CellVec{X: p[0], Y: p[1]}
		}
		segments = append(segments, &TemplateSegment{
			ID:         ys.ID,
			Start:      ys.Start,
			End:        ys.End,
			Inner:      append([]string(nil), ys.Inner...),
			Points:     points,
			TemplateID: ys.TemplateID,
		})
	}

	return NewSet(templates, segments)
}
