package parser

// Visualization type tags recognized in model output.
const (
	VizTable      = "table"
	VizChart      = "chart"
	VizMetric     = "metric"
	VizComparison = "comparison"
)

// Visualization is a renderable artifact description: a tagged variant
// over table/chart/metric/comparison with a shape-specific data object.
type Visualization struct {
	Type        string         `json:"type"`
	Title       string         `json:"title,omitempty"`
	Description string         `json:"description,omitempty"`
	Data        map[string]any `json:"data,omitempty"`
}

// RecognizedType reports whether t is a known visualization variant tag.
func RecognizedType(t string) bool {
	switch t {
	case VizTable, VizChart, VizMetric, VizComparison:
		return true
	}
	return false
}

// decodeVisualization interprets a parsed JSON object as a visualization.
// Models emit both nested ({"type":..,"data":{..}}) and flat
// ({"type":..,"headers":..,"rows":..}) shapes; flat extras are folded
// into Data so the rendering layer sees one shape.
func decodeVisualization(obj map[string]any) (Visualization, bool) {
	typ, _ := obj["type"].(string)
	if !RecognizedType(typ) {
		return Visualization{}, false
	}

	v := Visualization{Type: typ}
	if title, ok := obj["title"].(string); ok {
		v.Title = title
	}
	if desc, ok := obj["description"].(string); ok {
		v.Description = desc
	}

	if data, ok := obj["data"].(map[string]any); ok {
		v.Data = data
		return v, true
	}

	data := make(map[string]any)
	for key, val := range obj {
		switch key {
		case "type", "title", "description":
			continue
		}
		data[key] = val
	}
	if len(data) > 0 {
		v.Data = data
	}
	return v, true
}

// decodeVisualizations converts a raw visualizations array, skipping
// entries that are not objects or carry an unknown tag.
func decodeVisualizations(raw []any) []Visualization {
	var out []Visualization
	for _, item := range raw {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if v, ok := decodeVisualization(obj); ok {
			out = append(out, v)
		}
	}
	return out
}
