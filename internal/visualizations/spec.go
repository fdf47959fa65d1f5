package visualizations

// Declarative chart specifications in Plotly's figure JSON shape. The server
// never renders charts; the browser feeds these specs to Plotly directly, so
// field names must match Plotly's wire format.

// ChartSpec is a complete figure: traces plus layout.
type ChartSpec struct {
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
}

// Trace is a single series within a figure.
type Trace struct {
	Type        string    `json:"type"`
	Name        string    `json:"name,omitempty"`
	X           []any     `json:"x,omitempty"`
	Y           []any     `json:"y,omitempty"`
	Labels      []string  `json:"labels,omitempty"`
	Values      []float64 `json:"values,omitempty"`
	Hole        float64   `json:"hole,omitempty"`
	Fill        string    `json:"fill,omitempty"`
	Orientation string    `json:"orientation,omitempty"`
	Text        []string  `json:"text,omitempty"`
	TextPos     string    `json:"textposition,omitempty"`
	Line        *Line     `json:"line,omitempty"`
	Marker      *Marker   `json:"marker,omitempty"`
}

// Line styles a scatter trace.
type Line struct {
	Color string  `json:"color,omitempty"`
	Width float64 `json:"width,omitempty"`
	Dash  string  `json:"dash,omitempty"`
}

// Marker styles bar and pie traces.
type Marker struct {
	Color  string   `json:"color,omitempty"`
	Colors []string `json:"colors,omitempty"`
}

// Layout holds figure-level presentation settings.
type Layout struct {
	Title       string       `json:"title,omitempty"`
	XAxis       *Axis        `json:"xaxis,omitempty"`
	YAxis       *Axis        `json:"yaxis,omitempty"`
	BarMode     string       `json:"barmode,omitempty"`
	HoverMode   string       `json:"hovermode,omitempty"`
	Template    string       `json:"template,omitempty"`
	Height      int          `json:"height,omitempty"`
	ShowLegend  *bool        `json:"showlegend,omitempty"`
	Shapes      []Shape      `json:"shapes,omitempty"`
	Annotations []Annotation `json:"annotations,omitempty"`
}

// Axis configures one axis.
type Axis struct {
	Title      string `json:"title,omitempty"`
	TickFormat string `json:"tickformat,omitempty"`
}

// Shape draws a figure-level shape, used for vertical reference lines.
type Shape struct {
	Type string  `json:"type"`
	X0   float64 `json:"x0"`
	X1   float64 `json:"x1"`
	Y0   float64 `json:"y0"`
	Y1   float64 `json:"y1"`
	XRef string  `json:"xref,omitempty"`
	YRef string  `json:"yref,omitempty"`
	Line *Line   `json:"line,omitempty"`
}

// Annotation places text on the figure.
type Annotation struct {
	Text      string  `json:"text"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	XRef      string  `json:"xref,omitempty"`
	YRef      string  `json:"yref,omitempty"`
	FontSize  int     `json:"font_size,omitempty"`
	ShowArrow bool    `json:"showarrow"`
}

// series converts numeric values for use as trace coordinates.
func series(values []float64) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

// verticalAgeLine marks an age milestone, e.g. retirement, on an age axis.
func verticalAgeLine(age int, label string) ([]Shape, []Annotation) {
	x := float64(age)
	shapes := []Shape{{
		Type: "line",
		X0:   x, X1: x,
		Y0: 0, Y1: 1,
		YRef: "paper",
		Line: &Line{Color: "gray", Dash: "dot"},
	}}
	annotations := []Annotation{{
		Text: label,
		X:    x, Y: 1,
		YRef:      "paper",
		ShowArrow: false,
	}}
	return shapes, annotations
}
