package chart

// Defaults is the read-only option table consulted before a Spec is
// compiled. It is passed explicitly to the compiler; nothing mutates it.
type Defaults struct {
	BaseURL         string   `json:"base_url" yaml:"base_url"`
	Type            string   `json:"type" yaml:"type"`
	Encoding        Scheme   `json:"encoding" yaml:"encoding"`
	Format          string   `json:"format" yaml:"format"`
	Width           int      `json:"width" yaml:"width"`
	Height          int      `json:"height" yaml:"height"`
	MinValue        Limit    `json:"min_value" yaml:"min_value"`
	MaxValue        Limit    `json:"max_value" yaml:"max_value"`
	MapDefaultColor string   `json:"map_default_color" yaml:"map_default_color"`
	MapColors       []string `json:"map_colors" yaml:"map_colors"`
	MaxURLLength    int      `json:"max_url_length" yaml:"max_url_length"`
}

// BuiltinDefaults returns the defaults used when no table is configured.
func BuiltinDefaults() Defaults {
	return Defaults{
		BaseURL:         "https://chart.googleapis.com/chart?",
		Type:            "pie3D",
		Encoding:        SchemeText,
		Format:          "png",
		Width:           400,
		Height:          200,
		MinValue:        Fixed(0),
		MaxValue:        Fixed(100),
		MapDefaultColor: "bebebe",
		MapColors:       []string{"blue", "red"},
		MaxURLLength:    2048,
	}
}

// Merge fills every zero field of d from fallback.
func (d Defaults) Merge(fallback Defaults) Defaults {
	if d.BaseURL == "" {
		d.BaseURL = fallback.BaseURL
	}
	if d.Type == "" {
		d.Type = fallback.Type
	}
	if d.Encoding == "" {
		d.Encoding = fallback.Encoding
	}
	if d.Format == "" {
		d.Format = fallback.Format
	}
	if d.Width == 0 {
		d.Width = fallback.Width
	}
	if d.Height == 0 {
		d.Height = fallback.Height
	}
	d.MinValue = d.MinValue.Or(fallback.MinValue)
	d.MaxValue = d.MaxValue.Or(fallback.MaxValue)
	if d.MapDefaultColor == "" {
		d.MapDefaultColor = fallback.MapDefaultColor
	}
	if len(d.MapColors) == 0 {
		d.MapColors = fallback.MapColors
	}
	if d.MaxURLLength == 0 {
		d.MaxURLLength = fallback.MaxURLLength
	}
	return d
}

// Apply returns a copy of s with unset top-level fields taken from d.
func (d Defaults) Apply(s Spec) Spec {
	if s.Type == "" {
		s.Type = d.Type
	}
	if s.Encoding == "" {
		s.Encoding = d.Encoding
	}
	if s.Format == "" {
		s.Format = d.Format
	}
	if s.Width == 0 {
		s.Width = d.Width
	}
	if s.Height == 0 {
		s.Height = d.Height
	}
	s.MinValue = s.MinValue.Or(d.MinValue)
	s.MaxValue = s.MaxValue.Or(d.MaxValue)
	if s.Map != nil {
		m := *s.Map
		if m.DefaultColor == "" {
			m.DefaultColor = d.MapDefaultColor
		}
		if len(m.Colors) == 0 {
			m.Colors = append([]string(nil), d.MapColors...)
		}
		s.Map = &m
	}
	return s
}
