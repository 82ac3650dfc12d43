package markup

import "sort"

// Icon is a predefined logo that can be selected instead of uploading an image.
type Icon struct {
	Key   string
	Label string
	SVG   string
}

const svgOpen = `<svg xmlns="http://www.w3.org/2000/svg" width="24" height="24" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2" stroke-linecap="round" stroke-linejoin="round">`

var icons = map[string]Icon{
	"package": {Key: "package", Label: "Package", SVG: svgOpen +
		`<path d="M21 16V8a2 2 0 0 0-1-1.73l-7-4a2 2 0 0 0-2 0l-7 4A2 2 0 0 0 3 8v8a2 2 0 0 0 1 1.73l7 4a2 2 0 0 0 2 0l7-4A2 2 0 0 0 21 16z"></path>` +
		`<polyline points="3.27 6.96 12 12.01 20.73 6.96"></polyline><line x1="12" y1="22.08" x2="12" y2="12"></line></svg>`},
	"rocket": {Key: "rocket", Label: "Rocket", SVG: svgOpen +
		`<path d="M4.5 16.5c-1.5 1.26-2 5-2 5s3.74-.5 5-2c.71-.84.7-2.13-.09-2.91a2.18 2.18 0 0 0-2.91-.09z"></path>` +
		`<path d="m12 15-3-3a22 22 0 0 1 2-3.95A12.88 12.88 0 0 1 22 2c0 2.72-.78 7.5-6 11a22.35 22.35 0 0 1-4 2z"></path></svg>`},
	"star": {Key: "star", Label: "Star", SVG: svgOpen +
		`<polygon points="12 2 15.09 8.26 22 9.27 17 14.14 18.18 21.02 12 17.77 5.82 21.02 7 14.14 2 9.27 8.91 8.26 12 2"></polygon></svg>`},
	"heart": {Key: "heart", Label: "Heart", SVG: svgOpen +
		`<path d="M19 14c1.49-1.46 3-3.21 3-5.5A5.5 5.5 0 0 0 16.5 3c-1.76 0-3 .5-4.5 2-1.5-1.5-2.74-2-4.5-2A5.5 5.5 0 0 0 2 8.5c0 2.3 1.5 4.05 3 5.5l7 7Z"></path></svg>`},
	"zap": {Key: "zap", Label: "Zap", SVG: svgOpen +
		`<polygon points="13 2 3 14 12 14 11 22 21 10 12 10 13 2"></polygon></svg>`},
	"globe": {Key: "globe", Label: "Globe", SVG: svgOpen +
		`<circle cx="12" cy="12" r="10"></circle><line x1="2" y1="12" x2="22" y2="12"></line>` +
		`<path d="M12 2a15.3 15.3 0 0 1 4 10 15.3 15.3 0 0 1-4 10 15.3 15.3 0 0 1-4-10 15.3 15.3 0 0 1 4-10z"></path></svg>`},
	"code": {Key: "code", Label: "Code", SVG: svgOpen +
		`<polyline points="16 18 22 12 16 6"></polyline><polyline points="8 6 2 12 8 18"></polyline></svg>`},
}

// LookupIcon returns the predefined icon registered under key.
func LookupIcon(key string) (Icon, bool) {
	icon, ok := icons[key]
	return icon, ok
}

// Icons lists the predefined icons sorted by key.
func Icons() []Icon {
	out := make([]Icon, 0, len(icons))
	for _, icon := range icons {
		out = append(out, icon)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}
