package nestbox

// depthHues is cycled by tree depth, in degrees.
var depthHues = [...]float64{200, 20, 140, 80, 0, 260}

const (
	depthSaturation = 0.60
	depthLightness  = 0.55
	depthDarken     = 0.07 // lightness lost per level
	depthDarkenMax  = 3    // levels after which lightness stops decreasing
)

// ColorForDepth returns the deterministic color assigned to a box created at
// the given tree depth.
func ColorForDepth(depth int) Color {
	if depth < 0 {
		depth = 0
	}
	h := depthHues[depth%len(depthHues)] / 360
	l := depthLightness - float64(min(depth, depthDarkenMax))*depthDarken
	r, g, b := hslToRGB(h, depthSaturation, l)
	return Color{r, g, b}
}

// hslToRGB converts hue, saturation and lightness in [0, 1] to RGB in [0, 1].
func hslToRGB(h, s, l float64) (r, g, b float64) {
	if s == 0 {
		return l, l, l
	}
	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q
	return hueToRGB(p, q, h+1.0/3), hueToRGB(p, q, h), hueToRGB(p, q, h-1.0/3)
}

func hueToRGB(p, q, t float64) float64 {
	if t < 0 {
		t++
	}
	if t > 1 {
		t--
	}
	switch {
	case t < 1.0/6:
		return p + (q-p)*6*t
	case t < 0.5:
		return q
	case t < 2.0/3:
		return p + (q-p)*(2.0/3-t)*6
	default:
		return p
	}
}
