package curve

import (
	"sort"

	"github.com/fogleman/ease"
)

// easings maps the easing names the authoring layer uses to their
// implementations.
var easings = map[string]func(float64) float64{
	"linear": ease.Linear,

	"easeIn":    ease.InQuad,
	"easeOut":   ease.OutQuad,
	"easeInOut": ease.InOutQuad,

	"cubicIn":    ease.InCubic,
	"cubicOut":   ease.OutCubic,
	"cubicInOut": ease.InOutCubic,

	"sineIn":    ease.InSine,
	"sineOut":   ease.OutSine,
	"sineInOut": ease.InOutSine,

	"expoIn":    ease.InExpo,
	"expoOut":   ease.OutExpo,
	"expoInOut": ease.InOutExpo,

	"backIn":    ease.InBack,
	"backOut":   ease.OutBack,
	"backInOut": ease.InOutBack,

	"elasticIn":    ease.InElastic,
	"elasticOut":   ease.OutElastic,
	"elasticInOut": ease.InOutElastic,

	"bounceIn":    ease.InBounce,
	"bounceOut":   ease.OutBounce,
	"bounceInOut": ease.InOutBounce,
}

// EasingNames returns the registered easing names, sorted, for validation
// error messages in the authoring layer.
func EasingNames() []string {
	names := make([]string, 0, len(easings))
	for name := range easings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
