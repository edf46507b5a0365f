package discount

const (
	applesName         = "Apples"
	applesReason       = "10% off apples this week"
	soupName           = "Soup"
	breadName          = "Bread"
	soupBreadReasonFmt = "Half price bread with 2 tins of soup (applies to %d loaf/loaves)"
)
