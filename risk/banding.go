package risk

// Band is the display classification of a score.
type Band struct {
	Level   string `json:"level"`
	Title   string `json:"title"`
	Message string `json:"message"`
	Color   string `json:"color"`
}

type threshold struct {
	upTo float64
	band Band
}

var fiveTier = []threshold{
	{10, Band{"very_low", "Very Low Risk", "Excellent conditions. Expect on-time departure.", "#4CAF50"}},
	{30, Band{"low", "Low Risk", "Good conditions, though minor weather factors are present.", "#8BC34A"}},
	{60, Band{"moderate", "Moderate Risk", "Weather/time of day factors present. Potential for minor delays.", "#FFB612"}},
	{80, Band{"high", "High Risk", "Delays are likely.", "#FF5722"}},
}

var fiveTierTop = Band{"very_high", "Very High Risk", "Severe weather. Significant delays or cancellations expected.", "#C60C30"}

var threeTier = []threshold{
	{10, Band{"low", "Good Conditions", "Skies look clear. On-time departure is highly likely.", "#4CAF50"}},
	{40, Band{"moderate", "Moderate Risk", "Weather conditions indicate a moderate delay risk. Keep an eye on winds.", "#FFB612"}},
}

var threeTierTop = Band{"high", "High Risk", "Significant weather impact detected. Expect cancellations or long delays.", "#C60C30"}

// Band5 classifies score with inclusive upper bounds at 10, 30, 60 and 80.
func Band5(score float64) Band {
	return classify(score, fiveTier, fiveTierTop)
}

// Band3 classifies score with inclusive upper bounds at 10 and 40.
func Band3(score float64) Band {
	return classify(score, threeTier, threeTierTop)
}

func classify(score float64, tiers []threshold, top Band) Band {
	for _, t := range tiers {
		if score <= t.upTo {
			return t.band
		}
	}
	return top
}

// GaugeSteps are the shaded background ranges of the five tier gauge.
var GaugeSteps = []struct {
	From, To float64
	Color    string
}{
	{0, 10, "#e8f5e9"},
	{10, 30, "#f1f8e9"},
	{30, 60, "#fff8e1"},
	{60, 80, "#fbe9e7"},
	{80, 100, "#ffebee"},
}
