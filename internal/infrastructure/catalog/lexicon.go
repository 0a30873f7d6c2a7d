package catalog

import "regexp"

// SynonymGroup ties a niche to the phrases that mean the same thing
type SynonymGroup struct {
	Niche string
	Terms []string
}

// KeywordCluster routes loose vocabulary to a canonical niche
type KeywordCluster struct {
	Pattern *regexp.Regexp
	Niche   string
}

// Lexicon holds the static lookup tables used to resolve free-text niches.
// Slices keep resolution order deterministic.
type Lexicon struct {
	// Aliases is keyed by the space-removed normalized form; values are normalized niches
	Aliases map[string]string
	// Umbrellas are hard-coded umbrella categories checked before the popular-niche table
	Umbrellas []SynonymGroup
	// PopularSynonyms is the popular-niche synonym table; niches may lack seed data
	PopularSynonyms []SynonymGroup
	// Clusters are regex keyword clusters tried after substring containment
	Clusters []KeywordCluster
	// RelatedTerms are per-niche synonym clusters used to expand variations
	RelatedTerms map[string][]string
}

func cluster(pattern, niche string) KeywordCluster {
	return KeywordCluster{Pattern: regexp.MustCompile(`(?i)\b(?:` + pattern + `)`), Niche: niche}
}

// DefaultLexicon returns the built-in lookup tables
func DefaultLexicon() Lexicon {
	return Lexicon{
		Aliases: map[string]string{
			"hometheater":    "man cave",
			"hometheatre":    "man cave",
			"gameroom":       "man cave",
			"mancave":        "man cave",
			"homebar":        "man cave",
			"ebike":          "electric bikes",
			"ebikes":         "electric bikes",
			"hottub":         "hot tubs",
			"jacuzzi":        "hot tubs",
			"homegym":        "home gym",
			"garagegym":      "home gym",
			"golfsim":        "golf simulators",
			"outdoorkitchen": "outdoor kitchens",
			"espresso":       "espresso machines",
		},
		Umbrellas: []SynonymGroup{
			{Niche: "garage", Terms: []string{
				"automotive", "auto", "autos", "car", "cars", "vehicle", "vehicles",
				"truck", "trucks", "mechanic", "auto parts", "car care",
			}},
			{Niche: "home gym", Terms: []string{
				"fitness", "workout", "exercise", "gym", "weightlifting", "strength training",
			}},
			{Niche: "man cave", Terms: []string{
				"entertainment", "game room", "gaming room", "basement",
			}},
		},
		PopularSynonyms: []SynonymGroup{
			{Niche: "drones", Terms: []string{"quadcopters", "quadcopter", "uav", "uavs", "fpv", "fpv drones", "aerial photography", "drone"}},
			{Niche: "electric bikes", Terms: []string{"e bikes", "electric bicycles", "electric bicycle", "pedal assist bikes"}},
			{Niche: "hot tubs", Terms: []string{"spas", "jacuzzis", "swim spas", "whirlpool tubs"}},
			{Niche: "saunas", Terms: []string{"sauna", "infrared saunas", "steam rooms"}},
			{Niche: "kayaks", Terms: []string{"canoes", "paddle boards", "kayaking", "fishing kayaks"}},
			{Niche: "telescopes", Terms: []string{"astronomy", "stargazing", "astrophotography"}},
			{Niche: "espresso machines", Terms: []string{"coffee machines", "espresso makers", "coffee makers", "coffee"}},
			{Niche: "golf simulators", Terms: []string{"golf sims", "launch monitors", "indoor golf"}},
			{Niche: "fireplaces", Terms: []string{"electric fireplaces", "wood stoves", "fire places", "gas fireplaces"}},
			{Niche: "home gym", Terms: []string{"fitness equipment", "gym equipment", "treadmills"}},
			{Niche: "man cave", Terms: []string{"billiards", "pool tables", "arcade machines"}},
			{Niche: "backyard", Terms: []string{"patio furniture", "pergolas", "gazebos", "playsets"}},
			{Niche: "outdoor kitchens", Terms: []string{"grills", "bbq", "outdoor grills", "pizza ovens"}},
			{Niche: "yoga", Terms: []string{"yoga mats", "meditation cushions"}},
			{Niche: "pet supplies", Terms: []string{"dog beds", "cat trees"}},
		},
		Clusters: []KeywordCluster{
			cluster(`drone|uav|quadcopter|fpv`, "drones"),
			cluster(`garden|yard|patio|lawn|pergola|gazebo|deck`, "backyard"),
			cluster(`grill|bbq|barbecue|smoker|pizza oven`, "outdoor kitchens"),
			cluster(`spas?\b|jacuzzi|whirlpool`, "hot tubs"),
			cluster(`sauna|steam room|cold plunge`, "saunas"),
			cluster(`paddle|canoe|kayak`, "kayaks"),
			cluster(`astronom|stargaz|observatory`, "telescopes"),
			cluster(`coffee|espresso|latte|barista`, "espresso machines"),
			cluster(`golf`, "golf simulators"),
			cluster(`bike|bicycle|cycling|scooter`, "electric bikes"),
			cluster(`fire ?pit|fireplace|stove|hearth`, "fireplaces"),
			cluster(`billiard|arcade|pinball|bar stool|kegerator|theater|theatre`, "man cave"),
			cluster(`treadmill|dumbbell|barbell|squat rack|rowing machine`, "home gym"),
		},
		RelatedTerms: map[string][]string{
			"backyard":          {"patio", "outdoor living", "garden", "backyard furniture"},
			"man cave":          {"game room", "home bar", "home theater", "basement bar"},
			"drones":            {"quadcopters", "fpv drones", "camera drones"},
			"garage":            {"garage storage", "car lifts", "shop equipment"},
			"home gym":          {"fitness equipment", "strength training", "garage gym"},
			"hot tubs":          {"spas", "swim spas", "saunas"},
			"saunas":            {"infrared saunas", "steam showers", "cold plunge"},
			"kayaks":            {"fishing kayaks", "paddle boards", "canoes"},
			"telescopes":        {"astronomy", "astrophotography", "binoculars"},
			"espresso machines": {"coffee grinders", "espresso", "coffee equipment"},
			"electric bikes":    {"ebikes", "electric scooters", "cargo bikes"},
			"golf simulators":   {"launch monitors", "indoor golf", "golf nets"},
			"fireplaces":        {"fire pits", "wood stoves", "electric fireplaces"},
			"outdoor kitchens":  {"grills", "pizza ovens", "bbq islands"},
		},
	}
}
