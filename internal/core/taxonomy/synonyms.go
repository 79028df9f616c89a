package taxonomy

// synonyms maps folded alternate spellings, mostly English, to the
// canonical Turkish slug per taxonomy. A synonym is only honored when its
// target slug is actually in the allowed vocabulary.
var synonyms = map[string]map[string]string{
	Cuisine: {
		"turkish":          "turk-mutfagi",
		"turk":             "turk-mutfagi",
		"turkish-cuisine":  "turk-mutfagi",
		"italian":          "italyan",
		"italian-cuisine":  "italyan",
		"mexican":          "meksika",
		"mexican-cuisine":  "meksika",
		"meksika-mutfagi":  "meksika",
		"world":            "dunya-mutfagi",
		"world-cuisine":    "dunya-mutfagi",
		"international":    "dunya-mutfagi",
		"fusion":           "dunya-mutfagi",
		"mediterranean":    "akdeniz",
		"french":           "fransiz",
		"french-cuisine":   "fransiz",
		"asian":            "asya",
		"asian-cuisine":    "asya",
		"japanese":         "japon",
		"japanese-cuisine": "japon",
		"indian":           "hint",
		"indian-cuisine":   "hint",
		"greek":            "yunan",
		"middle-eastern":   "orta-dogu",
	},
	Diet: {
		"regular":       "normal",
		"standard":      "normal",
		"none":          "normal",
		"vegetarian":    "vejetaryen",
		"veggie":        "vejetaryen",
		"gluten-free":   "glutensiz",
		"glutenfree":    "glutensiz",
		"no-gluten":     "glutensiz",
		"dairy-free":    "laktozsuz",
		"lactose-free":  "laktozsuz",
		"keto":          "ketojenik",
		"ketogenic":     "ketojenik",
		"low-carb":      "dusuk-karbonhidrat",
		"high-protein":  "yuksek-protein",
		"protein":       "yuksek-protein",
		"sugar-free":    "sekersiz",
		"low-calorie":   "dusuk-kalori",
		"mediterranean": "akdeniz-diyeti",
	},
	MealType: {
		"breakfast":   "kahvalti",
		"brunch":      "kahvalti",
		"lunch":       "ogle-yemegi",
		"dinner":      "aksam-yemegi",
		"supper":      "aksam-yemegi",
		"main-course": "aksam-yemegi",
		"snack":       "atistirmalik",
		"snacks":      "atistirmalik",
		"appetizer":   "atistirmalik",
		"dessert":     "tatli",
		"desserts":    "tatli",
		"sweet":       "tatli",
		"soup":        "corba",
		"salad":       "salata",
		"drink":       "icecek",
		"beverage":    "icecek",
		"side-dish":   "ara-sicak",
	},
	Difficulty: {
		"easy":         "kolay",
		"simple":       "kolay",
		"beginner":     "kolay",
		"medium":       "orta",
		"intermediate": "orta",
		"moderate":     "orta",
		"hard":         "zor",
		"difficult":    "zor",
		"advanced":     "zor",
		"chef":         "sef",
		"expert":       "sef",
		"professional": "sef",
	},
	Collection: {},
}

func synonymFor(taxonomy, slug string) (string, bool) {
	table, ok := synonyms[taxonomy]
	if !ok {
		return "", false
	}
	target, ok := table[slug]
	return target, ok
}
