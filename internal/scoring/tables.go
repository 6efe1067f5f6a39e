package scoring

// franchiseKeywords maps a franchise name to thematically associated
// keywords. A story that never names the franchise can still score
// franchise points through these.
var franchiseKeywords = map[string][]string{
	"naruto":           {"chakra", "jutsu", "ninja", "hokage", "konoha", "shinobi"},
	"my hero academia": {"quirk", "hero", "villain", "u.a.", "deku", "bakugo"},
	"one piece":        {"pirate", "devil fruit", "grand line", "nakama", "haki"},
	"dragon ball":      {"saiyan", "ki blast", "spar", "goku", "tournament"},
	"demon slayer":     {"demon", "breathing technique", "nichirin", "hashira", "nezuko"},
	"jujutsu kaisen":   {"curse", "cursed energy", "sorcerer", "domain expansion"},
	"danmachi":         {"dungeon", "familia", "orario", "adventurer"},
	"attack on titan":  {"titan", "scout regiment", "the walls"},
}

// defaultTagWeights holds per-tag weights for the tag sub-score.
// Tags not listed use baseTagWeight.
var defaultTagWeights = map[string]float64{
	"power-fantasy": 1.5,
	"isekai":        1.4,
	"crossover":     1.3,
	"underdog":      1.2,
	"supernatural":  1.2,
	"romance":       1.1,
	"action":        1.0,
	"sci-fi":        1.0,
	"comedy":        0.9,
	"drama":         0.9,
}

// relatedTagGroups are curated clusters of tags that tend to appeal
// together. Matching two or more preferred tags from one group earns
// an extra bonus.
var relatedTagGroups = [][]string{
	{"underdog", "reluctant-hero", "trauma-healing"},
	{"isekai", "reincarnation", "dimensional travel"},
	{"romance", "romantic comedy", "harem", "forced proximity"},
	{"action", "power-fantasy", "martial arts"},
}
