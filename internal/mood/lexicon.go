package mood

// moodKeywords maps each mood to its synonym vocabulary. Keywords are
// single lowercase tokens; multi-word signals live in compoundEmotions
// and contextualIdioms instead.
var moodKeywords = map[Mood][]string{
	Happy: {
		"happy", "glad", "joyful", "joy", "cheerful", "delighted", "pleased",
		"content", "great", "wonderful", "fantastic", "amazing", "excellent",
		"good", "smiling", "upbeat", "positive", "sunny", "blessed",
		"grateful", "optimistic", "elated", "ecstatic", "overjoyed", "merry",
		"jolly", "lovely", "awesome", "terrific", "chipper", "thrilled",
	},
	Sad: {
		"sad", "unhappy", "down", "depressed", "miserable", "gloomy", "blue",
		"heartbroken", "crying", "cry", "tearful", "upset", "hurt",
		"grieving", "lonely", "alone", "hopeless", "sorrowful", "melancholy",
		"disappointed", "homesick", "devastated", "awful", "terrible",
		"lousy", "somber", "mournful", "dismal", "dejected", "glum",
	},
	Angry: {
		"angry", "mad", "furious", "rage", "raging", "annoyed", "irritated",
		"frustrated", "pissed", "livid", "outraged", "hate", "hateful",
		"resentful", "bitter", "hostile", "aggravated", "infuriated",
		"fuming", "cross", "seething", "irate", "disgusted", "offended",
		"betrayed", "vengeful", "grumpy", "snappy", "heated", "indignant",
	},
	Anxious: {
		"anxious", "nervous", "worried", "worry", "stress", "stressed",
		"stressing", "tense", "uneasy", "afraid", "scared", "fearful",
		"panicking", "panic", "overwhelmed", "restless", "apprehensive",
		"dread", "dreading", "jittery", "frantic", "insecure", "paranoid",
		"shaky", "terrified", "frightened", "overthinking", "pressured",
		"racing", "queasy",
	},
	Energetic: {
		"energetic", "energized", "excited", "hyped", "hyper", "pumped",
		"lively", "active", "alive", "motivated", "unstoppable", "driven",
		"vibrant", "buzzing", "dynamic", "charged", "exhilarated",
		"invigorated", "bouncy", "peppy", "wired", "amped", "eager",
		"enthusiastic", "spirited", "zesty", "springy", "electric",
		"refreshed", "fired",
	},
	Calm: {
		"calm", "relaxed", "peaceful", "serene", "tranquil", "chill",
		"chilled", "mellow", "easygoing", "settled", "soothed", "centered",
		"grounded", "composed", "unhurried", "comfortable", "cozy", "gentle",
		"still", "quiet", "restful", "zen", "balanced", "steady", "placid",
		"carefree", "laidback", "secure", "unruffled", "easy",
	},
	Tired: {
		"tired", "sleepy", "exhausted", "drained", "fatigued", "weary",
		"worn", "drowsy", "sluggish", "lethargic", "spent", "beat",
		"knackered", "zonked", "groggy", "listless", "depleted",
		"overworked", "yawning", "burnt", "burned", "sleepless", "dozy",
		"bushed", "pooped", "frazzled", "dragging", "wiped", "drooping",
		"shattered",
	},
	Bored: {
		"bored", "boring", "boredom", "dull", "monotonous", "tedious",
		"uninterested", "uninspired", "unstimulated", "idle", "bland",
		"stale", "repetitive", "meh", "blah", "indifferent", "apathetic",
		"unmotivated", "flat", "humdrum", "dreary", "tiresome",
		"unexciting", "jaded", "stuck", "aimless", "disengaged",
		"lifeless", "samey", "uneventful",
	},
	Neutral: {
		"fine", "okay", "ok", "alright", "neutral", "normal", "usual",
		"average", "regular", "ordinary", "typical", "standard",
		"unchanged", "same", "stable", "plain", "whatever", "middling",
		"passable", "tolerable", "decent", "moderate", "fair", "soso",
	},
}

// intensityModifiers multiply the score contribution of the keyword that
// immediately follows them. Diminishers weigh below 1.0; "hardly" and
// "scarcely" flip the contribution negative.
var intensityModifiers = map[string]float64{
	"very":       2.0,
	"really":     1.8,
	"extremely":  2.5,
	"so":         1.5,
	"quite":      1.3,
	"pretty":     1.3,
	"incredibly": 2.2,
	"totally":    1.8,
	"completely": 2.0,
	"super":      1.8,
	"deeply":     1.7,
	"somewhat":   0.6,
	"slightly":   0.4,
	"kinda":      0.5,
	"barely":     0.3,
	"hardly":     -0.7,
	"scarcely":   -0.5,
}

// compoundEmotion is a literal phrase expressing a blend of moods. The
// weights sum to 1 and each contributes weight*compoundBoost to its mood.
type compoundEmotion struct {
	phrase  string
	weights map[Mood]float64
}

const compoundBoost = 1.5

var compoundEmotions = []compoundEmotion{
	{"bittersweet", map[Mood]float64{Happy: 0.5, Sad: 0.5}},
	{"nostalgic", map[Mood]float64{Happy: 0.4, Sad: 0.6}},
	{"mixed feelings", map[Mood]float64{Happy: 0.4, Sad: 0.6}},
	{"nervous excitement", map[Mood]float64{Anxious: 0.5, Energetic: 0.5}},
	{"anxious but excited", map[Mood]float64{Anxious: 0.5, Energetic: 0.5}},
	{"tired but happy", map[Mood]float64{Tired: 0.5, Happy: 0.5}},
	{"happy tears", map[Mood]float64{Happy: 0.6, Sad: 0.4}},
	{"love hate", map[Mood]float64{Happy: 0.5, Angry: 0.5}},
	{"calm before the storm", map[Mood]float64{Calm: 0.4, Anxious: 0.6}},
	{"restless energy", map[Mood]float64{Anxious: 0.4, Energetic: 0.6}},
}

// contextualIdioms are fixed idiomatic phrases mapped straight to mood
// deltas, bypassing keyword scoring entirely.
var contextualIdioms = []struct {
	phrase string
	deltas map[Mood]float64
}{
	{"over the moon", map[Mood]float64{Happy: 2.0}},
	{"on cloud nine", map[Mood]float64{Happy: 2.0}},
	{"on top of the world", map[Mood]float64{Happy: 2.0, Energetic: 0.5}},
	{"down in the dumps", map[Mood]float64{Sad: 2.0}},
	{"under the weather", map[Mood]float64{Sad: 1.0, Tired: 1.0}},
	{"fed up", map[Mood]float64{Angry: 1.5, Bored: 0.5}},
	{"sick and tired", map[Mood]float64{Angry: 1.0, Tired: 1.0}},
	{"losing my mind", map[Mood]float64{Anxious: 1.5, Angry: 0.5}},
	{"on edge", map[Mood]float64{Anxious: 1.5}},
	{"butterflies in my stomach", map[Mood]float64{Anxious: 1.5}},
	{"pumped up", map[Mood]float64{Energetic: 2.0}},
	{"full of beans", map[Mood]float64{Energetic: 1.5}},
	{"raring to go", map[Mood]float64{Energetic: 1.5}},
	{"chilled out", map[Mood]float64{Calm: 1.5}},
	{"at peace", map[Mood]float64{Calm: 1.5}},
	{"burned out", map[Mood]float64{Tired: 2.0}},
	{"burnt out", map[Mood]float64{Tired: 2.0}},
	{"running on empty", map[Mood]float64{Tired: 1.5}},
	{"worn out", map[Mood]float64{Tired: 1.5}},
	{"couldn't care less", map[Mood]float64{Bored: 1.5}},
	{"nothing to do", map[Mood]float64{Bored: 1.0}},
	{"can't complain", map[Mood]float64{Neutral: 1.0, Happy: 0.3}},
}

// negationTokens precede a mood keyword to invert it ("not happy").
var negationTokens = map[string]bool{
	"not": true, "don't": true, "isn't": true, "aren't": true,
	"wasn't": true, "haven't": true, "hasn't": true, "won't": true,
	"can't": true, "couldn't": true, "shouldn't": true, "wouldn't": true,
}

// negationRebalance shifts weight to the mood a denial usually implies:
// denying happiness suggests sadness, denying calm suggests anxiety, etc.
var negationRebalance = map[Mood]Mood{
	Happy:     Sad,
	Sad:       Neutral,
	Energetic: Tired,
	Calm:      Anxious,
	Anxious:   Calm,
}

// escalationVocabulary marks a turn as emotionally escalated. Only the
// most recent utterance is scanned and the boost applies at most once.
var escalationVocabulary = []string{
	"extremely", "seriously", "absolutely", "completely", "totally",
	"utterly", "incredibly", "unbearable", "breaking point", "can't take",
	"cannot take", "so much", "too much", "worse", "worst", "beyond",
}
