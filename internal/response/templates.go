package response

import "github.com/justestif/go-mood-dj/internal/dialogue"

// templates holds the response pool per topic. One entry is chosen
// uniformly at random; placeholders are substituted afterwards.
var templates = map[dialogue.Topic][]string{
	dialogue.TopicGreeting: {
		"Hey! How are you feeling today?",
		"Hi there! What's your mood like right now?",
		"Hello! Good to hear from you. How are you feeling?",
		"Hey, welcome back! How's your mood today?",
	},
	dialogue.TopicMoodExploration: {
		"Feeling {mood}, huh? Tell me more about that.",
		"Sounds like you're {mood}. What's been going on?",
		"Okay, {mood} it is. Want music that matches or something to shift it?",
		"I hear you on feeling {mood}. What would help right now?",
	},
	dialogue.TopicGenreQuestion: {
		"What kind of music do you usually reach for when you feel {mood}?",
		"Any genre calling to you right now?",
		"What type of music sounds good at the moment?",
	},
	dialogue.TopicActivityQuestion: {
		"Nice, music for {activity} coming right up. Any genre preference?",
		"Got it, {activity}. Want something to match the pace?",
		"Soundtracking your {activity}. Should it be energizing or laid back?",
	},
	dialogue.TopicRecommendation: {
		"Alright, some {genre} for a {mood} moment. Let me pull a few tracks.",
		"I think {genre} could really work for you right now. Queuing it up.",
		"Here's an idea: {genre} while you're {activity}. Picking tracks now.",
		"Let's go with {genre}. I'll find something that fits feeling {mood}.",
	},
	dialogue.TopicClarification: {
		"Sorry, I didn't quite catch that. What would you like to hear?",
		"Hmm, say that another way? I want to get this right.",
		"I'm not sure I followed. Are you after a mood, a genre, or a specific artist?",
	},
	dialogue.TopicFollowUp: {
		"Anytime! Want me to line up more {genre}?",
		"Glad that landed. Should I keep them coming?",
		"Happy to help. Anything else for your {activity}?",
	},
}

// moodFallback is the literal used for {mood} when no mood has been
// detected yet, per topic.
var moodFallback = map[dialogue.Topic]string{
	dialogue.TopicMoodExploration: "that way",
	dialogue.TopicRecommendation:  "like this",
	dialogue.TopicGenreQuestion:   "this way",
}

const defaultMoodFallback = "that way"

// Enhancer pools. Eligible pools are merged and one phrase is drawn
// uniformly from the union, then prepended to the response.
var (
	acknowledgmentEnhancers = []string{
		"I hear you.",
		"Got it.",
		"Right on.",
	}
	enthusiasmEnhancers = []string{
		"Love where this is going!",
		"Oh, nice!",
		"Great stuff!",
	}
	moodReflectionEnhancers = []string{
		"Sounds like a {mood} kind of day.",
		"That {mood} feeling comes through.",
		"Noted, {mood} it is.",
	}
	genreRangeEnhancers = []string{
		"You've got range!",
		"Eclectic taste, I like it.",
		"Nice mix of genres you're into.",
	}
)

// conclusionTemplates always compete; the genre and artist variants join
// the pool only when the session actually mentioned genres or artists.
var (
	conclusionTemplates = []string{
		"Hope the music helped with the {mood} mood. Catch you next time!",
		"That's a wrap. Take care of that {mood} feeling, and see you soon!",
		"Enjoy the tunes, and thanks for sharing how you feel. Bye for now!",
		"Signing off. Here's to feeling {mood} in the best way possible.",
	}
	conclusionGenreTemplates = []string{
		"Plenty more {genre} where that came from. Until next time!",
		"Glad we landed on {genre} today. Come back anytime!",
	}
	conclusionArtistTemplates = []string{
		"Give {artist} another spin for me. See you soon!",
		"Good call on {artist}, solid taste. Catch you later!",
	}
)
