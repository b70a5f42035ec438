package dialogue

// clarificationAfterTurns is how many user turns may pass at the initial
// stage before the policy asks for clarification.
const clarificationAfterTurns = 2

// NextMove picks the next conversational topic. The rules are checked in
// priority order and the first match wins. Rule 6 dequeues the pending
// follow-up it returns, which is the only mutation this method performs.
func (c *Context) NextMove() Topic {
	hasMoods := len(c.DetectedMoods) > 0
	hasPrefs := len(c.MentionedGenres) > 0 || len(c.MentionedArtists) > 0

	// 1. Nothing said yet: open the conversation.
	if len(c.History) == 0 {
		return TopicGreeting
	}

	// 2. A fresh mood with no open question: dig into it.
	if hasMoods && c.Stage == StageMoodDetected && !c.QuestionAsked {
		return TopicMoodExploration
	}

	// 3. Mood known but no music preferences yet: ask for a genre.
	if hasMoods && !hasPrefs && !c.QuestionAsked {
		return TopicGenreQuestion
	}

	// 4. Mood plus preferences (or an explicit go-ahead): recommend.
	if (hasMoods && hasPrefs) || c.Stage == StageReady {
		return TopicRecommendation
	}

	// 5. Lost the thread: ask for clarification.
	if c.CurrentTopic == TopicClarification ||
		(c.Stage == StageInitial && c.UserTurnCount() > clarificationAfterTurns) {
		return TopicClarification
	}

	// 6. Serve a queued follow-up.
	if len(c.FollowUpTopics) > 0 {
		head := c.FollowUpTopics[0]
		c.FollowUpTopics = c.FollowUpTopics[1:]
		return head
	}

	// 7. Stay on the current topic.
	return c.CurrentTopic
}
