package generator

// StoryGenSystemPrompt is the system prompt for catalog generation.
const StoryGenSystemPrompt = `You are a creative story generator for an anime-style interactive fiction platform.`

// StoryGenPrompt is the user prompt template for catalog generation.
// Arguments: number of stories (twice).
const StoryGenPrompt = `Generate %d new story entries in the same format as the sample story below.
Each story should have:
- A unique ID (6 digits)
- A creative title
- An engaging intro
- Relevant tags (5-7 tags per story)

Sample format:
ID: 217107
Title: Stranger Who Fell From The Sky
Intro: You are Devin, plummeting towards Orario with no memory of how you got here...
Tags: danmachi, reincarnation, heroic aspirations, mystery origin, teamwork, loyalty, protectiveness

Generate %d new stories in this exact format, one after another.
Make sure the stories are diverse in themes and genres, including:
- Isekai adventures
- School life
- Fantasy battles
- Romance
- Mystery
- Action
- Comedy
- Drama
- Supernatural
- Sci-fi`

// RecommendRequestPrompt is the fixed user turn sent alongside an
// optimized system prompt. Argument: number of stories to recommend.
const RecommendRequestPrompt = `Please recommend %d stories.`

// GroundTruthSystemPrompt is the system prompt used when ground truth
// is delegated to the text generator instead of the scoring engine.
const GroundTruthSystemPrompt = `You are a story recommendation system that matches stories to user preferences.`

// GroundTruthPrompt is the user prompt template for generator-sourced
// ground truth. Arguments: story listing, profile description, count.
const GroundTruthPrompt = `Stories:
%s

User Profile:
%s

Please recommend the %d stories that would be most relevant to this user.
Return only the story IDs in a comma-separated list, ordered by relevance (most relevant first).`
