package api

// Typed views of the payloads returned by the academy endpoints. Call returns
// untyped data; use Decode to coerce it into one of these.

// Challenge describes a coding challenge level.
type Challenge struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Template    string          `json:"template"`
	Tests       []ChallengeTest `json:"tests"`
}

// ChallengeTest is one input/expected pair of a challenge.
type ChallengeTest struct {
	Input    any `json:"input"`
	Expected any `json:"expected"`
}

// ChallengeResult is the verdict for a submitted solution.
type ChallengeResult struct {
	Passed  bool         `json:"passed"`
	Results []TestResult `json:"results"`
	Message string       `json:"message"`
}

// TestResult is the outcome of running one test against a submission.
type TestResult struct {
	Input    any    `json:"input"`
	Expected any    `json:"expected"`
	Actual   any    `json:"actual"`
	Passed   bool   `json:"passed"`
	Error    string `json:"error"`
}

// MoodAnalyticsReport summarizes a student's mood over a day window.
// Message is set instead of the statistics when the window has no data.
type MoodAnalyticsReport struct {
	AverageMood   float64            `json:"average_mood"`
	Trend         string             `json:"trend"`
	TotalRecords  int                `json:"total_records"`
	DailyAverages map[string]float64 `json:"daily_averages"`
	Records       []MoodEntry        `json:"records"`
	Message       string             `json:"message"`
}

// MoodEntry is a single recorded mood.
type MoodEntry struct {
	Date      string `json:"date"`
	Mood      int    `json:"mood"`
	Notes     string `json:"notes"`
	MoodEmoji string `json:"mood_emoji"`
}

// MoodRecordResult acknowledges a recorded mood.
type MoodRecordResult struct {
	Success  bool   `json:"success"`
	RecordID int64  `json:"record_id"`
	Message  string `json:"message"`
}

// MoodRecommendations holds advice derived from recent moods.
type MoodRecommendations struct {
	AverageMood     float64  `json:"average_mood"`
	Recommendations []string `json:"recommendations"`
}

type challengeSubmission struct {
	Code string `json:"code"`
}

type moodRecord struct {
	StudentID string `json:"student_id"`
	MoodValue int    `json:"mood_value"`
	Notes     string `json:"notes"`
}
