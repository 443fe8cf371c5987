package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// DefaultAnalyticsDays is the mood analytics window used when none is given.
const DefaultAnalyticsDays = 7

// StudentProgress fetches the signed-in student's progress.
func (c *Client) StudentProgress(ctx context.Context) (any, error) {
	return c.Call(ctx, "/api/student/progress", nil)
}

// Challenge fetches the description of a challenge level.
func (c *Client) Challenge(ctx context.Context, level string) (any, error) {
	return c.Call(ctx, "/api/challenge/"+url.PathEscape(level), nil)
}

// SubmitChallenge posts a solution for the given level.
func (c *Client) SubmitChallenge(ctx context.Context, level, code string) (any, error) {
	return c.postJSON(ctx, "/api/challenge/"+url.PathEscape(level)+"/submit", challengeSubmission{Code: code})
}

// MoodAnalytics fetches mood statistics for the last days days; days <= 0
// means DefaultAnalyticsDays.
func (c *Client) MoodAnalytics(ctx context.Context, studentID string, days int) (any, error) {
	if days <= 0 {
		days = DefaultAnalyticsDays
	}
	q := url.Values{"days": {strconv.Itoa(days)}}
	return c.Call(ctx, "/api/mood/analytics/"+url.PathEscape(studentID)+"?"+q.Encode(), nil)
}

// RecordMood stores a mood entry for a student.
func (c *Client) RecordMood(ctx context.Context, studentID string, moodValue int, notes string) (any, error) {
	return c.postJSON(ctx, "/api/mood/record", moodRecord{
		StudentID: studentID,
		MoodValue: moodValue,
		Notes:     notes,
	})
}

// MoodRecommendations fetches advice based on the student's last week of moods.
func (c *Client) MoodRecommendations(ctx context.Context, studentID string) (any, error) {
	return c.Call(ctx, "/api/mood/recommendations/"+url.PathEscape(studentID), nil)
}

func (c *Client) postJSON(ctx context.Context, endpoint string, v any) (any, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal request body: %w", err)
	}
	return c.Call(ctx, endpoint, &RequestOptions{Method: http.MethodPost, Body: body})
}
