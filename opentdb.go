package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// errProviderUnavailable covers network, decode and empty-result failures.
// The card that triggered the fetch stays used either way.
var errProviderUnavailable = errors.New("trivia provider unavailable")

// Question is one multiple-choice question as returned by the provider.
type Question struct {
	Text        string
	Correct     string
	Distractors []string
}

type questionProvider interface {
	FetchQuestion(category, difficulty string) (Question, error)
}

// Open Trivia DB category IDs for the grid categories.
var openTDBCategories = map[string]int{
	"animals": 27,
	"geo":     22,
	"history": 23,
	"science": 21,
}

// difficultyFor maps a card's point value to an Open Trivia DB difficulty.
func difficultyFor(points int) string {
	switch {
	case points <= 200:
		return "easy"
	case points <= 400:
		return "medium"
	default:
		return "hard"
	}
}

type openTDBProvider struct {
	endpoint string
	client   *http.Client
}

func newOpenTDBProvider(endpoint string, timeout time.Duration) *openTDBProvider {
	return &openTDBProvider{
		endpoint: endpoint,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

type openTDBResponse struct {
	ResponseCode int `json:"response_code"`
	Results      []struct {
		Question         string   `json:"question"`
		CorrectAnswer    string   `json:"correct_answer"`
		IncorrectAnswers []string `json:"incorrect_answers"`
	} `json:"results"`
}

// FetchQuestion requests a single multiple-choice question. OpenTDB encodes
// payload strings as HTML entities, so everything is unescaped on the way in.
func (p *openTDBProvider) FetchQuestion(category, difficulty string) (Question, error) {
	categoryID, ok := openTDBCategories[category]
	if !ok {
		return Question{}, fmt.Errorf("%w: unknown category %q", errProviderUnavailable, category)
	}

	params := url.Values{}
	params.Set("amount", "1")
	params.Set("category", strconv.Itoa(categoryID))
	params.Set("difficulty", difficulty)
	params.Set("type", "multiple")

	res, err := p.client.Get(p.endpoint + "?" + params.Encode())
	if err != nil {
		return Question{}, fmt.Errorf("%w: %v", errProviderUnavailable, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return Question{}, fmt.Errorf("%w: unexpected status %d", errProviderUnavailable, res.StatusCode)
	}

	var body openTDBResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return Question{}, fmt.Errorf("%w: %v", errProviderUnavailable, err)
	}

	if body.ResponseCode != 0 || len(body.Results) == 0 {
		return Question{}, fmt.Errorf("%w: no results (code %d)", errProviderUnavailable, body.ResponseCode)
	}

	result := body.Results[0]
	question := Question{
		Text:    html.UnescapeString(result.Question),
		Correct: html.UnescapeString(result.CorrectAnswer),
	}
	for _, answer := range result.IncorrectAnswers {
		question.Distractors = append(question.Distractors, html.UnescapeString(answer))
	}

	return question, nil
}
