package services

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Typo tolerance for keyword matching: small typos ("sumary", "explian")
// still land in the right bucket. Short keywords match exactly, an edit
// distance of 2 on a 4-letter word matches far too much.
const (
	cannedKeywordDistance    = 2
	cannedFuzzyMinKeywordLen = 5
)

type cannedBucket struct {
	keywords []string
	response string
}

var cannedBuckets = []cannedBucket{
	{
		keywords: []string{"summary", "summarize", "overview"},
		response: "I can help you review your material. Open the content view to read the generated summary of any processed document, or ask me about a specific topic from your uploads.",
	},
	{
		keywords: []string{"explain", "understand", "clarify"},
		response: "I'd be happy to explain a concept. With an AI capability configured I can walk through your uploaded material in detail; for now, try the generated summaries which highlight the key concepts of each document.",
	},
	{
		keywords: []string{"quiz", "test", "practice"},
		response: "You can generate a practice quiz from any processed document. Head to the quiz section, pick your content, and choose the question types you want to practice.",
	},
	{
		keywords: []string{"help", "start", "how"},
		response: "I'm your study assistant. Upload documents, audio, or video, and I can summarize them, answer questions about them, and generate quizzes. What would you like to do first?",
	},
}

const cannedDefault = "I'm currently running in offline mode and can only give basic guidance. Try asking about summaries, explanations, or quizzes, or configure an AI API key for full conversational help."

// cannedResponse picks a deterministic reply by keyword, tolerating small
// typos in the message.
func cannedResponse(message string) string {
	words := strings.Fields(strings.ToLower(message))
	for _, bucket := range cannedBuckets {
		for _, keyword := range bucket.keywords {
			for _, word := range words {
				if word == keyword {
					return bucket.response
				}
				if len(keyword) >= cannedFuzzyMinKeywordLen && fuzzy.LevenshteinDistance(word, keyword) <= cannedKeywordDistance {
					return bucket.response
				}
			}
		}
	}
	return cannedDefault
}
