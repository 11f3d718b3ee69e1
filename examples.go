package textgen

import (
	"fmt"
	"sort"
)

// Example is a canned prompt with a suggested response length, shown as
// a one-click starting point on the demo page.
type Example struct {
	// Key is the stable lookup key for the example.
	Key string
	// Title is the human-facing label shown on the page.
	Title string
	// Prompt is the example prompt text.
	Prompt string
	// MaxTokens is the suggested response length for this example.
	MaxTokens int
}

// The example table is fixed at build time; keys are referenced from
// the demo page and the CLI, never from user input.
var examples = map[string]Example{
	"question": {
		Key:   "question",
		Title: "Question/Answer",
		Prompt: "Question: What is the name of the tallest mountain in the world?\n" +
			"Answer: Mount Everest.\n" +
			"\n" +
			"Question: What is the capital city of France?\n" +
			"Answer:",
		MaxTokens: 64,
	},
	"ion": {
		Key:   "ion",
		Title: "Ion Stoica",
		Prompt: "Ion Stoica is a Romanian-American computer scientist specializing in " +
			"distributed systems, cloud computing and computer networking. He is a " +
			"professor at the University of California, Berkeley, and",
		MaxTokens: 128,
	},
	"paris": {
		Key:       "paris",
		Title:     "Paris",
		Prompt:    "Paris is the capital city of ",
		MaxTokens: 64,
	},
	"chat": {
		Key:   "chat",
		Title: "Chatbot",
		Prompt: "A chat between a curious human and a knowledgeable artificial " +
			"intelligence assistant.\n" +
			"\n" +
			"Human: Hello! Can you tell me something interesting about deep learning?\n" +
			"Assistant:",
		MaxTokens: 96,
	},
}

// LookupExample returns the example registered under key, reporting
// whether it exists.
func LookupExample(key string) (Example, bool) {
	ex, ok := examples[key]
	return ex, ok
}

// LoadExample returns the example registered under key. Keys are fixed
// at build time, so an unknown key is a programming error and panics.
func LoadExample(key string) Example {
	ex, ok := examples[key]
	if !ok {
		panic(fmt.Sprintf("textgen: unknown example %q", key))
	}
	return ex
}

// ExampleKeys returns all example keys in sorted order.
func ExampleKeys() []string {
	keys := make([]string, 0, len(examples))
	for k := range examples {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Examples returns all examples ordered by key.
func Examples() []Example {
	out := make([]Example, 0, len(examples))
	for _, k := range ExampleKeys() {
		out = append(out, examples[k])
	}
	return out
}
