package service

import "studybuddy/internal/model"

// quizBank is served when the model cannot generate questions, keyed by topic then difficulty.
var quizBank = map[string]map[string][]model.QuizQuestion{
	"python": {
		"easy": {
			{
				ID:            "py_easy_1",
				Question:      "What is the output of print(2 + 3 * 4)?",
				Options:       []string{"20", "14", "24", "Error"},
				CorrectAnswer: "14",
				Explanation:   "Python follows PEMDAS order of operations: multiplication before addition.",
				Topic:         "python",
				Difficulty:    "easy",
			},
			{
				ID:            "py_easy_2",
				Question:      "What keyword is used to define a function in Python?",
				Options:       []string{"function", "def", "define", "func"},
				CorrectAnswer: "def",
				Explanation:   "The 'def' keyword is used to define functions in Python.",
				Topic:         "python",
				Difficulty:    "easy",
			},
		},
		"medium": {
			{
				ID:            "py_medium_1",
				Question:      "What does the 'self' parameter represent in Python class methods?",
				Options:       []string{"The class itself", "The instance of the class", "A reference to the parent class", "A static method indicator"},
				CorrectAnswer: "The instance of the class",
				Explanation:   "The 'self' parameter refers to the instance of the class.",
				Topic:         "python",
				Difficulty:    "medium",
			},
		},
		"hard": {
			{
				ID:            "py_hard_1",
				Question:      "What is the time complexity of searching in a Python dictionary?",
				Options:       []string{"O(1)", "O(n)", "O(log n)", "O(n²)"},
				CorrectAnswer: "O(1)",
				Explanation:   "Python dictionaries use hash tables, providing average O(1) time complexity for lookups.",
				Topic:         "python",
				Difficulty:    "hard",
			},
		},
	},
	"javascript": {
		"easy": {
			{
				ID:            "js_easy_1",
				Question:      "Which keyword is used to declare a variable in modern JavaScript?",
				Options:       []string{"var", "let", "const", "all of the above"},
				CorrectAnswer: "all of the above",
				Explanation:   "JavaScript has three variable declaration keywords: var, let, and const.",
				Topic:         "javascript",
				Difficulty:    "easy",
			},
		},
	},
	"react": {
		"easy": {
			{
				ID:            "react_easy_1",
				Question:      "What is JSX in React?",
				Options:       []string{"A JavaScript library", "A syntax extension for JavaScript", "A CSS framework", "A database query language"},
				CorrectAnswer: "A syntax extension for JavaScript",
				Explanation:   "JSX is a syntax extension that allows writing HTML-like code in JavaScript.",
				Topic:         "react",
				Difficulty:    "easy",
			},
		},
	},
}

// fallbackQuestions returns up to n bank questions for the topic and difficulty.
func fallbackQuestions(topic, difficulty string, n int) []model.QuizQuestion {
	qs := quizBank[topic][difficulty]
	out := make([]model.QuizQuestion, 0, min(len(qs), n))
	for _, q := range qs[:min(len(qs), n)] {
		q.Options = append([]string(nil), q.Options...)
		out = append(out, q)
	}
	return out
}
