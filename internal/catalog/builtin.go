package catalog

import "github.com/abhisek/studyhub/internal/assessment"

// sampleQuestions is the shared question pool for the built-in assessments.
var sampleQuestions = []assessment.Question{
	{
		ID:           1,
		Prompt:       "What is the derivative of f(x) = x³ + 2x² - 5x + 1?",
		Options:      []string{"3x² + 4x - 5", "x² + 4x - 5", "3x² + 2x - 5", "3x³ + 4x² - 5x"},
		CorrectIndex: 0,
		Explanation:  "Using the power rule: d/dx[x^n] = nx^(n-1), we get 3x² + 4x - 5",
		Topic:        "Calculus",
		Difficulty:   assessment.DifficultyMedium,
	},
	{
		ID:     2,
		Prompt: "Which of the following matrices is invertible?",
		Options: []string{
			"[[1, 2], [2, 4]]",
			"[[1, 0], [0, 1]]",
			"[[0, 0], [1, 1]]",
			"[[1, 1], [1, 1]]",
		},
		CorrectIndex: 1,
		Explanation:  "A matrix is invertible if its determinant is non-zero. The identity matrix has determinant 1.",
		Topic:        "Linear Algebra",
		Difficulty:   assessment.DifficultyEasy,
	},
	{
		ID:           3,
		Prompt:       "What is the limit of (sin x)/x as x approaches 0?",
		Options:      []string{"0", "1", "∞", "Does not exist"},
		CorrectIndex: 1,
		Explanation:  "This is a fundamental limit in calculus. The limit of (sin x)/x as x→0 equals 1.",
		Topic:        "Calculus",
		Difficulty:   assessment.DifficultyHard,
	},
}

func questionsByTopic(topic string) []assessment.Question {
	var out []assessment.Question
	for _, q := range sampleQuestions {
		if q.Topic == topic {
			out = append(out, q)
		}
	}
	return out
}

func builtinAssessments() []assessment.Assessment {
	comprehensiveScore := 87
	return []assessment.Assessment{
		{
			ID:               "calc-basics",
			Title:            "Calculus Fundamentals",
			Topic:            "Calculus",
			Questions:        questionsByTopic("Calculus"),
			TimeLimitMinutes: 30,
			Difficulty:       assessment.DifficultyMedium,
			Status:           assessment.StatusAvailable,
		},
		{
			ID:               "linear-algebra",
			Title:            "Linear Algebra Quiz",
			Topic:            "Linear Algebra",
			Questions:        questionsByTopic("Linear Algebra"),
			TimeLimitMinutes: 20,
			Difficulty:       assessment.DifficultyEasy,
			Status:           assessment.StatusAvailable,
		},
		{
			ID:               "comprehensive",
			Title:            "Comprehensive Math Review",
			Topic:            "Mathematics",
			Questions:        append([]assessment.Question(nil), sampleQuestions...),
			TimeLimitMinutes: 45,
			Difficulty:       assessment.DifficultyHard,
			Status:           assessment.StatusCompleted,
			LastScore:        &comprehensiveScore,
		},
	}
}

// Builtin returns the sample catalog shipped with the binary.
func Builtin() *Static {
	s, err := NewStatic(builtinAssessments())
	if err != nil {
		panic("catalog: invalid builtin assessments: " + err.Error())
	}
	return s
}
