package challenge

// 内置挑战目录：主数据源不可用时的兜底
var builtinCatalog = []Challenge{
	{
		ID: "builtin_trivia_1", Type: TypeTrivia, Category: "geography", AgeRating: RatingAll, Points: 10,
		Trivia: &TriviaPayload{
			Question:      "What is the capital of Australia?",
			Answers:       []string{"Sydney", "Canberra", "Melbourne", "Perth"},
			CorrectAnswer: 1,
		},
	},
	{
		ID: "builtin_trivia_2", Type: TypeTrivia, Category: "science", AgeRating: RatingAll, Points: 10,
		Trivia: &TriviaPayload{
			Question:      "How many planets are in our solar system?",
			Answers:       []string{"7", "8", "9", "10"},
			CorrectAnswer: 1,
		},
	},
	{
		ID: "builtin_trivia_3", Type: TypeTrivia, Category: "music", AgeRating: RatingAll, Points: 15,
		Trivia: &TriviaPayload{
			Question:      "How many strings does a standard guitar have?",
			Answers:       []string{"4", "5", "6", "7"},
			CorrectAnswer: 2,
		},
	},
	{
		ID: "builtin_trivia_4", Type: TypeTrivia, Category: "movies", AgeRating: RatingTeen, Points: 15,
		Trivia: &TriviaPayload{
			Question:      "Which movie features the quote \"I'll be back\"?",
			Answers:       []string{"RoboCop", "The Terminator", "Predator", "Total Recall"},
			CorrectAnswer: 1,
		},
	},
	{
		ID: "builtin_action_1", Type: TypeAction, Category: "physical", AgeRating: RatingAll, Points: 10,
		Action: &ActionPayload{Action: "Do 10 jumping jacks"},
	},
	{
		ID: "builtin_action_2", Type: TypeAction, Category: "performance", AgeRating: RatingAll, Points: 15,
		Action: &ActionPayload{Action: "Imitate an animal until someone guesses which one"},
	},
	{
		ID: "builtin_action_3", Type: TypeAction, Category: "performance", AgeRating: RatingAll, Points: 10,
		Action: &ActionPayload{Action: "Sing the chorus of the last song you listened to"},
	},
	{
		ID: "builtin_dare_1", Type: TypeDare, Category: "social", AgeRating: RatingTeen, Points: 20,
		Action: &ActionPayload{Action: "Let the player to your left post a status from your phone"},
	},
	{
		ID: "builtin_dare_2", Type: TypeDare, Category: "social", AgeRating: RatingAll, Points: 15,
		Action: &ActionPayload{Action: "Talk in an accent until your next turn"},
	},
	{
		ID: "builtin_drinking_1", Type: TypeDrinking, Category: "party", AgeRating: RatingAdult, Points: 10,
		Action: &ActionPayload{Action: "Take a sip, or hand out two sips"},
	},
	{
		ID: "builtin_drinking_2", Type: TypeDrinking, Category: "party", AgeRating: RatingAdult, Points: 15,
		Action: &ActionPayload{Action: "Waterfall: everyone drinks until the person before them stops"},
	},
}

// BuiltinCatalog 返回内置目录的副本
func BuiltinCatalog() []Challenge {
	out := make([]Challenge, len(builtinCatalog))
	copy(out, builtinCatalog)
	return out
}
