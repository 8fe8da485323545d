package cli

import "school-trivia/internal/domain"

// sampleBank is served when neither Postgres nor a bank file is configured.
// It covers every head-to-head round and each difficulty.
func sampleBank() []domain.Question {
	return []domain.Question{
		{ID: "countries-1", Text: "What is the capital of Japan?", Options: []string{"Kyoto", "Tokyo", "Osaka", "Nagoya"}, CorrectIndex: 1, Category: "countries", Icon: "🇯🇵", Order: 1},
		{ID: "countries-2", Text: "Which country has the largest population in Africa?", Options: []string{"Egypt", "Ethiopia", "Nigeria", "Kenya"}, CorrectIndex: 2, Category: "countries", Icon: "🌍", Order: 2},
		{ID: "countries-3", Text: "Which river flows through Cairo?", Options: []string{"Nile", "Tigris", "Euphrates", "Jordan"}, CorrectIndex: 0, Category: "countries", Icon: "🇪🇬", Order: 3},
		{ID: "football-1", Text: "How many players does a football team have on the pitch?", Options: []string{"9", "10", "11", "12"}, CorrectIndex: 2, Category: "football", Icon: "⚽", Order: 1},
		{ID: "football-2", Text: "Which country won the 2022 World Cup?", Options: []string{"France", "Argentina", "Brazil", "Croatia"}, CorrectIndex: 1, Category: "football", Icon: "🏆", Order: 2},
		{ID: "puzzles-1", Text: "What comes next: 2, 4, 8, 16, ...?", Options: []string{"18", "24", "32", "64"}, CorrectIndex: 2, Category: "puzzles", Icon: "🧩", Order: 1},
		{ID: "puzzles-2", Text: "What has keys but cannot open locks?", Options: []string{"A piano", "A map", "A door", "A clock"}, CorrectIndex: 0, Category: "puzzles", Icon: "🎹", Order: 2},
		{ID: "speed-1", Text: "7 x 8 = ?", Options: []string{"54", "56", "58", "64"}, CorrectIndex: 1, Category: "speed", Icon: "⚡", Order: 1},
		{ID: "speed-2", Text: "Which planet is closest to the sun?", Options: []string{"Venus", "Earth", "Mercury", "Mars"}, CorrectIndex: 2, Category: "speed", Icon: "☀️", Order: 2},
		{ID: "easy-1", Text: "How many days are in a week?", Options: []string{"5", "6", "7", "8"}, CorrectIndex: 2, Difficulty: domain.DifficultyEasy, Order: 1},
		{ID: "easy-2", Text: "What colour do you get by mixing blue and yellow?", Options: []string{"Green", "Purple", "Orange"}, CorrectIndex: 0, Difficulty: domain.DifficultyEasy, Order: 2},
		{ID: "medium-1", Text: "How many sides does a hexagon have?", Options: []string{"5", "6", "7", "8"}, CorrectIndex: 1, Difficulty: domain.DifficultyMedium, Order: 3},
		{ID: "medium-2", Text: "What gas do plants absorb from the air?", Options: []string{"Oxygen", "Nitrogen", "Carbon dioxide", "Helium"}, CorrectIndex: 2, Difficulty: domain.DifficultyMedium, Order: 4},
		{ID: "hard-1", Text: "What is the square root of 169?", Options: []string{"11", "12", "13", "14"}, CorrectIndex: 2, Difficulty: domain.DifficultyHard, Order: 5},
		{ID: "hard-2", Text: "Who wrote 'A Brief History of Time'?", Options: []string{"Carl Sagan", "Stephen Hawking", "Richard Feynman", "Neil Tyson"}, CorrectIndex: 1, Difficulty: domain.DifficultyHard, Order: 6},
	}
}
