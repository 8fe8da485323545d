package cli

import (
	"testing"

	"school-trivia/internal/domain"
)

func TestSampleBankIsValid(t *testing.T) {
	set, err := domain.LoadQuestions(sampleBank())
	if err != nil {
		t.Fatalf("sample bank invalid: %v", err)
	}
	for _, round := range domain.HeadToHeadRounds {
		if set.FilterByCategory(string(round)).Len() == 0 {
			t.Fatalf("sample bank has no %s questions", round)
		}
	}
	for _, d := range []domain.Difficulty{domain.DifficultyEasy, domain.DifficultyMedium, domain.DifficultyHard} {
		if set.FilterByDifficulty(d).Len() == 0 {
			t.Fatalf("sample bank has no %s questions", d)
		}
	}
}

func TestRootCommandWiresSubcommands(t *testing.T) {
	cmd := newRootCmd()
	for _, name := range []string{"start", "migrate", "import"} {
		sub, _, err := cmd.Find([]string{name})
		if err != nil || sub.Name() != name {
			t.Fatalf("expected %s subcommand, got %v (%v)", name, sub, err)
		}
	}
	if flag := cmd.PersistentFlags().Lookup("config"); flag == nil {
		t.Fatalf("expected --config flag")
	}
}
