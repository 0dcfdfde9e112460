/* main.go
 * The "main" method for running a tournament prediction. For details about the models see `readme.md`
 * Usage: go run main.go -year=<year> -division=<division> -model=<model> -bracket=<file>
 */

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"ncaa-predictions/predict"
	"ncaa-predictions/predict/comparators"
	"ncaa-predictions/predict/store"
	"ncaa-predictions/predict/tournament"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	err := godotenv.Load()

	//Flags
	yearPtr := flag.Int("year", 2024, "Year the championship game takes place, e.g. 2024")
	divisionPtr := flag.String("division", "mens", "Division to predict (mens, womens)")
	modelPtr := flag.String("model", "pagerank", fmt.Sprintf("Prediction model, one of: %s", strings.Join(comparators.Models(), ", ")))
	bracketPtr := flag.String("bracket", "bracket.txt", "Path to a file listing the teams in bracket order")
	warmupPtr := flag.Int("warmup", 0, "Number of prior seasons used to warm start model fitting")
	verbosePtr := flag.Bool("verbose", false, "Enable debug logging")

	flag.Parse()

	if err != nil {
		log.Fatal("Error loading .env file")
	}

	if *verbosePtr {
		logrus.SetLevel(logrus.DebugLevel)
	}

	names, err := readBracketFile(*bracketPtr)
	if err != nil {
		log.Fatalf("failed to read bracket: %v", err)
	}

	dbName := os.Getenv("NCAA_DB_NAME")
	if dbName == "" {
		dbName = "ncaa"
	}
	s, err := store.NewStore(dbName, os.Getenv("MONGO_URI"))
	if err != nil {
		log.Fatalf("failed to initialize store: %v", err)
	}
	defer func() {
		if err = s.Client.Disconnect(context.TODO()); err != nil {
			panic(err)
		}
	}()

	predictor := predict.NewPredictorWithStore(s, nil)

	// Resolve the bracket names against the season's team universe so close-enough spellings work
	summary, err := predictor.Summaries.Get(*yearPtr, *divisionPtr)
	if err != nil {
		log.Fatalf("failed to load season: %v", err)
	}
	resolved, invalid := predict.ResolveTeamNames(names, summary.TeamUniverse())
	if len(invalid) > 0 {
		log.Fatalf("the following team names are invalid: %s", strings.Join(invalid, ", "))
	}

	opts := comparators.DefaultOptions()
	opts.WarmStartYears = *warmupPtr
	comparator, err := predictor.BuildComparator(*modelPtr, *yearPtr, *divisionPtr, opts)
	if err != nil {
		log.Fatalf("failed to build %s model: %v", *modelPtr, err)
	}

	bracket, err := tournament.FromNameList(resolved)
	if err != nil {
		log.Fatalf("failed to build bracket: %v", err)
	}

	reports, champion, err := predictor.SimulateTournament(bracket, comparator)
	if err != nil {
		log.Fatalf("failed to simulate tournament: %v", err)
	}

	printReports(reports)

	champ := champion.MostProbable()
	fmt.Printf("\nPredicted champion: (%d) %s (%.1f%%)\n", champ.Seed, champ.Name, champion[champ.Name].Probability*100)

	fmt.Println("\nTitle chances:")
	for i, team := range champion.Teams() {
		if i == 8 {
			break
		}
		fmt.Printf("  (%d) %s: %.1f%%\n", team.Seed, team.Name, champion[team.Name].Probability*100)
	}
}

// printReports renders each simulated round with its most likely game outcomes
func printReports(reports []predict.RoundReport) {
	for _, report := range reports {
		fmt.Printf("\n== %s ==\n", report.Name)
		for _, outcome := range report.Outcomes {
			line := fmt.Sprintf("(%d) %s over (%d) %s: %.1f%%",
				outcome.Winner.Seed, outcome.Winner.Name,
				outcome.Loser.Seed, outcome.Loser.Name,
				outcome.Probability*100)
			if outcome.Upset {
				line += " [UPSET]"
			}
			fmt.Println(line)
		}
	}
}
