package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"

	"github.com/mcastro/voteboard/go/internal/criteria"
	"github.com/mcastro/voteboard/go/internal/dynamoutil"
	"github.com/mcastro/voteboard/go/internal/storeconfig"
)

// The default judging rubric. Seeded only when the criteria table is empty so
// operator edits are never clobbered.
var defaultCriteria = []criteria.CreateCriterionRequest{
	{Name: "Problem Understanding", Weight: 15, Description: "Did the team demonstrate deep understanding of the customer's problem?"},
	{Name: "Success Criteria Definition", Weight: 15, Description: "Did the team determine success criteria collaboratively with the customer?"},
	{Name: "Demo Relevance", Weight: 15, Description: "Did the team present a demo that directly addresses the customer problem?"},
	{Name: "Service Correlation", Weight: 15, Description: "Did the team effectively correlate the demo with the services planned for the PoC?"},
	{Name: "GenAI Services Usage", Weight: 15, Description: "Did the team leverage generative AI services appropriately?"},
	{Name: "Team Collaboration", Weight: 10, Description: "Did the team demonstrate effective collaboration during the presentation?"},
	{Name: "Notes of Unanswered Questions", Weight: 15, Description: "Did the team take notes of the unanswered questions to address later?"},
}

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not load .env file: %v\n", err)
	}

	cfg := storeconfig.NewConfigFromEnv()
	client, err := dynamoutil.NewClient(ctx, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to connect: %v\n", err)
		os.Exit(1)
	}

	repo := criteria.NewRepository(client, cfg.CriteriaTable, clockwork.NewRealClock())

	existing, err := repo.ListCriteria(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to list criteria: %v\n", err)
		os.Exit(1)
	}
	if len(existing) > 0 {
		fmt.Printf("Criteria table already has %d entries, nothing to do\n", len(existing))
		return
	}

	for _, req := range defaultCriteria {
		criterion, err := repo.CreateCriterion(ctx, req)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to seed criterion %q: %v\n", req.Name, err)
			os.Exit(1)
		}
		fmt.Printf("Seeded criterion %q (weight %d, id %s)\n", criterion.Name, criterion.Weight, criterion.ID)
	}
	fmt.Printf("Seeded %d default criteria\n", len(defaultCriteria))
}
