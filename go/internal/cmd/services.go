package main

import (
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/jonboulle/clockwork"

	"github.com/mcastro/voteboard/go/internal/admin"
	"github.com/mcastro/voteboard/go/internal/criteria"
	"github.com/mcastro/voteboard/go/internal/judges"
	"github.com/mcastro/voteboard/go/internal/notify"
	"github.com/mcastro/voteboard/go/internal/scoring"
	"github.com/mcastro/voteboard/go/internal/storeconfig"
	"github.com/mcastro/voteboard/go/internal/teams"
	"github.com/mcastro/voteboard/go/internal/votes"
)

type Apps struct {
	Teams    *teams.App
	Judges   *judges.App
	Criteria *criteria.App
	Votes    *votes.App
	Scoring  *scoring.App
	Admin    *admin.App
}

func setupApps(client *dynamodb.Client, cfg storeconfig.Config, sender notify.EmailSender) *Apps {
	// Wire up dependency injection chain
	// Store client → Repository layer → App layer
	clock := clockwork.NewRealClock()

	teamsRepo := teams.NewRepository(client, cfg.TeamsTable, clock)
	judgesRepo := judges.NewRepository(client, cfg.JudgesTable, clock)
	criteriaRepo := criteria.NewRepository(client, cfg.CriteriaTable, clock)
	votesRepo := votes.NewRepository(client, cfg.VotesTable, clock)
	settingsRepo := admin.NewRepository(client, cfg.SettingsTable)

	// Entity apps purge ledger entries through the votes repository, so the
	// votes app can depend on them without a cycle.
	teamsApp := teams.NewApp(teamsRepo, votesRepo)
	judgesApp := judges.NewApp(judgesRepo, votesRepo)
	criteriaApp := criteria.NewApp(criteriaRepo, votesRepo)

	dispatcher := notify.NewDispatcher(sender)
	votesApp := votes.NewApp(votesRepo, judgesApp, teamsApp, criteriaApp, dispatcher)
	scoringApp := scoring.NewApp(votesRepo, teamsApp, criteriaApp)
	adminApp := admin.NewApp(teamsRepo, judgesRepo, criteriaRepo, votesRepo, settingsRepo, clock)

	return &Apps{
		Teams:    teamsApp,
		Judges:   judgesApp,
		Criteria: criteriaApp,
		Votes:    votesApp,
		Scoring:  scoringApp,
		Admin:    adminApp,
	}
}
