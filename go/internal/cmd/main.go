package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/mcastro/voteboard/go/clients/ses_client"
	"github.com/mcastro/voteboard/go/internal/notify"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	configPath := getEnv("CONFIG_PATH", "config.yaml")
	config, err := loadConfig(configPath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Printf("Warning: %v, using environment defaults", err)
		}
		config = defaultConfig()
	}

	client, storeCfg, err := setupStore(ctx)
	if err != nil {
		log.Fatalf("Failed to set up store: %v", err)
	}

	var sender notify.EmailSender
	if config.Email.Enabled {
		if config.Email.Sender == "" {
			log.Fatal("email is enabled but no sender address is configured")
		}
		ses, err := ses_client.NewSESClient(ctx, config.Email.Region, config.Email.Sender)
		if err != nil {
			log.Fatalf("Failed to set up SES client: %v", err)
		}
		sender = ses
	}

	apps := setupApps(client, storeCfg, sender)

	snapshot, err := apps.Admin.SnapshotState(ctx)
	if err != nil {
		log.Fatalf("Failed to read database state: %v", err)
	}
	fmt.Printf("Voteboard ready: %d teams, %d judges, %d criteria, %d votes\n",
		snapshot.Counts.Teams, snapshot.Counts.Judges, snapshot.Counts.Criteria, snapshot.Counts.Votes)

	leaderboard, err := apps.Scoring.BuildLeaderboard(ctx)
	if err != nil {
		log.Fatalf("Failed to build leaderboard: %v", err)
	}
	for _, entry := range leaderboard {
		if !entry.Scored {
			fmt.Printf("%3d. %-30s (no votes yet)\n", entry.Rank, entry.TeamName)
			continue
		}
		fmt.Printf("%3d. %-30s %6.2f%% (%d judges, %d votes)\n",
			entry.Rank, entry.TeamName, entry.Score, entry.JudgeCount, entry.VoteCount)
	}
}
