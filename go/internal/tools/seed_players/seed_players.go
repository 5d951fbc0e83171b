package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mcdev12/matchclock/go/internal/dbconfig"
	"github.com/mcdev12/matchclock/go/internal/players"
)

// Player mirrors one entry of the players JSON snapshot.
type Player struct {
	Login    string `json:"login"`
	Nickname string `json:"nickname"`
}

func main() {
	ctx := context.Background()

	path := "go/internal/assets/players.json"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	// 1) Load the JSON snapshot
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read %s: %v\n", path, err)
		os.Exit(1)
	}
	var snapshot []Player
	if err := json.Unmarshal(data, &snapshot); err != nil {
		fmt.Fprintf(os.Stderr, "unmarshal players: %v\n", err)
		os.Exit(1)
	}

	// 2) Connect to the players database
	dsn := os.Getenv("PLAYERS_DB")
	if dsn == "" {
		cfg, err := dbconfig.NewConfigFromEnv()
		if err != nil {
			fmt.Fprintf(os.Stderr, "database config: %v\n", err)
			os.Exit(1)
		}
		dsn = cfg.PostgresDSN()
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		fmt.Fprintf(os.Stderr, "connect error: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	dir := players.NewDirectory(pool)
	if err := dir.InitSchema(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "init schema: %v\n", err)
		os.Exit(1)
	}

	// 3) Upsert and count
	total, written, unchanged, errs := len(snapshot), 0, 0, 0
	for _, p := range snapshot {
		ok, err := dir.Upsert(ctx, p.Login, p.Nickname)
		if err != nil {
			fmt.Fprintf(os.Stderr, "player %q: %v\n", p.Login, err)
			errs++
			continue
		}
		if ok {
			written++
		} else {
			unchanged++
		}
	}
	fmt.Printf(
		"Players seed: total=%d written=%d unchanged=%d errors=%d\n",
		total, written, unchanged, errs,
	)
}
