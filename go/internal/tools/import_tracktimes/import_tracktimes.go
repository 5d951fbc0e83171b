package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	_ "github.com/lib/pq"
	"github.com/mcdev12/matchclock/go/internal/customtime"
	"github.com/mcdev12/matchclock/go/internal/dbconfig"
	_ "modernc.org/sqlite"
)

// TrackTime mirrors one entry of the import file: a track uid and its time
// limit in whole minutes.
type TrackTime struct {
	ChallengeUID string `json:"challenge_uid"`
	Minutes      int    `json:"minutes"`
}

// parseTrackTimes accepts either a list of TrackTime entries or an object
// mapping uid to minutes. Entries are returned sorted by uid.
func parseTrackTimes(data []byte) ([]TrackTime, error) {
	var list []TrackTime
	if err := json.Unmarshal(data, &list); err != nil {
		var byUID map[string]int
		if mapErr := json.Unmarshal(data, &byUID); mapErr != nil {
			return nil, fmt.Errorf("expected a list or an object of minutes: %w", err)
		}
		for uid, mins := range byUID {
			list = append(list, TrackTime{ChallengeUID: uid, Minutes: mins})
		}
	}

	sort.Slice(list, func(i, j int) bool { return list[i].ChallengeUID < list[j].ChallengeUID })
	for _, t := range list {
		if t.ChallengeUID == "" {
			return nil, fmt.Errorf("entry without challenge_uid")
		}
		if t.Minutes <= 0 {
			return nil, fmt.Errorf("%s: minutes must be positive, got %d", t.ChallengeUID, t.Minutes)
		}
	}
	return list, nil
}

func main() {
	ctx := context.Background()

	path := "go/internal/assets/tracktimes.json"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	// 1) Load and validate the import file
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read %s: %v\n", path, err)
		os.Exit(1)
	}
	times, err := parseTrackTimes(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "parse %s: %v\n", path, err)
		os.Exit(1)
	}

	// 2) Connect using shared dbconfig
	cfg, err := dbconfig.NewConfigFromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "database config: %v\n", err)
		os.Exit(1)
	}
	db, err := sql.Open(cfg.Driver.DriverName(), cfg.DSN())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to connect: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := customtime.InitSchema(ctx, db); err != nil {
		fmt.Fprintf(os.Stderr, "init schema: %v\n", err)
		os.Exit(1)
	}
	repo := customtime.NewRepository(db, cfg.Driver)

	// 3) Write and count
	written, errs := 0, 0
	for _, t := range times {
		if err := repo.Set(ctx, t.ChallengeUID, customtime.FormatMinutes(t.Minutes)); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", t.ChallengeUID, err)
			errs++
			continue
		}
		written++
	}
	fmt.Printf("Track times import: total=%d written=%d errors=%d\n", len(times), written, errs)
}
