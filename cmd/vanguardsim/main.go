// Command vanguardsim runs a headless match between AI factions and records
// the outcome, so opponents carry their learned profiles into the next game.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/talgya/vanguard/internal/api"
	"github.com/talgya/vanguard/internal/config"
	"github.com/talgya/vanguard/internal/econ"
	"github.com/talgya/vanguard/internal/engine"
	"github.com/talgya/vanguard/internal/entropy"
	"github.com/talgya/vanguard/internal/faction"
	"github.com/talgya/vanguard/internal/persistence"
	"github.com/talgya/vanguard/internal/profile"
	"github.com/talgya/vanguard/internal/sim"
	"github.com/talgya/vanguard/internal/world"
)

func main() {
	var (
		seed       = flag.Int64("seed", 0, "match seed (0 = random)")
		dbPath     = flag.String("db", "data/vanguard.db", "SQLite database path")
		port       = flag.Int("port", 8080, "HTTP API port")
		archetypes = flag.String("archetypes", "Rusher,Turtle", "comma-separated archetype list, one faction each")
		difficulty = flag.String("difficulty", "normal", "easy|normal|hard|insane")
		profiles   = flag.String("profiles", "", "optional YAML profile overrides")
		duration   = flag.Float64("duration", 0, "sim seconds to fast-forward (0 = run paced until signal)")
		speed      = flag.Float64("speed", 1.0, "pacing multiplier for the real-time loop")
	)
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	rand := entropy.NewSource(*seed)
	slog.Info("Vanguard — autonomous RTS opponent", "seed", rand.Seed)

	// ── Database ──────────────────────────────────────────────────────
	db, err := persistence.Open(*dbPath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	slog.Info("database opened", "path", *dbPath)

	// ── Profile definitions ───────────────────────────────────────────
	profileFile, err := config.Load(*profiles)
	if err != nil {
		slog.Error("failed to load profiles", "error", err)
		os.Exit(1)
	}
	diff := profile.ParseDifficulty(*difficulty)

	// ── Battlefield and factions ──────────────────────────────────────
	battlefield := sim.NewWorld(rand.Seed)
	registry := faction.NewRegistry()

	battlefield.Ledgers = func(id world.FactionID) *econ.Ledger {
		if c := registry.ByID(id); c != nil {
			return c.Ledger
		}
		return nil
	}
	battlefield.OnDamage = func(victim world.FactionID, pos world.Vec3) {
		if c := registry.ByID(victim); c != nil {
			c.NotifyUnderAttack(pos)
		}
	}

	names := strings.Split(*archetypes, ",")
	spacing := 2 * math.Pi / float64(len(names))
	const baseRing = 120.0

	for i, arch := range names {
		arch = strings.TrimSpace(arch)
		prof := profileFile.ProfileFor(arch, diff)
		if err := db.RestoreLearnedProfile(prof, string(diff)); err != nil {
			slog.Warn("profile restore failed", "archetype", arch, "error", err)
		}

		deps := faction.Deps{
			Factory:   battlefield,
			Placement: battlefield,
			Query:     battlefield,
			Nodes:     battlefield,
			Terrain:   battlefield.Terrain,
			Rand:      rand.Fork(int64(i + 1)),
		}
		id := world.FactionID(i + 1)
		name := fmt.Sprintf("%s-%d", arch, id)
		c := faction.NewController(id, name, prof, deps, registry)

		angle := spacing * float64(i)
		base := world.Vec3{X: baseRing * math.Cos(angle), Z: baseRing * math.Sin(angle)}
		c.EstablishBase(base, world.Cost{
			world.Credits: 2000,
			world.Energy:  1000,
			world.Nanites: 200,
			world.Data:    50,
		})

		// Every faction starts with a headquarters and a small garrison.
		battlefield.CreateBuilding("hq", c.Home(), id)
		for j := 0; j < 3; j++ {
			dx, dz := deps.Rand.Offset(6.0)
			pos := battlefield.Terrain.SurfacePoint(base.X+dx, base.Z+dz)
			battlefield.CreateUnit("trooper", pos, id)
		}

		slog.Info("faction ready", "summary", c.Summary())
	}

	// ── Engine ────────────────────────────────────────────────────────
	eng := engine.NewEngine()
	eng.Speed = *speed
	eng.OnStep = func(dt float64) {
		registry.Tick(dt)
		battlefield.Step(dt)
	}

	apiServer := &api.Server{Registry: registry, Eng: eng, Port: *port}
	apiServer.Start()

	if *duration > 0 {
		eng.RunFor(*duration)
	} else {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			sig := <-sigCh
			slog.Info("received signal, shutting down", "signal", sig)
			eng.Stop()
		}()
		fmt.Printf("Match running. API: http://localhost:%d/api/v1/status (Ctrl+C to stop)\n", *port)
		eng.Run()
	}

	// ── Outcome ───────────────────────────────────────────────────────
	winner := scoreMatch(registry, battlefield)
	var lines []persistence.MatchFaction
	for _, c := range registry.All() {
		won := c.Name == winner
		c.RecordBattleResult(won)
		lines = append(lines, persistence.MatchFaction{
			Name:       c.Name,
			Archetype:  c.Profile.Name,
			Difficulty: string(diff),
			Kills:      battlefield.Kills[c.ID],
			UnitsLost:  battlefield.Losses[c.ID],
			Won:        won,
		})
		if err := db.SaveLearnedProfile(c.Profile, string(diff)); err != nil {
			slog.Error("profile save failed", "faction", c.Name, "error", err)
		}
	}

	matchID, err := db.SaveMatch(rand.Seed, eng.Elapsed(), winner, lines)
	if err != nil {
		slog.Error("match save failed", "error", err)
	} else {
		for _, c := range registry.All() {
			if err := db.SaveEvents(matchID, c.RecentEvents()); err != nil {
				slog.Error("event save failed", "faction", c.Name, "error", err)
			}
		}
	}

	fmt.Printf("Match over after %.0fs sim time. Winner: %s\n", eng.Elapsed(), winner)
	for _, c := range registry.All() {
		fmt.Println("  " + c.Summary())
	}
}

// scoreMatch names the winning faction: most military strength, kills as the
// tiebreaker.
func scoreMatch(registry *faction.Registry, battlefield *sim.World) string {
	winner := ""
	bestScore := -1.0
	for _, c := range registry.All() {
		score := c.MilitaryStrength() + float64(battlefield.Kills[c.ID])*50.0
		if score > bestScore {
			bestScore = score
			winner = c.Name
		}
	}
	return winner
}
