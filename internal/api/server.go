// Package api provides the read-only HTTP view of a running match: faction
// summaries, economy and threat gauges, groups, and recent events. There is
// no mutating endpoint — the match runs itself.
package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/talgya/vanguard/internal/engine"
	"github.com/talgya/vanguard/internal/faction"
	"github.com/talgya/vanguard/internal/world"
)

// Server serves match state over HTTP.
type Server struct {
	Registry *faction.Registry
	Eng      *engine.Engine
	Port     int
}

// Start registers routes and serves in the background.
func (s *Server) Start() {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/v1/status", s.handleStatus)
	mux.HandleFunc("/api/v1/factions", s.handleFactions)
	mux.HandleFunc("/api/v1/faction/", s.handleFactionDetail)
	mux.HandleFunc("/api/v1/events", s.handleEvents)

	addr := fmt.Sprintf(":%d", s.Port)
	slog.Info("HTTP API starting", "addr", addr)

	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}

// handleStatus returns the match-level summary.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	type status struct {
		SimSeconds float64  `json:"sim_seconds"`
		Factions   []string `json:"factions"`
	}
	out := status{SimSeconds: s.Eng.Elapsed()}
	for _, c := range s.Registry.All() {
		out.Factions = append(out.Factions, c.Summary())
	}
	writeJSON(w, out)
}

// factionView is the JSON shape of one faction's public state.
type factionView struct {
	ID        world.FactionID   `json:"id"`
	Name      string            `json:"name"`
	Archetype string            `json:"archetype"`
	Strategy  string            `json:"strategy"`
	Active    bool              `json:"active"`
	Economy   float64           `json:"economy_strength"`
	Threat    float64           `json:"threat_level"`
	Military  float64           `json:"military_strength"`
	WinRate   float64           `json:"win_rate"`
	Stockpile map[string]string `json:"stockpile"` // humanized amounts
	Groups    []groupView       `json:"groups"`
	Research  []string          `json:"research"`
}

type groupView struct {
	Name      string  `json:"name"`
	Kind      string  `json:"kind"`
	Objective string  `json:"objective"`
	Units     int     `json:"units"`
	Strength  float64 `json:"strength"`
}

func viewOf(c *faction.Controller) factionView {
	v := factionView{
		ID:        c.ID,
		Name:      c.Name,
		Archetype: c.Profile.Name,
		Strategy:  string(c.Profile.PreferredStrategy),
		Active:    c.Active(),
		Economy:   c.Ledger.EconomyStrength(),
		Threat:    c.ThreatLevel(),
		Military:  c.MilitaryStrength(),
		WinRate:   c.Profile.WinRate,
		Stockpile: map[string]string{},
		Research:  c.CompletedResearch(),
	}
	for kind, amount := range c.Ledger.Snapshot() {
		v.Stockpile[string(kind)] = humanize.Comma(int64(amount))
	}
	for _, g := range c.Groups.Groups() {
		v.Groups = append(v.Groups, groupView{
			Name:      g.Name,
			Kind:      string(g.Kind),
			Objective: g.Objective,
			Units:     g.Size(),
			Strength:  g.Strength(),
		})
	}
	return v
}

// handleFactions lists every faction's view.
func (s *Server) handleFactions(w http.ResponseWriter, r *http.Request) {
	out := make([]factionView, 0, len(s.Registry.All()))
	for _, c := range s.Registry.All() {
		out = append(out, viewOf(c))
	}
	writeJSON(w, out)
}

// handleFactionDetail returns one faction by numeric ID.
func (s *Server) handleFactionDetail(w http.ResponseWriter, r *http.Request) {
	idStr := strings.TrimPrefix(r.URL.Path, "/api/v1/faction/")
	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		http.Error(w, "bad faction id", http.StatusBadRequest)
		return
	}
	c := s.Registry.ByID(world.FactionID(id))
	if c == nil {
		http.Error(w, "faction not found", http.StatusNotFound)
		return
	}
	writeJSON(w, viewOf(c))
}

// handleEvents returns every faction's retained event log, merged.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	var out []faction.Event
	for _, c := range s.Registry.All() {
		out = append(out, c.RecentEvents()...)
	}
	writeJSON(w, out)
}
