package handlers

import (
	"encoding/json"
	"net/http"
	"sort"
	"time"

	"github.com/calexi/crossfire/pkg/log"
	"github.com/calexi/crossfire/pkg/registry"
)

type StatusResponse struct {
	Status  string `json:"status"`
	Uptime  string `json:"uptime"`
	Players int    `json:"players"`
}

// PlayerSummary is one scoreboard row.
type PlayerSummary struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Score    int    `json:"score"`
	Deaths   int    `json:"deaths"`
	Alive    bool   `json:"alive"`
}

func HandleStatus(reg *registry.Registry, startedAt time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, &StatusResponse{
			Status:  "ok",
			Uptime:  time.Since(startedAt).Truncate(time.Second).String(),
			Players: reg.Len(),
		})
	}
}

// HandleListPlayers returns the scoreboard sorted by score, then deaths.
func HandleListPlayers(reg *registry.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snapshot := reg.Snapshot()
		players := make([]PlayerSummary, 0, len(snapshot))
		for _, player := range snapshot {
			players = append(players, PlayerSummary{
				ID:       player.ID,
				Username: player.Username,
				Score:    player.Score,
				Deaths:   player.Deaths,
				Alive:    player.Alive,
			})
		}
		sort.Slice(players, func(i, j int) bool {
			if players[i].Score != players[j].Score {
				return players[i].Score > players[j].Score
			}
			if players[i].Deaths != players[j].Deaths {
				return players[i].Deaths < players[j].Deaths
			}
			return players[i].ID < players[j].ID
		})
		writeJSON(w, players)
	}
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to encode response: %v", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}
