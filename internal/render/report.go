package render

import (
	"fmt"
	"strings"

	"lanewars/internal/battle"
)

// Report is a plain text summary of snap, suitable for sharing.
func Report(snap battle.Snapshot) string {
	var b strings.Builder

	status := "in progress"
	if res, ok := snap.Result(); ok {
		status = res.Headline + " " + res.Message
	}
	fmt.Fprintf(&b, "Lane battle after %d ticks: %s\n", snap.Tick, status)

	var mine, theirs int
	for _, u := range snap.Units {
		if u.Side == battle.Player {
			mine++
		} else {
			theirs++
		}
	}
	fmt.Fprintf(&b, "Player  base %d/%d  gold %d  xp %d  kills %d  units %d\n",
		int(snap.Player.HP), int(snap.Player.MaxHP), int(snap.Player.Gold), snap.Player.XP, snap.Player.Kills, mine)
	fmt.Fprintf(&b, "Enemy   base %d/%d  gold %d  kills %d  units %d\n",
		int(snap.Enemy.HP), int(snap.Enemy.MaxHP), int(snap.Enemy.Gold), snap.Enemy.Kills, theirs)
	return b.String()
}
