package system

import (
	"log"

	"github.com/milk9111/platformer/component"
	"github.com/milk9111/platformer/obj"
)

// ResolveCombat applies the player's attacks to the enemies, then every
// enemy touching the player hurts it. It returns how many attack hits
// landed.
func ResolveCombat(player *obj.Player, enemies []*obj.Enemy) int {
	if player == nil || !player.Alive() {
		return 0
	}

	landed := 0
	if player.Arsenal != nil && len(enemies) > 0 {
		targets := make([]component.Target, 0, len(enemies))
		for _, e := range enemies {
			targets = append(targets, e)
		}
		landed = player.Arsenal.Strike(targets)
	}

	bounds := player.Bounds()
	center := player.Body.Center()
	for _, e := range enemies {
		if !e.Alive() || !e.Bounds().Intersects(bounds) {
			continue
		}
		// Hurt ignores the hit while the player is already reacting.
		player.Hurt(e.TouchHurtbox(center))
	}
	return landed
}

func onPlayerDamage(h *component.Health, amount float64) {
	log.Printf("player took damage: amt=%.2f left=%.2f", amount, h.Current)
}
