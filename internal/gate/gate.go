// Package gate runs the final consistency checks on a completed answer
// set before it is scored.
//
// Fatal violations block scoring and come back as a *FatalError; the
// answers stay untouched so they can be corrected and the gate re-run.
// Warnings are logged and reported but never block.
package gate

import (
	"fmt"
	"log/slog"

	"github.com/HendryAvila/flameo/internal/audit"
	"github.com/HendryAvila/flameo/internal/catalog"
)

// Gate evaluates answer sets against a fixed Config.
type Gate struct {
	config Config
	logger *slog.Logger
}

// New creates a gate. A nil logger uses slog.Default().
func New(config Config, logger *slog.Logger) *Gate {
	if logger == nil {
		logger = slog.Default()
	}
	return &Gate{config: config, logger: logger}
}

// Check runs every check. All fatal violations are collected, not just
// the first. The error is a *FatalError when the report is not OK.
func (g *Gate) Check(a *audit.AnswerMap) (Report, error) {
	var r Report

	// --- Fatal checks ---

	size, hasSize := a.Number(catalog.KeyBuildingSize)
	if rooms, ok := a.Numbers(catalog.KeyRoomSizes); ok && hasSize {
		total := 0.0
		for _, s := range rooms {
			total += s
		}
		if limit := size * g.config.RoomAreaFactor; total > limit {
			r.Fatal = append(r.Fatal, Violation{
				Type: ViolationRoomArea,
				Reason: fmt.Sprintf("la surface totale des pièces (%.0f m²) dépasse %.1f fois la surface du bâtiment (%.0f m²)",
					total, g.config.RoomAreaFactor, size),
			})
		}
	}

	if density, ok := catalog.Density(a); ok && density > g.config.MaxDensity {
		r.Fatal = append(r.Fatal, Violation{
			Type:   ViolationDensity,
			Reason: fmt.Sprintf("densité d'occupation irréaliste : %.1f pers/m²", density),
		})
	}

	if exits, _ := a.Int(catalog.KeyEmergencyExits); exits == 0 {
		r.Fatal = append(r.Fatal, Violation{
			Type:   ViolationNoExits,
			Reason: "aucune sortie de secours déclarée",
		})
	}

	// --- Warnings ---

	if n, ok := a.Int(catalog.KeyFireExtinguishers); ok && n == 0 && hasSize && size > g.config.ExtinguisherWarningArea {
		v := Violation{
			Type:   ViolationNoExtinguishers,
			Reason: fmt.Sprintf("aucun extincteur pour %.0f m²", size),
		}
		r.Warnings = append(r.Warnings, v)
		g.logger.Warn("consistency gate warning", "type", v.Type, "building_size", size)
	}

	if !r.OK() {
		return r, &FatalError{Violations: r.Fatal}
	}
	return r, nil
}

// Check runs the default gate.
func Check(a *audit.AnswerMap, logger *slog.Logger) (Report, error) {
	return New(DefaultConfig(), logger).Check(a)
}
