package reconcile

import (
	"fmt"

	"github.com/osse101/TheDigger_Go/internal/domain"
)

// keyspace builds every store key for one namespace.
type keyspace struct {
	ns string
}

func (k keyspace) snapshot(playerID string) string { return fmt.Sprintf(keySnapshotFmt, k.ns, playerID) }
func (k keyspace) money() string                   { return fmt.Sprintf(keyMoneyFmt, k.ns) }
func (k keyspace) depth() string                   { return fmt.Sprintf(keyDepthFmt, k.ns) }

// nameIndex maps folded name to canonical spelling.
func (k keyspace) nameIndex() string { return fmt.Sprintf(keyNameIndexFmt, k.ns) }

// nameOwner maps folded name to the owning player id.
func (k keyspace) nameOwner() string { return fmt.Sprintf(keyNameOwnerFmt, k.ns) }

// rankedName maps player id to the member it currently occupies on the boards.
func (k keyspace) rankedName() string { return fmt.Sprintf(keyRankedNameFmt, k.ns) }

// clicks is the player's last persisted totalClicks. It survives reset.
func (k keyspace) clicks(playerID string) string { return fmt.Sprintf(keyClicksFmt, k.ns, playerID) }
func (k keyspace) globalClicks() string          { return fmt.Sprintf(keyGlobalClickFmt, k.ns) }

func (k keyspace) goal(dateKey string, dim domain.GoalDimension) string {
	return fmt.Sprintf(keyGoalFmt, k.ns, dateKey, dim)
}

func (k keyspace) goalHistory() string { return fmt.Sprintf(keyGoalHistoryFmt, k.ns) }
func (k keyspace) activity() string    { return fmt.Sprintf(keyActivityFmt, k.ns) }
func (k keyspace) lock(playerID string) string {
	return fmt.Sprintf(keyLockFmt, k.ns, playerID)
}
