package sim

import "fmt"

// EventKind classifies a log entry.
type EventKind uint8

const (
	EventTurnBegan EventKind = iota
	EventConstructionStarted
	EventConstructionCompleted
	EventRecruitQueued
	EventRecruited
	EventRecruitLost
	EventCapacityLoss
	EventArmyCreated
	EventArmyMoved
	EventArmiesMerged
	EventGarrisonReinforced
	EventArmyDisbanded
	EventStackDisbanded
	EventBattle
	EventSiege
	EventMatchOver
)

var eventNames = [...]string{
	EventTurnBegan:             "turn",
	EventConstructionStarted:   "construction",
	EventConstructionCompleted: "completed",
	EventRecruitQueued:         "queued",
	EventRecruited:             "recruited",
	EventRecruitLost:           "recruit-lost",
	EventCapacityLoss:          "capacity-loss",
	EventArmyCreated:           "army-created",
	EventArmyMoved:             "moved",
	EventArmiesMerged:          "merged",
	EventGarrisonReinforced:    "reinforced",
	EventArmyDisbanded:         "disbanded",
	EventStackDisbanded:        "stack-disbanded",
	EventBattle:                "battle",
	EventSiege:                 "siege",
	EventMatchOver:             "match-over",
}

func (k EventKind) String() string {
	if int(k) < len(eventNames) {
		return eventNames[k]
	}
	return fmt.Sprintf("EventKind(%d)", uint8(k))
}

// Event is one entry of the world's append-only log.
type Event struct {
	Turn    int
	Faction FactionID
	Kind    EventKind
	Message string
	// Amount carries the gold or soldier count the event is about.
	Amount int
	Battle *BattleReport
}

func (e Event) String() string {
	return fmt.Sprintf("T%d %s %s: %s", e.Turn, e.Faction, e.Kind, e.Message)
}
