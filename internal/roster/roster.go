package roster

import "github.com/xtding233/kessan-board/internal/growth"

// MaxSlots is the fixed size of the roster.
const MaxSlots = 4

// Participant is one roster slot. ID and Color never change; Name is editable.
type Participant struct {
	ID      string         `json:"id"`
	Name    string         `json:"name"`
	Color   string         `json:"color"`
	Profile growth.Profile `json:"-"`
}

// DefaultParticipants returns the four presidents of a fresh board.
func DefaultParticipants() []Participant {
	return []Participant{
		{ID: "player1", Name: "ももたろ社長", Color: "#ef4444", Profile: growth.SlotProfiles[0]},
		{ID: "player2", Name: "きんたろ社長", Color: "#3b82f6", Profile: growth.SlotProfiles[1]},
		{ID: "player3", Name: "うらしま社長", Color: "#22c55e", Profile: growth.SlotProfiles[2]},
		{ID: "player4", Name: "やしゃ社長", Color: "#eab308", Profile: growth.SlotProfiles[3]},
	}
}

// Roster holds up to MaxSlots participants in slot order; the first
// `active` of them are shown and edited.
type Roster struct {
	slots  []Participant
	active int
}

// New copies ps (extra entries beyond MaxSlots are dropped) and activates
// every slot. A participant without a profile inherits its slot's default;
// an empty list falls back to DefaultParticipants.
func New(ps []Participant) *Roster {
	if len(ps) == 0 {
		ps = DefaultParticipants()
	}
	if len(ps) > MaxSlots {
		ps = ps[:MaxSlots]
	}
	slots := make([]Participant, len(ps))
	copy(slots, ps)
	for i := range slots {
		if slots[i].Profile == "" {
			slots[i].Profile = growth.SlotProfiles[i]
		}
	}
	return &Roster{slots: slots, active: len(slots)}
}

// SetActiveCount clamps k to [1, len] and reports whether it changed.
func (r *Roster) SetActiveCount(k int) bool {
	if k > len(r.slots) {
		k = len(r.slots)
	}
	if k < 1 {
		k = 1
	}
	if k == r.active {
		return false
	}
	r.active = k
	return true
}

func (r *Roster) ActiveCount() int { return r.active }

// Active returns a copy of the active prefix, never re-sorted.
func (r *Roster) Active() []Participant {
	out := make([]Participant, r.active)
	copy(out, r.slots[:r.active])
	return out
}

// All returns a copy of every slot, active or not.
func (r *Roster) All() []Participant {
	out := make([]Participant, len(r.slots))
	copy(out, r.slots)
	return out
}

// Rename sets the display name of id. Unknown ids are ignored.
func (r *Roster) Rename(id, name string) bool {
	for i := range r.slots {
		if r.slots[i].ID == id {
			if r.slots[i].Name == name {
				return false
			}
			r.slots[i].Name = name
			return true
		}
	}
	return false
}

// Slots maps every participant to its generator profile.
func (r *Roster) Slots() []growth.Slot {
	out := make([]growth.Slot, len(r.slots))
	for i, p := range r.slots {
		out[i] = growth.Slot{ID: p.ID, Profile: p.Profile}
	}
	return out
}
