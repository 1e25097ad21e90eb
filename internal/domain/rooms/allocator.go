package rooms

import "math/rand"

// pairKey orders a member pair so (a,b) and (b,a) share one counter.
func pairKey(a, b string) [2]string {
	if a < b {
		return [2]string{a, b}
	}
	return [2]string{b, a}
}

// PairCounts counts how often each member pair shared a room across the
// given past assignments.
func PairCounts(history []Assignment) map[[2]string]int {
	counts := make(map[[2]string]int)
	for _, a := range history {
		ids := a.AssignedMemberIDs
		for i := 0; i < len(ids); i++ {
			for j := i + 1; j < len(ids); j++ {
				counts[pairKey(ids[i], ids[j])]++
			}
		}
	}
	return counts
}

// Allocate spreads memberIDs across roomCount rooms, preferring the room
// where a member has shared a room with the current occupants the fewest
// times. Ties are broken randomly via rng. Room sizes are kept balanced:
// only rooms at the current minimum occupancy are candidates.
func Allocate(memberIDs []string, roomCount int, pairs map[[2]string]int, rng *rand.Rand) []RoomPlan {
	rooms := make([]RoomPlan, roomCount)

	shuffled := append([]string(nil), memberIDs...)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	for _, id := range shuffled {
		minSize := len(shuffled) + 1
		for _, room := range rooms {
			if len(room.MemberIDs) < minSize {
				minSize = len(room.MemberIDs)
			}
		}

		bestCost := -1
		var candidates []int
		for i, room := range rooms {
			if len(room.MemberIDs) != minSize {
				continue
			}
			cost := 0
			for _, occupant := range room.MemberIDs {
				cost += pairs[pairKey(id, occupant)]
			}
			switch {
			case bestCost == -1 || cost < bestCost:
				bestCost = cost
				candidates = candidates[:0]
				candidates = append(candidates, i)
			case cost == bestCost:
				candidates = append(candidates, i)
			}
		}

		pick := candidates[rng.Intn(len(candidates))]
		rooms[pick].MemberIDs = append(rooms[pick].MemberIDs, id)
	}

	return rooms
}
