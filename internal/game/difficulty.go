package game

// Standard difficulty names, in display order.
var Difficulties = []string{"BSC", "ADV", "EXT"}

// DifficultyRank sorts standard difficulties first, in their usual order.
func DifficultyRank(name string) int {
	for i, d := range Difficulties {
		if d == name {
			return i
		}
	}
	return len(Difficulties)
}
