package snake

// BestScoreKeeper persists the best score across sessions.
// LoadBestScore is called once when a Simulation is created and
// SaveBestScore whenever a round ends above the previous best.
// Implementations deal with their own failures.
type BestScoreKeeper interface {
	LoadBestScore() int
	SaveBestScore(score int)
}

// MemoryBest keeps the best score in process memory.
type MemoryBest struct {
	Score int
	Saves int // number of SaveBestScore calls
}

// LoadBestScore implements BestScoreKeeper.
func (m *MemoryBest) LoadBestScore() int {
	return m.Score
}

// SaveBestScore implements BestScoreKeeper. Lower scores are ignored.
func (m *MemoryBest) SaveBestScore(score int) {
	m.Saves++
	if score > m.Score {
		m.Score = score
	}
}
