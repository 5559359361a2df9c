package storage

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/snake-tui/internal/games/snake"
)

// Keeper adapts a Store to snake.BestScoreKeeper. Storage failures are
// logged and swallowed; the game keeps running with the in-memory value.
type Keeper struct {
	store  *Store
	key    string
	logger *log.Logger
}

// NewKeeper returns a keeper storing the best score under key.
// A nil logger uses the charm default logger.
func NewKeeper(store *Store, key string, logger *log.Logger) *Keeper {
	if key == "" {
		key = DefaultBestKey
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Keeper{store: store, key: key, logger: logger}
}

// LoadBestScore implements snake.BestScoreKeeper.
func (k *Keeper) LoadBestScore() int {
	score, err := k.store.BestScore(k.key)
	if err != nil {
		k.logger.Warn("cannot load best score", "key", k.key, "err", err)
		return 0
	}
	return score
}

// SaveBestScore implements snake.BestScoreKeeper.
func (k *Keeper) SaveBestScore(score int) {
	changed, err := k.store.SetBestScore(k.key, score)
	if err != nil {
		k.logger.Warn("cannot save best score", "key", k.key, "score", score, "err", err)
		return
	}
	if changed {
		k.logger.Info("new best score", "key", k.key, "score", score)
	}
}

var _ snake.BestScoreKeeper = (*Keeper)(nil)
