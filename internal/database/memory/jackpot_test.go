package memory

import (
	"testing"

	"github.com/wrecklessracks/racks/internal/repository"
	"github.com/wrecklessracks/racks/internal/repository/repotest"
)

func TestJackpotStore(t *testing.T) {
	repotest.RunJackpotSuite(t, func(t *testing.T) repository.Jackpot {
		return NewJackpotStore()
	})
}
