package playerrepo

import (
	"testing"

	"github.com/village-coders/attendance-api/internal/adapters/contracttest"
	playerrepoport "github.com/village-coders/attendance-api/internal/ports/out/playerrepo"
)

func TestContract_PlayerRepo(t *testing.T) {
	contracttest.RunPlayerRepo(t, func(t *testing.T) (playerrepoport.Repository, func()) {
		t.Helper()
		return NewRepo(), nil
	})
}
