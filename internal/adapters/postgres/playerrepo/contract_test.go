package playerrepo

import (
	"testing"

	"github.com/village-coders/attendance-api/internal/adapters/contracttest"
	"github.com/village-coders/attendance-api/internal/adapters/postgres/testutil"
	playerrepoport "github.com/village-coders/attendance-api/internal/ports/out/playerrepo"
)

func TestContract_PlayerRepo(t *testing.T) {
	contracttest.RunPlayerRepo(t, func(t *testing.T) (playerrepoport.Repository, func()) {
		t.Helper()
		return NewRepo(testutil.OpenMigratedPool(t)), nil
	})
}
