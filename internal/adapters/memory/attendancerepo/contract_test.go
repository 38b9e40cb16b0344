package attendancerepo

import (
	"testing"

	"github.com/village-coders/attendance-api/internal/adapters/contracttest"
	attendancerepoport "github.com/village-coders/attendance-api/internal/ports/out/attendancerepo"
)

func TestContract_AttendanceRepo(t *testing.T) {
	contracttest.RunAttendanceRepo(t, func(t *testing.T) (attendancerepoport.Repository, func()) {
		t.Helper()
		return NewRepo(), nil
	})
}
