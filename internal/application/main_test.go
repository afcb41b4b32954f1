package application

import (
	"os"
	"testing"

	"stickies/internal/logging"
)

func TestMain(m *testing.M) {
	logging.InitNop()
	os.Exit(m.Run())
}
