package golf

import (
	"os"
	"testing"

	"wordlegolf/internal/words"
)

func TestMain(m *testing.M) {
	if err := words.Init(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}
