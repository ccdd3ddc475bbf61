package termio

import (
	"os"
	"testing"
)

func newPipe(t *testing.T) (*os.File, *os.File, error) {
	t.Helper()
	return os.Pipe()
}
