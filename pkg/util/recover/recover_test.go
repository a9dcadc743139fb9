package recover

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/unikiosk/displays/pkg/util/logger"
)

func TestPanic(t *testing.T) {
	t.Parallel()
	require := require.New(t)

	var buf bytes.Buffer
	log := logger.NewWriterLogger(&buf, zap.InfoLevel)

	require.NotPanics(func() {
		defer Panic(log)
		panic("display backend exploded")
	})
	require.Contains(buf.String(), "display backend exploded")
}
