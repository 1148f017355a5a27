package notify

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogSinkPublishes(t *testing.T) {
	log, hook := test.NewNullLogger()
	sink := NewLogSink(log, 16)

	sink.Publish(Intent{UserID: "u1", Description: "water the plants"})
	sink.Publish(Intent{UserID: "u2", Description: "call the dentist"})
	sink.Close()

	entries := hook.AllEntries()
	require.Len(t, entries, 2)
	assert.Equal(t, logrus.InfoLevel, entries[0].Level)
	assert.Contains(t, entries[0].Message, "u1")
	assert.Contains(t, entries[0].Message, "water the plants")
}

func TestLogSinkPublishAfterClose(t *testing.T) {
	log, hook := test.NewNullLogger()
	sink := NewLogSink(log, 16)
	sink.Close()

	// a straggling publish after shutdown is dropped, not a panic
	sink.Publish(Intent{UserID: "u1", Description: "too late"})

	entries := hook.AllEntries()
	require.Len(t, entries, 1)
	assert.Equal(t, logrus.WarnLevel, entries[0].Level)

	// Close is idempotent
	sink.Close()
}

func TestLogSinkPublishNeverBlocks(t *testing.T) {
	log, _ := test.NewNullLogger()
	sink := NewLogSink(log, 1)

	// far more intents than the buffer holds; Publish must return regardless
	for i := 0; i < 100; i++ {
		sink.Publish(Intent{UserID: "u1", Description: "spam"})
	}
	sink.Close()
}
