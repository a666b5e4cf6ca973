package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestRecorder_Drain(t *testing.T) {
	r := NewRecorder(nil)

	r.Success("created")
	r.Warning("only the first document is used")
	r.Error("YAML format error", "line 1: did not find expected key")

	assert.Equal(t, []Notification{
		{Level: LevelSuccess, Content: "created"},
		{Level: LevelWarning, Content: "only the first document is used"},
		{Level: LevelError, Title: "YAML format error", Content: "line 1: did not find expected key"},
	}, r.Drain())

	// drained entries are gone
	assert.Empty(t, r.Drain())
}

func TestRecorder_LogsWarningsAndErrors(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	r := NewRecorder(zap.New(core))

	r.Success("ok")
	r.Warning("careful")
	r.Error("title", "content")

	assert.Equal(t, 2, logs.Len())
	assert.Equal(t, "careful", logs.All()[0].ContextMap()["content"])
}
