package editor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resourceEditorAPI/internal/codec"
	"resourceEditorAPI/internal/models"
	"resourceEditorAPI/internal/notify"
)

type fakeFetcher struct {
	resource codec.Resource
	err      error
	release  chan struct{}
}

func (f *fakeFetcher) Fetch(ctx context.Context, id models.Identity) (codec.Resource, error) {
	if f.release != nil {
		<-f.release
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.resource, nil
}

type fakeSamples map[string]string

func (f fakeSamples) Sample(kind string) (string, error) {
	s, ok := f[kind]
	if !ok {
		return "", errors.New("no sample")
	}
	return s, nil
}

func TestLoader_CreateFlowUsesSample(t *testing.T) {
	rec := notify.NewRecorder(nil)
	loader := NewLoader(nil, fakeSamples{"Secret": "kind: Secret\nmetadata:\n  namespace: {{namespace}}\n"}, Options{Notifier: rec})

	source := NewSubject[codec.Resource]()
	load := loader.Load(context.Background(), models.Identity{Kind: "Secret", Namespace: "team-a"}, source)

	require.NoError(t, load.Wait(context.Background()))
	assert.False(t, load.Loading())

	got, ok := replayed(source)
	require.True(t, ok)
	assert.Equal(t, codec.Resource{
		"kind":     "Secret",
		"metadata": map[string]any{"namespace": "team-a"},
	}, got)
	assert.Empty(t, rec.Drain())
}

func TestLoader_CreateFlowMissingSample(t *testing.T) {
	rec := notify.NewRecorder(nil)
	loader := NewLoader(nil, fakeSamples{}, Options{Notifier: rec})

	source := NewSubject[codec.Resource]()
	load := loader.Load(context.Background(), models.Identity{Kind: "Widget", Namespace: "ns"}, source)

	assert.Error(t, load.Err())
	_, ok := replayed(source)
	assert.False(t, ok)

	notes := rec.Drain()
	require.Len(t, notes, 1)
	assert.Equal(t, "resource_load_fail", notes[0].Title)
}

func TestLoader_UpdateFlowFetchesInBackground(t *testing.T) {
	fetcher := &fakeFetcher{
		resource: codec.Resource{"kind": "ConfigMap"},
		release:  make(chan struct{}),
	}
	loader := NewLoader(fetcher, nil, Options{})

	c := NewCoordinator[codec.Resource](Identity{}, Options{})
	source := NewSubject[codec.Resource]()
	defer c.Bind(source)()

	load := loader.Load(context.Background(), existing, source)
	assert.True(t, load.Loading())
	assert.False(t, c.Initialized())

	close(fetcher.release)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, load.Wait(ctx))

	assert.False(t, load.Loading())
	assert.True(t, c.Initialized())
	assert.Equal(t, codec.Resource{"kind": "ConfigMap"}, c.FormModel())
}

func TestLoader_UpdateFlowFetchError(t *testing.T) {
	rec := notify.NewRecorder(nil)
	loader := NewLoader(&fakeFetcher{err: errors.New("not found")}, nil, Options{Notifier: rec})

	source := NewSubject[codec.Resource]()
	load := loader.Load(context.Background(), existing, source)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	assert.EqualError(t, load.Wait(ctx), "not found")

	notes := rec.Drain()
	require.Len(t, notes, 1)
	assert.Equal(t, notify.Notification{Level: notify.LevelError, Title: "resource_load_fail", Content: "not found"}, notes[0])
}

func TestLoad_WaitHonoursContext(t *testing.T) {
	fetcher := &fakeFetcher{release: make(chan struct{})}
	defer close(fetcher.release)

	load := NewLoader(fetcher, nil, Options{}).Load(context.Background(), existing, NewSubject[codec.Resource]())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, load.Wait(ctx), context.Canceled)
}
