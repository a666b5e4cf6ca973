package editor

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"resourceEditorAPI/internal/codec"
	"resourceEditorAPI/internal/i18n"
	"resourceEditorAPI/internal/models"
	"resourceEditorAPI/internal/notify"
	"resourceEditorAPI/internal/samples"
)

// Loader publishes the initial resource of a session, either fetched from the cluster
// or built from the kind's sample.
type Loader struct {
	fetcher    Fetcher
	samples    SampleProvider
	notifier   notify.Notifier
	translator i18n.Translator
	logger     *zap.Logger
}

func NewLoader(fetcher Fetcher, samples SampleProvider, opts Options) *Loader {
	if opts.Notifier == nil {
		opts.Notifier = discard{}
	}
	if opts.Translator == nil {
		opts.Translator = keys{}
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Loader{
		fetcher:    fetcher,
		samples:    samples,
		notifier:   opts.Notifier,
		translator: opts.Translator,
		logger:     opts.Logger,
	}
}

// Load tracks one asynchronous fetch.
type Load struct {
	mu      sync.Mutex
	loading bool
	err     error
	done    chan struct{}
}

func (l *Load) Loading() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loading
}

func (l *Load) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.err
}

// Wait blocks until the fetch has finished or ctx is done.
func (l *Load) Wait(ctx context.Context) error {
	select {
	case <-l.done:
		return l.Err()
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (l *Load) finish(err error) {
	l.mu.Lock()
	l.loading = false
	l.err = err
	l.mu.Unlock()
	close(l.done)
}

// Load publishes the resource identified by id into dst. A new identity is built from the
// kind's sample synchronously; an existing one is fetched in the background.
func (ld *Loader) Load(ctx context.Context, id models.Identity, dst *Subject[codec.Resource]) *Load {
	l := &Load{loading: true, done: make(chan struct{})}

	if id.IsNew() {
		r, err := ld.fromSample(id)
		if err == nil {
			dst.Publish(r)
		}
		l.finish(err)
		return l
	}

	go func() {
		r, err := ld.fetcher.Fetch(ctx, id)
		if err != nil {
			ld.notifier.Error(ld.translator.Get("resource_load_fail"), err.Error())
			ld.logger.Warn("failed to fetch resource", zap.Stringer("resource", id), zap.Error(err))
			l.finish(err)
			return
		}
		dst.Publish(r)
		l.finish(nil)
	}()
	return l
}

func (ld *Loader) fromSample(id models.Identity) (codec.Resource, error) {
	text, err := ld.samples.Sample(id.Kind)
	if err != nil {
		ld.notifier.Error(ld.translator.Get("resource_load_fail"), err.Error())
		return nil, fmt.Errorf("failed to load sample for %s: %w", id.Kind, err)
	}

	c := codec.New(ld.logger, TranslatingWarner{Notifier: ld.notifier, Translator: ld.translator})
	r, err := c.Decode(samples.FeedNamespace(text, id.Namespace))
	if err != nil {
		ld.notifier.Error(ld.translator.Get("yaml_format_error_message"), err.Error())
		return nil, fmt.Errorf("failed to decode sample for %s: %w", id.Kind, err)
	}
	return r, nil
}
