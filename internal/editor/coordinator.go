// Package editor keeps one resource editable as either a structured form model or YAML text.
package editor

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"resourceEditorAPI/internal/codec"
	"resourceEditorAPI/internal/i18n"
	"resourceEditorAPI/internal/models"
	"resourceEditorAPI/internal/notify"
)

// Mode is the active editing representation.
type Mode string

const (
	ModeForm Mode = "form"
	ModeYAML Mode = "yaml"
)

func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case ModeForm, ModeYAML:
		return m, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidMode, s)
	}
}

var (
	ErrInvalidMode      = errors.New("invalid mode")
	ErrWrongMode        = errors.New("operation not allowed in the current mode")
	ErrNotInitialized   = errors.New("editor has not been seeded yet")
	ErrSubmitInProgress = errors.New("a submission is already in progress")
)

// Options carries the collaborators of a Coordinator. Zero values are replaced by no-ops.
type Options struct {
	Notifier   notify.Notifier
	Translator i18n.Translator
	Logger     *zap.Logger
	Policy     DuplicateKeyPolicy
}

// State is a snapshot of a Coordinator.
type State[S any] struct {
	Mode        Mode
	FormModel   S
	YAML        string
	Initialized bool
	Submitted   bool
	Submitting  bool
}

// Coordinator owns the authoritative value of one edit session: the form model in form mode,
// the YAML text in yaml mode. The other representation is derived only on a mode switch.
type Coordinator[S any] struct {
	mu sync.Mutex

	adapter    ResourceAdapter[S]
	codec      *codec.Codec
	notifier   notify.Notifier
	translator i18n.Translator
	logger     *zap.Logger
	policy     DuplicateKeyPolicy

	mode        Mode
	formModel   S
	yamlText    string
	initialized bool
	submitted   bool
	submitting  bool
}

func NewCoordinator[S any](adapter ResourceAdapter[S], opts Options) *Coordinator[S] {
	if opts.Notifier == nil {
		opts.Notifier = discard{}
	}
	if opts.Translator == nil {
		opts.Translator = keys{}
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Policy == "" {
		opts.Policy = PolicyReject
	}

	return &Coordinator[S]{
		adapter:    adapter,
		codec:      codec.New(opts.Logger, TranslatingWarner{Notifier: opts.Notifier, Translator: opts.Translator}),
		notifier:   opts.Notifier,
		translator: opts.Translator,
		logger:     opts.Logger,
		policy:     opts.Policy,
		mode:       ModeForm,
	}
}

// Seed initializes both representations from the first resource that arrives.
// Later values are ignored so a late response cannot clobber user edits.
func (c *Coordinator[S]) Seed(r codec.Resource) (bool, error) {
	if r == nil {
		return false, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.initialized {
		return false, nil
	}

	form, err := c.adapter.AdaptResourceModel(r)
	if err != nil {
		c.notifier.Error(c.translator.Get("resource_load_fail"), err.Error())
		return false, fmt.Errorf("failed to adapt resource: %w", err)
	}

	c.formModel = form
	c.yamlText, _ = c.formToYAML(form)
	c.initialized = true
	return true, nil
}

// Bind seeds the coordinator from a subject. The returned func unsubscribes.
func (c *Coordinator[S]) Bind(source *Subject[codec.Resource]) func() {
	return source.Subscribe(func(r codec.Resource) {
		if _, err := c.Seed(r); err != nil {
			c.logger.Warn("seeding failed", zap.Error(err))
		}
	})
}

// SetMode switches representation. Re-selecting the current mode does nothing.
// Leaving yaml mode with text that does not parse keeps the coordinator in yaml mode.
// Nothing can be edited before the coordinator is seeded.
func (c *Coordinator[S]) SetMode(mode Mode) error {
	if _, err := ParseMode(string(mode)); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return ErrNotInitialized
	}
	if mode == c.mode {
		return nil
	}

	if mode == ModeForm {
		form, err := c.yamlToForm(c.yamlText)
		if err != nil {
			return err
		}
		c.formModel = form
		c.mode = ModeForm
		c.submitted = false
		return nil
	}

	text, err := c.formToYAML(c.formModel)
	if err != nil {
		return err
	}
	c.yamlText = text
	c.mode = ModeYAML
	return nil
}

// SetFormModel replaces the form model. Only allowed in form mode.
func (c *Coordinator[S]) SetFormModel(form S) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return ErrNotInitialized
	}
	if c.mode != ModeForm {
		return ErrWrongMode
	}
	c.formModel = form
	return nil
}

// UpdateFormModel applies fn to the form model under the lock. Only allowed in form mode.
func (c *Coordinator[S]) UpdateFormModel(fn func(S) (S, error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return ErrNotInitialized
	}
	if c.mode != ModeForm {
		return ErrWrongMode
	}
	form, err := fn(c.formModel)
	if err != nil {
		return err
	}
	c.formModel = form
	return nil
}

// SetYAML replaces the YAML text. Only allowed in yaml mode.
func (c *Coordinator[S]) SetYAML(text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return ErrNotInitialized
	}
	if c.mode != ModeYAML {
		return ErrWrongMode
	}
	c.yamlText = text
	return nil
}

func (c *Coordinator[S]) Mode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

func (c *Coordinator[S]) FormModel() S {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.formModel
}

func (c *Coordinator[S]) YAML() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.yamlText
}

func (c *Coordinator[S]) Initialized() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.initialized
}

// Submitted reports whether a submit was attempted since the last switch into form mode.
func (c *Coordinator[S]) Submitted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.submitted
}

func (c *Coordinator[S]) Submitting() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.submitting
}

// SubmitDisabled is true while a submission is in flight.
func (c *Coordinator[S]) SubmitDisabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.submitting
}

func (c *Coordinator[S]) State() State[S] {
	c.mu.Lock()
	defer c.mu.Unlock()

	return State[S]{
		Mode:        c.mode,
		FormModel:   c.formModel,
		YAML:        c.yamlText,
		Initialized: c.initialized,
		Submitted:   c.submitted,
		Submitting:  c.submitting,
	}
}

// Submit validates the authoritative value and creates or updates it through s.
// The collaborator is called without holding the lock; a second Submit meanwhile fails with ErrSubmitInProgress.
func (c *Coordinator[S]) Submit(ctx context.Context, s Submitter, id models.Identity) (codec.Resource, error) {
	raw, err := c.prepareSubmit()
	if err != nil {
		return nil, err
	}

	var (
		out      codec.Resource
		titleKey string
	)
	if id.IsNew() {
		titleKey = "resource_create"
		out, err = s.Create(ctx, raw)
	} else {
		titleKey = "resource_update"
		out, err = s.Update(ctx, id, raw)
	}

	c.mu.Lock()
	c.submitting = false
	c.mu.Unlock()

	if err != nil {
		serr := newSubmitError(c.translator.Get(titleKey+"_fail"), err)
		c.notifier.Error(serr.Title, serr.Content)
		c.logger.Info("submit failed", zap.Stringer("resource", id), zap.Error(err))
		return nil, serr
	}

	c.notifier.Success(c.translator.Get(titleKey + "_succ"))
	return out, nil
}

func (c *Coordinator[S]) prepareSubmit() (codec.Resource, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.submitting {
		return nil, ErrSubmitInProgress
	}
	if !c.initialized {
		return nil, ErrNotInitialized
	}
	c.submitted = true

	if c.mode == ModeYAML {
		form, err := c.yamlToForm(c.yamlText)
		if err != nil {
			return nil, err
		}
		c.formModel = form
	}

	if v, ok := c.adapter.(Validator[S]); ok {
		blocking, flagged := c.policy.apply(v.Validate(c.formModel))
		if flagged {
			c.notifier.Warning(c.translator.Get("duplicate_key_warning"))
		}
		if blocking != nil {
			c.notifier.Error(c.translator.Get("resource_validation_fail"), blocking.Error())
			return nil, blocking
		}
	}

	raw, err := c.adapter.AdaptFormModel(c.formModel)
	if err != nil {
		c.notifier.Error(c.translator.Get("resource_validation_fail"), err.Error())
		return nil, err
	}
	raw, err = StripVolatile(raw)
	if err != nil {
		c.notifier.Error(c.translator.Get("resource_validation_fail"), err.Error())
		return nil, err
	}

	c.submitting = true
	return raw, nil
}

// yamlToForm decodes and adapts text. Failures are notified and returned.
func (c *Coordinator[S]) yamlToForm(text string) (S, error) {
	var zero S

	res, doc, err := c.codec.DecodeDocument(text)
	if err != nil {
		c.notifier.Error(c.translator.Get("yaml_format_error_message"), err.Error())
		return zero, err
	}

	var form S
	if da, ok := c.adapter.(DocumentAdapter[S]); ok {
		form, err = da.AdaptDocument(res, doc)
	} else {
		form, err = c.adapter.AdaptResourceModel(res)
	}
	if err != nil {
		c.notifier.Error(c.translator.Get("yaml_format_error_message"), err.Error())
		return zero, err
	}
	return form, nil
}

func (c *Coordinator[S]) formToYAML(form S) (string, error) {
	raw, err := c.adapter.AdaptFormModel(form)
	if err != nil {
		c.notifier.Error(c.translator.Get("resource_encode_fail"), err.Error())
		return "", err
	}

	text, err := c.codec.Encode(raw)
	if err != nil {
		c.notifier.Error(c.translator.Get("resource_encode_fail"), err.Error())
		return "", err
	}
	return text, nil
}

// TranslatingWarner forwards codec warnings as translated notifications.
type TranslatingWarner struct {
	Notifier   notify.Notifier
	Translator i18n.Translator
}

func (w TranslatingWarner) Warn(key string) {
	w.Notifier.Warning(w.Translator.Get(key))
}

type discard struct{}

func (discard) Success(string)       {}
func (discard) Warning(string)       {}
func (discard) Error(string, string) {}

type keys struct{}

func (keys) Get(key string) string { return key }
