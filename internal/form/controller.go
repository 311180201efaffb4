// Package form stages edits of one entity before they are written.
//
// A Controller owns a Draft: the persisted fields as strings keyed by wire
// name, an optional image pipeline and the submit state. Submit validates
// locally, resolves the image, coerces values through the entity's Schema
// and dispatches create or update depending on how the session started.
package form

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/fekuna/omnipos-admin-console/internal/apperr"
	"github.com/fekuna/omnipos-admin-console/internal/logger"
	"github.com/fekuna/omnipos-admin-console/internal/upload"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

type State int

const (
	Idle State = iota
	Loading
	Editing
	Submitting
	Succeeded
	Failed
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Editing:
		return "editing"
	case Submitting:
		return "submitting"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	default:
		return "idle"
	}
}

type Mode int

const (
	ModeCreate Mode = iota
	ModeEdit
)

func (m Mode) verb() string {
	if m == ModeEdit {
		return "update"
	}
	return "create"
}

// Values are draft field values keyed by wire name.
type Values map[string]string

var (
	ErrSubmitInProgress = errors.New("form: submit already in progress")
	ErrNotEditing       = errors.New("form: no edit session")
	ErrUnknownField     = errors.New("form: unknown field")
	ErrImageField       = errors.New("form: image is staged through the image pipeline")
	ErrNoImage          = errors.New("form: entity has no image")
	ErrDiscarded        = errors.New("form: session was discarded")
)

// Schema describes one entity kind to the controller. P is the normalized
// payload its repository accepts.
type Schema[P any] interface {
	Entity() apperr.Entity
	// Fields lists persisted fields by wire name, identifier excluded.
	Fields() []string
	Defaults() Values
	// Rules maps fields to validator tags for the given mode.
	Rules(mode Mode) map[string]string
	Load(ctx context.Context, id int64) (Values, error)
	Normalize(v Values) (*P, error)
	Create(ctx context.Context, payload *P) (int64, error)
	Update(ctx context.Context, id int64, payload *P) error
}

// ImageSchema is implemented by schemas with an image reference field.
type ImageSchema interface {
	ImageField() string
}

// Draft is a snapshot of the session.
type Draft struct {
	State     State
	Mode      Mode
	ID        int64
	Values    Values
	Image     upload.State
	ImageRef  string
	Preview   string
	Progress  int
	Err       error
	Reason    string
	CreatedID int64
}

type Options struct {
	Pipeline     *upload.Pipeline
	SuccessDelay time.Duration
	// OnDone runs after SuccessDelay once a submit succeeded.
	OnDone func()
}

type Controller[P any] struct {
	mu         sync.Mutex
	schema     Schema[P]
	pipeline   *upload.Pipeline
	imageField string
	validate   *validator.Validate
	delay      time.Duration
	onDone     func()
	logger     logger.ZapLogger

	state     State
	mode      Mode
	id        int64
	values    Values
	err       error
	reason    string
	createdID int64
	gen       uint64
	timer     *time.Timer
}

func NewController[P any](schema Schema[P], opts Options, log logger.ZapLogger) *Controller[P] {
	c := &Controller[P]{
		schema:   schema,
		pipeline: opts.Pipeline,
		validate: validator.New(),
		delay:    opts.SuccessDelay,
		onDone:   opts.OnDone,
		logger:   log.With(zap.String("entity", string(schema.Entity()))),
	}
	if is, ok := schema.(ImageSchema); ok && c.pipeline != nil {
		c.imageField = is.ImageField()
	}
	return c
}

// EnterCreate starts a create session from the schema defaults.
func (c *Controller[P]) EnterCreate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetLocked()
	c.mode = ModeCreate
	c.values = c.blank()
	for k, v := range c.schema.Defaults() {
		if _, ok := c.values[k]; ok {
			c.values[k] = v
		}
	}
	c.state = Editing
}

// EnterEdit loads the entity and seeds every field from it. On failure the
// controller returns to Idle.
func (c *Controller[P]) EnterEdit(ctx context.Context, id int64) error {
	c.mu.Lock()
	c.resetLocked()
	c.mode = ModeEdit
	c.id = id
	c.state = Loading
	gen := c.gen
	c.mu.Unlock()

	var (
		loaded Values
		err    error
	)
	if id == 0 {
		err = apperr.MissingIdentifier("get", c.schema.Entity())
	} else {
		loaded, err = c.schema.Load(ctx, id)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gen != gen {
		return ErrDiscarded
	}
	if err != nil {
		c.state = Idle
		c.err = err
		c.reason = fmt.Sprintf("failed to fetch %s", c.schema.Entity())
		c.logger.Error("Failed to load draft", zap.Int64("id", id), zap.Error(err))
		return err
	}

	c.values = c.blank()
	for k := range c.values {
		c.values[k] = loaded[k]
	}
	if c.imageField != "" {
		c.pipeline.Seed(loaded[c.imageField])
	}
	c.state = Editing
	return nil
}

// Set updates one field and leaves the others untouched.
func (c *Controller[P]) Set(field, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.editableLocked(); err != nil {
		return err
	}
	if field == c.imageField && field != "" {
		return ErrImageField
	}
	if _, ok := c.values[field]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
	c.values[field] = value
	c.state = Editing
	return nil
}

func (c *Controller[P]) SelectImage(file upload.File) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.imageField == "" {
		return ErrNoImage
	}
	if err := c.editableLocked(); err != nil {
		return err
	}
	c.pipeline.Select(file)
	c.state = Editing
	return nil
}

func (c *Controller[P]) ClearImage() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.imageField == "" {
		return ErrNoImage
	}
	if err := c.editableLocked(); err != nil {
		return err
	}
	c.pipeline.Clear()
	c.state = Editing
	return nil
}

// Submit runs the write. It returns ErrSubmitInProgress without side
// effects while another submit is outstanding.
func (c *Controller[P]) Submit(ctx context.Context) error {
	c.mu.Lock()
	if err := c.editableLocked(); err != nil {
		c.mu.Unlock()
		return err
	}
	if verr := c.checkRequiredLocked(); verr != nil {
		c.state = Editing
		c.err = verr
		c.reason = apperr.PublicMessage(verr)
		c.mu.Unlock()
		return verr
	}
	c.state = Submitting
	c.err = nil
	c.reason = ""
	mode, id, gen := c.mode, c.id, c.gen
	values := maps.Clone(c.values)
	c.mu.Unlock()

	if c.imageField != "" {
		ref, err := c.pipeline.Resolve(ctx)
		if err != nil {
			return c.abort(gen, err, apperr.PublicMessage(err))
		}
		values[c.imageField] = ref
	}

	payload, err := c.schema.Normalize(values)
	if err != nil {
		return c.abort(gen, err, apperr.PublicMessage(err))
	}

	var createdID int64
	if mode == ModeCreate {
		createdID, err = c.schema.Create(ctx, payload)
	} else {
		err = c.schema.Update(ctx, id, payload)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gen != gen {
		c.logger.Debug("Dropping late submit result", zap.Error(err))
		return ErrDiscarded
	}
	if err != nil {
		c.state = Failed
		c.err = err
		c.reason = fmt.Sprintf("failed to %s %s", mode.verb(), c.schema.Entity())
		c.logger.Error("Submit failed", zap.String("mode", mode.verb()), zap.Int64("id", id), zap.Error(err))
		return err
	}

	c.state = Succeeded
	c.createdID = createdID
	c.logger.Info("Submit succeeded", zap.String("mode", mode.verb()), zap.Int64("id", id), zap.Int64("created_id", createdID))
	if c.onDone != nil {
		c.timer = time.AfterFunc(c.delay, func() {
			c.mu.Lock()
			current := c.gen == gen
			c.mu.Unlock()
			if current {
				c.onDone()
			}
		})
	}
	return nil
}

// abort returns a submit that failed before reaching the repository to
// Editing with the draft untouched.
func (c *Controller[P]) abort(gen uint64, err error, reason string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gen != gen {
		return ErrDiscarded
	}
	c.state = Editing
	c.err = err
	c.reason = reason
	c.logger.Warn("Submit aborted", zap.Error(err))
	return err
}

// Discard ends the session. Responses still in flight are ignored.
func (c *Controller[P]) Discard() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetLocked()
}

func (c *Controller[P]) Draft() Draft {
	c.mu.Lock()
	d := Draft{
		State:     c.state,
		Mode:      c.mode,
		ID:        c.id,
		Values:    maps.Clone(c.values),
		Err:       c.err,
		Reason:    c.reason,
		CreatedID: c.createdID,
	}
	c.mu.Unlock()

	if c.imageField != "" {
		d.Image = c.pipeline.State()
		d.ImageRef = c.pipeline.Reference()
		d.Preview = c.pipeline.Preview()
		d.Progress = c.pipeline.Progress()
	}
	return d
}

func (c *Controller[P]) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller[P]) resetLocked() {
	c.gen++
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	if c.pipeline != nil {
		c.pipeline.Clear()
	}
	c.state = Idle
	c.mode = ModeCreate
	c.id = 0
	c.values = nil
	c.err = nil
	c.reason = ""
	c.createdID = 0
}

func (c *Controller[P]) editableLocked() error {
	switch c.state {
	case Submitting:
		return ErrSubmitInProgress
	case Editing, Failed, Succeeded:
		return nil
	default:
		return ErrNotEditing
	}
}

func (c *Controller[P]) blank() Values {
	v := Values{}
	for _, f := range c.schema.Fields() {
		if f != c.imageField {
			v[f] = ""
		}
	}
	return v
}

func (c *Controller[P]) checkRequiredLocked() error {
	rules := c.schema.Rules(c.mode)
	fields := map[string]string{}
	ruleFields := make([]string, 0, len(rules))
	for f := range rules {
		ruleFields = append(ruleFields, f)
	}
	slices.Sort(ruleFields)
	for _, f := range ruleFields {
		if err := c.validate.Var(strings.TrimSpace(c.values[f]), rules[f]); err != nil {
			var verrs validator.ValidationErrors
			if errors.As(err, &verrs) && len(verrs) > 0 {
				fields[f] = verrs[0].Tag()
			} else {
				fields[f] = err.Error()
			}
		}
	}
	if len(fields) == 0 {
		return nil
	}
	return apperr.Validation(c.schema.Entity(), fields)
}
