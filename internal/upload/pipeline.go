// Package upload stages one image for a form: local selection, a data URL
// preview, a simulated progress indicator and resolution to the reference
// the server assigns.
package upload

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/fekuna/omnipos-admin-console/config"
	"github.com/fekuna/omnipos-admin-console/internal/apperr"
	"github.com/fekuna/omnipos-admin-console/internal/logger"
	"github.com/fekuna/omnipos-admin-console/internal/transport"
	"go.uber.org/zap"
)

type State int

const (
	Empty State = iota
	Selected
	PreviewReady
	Uploading
	Resolved
)

func (s State) String() string {
	switch s {
	case Selected:
		return "selected"
	case PreviewReady:
		return "preview_ready"
	case Uploading:
		return "uploading"
	case Resolved:
		return "resolved"
	default:
		return "empty"
	}
}

type File = transport.File

var (
	ErrNotReady      = errors.New("upload: no previewed file to upload")
	ErrInProgress    = errors.New("upload: already uploading")
	ErrSuperseded    = errors.New("upload: selection was replaced or cleared")
	ErrEmptyResponse = errors.New("upload: server returned no file url")
)

// Uploader sends a file and returns the reference the server assigned to it.
type Uploader interface {
	Upload(ctx context.Context, file File) (string, error)
}

type Pipeline struct {
	mu       sync.Mutex
	uploader Uploader
	logger   logger.ZapLogger
	floor    int
	step     int
	ceiling  int
	tick     time.Duration

	state       State
	file        *File
	preview     string
	previewDone chan struct{}
	ref         string
	progress    int
	gen         uint64
	stopTicker  chan struct{}
	onProgress  func(int)
}

func NewPipeline(cfg *config.UploadConfig, uploader Uploader, log logger.ZapLogger) *Pipeline {
	p := &Pipeline{
		uploader: uploader,
		logger:   log,
		floor:    cfg.ProgressFloor,
		step:     cfg.ProgressStep,
		ceiling:  cfg.ProgressCeiling,
		tick:     cfg.ProgressTick,
	}
	if p.ceiling >= 100 {
		p.ceiling = 99
	}
	if p.floor > p.ceiling {
		p.floor = p.ceiling
	}
	if p.step <= 0 {
		p.step = 1
	}
	if p.tick <= 0 {
		p.tick = 300 * time.Millisecond
	}
	return p
}

// OnProgress registers fn to receive every progress value. fn is called
// without the pipeline lock held.
func (p *Pipeline) OnProgress(fn func(int)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.onProgress = fn
}

// Select stages file, replacing any previous selection, and derives its
// preview in the background.
func (p *Pipeline) Select(file File) {
	p.mu.Lock()
	p.resetLocked()
	p.state = Selected
	p.file = &file
	done := make(chan struct{})
	p.previewDone = done
	gen := p.gen
	p.mu.Unlock()

	go func() {
		defer close(done)
		preview := dataURL(file)

		p.mu.Lock()
		defer p.mu.Unlock()
		if p.gen != gen {
			return
		}
		p.preview = preview
		p.state = PreviewReady
	}()
}

// AwaitPreview blocks until the current selection's preview exists.
func (p *Pipeline) AwaitPreview(ctx context.Context) error {
	p.mu.Lock()
	done, gen := p.previewDone, p.gen
	p.mu.Unlock()
	if done == nil {
		return nil
	}

	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.gen != gen {
		return ErrSuperseded
	}
	return nil
}

// Clear returns to Empty from any state. An upload still in flight keeps
// running but its result is dropped.
func (p *Pipeline) Clear() {
	p.mu.Lock()
	p.resetLocked()
	fn := p.onProgress
	p.mu.Unlock()
	if fn != nil {
		fn(0)
	}
}

// Seed starts from an image the entity already has. An empty ref is Clear.
func (p *Pipeline) Seed(ref string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.resetLocked()
	if ref != "" {
		p.state = Resolved
		p.ref = ref
	}
}

func (p *Pipeline) resetLocked() {
	p.gen++
	if p.stopTicker != nil {
		close(p.stopTicker)
		p.stopTicker = nil
	}
	p.state = Empty
	p.file = nil
	p.preview = ""
	p.previewDone = nil
	p.ref = ""
	p.progress = 0
}

// Upload sends the previewed file. Progress starts at the floor and creeps
// towards the ceiling while the call is outstanding; it reaches 100 only
// once the uploader has returned successfully.
func (p *Pipeline) Upload(ctx context.Context) (string, error) {
	p.mu.Lock()
	switch p.state {
	case Uploading:
		p.mu.Unlock()
		return "", ErrInProgress
	case PreviewReady:
	default:
		p.mu.Unlock()
		return "", ErrNotReady
	}
	p.state = Uploading
	p.progress = p.floor
	file := *p.file
	gen := p.gen
	stop := make(chan struct{})
	p.stopTicker = stop
	fn := p.onProgress
	p.mu.Unlock()

	if fn != nil {
		fn(p.floor)
	}
	ticking := make(chan struct{})
	go p.runTicker(gen, stop, ticking)

	ref, err := p.uploader.Upload(ctx, file)

	p.mu.Lock()
	if p.gen == gen {
		close(stop)
		p.stopTicker = nil
	}
	p.mu.Unlock()
	<-ticking

	p.mu.Lock()
	if p.gen != gen {
		p.mu.Unlock()
		p.logger.Debug("Discarding late upload result", zap.String("file", file.Name))
		return "", ErrSuperseded
	}
	if err == nil && ref == "" {
		err = ErrEmptyResponse
	}
	if err != nil {
		p.state = PreviewReady
		p.progress = 0
		fn = p.onProgress
		p.mu.Unlock()
		p.logger.Warn("Image upload failed", zap.String("file", file.Name), zap.Error(err))
		if fn != nil {
			fn(0)
		}
		if apperr.Is(err, apperr.KindUpload) {
			return "", err
		}
		return "", apperr.Upload(err)
	}
	p.state = Resolved
	p.ref = ref
	p.progress = 100
	fn = p.onProgress
	p.mu.Unlock()

	p.logger.Info("Image uploaded", zap.String("file", file.Name), zap.String("ref", ref))
	if fn != nil {
		fn(100)
	}
	return ref, nil
}

func (p *Pipeline) runTicker(gen uint64, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	t := time.NewTicker(p.tick)
	defer t.Stop()

	for {
		select {
		case <-stop:
			return
		case <-t.C:
		}

		p.mu.Lock()
		if p.gen != gen || p.state != Uploading {
			p.mu.Unlock()
			return
		}
		next := min(p.progress+p.step, p.ceiling)
		if next == p.progress {
			p.mu.Unlock()
			continue
		}
		p.progress = next
		fn := p.onProgress
		p.mu.Unlock()

		if fn != nil {
			fn(next)
		}
	}
}

// Resolve returns the reference a submit should persist: empty when no
// image is staged, the existing reference when nothing new was selected,
// otherwise the reference obtained by uploading the staged file.
func (p *Pipeline) Resolve(ctx context.Context) (string, error) {
	p.mu.Lock()
	state, ref := p.state, p.ref
	p.mu.Unlock()

	switch state {
	case Empty:
		return "", nil
	case Resolved:
		return ref, nil
	case Uploading:
		return "", ErrInProgress
	case Selected:
		if err := p.AwaitPreview(ctx); err != nil {
			return "", err
		}
	}
	return p.Upload(ctx)
}

func (p *Pipeline) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

func (p *Pipeline) Progress() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.progress
}

func (p *Pipeline) Preview() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.preview
}

// Reference is the resolved remote reference, empty unless Resolved.
func (p *Pipeline) Reference() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ref
}

// Staged reports whether a local file is waiting to be uploaded.
func (p *Pipeline) Staged() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.file != nil && p.state != Resolved
}

func dataURL(file File) string {
	contentType := file.ContentType
	if contentType == "" {
		contentType = http.DetectContentType(file.Data)
	}
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(file.Data)
}
